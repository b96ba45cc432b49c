package node_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zap-network/zapfoil/pkg/waves"
	"github.com/zap-network/zapfoil/pkg/waves/node"
)

const (
	testAddress = "3MsuYKhitTJprovidedFakeAddressForTests"
	testAssetID = "CgUrFtinLXEbJwJVjwwcppk4Vpz1nMmR3H5cQaDcUcfe"
)

func newTestNode(t *testing.T, handlers map[string]http.HandlerFunc) waves.Service {
	mux := http.NewServeMux()
	mux.HandleFunc("/blocks/height", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"height":3100000}`)
	})
	for pattern, handler := range handlers {
		mux.HandleFunc(pattern, handler)
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	service, err := node.NewService(server.URL)
	require.NoError(t, err)
	return service
}

func TestNewServiceHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "node is down", http.StatusServiceUnavailable)
		},
	))
	defer server.Close()

	_, err := node.NewService(server.URL)
	require.Error(t, err)
}

func TestBlockHeight(t *testing.T) {
	service := newTestNode(t, nil)

	height, err := service.BlockHeight()
	require.NoError(t, err)
	require.Equal(t, uint64(3100000), height)
}

func TestAssetBalance(t *testing.T) {
	path := fmt.Sprintf("/assets/balance/%s/%s", testAddress, testAssetID)
	service := newTestNode(t, map[string]http.HandlerFunc{
		path: func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(
				w, `{"address":%q,"assetId":%q,"balance":12345}`,
				testAddress, testAssetID,
			)
		},
	})

	balance, err := service.AssetBalance(testAddress, testAssetID)
	require.NoError(t, err)
	require.Equal(t, uint64(12345), balance)

	_, err = service.AssetBalance("unknown", testAssetID)
	require.Error(t, err)
}

func TestTransactionsForAddress(t *testing.T) {
	// the node wraps the address history in an outer array and returns it
	// newest first; a null assetId denotes the native chain asset
	body := fmt.Sprintf(`[[
		{"id":"tx2","type":4,"sender":"sender","recipient":%q,
		 "assetId":%q,"amount":501,"fee":1,"timestamp":1700000500000},
		{"id":"tx1","type":16,"sender":"sender","assetId":null,
		 "timestamp":1700000000000}
	]]`, testAddress, testAssetID)

	path := fmt.Sprintf("/transactions/address/%s/limit/100", testAddress)
	service := newTestNode(t, map[string]http.HandlerFunc{
		path: func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, body)
		},
	})

	txs, err := service.TransactionsForAddress(testAddress, 100)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	require.Equal(t, "tx2", txs[0].ID)
	require.True(t, txs[0].IsTransfer())
	require.Equal(t, testAssetID, txs[0].AssetID)
	require.Equal(t, testAddress, txs[0].Recipient)
	require.Equal(t, uint64(501), txs[0].Amount)
	require.Equal(t, uint64(1700000500000), txs[0].TimestampMs)

	require.Equal(t, "tx1", txs[1].ID)
	require.False(t, txs[1].IsTransfer())
	require.Empty(t, txs[1].AssetID)
}

func TestTransactionsForAddressEmptyHistory(t *testing.T) {
	path := fmt.Sprintf("/transactions/address/%s/limit/100", testAddress)
	service := newTestNode(t, map[string]http.HandlerFunc{
		path: func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[[]]`)
		},
	})

	txs, err := service.TransactionsForAddress(testAddress, 100)
	require.NoError(t, err)
	require.Empty(t, txs)
}

func TestValidateAddress(t *testing.T) {
	service := newTestNode(t, map[string]http.HandlerFunc{
		"/addresses/validate/": func(w http.ResponseWriter, r *http.Request) {
			valid := r.URL.Path == "/addresses/validate/"+testAddress
			fmt.Fprintf(w, `{"address":"x","valid":%t}`, valid)
		},
	})

	valid, err := service.ValidateAddress(testAddress)
	require.NoError(t, err)
	require.True(t, valid)

	valid, err = service.ValidateAddress("garbage")
	require.NoError(t, err)
	require.False(t, valid)
}

func TestBroadcastTransaction(t *testing.T) {
	service := newTestNode(t, map[string]http.HandlerFunc{
		"/transactions/broadcast": func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			require.JSONEq(t, `{"type":4}`, string(body))
			fmt.Fprint(w, `{"id":"broadcast-tx"}`)
		},
	})

	txID, err := service.BroadcastTransaction([]byte(`{"type":4}`))
	require.NoError(t, err)
	require.Equal(t, "broadcast-tx", txID)
}

func TestBroadcastTransactionRejected(t *testing.T) {
	service := newTestNode(t, map[string]http.HandlerFunc{
		"/transactions/broadcast": func(w http.ResponseWriter, r *http.Request) {
			http.Error(
				w, `{"error":112,"message":"negative amount"}`,
				http.StatusBadRequest,
			)
		},
	})

	_, err := service.BroadcastTransaction([]byte(`{"type":4}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "negative amount")
}
