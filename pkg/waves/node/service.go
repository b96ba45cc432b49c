package node

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/zap-network/zapfoil/pkg/httputil"
	"github.com/zap-network/zapfoil/pkg/waves"
)

type nodeService struct {
	apiURL string
}

// NewService returns a new node REST client as a waves.Service interface.
func NewService(apiURL string) (waves.Service, error) {
	service := &nodeService{strings.TrimSuffix(apiURL, "/")}

	if err := service.healthCheck(); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}

	return service, nil
}

func (n *nodeService) healthCheck() error {
	_, err := n.BlockHeight()
	return err
}

func (n *nodeService) BlockHeight() (uint64, error) {
	url := fmt.Sprintf("%s/blocks/height", n.apiURL)
	status, resp, err := httputil.NewHTTPRequest("GET", url, "", nil)
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf(resp)
	}

	var out struct {
		Height uint64 `json:"height"`
	}
	if err := json.Unmarshal([]byte(resp), &out); err != nil {
		return 0, fmt.Errorf("invalid height response")
	}
	return out.Height, nil
}

func (n *nodeService) AssetBalance(address, assetID string) (uint64, error) {
	url := fmt.Sprintf("%s/assets/balance/%s/%s", n.apiURL, address, assetID)
	status, resp, err := httputil.NewHTTPRequest("GET", url, "", nil)
	if err != nil {
		return 0, err
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf(resp)
	}

	var out struct {
		Address string `json:"address"`
		AssetID string `json:"assetId"`
		Balance uint64 `json:"balance"`
	}
	if err := json.Unmarshal([]byte(resp), &out); err != nil {
		return 0, fmt.Errorf("invalid balance response")
	}
	return out.Balance, nil
}

func (n *nodeService) TransactionsForAddress(
	address string, limit int,
) ([]waves.Transaction, error) {
	url := fmt.Sprintf(
		"%s/transactions/address/%s/limit/%d", n.apiURL, address, limit,
	)
	status, resp, err := httputil.NewHTTPRequest("GET", url, "", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf(resp)
	}

	return parseTransactions(resp)
}

func (n *nodeService) ValidateAddress(address string) (bool, error) {
	url := fmt.Sprintf("%s/addresses/validate/%s", n.apiURL, address)
	status, resp, err := httputil.NewHTTPRequest("GET", url, "", nil)
	if err != nil {
		return false, err
	}
	if status != http.StatusOK {
		return false, fmt.Errorf(resp)
	}

	var out struct {
		Address string `json:"address"`
		Valid   bool   `json:"valid"`
	}
	if err := json.Unmarshal([]byte(resp), &out); err != nil {
		return false, fmt.Errorf("invalid validation response")
	}
	return out.Valid, nil
}

func (n *nodeService) BroadcastTransaction(txJSON []byte) (string, error) {
	url := fmt.Sprintf("%s/transactions/broadcast", n.apiURL)
	headers := map[string]string{
		"Content-Type": "application/json",
	}

	status, resp, err := httputil.NewHTTPRequest(
		"POST", url, string(txJSON), headers,
	)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf(resp)
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal([]byte(resp), &out); err != nil {
		return "", fmt.Errorf("invalid broadcast response")
	}
	if out.ID == "" {
		return "", fmt.Errorf("broadcast response is missing the transaction id")
	}
	return out.ID, nil
}
