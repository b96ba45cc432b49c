package node

import (
	"encoding/json"
	"fmt"

	"github.com/zap-network/zapfoil/pkg/waves"
)

// tx is the subset of the node's transaction JSON this application acts on.
// Non-transfer transactions leave recipient/asset/amount empty.
type tx struct {
	ID          string  `json:"id"`
	Type        int     `json:"type"`
	Sender      string  `json:"sender"`
	Recipient   string  `json:"recipient"`
	AssetID     *string `json:"assetId"`
	Amount      uint64  `json:"amount"`
	Fee         uint64  `json:"fee"`
	TimestampMs uint64  `json:"timestamp"`
}

func (t tx) toTransaction() (waves.Transaction, error) {
	if t.ID == "" {
		return waves.Transaction{}, fmt.Errorf("transaction is missing its id")
	}
	// a null assetId denotes the native chain asset
	assetID := ""
	if t.AssetID != nil {
		assetID = *t.AssetID
	}
	return waves.Transaction{
		ID:          t.ID,
		Type:        t.Type,
		Sender:      t.Sender,
		Recipient:   t.Recipient,
		AssetID:     assetID,
		Amount:      t.Amount,
		Fee:         t.Fee,
		TimestampMs: t.TimestampMs,
	}, nil
}

// parseTransactions decodes the node's address history format, a JSON array
// holding one page of transactions, newest first.
func parseTransactions(body string) ([]waves.Transaction, error) {
	var pages [][]tx
	if err := json.Unmarshal([]byte(body), &pages); err != nil {
		return nil, fmt.Errorf("invalid transactions response")
	}

	txs := make([]waves.Transaction, 0)
	for _, page := range pages {
		for _, t := range page {
			parsed, err := t.toTransaction()
			if err != nil {
				return nil, err
			}
			txs = append(txs, parsed)
		}
	}
	return txs, nil
}
