package application

import (
	"github.com/zap-network/zapfoil/internal/core/domain"
	"github.com/zap-network/zapfoil/pkg/waves"
)

// FoilInfo is the read model of one foil as presented by show and the CSV
// export, with the account address derived from the stored secret.
type FoilInfo struct {
	ID          uint    `json:"id"`
	Date        int64   `json:"date"`
	Batch       int     `json:"batch"`
	Address     string  `json:"address"`
	SecretKey   string  `json:"secret_key"`
	Amount      *int64  `json:"amount"`
	FundingTxID *string `json:"funding_txid"`
	FundingDate *int64  `json:"funding_date"`
	Expiry      *int64  `json:"expiry"`
	Balance     *uint64 `json:"balance,omitempty"`
}

// FundingReport summarises one funding run.
type FundingReport struct {
	Funded         int
	SkippedFunded  int
	SkippedBalance int
	TotalSent      int64
}

// PlanBatchStatus is the check-plan result for one plan entry.
type PlanBatchStatus struct {
	Batch            int
	PlannedAmount    int64
	Missing          bool
	Foils            int
	Funded           int
	AmountMismatches int
}

// Ok returns whether the stored batch matches its plan entry.
func (s PlanBatchStatus) Ok() bool {
	return !s.Missing && s.AmountMismatches == 0
}

// PlanReport is the check-plan result for a whole plan file.
type PlanReport struct {
	Batches []PlanBatchStatus
}

// Mismatched returns whether any plan entry disagrees with the store.
func (r *PlanReport) Mismatched() bool {
	for _, status := range r.Batches {
		if !status.Ok() {
			return true
		}
	}
	return false
}

// ReconcileReport summarises one reconciliation run.
type ReconcileReport struct {
	Backfilled       int
	SkippedFunded    int
	SkippedNoHistory int
}

// SweepReport summarises one sweep run.
type SweepReport struct {
	Swept              int
	TotalSwept         uint64
	SkippedUnfunded    int
	SkippedNotExpired  int
	SkippedZeroBalance int
}

func foilAddress(foil *domain.Foil, scheme byte) (string, error) {
	keyPair, err := waves.KeyPairFromSecret(foil.SecretKey)
	if err != nil {
		return "", err
	}
	return keyPair.Address(scheme)
}
