package domain

import (
	"errors"
	"time"
)

var (
	// ErrFoilAlreadyFunded ...
	ErrFoilAlreadyFunded = errors.New(
		"foil is already funded and cannot record another funding transfer",
	)
	// ErrFoilNotFound ...
	ErrFoilNotFound = errors.New("foil not found")
)

// Foil is one prefunded paper wallet: a generated secret key controlling a
// single account, grouped into a batch, funded once with a fixed token
// amount and swept back after expiry if unclaimed.
type Foil struct {
	ID        uint   `gorm:"primaryKey"`
	Date      int64  `gorm:"not null"`
	Batch     int    `gorm:"not null;index"`
	SecretKey string `gorm:"column:secret_key;uniqueIndex;not null"`
	// Amount is the face value in minor units; nil until set at creation or
	// funding time.
	Amount      *int64
	FundingTxID *string `gorm:"column:funding_txid;uniqueIndex"`
	FundingDate *int64
	Expiry      *int64
}

// TableName ...
func (Foil) TableName() string {
	return "foils"
}

// NewFoil returns an unfunded foil for the given batch.
func NewFoil(batch int, secretKey string, amount *int64) *Foil {
	return &Foil{
		Date:      time.Now().Unix(),
		Batch:     batch,
		SecretKey: secretKey,
		Amount:    amount,
	}
}

// IsFunded returns whether a funding transfer has been recorded. The funding
// txid is the single source of truth for the funded state.
func (f *Foil) IsFunded() bool {
	return f.FundingTxID != nil
}

// IsExpired returns whether the foil's validity window has passed. Unfunded
// foils have no expiry and never report expired.
func (f *Foil) IsExpired(now int64) bool {
	return f.Expiry != nil && *f.Expiry <= now
}

// ConfirmFunding records a confirmed funding transfer. Txid, funding date and
// expiry are set together so a foil is never observable in a half-funded
// state; the transferred amount backfills the face value.
func (f *Foil) ConfirmFunding(txid string, fundingDate, expiry, amount int64) error {
	if f.IsFunded() {
		return ErrFoilAlreadyFunded
	}
	f.FundingTxID = &txid
	f.FundingDate = &fundingDate
	f.Expiry = &expiry
	f.Amount = &amount
	return nil
}
