package application

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/zap-network/zapfoil/internal/core/domain"
	"github.com/zap-network/zapfoil/pkg/waves"
)

// SweepService returns unclaimed funds of expired foils to a recipient
// address. Sweeping never mutates the store: the emptied balance is the only
// record of a completed sweep.
type SweepService interface {
	// Sweep transfers (balance - fee) of every expired, funded, non-empty
	// foil of the inclusive batch range to the recipient, paying the fee in
	// the swept asset. The recipient is validated before any foil is touched.
	// IgnoreExpiry sweeps regardless of the expiry timestamp.
	Sweep(
		ctx context.Context,
		recipient string,
		startBatch, endBatch int,
		ignoreExpiry bool,
	) (*SweepReport, error)
}

type sweepService struct {
	repo     domain.FoilRepository
	wavesSvc waves.Service
	net      waves.Network
	txFee    int64
}

// NewSweepService is a constructor function for SweepService.
func NewSweepService(
	repo domain.FoilRepository,
	wavesSvc waves.Service,
	net waves.Network,
	txFee int64,
) SweepService {
	return &sweepService{
		repo:     repo,
		wavesSvc: wavesSvc,
		net:      net,
		txFee:    txFee,
	}
}

func (s *sweepService) Sweep(
	ctx context.Context,
	recipient string,
	startBatch, endBatch int,
	ignoreExpiry bool,
) (*SweepReport, error) {
	valid, err := s.wavesSvc.ValidateAddress(recipient)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, fmt.Errorf("%w: %s", ErrRecipientInvalid, recipient)
	}

	foils, err := s.repo.GetByBatchRange(ctx, startBatch, endBatch)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	report := &SweepReport{}
	for _, foil := range foils {
		if !foil.IsFunded() {
			report.SkippedUnfunded++
			continue
		}
		if !ignoreExpiry && !foil.IsExpired(now) {
			report.SkippedNotExpired++
			continue
		}

		keyPair, err := waves.KeyPairFromSecret(foil.SecretKey)
		if err != nil {
			return report, err
		}
		address, err := keyPair.Address(s.net.Scheme)
		if err != nil {
			return report, err
		}

		balance, err := s.wavesSvc.AssetBalance(address, s.net.AssetID)
		if err != nil {
			return report, err
		}
		if balance <= uint64(s.txFee) {
			log.WithFields(log.Fields{
				"address": address,
				"balance": balance,
			}).Info("skipping, nothing to sweep")
			report.SkippedZeroBalance++
			continue
		}

		amount := balance - uint64(s.txFee)
		transfer, err := keyPair.SignTransfer(waves.TransferParams{
			Scheme:    s.net.Scheme,
			Recipient: recipient,
			AssetID:   s.net.AssetID,
			Amount:    amount,
			Fee:       uint64(s.txFee),
		})
		if err != nil {
			return report, err
		}
		txid, err := s.wavesSvc.BroadcastTransaction(transfer.JSON)
		if err != nil {
			return report, err
		}

		log.WithFields(log.Fields{
			"address": address,
			"amount":  amount,
			"txid":    txid,
		}).Info("swept foil")
		report.Swept++
		report.TotalSwept += amount
	}
	return report, nil
}
