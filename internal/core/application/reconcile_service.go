package application

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/zap-network/zapfoil/internal/core/domain"
	"github.com/zap-network/zapfoil/pkg/waves"
)

// ReconcileService backfills funding data for foils whose funding transfer
// succeeded on chain but was never recorded locally.
type ReconcileService interface {
	// FillMissingFundingData inspects every unfunded foil of the inclusive
	// batch range. A full history page, a non-transfer transaction, an
	// unrecognized asset or a recipient mismatch are integrity violations and
	// abort the run; rows already backfilled stay.
	FillMissingFundingData(
		ctx context.Context, startBatch, endBatch int,
	) (*ReconcileReport, error)
}

type reconcileService struct {
	repo            domain.FoilRepository
	wavesSvc        waves.Service
	net             waves.Network
	txLimit         int
	defaultValidity int64
}

// NewReconcileService is a constructor function for ReconcileService.
func NewReconcileService(
	repo domain.FoilRepository,
	wavesSvc waves.Service,
	net waves.Network,
	txLimit int,
	defaultValidity int64,
) ReconcileService {
	return &reconcileService{
		repo:            repo,
		wavesSvc:        wavesSvc,
		net:             net,
		txLimit:         txLimit,
		defaultValidity: defaultValidity,
	}
}

func (s *reconcileService) FillMissingFundingData(
	ctx context.Context, startBatch, endBatch int,
) (*ReconcileReport, error) {
	foils, err := s.repo.GetByBatchRange(ctx, startBatch, endBatch)
	if err != nil {
		return nil, err
	}

	report := &ReconcileReport{}
	for _, foil := range foils {
		if foil.IsFunded() {
			report.SkippedFunded++
			continue
		}
		address, err := foilAddress(foil, s.net.Scheme)
		if err != nil {
			return report, err
		}

		txs, err := s.wavesSvc.TransactionsForAddress(address, s.txLimit)
		if err != nil {
			return report, err
		}
		if len(txs) >= s.txLimit {
			return report, fmt.Errorf(
				"%w: %s has %d transactions", ErrTooManyTransactions, address, len(txs),
			)
		}
		if len(txs) == 0 {
			log.WithField("address", address).Info(
				"skipping, no transaction history",
			)
			report.SkippedNoHistory++
			continue
		}

		// the history is newest first, the funding transfer is the oldest
		tx := txs[len(txs)-1]
		if !tx.IsTransfer() {
			return report, fmt.Errorf(
				"%w: %s got type %d", ErrUnexpectedTxType, tx.ID, tx.Type,
			)
		}
		if tx.AssetID != s.net.AssetID {
			return report, fmt.Errorf(
				"%w: %s moves asset %s", ErrUnexpectedAsset, tx.ID, tx.AssetID,
			)
		}
		if tx.Recipient != address {
			return report, fmt.Errorf(
				"%w: %s pays %s", ErrRecipientMismatch, tx.ID, tx.Recipient,
			)
		}

		fundingDate := int64(tx.TimestampMs / 1000)
		if err := foil.ConfirmFunding(
			tx.ID, fundingDate, fundingDate+s.defaultValidity, int64(tx.Amount),
		); err != nil {
			return report, err
		}
		if err := s.repo.UpdateFoil(ctx, foil); err != nil {
			return report, err
		}

		log.WithFields(log.Fields{
			"address": address,
			"txid":    tx.ID,
			"amount":  tx.Amount,
		}).Info("backfilled funding data")
		report.Backfilled++
	}
	return report, nil
}
