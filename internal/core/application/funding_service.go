package application

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/zap-network/zapfoil/internal/core/domain"
	"github.com/zap-network/zapfoil/pkg/allocator"
	"github.com/zap-network/zapfoil/pkg/waves"
)

// FundingService funds foil batches from an operator account.
//
// Funding is idempotent by construction, not by transaction log: every run
// re-checks the funding txid and the on-chain balance per foil before
// transferring, so an aborted run can simply be retried and resumes where it
// stopped. A transfer failure aborts the run without rolling back rows
// already written.
type FundingService interface {
	// FundBatch funds every remaining foil of one batch. Amount overrides the
	// stored face value when non-nil.
	FundBatch(
		ctx context.Context, seed string, batch int, amount *int64, expiry int64,
	) (*FundingReport, error)
	// FundPlan funds every batch of a plan file with its planned amount.
	FundPlan(
		ctx context.Context, seed string, plan allocator.Plan, expiry int64,
	) (*FundingReport, error)
	// CheckPlan compares a plan file against the store without mutating or
	// transferring anything.
	CheckPlan(ctx context.Context, plan allocator.Plan) (*PlanReport, error)
}

type fundingService struct {
	repo     domain.FoilRepository
	wavesSvc waves.Service
	net      waves.Network
	txFee    int64
}

// NewFundingService is a constructor function for FundingService.
func NewFundingService(
	repo domain.FoilRepository,
	wavesSvc waves.Service,
	net waves.Network,
	txFee int64,
) FundingService {
	return &fundingService{
		repo:     repo,
		wavesSvc: wavesSvc,
		net:      net,
		txFee:    txFee,
	}
}

type fundTarget struct {
	foil   *domain.Foil
	amount int64
}

func (s *fundingService) FundBatch(
	ctx context.Context, seed string, batch int, amount *int64, expiry int64,
) (*FundingReport, error) {
	foils, err := s.repo.GetByBatch(ctx, batch)
	if err != nil {
		return nil, err
	}
	targets, err := makeTargets(foils, amount)
	if err != nil {
		return nil, err
	}
	return s.fund(ctx, seed, targets, expiry)
}

func (s *fundingService) FundPlan(
	ctx context.Context, seed string, plan allocator.Plan, expiry int64,
) (*FundingReport, error) {
	targets := make([]fundTarget, 0)
	for _, entry := range plan {
		foils, err := s.repo.GetByBatch(ctx, entry.Batch)
		if err != nil {
			return nil, err
		}
		if len(foils) == 0 {
			return nil, fmt.Errorf("plan batch %d has no foils", entry.Batch)
		}
		batchTargets, err := makeTargets(foils, &entry.Amount)
		if err != nil {
			return nil, err
		}
		targets = append(targets, batchTargets...)
	}
	return s.fund(ctx, seed, targets, expiry)
}

func (s *fundingService) CheckPlan(
	ctx context.Context, plan allocator.Plan,
) (*PlanReport, error) {
	report := &PlanReport{}
	for _, entry := range plan {
		foils, err := s.repo.GetByBatch(ctx, entry.Batch)
		if err != nil {
			return nil, err
		}
		status := PlanBatchStatus{
			Batch:         entry.Batch,
			PlannedAmount: entry.Amount,
			Missing:       len(foils) == 0,
			Foils:         len(foils),
		}
		for _, foil := range foils {
			if foil.IsFunded() {
				status.Funded++
			}
			if foil.Amount != nil && *foil.Amount != entry.Amount {
				status.AmountMismatches++
			}
		}
		report.Batches = append(report.Batches, status)
	}
	return report, nil
}

func makeTargets(foils []*domain.Foil, amount *int64) ([]fundTarget, error) {
	targets := make([]fundTarget, 0, len(foils))
	for _, foil := range foils {
		switch {
		case amount != nil:
			targets = append(targets, fundTarget{foil, *amount})
		case foil.Amount != nil:
			targets = append(targets, fundTarget{foil, *foil.Amount})
		default:
			return nil, fmt.Errorf("%w: foil %d", ErrAmountMissing, foil.ID)
		}
	}
	return targets, nil
}

func (s *fundingService) fund(
	ctx context.Context, seed string, targets []fundTarget, expiry int64,
) (*FundingReport, error) {
	sender, err := waves.KeyPairFromSeed(seed, 0)
	if err != nil {
		return nil, err
	}
	senderAddress, err := sender.Address(s.net.Scheme)
	if err != nil {
		return nil, err
	}

	var required int64
	for _, target := range targets {
		if !target.foil.IsFunded() {
			required += target.amount
		}
	}

	balance, err := s.wavesSvc.AssetBalance(senderAddress, s.net.AssetID)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"account":  senderAddress,
		"balance":  balance,
		"required": required,
	}).Info("operator account")
	if int64(balance) < required {
		return nil, fmt.Errorf(
			"%w: balance %d, required %d", ErrBalanceInsufficient, balance, required,
		)
	}

	report := &FundingReport{}
	for _, target := range targets {
		foil := target.foil
		address, err := foilAddress(foil, s.net.Scheme)
		if err != nil {
			return report, err
		}

		if foil.IsFunded() {
			log.WithField("address", address).Info(
				"skipping, funding txid is not empty",
			)
			report.SkippedFunded++
			continue
		}
		foilBalance, err := s.wavesSvc.AssetBalance(address, s.net.AssetID)
		if err != nil {
			return report, err
		}
		if foilBalance > 0 {
			log.WithFields(log.Fields{
				"address": address,
				"balance": foilBalance,
			}).Info("skipping, balance is not 0")
			report.SkippedBalance++
			continue
		}

		transfer, err := sender.SignTransfer(waves.TransferParams{
			Scheme:    s.net.Scheme,
			Recipient: address,
			AssetID:   s.net.AssetID,
			Amount:    uint64(target.amount),
			Fee:       uint64(s.txFee),
		})
		if err != nil {
			return report, err
		}
		txid, err := s.wavesSvc.BroadcastTransaction(transfer.JSON)
		if err != nil {
			return report, err
		}

		if err := foil.ConfirmFunding(
			txid, time.Now().Unix(), expiry, target.amount,
		); err != nil {
			return report, err
		}
		if err := s.repo.UpdateFoil(ctx, foil); err != nil {
			return report, err
		}

		log.WithFields(log.Fields{
			"address": address,
			"amount":  target.amount,
			"txid":    txid,
		}).Info("funded foil")
		report.Funded++
		report.TotalSent += target.amount
	}
	return report, nil
}
