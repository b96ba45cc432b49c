package application

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/zap-network/zapfoil/internal/core/domain"
	"github.com/zap-network/zapfoil/pkg/waves"
)

// BatchService creates foil batches and reads them back.
type BatchService interface {
	// CreateBatches creates batchCount batches of batchSize foils each,
	// assigning every batch the next free batch number. Amount may be nil to
	// leave the face value unset until funding. Each batch is inserted
	// atomically.
	CreateBatches(
		ctx context.Context, batchSize, batchCount int, amount *int64,
	) ([]int, error)
	// ListFoils returns the foils of one batch, or all foils when batch is
	// nil, optionally annotated with their live on-chain balance.
	ListFoils(
		ctx context.Context, batch *int, withBalance bool,
	) ([]FoilInfo, error)
}

type batchService struct {
	repo       domain.FoilRepository
	wavesSvc   waves.Service
	net        waves.Network
	firstBatch int
}

// NewBatchService is a constructor function for BatchService. The waves
// service may be nil when live balances are not requested.
func NewBatchService(
	repo domain.FoilRepository,
	wavesSvc waves.Service,
	net waves.Network,
	firstBatch int,
) BatchService {
	return &batchService{
		repo:       repo,
		wavesSvc:   wavesSvc,
		net:        net,
		firstBatch: firstBatch,
	}
}

func (s *batchService) CreateBatches(
	ctx context.Context, batchSize, batchCount int, amount *int64,
) ([]int, error) {
	batches := make([]int, 0, batchCount)
	for i := 0; i < batchCount; i++ {
		batch, err := s.repo.NextBatchNumber(ctx, s.firstBatch)
		if err != nil {
			return batches, err
		}

		foils := make([]*domain.Foil, 0, batchSize)
		for j := 0; j < batchSize; j++ {
			keyPair, err := waves.NewKeyPair()
			if err != nil {
				return batches, err
			}
			foils = append(foils, domain.NewFoil(batch, keyPair.Secret(), amount))
		}
		if err := s.repo.InsertBatch(ctx, foils); err != nil {
			return batches, err
		}

		log.WithFields(log.Fields{
			"batch": batch,
			"size":  batchSize,
		}).Info("created batch")
		batches = append(batches, batch)
	}
	return batches, nil
}

func (s *batchService) ListFoils(
	ctx context.Context, batch *int, withBalance bool,
) ([]FoilInfo, error) {
	if withBalance && s.wavesSvc == nil {
		return nil, errors.New("live balances require a node connection")
	}

	var foils []*domain.Foil
	var err error
	if batch != nil {
		foils, err = s.repo.GetByBatch(ctx, *batch)
	} else {
		foils, err = s.repo.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	infos := make([]FoilInfo, 0, len(foils))
	for _, foil := range foils {
		address, err := foilAddress(foil, s.net.Scheme)
		if err != nil {
			return nil, err
		}
		info := FoilInfo{
			ID:          foil.ID,
			Date:        foil.Date,
			Batch:       foil.Batch,
			Address:     address,
			SecretKey:   foil.SecretKey,
			Amount:      foil.Amount,
			FundingTxID: foil.FundingTxID,
			FundingDate: foil.FundingDate,
			Expiry:      foil.Expiry,
		}
		if withBalance {
			balance, err := s.wavesSvc.AssetBalance(address, s.net.AssetID)
			if err != nil {
				return nil, err
			}
			info.Balance = &balance
		}
		infos = append(infos, info)
	}
	return infos, nil
}
