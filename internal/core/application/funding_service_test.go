package application_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zap-network/zapfoil/internal/core/application"
	"github.com/zap-network/zapfoil/internal/core/domain"
	"github.com/zap-network/zapfoil/pkg/allocator"
	"github.com/zap-network/zapfoil/pkg/waves"
)

const operatorSeed = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func operatorAddress(t *testing.T) string {
	keyPair, err := waves.KeyPairFromSeed(operatorSeed, 0)
	require.NoError(t, err)
	address, err := keyPair.Address('T')
	require.NoError(t, err)
	return address
}

func TestFundBatchIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	foilA, addrA := newTestFoil(t, 1000, nil)
	foilB, addrB := newTestFoil(t, 1000, nil)
	require.NoError(t, repo.InsertBatch(ctx, []*domain.Foil{foilA, foilB}))

	wavesSvc := &mockWavesService{}
	wavesSvc.On("AssetBalance", operatorAddress(t), testAssetID).
		Return(uint64(10000), nil)
	wavesSvc.On("AssetBalance", addrA, testAssetID).Return(uint64(0), nil)
	wavesSvc.On("AssetBalance", addrB, testAssetID).Return(uint64(0), nil)
	wavesSvc.On("BroadcastTransaction", mock.Anything).
		Return("funding-tx-1", nil).Once()
	wavesSvc.On("BroadcastTransaction", mock.Anything).
		Return("funding-tx-2", nil).Once()

	fundingSvc := application.NewFundingService(repo, wavesSvc, testNetwork(), 1)
	expiry := time.Now().Unix() + 3600

	report, err := fundingSvc.FundBatch(
		ctx, operatorSeed, 1000, int64Ptr(501), expiry,
	)
	require.NoError(t, err)
	require.Equal(t, 2, report.Funded)
	require.Equal(t, int64(1002), report.TotalSent)

	foils, err := repo.GetByBatch(ctx, 1000)
	require.NoError(t, err)
	for _, foil := range foils {
		require.True(t, foil.IsFunded())
		require.NotNil(t, foil.FundingDate)
		require.Equal(t, expiry, *foil.Expiry)
		require.Equal(t, int64(501), *foil.Amount)
	}

	// a second run must not produce any duplicate transfers
	report, err = fundingSvc.FundBatch(
		ctx, operatorSeed, 1000, int64Ptr(501), expiry,
	)
	require.NoError(t, err)
	require.Equal(t, 0, report.Funded)
	require.Equal(t, 2, report.SkippedFunded)
	wavesSvc.AssertNumberOfCalls(t, "BroadcastTransaction", 2)
}

func TestFundBatchSkipsNonZeroBalances(t *testing.T) {
	repo := newTestRepo(t)
	foilA, addrA := newTestFoil(t, 1000, int64Ptr(501))
	foilB, addrB := newTestFoil(t, 1000, int64Ptr(501))
	require.NoError(t, repo.InsertBatch(ctx, []*domain.Foil{foilA, foilB}))

	wavesSvc := &mockWavesService{}
	wavesSvc.On("AssetBalance", operatorAddress(t), testAssetID).
		Return(uint64(10000), nil)
	// externally funded or reused, must be left alone
	wavesSvc.On("AssetBalance", addrA, testAssetID).Return(uint64(42), nil)
	wavesSvc.On("AssetBalance", addrB, testAssetID).Return(uint64(0), nil)
	wavesSvc.On("BroadcastTransaction", mock.Anything).
		Return("funding-tx-1", nil).Once()

	fundingSvc := application.NewFundingService(repo, wavesSvc, testNetwork(), 1)
	report, err := fundingSvc.FundBatch(
		ctx, operatorSeed, 1000, nil, time.Now().Unix()+3600,
	)
	require.NoError(t, err)
	require.Equal(t, 1, report.Funded)
	require.Equal(t, 1, report.SkippedBalance)

	foils, err := repo.GetByBatch(ctx, 1000)
	require.NoError(t, err)
	require.False(t, foils[0].IsFunded())
	require.True(t, foils[1].IsFunded())
}

func TestFundBatchAbortsOnInsufficientBalance(t *testing.T) {
	repo := newTestRepo(t)
	foil, _ := newTestFoil(t, 1000, int64Ptr(501))
	require.NoError(t, repo.InsertBatch(ctx, []*domain.Foil{foil}))

	wavesSvc := &mockWavesService{}
	wavesSvc.On("AssetBalance", operatorAddress(t), testAssetID).
		Return(uint64(100), nil)

	fundingSvc := application.NewFundingService(repo, wavesSvc, testNetwork(), 1)
	_, err := fundingSvc.FundBatch(
		ctx, operatorSeed, 1000, nil, time.Now().Unix()+3600,
	)
	require.True(t, errors.Is(err, application.ErrBalanceInsufficient))
	wavesSvc.AssertNotCalled(t, "BroadcastTransaction", mock.Anything)

	foils, err := repo.GetByBatch(ctx, 1000)
	require.NoError(t, err)
	require.False(t, foils[0].IsFunded())
}

func TestFundBatchRequiresAnAmount(t *testing.T) {
	repo := newTestRepo(t)
	foil, _ := newTestFoil(t, 1000, nil)
	require.NoError(t, repo.InsertBatch(ctx, []*domain.Foil{foil}))

	fundingSvc := application.NewFundingService(
		repo, &mockWavesService{}, testNetwork(), 1,
	)
	_, err := fundingSvc.FundBatch(
		ctx, operatorSeed, 1000, nil, time.Now().Unix()+3600,
	)
	require.True(t, errors.Is(err, application.ErrAmountMissing))
}

func TestFundPlan(t *testing.T) {
	repo := newTestRepo(t)
	foilA, addrA := newTestFoil(t, 1000, nil)
	foilB, addrB := newTestFoil(t, 1001, nil)
	require.NoError(t, repo.InsertBatch(ctx, []*domain.Foil{foilA}))
	require.NoError(t, repo.InsertBatch(ctx, []*domain.Foil{foilB}))

	plan := allocator.Plan{
		{Batch: 1000, Amount: 501},
		{Batch: 1001, Amount: 1001},
	}

	wavesSvc := &mockWavesService{}
	wavesSvc.On("AssetBalance", operatorAddress(t), testAssetID).
		Return(uint64(10000), nil)
	wavesSvc.On("AssetBalance", addrA, testAssetID).Return(uint64(0), nil)
	wavesSvc.On("AssetBalance", addrB, testAssetID).Return(uint64(0), nil)
	wavesSvc.On("BroadcastTransaction", mock.Anything).
		Return("funding-tx-1", nil).Once()
	wavesSvc.On("BroadcastTransaction", mock.Anything).
		Return("funding-tx-2", nil).Once()

	fundingSvc := application.NewFundingService(repo, wavesSvc, testNetwork(), 1)
	report, err := fundingSvc.FundPlan(
		ctx, operatorSeed, plan, time.Now().Unix()+3600,
	)
	require.NoError(t, err)
	require.Equal(t, 2, report.Funded)
	require.Equal(t, int64(1502), report.TotalSent)

	foils, err := repo.GetByBatchRange(ctx, 1000, 1001)
	require.NoError(t, err)
	require.Equal(t, int64(501), *foils[0].Amount)
	require.Equal(t, int64(1001), *foils[1].Amount)
}

func TestCheckPlan(t *testing.T) {
	repo := newTestRepo(t)
	foilA, _ := newTestFoil(t, 1000, int64Ptr(501))
	foilB, _ := newTestFoil(t, 1000, int64Ptr(600))
	require.NoError(t, repo.InsertBatch(ctx, []*domain.Foil{foilA, foilB}))

	plan := allocator.Plan{
		{Batch: 1000, Amount: 501},
		{Batch: 1001, Amount: 501},
	}

	fundingSvc := application.NewFundingService(
		repo, &mockWavesService{}, testNetwork(), 1,
	)
	report, err := fundingSvc.CheckPlan(ctx, plan)
	require.NoError(t, err)
	require.Len(t, report.Batches, 2)
	require.Equal(t, 2, report.Batches[0].Foils)
	require.Equal(t, 1, report.Batches[0].AmountMismatches)
	require.True(t, report.Batches[1].Missing)
	require.True(t, report.Mismatched())
}
