package application_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zap-network/zapfoil/internal/core/application"
	"github.com/zap-network/zapfoil/internal/core/domain"
	"github.com/zap-network/zapfoil/pkg/waves"
)

func recipientAddress(t *testing.T) string {
	keyPair, err := waves.NewKeyPair()
	require.NoError(t, err)
	address, err := keyPair.Address('T')
	require.NoError(t, err)
	return address
}

func TestSweepSelectsExpiredFundedFoils(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Now().Unix()

	expired, expiredAddress := newTestFoil(t, 1000, int64Ptr(501))
	require.NoError(t, expired.ConfirmFunding("tx-expired", now-7200, now-3600, 501))
	active, _ := newTestFoil(t, 1000, int64Ptr(501))
	require.NoError(t, active.ConfirmFunding("tx-active", now, now+3600, 501))
	unfunded, _ := newTestFoil(t, 1000, nil)
	drained, drainedAddress := newTestFoil(t, 1001, int64Ptr(501))
	require.NoError(t, drained.ConfirmFunding("tx-drained", now-7200, now-3600, 501))

	require.NoError(t, repo.InsertBatch(ctx, []*domain.Foil{expired, active, unfunded}))
	require.NoError(t, repo.InsertBatch(ctx, []*domain.Foil{drained}))

	recipient := recipientAddress(t)
	wavesSvc := &mockWavesService{}
	wavesSvc.On("ValidateAddress", recipient).Return(true, nil)
	wavesSvc.On("AssetBalance", expiredAddress, testAssetID).
		Return(uint64(501), nil)
	wavesSvc.On("AssetBalance", drainedAddress, testAssetID).
		Return(uint64(0), nil)
	wavesSvc.On("BroadcastTransaction", mock.Anything).
		Return("sweep-tx-1", nil).Once()

	sweepSvc := application.NewSweepService(repo, wavesSvc, testNetwork(), 1)
	report, err := sweepSvc.Sweep(ctx, recipient, 1000, 1001, false)
	require.NoError(t, err)
	require.Equal(t, 1, report.Swept)
	require.Equal(t, uint64(500), report.TotalSwept)
	require.Equal(t, 1, report.SkippedUnfunded)
	require.Equal(t, 1, report.SkippedNotExpired)
	require.Equal(t, 1, report.SkippedZeroBalance)
	wavesSvc.AssertNumberOfCalls(t, "BroadcastTransaction", 1)
}

func TestSweepIgnoreExpiryOverride(t *testing.T) {
	repo := newTestRepo(t)
	now := time.Now().Unix()

	active, activeAddress := newTestFoil(t, 1000, int64Ptr(501))
	require.NoError(t, active.ConfirmFunding("tx-active", now, now+3600, 501))
	require.NoError(t, repo.InsertBatch(ctx, []*domain.Foil{active}))

	recipient := recipientAddress(t)
	wavesSvc := &mockWavesService{}
	wavesSvc.On("ValidateAddress", recipient).Return(true, nil)
	wavesSvc.On("AssetBalance", activeAddress, testAssetID).
		Return(uint64(501), nil)
	wavesSvc.On("BroadcastTransaction", mock.Anything).
		Return("sweep-tx-1", nil).Once()

	sweepSvc := application.NewSweepService(repo, wavesSvc, testNetwork(), 1)
	report, err := sweepSvc.Sweep(ctx, recipient, 1000, 1000, true)
	require.NoError(t, err)
	require.Equal(t, 1, report.Swept)
}

func TestSweepNeverTouchesUnfundedFoils(t *testing.T) {
	repo := newTestRepo(t)
	unfunded, _ := newTestFoil(t, 1000, int64Ptr(501))
	require.NoError(t, repo.InsertBatch(ctx, []*domain.Foil{unfunded}))

	recipient := recipientAddress(t)
	wavesSvc := &mockWavesService{}
	wavesSvc.On("ValidateAddress", recipient).Return(true, nil)

	sweepSvc := application.NewSweepService(repo, wavesSvc, testNetwork(), 1)
	report, err := sweepSvc.Sweep(ctx, recipient, 1000, 1000, true)
	require.NoError(t, err)
	require.Equal(t, 0, report.Swept)
	require.Equal(t, 1, report.SkippedUnfunded)
	wavesSvc.AssertNotCalled(t, "AssetBalance", mock.Anything, mock.Anything)
	wavesSvc.AssertNotCalled(t, "BroadcastTransaction", mock.Anything)
}

func TestSweepFailsFastOnInvalidRecipient(t *testing.T) {
	repo := newTestRepo(t)
	foil, _ := newTestFoil(t, 1000, int64Ptr(501))
	require.NoError(t, repo.InsertBatch(ctx, []*domain.Foil{foil}))

	wavesSvc := &mockWavesService{}
	wavesSvc.On("ValidateAddress", "not-an-address").Return(false, nil)

	sweepSvc := application.NewSweepService(repo, wavesSvc, testNetwork(), 1)
	_, err := sweepSvc.Sweep(ctx, "not-an-address", 1000, 1000, true)
	require.True(t, errors.Is(err, application.ErrRecipientInvalid))
	wavesSvc.AssertNotCalled(t, "AssetBalance", mock.Anything, mock.Anything)
}
