package application_test

import (
	"github.com/stretchr/testify/mock"

	"github.com/zap-network/zapfoil/pkg/waves"
)

// **** Waves node ****

type mockWavesService struct {
	mock.Mock
}

func (m *mockWavesService) BlockHeight() (uint64, error) {
	args := m.Called()

	var res uint64
	if a := args.Get(0); a != nil {
		res = a.(uint64)
	}
	return res, args.Error(1)
}

func (m *mockWavesService) AssetBalance(address, assetID string) (uint64, error) {
	args := m.Called(address, assetID)

	var res uint64
	if a := args.Get(0); a != nil {
		res = a.(uint64)
	}
	return res, args.Error(1)
}

func (m *mockWavesService) TransactionsForAddress(
	address string, limit int,
) ([]waves.Transaction, error) {
	args := m.Called(address, limit)

	var res []waves.Transaction
	if a := args.Get(0); a != nil {
		res = a.([]waves.Transaction)
	}
	return res, args.Error(1)
}

func (m *mockWavesService) ValidateAddress(address string) (bool, error) {
	args := m.Called(address)

	var res bool
	if a := args.Get(0); a != nil {
		res = a.(bool)
	}
	return res, args.Error(1)
}

func (m *mockWavesService) BroadcastTransaction(txJSON []byte) (string, error) {
	args := m.Called(txJSON)

	var res string
	if a := args.Get(0); a != nil {
		res = a.(string)
	}
	return res, args.Error(1)
}
