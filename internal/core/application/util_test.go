package application_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zap-network/zapfoil/internal/core/domain"
	"github.com/zap-network/zapfoil/internal/infrastructure/storage/db/sqlite"
	"github.com/zap-network/zapfoil/pkg/waves"
)

var ctx = context.Background()

const testAssetID = "CgUrFtinLXEbJwJVjwwcppk4Vpz1nMmR3H5cQaDcUcfe"

func testNetwork() waves.Network {
	return waves.Network{
		Name:    "testnet",
		Scheme:  'T',
		AssetID: testAssetID,
	}
}

func newTestRepo(t *testing.T) domain.FoilRepository {
	repo, err := sqlite.NewFoilRepository(filepath.Join(t.TempDir(), "foils.db"))
	require.NoError(t, err)
	return repo
}

// newTestFoil returns an unfunded foil with a fresh keypair along with its
// testnet address.
func newTestFoil(t *testing.T, batch int, amount *int64) (*domain.Foil, string) {
	keyPair, err := waves.NewKeyPair()
	require.NoError(t, err)
	address, err := keyPair.Address('T')
	require.NoError(t, err)
	return domain.NewFoil(batch, keyPair.Secret(), amount), address
}

func int64Ptr(v int64) *int64 {
	return &v
}
