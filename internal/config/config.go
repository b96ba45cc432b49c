package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"

	"github.com/zap-network/zapfoil/pkg/waves"
)

const (
	// DatadirKey is the local data directory holding the foil database
	DatadirKey = "DATADIR"
	// DbFileKey is the name of the sqlite database file inside the datadir
	DbFileKey = "DB_FILE"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// LogFileKey is the path of an optional rotating log file
	LogFileKey = "LOG_FILE"
	// TestnetNodeKey is the REST endpoint of the testnet node
	TestnetNodeKey = "TESTNET_NODE"
	// MainnetNodeKey is the REST endpoint of the mainnet node
	MainnetNodeKey = "MAINNET_NODE"
	// TestnetAssetIDKey is the asset identifier of the token on testnet
	TestnetAssetIDKey = "TESTNET_ASSET_ID"
	// MainnetAssetIDKey is the asset identifier of the token on mainnet; it
	// has no default and must be set before mainnet operations
	MainnetAssetIDKey = "MAINNET_ASSET_ID"
	// DefaultExpiryKey is the validity window in seconds applied to funded
	// foils when no expiry override is given
	DefaultExpiryKey = "DEFAULT_EXPIRY"
	// TxFeeKey is the fixed per-transfer fee in minor units of the asset
	TxFeeKey = "TX_FEE"
	// FirstBatchKey is the number the free-batch scan starts from. The legacy
	// numbering scheme started at 1, the current one at 1000.
	FirstBatchKey = "FIRST_BATCH"
	// ReconcileTxLimitKey is the history page size used when backfilling
	// missing funding data; a full page aborts the reconciliation
	ReconcileTxLimitKey = "RECONCILE_TX_LIMIT"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("zapfoil", false)

// InitConfig loads the configuration from FOIL_* environment variables and
// prepares the datadir.
func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("FOIL")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(DbFileKey, "foils.db")
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(TestnetNodeKey, "https://testnet1.wavesnodes.com")
	vip.SetDefault(MainnetNodeKey, "https://nodes.wavesnodes.com")
	vip.SetDefault(TestnetAssetIDKey, "CgUrFtinLXEbJwJVjwwcppk4Vpz1nMmR3H5cQaDcUcfe")
	vip.SetDefault(DefaultExpiryKey, 60*60*24*30*2)
	vip.SetDefault(TxFeeKey, 1)
	vip.SetDefault(FirstBatchKey, 1000)
	vip.SetDefault(ReconcileTxLimitKey, 100)

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetInt64(key string) int64 {
	return vip.GetInt64(key)
}

// DbPath returns the full path of the sqlite database file.
func DbPath() string {
	return filepath.Join(GetString(DatadirKey), GetString(DbFileKey))
}

// GetNetwork builds the chain parameters for the selected network.
func GetNetwork(mainnet bool) (*waves.Network, error) {
	if mainnet {
		assetID := GetString(MainnetAssetIDKey)
		if assetID == "" {
			return nil, fmt.Errorf(
				"mainnet asset id is not configured, set FOIL_%s", MainnetAssetIDKey,
			)
		}
		return &waves.Network{
			Name:    "mainnet",
			Scheme:  'W',
			NodeURL: GetString(MainnetNodeKey),
			AssetID: assetID,
		}, nil
	}
	return &waves.Network{
		Name:    "testnet",
		Scheme:  'T',
		NodeURL: GetString(TestnetNodeKey),
		AssetID: GetString(TestnetAssetIDKey),
	}, nil
}

func initDatadir() error {
	datadir := GetString(DatadirKey)
	if _, err := os.Stat(datadir); os.IsNotExist(err) {
		return os.MkdirAll(datadir, os.ModeDir|0755)
	}
	return nil
}
