package waves

// TransferTransaction is the Waves transaction type of an asset transfer.
const TransferTransaction = 4

// Network groups the chain parameters of one Waves network. An explicit
// Network value is passed to every component that needs chain awareness,
// there is no process-wide network state.
type Network struct {
	Name    string
	Scheme  byte
	NodeURL string
	AssetID string
}

// Transaction is a transaction of an address history as returned by a node,
// reduced to the fields this application acts on.
type Transaction struct {
	ID          string
	Type        int
	Sender      string
	Recipient   string
	AssetID     string
	Amount      uint64
	Fee         uint64
	TimestampMs uint64
}

// IsTransfer returns whether the transaction is an asset transfer.
func (t Transaction) IsTransfer() bool {
	return t.Type == TransferTransaction
}

// Service is the representation of a Waves node that allows to query
// balances, address histories and address validity, and to broadcast signed
// transactions. All calls are synchronous and blocking.
type Service interface {
	// BlockHeight returns the current height of the blockchain.
	BlockHeight() (uint64, error)
	// AssetBalance returns the balance of the given asset held by an address,
	// in minor units.
	AssetBalance(address, assetID string) (uint64, error)
	// TransactionsForAddress returns up to limit transactions of the address
	// history, newest first.
	TransactionsForAddress(address string, limit int) ([]Transaction, error)
	// ValidateAddress checks the address against the network's address rules.
	ValidateAddress(address string) (bool, error)
	// BroadcastTransaction submits a signed transaction in its JSON format and
	// returns the transaction id assigned by the node.
	BroadcastTransaction(txJSON []byte) (txid string, err error)
}
