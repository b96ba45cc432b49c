package waves

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/wavesplatform/gowaves/pkg/crypto"
	"github.com/wavesplatform/gowaves/pkg/proto"
)

// KeyPair wraps a curve25519 keypair controlling one Waves account. All key
// generation, address derivation and transaction signing is delegated to the
// gowaves primitives.
type KeyPair struct {
	secret crypto.SecretKey
	public crypto.PublicKey
}

// NewKeyPair generates a keypair from fresh random entropy.
func NewKeyPair() (*KeyPair, error) {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}
	return keyPairFromSeedBytes(seed)
}

// KeyPairFromSecret restores a keypair from a base58 encoded secret key.
func KeyPairFromSecret(secret string) (*KeyPair, error) {
	sk, err := crypto.NewSecretKeyFromBase58(secret)
	if err != nil {
		return nil, err
	}
	return &KeyPair{secret: sk, public: crypto.GeneratePublicKey(sk)}, nil
}

// KeyPairFromSeed derives the account keypair of a seed phrase using the
// standard nonce-prefixed secure hash derivation.
func KeyPairFromSeed(seed string, nonce uint32) (*KeyPair, error) {
	s := make([]byte, 4+len(seed))
	binary.BigEndian.PutUint32(s, nonce)
	copy(s[4:], seed)
	accountSeed, err := crypto.SecureHash(s)
	if err != nil {
		return nil, err
	}
	return keyPairFromSeedBytes(accountSeed.Bytes())
}

func keyPairFromSeedBytes(seed []byte) (*KeyPair, error) {
	sk, pk, err := crypto.GenerateKeyPair(seed)
	if err != nil {
		return nil, err
	}
	return &KeyPair{secret: sk, public: pk}, nil
}

// Secret returns the base58 encoded secret key.
func (k *KeyPair) Secret() string {
	return k.secret.String()
}

// Address derives the account address for the given network scheme.
func (k *KeyPair) Address(scheme byte) (string, error) {
	addr, err := proto.NewAddressFromPublicKey(scheme, k.public)
	if err != nil {
		return "", err
	}
	return addr.String(), nil
}

// TransferParams describes one asset transfer. The fee is paid in the
// transferred asset.
type TransferParams struct {
	Scheme    byte
	Recipient string
	AssetID   string
	Amount    uint64
	Fee       uint64
}

// SignedTransfer is a signed transfer transaction ready for broadcast.
type SignedTransfer struct {
	ID   string
	JSON []byte
}

// SignTransfer builds and signs a transfer of the given asset from this
// keypair's account.
func (k *KeyPair) SignTransfer(p TransferParams) (*SignedTransfer, error) {
	asset, err := proto.NewOptionalAssetFromString(p.AssetID)
	if err != nil {
		return nil, err
	}
	recipient, err := proto.NewAddressFromString(p.Recipient)
	if err != nil {
		return nil, err
	}

	timestamp := uint64(time.Now().UnixMilli())
	tx := proto.NewUnsignedTransferWithProofs(
		2, k.public, *asset, *asset, timestamp, p.Amount, p.Fee,
		proto.NewRecipientFromAddress(recipient), nil,
	)
	if err := tx.Sign(p.Scheme, k.secret); err != nil {
		return nil, err
	}

	body, err := json.Marshal(tx)
	if err != nil {
		return nil, err
	}
	return &SignedTransfer{ID: tx.ID.String(), JSON: body}, nil
}
