package waves

import (
	"strings"

	"github.com/vulpemventures/go-bip39"
)

// NormalizeMnemonic collapses whitespace so the phrase can be compared and
// hashed deterministically.
func NormalizeMnemonic(mnemonic string) string {
	return strings.Join(strings.Fields(mnemonic), " ")
}

// IsMnemonicValid returns whether the given words are a valid bip39 mnemonic.
func IsMnemonicValid(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}
