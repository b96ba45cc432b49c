package application

import (
	"errors"
)

var (
	// ErrBalanceInsufficient is returned before any transfer when the
	// operator account cannot cover the remaining unfunded foils.
	ErrBalanceInsufficient = errors.New(
		"operator balance is not enough to fund the remaining foils",
	)
	// ErrAmountMissing ...
	ErrAmountMissing = errors.New(
		"foil has no stored amount and no amount override was given",
	)
	// ErrExpiryInvalid ...
	ErrExpiryInvalid = errors.New(
		"expiry must be a number of seconds or '<N>days'",
	)
	// ErrRecipientInvalid ...
	ErrRecipientInvalid = errors.New(
		"recipient is not a valid address for the selected network",
	)
	// ErrTooManyTransactions is returned when an address history fills the
	// whole page and the funding transaction cannot be identified safely.
	ErrTooManyTransactions = errors.New(
		"address has too many transactions to reconcile safely",
	)
	// ErrUnexpectedTxType ...
	ErrUnexpectedTxType = errors.New(
		"expected funding transaction is not a transfer",
	)
	// ErrUnexpectedAsset ...
	ErrUnexpectedAsset = errors.New(
		"expected funding transaction moves an unrecognized asset",
	)
	// ErrRecipientMismatch ...
	ErrRecipientMismatch = errors.New(
		"expected funding transaction does not pay the foil address",
	)
)
