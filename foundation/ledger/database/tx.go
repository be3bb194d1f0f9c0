package database

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTx is returned when a transaction fails field validation. The
// transaction never enters the mempool or the chain.
var ErrInvalidTx = errors.New("invalid transaction")

// Tx represents a transfer between two parties. The fields are declared in
// sorted json key order so the marshaled form is the canonical encoding the
// block hash is computed over. A Tx is immutable once constructed.
type Tx struct {
	Amount    uint   `json:"amount"`
	Recipient string `json:"recipient"`
	Sender    string `json:"sender"`
	TimeStamp uint64 `json:"timestamp"`
}

// NewTx constructs a transaction and validates the field invariants.
func NewTx(sender string, recipient string, amount uint) (Tx, error) {
	tx := Tx{
		Amount:    amount,
		Recipient: recipient,
		Sender:    sender,
		TimeStamp: uint64(time.Now().UTC().Unix()),
	}

	if err := tx.Validate(); err != nil {
		return Tx{}, err
	}

	return tx, nil
}

// Validate checks the transaction holds the field invariants.
func (tx Tx) Validate() error {
	if tx.Sender == "" {
		return fmt.Errorf("%w: sender is empty", ErrInvalidTx)
	}

	if tx.Recipient == "" {
		return fmt.Errorf("%w: recipient is empty", ErrInvalidTx)
	}

	if tx.Amount == 0 {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalidTx)
	}

	return nil
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s -> %s: %d", tx.Sender, tx.Recipient, tx.Amount)
}
