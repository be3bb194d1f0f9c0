package public

import (
	"github.com/ardanlabs/ledger/business/sys/validate"
)

// newTx represents a transaction submission from a client.
type newTx struct {
	Sender    string `json:"sender" validate:"required"`
	Recipient string `json:"recipient" validate:"required"`
	Amount    uint   `json:"amount" validate:"required,gt=0"`
}

// Validate checks the data in the model is considered clean.
func (ntx newTx) Validate() error {
	return validate.Check(ntx)
}

// registerNodes represents a peer registration request.
type registerNodes struct {
	Nodes []string `json:"nodes" validate:"required,min=1"`
}

// Validate checks the data in the model is considered clean.
func (rn registerNodes) Validate() error {
	return validate.Check(rn)
}
