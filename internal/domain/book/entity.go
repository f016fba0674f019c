package book

import (
	"github.com/shopspring/decimal"
)

// Candidate is one stale book entry a client wants validated: the order
// identity plus the price and quantity the client currently holds for it.
type Candidate struct {
	Secnum   uint64          `json:"secnum"`
	Price    decimal.Decimal `json:"price"`
	Quantity uint64          `json:"quantity"`
}

// Action discriminates a correction instruction.
type Action string

const (
	// ActionUpdate tells the client to replace its entry with the
	// corrected fields.
	ActionUpdate Action = "update"
	// ActionDelete tells the client to drop the entry entirely.
	ActionDelete Action = "delete"
)

// Instruction is one correction step for a single candidate. Price and
// Quantity are meaningful for updates only.
type Instruction struct {
	Action   Action          `json:"action"`
	Secnum   uint64          `json:"secnum"`
	Price    decimal.Decimal `json:"price,omitempty"`
	Quantity uint64          `json:"quantity,omitempty"`
}

// Correction is the reconciliation answer for one ask/bid candidate pair.
// A nil side means the client's copy already matches store state.
type Correction struct {
	Ask *Instruction `json:"ask,omitempty"`
	Bid *Instruction `json:"bid,omitempty"`
}
