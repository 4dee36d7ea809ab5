package model

import "time"

// Movement is one immutable ledger entry: an item changing location.
// Records are append-only; there is no update or delete.
type Movement struct {
	ID             int64     `json:"id"`
	Barcode        string    `json:"barcode"`
	Kind           string    `json:"kind"`
	Quantity       int       `json:"quantity"`
	TargetLocation string    `json:"target_location"`
	PerformedBy    string    `json:"performed_by,omitempty"`
	Note           string    `json:"note,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Movement kinds. A move into Storage is an entry, anything else an exit.
const (
	MovementEntry = "entry"
	MovementExit  = "exit"
)

// ClassifyMovement returns the movement kind for a target location.
func ClassifyMovement(targetLocation string) string {
	if targetLocation == LocationStorage {
		return MovementEntry
	}
	return MovementExit
}
