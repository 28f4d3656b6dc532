package domain

import "time"

// Command actions. CommandNone is the sentinel handed to a field unit when
// nothing is pending.
const (
	CommandOn   = "ON"
	CommandOff  = "OFF"
	CommandNone = "NONE"
)

// Command delivery states. A new operator action always rewrites the slot
// to pending, whatever state it was in.
const (
	CommandStatusPending   = "pending"
	CommandStatusDelivered = "delivered"
	CommandStatusExecuted  = "executed"
)

// Command the single-slot mailbox document per tenant. Not a log: the slot
// holds at most one outstanding command and a new write overwrites it.
type Command struct {
	Action    string    `json:"action"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
