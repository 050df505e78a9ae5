package model

import "time"

// Transaction types as reported by the transaction stream.
const (
	TransactionTypeUser            = "user"
	TransactionTypeGenesis         = "genesis"
	TransactionTypeBlockMetadata   = "block_metadata"
	TransactionTypeStateCheckpoint = "state_checkpoint"
)

// Transaction is one committed transaction read from the stream.
type Transaction struct {
	Version         uint64           `json:"version"`
	Type            string           `json:"type,omitempty"`
	Timestamp       *Timestamp       `json:"timestamp,omitempty"`
	UserTransaction *UserTransaction `json:"user_transaction,omitempty"`
}

// UserTransaction carries the events emitted by a user-authored transaction.
type UserTransaction struct {
	Events []Event `json:"events"`
}

// Event is a raw on-chain event. Data is the JSON-encoded Move value.
type Event struct {
	Key            *EventKey `json:"key,omitempty"`
	SequenceNumber uint64    `json:"sequence_number"`
	TypeStr        string    `json:"type_str"`
	Data           string    `json:"data"`
}

// EventKey identifies the event handle that emitted an event.
type EventKey struct {
	CreationNumber uint64 `json:"creation_number"`
	AccountAddress string `json:"account_address"`
}

// Timestamp is a protobuf-style timestamp.
type Timestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int32 `json:"nanos"`
}

// Time converts the timestamp to UTC.
func (ts Timestamp) Time() time.Time {
	return time.Unix(ts.Seconds, int64(ts.Nanos)).UTC()
}
