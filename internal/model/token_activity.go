package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TokenActivity is the canonical record of one token event. It is keyed by
// (TransactionVersion, EventAccountAddress, EventCreationNumber, EventSequenceNumber).
type TokenActivity struct {
	TransactionVersion   int64            `json:"transaction_version"`
	EventAccountAddress  string           `json:"event_account_address"`
	EventCreationNumber  int64            `json:"event_creation_number"`
	EventSequenceNumber  int64            `json:"event_sequence_number"`
	TokenDataIDHash      string           `json:"token_data_id_hash"`
	PropertyVersion      decimal.Decimal  `json:"property_version"`
	CreatorAddress       string           `json:"creator_address"`
	CollectionName       string           `json:"collection_name"`
	Name                 string           `json:"name"`
	TransferType         string           `json:"transfer_type"`
	FromAddress          *string          `json:"from_address"`
	ToAddress            *string          `json:"to_address"`
	TokenAmount          decimal.Decimal  `json:"token_amount"`
	CoinType             *string          `json:"coin_type"`
	CoinAmount           *decimal.Decimal `json:"coin_amount"`
	CollectionDataIDHash string           `json:"collection_data_id_hash"`
	TransactionTimestamp time.Time        `json:"transaction_timestamp"`
	EventIndex           *int64           `json:"event_index"`
}

// Key returns the uniqueness key of the activity.
func (a TokenActivity) Key() ActivityKey {
	return ActivityKey{
		TransactionVersion:  a.TransactionVersion,
		EventAccountAddress: a.EventAccountAddress,
		EventCreationNumber: a.EventCreationNumber,
		EventSequenceNumber: a.EventSequenceNumber,
	}
}

// ActivityKey is the primary key of a token activity.
type ActivityKey struct {
	TransactionVersion  int64
	EventAccountAddress string
	EventCreationNumber int64
	EventSequenceNumber int64
}
