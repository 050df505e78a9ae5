package activity

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tokenScope/internal/address"
	"tokenScope/internal/model"
	"tokenScope/internal/token"
)

var (
	// ErrMissingUserTransaction is returned for transactions without a user payload.
	ErrMissingUserTransaction = errors.New("user transaction payload missing")
	// ErrMissingTimestamp is returned for transactions without a timestamp.
	ErrMissingTimestamp = errors.New("transaction timestamp missing")
	// ErrMissingEventKey is returned for token events without an event key.
	ErrMissingEventKey = errors.New("event key missing")
)

// FromTransaction maps every token event of a user transaction to a
// TokenActivity, in event order. Events that are not token events are
// skipped but still consume their index. Any malformed input fails the whole
// transaction and no activities are returned.
func FromTransaction(txn model.Transaction) ([]model.TokenActivity, error) {
	if txn.UserTransaction == nil {
		return nil, fmt.Errorf("version %d (type %q): %w", txn.Version, txn.Type, ErrMissingUserTransaction)
	}
	if txn.Timestamp == nil {
		return nil, fmt.Errorf("version %d: %w", txn.Version, ErrMissingTimestamp)
	}

	version := int64(txn.Version)
	timestamp := txn.Timestamp.Time()

	activities := make([]model.TokenActivity, 0)
	for index, event := range txn.UserTransaction.Events {
		tokenEvent, err := token.Decode(event.TypeStr, event.Data)
		if err != nil {
			return nil, fmt.Errorf("version %d event %d: %w", txn.Version, index, err)
		}
		if tokenEvent == nil {
			continue
		}

		activity, err := FromEvent(event, tokenEvent, version, timestamp, int64(index))
		if err != nil {
			return nil, fmt.Errorf("version %d event %d: %w", txn.Version, index, err)
		}
		activities = append(activities, activity)
	}

	return activities, nil
}

// FromEvent builds the activity for a decoded token event.
func FromEvent(
	event model.Event,
	tokenEvent token.Event,
	version int64,
	timestamp time.Time,
	eventIndex int64,
) (model.TokenActivity, error) {
	if event.Key == nil {
		return model.TokenActivity{}, ErrMissingEventKey
	}
	if err := address.Validate(event.Key.AccountAddress); err != nil {
		return model.TokenActivity{}, fmt.Errorf("event key: %w", err)
	}
	eventAddress := address.Standardize(event.Key.AccountAddress)

	var (
		id     token.TokenID
		from   *string
		to     *string
		amount decimal.Decimal
	)

	switch inner := tokenEvent.(type) {
	case token.MintTokenEvent:
		id = inner.ID.WithVersion(decimal.Zero)
		from = stringPtr(eventAddress)
		amount = inner.Amount
	case token.BurnTokenEvent:
		id = inner.ID
		from = stringPtr(eventAddress)
		amount = inner.Amount
	case token.MutateTokenPropertyMapEvent:
		id = inner.NewID
		from = stringPtr(eventAddress)
		amount = decimal.Zero
	case token.WithdrawTokenEvent:
		id = inner.ID
		from = stringPtr(eventAddress)
		amount = inner.Amount
	case token.DepositTokenEvent:
		id = inner.ID
		to = stringPtr(address.Standardize(eventAddress))
		amount = inner.Amount
	case token.OfferTokenEvent:
		id, from, to, amount = fromOffer(eventAddress, inner.TransferOffer)
	case token.CancelTokenOfferEvent:
		id, from, to, amount = fromOffer(eventAddress, inner.TransferOffer)
	case token.ClaimTokenEvent:
		id, from, to, amount = fromOffer(eventAddress, inner.TransferOffer)
	default:
		return model.TokenActivity{}, fmt.Errorf("unhandled token event %T", tokenEvent)
	}

	return model.TokenActivity{
		TransactionVersion:   version,
		EventAccountAddress:  eventAddress,
		EventCreationNumber:  int64(event.Key.CreationNumber),
		EventSequenceNumber:  int64(event.SequenceNumber),
		TokenDataIDHash:      id.Hash(),
		PropertyVersion:      id.PropertyVersion,
		CreatorAddress:       id.TokenDataID.CreatorAddress(),
		CollectionName:       id.TokenDataID.TruncatedCollection(),
		Name:                 id.TokenDataID.TruncatedName(),
		TransferType:         event.TypeStr,
		FromAddress:          from,
		ToAddress:            to,
		TokenAmount:          amount,
		CoinType:             nil,
		CoinAmount:           nil,
		CollectionDataIDHash: id.CollectionHash(),
		TransactionTimestamp: timestamp,
		EventIndex:           &eventIndex,
	}, nil
}

func fromOffer(eventAddress string, offer token.TransferOffer) (token.TokenID, *string, *string, decimal.Decimal) {
	return offer.TokenID, stringPtr(eventAddress), stringPtr(offer.ToAddressCanonical()), offer.Amount
}

func stringPtr(value string) *string {
	return &value
}
