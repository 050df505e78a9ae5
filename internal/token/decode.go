package token

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrMalformedEvent marks a recognized event whose payload does not match its shape.
var ErrMalformedEvent = errors.New("malformed token event")

type decodeFunc func(payload []byte) (Event, error)

var decoders = map[string]decodeFunc{
	MintTokenEventType:              decodeAs[MintTokenEvent]("id", "amount"),
	BurnTokenEventType:              decodeAs[BurnTokenEvent]("id", "amount"),
	MutateTokenPropertyMapEventType: decodeAs[MutateTokenPropertyMapEvent]("old_id", "new_id", "keys", "values", "types"),
	WithdrawTokenEventType:          decodeAs[WithdrawTokenEvent]("id", "amount"),
	DepositTokenEventType:           decodeAs[DepositTokenEvent]("id", "amount"),
	OfferTokenEventType:             decodeAs[OfferTokenEvent]("to_address", "token_id", "amount"),
	CancelTokenOfferEventType:       decodeAs[CancelTokenOfferEvent]("to_address", "token_id", "amount"),
	ClaimTokenEventType:             decodeAs[ClaimTokenEvent]("to_address", "token_id", "amount"),
}

// IsTokenEvent reports whether typeTag is one of the recognized token events.
func IsTokenEvent(typeTag string) bool {
	_, ok := decoders[typeTag]
	return ok
}

// Decode converts an event payload into its token event variant. It returns
// (nil, nil) for tags that are not token events, and an error wrapping
// ErrMalformedEvent when a recognized tag carries an unparseable payload.
func Decode(typeTag string, payload string) (Event, error) {
	decode, ok := decoders[typeTag]
	if !ok {
		return nil, nil
	}
	event, err := decode([]byte(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: type %s: %v", ErrMalformedEvent, typeTag, err)
	}
	return event, nil
}

func decodeAs[T Event](fields ...string) decodeFunc {
	return func(payload []byte) (Event, error) {
		if err := requireFields(payload, fields...); err != nil {
			return nil, err
		}
		var event T
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, err
		}
		if v, ok := any(event).(interface{ validate() error }); ok {
			if err := v.validate(); err != nil {
				return nil, err
			}
		}
		return event, nil
	}
}

// requireFields checks that data is a JSON object carrying every field with a non-null value.
func requireFields(data []byte, fields ...string) error {
	var present map[string]json.RawMessage
	if err := json.Unmarshal(data, &present); err != nil {
		return err
	}
	if present == nil {
		return fmt.Errorf("expected object, got null")
	}
	for _, field := range fields {
		raw, ok := present[field]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return fmt.Errorf("missing field %q", field)
		}
	}
	return nil
}

func requireNonNegative(field string, value decimal.Decimal) error {
	if value.IsNegative() {
		return fmt.Errorf("%s must be non-negative, got %s", field, value)
	}
	return nil
}
