package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestTokenActivityJSONFields(t *testing.T) {
	index := int64(2)
	activity := TokenActivity{
		TransactionVersion:   99,
		EventAccountAddress:  "0x01",
		PropertyVersion:      decimal.Zero,
		TokenAmount:          decimal.RequireFromString("18446744073709551615"),
		TransactionTimestamp: time.Unix(1700000000, 0).UTC(),
		EventIndex:           &index,
	}

	data, err := json.Marshal(activity)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if v, ok := decoded["token_amount"].(string); !ok || v != "18446744073709551615" {
		t.Fatalf("token_amount should be an exact string, got %v", decoded["token_amount"])
	}
	if _, ok := decoded["property_version"].(string); !ok {
		t.Fatalf("property_version should be string")
	}
	for _, key := range []string{"from_address", "to_address", "coin_type", "coin_amount"} {
		value, ok := decoded[key]
		if !ok || value != nil {
			t.Fatalf("%s should be present and null, got %v", key, value)
		}
	}
	if decoded["event_index"] != float64(2) {
		t.Fatalf("event_index mismatch: %v", decoded["event_index"])
	}
}

func TestTokenActivityKey(t *testing.T) {
	a := TokenActivity{TransactionVersion: 1, EventAccountAddress: "0x2", EventCreationNumber: 3, EventSequenceNumber: 4}
	want := ActivityKey{TransactionVersion: 1, EventAccountAddress: "0x2", EventCreationNumber: 3, EventSequenceNumber: 4}
	if a.Key() != want {
		t.Fatalf("key mismatch: %+v", a.Key())
	}
}

func TestTimestampTime(t *testing.T) {
	ts := Timestamp{Seconds: 1700000000, Nanos: 123}
	got := ts.Time()
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC")
	}
	if got.Unix() != 1700000000 || got.Nanosecond() != 123 {
		t.Fatalf("timestamp mismatch: %s", got)
	}
}
