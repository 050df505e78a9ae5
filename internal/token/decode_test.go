package token

import (
	"errors"
	"testing"
)

const (
	dataIDJSON  = `{"creator":"0xabc","collection":"Swords","name":"Excalibur"}`
	tokenIDJSON = `{"token_data_id":` + dataIDJSON + `,"property_version":"3"}`
)

func TestDecodeVariants(t *testing.T) {
	offer := `{"to_address":"0xdef","token_id":` + tokenIDJSON + `,"amount":"1"}`

	cases := []struct {
		tag     string
		payload string
		check   func(t *testing.T, event Event)
	}{
		{MintTokenEventType, `{"id":` + dataIDJSON + `,"amount":"5"}`, func(t *testing.T, event Event) {
			mint, ok := event.(MintTokenEvent)
			if !ok {
				t.Fatalf("expected MintTokenEvent, got %T", event)
			}
			if mint.Amount.String() != "5" || mint.ID.Name != "Excalibur" {
				t.Fatalf("mint mismatch: %+v", mint)
			}
		}},
		{BurnTokenEventType, `{"id":` + tokenIDJSON + `,"amount":"2"}`, func(t *testing.T, event Event) {
			burn, ok := event.(BurnTokenEvent)
			if !ok {
				t.Fatalf("expected BurnTokenEvent, got %T", event)
			}
			if burn.ID.PropertyVersion.String() != "3" || burn.Amount.String() != "2" {
				t.Fatalf("burn mismatch: %+v", burn)
			}
		}},
		{MutateTokenPropertyMapEventType, `{"old_id":` + tokenIDJSON + `,"new_id":{"token_data_id":` + dataIDJSON + `,"property_version":"4"},"keys":["k"],"values":["0x01"],"types":["u8"]}`, func(t *testing.T, event Event) {
			mutate, ok := event.(MutateTokenPropertyMapEvent)
			if !ok {
				t.Fatalf("expected MutateTokenPropertyMapEvent, got %T", event)
			}
			if mutate.NewID.PropertyVersion.String() != "4" || mutate.OldID.PropertyVersion.String() != "3" {
				t.Fatalf("mutate mismatch: %+v", mutate)
			}
		}},
		{WithdrawTokenEventType, `{"id":` + tokenIDJSON + `,"amount":1}`, func(t *testing.T, event Event) {
			if _, ok := event.(WithdrawTokenEvent); !ok {
				t.Fatalf("expected WithdrawTokenEvent, got %T", event)
			}
		}},
		{DepositTokenEventType, `{"id":` + tokenIDJSON + `,"amount":"1"}`, func(t *testing.T, event Event) {
			if _, ok := event.(DepositTokenEvent); !ok {
				t.Fatalf("expected DepositTokenEvent, got %T", event)
			}
		}},
		{OfferTokenEventType, offer, func(t *testing.T, event Event) {
			o, ok := event.(OfferTokenEvent)
			if !ok {
				t.Fatalf("expected OfferTokenEvent, got %T", event)
			}
			if o.ToAddress != "0xdef" || o.TokenID.TokenDataID.Collection != "Swords" {
				t.Fatalf("offer mismatch: %+v", o)
			}
		}},
		{CancelTokenOfferEventType, offer, func(t *testing.T, event Event) {
			if _, ok := event.(CancelTokenOfferEvent); !ok {
				t.Fatalf("expected CancelTokenOfferEvent, got %T", event)
			}
		}},
		{ClaimTokenEventType, offer, func(t *testing.T, event Event) {
			if _, ok := event.(ClaimTokenEvent); !ok {
				t.Fatalf("expected ClaimTokenEvent, got %T", event)
			}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.tag, func(t *testing.T) {
			if !IsTokenEvent(tc.tag) {
				t.Fatalf("tag not recognized")
			}
			event, err := Decode(tc.tag, tc.payload)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			tc.check(t, event)
		})
	}
}

func TestDecodeUnrecognized(t *testing.T) {
	tags := []string{
		"0x1::coin::DepositEvent",
		"0x3::token::CreateTokenDataEvent",
		"0x3::token::mintTokenEvent",
		"",
	}
	for _, tag := range tags {
		event, err := Decode(tag, "not json at all")
		if err != nil {
			t.Fatalf("unrecognized tag %q returned error: %v", tag, err)
		}
		if event != nil {
			t.Fatalf("unrecognized tag %q returned event %T", tag, event)
		}
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string]struct {
		tag     string
		payload string
	}{
		"not json":          {MintTokenEventType, `{`},
		"array":             {MintTokenEventType, `[]`},
		"null":              {DepositTokenEventType, `null`},
		"missing amount":    {MintTokenEventType, `{"id":` + dataIDJSON + `}`},
		"null id":           {WithdrawTokenEventType, `{"id":null,"amount":"1"}`},
		"missing name":      {MintTokenEventType, `{"id":{"creator":"0x1","collection":"c"},"amount":"1"}`},
		"missing version":   {BurnTokenEventType, `{"id":{"token_data_id":` + dataIDJSON + `},"amount":"1"}`},
		"bad amount":        {DepositTokenEventType, `{"id":` + tokenIDJSON + `,"amount":"lots"}`},
		"negative amount":   {DepositTokenEventType, `{"id":` + tokenIDJSON + `,"amount":"-1"}`},
		"negative version":  {BurnTokenEventType, `{"id":{"token_data_id":` + dataIDJSON + `,"property_version":"-2"},"amount":"1"}`},
		"bad creator":       {MintTokenEventType, `{"id":{"creator":"0xnothex","collection":"c","name":"n"},"amount":"1"}`},
		"bad recipient":     {OfferTokenEventType, `{"to_address":"bob","token_id":` + tokenIDJSON + `,"amount":"1"}`},
		"missing recipient": {ClaimTokenEventType, `{"token_id":` + tokenIDJSON + `,"amount":"1"}`},
		"missing types":     {MutateTokenPropertyMapEventType, `{"old_id":` + tokenIDJSON + `,"new_id":` + tokenIDJSON + `,"keys":[],"values":[]}`},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			event, err := Decode(tc.tag, tc.payload)
			if err == nil {
				t.Fatalf("expected error, got %T", event)
			}
			if !errors.Is(err, ErrMalformedEvent) {
				t.Fatalf("error should wrap ErrMalformedEvent: %v", err)
			}
			if event != nil {
				t.Fatalf("expected nil event on error")
			}
		})
	}
}
