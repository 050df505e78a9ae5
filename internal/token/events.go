package token

import (
	"fmt"

	"github.com/shopspring/decimal"

	"tokenScope/internal/address"
)

// Event type tags emitted by the token and token_transfers modules.
const (
	MintTokenEventType              = "0x3::token::MintTokenEvent"
	BurnTokenEventType              = "0x3::token::BurnTokenEvent"
	MutateTokenPropertyMapEventType = "0x3::token::MutateTokenPropertyMapEvent"
	WithdrawTokenEventType          = "0x3::token::WithdrawEvent"
	DepositTokenEventType           = "0x3::token::DepositEvent"
	OfferTokenEventType             = "0x3::token_transfers::TokenOfferEvent"
	CancelTokenOfferEventType       = "0x3::token_transfers::TokenCancelOfferEvent"
	ClaimTokenEventType             = "0x3::token_transfers::TokenClaimEvent"
)

// Event is one of the decoded token event variants below. The set is closed.
type Event interface {
	tokenEvent()
}

// MintTokenEvent carries the data id only; minted tokens start at property version 0.
type MintTokenEvent struct {
	ID     TokenDataID     `json:"id"`
	Amount decimal.Decimal `json:"amount"`
}

type BurnTokenEvent struct {
	ID     TokenID         `json:"id"`
	Amount decimal.Decimal `json:"amount"`
}

// MutateTokenPropertyMapEvent is emitted when a token's properties are
// rewritten, which moves it to a new property version.
type MutateTokenPropertyMapEvent struct {
	OldID  TokenID  `json:"old_id"`
	NewID  TokenID  `json:"new_id"`
	Keys   []string `json:"keys"`
	Values []string `json:"values"`
	Types  []string `json:"types"`
}

type WithdrawTokenEvent struct {
	ID     TokenID         `json:"id"`
	Amount decimal.Decimal `json:"amount"`
}

type DepositTokenEvent struct {
	ID     TokenID         `json:"id"`
	Amount decimal.Decimal `json:"amount"`
}

// TransferOffer is the payload shared by offer, cancel-offer and claim events.
type TransferOffer struct {
	ToAddress string          `json:"to_address"`
	TokenID   TokenID         `json:"token_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// ToAddressCanonical returns the declared recipient in canonical form.
func (o TransferOffer) ToAddressCanonical() string {
	return address.Standardize(o.ToAddress)
}

type OfferTokenEvent struct{ TransferOffer }

type CancelTokenOfferEvent struct{ TransferOffer }

type ClaimTokenEvent struct{ TransferOffer }

func (MintTokenEvent) tokenEvent()              {}
func (BurnTokenEvent) tokenEvent()              {}
func (MutateTokenPropertyMapEvent) tokenEvent() {}
func (WithdrawTokenEvent) tokenEvent()          {}
func (DepositTokenEvent) tokenEvent()           {}
func (OfferTokenEvent) tokenEvent()             {}
func (CancelTokenOfferEvent) tokenEvent()       {}
func (ClaimTokenEvent) tokenEvent()             {}

func (e MintTokenEvent) validate() error {
	return requireNonNegative("amount", e.Amount)
}

func (e BurnTokenEvent) validate() error {
	return requireNonNegative("amount", e.Amount)
}

func (e WithdrawTokenEvent) validate() error {
	return requireNonNegative("amount", e.Amount)
}

func (e DepositTokenEvent) validate() error {
	return requireNonNegative("amount", e.Amount)
}

func (o TransferOffer) validate() error {
	if err := address.Validate(o.ToAddress); err != nil {
		return fmt.Errorf("to_address: %w", err)
	}
	return requireNonNegative("amount", o.Amount)
}
