package token

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"tokenScope/internal/address"
)

// MaxNameLength bounds stored collection and token names, in bytes.
const MaxNameLength = 128

// TokenDataID identifies a token independent of its property version.
type TokenDataID struct {
	Creator    string `json:"creator"`
	Collection string `json:"collection"`
	Name       string `json:"name"`
}

// TokenID is a TokenDataID pinned to a property version.
type TokenID struct {
	TokenDataID     TokenDataID     `json:"token_data_id"`
	PropertyVersion decimal.Decimal `json:"property_version"`
}

// UnmarshalJSON requires all three identity fields.
func (id *TokenDataID) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "creator", "collection", "name"); err != nil {
		return fmt.Errorf("token data id: %w", err)
	}
	type alias TokenDataID
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("token data id: %w", err)
	}
	if err := address.Validate(a.Creator); err != nil {
		return fmt.Errorf("token data id creator: %w", err)
	}
	*id = TokenDataID(a)
	return nil
}

// UnmarshalJSON requires the nested data id and a non-negative property version.
func (id *TokenID) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "token_data_id", "property_version"); err != nil {
		return fmt.Errorf("token id: %w", err)
	}
	type alias TokenID
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("token id: %w", err)
	}
	if err := requireNonNegative("property_version", a.PropertyVersion); err != nil {
		return fmt.Errorf("token id: %w", err)
	}
	*id = TokenID(a)
	return nil
}

// WithVersion pins the data id to a property version.
func (id TokenDataID) WithVersion(version decimal.Decimal) TokenID {
	return TokenID{TokenDataID: id, PropertyVersion: version}
}

// CreatorAddress returns the canonical creator address.
func (id TokenDataID) CreatorAddress() string {
	return address.Standardize(id.Creator)
}

// CollectionHash hashes the canonical creator and the full collection name.
func (id TokenDataID) CollectionHash() string {
	return hashString(fmt.Sprintf("%s::%s", id.CreatorAddress(), id.Collection))
}

// TruncatedCollection returns the collection name cut to MaxNameLength bytes.
func (id TokenDataID) TruncatedCollection() string {
	return truncate(id.Collection, MaxNameLength)
}

// TruncatedName returns the token name cut to MaxNameLength bytes.
func (id TokenDataID) TruncatedName() string {
	return truncate(id.Name, MaxNameLength)
}

// Hash hashes the canonical creator, untruncated names and property version.
func (id TokenID) Hash() string {
	return hashString(fmt.Sprintf("%s::%s::%s::%s",
		id.TokenDataID.CreatorAddress(),
		id.TokenDataID.Collection,
		id.TokenDataID.Name,
		id.PropertyVersion.String(),
	))
}

// CollectionHash is the collection hash of the underlying data id.
func (id TokenID) CollectionHash() string {
	return id.TokenDataID.CollectionHash()
}

func hashString(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// truncate cuts value to at most max bytes without splitting a UTF-8 sequence.
func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	return value[:cut]
}
