package model

// NormalizeError records a transaction that could not be normalized.
type NormalizeError struct {
	TransactionVersion uint64 `json:"transaction_version"`
	TransactionType    string `json:"transaction_type,omitempty"`
	Line               int    `json:"line,omitempty"`
	Error              string `json:"error"`
}
