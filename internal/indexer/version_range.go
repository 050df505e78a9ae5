package indexer

import "fmt"

// VersionRange is an inclusive transaction version range. To == 0 leaves the
// range open-ended.
type VersionRange struct {
	From uint64
	To   uint64
}

// NewVersionRange validates and builds a VersionRange.
func NewVersionRange(from, to uint64) (VersionRange, error) {
	if to != 0 && to < from {
		return VersionRange{}, fmt.Errorf("to version must be >= from version")
	}
	return VersionRange{From: from, To: to}, nil
}

// Contains reports whether version falls inside the range.
func (r VersionRange) Contains(version uint64) bool {
	if version < r.From {
		return false
	}
	return r.To == 0 || version <= r.To
}

// Past reports whether version lies beyond the end of the range.
func (r VersionRange) Past(version uint64) bool {
	return r.To != 0 && version > r.To
}
