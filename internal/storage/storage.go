package storage

import (
	"context"

	"tokenScope/internal/model"
)

// Storage defines a sink for token activities.
type Storage interface {
	PutActivityBatch(ctx context.Context, activities []model.TokenActivity) error
}

// ErrorLog defines a sink for transactions that failed normalization.
type ErrorLog interface {
	PutErrorBatch(ctx context.Context, errs []model.NormalizeError) error
}
