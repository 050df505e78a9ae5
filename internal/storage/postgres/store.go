package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tokenScope/internal/model"
)

// Store provides Postgres persistence for token activities.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// PutActivityBatch inserts activities. Rows whose key already exists are left untouched.
func (s *Store) PutActivityBatch(ctx context.Context, activities []model.TokenActivity) error {
	if len(activities) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, a := range activities {
		batch.Queue(`
			INSERT INTO token_activities (
				transaction_version, event_account_address, event_creation_number, event_sequence_number,
				token_data_id_hash, property_version, creator_address, collection_name, name,
				transfer_type, from_address, to_address, token_amount, coin_type, coin_amount,
				collection_data_id_hash, transaction_timestamp, event_index, inserted_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,now())
			ON CONFLICT (transaction_version, event_account_address, event_creation_number, event_sequence_number)
			DO NOTHING
		`,
			a.TransactionVersion,
			a.EventAccountAddress,
			a.EventCreationNumber,
			a.EventSequenceNumber,
			a.TokenDataIDHash,
			a.PropertyVersion,
			a.CreatorAddress,
			a.CollectionName,
			a.Name,
			a.TransferType,
			a.FromAddress,
			a.ToAddress,
			a.TokenAmount,
			a.CoinType,
			a.CoinAmount,
			a.CollectionDataIDHash,
			a.TransactionTimestamp,
			a.EventIndex,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range activities {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadState returns last_processed_version for a name.
func (s *Store) LoadState(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var version int64
	row := s.pool.QueryRow(ctx, `SELECT last_processed_version FROM indexer_state WHERE name=$1`, name)
	if err := row.Scan(&version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return uint64(version), true, nil
}

// SaveState upserts last_processed_version for a name.
func (s *Store) SaveState(ctx context.Context, name string, version uint64) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO indexer_state (name, last_processed_version, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET last_processed_version = EXCLUDED.last_processed_version, updated_at = now()
	`, name, int64(version))
	return err
}
