package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"rdalreport/internal/reporting/domain/aggregate"
	"rdalreport/internal/reporting/domain/code"
)

// SnapshotStore persists per-granularity aggregate snapshots.
//
// Schema:
//
//	CREATE TABLE rdal_aggregate_snapshots (
//	    run_id      TEXT        NOT NULL,
//	    granularity TEXT        NOT NULL,
//	    code        CHAR(14)    NOT NULL,
//	    indicator   TEXT        NOT NULL,
//	    amount      NUMERIC     NOT NULL,
//	    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    PRIMARY KEY (run_id, granularity, code, indicator)
//	);
type SnapshotStore struct {
	db *sql.DB
}

// NewSnapshotStore constructs a store over an open database handle.
func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// SaveEntries replaces the snapshot for a run and granularity.
func (s *SnapshotStore) SaveEntries(ctx context.Context, runID string, g code.Granularity, entries []aggregate.Entry) error {
	if s == nil || s.db == nil {
		return errors.New("snapshot store: nil db")
	}
	if runID == "" {
		return errors.New("snapshot store: empty run id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
DELETE FROM rdal_aggregate_snapshots
WHERE run_id = $1 AND granularity = $2`, runID, g.String())
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, e := range entries {
		_, err = tx.ExecContext(ctx, `
INSERT INTO rdal_aggregate_snapshots (run_id, granularity, code, indicator, amount)
VALUES ($1, $2, $3, $4, $5)`, runID, g.String(), e.Code.String(), string(e.Indicator), e.Amount.String())
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// ListEntries loads the snapshot for a run and granularity, sorted by
// (code, indicator).
func (s *SnapshotStore) ListEntries(ctx context.Context, runID string, g code.Granularity) ([]aggregate.Entry, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("snapshot store: nil db")
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT code, indicator, amount
FROM rdal_aggregate_snapshots
WHERE run_id = $1 AND granularity = $2
ORDER BY code, indicator`, runID, g.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []aggregate.Entry
	for rows.Next() {
		var rawCode, rawIndicator, rawAmount string
		if err := rows.Scan(&rawCode, &rawIndicator, &rawAmount); err != nil {
			return nil, err
		}
		c, err := code.Parse(rawCode)
		if err != nil {
			return nil, err
		}
		amount, err := decimal.NewFromString(rawAmount)
		if err != nil {
			return nil, err
		}
		entries = append(entries, aggregate.Entry{Code: c, Indicator: code.Indicator(rawIndicator), Amount: amount})
	}
	return entries, rows.Err()
}
