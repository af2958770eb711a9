package recorder

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rickgao/coinfeed/internal/model"
)

// Table is the snapshot table name.
const Table = "top_coin_snapshots"

const schema = `
CREATE TABLE IF NOT EXISTS top_coin_snapshots (
    snapshot_id  uuid        NOT NULL,
    taken_at     timestamptz NOT NULL,
    rank         integer     NOT NULL,
    symbol       text        NOT NULL,
    quote_volume numeric,
    payload      jsonb       NOT NULL,
    PRIMARY KEY (snapshot_id, rank)
);
CREATE INDEX IF NOT EXISTS top_coin_snapshots_taken_at_idx ON top_coin_snapshots (taken_at);
`

var columns = []string{"snapshot_id", "taken_at", "rank", "symbol", "quote_volume", "payload"}

// DB is the subset of *pgxpool.Pool used by Store.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Store persists snapshots, one row per ranked ticker.
type Store struct {
	db DB
}

// NewStore creates a Store.
func NewStore(db DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the snapshot table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create snapshot schema: %w", err)
	}
	return nil
}

// HandleSnapshot implements SnapshotHandler.
func (s *Store) HandleSnapshot(ctx context.Context, snapshot model.TickerSnapshot) error {
	rows, err := snapshotRows(snapshot)
	if err != nil {
		return err
	}

	n, err := s.db.CopyFrom(ctx, pgx.Identifier{Table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy snapshot %s: %w", snapshot.ID, err)
	}
	if int(n) != len(rows) {
		return fmt.Errorf("copy snapshot %s: wrote %d of %d rows", snapshot.ID, n, len(rows))
	}
	return nil
}

// snapshotRows flattens a snapshot into table rows. Rank starts at 1.
// A missing or unparsable quoteVolume is stored as NULL.
func snapshotRows(snapshot model.TickerSnapshot) ([][]any, error) {
	rows := make([][]any, 0, len(snapshot.Tickers))
	for i, t := range snapshot.Tickers {
		payload, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("encode ticker %q: %w", t.Symbol(), err)
		}

		var volume any
		if v, ok := t.QuoteVolume(); ok {
			volume = v
		}

		rows = append(rows, []any{
			snapshot.ID,
			snapshot.TakenAt,
			int32(i + 1),
			t.Symbol(),
			volume,
			payload,
		})
	}
	return rows, nil
}
