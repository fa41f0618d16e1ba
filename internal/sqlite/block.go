package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/octoboard/octoboard/internal/blocks"
)

// BlockStore persists blocks in SQLite. Fetch methods return tombstoned rows
// alongside live ones; consumers filter on delete_at themselves.
type BlockStore struct {
	db *DB
}

// NewBlockStore creates a new BlockStore
func NewBlockStore(db *DB) *BlockStore {
	return &BlockStore{db: db}
}

const blockColumns = `id, parent_id, root_id, schema, type, title, fields, create_at, update_at, delete_at`

// InsertBlocks upserts a batch of blocks in one transaction.
func (s *BlockStore) InsertBlocks(ctx context.Context, blockSet []blocks.Block) error {
	if len(blockSet) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO blocks (` + blockColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			parent_id = excluded.parent_id,
			root_id = excluded.root_id,
			schema = excluded.schema,
			type = excluded.type,
			title = excluded.title,
			fields = excluded.fields,
			update_at = excluded.update_at,
			delete_at = excluded.delete_at
	`
	for _, b := range blockSet {
		fields, err := json.Marshal(b.Fields)
		if err != nil {
			return fmt.Errorf("failed to encode fields for block %s: %w", b.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query,
			b.ID, b.ParentID, b.RootID, b.Schema, b.Type, b.Title, string(fields),
			b.CreateAt, b.UpdateAt, b.DeleteAt,
		); err != nil {
			return fmt.Errorf("failed to insert block %s: %w", b.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit blocks: %w", err)
	}
	return nil
}

// GetBlock retrieves a block by ID
func (s *BlockStore) GetBlock(ctx context.Context, id string) (*blocks.Block, error) {
	query := `SELECT ` + blockColumns + ` FROM blocks WHERE id = ?`
	row := s.db.QueryRowContext(ctx, query, id)

	b, err := scanBlock(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get block: %w", err)
	}
	return &b, nil
}

// GetSubTree returns the block with the given id plus everything transitively
// parented under it, up to depth levels down.
func (s *BlockStore) GetSubTree(ctx context.Context, rootID string, depth int) ([]blocks.Block, error) {
	query := `
		WITH RECURSIVE subtree(id, depth) AS (
			SELECT id, 0 FROM blocks WHERE id = ?
			UNION ALL
			SELECT b.id, s.depth + 1
			FROM blocks b
			JOIN subtree s ON b.parent_id = s.id
			WHERE s.depth < ?
		)
		SELECT ` + blockColumns + `
		FROM blocks
		WHERE id IN (SELECT id FROM subtree)
		ORDER BY create_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, rootID, depth)
	if err != nil {
		return nil, fmt.Errorf("failed to get subtree: %w", err)
	}
	defer rows.Close()
	return scanBlocks(rows)
}

// GetBlocksWithType returns all blocks of the given type.
func (s *BlockStore) GetBlocksWithType(ctx context.Context, blockType blocks.Type) ([]blocks.Block, error) {
	query := `SELECT ` + blockColumns + ` FROM blocks WHERE type = ? ORDER BY create_at ASC`
	rows, err := s.db.QueryContext(ctx, query, blockType)
	if err != nil {
		return nil, fmt.Errorf("failed to get blocks by type: %w", err)
	}
	defer rows.Close()
	return scanBlocks(rows)
}

// GetBlocksWithParent returns all blocks directly parented under parentID.
func (s *BlockStore) GetBlocksWithParent(ctx context.Context, parentID string) ([]blocks.Block, error) {
	query := `SELECT ` + blockColumns + ` FROM blocks WHERE parent_id = ? ORDER BY create_at ASC`
	rows, err := s.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get blocks by parent: %w", err)
	}
	defer rows.Close()
	return scanBlocks(rows)
}

// GetAllBlocks returns every block in the store, tombstones included.
func (s *BlockStore) GetAllBlocks(ctx context.Context) ([]blocks.Block, error) {
	query := `SELECT ` + blockColumns + ` FROM blocks ORDER BY create_at ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all blocks: %w", err)
	}
	defer rows.Close()
	return scanBlocks(rows)
}

// DeleteBlock tombstones a block and its whole subtree at the given
// timestamp, and returns the tombstoned blocks so callers can broadcast the
// deletions. Rows are never physically removed.
func (s *BlockStore) DeleteBlock(ctx context.Context, id string, deleteAt int64) ([]blocks.Block, error) {
	if _, err := s.GetBlock(ctx, id); err != nil {
		return nil, err
	}

	query := `
		WITH RECURSIVE subtree(id) AS (
			SELECT id FROM blocks WHERE id = ?
			UNION ALL
			SELECT b.id FROM blocks b JOIN subtree s ON b.parent_id = s.id
		)
		UPDATE blocks
		SET delete_at = ?, update_at = ?
		WHERE delete_at = 0 AND id IN (SELECT id FROM subtree)
		RETURNING ` + blockColumns + `
	`
	rows, err := s.db.QueryContext(ctx, query, id, deleteAt, deleteAt)
	if err != nil {
		return nil, fmt.Errorf("failed to delete block %s: %w", id, err)
	}
	defer rows.Close()
	return scanBlocks(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlock(row rowScanner) (blocks.Block, error) {
	var b blocks.Block
	var fields string
	err := row.Scan(
		&b.ID, &b.ParentID, &b.RootID, &b.Schema, &b.Type, &b.Title, &fields,
		&b.CreateAt, &b.UpdateAt, &b.DeleteAt,
	)
	if err != nil {
		return blocks.Block{}, err
	}
	if err := json.Unmarshal([]byte(fields), &b.Fields); err != nil {
		return blocks.Block{}, fmt.Errorf("failed to decode fields for block %s: %w", b.ID, err)
	}
	if b.Fields == nil {
		b.Fields = map[string]any{}
	}
	return b, nil
}

func scanBlocks(rows *sql.Rows) ([]blocks.Block, error) {
	var result []blocks.Block
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan block row: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating block rows: %w", err)
	}
	return result, nil
}
