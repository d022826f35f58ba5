package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docdex/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/docdex/internal/core/domain"
	"github.com/custodia-labs/docdex/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ChunkStore = (*Store)(nil)

// Store is the SQLite-backed ChunkStore.
type Store struct {
	db   *sql.DB
	path string

	// dimensions is the embedding width fixed at first write.
	// Zero until the first embedding is stored.
	mu         sync.Mutex
	dimensions int
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.docdex/data/index.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docdex", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys so embedding rows cascade with their chunks
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	// Recover the embedding dimensionality from existing rows
	if err := s.loadDimensions(); err != nil {
		db.Close()
		return nil, fmt.Errorf("loading dimensions: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Dimensions returns the embedding width fixed at first write,
// or zero for an empty store.
func (s *Store) Dimensions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dimensions
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// loadDimensions derives the fixed embedding width from any stored row.
func (s *Store) loadDimensions() error {
	var blobLen int
	err := s.db.QueryRow("SELECT length(embedding) FROM embeddings LIMIT 1").Scan(&blobLen)
	if err == sql.ErrNoRows {
		return nil // Empty store; fixed at first write
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.dimensions = blobLen / 4
	s.mu.Unlock()
	return nil
}

// chunkMetadata is the typed metadata payload stored alongside a chunk.
// Fields are optional; absent fields are omitted from the JSON column.
type chunkMetadata struct {
	Title   string `json:"title,omitempty"`
	Section string `json:"section,omitempty"`
}

// checkDimensions validates the embedding width against the store-wide
// constant. A zero constant means nothing has been written yet.
func (s *Store) checkDimensions(embedding []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dimensions != 0 && len(embedding) != s.dimensions {
		return fmt.Errorf("%w: got %d, store uses %d",
			domain.ErrDimensionMismatch, len(embedding), s.dimensions)
	}
	return nil
}

// setDimensions fixes the store-wide embedding width. Called only after a
// successful write, so a failed first upsert does not pin the width.
func (s *Store) setDimensions(n int) {
	s.mu.Lock()
	if s.dimensions == 0 {
		s.dimensions = n
	}
	s.mu.Unlock()
}

// Upsert inserts or replaces the row matching (collection, file_path, content)
// together with its embedding, as one transaction. Returns the row id.
func (s *Store) Upsert(ctx context.Context, chunk *domain.Chunk) (int64, error) {
	if err := chunk.Validate(); err != nil {
		return 0, fmt.Errorf("validating chunk %s/%s: %w", chunk.Collection, chunk.FilePath, err)
	}
	if len(chunk.Embedding) == 0 {
		return 0, fmt.Errorf("upserting chunk %s/%s: empty embedding: %w",
			chunk.Collection, chunk.FilePath, domain.ErrInvalidInput)
	}
	if err := s.checkDimensions(chunk.Embedding); err != nil {
		return 0, fmt.Errorf("upserting chunk %s/%s: %w", chunk.Collection, chunk.FilePath, err)
	}

	metadataJSON, err := json.Marshal(chunkMetadata{
		Title:   chunk.Title,
		Section: chunk.Section,
	})
	if err != nil {
		return 0, fmt.Errorf("marshalling metadata: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO chunks (collection, file_path, content, metadata, last_updated, commit_hash)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(collection, file_path, content) DO UPDATE SET
			metadata = excluded.metadata,
			last_updated = excluded.last_updated,
			commit_hash = excluded.commit_hash
	`, chunk.Collection, chunk.FilePath, chunk.Content, string(metadataJSON),
		chunk.LastUpdated.UTC(), nullString(chunk.CommitHash))
	if err != nil {
		return 0, fmt.Errorf("upserting chunk %s/%s: %w", chunk.Collection, chunk.FilePath, err)
	}

	// The id survives conflict updates, so read it back by key.
	var id int64
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM chunks WHERE collection = ? AND file_path = ? AND content = ?
	`, chunk.Collection, chunk.FilePath, chunk.Content).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("reading chunk id: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO embeddings (chunk_id, embedding)
		VALUES (?, ?)
		ON CONFLICT(chunk_id) DO UPDATE SET
			embedding = excluded.embedding
	`, id, float32SliceToBytes(chunk.Embedding))
	if err != nil {
		return 0, fmt.Errorf("upserting embedding for chunk %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing upsert: %w", err)
	}

	s.setDimensions(len(chunk.Embedding))
	chunk.ID = id
	return id, nil
}

// ListByCollection returns all chunks for a collection, newest first.
func (s *Store) ListByCollection(ctx context.Context, collection string) ([]domain.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.collection, c.file_path, c.content, c.metadata,
		       c.last_updated, c.commit_hash, e.embedding
		FROM chunks c
		JOIN embeddings e ON e.chunk_id = c.id
		WHERE c.collection = ?
		ORDER BY c.last_updated DESC, c.id ASC
	`, collection)
	if err != nil {
		return nil, fmt.Errorf("querying chunks for %s: %w", collection, err)
	}
	defer rows.Close()

	return scanChunks(rows)
}

// DeleteCollection removes all chunks for a collection. Embedding rows
// cascade. Deleting an unknown collection is a no-op.
func (s *Store) DeleteCollection(ctx context.Context, collection string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM chunks WHERE collection = ?", collection)
	if err != nil {
		return fmt.Errorf("deleting collection %s: %w", collection, err)
	}
	return nil
}

// Stats returns one row per distinct collection, ordered by collection.
func (s *Store) Stats(ctx context.Context) ([]domain.CollectionStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT collection, COUNT(*)
		FROM chunks
		GROUP BY collection
		ORDER BY collection
	`)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	var stats []domain.CollectionStats //nolint:prealloc // size unknown from query
	for rows.Next() {
		var st domain.CollectionStats
		if err := rows.Scan(&st.Collection, &st.ChunkCount); err != nil {
			return nil, fmt.Errorf("scanning stats: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stats: %w", err)
	}

	// An aggregate like MAX(last_updated) loses the column's declared type,
	// so the driver hands the value back as text instead of time.Time. Read
	// the newest row per collection through the plain column instead.
	for i := range stats {
		var lastUpdated sql.NullTime
		err := s.db.QueryRowContext(ctx, `
			SELECT last_updated FROM chunks
			WHERE collection = ?
			ORDER BY last_updated DESC
			LIMIT 1
		`, stats[i].Collection).Scan(&lastUpdated)
		if err != nil && err != sql.ErrNoRows {
			return nil, fmt.Errorf("reading last update for %s: %w", stats[i].Collection, err)
		}
		if lastUpdated.Valid {
			stats[i].LastUpdated = lastUpdated.Time
		}
	}

	return stats, nil
}

// SearchSimilar scores all candidate chunks by cosine similarity and
// returns the top-K, descending.
func (s *Store) SearchSimilar(
	ctx context.Context, query []float32, topK int, collections ...string,
) ([]domain.SearchResult, error) {
	if topK <= 0 {
		return []domain.SearchResult{}, nil
	}

	s.mu.Lock()
	dims := s.dimensions
	s.mu.Unlock()
	if dims != 0 && len(query) != dims {
		return nil, fmt.Errorf("searching: %w: got %d, store uses %d",
			domain.ErrDimensionMismatch, len(query), dims)
	}

	sqlQuery := `
		SELECT c.id, c.collection, c.file_path, c.content, c.metadata,
		       c.last_updated, c.commit_hash, e.embedding
		FROM chunks c
		JOIN embeddings e ON e.chunk_id = c.id
	`
	var args []any
	if len(collections) > 0 {
		placeholders := strings.Repeat("?, ", len(collections))
		sqlQuery += " WHERE c.collection IN (" + placeholders[:len(placeholders)-2] + ")"
		for _, collection := range collections {
			args = append(args, collection)
		}
	}
	sqlQuery += " ORDER BY c.id ASC"

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("querying candidates: %w", err)
	}
	defer rows.Close()

	chunks, err := scanChunks(rows)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(chunks))
	for i := range chunks {
		results = append(results, domain.SearchResult{
			Chunk:      chunks[i],
			Similarity: domain.CosineSimilarity(query, chunks[i].Embedding),
		})
	}

	// Stable sort keeps insertion order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// nullString converts an empty string to a NULL-able value.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// scanChunks scans chunk rows joined with their embedding blobs.
func scanChunks(rows *sql.Rows) ([]domain.Chunk, error) {
	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		var metadataJSON string
		var lastUpdated sql.NullTime
		var commitHash sql.NullString
		var embeddingBlob []byte

		if err := rows.Scan(&chunk.ID, &chunk.Collection, &chunk.FilePath, &chunk.Content,
			&metadataJSON, &lastUpdated, &commitHash, &embeddingBlob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}

		if metadataJSON != "" {
			var meta chunkMetadata
			if err := json.Unmarshal([]byte(metadataJSON), &meta); err != nil {
				return nil, fmt.Errorf("unmarshalling chunk metadata: %w", err)
			}
			chunk.Title = meta.Title
			chunk.Section = meta.Section
		}

		if lastUpdated.Valid {
			chunk.LastUpdated = lastUpdated.Time
		}
		chunk.CommitHash = commitHash.String
		chunk.Embedding = bytesToFloat32Slice(embeddingBlob)

		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}
