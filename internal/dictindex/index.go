package dictindex

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"compsplit/internal/dictionary"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes. Indexes built with a
// different version must be recompiled.
const schemaVersion = 1

var (
	// ErrSchemaMismatch indicates an index written by an incompatible version.
	ErrSchemaMismatch = errors.New("dictionary index schema version mismatch")
	// ErrLocked indicates another process is compiling the same index.
	ErrLocked = errors.New("dictionary index is locked by another process")
	// ErrNotIndex indicates the file is not a SQLite dictionary index.
	ErrNotIndex = errors.New("not a dictionary index")
)

var sqliteHeader = []byte("SQLite format 3\x00")

// Meta describes how an index was built.
type Meta struct {
	BuildID    string
	Source     string
	Floor      int
	MinLength  int
	Policy     dictionary.Policy
	Entries    int
	CompiledAt time.Time
}

const (
	metaBuildID    = "build_id"
	metaSource     = "source"
	metaFloor      = "floor"
	metaMinLength  = "min_length"
	metaPolicy     = "policy"
	metaEntries    = "entries"
	metaCompiledAt = "compiled_at"
)

// Compile writes dict to an index at path. BuildID and CompiledAt are filled
// in when empty; Entries is always taken from dict. The returned Meta is what
// was stored.
func Compile(ctx context.Context, dict *dictionary.Dictionary, path string, meta Meta) (Meta, error) {
	if path == "" {
		return Meta{}, errors.New("compile index: path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Meta{}, fmt.Errorf("create index directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return Meta{}, fmt.Errorf("acquire index lock: %w", err)
	}
	if !ok {
		return Meta{}, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	defer func() { _ = lock.Unlock() }()

	if meta.BuildID == "" {
		meta.BuildID = uuid.NewString()
	}
	if meta.CompiledAt.IsZero() {
		meta.CompiledAt = time.Now().UTC()
	}
	meta.Entries = dict.Len()

	tmpPath := path + ".tmp-" + meta.BuildID
	_ = os.Remove(tmpPath)
	if err := write(ctx, tmpPath, dict, meta); err != nil {
		_ = os.Remove(tmpPath)
		return Meta{}, err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return Meta{}, fmt.Errorf("install index: %w", err)
	}
	return meta, nil
}

func write(ctx context.Context, path string, dict *dictionary.Dictionary, meta Meta) error {
	db, err := openDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin index tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	values := map[string]string{
		metaBuildID:    meta.BuildID,
		metaSource:     meta.Source,
		metaFloor:      strconv.Itoa(meta.Floor),
		metaMinLength:  strconv.Itoa(meta.MinLength),
		metaPolicy:     string(meta.Policy),
		metaEntries:    strconv.Itoa(meta.Entries),
		metaCompiledAt: meta.CompiledAt.Format(time.RFC3339Nano),
	}
	for key, value := range values {
		if _, err := tx.ExecContext(ctx, "INSERT INTO meta (key, value) VALUES (?, ?)", key, value); err != nil {
			return fmt.Errorf("write meta %s: %w", key, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO entries (word, rank) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("prepare entry insert: %w", err)
	}
	defer stmt.Close()
	for _, entry := range dict.Entries() {
		if _, err := stmt.ExecContext(ctx, entry.Word, entry.Rank); err != nil {
			return fmt.Errorf("insert entry %q: %w", entry.Word, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit index: %w", err)
	}
	return nil
}

// Open reads the index at path back into a Dictionary.
func Open(ctx context.Context, path string) (*dictionary.Dictionary, Meta, error) {
	db, err := openExisting(path)
	if err != nil {
		return nil, Meta{}, err
	}
	defer db.Close()

	meta, err := readMeta(ctx, db)
	if err != nil {
		return nil, Meta{}, err
	}

	rows, err := db.QueryContext(ctx, "SELECT word, rank FROM entries")
	if err != nil {
		return nil, Meta{}, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := make([]dictionary.Entry, 0, meta.Entries)
	for rows.Next() {
		var entry dictionary.Entry
		if err := rows.Scan(&entry.Word, &entry.Rank); err != nil {
			return nil, Meta{}, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, Meta{}, fmt.Errorf("iterate entries: %w", err)
	}
	return dictionary.FromEntries(entries), meta, nil
}

// ReadMeta returns the build parameters of the index at path without loading
// its entries.
func ReadMeta(ctx context.Context, path string) (Meta, error) {
	db, err := openExisting(path)
	if err != nil {
		return Meta{}, err
	}
	defer db.Close()
	return readMeta(ctx, db)
}

// IsIndex reports whether path starts with the SQLite file header.
func IsIndex(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	header := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(f, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	return bytes.Equal(header, sqliteHeader), nil
}

func openExisting(path string) (*sql.DB, error) {
	ok, err := IsIndex(path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotIndex, path)
	}
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA query_only = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragma %q: %w", "PRAGMA query_only = ON", err)
	}
	return db, nil
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=DELETE",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	return db, nil
}

func readMeta(ctx context.Context, db *sql.DB) (Meta, error) {
	var tableExists int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return Meta{}, fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return Meta{}, ErrNotIndex
	}

	var version int
	if err := db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return Meta{}, fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return Meta{}, fmt.Errorf("%w: index has version %d, expected %d (recompile with 'compsplit dict compile')",
			ErrSchemaMismatch, version, schemaVersion)
	}

	rows, err := db.QueryContext(ctx, "SELECT key, value FROM meta")
	if err != nil {
		return Meta{}, fmt.Errorf("query meta: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Meta{}, fmt.Errorf("scan meta: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return Meta{}, fmt.Errorf("iterate meta: %w", err)
	}
	return decodeMeta(values)
}

func decodeMeta(values map[string]string) (Meta, error) {
	meta := Meta{
		BuildID: values[metaBuildID],
		Source:  values[metaSource],
		Policy:  dictionary.Policy(values[metaPolicy]),
	}
	ints := []struct {
		key string
		dst *int
	}{
		{metaFloor, &meta.Floor},
		{metaMinLength, &meta.MinLength},
		{metaEntries, &meta.Entries},
	}
	for _, field := range ints {
		raw, ok := values[field.key]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Meta{}, fmt.Errorf("parse meta %s: %w", field.key, err)
		}
		*field.dst = n
	}
	if raw := values[metaCompiledAt]; raw != "" {
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return Meta{}, fmt.Errorf("parse meta %s: %w", metaCompiledAt, err)
		}
		meta.CompiledAt = ts
	}
	return meta, nil
}
