// Package store handles the SQLite corpus library.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"castgrid/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for named corpora. Records are kept raw,
// exactly as imported; normalization stays the loading pipeline's job.
type Store struct {
	db *sql.DB
}

// CorpusInfo summarizes a stored corpus.
type CorpusInfo struct {
	Name       string
	Episodes   int
	ImportedAt time.Time
}

// Open opens or creates the corpus library database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS corpora (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			imported_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS episodes (
			corpus_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			number TEXT NOT NULL,
			date TEXT NOT NULL,
			guests TEXT NOT NULL,
			characters TEXT NOT NULL,
			image_url TEXT NOT NULL,
			PRIMARY KEY (corpus_id, position)
		);`,
		`CREATE TABLE IF NOT EXISTS entity_images (
			corpus_id INTEGER NOT NULL,
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			url TEXT NOT NULL,
			PRIMARY KEY (corpus_id, kind, name)
		);`,
		`CREATE TABLE IF NOT EXISTS cast_mappings (
			corpus_id INTEGER NOT NULL,
			guest TEXT NOT NULL,
			character TEXT NOT NULL,
			PRIMARY KEY (corpus_id, guest, character)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ImportCorpus stores a raw corpus under a name, replacing any corpus
// previously stored under the same name, in one transaction.
func (s *Store) ImportCorpus(ctx context.Context, name string, raw model.RawCorpus) (err error) {
	if name == "" {
		return fmt.Errorf("corpus name is empty")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if err = s.deleteCorpusTx(ctx, tx, name); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO corpora (name, imported_at) VALUES (?, ?)`,
		name, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO episodes (corpus_id, position, title, number, date, guests, characters, image_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for i, ep := range raw.Episodes {
		guests, merr := json.Marshal(ep.Guests)
		if merr != nil {
			err = merr
			return err
		}
		characters, merr := json.Marshal(ep.Characters)
		if merr != nil {
			err = merr
			return err
		}
		if _, err = stmt.ExecContext(ctx, id, i, ep.Title, ep.Number, ep.Date, string(guests), string(characters), ep.ImageURL); err != nil {
			return err
		}
	}

	if err = insertImagesTx(ctx, tx, id, string(model.KindGuest), raw.GuestImages); err != nil {
		return err
	}
	if err = insertImagesTx(ctx, tx, id, string(model.KindCharacter), raw.CharacterImages); err != nil {
		return err
	}
	for guest, characters := range raw.GuestToCharacters {
		for _, character := range characters {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO cast_mappings (corpus_id, guest, character) VALUES (?, ?, ?)`,
				id, guest, character); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func insertImagesTx(ctx context.Context, tx *sql.Tx, corpusID int64, kind string, images map[string]string) error {
	for name, url := range images {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO entity_images (corpus_id, kind, name, url) VALUES (?, ?, ?, ?)`,
			corpusID, kind, name, url); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) deleteCorpusTx(ctx context.Context, tx *sql.Tx, name string) error {
	var id int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM corpora WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	for _, stmt := range []string{
		`DELETE FROM episodes WHERE corpus_id = ?`,
		`DELETE FROM entity_images WHERE corpus_id = ?`,
		`DELETE FROM cast_mappings WHERE corpus_id = ?`,
		`DELETE FROM corpora WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return err
		}
	}
	return nil
}

// ListCorpora returns the stored corpora, oldest import first.
func (s *Store) ListCorpora(ctx context.Context) ([]CorpusInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.name, c.imported_at, COUNT(e.position)
		 FROM corpora c LEFT JOIN episodes e ON e.corpus_id = c.id
		 GROUP BY c.id
		 ORDER BY c.imported_at ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []CorpusInfo
	for rows.Next() {
		var info CorpusInfo
		var importedAt string
		if err := rows.Scan(&info.Name, &importedAt, &info.Episodes); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, importedAt)
		if err != nil {
			return nil, err
		}
		info.ImportedAt = parsed
		result = append(result, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// LoadCorpus returns the raw corpus stored under a name.
func (s *Store) LoadCorpus(ctx context.Context, name string) (model.RawCorpus, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM corpora WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return model.RawCorpus{}, fmt.Errorf("corpus %q not found", name)
	}
	if err != nil {
		return model.RawCorpus{}, err
	}

	raw := model.RawCorpus{
		GuestImages:       map[string]string{},
		CharacterImages:   map[string]string{},
		GuestToCharacters: map[string][]string{},
	}
	if raw.Episodes, err = s.loadEpisodes(ctx, id); err != nil {
		return model.RawCorpus{}, err
	}
	if err = s.loadImages(ctx, id, raw.GuestImages, raw.CharacterImages); err != nil {
		return model.RawCorpus{}, err
	}
	if err = s.loadCast(ctx, id, raw.GuestToCharacters); err != nil {
		return model.RawCorpus{}, err
	}
	return raw, nil
}

func (s *Store) loadEpisodes(ctx context.Context, corpusID int64) ([]model.RawEpisode, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, number, date, guests, characters, image_url
		 FROM episodes WHERE corpus_id = ? ORDER BY position ASC`, corpusID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var episodes []model.RawEpisode
	for rows.Next() {
		var ep model.RawEpisode
		var guests, characters string
		if err := rows.Scan(&ep.Title, &ep.Number, &ep.Date, &guests, &characters, &ep.ImageURL); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(guests), &ep.Guests); err != nil {
			return nil, fmt.Errorf("failed to decode guests: %w", err)
		}
		if err := json.Unmarshal([]byte(characters), &ep.Characters); err != nil {
			return nil, fmt.Errorf("failed to decode characters: %w", err)
		}
		episodes = append(episodes, ep)
	}
	return episodes, rows.Err()
}

func (s *Store) loadImages(ctx context.Context, corpusID int64, guests, characters map[string]string) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, name, url FROM entity_images WHERE corpus_id = ?`, corpusID)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	for rows.Next() {
		var kind, name, url string
		if err := rows.Scan(&kind, &name, &url); err != nil {
			return err
		}
		if kind == string(model.KindCharacter) {
			characters[name] = url
		} else {
			guests[name] = url
		}
	}
	return rows.Err()
}

func (s *Store) loadCast(ctx context.Context, corpusID int64, cast map[string][]string) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT guest, character FROM cast_mappings WHERE corpus_id = ? ORDER BY guest, character`, corpusID)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	for rows.Next() {
		var guest, character string
		if err := rows.Scan(&guest, &character); err != nil {
			return err
		}
		cast[guest] = append(cast[guest], character)
	}
	return rows.Err()
}
