package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/topictrans/pkg/topictrans/internalerr"
	"github.com/cognicore/topictrans/pkg/topictrans/store"
)

// timeLayout keeps stored timestamps fixed width so they sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w: %w", path, internalerr.ErrStoreUnavailable, err)
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS dictionaries (
	name TEXT PRIMARY KEY,
	lang_a TEXT,
	lang_b TEXT
);

CREATE TABLE IF NOT EXISTS dict_words (
	dict TEXT NOT NULL,
	side TEXT NOT NULL,
	id INTEGER NOT NULL,
	word TEXT NOT NULL,
	PRIMARY KEY(dict, side, id),
	FOREIGN KEY(dict) REFERENCES dictionaries(name) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS dict_links (
	dict TEXT NOT NULL,
	seq INTEGER NOT NULL,
	a INTEGER NOT NULL,
	b INTEGER NOT NULL,
	PRIMARY KEY(dict, seq),
	FOREIGN KEY(dict) REFERENCES dictionaries(name) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS dict_meta (
	dict TEXT NOT NULL,
	side TEXT NOT NULL,
	word_id INTEGER NOT NULL,
	origin TEXT NOT NULL,
	tag TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY(dict, side, word_id, origin, tag),
	FOREIGN KEY(dict) REFERENCES dictionaries(name) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS models (
	id TEXT PRIMARY KEY,
	language TEXT,
	created_at TEXT
);

CREATE TABLE IF NOT EXISTS model_words (
	model_id TEXT NOT NULL,
	id INTEGER NOT NULL,
	word TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY(model_id, id),
	FOREIGN KEY(model_id) REFERENCES models(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS model_topics (
	model_id TEXT NOT NULL,
	topic INTEGER NOT NULL,
	probabilities TEXT NOT NULL,
	PRIMARY KEY(model_id, topic),
	FOREIGN KEY(model_id) REFERENCES models(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS word_weights (
	language TEXT NOT NULL,
	word TEXT NOT NULL,
	weight REAL NOT NULL,
	PRIMARY KEY(language, word)
);

CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	source_model_id TEXT,
	dictionary TEXT,
	result_model_id TEXT,
	voting TEXT,
	topics INTEGER,
	vocabulary INTEGER,
	started_at TEXT,
	duration_ns INTEGER
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveDictionary replaces the dictionary stored under d.Name
func (s *sqliteStore) SaveDictionary(ctx context.Context, d store.DictionaryData) error {
	if d.Name == "" {
		return fmt.Errorf("dictionary without name: %w", internalerr.ErrInvalidInput)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM dictionaries WHERE name=?`, d.Name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO dictionaries (name, lang_a, lang_b) VALUES (?, ?, ?)`,
		d.Name, d.LangA, d.LangB); err != nil {
		return err
	}
	if err := insertWords(ctx, tx, d.Name, "a", d.WordsA); err != nil {
		return err
	}
	if err := insertWords(ctx, tx, d.Name, "b", d.WordsB); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO dict_links (dict, seq, a, b) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, l := range d.Links {
		if _, err := stmt.ExecContext(ctx, d.Name, i, l.A, l.B); err != nil {
			return err
		}
	}

	if err := insertMeta(ctx, tx, d.Name, "a", d.MetaA); err != nil {
		return err
	}
	if err := insertMeta(ctx, tx, d.Name, "b", d.MetaB); err != nil {
		return err
	}
	return tx.Commit()
}

func insertWords(ctx context.Context, tx *sql.Tx, dict, side string, words []string) error {
	if len(words) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO dict_words (dict, side, id, word) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for id, w := range words {
		if _, err := stmt.ExecContext(ctx, dict, side, id, w); err != nil {
			return err
		}
	}
	return nil
}

func insertMeta(ctx context.Context, tx *sql.Tx, dict, side string, entries []store.MetaEntry) error {
	if len(entries) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO dict_meta (dict, side, word_id, origin, tag, count) VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(dict, side, word_id, origin, tag) DO UPDATE SET count=excluded.count`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, dict, side, e.WordID, e.Origin, e.Tag, e.Count); err != nil {
			return err
		}
	}
	return nil
}

// LoadDictionary reads the dictionary stored under name
func (s *sqliteStore) LoadDictionary(ctx context.Context, name string) (store.DictionaryData, error) {
	d := store.DictionaryData{Name: name}
	err := s.db.QueryRowContext(ctx, `SELECT lang_a, lang_b FROM dictionaries WHERE name = ?`, name).
		Scan(&d.LangA, &d.LangB)
	if errors.Is(err, sql.ErrNoRows) {
		return d, fmt.Errorf("dictionary %q: %w", name, internalerr.ErrNotFound)
	}
	if err != nil {
		return d, err
	}

	if d.WordsA, err = s.loadWords(ctx, name, "a"); err != nil {
		return d, err
	}
	if d.WordsB, err = s.loadWords(ctx, name, "b"); err != nil {
		return d, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT a, b FROM dict_links WHERE dict = ? ORDER BY seq`, name)
	if err != nil {
		return d, err
	}
	defer rows.Close()
	for rows.Next() {
		var l store.Link
		if err := rows.Scan(&l.A, &l.B); err != nil {
			return d, err
		}
		d.Links = append(d.Links, l)
	}
	if err := rows.Err(); err != nil {
		return d, err
	}

	if d.MetaA, err = s.loadMeta(ctx, name, "a"); err != nil {
		return d, err
	}
	if d.MetaB, err = s.loadMeta(ctx, name, "b"); err != nil {
		return d, err
	}
	return d, nil
}

func (s *sqliteStore) loadWords(ctx context.Context, dict, side string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM dict_words WHERE dict = ? AND side = ? ORDER BY id`, dict, side)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

func (s *sqliteStore) loadMeta(ctx context.Context, dict, side string) ([]store.MetaEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT word_id, origin, tag, count FROM dict_meta
WHERE dict = ? AND side = ?
ORDER BY word_id, origin, tag`, dict, side)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.MetaEntry
	for rows.Next() {
		var e store.MetaEntry
		if err := rows.Scan(&e.WordID, &e.Origin, &e.Tag, &e.Count); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SaveModel replaces the model stored under m.ID
func (s *sqliteStore) SaveModel(ctx context.Context, m store.ModelData) error {
	if m.ID == "" {
		return fmt.Errorf("model without id: %w", internalerr.ErrInvalidInput)
	}
	if len(m.Counts) != 0 && len(m.Counts) != len(m.Words) {
		return fmt.Errorf("model %q: %d counts for %d words: %w", m.ID, len(m.Counts), len(m.Words), internalerr.ErrShapeMismatch)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM models WHERE id=?`, m.ID); err != nil {
		return err
	}
	created := m.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO models (id, language, created_at) VALUES (?, ?, ?)`,
		m.ID, m.Language, created.UTC().Format(timeLayout)); err != nil {
		return err
	}

	words, err := tx.PrepareContext(ctx, `INSERT INTO model_words (model_id, id, word, count) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer words.Close()
	for id, w := range m.Words {
		var count uint64
		if len(m.Counts) > 0 {
			count = m.Counts[id]
		}
		if _, err := words.ExecContext(ctx, m.ID, id, w, int64(count)); err != nil {
			return err
		}
	}

	topics, err := tx.PrepareContext(ctx, `INSERT INTO model_topics (model_id, topic, probabilities) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer topics.Close()
	for t, row := range m.Topics {
		data, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if _, err := topics.ExecContext(ctx, m.ID, t, string(data)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadModel reads the model stored under id
func (s *sqliteStore) LoadModel(ctx context.Context, id string) (store.ModelData, error) {
	m := store.ModelData{ID: id}
	var created string
	err := s.db.QueryRowContext(ctx, `SELECT language, created_at FROM models WHERE id = ?`, id).
		Scan(&m.Language, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return m, fmt.Errorf("model %q: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return m, err
	}
	if t, err := time.Parse(timeLayout, created); err == nil {
		m.CreatedAt = t
	}

	rows, err := s.db.QueryContext(ctx, `SELECT word, count FROM model_words WHERE model_id = ? ORDER BY id`, id)
	if err != nil {
		return m, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			w     string
			count int64
		)
		if err := rows.Scan(&w, &count); err != nil {
			return m, err
		}
		m.Words = append(m.Words, w)
		m.Counts = append(m.Counts, uint64(count))
	}
	if err := rows.Err(); err != nil {
		return m, err
	}

	topicRows, err := s.db.QueryContext(ctx, `SELECT probabilities FROM model_topics WHERE model_id = ? ORDER BY topic`, id)
	if err != nil {
		return m, err
	}
	defer topicRows.Close()
	for topicRows.Next() {
		var data string
		if err := topicRows.Scan(&data); err != nil {
			return m, err
		}
		var row []float64
		if err := json.Unmarshal([]byte(data), &row); err != nil {
			return m, fmt.Errorf("model %q topic %d: %w", id, len(m.Topics), err)
		}
		m.Topics = append(m.Topics, row)
	}
	return m, topicRows.Err()
}

// SaveWordWeights replaces the weights of a language
func (s *sqliteStore) SaveWordWeights(ctx context.Context, language string, weights map[string]float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM word_weights WHERE language=?`, language); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO word_weights (language, word, weight) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for w, v := range weights {
		if _, err := stmt.ExecContext(ctx, language, w, v); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadWordWeights returns the weights of a language
func (s *sqliteStore) LoadWordWeights(ctx context.Context, language string) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word, weight FROM word_weights WHERE language = ?`, language)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]float64{}
	for rows.Next() {
		var (
			w string
			v float64
		)
		if err := rows.Scan(&w, &v); err != nil {
			return nil, err
		}
		out[w] = v
	}
	return out, rows.Err()
}

// RecordRun stores a translation run
func (s *sqliteStore) RecordRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("run without id: %w", internalerr.ErrInvalidInput)
	}
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, r.ID).Scan(&exists)
	if err == nil {
		return fmt.Errorf("run %q: %w", r.ID, internalerr.ErrDuplicate)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO runs (id, source_model_id, dictionary, result_model_id, voting, topics, vocabulary, started_at, duration_ns)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.SourceModelID, r.Dictionary, r.ResultModelID, r.Voting,
		r.Topics, r.Vocabulary, r.StartedAt.UTC().Format(timeLayout), int64(r.Duration))
	return err
}

// ListRuns returns up to limit runs, newest first
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	query := `
SELECT id, source_model_id, dictionary, result_model_id, voting, topics, vocabulary, started_at, duration_ns
FROM runs
ORDER BY started_at DESC, id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Run
	for rows.Next() {
		var (
			r        store.Run
			started  string
			duration int64
		)
		if err := rows.Scan(&r.ID, &r.SourceModelID, &r.Dictionary, &r.ResultModelID, &r.Voting,
			&r.Topics, &r.Vocabulary, &started, &duration); err != nil {
			return nil, err
		}
		if t, err := time.Parse(timeLayout, started); err == nil {
			r.StartedAt = t
		}
		r.Duration = time.Duration(duration)
		out = append(out, r)
	}
	return out, rows.Err()
}
