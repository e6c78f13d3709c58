package sqlite

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const fixtureSchema = `
CREATE TABLE countries (code TEXT PRIMARY KEY, name TEXT NOT NULL);
CREATE TABLE regions (id INTEGER PRIMARY KEY, name TEXT NOT NULL, country_code TEXT NOT NULL REFERENCES countries(code));
CREATE TABLE wines (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    region_id INTEGER NOT NULL REFERENCES regions(id),
    ratings_average REAL,
    ratings_count INTEGER,
    url TEXT
);
CREATE TABLE vintages (
    id INTEGER PRIMARY KEY,
    wine_id INTEGER NOT NULL REFERENCES wines(id),
    name TEXT NOT NULL,
    year INTEGER,
    ratings_average REAL,
    ratings_count INTEGER,
    price_euros REAL,
    price_discounted_from REAL
);
CREATE TABLE grapes (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
CREATE TABLE most_used_grapes_per_country (
    grape_id INTEGER NOT NULL REFERENCES grapes(id),
    country_code TEXT NOT NULL REFERENCES countries(code),
    wines_count INTEGER
);
CREATE TABLE keywords (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
CREATE TABLE keywords_wine (
    keyword_id INTEGER NOT NULL REFERENCES keywords(id),
    wine_id INTEGER NOT NULL REFERENCES wines(id),
    group_name TEXT,
    keyword_type TEXT,
    count INTEGER
);
`

// fixtureDB creates a database file with the dataset schema, applies the
// given statements and returns its path.
func fixtureDB(t *testing.T, statements ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vivino.db")

	db, err := sql.Open(driverName, path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(fixtureSchema)
	require.NoError(t, err)

	for _, stmt := range statements {
		_, err = db.Exec(stmt)
		require.NoError(t, err, stmt)
	}

	return path
}

// openFixture opens a Store over a fresh fixture database.
func openFixture(t *testing.T, statements ...string) *Store {
	t.Helper()

	store, err := Open(context.Background(), Config{
		Path:         fixtureDB(t, statements...),
		MaxOpenConns: 4,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = store.Close() })

	return store
}

// Shared geography: one country, one region.
const seedGeography = `
INSERT INTO countries (code, name) VALUES ('fr', 'France'), ('it', 'Italy');
INSERT INTO regions (id, name, country_code) VALUES (1, 'Bordeaux', 'fr'), (2, 'Toscana', 'it');`
