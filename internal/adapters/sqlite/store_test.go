package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/wine-dashboard/internal/domain"
)

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(context.Background(), Config{Path: filepath.Join(t.TempDir(), "absent.db")})

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.Contains(t, err.Error(), "does not exist")
}

func TestOpen_SchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.db")

	db, err := sql.Open(driverName, path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE wines (id INTEGER PRIMARY KEY, name TEXT)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = Open(context.Background(), Config{Path: path})

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.Contains(t, err.Error(), "vintages")
	assert.Contains(t, err.Error(), "keywords_wine")
	assert.NotContains(t, err.Error(), "wines,")
}

func TestStore_HealthCheck(t *testing.T) {
	store := openFixture(t)

	assert.Equal(t, "sqlite", store.Name())
	require.NoError(t, store.Check(context.Background()))
}

func TestStore_QueryOnly(t *testing.T) {
	store := openFixture(t)

	_, err := store.db.ExecContext(context.Background(),
		`INSERT INTO grapes (id, name) VALUES (1, 'Merlot')`)

	require.Error(t, err, "connections must reject writes")
}

func TestStore_ClosedPoolPropagatesError(t *testing.T) {
	store := openFixture(t, seedGeography)
	require.NoError(t, store.db.Close())

	_, err := store.HighlightedWines(context.Background(), domain.DefaultHighlightFilter())
	require.Error(t, err)

	_, err = store.TasteKeywordWines(context.Background(), domain.DefaultCatalog().TasteKeywordQuery())
	require.Error(t, err)

	_, err = store.TopWinesPerGrape(context.Background(), []int64{2, 5}, domain.DefaultCatalog().GrapeRankingQuery())
	require.Error(t, err)

	assert.Error(t, store.Check(context.Background()))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
	assert.Empty(t, placeholders(0))
}
