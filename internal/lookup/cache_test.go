package lookup_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	redismock "github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/heromancer/internal/catalogue"
	"github.com/KirkDiggler/heromancer/internal/catalogue/cataloguefake"
	"github.com/KirkDiggler/heromancer/internal/lookup"
)

func buildFixtureIndex(t *testing.T) *lookup.Index {
	t.Helper()
	store := cataloguefake.New().
		AddPack(catalogue.PackRef{ID: "phb"}).
		AddItem("phb", catalogue.IndexEntry{ID: "dagger", Name: "Dagger", Kind: catalogue.KindWeapon,
			System: map[string]any{"proficiency": "simple", "shape": "melee"}})
	packs, _ := store.PackList(context.Background())
	return lookup.Build(context.Background(), store, packs).Index
}

func TestRedisCache_SaveThenLoad_RoundTrips(t *testing.T) {
	idx := buildFixtureIndex(t)
	client, mock := redismock.NewClientMock()
	cache := lookup.NewRedisCache(client, time.Hour)

	snap := idx.Snapshot()
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	mock.ExpectSet("heromancer:lookup-index:session-1", data, time.Hour).SetVal("OK")
	require.NoError(t, cache.Save(context.Background(), "session-1", idx))

	mock.ExpectGet("heromancer:lookup-index:session-1").SetVal(string(data))
	store := cataloguefake.New()
	loaded, err := cache.Load(context.Background(), "session-1", store)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	simple := loaded.LookupByCategory(catalogue.CategoryKey{Axis: catalogue.KindWeapon, Proficiency: "simple", Shape: "melee"})
	require.Len(t, simple, 1)
	assert.Equal(t, "Dagger", simple[0].Name)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Load_CacheMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cache := lookup.NewRedisCache(client, time.Hour)

	mock.ExpectGet("heromancer:lookup-index:missing").RedisNil()
	loaded, err := cache.Load(context.Background(), "missing", cataloguefake.New())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
