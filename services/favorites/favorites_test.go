package favorites

import (
	"context"
	"errors"
	"sync"
	"testing"

	"buckler/models"
	"buckler/services/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFavoritesAPI struct {
	mu          sync.Mutex
	server      map[models.FavoriteKey]models.Favorite
	addCalls    int
	removeCalls int
	listCalls   int
	failNext    error
}

func newFakeFavoritesAPI() *fakeFavoritesAPI {
	return &fakeFavoritesAPI{server: make(map[models.FavoriteKey]models.Favorite)}
}

func (f *fakeFavoritesAPI) takeFailure() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeFavoritesAPI) ListFavorites(ctx context.Context) ([]models.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := make([]models.Favorite, 0, len(f.server))
	for _, fav := range f.server {
		out = append(out, fav)
	}
	return out, nil
}

func (f *fakeFavoritesAPI) AddFavorite(ctx context.Context, itemID string, itemType models.ItemType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++
	if err := f.takeFailure(); err != nil {
		return err
	}
	key := models.FavoriteKey{ItemID: itemID, ItemType: itemType}
	f.server[key] = models.Favorite{ItemID: itemID, ItemType: itemType}
	return nil
}

func (f *fakeFavoritesAPI) RemoveFavorite(ctx context.Context, itemID string, itemType models.ItemType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeCalls++
	if err := f.takeFailure(); err != nil {
		return err
	}
	delete(f.server, models.FavoriteKey{ItemID: itemID, ItemType: itemType})
	return nil
}

func TestToggleTwiceRestoresOriginalMembership(t *testing.T) {
	api := newFakeFavoritesAPI()
	e := NewEngine(api, query.NewCache())

	require.NoError(t, e.Toggle(context.Background(), "b1", models.ItemTypeBnb, ActionAdd))
	assert.True(t, e.IsFavorite("b1", models.ItemTypeBnb))

	require.NoError(t, e.Toggle(context.Background(), "b1", models.ItemTypeBnb, ActionRemove))
	assert.False(t, e.IsFavorite("b1", models.ItemTypeBnb))
	assert.Equal(t, 1, api.addCalls)
	assert.Equal(t, 1, api.removeCalls)
}

func TestRollbackOnServerErrorKeepsMembershipConsistent(t *testing.T) {
	api := newFakeFavoritesAPI()
	e := NewEngine(api, query.NewCache())
	require.NoError(t, e.Toggle(context.Background(), "b1", models.ItemTypeBnb, ActionAdd))

	// The remove fails server-side; the optimistic removal must roll back.
	api.failNext = errors.New("favorites service unavailable")
	err := e.Toggle(context.Background(), "b1", models.ItemTypeBnb, ActionRemove)
	require.Error(t, err)
	assert.True(t, e.IsFavorite("b1", models.ItemTypeBnb))

	// A later successful remove returns the set to its original membership.
	require.NoError(t, e.Toggle(context.Background(), "b1", models.ItemTypeBnb, ActionRemove))
	assert.False(t, e.IsFavorite("b1", models.ItemTypeBnb))
}

func TestAddIsNoOpWhenAlreadyPresent(t *testing.T) {
	api := newFakeFavoritesAPI()
	e := NewEngine(api, query.NewCache())
	require.NoError(t, e.Toggle(context.Background(), "t1", models.ItemTypeTour, ActionAdd))

	require.NoError(t, e.Toggle(context.Background(), "t1", models.ItemTypeTour, ActionAdd))
	assert.Equal(t, 1, api.addCalls)
}

func TestRemoveIsNoOpWhenAbsent(t *testing.T) {
	api := newFakeFavoritesAPI()
	e := NewEngine(api, query.NewCache())

	require.NoError(t, e.Toggle(context.Background(), "v9", models.ItemTypeVehicle, ActionRemove))
	assert.Equal(t, 0, api.removeCalls)
}

func TestUnknownItemTypeRejected(t *testing.T) {
	api := newFakeFavoritesAPI()
	e := NewEngine(api, query.NewCache())

	err := e.Toggle(context.Background(), "x", "boat", ActionAdd)
	require.Error(t, err)
	assert.Equal(t, 0, api.addCalls)
}

func TestListSyncsLocalSetAndReconcilesAfterToggle(t *testing.T) {
	api := newFakeFavoritesAPI()
	cache := query.NewCache()
	e := NewEngine(api, cache)

	_, err := e.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, api.listCalls)

	// Toggle invalidates the cached list, so the next List refetches.
	require.NoError(t, e.Toggle(context.Background(), "b2", models.ItemTypeBnb, ActionAdd))
	favs, err := e.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, api.listCalls)
	assert.Len(t, favs, 1)
	assert.True(t, e.IsFavorite("b2", models.ItemTypeBnb))
}
