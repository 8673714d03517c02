// Package favorites is the optimistic wishlist engine: the heart icon flips
// immediately, the server call follows, and failures roll the set back.
package favorites

import (
	"context"
	"fmt"
	"sync"
	"time"

	"buckler/config"
	"buckler/models"
	"buckler/services/query"
	"buckler/utils"

	"go.uber.org/zap"
)

// Action selects the toggle direction.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

const cacheKey = "favorites:list"

// API is the slice of the REST client the engine needs.
type API interface {
	ListFavorites(ctx context.Context) ([]models.Favorite, error)
	AddFavorite(ctx context.Context, itemID string, itemType models.ItemType) error
	RemoveFavorite(ctx context.Context, itemID string, itemType models.ItemType) error
}

// Engine keeps the local favorites set and reconciles it with server truth.
type Engine struct {
	API    API
	Cache  *query.Cache
	Logger *zap.Logger

	mu  sync.Mutex
	set map[models.FavoriteKey]models.Favorite
}

func NewEngine(api API, cache *query.Cache) *Engine {
	return &Engine{
		API:    api,
		Cache:  cache,
		Logger: utils.GetLogger(),
		set:    make(map[models.FavoriteKey]models.Favorite),
	}
}

// List fetches the wishlist through the cache and syncs the local set.
func (e *Engine) List(ctx context.Context) ([]models.Favorite, error) {
	favs, err := query.Fetch(ctx, e.Cache, cacheKey, config.UserStaleness(), e.API.ListFavorites)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.set = make(map[models.FavoriteKey]models.Favorite, len(favs))
	for _, f := range favs {
		e.set[f.Key()] = f
	}
	e.mu.Unlock()
	return favs, nil
}

// IsFavorite reports local set membership for the heart-icon state.
func (e *Engine) IsFavorite(itemID string, itemType models.ItemType) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.set[models.FavoriteKey{ItemID: itemID, ItemType: itemType}]
	return ok
}

// Toggle applies the add/remove optimistically, issues the server call, and
// rolls back to the pre-mutation snapshot on failure. The cached read is
// invalidated on success and failure alike to reconcile with server truth.
// Adding a present pair or removing an absent one is a no-op.
func (e *Engine) Toggle(ctx context.Context, itemID string, itemType models.ItemType, action Action) error {
	if !models.ValidItemType(itemType) {
		return fmt.Errorf("unknown item type: %s", itemType)
	}
	key := models.FavoriteKey{ItemID: itemID, ItemType: itemType}

	e.mu.Lock()
	_, present := e.set[key]
	e.mu.Unlock()
	if (action == ActionAdd && present) || (action == ActionRemove && !present) {
		return nil
	}

	u := query.Update[map[models.FavoriteKey]models.Favorite]{
		Snapshot: e.snapshot,
		Apply: func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			if action == ActionAdd {
				e.set[key] = models.Favorite{ItemID: itemID, ItemType: itemType, CreatedAt: time.Now()}
			} else {
				delete(e.set, key)
			}
		},
		Call: func(ctx context.Context) error {
			if action == ActionAdd {
				return e.API.AddFavorite(ctx, itemID, itemType)
			}
			return e.API.RemoveFavorite(ctx, itemID, itemType)
		},
		Rollback: func(snap map[models.FavoriteKey]models.Favorite) {
			e.Logger.Warn("favorite toggle failed, rolling back",
				zap.String("itemID", itemID), zap.String("itemType", string(itemType)))
			e.mu.Lock()
			e.set = snap
			e.mu.Unlock()
		},
		Reconcile: func() {
			e.Cache.Invalidate("favorites")
		},
	}
	return query.Run(ctx, u)
}

func (e *Engine) snapshot() map[models.FavoriteKey]models.Favorite {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := make(map[models.FavoriteKey]models.Favorite, len(e.set))
	for k, v := range e.set {
		snap[k] = v
	}
	return snap
}
