package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"buckler/client"
	"buckler/config"
	"buckler/services/catalog"
	"buckler/services/favorites"
	"buckler/services/gate"
	"buckler/services/host"
	"buckler/services/query"
	"buckler/services/session"
	"buckler/storage"
	"buckler/utils"

	"go.uber.org/zap"
)

// Demo entry point: wires the full client stack against the configured
// backend, restores any persisted session, and prints the landing-page reads.
func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	var store storage.Store
	var err error
	switch config.AppConfig.StorageBackend {
	case "redis":
		store, err = storage.NewRedisStore(0)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize redis storage: %v", err)
		}
	default:
		store, err = storage.NewFileStore(config.AppConfig.StorageDir)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize file storage: %v", err)
		}
	}

	api := client.New(config.AppConfig.APIBaseURL, config.HTTPTimeout())
	sessionService := session.New(api, store)
	cache := query.NewCache()
	catalogService := catalog.New(api, cache)
	favoritesEngine := favorites.NewEngine(api, cache)
	authGate := gate.New(sessionService, store)
	hostSelection := host.NewSelection(store)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sessionService.Initialize(ctx); err != nil {
		logger.Warn("session initialization failed", zap.Error(err))
	}
	logger.Info("session state", zap.String("state", string(sessionService.State())))

	featured, err := catalogService.FeaturedBnbs(ctx)
	if err != nil {
		logger.Warn("failed to load featured listings", zap.Error(err))
	} else {
		logger.Info("featured listings loaded", zap.Int("count", len(featured)))
	}

	if sessionService.Session().IsAuthenticated() {
		favs, err := favoritesEngine.List(ctx)
		if err != nil {
			logger.Warn("failed to load favorites", zap.Error(err))
		} else {
			logger.Info("favorites loaded", zap.Int("count", len(favs)))
		}
	} else {
		// Show the gating path: an unauthenticated wishlist add parks the
		// draft and asks for login.
		err := authGate.Require(ctx, "wishlist", map[string]string{"item_id": "demo"}, func(ctx context.Context) error {
			return favoritesEngine.Toggle(ctx, "demo", "bnb", favorites.ActionAdd)
		})
		if err != nil {
			logger.Info("wishlist action gated", zap.Error(err))
		}
	}

	logger.Info("host services selected", zap.Strings("services", hostSelection.Selected()))

	// Keep running until interrupted so the demo can be driven interactively
	// against a live backend.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: shutting down")
}
