package api

import (
	"context"
	"fmt"

	"stayhub/pkg/client"
	"stayhub/pkg/config"
	"stayhub/pkg/docstore"
)

// OpenStore opens the backend selected by cfg.StoreDriver. The returned
// close function releases the backend's connections.
func OpenStore(ctx context.Context, cfg *config.Config) (docstore.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMongo:
		return OpenMongoStore(ctx, cfg)
	case config.StoreDriverFile:
		store, err := docstore.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		cfg.Log.Info("Using file document store", "dir", cfg.DataDir)
		return store, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func OpenMongoStore(ctx context.Context, cfg *config.Config) (docstore.Store, func(), error) {
	mongoClient, err := client.ConnectMongo(ctx, cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	if err != nil {
		return nil, nil, err
	}
	store := docstore.NewMongoStore(mongoClient, cfg.MongoDatabaseName, cfg.ReadTimeout, cfg.WriteTimeout)
	cfg.Log.Info("Using Mongo document store", "database", cfg.MongoDatabaseName)

	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			cfg.Log.Error("Failed to disconnect from MongoDB", "error", err)
		}
	}
	return store, closeFn, nil
}
