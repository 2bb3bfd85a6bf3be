package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"stayhub/internal/api"
	mongoMigration "stayhub/internal/migrations/mongo"
	"stayhub/pkg/client"
	"stayhub/pkg/config"
	"stayhub/pkg/docstore"
)

const JobName = "stayhub-migrate"

func main() {
	copyToMongo := flag.Bool("copy-to-mongo", false, "copy every collection from DATA_DIR into the Mongo store")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.Log.Info("Starting migration job", "store_driver", cfg.StoreDriver, "copy_to_mongo", *copyToMongo)

	switch {
	case *copyToMongo:
		copyFileStoreToMongo(ctx, cfg)
	case cfg.StoreDriver == config.StoreDriverMongo:
		withMongo(ctx, cfg, func(store docstore.Store) {
			bootstrap(ctx, cfg, store)
		})
	default:
		store, _, err := api.OpenStore(ctx, cfg)
		if err != nil {
			cfg.Log.Fatal("Failed to open document store", "error", err)
		}
		bootstrap(ctx, cfg, store)
	}
	fmt.Println("Migration completed successfully.")
}

func bootstrap(ctx context.Context, cfg *config.Config, store docstore.Store) {
	created, err := docstore.Bootstrap(ctx, store, docstore.All...)
	if err != nil {
		cfg.Log.Fatal("Bootstrap failed", "error", err)
	}
	cfg.Log.Info("Collections bootstrapped", "created", created)
}

// withMongo connects, applies the schema migration and hands fn a store over
// the migrated collection.
func withMongo(ctx context.Context, cfg *config.Config, fn func(store docstore.Store)) {
	mongoClient, err := client.ConnectMongo(ctx, cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	if err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	defer disconnect(cfg, mongoClient)

	if err := mongoMigration.RunMigration(ctx, mongoClient, cfg.MongoDatabaseName, cfg.Log); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}

	fn(docstore.NewMongoStore(mongoClient, cfg.MongoDatabaseName, cfg.ReadTimeout, cfg.WriteTimeout))
}

func copyFileStoreToMongo(ctx context.Context, cfg *config.Config) {
	source, err := docstore.NewFileStore(cfg.DataDir)
	if err != nil {
		cfg.Log.Fatal("Failed to open file store", "error", err)
	}
	if _, err := docstore.Bootstrap(ctx, source, docstore.All...); err != nil {
		cfg.Log.Fatal("Failed to bootstrap file store", "error", err)
	}

	withMongo(ctx, cfg, func(target docstore.Store) {
		if err := docstore.Copy(ctx, source, target, docstore.All...); err != nil {
			cfg.Log.Fatal("Copy failed", "error", err)
		}
		cfg.Log.Info("Collections copied to Mongo", "collections", docstore.All, "source", cfg.DataDir)
	})
}

func disconnect(cfg *config.Config, mongoClient *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := mongoClient.Disconnect(ctx); err != nil {
		cfg.Log.Error("Failed to disconnect from MongoDB", "error", err)
	}
}
