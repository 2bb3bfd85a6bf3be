package main

import (
	"context"

	"stayhub/internal/api"
	"stayhub/pkg/app"
	"stayhub/pkg/config"
	"stayhub/pkg/docstore"
	"stayhub/pkg/imagehost"
	"stayhub/pkg/kafka"
	kafkaconfig "stayhub/pkg/kafka/config"
	kafkamiddleware "stayhub/pkg/kafka/middleware"
)

const ServiceName = "stayhub"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting stayhub service")

	ctx := context.Background()
	store, closeStore, err := api.OpenStore(ctx, cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to open document store", "error", err)
	}

	created, err := docstore.Bootstrap(ctx, store, docstore.All...)
	if err != nil {
		closeStore()
		cfg.Log.Fatal("Failed to bootstrap collections", "error", err)
	}
	if len(created) > 0 {
		cfg.Log.Info("Created empty collections", "collections", created)
	}

	images, err := imagehost.NewLocalHost(cfg.ImageDir, cfg.PublicBaseURL, cfg.MaxUploadSize, cfg.Log)
	if err != nil {
		closeStore()
		cfg.Log.Fatal("Failed to prepare image directory", "error", err)
	}

	publisher, closePublisher := initPublisher(cfg)

	health, handlers := api.Handlers(cfg, api.Dependencies{
		Store:     store,
		Images:    images,
		Publisher: publisher,
	})

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, health, images.Dir(), handlers...)
	serverApp.OnShutdown(closeStore)
	serverApp.OnShutdown(closePublisher)
	serverApp.Run()
}

// initPublisher connects the booking event producer when brokers are
// configured and falls back to dropping events otherwise.
func initPublisher(cfg *config.Config) (kafka.BookingPublisher, func()) {
	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)
	if !kafkaCfg.Enabled() {
		return kafka.NopPublisher{}, func() {}
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))

	return kafka.NewEventPublisher(producer, ServiceName), func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}
}
