package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"stayhub/internal/notifier"
	"stayhub/pkg/config"
	"stayhub/pkg/kafka"
	kafkaconfig "stayhub/pkg/kafka/config"
	kafkamiddleware "stayhub/pkg/kafka/middleware"
	"stayhub/pkg/logger"
)

const ServiceName = "stayhub-notifier"

func main() {
	_ = godotenv.Load()

	log := logger.New(logger.Config{
		Level:   config.GetEnvStr(config.EnvLogLevel, logger.INFO),
		Format:  logger.JSON,
		Service: ServiceName,
	})

	kafkaCfg, err := kafkaconfig.Load()
	if err != nil {
		log.Fatal("Invalid Kafka configuration", "error", err)
	}
	if !kafkaCfg.Enabled() {
		log.Fatal("KAFKA_BROKERS must be set for the notifier")
	}
	kafkaCfg.LogConfiguration(log)

	n := notifier.New(notifier.NewLogSender(log), log)
	consumer, err := kafka.NewConsumer(kafkaCfg, n.Handle, log)
	if err != nil {
		log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafkamiddleware.LoggingConsumerMiddleware(log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting notifier", "topic", kafkaCfg.Topic, "group_id", kafkaCfg.GroupID)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Consumer stopped", "error", err)
	}

	if err := consumer.Close(); err != nil {
		log.Error("Failed to close consumer", "error", err)
	}
	log.Info("Notifier stopped")
}
