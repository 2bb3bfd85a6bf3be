package kafkaconfig

import "time"

const (
	// Empty brokers disable event publishing.
	DefaultKafkaBrokers = ""

	DefaultTopic       = "stayhub.bookings"
	DefaultDLQTopic    = "stayhub.bookings.dlq"
	DefaultGroupID     = "stayhub-notifier"
	DefaultLogMessages = true

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerWriteTimeout = 5 * time.Second
	DefaultProducerRequireAcks  = -1
	DefaultProducerCompression  = "snappy"

	DefaultConsumerStartOffset    = -2 // Oldest
	DefaultConsumerMinBytes       = 1
	DefaultConsumerMaxBytes       = 10 * 1024 * 1024
	DefaultConsumerMaxWait        = 500 * time.Millisecond
	DefaultConsumerCommitInterval = 0 // Synchronous commits
	DefaultConsumerMaxRetries     = 3
)
