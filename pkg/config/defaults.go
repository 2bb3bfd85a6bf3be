package config

import "time"

const (
	StoreDriverFile  = "file"
	StoreDriverMongo = "mongo"
)

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultStoreDriver = StoreDriverFile
	DefaultDataDir     = "./data"

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "stayhub"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultImageDir      = "./data/images"
	DefaultPublicBaseURL = "http://localhost:8080"
	DefaultMaxUploadSize = 5 * 1024 * 1024 // 5MB

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultBcryptCost = 10
)
