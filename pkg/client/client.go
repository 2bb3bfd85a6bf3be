// Package client is a thin HTTP client for the stayhub API, plus the Mongo
// connection helper shared by the commands.
package client

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stayhub/pkg/logger"
)

type Client struct {
	HTTP     *HttpClient
	Places   *PlaceClient
	Owners   *OwnerClient
	Users    *UserClient
	Reviews  *ReviewClient
	Bookings *BookingClient
}

func NewClient(baseURL string) *Client {
	h := NewHttpClient(baseURL)
	return &Client{
		HTTP:     h,
		Places:   &PlaceClient{httpClient: h},
		Owners:   &OwnerClient{httpClient: h},
		Users:    &UserClient{httpClient: h},
		Reviews:  &ReviewClient{httpClient: h},
		Bookings: &BookingClient{httpClient: h},
	}
}

// ConnectMongo connects and pings within timeout.
func ConnectMongo(ctx context.Context, log *logger.Logger, mongoURI string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info("Successfully connected to MongoDB")
	return client, nil
}
