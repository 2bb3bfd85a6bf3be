package client

import (
	"context"
	"net/url"
)

type PlaceClient struct {
	httpClient *HttpClient
}

func (c *PlaceClient) Create(ctx context.Context, ownerID string, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/owners/"+url.PathEscape(ownerID)+"/places", body)
}

func (c *PlaceClient) ListByOwner(ctx context.Context, ownerID string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/owners/"+url.PathEscape(ownerID)+"/places")
}

// Search passes filter as query parameters; empty values are dropped.
func (c *PlaceClient) Search(ctx context.Context, filter map[string]string) (*Response, error) {
	q := url.Values{}
	for k, v := range filter {
		if v != "" {
			q.Set(k, v)
		}
	}
	path := "/api/v1/places"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	return c.httpClient.GET(ctx, path)
}

func (c *PlaceClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/places/"+url.PathEscape(id))
}

func (c *PlaceClient) Update(ctx context.Context, id string, body any) (*Response, error) {
	return c.httpClient.PUT(ctx, "/api/v1/places/"+url.PathEscape(id), body)
}

func (c *PlaceClient) Delete(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/api/v1/places/"+url.PathEscape(id))
}

func (c *PlaceClient) AddImage(ctx context.Context, id, filename string, data []byte) (*Response, error) {
	return c.httpClient.POSTFile(ctx, "/api/v1/places/"+url.PathEscape(id)+"/images", "image", filename, data)
}

type OwnerClient struct {
	httpClient *HttpClient
}

func (c *OwnerClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/owners", body)
}

func (c *OwnerClient) GetAll(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/owners")
}

func (c *OwnerClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/owners/"+url.PathEscape(id))
}

func (c *OwnerClient) Update(ctx context.Context, id string, body any) (*Response, error) {
	return c.httpClient.PUT(ctx, "/api/v1/owners/"+url.PathEscape(id), body)
}

func (c *OwnerClient) Delete(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/api/v1/owners/"+url.PathEscape(id))
}

type UserClient struct {
	httpClient *HttpClient
}

func (c *UserClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/users", body)
}

func (c *UserClient) GetByEmail(ctx context.Context, email string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/users?email="+url.QueryEscape(email))
}

func (c *UserClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/users/"+url.PathEscape(id))
}

func (c *UserClient) Update(ctx context.Context, id string, body any) (*Response, error) {
	return c.httpClient.PUT(ctx, "/api/v1/users/"+url.PathEscape(id), body)
}

func (c *UserClient) Delete(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/api/v1/users/"+url.PathEscape(id))
}

func (c *UserClient) SetImage(ctx context.Context, id, filename string, data []byte) (*Response, error) {
	return c.httpClient.POSTFile(ctx, "/api/v1/users/"+url.PathEscape(id)+"/image", "image", filename, data)
}

type ReviewClient struct {
	httpClient *HttpClient
}

func (c *ReviewClient) Create(ctx context.Context, placeID string, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/places/"+url.PathEscape(placeID)+"/reviews", body)
}

func (c *ReviewClient) ListByPlace(ctx context.Context, placeID string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/places/"+url.PathEscape(placeID)+"/reviews")
}

func (c *ReviewClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/reviews/"+url.PathEscape(id))
}

func (c *ReviewClient) Delete(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/api/v1/reviews/"+url.PathEscape(id))
}

type BookingClient struct {
	httpClient *HttpClient
}

func (c *BookingClient) Create(ctx context.Context, userID string, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/users/"+url.PathEscape(userID)+"/bookings", body)
}

// CreateIdempotent sends key as the Idempotency-Key header so a retried
// request replays the first response.
func (c *BookingClient) CreateIdempotent(ctx context.Context, userID, key string, body any) (*Response, error) {
	return c.httpClient.POSTWithHeaders(ctx, "/api/v1/users/"+url.PathEscape(userID)+"/bookings", body,
		map[string]string{IdempotencyKeyHeader: key})
}

func (c *BookingClient) ListByUser(ctx context.Context, userID string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/users/"+url.PathEscape(userID)+"/bookings")
}

func (c *BookingClient) Cancel(ctx context.Context, userID, bookingID string) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/api/v1/users/"+url.PathEscape(userID)+"/bookings/"+url.PathEscape(bookingID))
}

func (c *BookingClient) ListByPlace(ctx context.Context, placeID string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/places/"+url.PathEscape(placeID)+"/bookings")
}

func (c *BookingClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/bookings/"+url.PathEscape(id))
}
