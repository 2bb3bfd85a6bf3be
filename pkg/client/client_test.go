package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stayhub/internal/api"
	"stayhub/pkg/app"
	"stayhub/pkg/client"
	"stayhub/pkg/config"
	"stayhub/pkg/docstore"
	"stayhub/pkg/imagehost"
	"stayhub/pkg/logger"
	"stayhub/pkg/model"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func startServer(t *testing.T) *client.Client {
	t.Helper()

	cfg := config.FromEnv()
	cfg.Log = logger.Discard()
	cfg.BcryptCost = bcrypt.MinCost

	store := docstore.NewMemoryStore()
	_, err := docstore.Bootstrap(context.Background(), store, docstore.All...)
	require.NoError(t, err)

	imageDir := t.TempDir()
	images, err := imagehost.NewLocalHost(imageDir, "", cfg.MaxUploadSize, cfg.Log)
	require.NoError(t, err)

	health, handlers := api.Handlers(cfg, api.Dependencies{Store: store, Images: images})

	application := app.NewApplication()
	application.SetApp(cfg, health, imageDir, handlers...)
	t.Cleanup(application.Stop)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	c := client.NewClient(srv.URL)
	require.NoError(t, c.HTTP.WaitForHealthy(context.Background(), 5*time.Second))
	return c
}

func createFixture(t *testing.T, c *client.Client) (placeID, userID string) {
	t.Helper()
	ctx := context.Background()

	resp, err := c.Owners.Create(ctx, map[string]any{
		"name": "Grace", "surname": "Hopper", "email": "grace@example.com", "phone": "+12125551234",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, client.GetErrorMessage(resp))
	var owner model.Owner
	require.NoError(t, resp.DecodeData(&owner))

	resp, err = c.Places.Create(ctx, owner.ID, map[string]any{
		"title":       "Sea View Loft",
		"description": "Bright loft above the harbour",
		"address": map[string]any{
			"street": "1 Quay Street", "city": "Lisbon", "postalCode": "1100", "country": "Portugal",
			"latitude": 38.70, "longitude": -9.13,
		},
		"price": 120.0,
		"start": "2023-01-01",
		"end":   "2023-01-31",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, client.GetErrorMessage(resp))
	var place model.Place
	require.NoError(t, resp.DecodeData(&place))

	resp, err = c.Users.Create(ctx, map[string]any{
		"name": "Ada", "surname": "Lovelace", "email": "ada@example.com", "yearOfBirth": 1990,
		"address":  map[string]any{"street": "12 Marsh Lane", "city": "London", "country": "UK", "postalCode": "N1"},
		"password": "analytical1",
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, client.GetErrorMessage(resp))
	var user model.User
	require.NoError(t, resp.DecodeData(&user))

	return place.ID, user.ID
}

func TestBookingFlow(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()
	placeID, userID := createFixture(t, c)

	steps := []struct {
		start, end string
		wantStatus int
	}{
		{"2023-01-10", "2023-01-15", http.StatusCreated},
		{"2023-01-14", "2023-01-16", http.StatusConflict},
		{"2023-01-16", "2023-01-20", http.StatusCreated},
		{"2023-01-30", "2023-02-02", http.StatusConflict},
		{"2023-01-20", "2023-01-18", http.StatusBadRequest},
	}
	for _, step := range steps {
		resp, err := c.Bookings.Create(ctx, userID, map[string]string{"placeId": placeID, "start": step.start, "end": step.end})
		require.NoError(t, err)
		assert.Equal(t, step.wantStatus, resp.StatusCode, "%s..%s: %s", step.start, step.end, resp.Body)
	}

	resp, err := c.Bookings.ListByPlace(ctx, placeID)
	require.NoError(t, err)
	var bookings []model.Booking
	require.NoError(t, resp.DecodeData(&bookings))
	require.Len(t, bookings, 2)

	var first model.Booking
	for _, b := range bookings {
		if b.Period.Start.String() == "2023-01-10" {
			first = b
		}
	}
	require.NotEmpty(t, first.ID)

	resp, err = c.Bookings.Cancel(ctx, userID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = c.Bookings.Create(ctx, userID, map[string]string{"placeId": placeID, "start": "2023-01-14", "end": "2023-01-15"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "freed dates can be booked again")

	resp, err = c.Places.Delete(ctx, placeID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "place with bookings cannot be deleted")
}

func TestIdempotentBooking(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()
	placeID, userID := createFixture(t, c)
	body := map[string]string{"placeId": placeID, "start": "2023-01-05", "end": "2023-01-07"}

	first, err := c.Bookings.CreateIdempotent(ctx, userID, "key-1", body)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, first.StatusCode)

	second, err := c.Bookings.CreateIdempotent(ctx, userID, "key-1", body)
	require.NoError(t, err)
	assert.Equal(t, first.StatusCode, second.StatusCode)
	assert.Equal(t, string(first.Body), string(second.Body))

	resp, err := c.Bookings.ListByUser(ctx, userID)
	require.NoError(t, err)
	var bookings []model.Booking
	require.NoError(t, resp.DecodeData(&bookings))
	assert.Len(t, bookings, 1)
}

func TestImageUploadIsServed(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()
	placeID, _ := createFixture(t, c)

	resp, err := c.Places.AddImage(ctx, placeID, "photo.png", pngHeader)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, client.GetErrorMessage(resp))

	var place model.Place
	require.NoError(t, resp.DecodeData(&place))
	require.Len(t, place.Images, 1)
	assert.True(t, strings.HasPrefix(place.Images[0], "/images/places/"), place.Images[0])

	served, err := c.HTTP.GET(ctx, place.Images[0])
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, served.StatusCode)
	assert.Equal(t, pngHeader, served.Body)

	resp, err = c.Places.AddImage(ctx, placeID, "notes.png", []byte("plain text, not an image"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJSONEndpointsRequireJSON(t *testing.T) {
	c := startServer(t)

	resp, err := c.HTTP.POSTFile(context.Background(), "/api/v1/owners", "image", "x.png", pngHeader)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}
