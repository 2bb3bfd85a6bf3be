package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	bookingsrepo "stayhub/internal/bookings/repository"
	userserrors "stayhub/internal/users/errors"
	"stayhub/internal/users/repository"
	"stayhub/pkg/config"
	"stayhub/pkg/docstore"
	apperrors "stayhub/pkg/errors"
	"stayhub/pkg/imagehost"
	"stayhub/pkg/logger"
	"stayhub/pkg/model"
	appvalidator "stayhub/pkg/validator"
)

type fakeHost struct {
	err error
}

func (h *fakeHost) Upload(ctx context.Context, folder, filename string, data []byte) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "http://localhost:8080/images/" + folder + "/avatar.png", nil
}

type fixture struct {
	service  UserService
	repo     repository.UserRepository
	bookings bookingsrepo.BookingRepository
	host     *fakeHost
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := docstore.NewMemoryStore()
	_, err := docstore.Bootstrap(context.Background(), store, docstore.All...)
	require.NoError(t, err)
	db := docstore.NewDatabase(store)

	log := logger.Discard()
	f := &fixture{
		repo:     repository.NewUserRepository(db),
		bookings: bookingsrepo.NewBookingRepository(db),
		host:     &fakeHost{},
	}
	cfg := &config.Config{Log: log, BcryptCost: bcrypt.MinCost}
	f.service = NewUserService(f.repo, f.bookings, appvalidator.New(log), f.host, cfg)
	return f
}

func validInput(email string) *model.UserInput {
	return &model.UserInput{
		Name:        " Ada ",
		Surname:     "Lovelace",
		Email:       email,
		YearOfBirth: 1990,
		Address: model.UserAddressInput{
			Street:     "12 Analytical Street",
			City:       "London",
			Country:    "United Kingdom",
			PostalCode: "N1 9GU",
		},
		Password: "secret123",
	}
}

func TestCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.service.Create(ctx, validInput("Ada@Example.com"))
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, model.RoleClient, user.Role)
	assert.Empty(t, user.PasswordHash, "hash never leaves the service")

	stored, err := f.repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestCreate_DuplicateEmailConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.service.Create(ctx, validInput("ada@example.com"))
	require.NoError(t, err)

	_, err = f.service.Create(ctx, validInput("ADA@example.com "))
	assert.ErrorIs(t, err, userserrors.ErrEmailTaken)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))

	second, err := f.service.Create(ctx, validInput("lovelace@example.com"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID, "a fresh id is generated")
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *model.UserInput)
		field  string
	}{
		{"bad email", func(in *model.UserInput) { in.Email = "not-an-email" }, "email"},
		{"short password", func(in *model.UserInput) { in.Password = "abc" }, "password"},
		{"password with symbols", func(in *model.UserInput) { in.Password = "secret-123!" }, "password"},
		{"missing city", func(in *model.UserInput) { in.Address.City = " " }, "address.city"},
		{"year out of range", func(in *model.UserInput) { in.YearOfBirth = 1800 }, "yearOfBirth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			in := validInput("ada@example.com")
			tt.mutate(in)

			_, err := f.service.Create(context.Background(), in)
			require.Error(t, err)
			appErr := apperrors.AsAppError(err)
			assert.Equal(t, apperrors.CodeValidation, appErr.Code)
			assert.Contains(t, appErr.Details, tt.field)
		})
	}
}

func TestGetByEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.service.Create(ctx, validInput("ada@example.com"))
	require.NoError(t, err)

	got, err := f.service.GetByEmail(ctx, " ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Empty(t, got.PasswordHash)

	_, err = f.service.GetByEmail(ctx, "nobody@example.com")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	_, err = f.service.GetByEmail(ctx, "")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
}

func TestUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ada, err := f.service.Create(ctx, validInput("ada@example.com"))
	require.NoError(t, err)
	_, err = f.service.Create(ctx, validInput("alan@example.com"))
	require.NoError(t, err)

	in := validInput("ada.lovelace@example.com")
	in.Surname = "King"
	in.Password = "newsecret456"
	updated, err := f.service.Update(ctx, ada.ID, in)
	require.NoError(t, err)
	assert.Equal(t, ada.ID, updated.ID)
	assert.Equal(t, "King", updated.Surname)
	assert.Equal(t, "ada.lovelace@example.com", updated.Email)
	assert.Equal(t, model.RoleClient, updated.Role)

	stored, err := f.repo.FindByID(ctx, ada.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newsecret456")))

	_, err = f.service.Update(ctx, ada.ID, validInput("Alan@example.com"))
	assert.ErrorIs(t, err, userserrors.ErrEmailTaken, "email must stay unique among other users")

	_, err = f.service.Update(ctx, ada.ID, validInput("ada.lovelace@example.com"))
	assert.NoError(t, err, "keeping your own email is fine")

	_, err = f.service.Update(ctx, "ghost", validInput("ghost@example.com"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, err := f.service.Create(ctx, validInput("ada@example.com"))
	require.NoError(t, err)

	_, err = f.bookings.Insert(ctx, func([]model.Booking) (*model.Booking, error) {
		return &model.Booking{ID: "b-1", PlaceID: "p-1", UserID: user.ID}, nil
	})
	require.NoError(t, err)

	err = f.service.Delete(ctx, user.ID)
	assert.ErrorIs(t, err, userserrors.ErrHasBookings)

	_, err = f.bookings.DeleteForUser(ctx, "b-1", user.ID)
	require.NoError(t, err)
	require.NoError(t, f.service.Delete(ctx, user.ID))

	_, err = f.service.GetByID(ctx, user.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestSetImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, err := f.service.Create(ctx, validInput("ada@example.com"))
	require.NoError(t, err)

	updated, err := f.service.SetImage(ctx, user.ID, "me.png", []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/images/users/avatar.png", updated.Image)

	f.host.err = imagehost.ErrEmpty
	_, err = f.service.SetImage(ctx, user.ID, "me.png", nil)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = f.service.SetImage(ctx, "ghost", "me.png", []byte("png"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}
