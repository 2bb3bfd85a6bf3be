package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ownerserrors "stayhub/internal/owners/errors"
	"stayhub/internal/owners/repository"
	placesrepo "stayhub/internal/places/repository"
	"stayhub/pkg/config"
	"stayhub/pkg/docstore"
	apperrors "stayhub/pkg/errors"
	"stayhub/pkg/logger"
	"stayhub/pkg/model"
	appvalidator "stayhub/pkg/validator"
)

func newService(t *testing.T) (OwnerService, placesrepo.PlaceRepository) {
	t.Helper()
	store := docstore.NewMemoryStore()
	_, err := docstore.Bootstrap(context.Background(), store, docstore.All...)
	require.NoError(t, err)
	db := docstore.NewDatabase(store)

	log := logger.Discard()
	places := placesrepo.NewPlaceRepository(db)
	svc := NewOwnerService(repository.NewOwnerRepository(db), places, appvalidator.New(log), &config.Config{Log: log})
	return svc, places
}

func ownerInput(email string) *model.OwnerInput {
	return &model.OwnerInput{
		Name:    "Grace",
		Surname: "Hopper",
		Email:   email,
		Phone:   "+1 (212) 555-1234",
	}
}

func TestCreate_NormalizesAndAssignsID(t *testing.T) {
	svc, _ := newService(t)

	owner, err := svc.Create(context.Background(), ownerInput(" Grace@Example.com"))
	require.NoError(t, err)

	assert.NotEmpty(t, owner.ID)
	assert.Equal(t, "grace@example.com", owner.Email)
	assert.Equal(t, "+12125551234", owner.Phone)
	assert.False(t, owner.CreatedAt.IsZero())
}

func TestCreate_Rejections(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, ownerInput("grace@example.com"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, ownerInput("GRACE@example.com"))
	assert.ErrorIs(t, err, ownerserrors.ErrEmailTaken)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))

	bad := ownerInput("hopper@example.com")
	bad.Phone = "0541234567"
	_, err = svc.Create(ctx, bad)
	require.Error(t, err)
	assert.Contains(t, apperrors.AsAppError(err).Details, "phone")

	noPhone := ownerInput("hopper@example.com")
	noPhone.Phone = ""
	_, err = svc.Create(ctx, noPhone)
	assert.NoError(t, err, "phone is optional")
}

func TestUpdateAndGetAll(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	grace, err := svc.Create(ctx, ownerInput("grace@example.com"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, ownerInput("ada@example.com"))
	require.NoError(t, err)

	in := ownerInput("grace.hopper@example.com")
	in.Surname = "Murray Hopper"
	updated, err := svc.Update(ctx, grace.ID, in)
	require.NoError(t, err)
	assert.Equal(t, grace.ID, updated.ID)
	assert.Equal(t, "Murray Hopper", updated.Surname)
	assert.True(t, grace.CreatedAt.Equal(updated.CreatedAt))

	_, err = svc.Update(ctx, grace.ID, ownerInput("ada@example.com"))
	assert.ErrorIs(t, err, ownerserrors.ErrEmailTaken)

	owners, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, owners, 2)

	_, err = svc.GetByID(ctx, "ghost")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestDelete_RefusesOwnerWithPlaces(t *testing.T) {
	svc, places := newService(t)
	ctx := context.Background()
	owner, err := svc.Create(ctx, ownerInput("grace@example.com"))
	require.NoError(t, err)
	require.NoError(t, places.Create(ctx, &model.Place{ID: "p-1", OwnerID: owner.ID, Title: "Loft"}))

	err = svc.Delete(ctx, owner.ID)
	assert.ErrorIs(t, err, ownerserrors.ErrHasPlaces)

	_, err = places.Delete(ctx, "p-1")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, owner.ID))

	err = svc.Delete(ctx, owner.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}
