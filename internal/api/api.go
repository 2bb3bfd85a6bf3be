// Package api assembles repositories, services and HTTP handlers over a
// single document store.
package api

import (
	bookingshandler "stayhub/internal/bookings/handler"
	bookingsrepo "stayhub/internal/bookings/repository"
	bookingsservice "stayhub/internal/bookings/service"
	bookingsvalidator "stayhub/internal/bookings/validator"
	healthhandler "stayhub/internal/health/handler"
	ownershandler "stayhub/internal/owners/handler"
	ownersrepo "stayhub/internal/owners/repository"
	ownersservice "stayhub/internal/owners/service"
	placeshandler "stayhub/internal/places/handler"
	placesrepo "stayhub/internal/places/repository"
	placesservice "stayhub/internal/places/service"
	placesvalidator "stayhub/internal/places/validator"
	reviewshandler "stayhub/internal/reviews/handler"
	reviewsrepo "stayhub/internal/reviews/repository"
	reviewsservice "stayhub/internal/reviews/service"
	usershandler "stayhub/internal/users/handler"
	usersrepo "stayhub/internal/users/repository"
	usersservice "stayhub/internal/users/service"
	"stayhub/pkg/config"
	"stayhub/pkg/contracts"
	"stayhub/pkg/docstore"
	"stayhub/pkg/imagehost"
	"stayhub/pkg/kafka"
	appvalidator "stayhub/pkg/validator"
)

type Dependencies struct {
	Store     docstore.Store
	Images    imagehost.Host
	Publisher kafka.BookingPublisher
}

// Handlers returns the health handler and the API handlers.
func Handlers(cfg *config.Config, deps Dependencies) (contracts.Handler, []contracts.Handler) {
	db := docstore.NewDatabase(deps.Store)

	placeRepo := placesrepo.NewPlaceRepository(db)
	userRepo := usersrepo.NewUserRepository(db)
	ownerRepo := ownersrepo.NewOwnerRepository(db)
	reviewRepo := reviewsrepo.NewReviewRepository(db)
	bookingRepo := bookingsrepo.NewBookingRepository(db)

	validator := appvalidator.New(cfg.Log)
	publisher := deps.Publisher
	if publisher == nil {
		publisher = kafka.NopPublisher{}
	}

	placeService := placesservice.NewPlaceService(
		placeRepo,
		ownerRepo,
		bookingRepo,
		reviewRepo,
		placesvalidator.NewPlaceValidator(cfg.Log),
		deps.Images,
		cfg,
	)
	userService := usersservice.NewUserService(userRepo, bookingRepo, validator, deps.Images, cfg)
	ownerService := ownersservice.NewOwnerService(ownerRepo, placeRepo, validator, cfg)
	reviewService := reviewsservice.NewReviewService(reviewRepo, placeRepo, userRepo, validator, cfg)
	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		placeRepo,
		userRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	maxUpload := int64(cfg.MaxUploadSize)
	handlers := []contracts.Handler{
		placeshandler.NewPlaceHandler(placeService, maxUpload, cfg.Log),
		usershandler.NewUserHandler(userService, maxUpload, cfg.Log),
		ownershandler.NewOwnerHandler(ownerService, cfg.Log),
		reviewshandler.NewReviewHandler(reviewService, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
	}

	cfg.Log.Info("Services initialized", "handlers", len(handlers))
	return healthhandler.NewHealthHandler(deps.Store, cfg.Log), handlers
}
