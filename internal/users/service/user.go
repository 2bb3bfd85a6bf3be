package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	bookingsrepo "stayhub/internal/bookings/repository"
	userserrors "stayhub/internal/users/errors"
	"stayhub/internal/users/repository"
	"stayhub/pkg/config"
	"stayhub/pkg/docstore"
	apperrors "stayhub/pkg/errors"
	"stayhub/pkg/imagehost"
	"stayhub/pkg/model"
	"stayhub/pkg/sanitizer"
	appvalidator "stayhub/pkg/validator"
)

const imageFolder = "users"

// UserService returns users with the password hash already stripped.
type UserService interface {
	Create(ctx context.Context, input *model.UserInput) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, id string, input *model.UserInput) (*model.User, error)
	Delete(ctx context.Context, id string) error
	SetImage(ctx context.Context, id, filename string, data []byte) (*model.User, error)
}

type userService struct {
	repo      repository.UserRepository
	bookings  bookingsrepo.BookingRepository
	validator *appvalidator.Validator
	images    imagehost.Host
	cfg       *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	bookings bookingsrepo.BookingRepository,
	validator *appvalidator.Validator,
	images imagehost.Host,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:      repo,
		bookings:  bookings,
		validator: validator,
		images:    images,
		cfg:       cfg,
	}
}

func (s *userService) Create(ctx context.Context, input *model.UserInput) (*model.User, error) {
	log := s.cfg.Log.FromContext(ctx)

	sanitize(input)
	if err := s.validate(input); err != nil {
		log.Warn("User validation failed", "error", err)
		return nil, err
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Role:         model.RoleClient,
		PasswordHash: hash,
	}
	apply(user, input)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, s.translate(ctx, "create user", user.ID, err)
	}

	log.Info("User created successfully", "id", user.ID)
	public := user.Public()
	return &public, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(ctx, "retrieve user", id, err)
	}
	public := user.Public()
	return &public, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.InvalidInput("email query parameter is required")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFound("User").WithCause(err)
		}
		return nil, s.translate(ctx, "retrieve user", "", err)
	}
	public := user.Public()
	return &public, nil
}

// Update replaces every editable field, password included. The email must
// remain unique among the other users.
func (s *userService) Update(ctx context.Context, id string, input *model.UserInput) (*model.User, error) {
	log := s.cfg.Log.FromContext(ctx)

	sanitize(input)
	if err := s.validate(input); err != nil {
		log.Warn("User update validation failed", "id", id, "error", err)
		return nil, err
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Update(ctx, id, func(u *model.User) error {
		apply(u, input)
		u.PasswordHash = hash
		return nil
	})
	if err != nil {
		return nil, s.translate(ctx, "update user", id, err)
	}

	log.Info("User updated successfully", "id", id)
	public := user.Public()
	return &public, nil
}

// Delete refuses to remove a user that still holds bookings.
func (s *userService) Delete(ctx context.Context, id string) error {
	log := s.cfg.Log.FromContext(ctx)

	bookings, err := s.bookings.FindByUser(ctx, id)
	if err != nil {
		log.Error("Failed to load user bookings", "id", id, "error", err)
		return docstore.AsAppError("load user bookings", err)
	}
	if len(bookings) > 0 {
		return apperrors.Conflict(fmt.Sprintf("User has %d booking(s) and cannot be deleted", len(bookings))).
			WithCause(userserrors.ErrHasBookings)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translate(ctx, "delete user", id, err)
	}

	log.Info("User deleted successfully", "id", id)
	return nil
}

func (s *userService) SetImage(ctx context.Context, id, filename string, data []byte) (*model.User, error) {
	log := s.cfg.Log.FromContext(ctx)

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, s.translate(ctx, "retrieve user", id, err)
	}

	url, err := s.images.Upload(ctx, imageFolder, filename, data)
	if err != nil {
		log.Warn("User image rejected", "id", id, "error", err)
		return nil, imagehost.AsAppError(err)
	}

	user, err := s.repo.Update(ctx, id, func(u *model.User) error {
		u.Image = url
		return nil
	})
	if err != nil {
		return nil, s.translate(ctx, "update user", id, err)
	}

	log.Info("User image updated", "id", id, "url", url)
	public := user.Public()
	return &public, nil
}

// --- Helpers ---

func (s *userService) validate(input *model.UserInput) error {
	err := s.validator.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs appvalidator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return apperrors.Validation("User validation failed", fieldErrs.Details())
	}
	return apperrors.Internal("Failed to validate user", err)
}

func (s *userService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return "", apperrors.Internal("Failed to hash password", err)
	}
	return string(hash), nil
}

func (s *userService) translate(ctx context.Context, operation, id string, err error) error {
	switch {
	case errors.Is(err, userserrors.ErrNotFound):
		return apperrors.NotFoundWithID("User", id).WithCause(err)
	case errors.Is(err, userserrors.ErrEmailTaken):
		return apperrors.Conflict("A user with this email already exists").WithCause(err)
	}
	s.cfg.Log.FromContext(ctx).Error("User store operation failed", "operation", operation, "id", id, "error", err)
	return docstore.AsAppError(operation, err)
}

func sanitize(input *model.UserInput) {
	input.Name = sanitizer.TrimAndNormalize(input.Name)
	input.Surname = sanitizer.TrimAndNormalize(input.Surname)
	input.Email = sanitizer.NormalizeEmail(input.Email)
	input.Address.Street = sanitizer.TrimAndNormalize(input.Address.Street)
	input.Address.City = sanitizer.TrimAndNormalize(input.Address.City)
	input.Address.Country = sanitizer.TrimAndNormalize(input.Address.Country)
	input.Address.PostalCode = sanitizer.TrimAndNormalize(input.Address.PostalCode)
}

func apply(u *model.User, input *model.UserInput) {
	u.Name = input.Name
	u.Surname = input.Surname
	u.Email = input.Email
	u.YearOfBirth = input.YearOfBirth
	u.Address = model.UserAddress{
		Street:     input.Address.Street,
		City:       input.Address.City,
		Country:    input.Address.Country,
		PostalCode: input.Address.PostalCode,
	}
}
