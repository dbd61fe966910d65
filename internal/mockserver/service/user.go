// Package service implements the business rules of the development
// backend.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hungrynow/hungrynow/internal/domain"
	"github.com/hungrynow/hungrynow/internal/mockserver/auth"
	"github.com/hungrynow/hungrynow/internal/mockserver/repository"
	apperrors "github.com/hungrynow/hungrynow/pkg/errors"
	"github.com/hungrynow/hungrynow/pkg/logger"
)

// Messages returned alongside successful responses.
const (
	MsgPasswordChanged   = "Password changed successfully"
	MsgPhoneVerified     = "Phone number verified successfully"
	MsgPasswordResetSent = "If the email is registered, a reset link has been sent"
)

var errInvalidCredentials = apperrors.Unauthorized("invalid email or password")

// UserService implements accounts, profiles and address books.
type UserService struct {
	users      repository.UserRepository
	addresses  repository.AddressRepository
	jwtManager *auth.JWTManager
	logger     *slog.Logger
	bcryptCost int
	now        func() time.Time
}

// NewUserService creates a new user service.
func NewUserService(
	users repository.UserRepository,
	addresses repository.AddressRepository,
	jwtManager *auth.JWTManager,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:      users,
		addresses:  addresses,
		jwtManager: jwtManager,
		logger:     logger,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

func (s *UserService) log(ctx context.Context) *slog.Logger {
	l := logger.FromContext(ctx)
	if l == slog.Default() {
		return s.logger
	}
	return l
}

// --- Auth ---

// Register creates an account and signs it in.
func (s *UserService) Register(ctx context.Context, in domain.Registration) (*domain.Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	u := &repository.UserRecord{
		User: domain.User{
			ID:       uuid.New().String(),
			Email:    strings.ToLower(strings.TrimSpace(in.Email)),
			FullName: strings.TrimSpace(in.FullName),
			Language: "vi",
		},
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "user registered", slog.String("user_id", u.ID))
	return s.issueSession(ctx, u)
}

// Login checks the credentials and returns a fresh session.
func (s *UserService) Login(ctx context.Context, in domain.Credentials) (*domain.Session, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	s.log(ctx).InfoContext(ctx, "user logged in", slog.String("user_id", u.ID))
	return s.issueSession(ctx, u)
}

// Logout revokes the token the request was authenticated with.
func (s *UserService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtManager.Validate(token)
	if err != nil {
		return apperrors.Unauthorized("invalid or expired token")
	}
	s.jwtManager.Revoke(claims)
	s.log(ctx).InfoContext(ctx, "user logged out", slog.String("user_id", claims.UserID))
	return nil
}

// ForgotPassword pretends to send a reset link. It never reveals whether
// the email is registered.
func (s *UserService) ForgotPassword(ctx context.Context, email string) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		s.log(ctx).InfoContext(ctx, "password reset requested for unknown email")
		return
	}
	s.log(ctx).InfoContext(ctx, "password reset requested", slog.String("user_id", u.ID))
}

func (s *UserService) issueSession(ctx context.Context, u *repository.UserRecord) (*domain.Session, error) {
	token, _, err := s.jwtManager.Generate(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	profile, err := s.withAddresses(ctx, u.User)
	if err != nil {
		return nil, err
	}
	return &domain.Session{Token: token, User: profile}, nil
}

// --- Profile ---

// GetProfile returns the user's profile including the address book.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	profile, err := s.withAddresses(ctx, u.User)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies a partial update. Changing the phone number drops
// its verification.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, patch domain.ProfilePatch) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user for update: %w", err)
	}
	if patch.FullName != nil {
		trimmed := strings.TrimSpace(*patch.FullName)
		if trimmed == "" {
			return nil, apperrors.InvalidInput("full name must not be empty")
		}
		patch.FullName = &trimmed
	}

	u.User = patch.Apply(u.User)
	if err := s.users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "profile updated", slog.String("user_id", userID))
	profile, err := s.withAddresses(ctx, u.User)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ChangePassword replaces the password after checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, userID string, in domain.PasswordChange) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user for password change: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return apperrors.InvalidInput("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}
	u.PasswordHash = string(hash)
	if err := s.users.Update(ctx, u); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "password changed", slog.String("user_id", userID))
	return nil
}

// VerifyPhone marks the user's phone number as verified. The identity
// token from the SMS provider is accepted as is.
func (s *UserService) VerifyPhone(ctx context.Context, userID string, in domain.PhoneVerification) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user for phone verification: %w", err)
	}
	if u.PhoneNumber == "" {
		return apperrors.InvalidInput("add a phone number before verifying it")
	}

	u.IsPhoneVerified = true
	if err := s.users.Update(ctx, u); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	s.log(ctx).InfoContext(ctx, "phone verified", slog.String("user_id", userID))
	return nil
}

// --- Addresses ---

// ListAddresses returns the user's address book.
func (s *UserService) ListAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	addresses, err := s.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return addresses, nil
}

// AddAddress stores a new address. The first address of a book becomes
// the default even when not flagged.
func (s *UserService) AddAddress(ctx context.Context, userID string, a domain.Address) (*domain.Address, error) {
	existing, err := s.addresses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}

	a.ID = uuid.New().String()
	if len(existing) == 0 {
		a.IsDefault = true
	}
	if err := s.addresses.Create(ctx, userID, &a); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "address created",
		slog.String("user_id", userID),
		slog.String("address_id", a.ID),
	)
	return &a, nil
}

// UpdateAddress applies a partial update to one of the user's addresses.
func (s *UserService) UpdateAddress(ctx context.Context, userID, addressID string, patch domain.AddressPatch) (*domain.Address, error) {
	if patch.IsEmpty() {
		return nil, apperrors.InvalidInput("nothing to update")
	}
	current, err := s.addresses.GetByID(ctx, userID, addressID)
	if err != nil {
		return nil, fmt.Errorf("get address for update: %w", err)
	}

	updated := patch.Apply(*current)
	if err := s.addresses.Update(ctx, userID, &updated); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "address updated",
		slog.String("user_id", userID),
		slog.String("address_id", addressID),
	)
	return &updated, nil
}

// DeleteAddress removes one of the user's addresses.
func (s *UserService) DeleteAddress(ctx context.Context, userID, addressID string) error {
	if err := s.addresses.Delete(ctx, userID, addressID); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	s.log(ctx).InfoContext(ctx, "address deleted",
		slog.String("user_id", userID),
		slog.String("address_id", addressID),
	)
	return nil
}

func (s *UserService) withAddresses(ctx context.Context, u domain.User) (domain.User, error) {
	addresses, err := s.addresses.ListByUserID(ctx, u.ID)
	if err != nil {
		return domain.User{}, fmt.Errorf("list addresses: %w", err)
	}
	u.Addresses = addresses
	return u, nil
}
