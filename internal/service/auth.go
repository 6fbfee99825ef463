package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/notemind/notemind/internal/dto"
	apperrors "github.com/notemind/notemind/internal/errors"
	"github.com/notemind/notemind/internal/model"
	"github.com/notemind/notemind/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService owns the account lifecycle: registration, login, password
// change, and the reset-token flow. Password hashes and reset-token digests
// never leave this package in plaintext-recoverable form.
type AuthService struct {
	users      repository.UserRepository
	tokens     *TokenService
	logger     *zap.Logger
	bcryptCost int
	resetTTL   time.Duration
}

func NewAuthService(users repository.UserRepository, tokens *TokenService, logger *zap.Logger, bcryptCost int, resetTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		logger:     logger,
		bcryptCost: bcryptCost,
		resetTTL:   resetTTL,
	}
}

// hashPassword hashes a plaintext password with bcrypt
func (s *AuthService) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// checkPassword verifies a plaintext password against its hash. A mismatch is
// a normal negative result, not an error.
func (s *AuthService) checkPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and mints its first token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*dto.AuthResponse, error) {
	email = normalizeEmail(email)

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		s.logger.Warn("Registration rejected, email exists", zap.String("email", email))
		return nil, apperrors.ErrDuplicateEmail
	}
	if err != gorm.ErrRecordNotFound {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	hashed, err := s.hashPassword(password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.String("email", email), zap.Error(err))
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user := &model.User{
		Name:       strings.TrimSpace(name),
		Email:      email,
		Password:   hashed,
		Avatar:     model.DefaultAvatar,
		LastActive: time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.String("email", email), zap.Error(err))
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.logger.Info("User registered",
		zap.String("email", email),
		zap.Uint("user_id", user.ID),
	)

	return s.tokenResponse(user)
}

// Login authenticates by email and password. Unknown email and wrong password
// produce the identical ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	email = normalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			s.logger.Info("Login failed, unknown email", zap.String("email", email))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !s.checkPassword(user.Password, password) {
		s.logger.Warn("Login failed, wrong password",
			zap.String("email", email),
			zap.Uint("user_id", user.ID),
		)
		return nil, apperrors.ErrInvalidCredentials
	}

	// Best effort; login still succeeds if the timestamp write fails.
	if err := s.users.UpdateLastActive(ctx, user.ID); err != nil {
		s.logger.Warn("Failed to update last active",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("User logged in",
		zap.String("email", email),
		zap.Uint("user_id", user.ID),
	)

	return s.tokenResponse(user)
}

// ChangePassword replaces the password after verifying the current one and
// mints a fresh token.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) (*dto.AuthResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if !s.checkPassword(user.Password, currentPassword) {
		s.logger.Warn("Password change rejected, current password mismatch",
			zap.Uint("user_id", userID),
		)
		return nil, apperrors.ErrInvalidCredentials
	}

	hashed, err := s.hashPassword(newPassword)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.users.UpdatePassword(ctx, userID, hashed); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.logger.Info("User password changed", zap.Uint("user_id", userID))

	user.Password = hashed
	return s.tokenResponse(user)
}

// RequestPasswordReset issues a one-time reset token for the account. Only the
// sha256 digest is stored; the plaintext goes back to the caller for delivery.
// Returning it in the HTTP response is a development placeholder — production
// delivery belongs in a mailer.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", apperrors.ErrUserNotFound
		}
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	plaintext, digest, err := newResetToken()
	if err != nil {
		s.logger.Error("Failed to generate reset token", zap.Error(err))
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	expiresAt := time.Now().Add(s.resetTTL)
	if err := s.users.SetResetToken(ctx, user.ID, digest, expiresAt); err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.logger.Info("Reset token issued",
		zap.Uint("user_id", user.ID),
		zap.Time("expires_at", expiresAt),
	)

	return plaintext, nil
}

// ResetPassword consumes a reset token. Wrong token, already-consumed token
// and expired token all produce the identical ErrInvalidOrExpiredToken.
func (s *AuthService) ResetPassword(ctx context.Context, plaintextToken, newPassword string) (*dto.AuthResponse, error) {
	digest := hashResetToken(plaintextToken)

	hashed, err := s.hashPassword(newPassword)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	user, err := s.users.ConsumeResetToken(ctx, digest, hashed, time.Now())
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			s.logger.Info("Reset rejected, invalid or expired token")
			return nil, apperrors.ErrInvalidOrExpiredToken
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	s.logger.Info("User password reset", zap.Uint("user_id", user.ID))

	return s.tokenResponse(user)
}

// GetProfile loads the current user's account record.
func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response := toUserResponse(user)
	return &response, nil
}

// UpdateDetails updates name, email and avatar. An email change is checked
// against every other account first.
func (s *AuthService) UpdateDetails(ctx context.Context, userID uint, req *dto.UpdateDetailsRequest) (*dto.UserResponse, error) {
	fields := make(map[string]any)

	if req.Name != "" {
		fields["name"] = strings.TrimSpace(req.Name)
	}
	if req.Avatar != "" {
		fields["avatar"] = req.Avatar
	}
	if req.Email != "" {
		email := normalizeEmail(req.Email)
		existing, err := s.users.GetByEmail(ctx, email)
		if err == nil && existing.ID != userID {
			return nil, apperrors.ErrDuplicateEmail
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		fields["email"] = email
	}

	if len(fields) > 0 {
		if err := s.users.UpdateFields(ctx, userID, fields); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
	}

	return s.GetProfile(ctx, userID)
}

func (s *AuthService) tokenResponse(user *model.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error("Failed to issue token",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return &dto.AuthResponse{
		Success: true,
		Token:   token,
		User:    toUserResponse(user),
	}, nil
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Avatar:     user.Avatar,
		LastActive: user.LastActive,
		CreatedAt:  user.CreatedAt,
	}
}

// newResetToken returns 32 bytes of cryptographically secure randomness as a
// hex string together with its sha256 digest. Only the digest is persisted.
func newResetToken() (plaintext, digest string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	plaintext = hex.EncodeToString(buf)
	return plaintext, hashResetToken(plaintext), nil
}

// hashResetToken is the deterministic one-way digest used for reset-token
// lookup. Fixed sha256 rather than bcrypt: the input is 32 random bytes, not
// a guessable password, and lookup needs a stable key.
func hashResetToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
