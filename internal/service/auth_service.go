package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "timetrack/backend/internal/errors"
	"timetrack/backend/internal/model"
	"timetrack/backend/internal/repository"
)

type AuthService struct {
	userRepo     *repository.UserRepository
	activityRepo *repository.ActivityRepository
	bookingRepo  *repository.BookingRepository
	jwtSecret    []byte
	tokenTTL     time.Duration
}

func NewAuthService(
	userRepo *repository.UserRepository,
	activityRepo *repository.ActivityRepository,
	bookingRepo *repository.BookingRepository,
	jwtSecret string,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		bookingRepo:  bookingRepo,
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     tokenTTL,
	}
}

type AuthResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Question string
	Answer   string
}

type ChangeUserInput struct {
	Password    string
	NewPassword string
	Email       string
	Question    string
	Answer      string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, *apperrors.APIError) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, apperrors.BadRequest("invalid_username", "username is required")
	}
	if !model.ValidEmail(strings.TrimSpace(input.Email)) {
		return nil, apperrors.BadRequest("invalid_email", "email address is not valid")
	}
	if len(input.Password) < 6 {
		return nil, apperrors.BadRequest("invalid_password", "password must be at least 6 characters")
	}
	if input.Question == "" || input.Answer == "" {
		return nil, apperrors.BadRequest("invalid_question", "security question and answer are required")
	}

	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil, apperrors.Conflict("username_exists", "username already registered")
	}
	if err != nil && err != repository.ErrNotFound {
		return nil, apperrors.Internal("failed to query user")
	}

	passwordHash, hashErr := hashSecret(input.Password)
	if hashErr != nil {
		return nil, hashErr
	}
	answerHash, hashErr := hashSecret(input.Answer)
	if hashErr != nil {
		return nil, hashErr
	}

	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to query user")
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: passwordHash,
		Question:     input.Question,
		AnswerHash:   answerHash,
		Admin:        count == 0, // first registered user administrates
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, &user); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, apperrors.Conflict("username_exists", "username already registered")
		}
		return nil, apperrors.Internal("failed to create user")
	}

	token, apiErr := s.issueToken(user)
	if apiErr != nil {
		return nil, apiErr
	}

	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, *apperrors.APIError) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.BadRequest("invalid_credentials", "username and password are required")
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err == repository.ErrNotFound {
		return nil, apperrors.Unauthorized("invalid username or password")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to query user")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.Unauthorized("invalid username or password")
	}

	token, apiErr := s.issueToken(*user)
	if apiErr != nil {
		return nil, apiErr
	}

	return &AuthResult{Token: token, User: *user}, nil
}

// ResetPassword verifies the stored security answer and replaces the
// password with a freshly generated one, which is returned to the
// caller exactly once.
func (s *AuthService) ResetPassword(ctx context.Context, username, answer string) (string, *apperrors.APIError) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err == repository.ErrNotFound {
		return "", apperrors.NotFound("user_not_found", "user not found")
	}
	if err != nil {
		return "", apperrors.Internal("failed to query user")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.AnswerHash), []byte(answer)) != nil {
		return "", apperrors.Unauthorized("security answer does not match")
	}

	newPassword := uuid.NewString()
	passwordHash, hashErr := hashSecret(newPassword)
	if hashErr != nil {
		return "", hashErr
	}

	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", apperrors.Internal("failed to update user")
	}

	return newPassword, nil
}

func (s *AuthService) ChangeUser(ctx context.Context, userID string, input ChangeUserInput) (*model.User, *apperrors.APIError) {
	user, apiErr := s.authenticatedUser(ctx, userID, input.Password)
	if apiErr != nil {
		return nil, apiErr
	}

	if input.NewPassword != "" {
		if len(input.NewPassword) < 6 {
			return nil, apperrors.BadRequest("invalid_password", "password must be at least 6 characters")
		}
		hash, hashErr := hashSecret(input.NewPassword)
		if hashErr != nil {
			return nil, hashErr
		}
		user.PasswordHash = hash
	}
	if input.Email != "" {
		if !model.ValidEmail(input.Email) {
			return nil, apperrors.BadRequest("invalid_email", "email address is not valid")
		}
		user.Email = input.Email
	}
	if input.Question != "" {
		user.Question = input.Question
	}
	if input.Answer != "" {
		hash, hashErr := hashSecret(input.Answer)
		if hashErr != nil {
			return nil, hashErr
		}
		user.AnswerHash = hash
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, apperrors.Internal("failed to update user")
	}
	return user, nil
}

// DeleteUser removes the account together with all activities and
// bookings it owns.
func (s *AuthService) DeleteUser(ctx context.Context, userID, password string) *apperrors.APIError {
	user, apiErr := s.authenticatedUser(ctx, userID, password)
	if apiErr != nil {
		return apiErr
	}

	if err := s.activityRepo.DeleteByUser(ctx, user.ID); err != nil {
		return apperrors.Internal("failed to delete user data")
	}
	if err := s.bookingRepo.DeleteByUser(ctx, user.ID); err != nil {
		return apperrors.Internal("failed to delete user data")
	}
	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return apperrors.Internal("failed to delete user")
	}
	return nil
}

func (s *AuthService) ParseToken(tokenString string) (string, *apperrors.APIError) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.Unauthorized("invalid token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", apperrors.Unauthorized("invalid token")
	}

	if claims.Subject == "" {
		return "", apperrors.Unauthorized("invalid token subject")
	}

	return claims.Subject, nil
}

func (s *AuthService) authenticatedUser(ctx context.Context, userID, password string) (*model.User, *apperrors.APIError) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("user_not_found", "user not found")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to query user")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.Unauthorized("password does not match")
	}
	return user, nil
}

func (s *AuthService) issueToken(user model.User) (string, *apperrors.APIError) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.Internal("failed to sign token")
	}
	return signed, nil
}

func hashSecret(secret string) (string, *apperrors.APIError) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Internal("failed to secure credentials")
	}
	return string(hash), nil
}
