package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"order-api/models"
	"order-api/utils"
)

type AuthService struct {
	users  UserStore
	tokens TokenIssuer
	events EventPublisher
	log    logrus.FieldLogger
}

// NewAuthService wires the authentication flows. events may be nil.
func NewAuthService(users UserStore, tokens TokenIssuer, events EventPublisher, log logrus.FieldLogger) *AuthService {
	return &AuthService{users: users, tokens: tokens, events: events, log: log}
}

// Register creates a user and returns a fresh token for it.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	email := strings.TrimSpace(req.Email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", s.internal(err, "find user by email")
	}
	if existing != nil {
		return "", models.ErrConflict
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return "", s.internal(err, "hash password")
	}

	user, err := s.users.Insert(ctx, req.FirstName, req.LastName, email, hash)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return "", models.ErrConflict
		}
		return "", s.internal(err, "insert user")
	}

	s.log.WithField("user_id", user.UserID).Info("User registered")
	s.publish(models.OrderEvent{
		Type:     models.EventUserRegistered,
		UserID:   user.UserID,
		Occurred: time.Now().UTC(),
	}, 1)

	return s.issue(user.UserID)
}

// Login checks the credentials and returns a token. Unknown email and wrong
// password are not distinguished.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return "", s.internal(err, "find user by email")
	}
	if user == nil || !utils.CheckPassword(user.Password, req.Password) {
		return "", models.ErrForbidden
	}
	return s.issue(user.UserID)
}

// Authenticate resolves the raw token header to a user that still exists.
// header is nil when the request did not carry one.
func (s *AuthService) Authenticate(ctx context.Context, header *string) (uuid.UUID, error) {
	if header == nil || !isHeaderText(*header) {
		return uuid.Nil, models.ErrUnauthorized
	}

	userID, err := s.tokens.ParseToken(strings.TrimSpace(*header))
	if err != nil {
		return uuid.Nil, models.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return uuid.Nil, s.internal(err, "find user by id")
	}
	if user == nil {
		return uuid.Nil, models.ErrNotFound
	}
	return user.UserID, nil
}

func (s *AuthService) issue(userID uuid.UUID) (string, error) {
	token, err := s.tokens.GenerateToken(userID)
	if err != nil {
		return "", s.internal(err, "generate token")
	}
	return token, nil
}

func (s *AuthService) publish(event models.OrderEvent, priority uint8) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishOrderEvent(event, priority); err != nil {
		s.log.WithError(err).WithField("type", event.Type).Warn("Failed to publish event")
	}
}

func (s *AuthService) internal(err error, op string) error {
	s.log.WithError(err).WithField("op", op).Error("Auth operation failed")
	return models.ErrInternal
}

// isHeaderText accepts visible ASCII plus space and tab, the characters a
// header value may carry as plain text.
func isHeaderText(v string) bool {
	if strings.TrimSpace(v) == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c != '\t' && (c < 0x20 || c > 0x7e) {
			return false
		}
	}
	return true
}
