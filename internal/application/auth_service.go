package application

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-management-api/internal/domain/entity"
	repo "github.com/oksasatya/user-management-api/internal/domain/repository"
	"github.com/oksasatya/user-management-api/pkg/helpers"
	"github.com/oksasatya/user-management-api/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

const sessionTTL = 24 * time.Hour

func sessionKey(userID string) string {
	return "user:session:" + userID
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// AuthService owns credential checks, token issuance and the Redis
// session record the auth middleware validates against.
type AuthService struct {
	Users  *UserService
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
	Pub    *helpers.RabbitPublisher
}

func NewAuthService(users *UserService, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Redis: rdb, Logger: logger, Pub: pub}
}

// Register creates the account through the regular user pipeline and
// enqueues a welcome email when a publisher is configured.
func (s *AuthService) Register(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	u, err := s.Users.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	if s.Pub != nil {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplateWelcome,
			Data:     map[string]any{"Name": u.Name},
		}
		if pErr := s.Pub.PublishJSON(ctx, job); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("email", u.Email).Warn("failed to enqueue welcome email")
		}
	}
	return u, nil
}

// Authenticate validates email/password and returns the user without
// issuing tokens.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.Repo.FindByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates an access/refresh pair and records a session in Redis.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	uid := strconv.FormatInt(u.ID, 10)
	access, aexp, err := s.JWT.GenerateAccessToken(uid, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(uid, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(uid)
		fields := map[string]any{
			"user_id":    uid,
			"email":      u.Email,
			"name":       u.Name,
			"sid":        sid,
			"logged_in":  true,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		}
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh rotates the session id and both tokens from a valid refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	id, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Users.Repo.FindByID(ctx, id)
	if err != nil || u == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	// The token's sid must match the live session.
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(claims.UserID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", ErrInvalidCredentials
		}
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, claims.UserID, nil
}

// Logout drops the Redis session; the middleware rejects tokens whose
// session is gone, so both cookies die with it.
func (s *AuthService) Logout(ctx context.Context, userID string) {
	if s.Redis == nil || userID == "" {
		return
	}
	if err := s.Redis.Del(ctx, sessionKey(userID)).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("failed to delete session")
	}
}

// GetProfile resolves the authenticated caller's identity.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil, ErrUserNotFound
	}
	u, err := s.Users.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
