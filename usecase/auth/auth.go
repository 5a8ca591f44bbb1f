package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teamboard/backend/domain"
	"github.com/teamboard/backend/repository"
)

// Claims is the JWT payload: the bearer's user id plus the id of the Redis
// session the token wraps. Revoking the session invalidates the token before
// its own expiry.
type Claims struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	secret   []byte
	ttl      time.Duration
	logger   *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, secret string, ttl time.Duration, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		ttl:      ttl,
		logger:   logger,
	}
}

// Login upserts the user profile, opens a session and returns it wrapped in
// a signed token.
func (uc *UseCase) Login(ctx context.Context, user *domain.User) (string, *domain.Session, error) {
	if user == nil || strings.TrimSpace(user.ID) == "" {
		return "", nil, domain.ErrInvalidPayload
	}

	if err := uc.users.Upsert(ctx, user); err != nil {
		return "", nil, err
	}

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.ttl),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return "", nil, err
	}

	token, err := uc.sign(session)
	if err != nil {
		return "", nil, err
	}

	uc.logger.Info("session opened", zap.String("user_id", user.ID), zap.String("session_id", session.ID))
	return token, session, nil
}

// Verify validates the token signature, resolves the wrapped session and
// returns the authenticated user id. A missing or expired session maps to
// ErrUnauthorized regardless of the token's own expiry.
func (uc *UseCase) Verify(ctx context.Context, token string) (string, error) {
	claims, err := uc.parse(token)
	if err != nil {
		return "", err
	}

	session, err := uc.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if err == domain.ErrSessionNotFound {
			return "", domain.ErrUnauthorized
		}
		return "", err
	}
	if session.UserID != claims.UserID {
		return "", domain.ErrUnauthorized
	}
	return session.UserID, nil
}

// Refresh extends the session behind the token and reissues it.
func (uc *UseCase) Refresh(ctx context.Context, token string) (string, *domain.Session, error) {
	claims, err := uc.parse(token)
	if err != nil {
		return "", nil, err
	}

	if err := uc.sessions.Extend(ctx, claims.SessionID, int(uc.ttl.Seconds())); err != nil {
		if err == domain.ErrSessionNotFound {
			return "", nil, domain.ErrUnauthorized
		}
		return "", nil, err
	}

	session, err := uc.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return "", nil, err
	}

	reissued, err := uc.sign(session)
	if err != nil {
		return "", nil, err
	}
	return reissued, session, nil
}

// Logout revokes the session behind the token. Revoking an already-revoked
// session is not an error.
func (uc *UseCase) Logout(ctx context.Context, token string) error {
	claims, err := uc.parse(token)
	if err != nil {
		return err
	}
	return uc.sessions.Delete(ctx, claims.SessionID)
}

func (uc *UseCase) sign(session *domain.Session) (string, error) {
	claims := Claims{
		UserID:    session.UserID,
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
}

func (uc *UseCase) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrUnauthorized
		}
		return uc.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}
	if claims.SessionID == "" || claims.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
