package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"sanctuary/internal/config"
	"sanctuary/internal/domain"
	"sanctuary/internal/dto"
	"sanctuary/internal/logger"
	"sanctuary/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	sessionIssuer     = "sanctuary"
	defaultSessionTTL = 7 * 24 * time.Hour
)

// ErrInvalidSessionToken is returned for tokens that fail verification.
var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionService issues and verifies signed session tokens that carry the
// currently selected video.
type SessionService interface {
	Issue(videoID string) (string, error)
	Parse(tokenString string) (*dto.SessionClaims, error)
	SecretConfigured() bool
}

type sessionServiceImpl struct {
	secret     []byte
	ttl        time.Duration
	configured bool
}

// NewSessionService uses cfg.Secret, or a random per-process secret when it
// is empty. Tokens signed with a random secret do not survive a restart.
func NewSessionService(cfg config.SessionConfig) SessionService {
	s := &sessionServiceImpl{secret: []byte(cfg.Secret), ttl: cfg.TTL, configured: cfg.Secret != ""}
	if s.ttl <= 0 {
		s.ttl = defaultSessionTTL
	}
	if !s.configured {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			panic(fmt.Sprintf("failed to generate session secret: %v", err))
		}
		s.secret = []byte(hex.EncodeToString(buf))
		logger.Get().Warn("session.secret is not set; using a random secret, sessions reset on restart")
	}
	return s
}

func (s *sessionServiceImpl) Issue(videoID string) (string, error) {
	if !util.IsVideoID(videoID) {
		return "", domain.NewInvalidIdentifierError()
	}
	now := time.Now()
	claims := dto.SessionClaims{
		VideoID: videoID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        util.NewULID(),
			Issuer:    sessionIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", domain.NewInternalError("failed to sign session token", err)
	}
	return signed, nil
}

func (s *sessionServiceImpl) Parse(tokenString string) (*dto.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Debug("Session token expired", zap.Error(err))
		} else {
			logger.Get().Debug("Session token rejected", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSessionToken, err)
	}

	claims, ok := token.Claims.(*dto.SessionClaims)
	if !ok || !token.Valid || !util.IsVideoID(claims.VideoID) || !util.IsULID(claims.ID) {
		return nil, ErrInvalidSessionToken
	}
	return claims, nil
}

func (s *sessionServiceImpl) SecretConfigured() bool { return s.configured }
