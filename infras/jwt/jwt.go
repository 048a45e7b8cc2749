package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"taskpad/config"
	"taskpad/shared/timezone"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrMalformedToken = errors.New("malformed token")
)

// TokenKind selects which signing secret and lifetime a token uses. The
// payload itself carries no kind marker: an access token and a refresh token
// are structurally identical and are told apart only by which secret
// verifies them.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// Claims is the signed token payload: the user id and email plus the
// registered claim set.
type Claims struct {
	UserID  int64  `json:"id"`
	Email   string `json:"email"`
	TokenID string `json:"token_id"`
	jwt.RegisteredClaims
}

// TokenPair represents access and refresh token pair
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// JWT handles token issuance and verification
type JWT interface {
	Issue(userID int64, email string, kind TokenKind) (string, error)
	Verify(tokenString string, kind TokenKind) (*Claims, error)
	GenerateTokenPair(userID int64, email string) (*TokenPair, error)
}

// Service handles JWT operations
type Service struct {
	config *config.Config
}

// New creates a new JWT service. The two secrets must differ so that a token
// issued under one kind can never verify under the other.
func New(cfg *config.Config) JWT {
	if cfg.JWT.AccessSecret == cfg.JWT.RefreshSecret {
		log.Fatal().Msg("JWT access and refresh secrets must differ")
	}

	return &Service{
		config: cfg,
	}
}

func (s *Service) secretAndTTL(kind TokenKind) (string, time.Duration, error) {
	switch kind {
	case AccessToken:
		return s.config.JWT.AccessSecret, time.Duration(s.config.JWT.AccessExpireMin) * time.Minute, nil
	case RefreshToken:
		return s.config.JWT.RefreshSecret, time.Duration(s.config.JWT.RefreshExpireMin) * time.Minute, nil
	default:
		return "", 0, fmt.Errorf("unknown token kind: %s", kind)
	}
}

// Issue signs a token of the given kind carrying the {id, email} payload.
func (s *Service) Issue(userID int64, email string, kind TokenKind) (string, error) {
	secret, ttl, err := s.secretAndTTL(kind)
	if err != nil {
		return "", err
	}

	now := timezone.Now()
	tokenID := uuid.New().String()

	claims := Claims{
		UserID:  userID,
		Email:   email,
		TokenID: tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.App.Name,
			Subject:   fmt.Sprintf("%d", userID),
			ID:        tokenID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify parses a token under the secret for the given kind. It is
// synchronous and side-effect-free.
func (s *Service) Verify(tokenString string, kind TokenKind) (*Claims, error) {
	secret, _, err := s.secretAndTTL(kind)
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrMalformedToken
		default:
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GenerateTokenPair issues an access and a refresh token carrying the
// identical payload.
func (s *Service) GenerateTokenPair(userID int64, email string) (*TokenPair, error) {
	accessToken, err := s.Issue(userID, email, AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.Issue(userID, email, RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.config.JWT.AccessExpireMin * 60),
	}, nil
}

// ExtractTokenFromHeader extracts a bearer token from a header value
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is required")
	}

	const prefix = "Bearer "
	if len(authHeader) < len(prefix) || authHeader[:len(prefix)] != prefix {
		return "", errors.New("authorization header must start with 'Bearer '")
	}

	return authHeader[len(prefix):], nil
}
