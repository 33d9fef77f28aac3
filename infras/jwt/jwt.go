package jwt

import (
	"errors"
	"strings"
	"time"

	"hotelledger/config"
	"hotelledger/shared/session"
	"hotelledger/shared/timezone"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	pkgErrors "github.com/pkg/errors"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
	ErrMissingToken = errors.New("authorization header is required")
	ErrBearerScheme = errors.New("authorization header must start with 'Bearer '")
)

const (
	bearerPrefix = "Bearer "
	clockSkew    = 30 * time.Second
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims carries the booking session issued by the login service.
type Claims struct {
	UserID  string    `json:"user_id"`
	LoginID string    `json:"login_id"`
	Role    string    `json:"role,omitempty"`
	HotelID string    `json:"hotel_id,omitempty"`
	TokenID string    `json:"token_id"`
	Type    TokenType `json:"type"`
	jwt.RegisteredClaims
}

// Validate runs after the registered claims are checked.
func (c *Claims) Validate() error {
	if c.UserID == "" {
		return ErrInvalidClaim
	}

	if c.Type != AccessToken && c.Type != RefreshToken {
		return ErrInvalidClaim
	}

	return nil
}

func (c *Claims) Session() session.Session {
	return session.Session{
		UserID:  c.UserID,
		LoginID: c.LoginID,
		Role:    c.Role,
		HotelID: c.HotelID,
	}
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// JWT validates tokens minted by the login service. GenerateTokenPair mirrors the issuing
// side; this service never stores tokens.
type JWT interface {
	GenerateTokenPair(sess session.Session) (*TokenPair, error)
	ValidateToken(tokenString string, tokenType TokenType) (*Claims, error)
}

type keyring struct {
	secret []byte
	ttl    time.Duration
}

type Service struct {
	issuer string
	keys   map[TokenType]keyring
	parser *jwt.Parser
}

func New(cfg *config.Config) JWT {
	return &Service{
		issuer: cfg.App.Name,
		keys: map[TokenType]keyring{
			AccessToken:  {secret: []byte(cfg.JWT.AccessSecret), ttl: time.Duration(cfg.JWT.AccessExpireMin) * time.Minute},
			RefreshToken: {secret: []byte(cfg.JWT.RefreshSecret), ttl: time.Duration(cfg.JWT.RefreshExpireMin) * time.Minute},
		},
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithLeeway(clockSkew),
			jwt.WithExpirationRequired(),
		),
	}
}

func (s *Service) GenerateTokenPair(sess session.Session) (*TokenPair, error) {
	now := timezone.Now()

	access, err := s.sign(sess, AccessToken, now)
	if err != nil {
		return nil, err
	}

	refresh, err := s.sign(sess, RefreshToken, now)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    strings.TrimSpace(bearerPrefix),
		ExpiresIn:    int64(s.keys[AccessToken].ttl / time.Second),
	}, nil
}

func (s *Service) sign(sess session.Session, tokenType TokenType, issuedAt time.Time) (string, error) {
	key := s.keys[tokenType]
	tokenID := uuid.NewString()

	claims := Claims{
		UserID:  sess.UserID,
		LoginID: sess.LoginID,
		Role:    sess.Role,
		HotelID: sess.HotelID,
		TokenID: tokenID,
		Type:    tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Issuer:    s.issuer,
			Subject:   sess.UserID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(key.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key.secret)
	if err != nil {
		return "", pkgErrors.Wrapf(err, "failed to sign %s token", tokenType)
	}

	return signed, nil
}

// ValidateToken parses tokenString with the secret of tokenType and maps every parser
// failure onto the package errors.
func (s *Service) ValidateToken(tokenString string, tokenType TokenType) (*Claims, error) {
	key, ok := s.keys[tokenType]
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}

	_, err := s.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return key.secret, nil
	})

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, ErrInvalidClaim):
		return nil, ErrInvalidClaim
	default:
		return nil, ErrInvalidToken
	}

	if claims.Type != tokenType {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// ExtractTokenFromHeader returns the credentials of a bearer Authorization header.
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingToken
	}

	token, ok := strings.CutPrefix(authHeader, bearerPrefix)
	if !ok || token == "" {
		return "", ErrBearerScheme
	}

	return token, nil
}
