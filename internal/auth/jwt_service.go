package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	AccessTokenExpiry  = 15 * time.Minute
	RefreshTokenExpiry = 7 * 24 * time.Hour

	issuer = "recipehub"
)

// TokenKind separates access tokens from refresh tokens so neither can
// stand in for the other.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

var ErrWrongTokenKind = errors.New("wrong token kind")

// Claims identifies the user a token was issued to.
type Claims struct {
	UserID   int       `json:"user_id"`
	Username string    `json:"username"`
	Kind     TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies HS256 tokens.
type JWTService struct {
	secret []byte
	now    func() time.Time
}

func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret), now: time.Now}
}

func (s *JWTService) sign(kind TokenKind, userID int, username, tokenID string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// GenerateAccessToken issues a short lived token accepted by secured routes.
func (s *JWTService) GenerateAccessToken(userID int, username string) (string, error) {
	return s.sign(KindAccess, userID, username, "", AccessTokenExpiry)
}

// GenerateRefreshToken issues a long lived token whose id (jti) is what the
// token store keys on.
func (s *JWTService) GenerateRefreshToken(userID int, username string) (tokenID, token string, err error) {
	tokenID = uuid.NewString()
	token, err = s.sign(KindRefresh, userID, username, tokenID, RefreshTokenExpiry)
	return tokenID, token, err
}

// ValidateAccessToken is used by the JWT middleware.
func (s *JWTService) ValidateAccessToken(token string) (*Claims, error) {
	return s.parse(token, KindAccess)
}

// ValidateRefreshToken also requires the token to carry an id.
func (s *JWTService) ValidateRefreshToken(token string) (*Claims, error) {
	claims, err := s.parse(token, KindRefresh)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, errors.New("refresh token has no id")
	}
	return claims, nil
}

func (s *JWTService) parse(tokenString string, kind TokenKind) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if !claims.VerifyIssuer(issuer, true) {
		return nil, fmt.Errorf("unexpected issuer %q", claims.Issuer)
	}
	if claims.Kind != kind {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrWrongTokenKind, claims.Kind, kind)
	}
	return claims, nil
}
