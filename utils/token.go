package utils

import (
	"errors"
	"fmt"
	"time"

	"crimewatch-be/models"

	"github.com/dgrijalva/jwt-go"
)

// Verification failures. Callers collapse all three to 401 at the boundary
// but the distinction is kept for logging.
var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenSignature = errors.New("token signature is invalid")
)

// Claims is the decoded identity carried by a verified token.
type Claims struct {
	UserID    string
	Email     string
	Name      string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies bearer tokens. Expiry is the only
// invalidation mechanism; rotating the secret invalidates all outstanding
// tokens.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
}

func NewTokenService(secret string, lifetime time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), lifetime: lifetime}
}

// Issue produces a signed token for the given user.
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID.Hex(),
		"email":   user.Email,
		"name":    user.FullName(),
		"role":    user.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(s.lifetime).Unix(),
	})
	return token.SignedString(s.secret)
}

// Verify decodes a token and validates its signature and expiry.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok {
			switch {
			case ve.Errors&jwt.ValidationErrorMalformed != 0:
				return nil, ErrTokenMalformed
			case ve.Errors&jwt.ValidationErrorExpired != 0:
				return nil, ErrTokenExpired
			case ve.Errors&jwt.ValidationErrorSignatureInvalid != 0:
				return nil, ErrTokenSignature
			}
		}
		return nil, ErrTokenMalformed
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	claims := &Claims{}
	if v, ok := mapClaims["user_id"].(string); ok && v != "" {
		claims.UserID = v
	} else {
		return nil, ErrTokenMalformed
	}
	if v, ok := mapClaims["role"].(string); ok && v != "" {
		claims.Role = v
	} else {
		return nil, ErrTokenMalformed
	}
	if v, ok := mapClaims["email"].(string); ok {
		claims.Email = v
	}
	if v, ok := mapClaims["name"].(string); ok {
		claims.Name = v
	}
	if v, ok := mapClaims["iat"].(float64); ok {
		claims.IssuedAt = time.Unix(int64(v), 0)
	}
	if v, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(v), 0)
	}

	return claims, nil
}
