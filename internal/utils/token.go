package utils

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	jwtIssuer       = "student-portfolio-api"
	jwtAudience     = "student-portfolio"
	minSecretBytes  = 32
	defaultTokenTTL = 72 * time.Hour
)

type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

var (
	jwtSecret     []byte
	jwtSecretErr  error
	jwtSecretOnce sync.Once
)

// EnsureJWTReady forces secret loading so misconfiguration fails at startup
// instead of on the first login.
func EnsureJWTReady() error {
	_, err := getJWTSecret()
	return err
}

func getJWTSecret() ([]byte, error) {
	jwtSecretOnce.Do(func() {
		raw := strings.TrimSpace(os.Getenv("JWT_SECRET"))
		switch {
		case raw == "":
			jwtSecretErr = errors.New("JWT_SECRET is required")
		case len(raw) < minSecretBytes:
			jwtSecretErr = fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretBytes)
		default:
			jwtSecret = []byte(raw)
		}
	})

	if jwtSecretErr != nil {
		return nil, jwtSecretErr
	}
	return jwtSecret, nil
}

func tokenTTL() time.Duration {
	raw := strings.TrimSpace(os.Getenv("PORTFOLIO_TOKEN_TTL_HOURS"))
	if raw == "" {
		return defaultTokenTTL
	}

	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return defaultTokenTTL
	}
	return time.Duration(hours) * time.Hour
}

// GenerateToken issues an HS256 session token for the user.
func GenerateToken(userID int) (string, error) {
	if userID <= 0 {
		return "", errors.New("invalid user ID")
	}

	secret, err := getJWTSecret()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(userID),
			Issuer:    jwtIssuer,
			Audience:  jwt.ClaimStrings{jwtAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL())),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ValidateToken parses and verifies a session token and returns its claims.
func ValidateToken(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, errors.New("token is empty")
	}

	secret, err := getJWTSecret()
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(*jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(jwtIssuer),
		jwt.WithAudience(jwtAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.UserID <= 0 {
		return nil, errors.New("invalid token user")
	}
	if claims.Subject != strconv.Itoa(claims.UserID) {
		return nil, errors.New("invalid token subject")
	}

	return claims, nil
}
