package authUtils

import (
	"fmt"
	"os"
	"time"

	"civicpulse-be/models"

	"github.com/dgrijalva/jwt-go"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

// Claims is the verified payload of an official's token.
type Claims struct {
	OfficialID string
	Email      string
	Role       string
}

func secret() ([]byte, error) {
	secretStr := os.Getenv("JWT_SECRET")
	if secretStr == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	return []byte(secretStr), nil
}

// GenerateToken signs a JWT carrying the official's id, email and role
func GenerateToken(official *models.Official) (string, error) {
	jwtSecret, err := secret()
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"official_id": official.ID.Hex(),
		"email":       official.Email,
		"role":        string(official.Role),
		"exp":         time.Now().Add(TokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies a token string and returns its claims
func ParseToken(tokenString string) (*Claims, error) {
	jwtSecret, err := secret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	officialID, _ := mapClaims["official_id"].(string)
	email, _ := mapClaims["email"].(string)
	role, _ := mapClaims["role"].(string)
	if officialID == "" {
		return nil, fmt.Errorf("invalid token claims")
	}

	return &Claims{OfficialID: officialID, Email: email, Role: role}, nil
}
