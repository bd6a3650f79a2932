// Package auth issues the HMAC-signed JWTs that protect the mutation routes.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/customer-directory-api/internal/models"
)

// TokenTTL is how long an issued access token stays valid.
const TokenTTL = 24 * time.Hour

// IssueToken generates a signed access token for the given staff account.
// Claims carry the account id and role; the middleware rejects tokens
// missing either.
func IssueToken(account *models.Account, jwtSecret []byte) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid":  account.ID,
		"role": account.Role,
		"exp":  now.Add(TokenTTL).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}
