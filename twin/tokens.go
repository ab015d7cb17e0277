package twin

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomerClaims are the claims of a customer access token.
type CustomerClaims struct {
	jwt.RegisteredClaims
	LicenseID int64  `json:"license_id"`
	ClientID  string `json:"client_id"`
	GrantType string `json:"grant_type"`
}

// Tokens signs and verifies customer access tokens with HS256.
type Tokens struct {
	key    []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewTokens creates a token service from cfg.
func NewTokens(cfg Config) *Tokens {
	return &Tokens{
		key:    []byte(cfg.SigningKey),
		ttl:    cfg.TokenTTL,
		issuer: cfg.Issuer,
		now:    time.Now,
	}
}

// Issue signs a token for customerID. It returns the token and its lifetime.
func (t *Tokens) Issue(customerID string, licenseID int64, clientID, grantType string) (string, time.Duration, error) {
	now := t.now()
	claims := &CustomerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   customerID,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			ID:        newID(),
		},
		LicenseID: licenseID,
		ClientID:  clientID,
		GrantType: grantType,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}
	return signed, t.ttl, nil
}

// Parse verifies a token and returns its claims.
func (t *Tokens) Parse(token string) (*CustomerClaims, error) {
	claims := &CustomerClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("parse token: invalid claims")
	}
	return claims, nil
}
