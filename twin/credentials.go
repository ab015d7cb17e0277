package twin

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/kbukum/livechat/errors"
)

// agentCredentials checks Basic agent credentials (account id and personal
// access token) against bcrypt hashes.
type agentCredentials struct {
	hashes map[string][]byte
}

func newAgentCredentials(agents map[string]string) *agentCredentials {
	hashes := make(map[string][]byte, len(agents))
	for account, hash := range agents {
		hashes[account] = []byte(hash)
	}
	return &agentCredentials{hashes: hashes}
}

// open reports whether any credentials are accepted.
func (a *agentCredentials) open() bool { return len(a.hashes) == 0 }

func (a *agentCredentials) verify(account, token string) bool {
	hash, ok := a.hashes[account]
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(token)) == nil
}

// check accepts any non-empty Bearer or Basic credentials while a is open;
// otherwise it requires Basic credentials that verify.
func (a *agentCredentials) check(r *http.Request) *apperrors.AppError {
	if a.open() {
		scheme, value, ok := strings.Cut(r.Header.Get("Authorization"), " ")
		if !ok || strings.TrimSpace(value) == "" || (scheme != "Bearer" && scheme != "Basic") {
			return apperrors.Unauthorized("Agent credentials required.")
		}
		return nil
	}
	account, token, ok := r.BasicAuth()
	if !ok {
		return apperrors.Unauthorized("Agent basic credentials required.")
	}
	if !a.verify(account, token) {
		return apperrors.InvalidToken()
	}
	return nil
}

// HashToken returns the bcrypt hash to put under twin.agents for a personal
// access token.
func HashToken(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("token must not be empty")
	}
	if len(token) > 72 {
		return "", fmt.Errorf("token exceeds the bcrypt limit of 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash token: %w", err)
	}
	return string(hash), nil
}
