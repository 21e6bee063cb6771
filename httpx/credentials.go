package httpx

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/oauth"

	"github.com/mbolis/reqlicit/config"
	"github.com/mbolis/reqlicit/log"
	"github.com/mbolis/reqlicit/store"
)

// RolesClaim is the access token claim holding the user's role.
const RolesClaim = "roles"

// refresh tokens outlive access tokens by far; a year matches the cookie
const refreshTTL = 8760 * time.Hour

var errNoRefresh = errors.New("could not refresh")

type credentialsVerifier struct {
	db    *sql.DB
	users *store.Users
}

func CredentialsVerifier(db *sql.DB, users *store.Users) oauth.CredentialsVerifier {
	return &credentialsVerifier{db, users}
}

// NewBearerServer issues password-grant tokens carrying the user's role.
func NewBearerServer(db *sql.DB, users *store.Users, cfg config.Config) *oauth.BearerServer {
	return oauth.NewBearerServer(cfg.TokenSecret, cfg.TokenTTL, CredentialsVerifier(db, users), nil)
}

func (cs *credentialsVerifier) ValidateUser(username string, password string, scope string, r *http.Request) error {
	err := cs.users.Authenticate(r.Context(), username, password)
	if err != nil {
		log.Debugf("login.validate_user: %s: %s", username, err)
	}
	return err
}
func (cs *credentialsVerifier) StoreTokenID(tokenType oauth.TokenType, credential string, tokenID string, refreshTokenID string) error {
	_, err := cs.db.Exec(
		"INSERT INTO token (username, token_id, refresh_token_id, expiration) VALUES (?, ?, ?, ?)",
		credential,
		tokenID,
		refreshTokenID,
		time.Now().Add(refreshTTL),
	)
	return err
}

// ValidateTokenID consumes a refresh token: each one can be used once.
func (cs *credentialsVerifier) ValidateTokenID(tokenType oauth.TokenType, credential string, tokenID string, refreshTokenID string) error {
	var expiration time.Time
	err := cs.db.
		QueryRow(`
			DELETE FROM token
			WHERE username = ?
				AND token_id = ?
				AND refresh_token_id = ?
			RETURNING expiration`,
			credential,
			tokenID,
			refreshTokenID,
		).
		Scan(&expiration)
	if err != nil {
		log.Debugf("refresh.validate_token: %s: %s", credential, err)
		return errNoRefresh
	}

	if expiration.Before(time.Now()) {
		return errNoRefresh
	}
	return nil
}

// AddClaims looks the role up on every issue, so a role change takes
// effect at the next refresh.
func (cs *credentialsVerifier) AddClaims(tokenType oauth.TokenType, credential string, tokenID string, scope string, r *http.Request) (map[string]string, error) {
	role, err := cs.users.Role(r.Context(), credential)
	if err != nil {
		return nil, err
	}
	return map[string]string{RolesClaim: string(role)}, nil
}
func (*credentialsVerifier) AddProperties(tokenType oauth.TokenType, credential string, tokenID string, scope string, r *http.Request) (map[string]string, error) {
	return map[string]string{}, nil
}
func (*credentialsVerifier) ValidateClient(clientID string, clientSecret string, scope string, r *http.Request) error {
	return errors.New("not supported")
}
