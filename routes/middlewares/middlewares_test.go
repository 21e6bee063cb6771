package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/oauth"
	"github.com/stretchr/testify/assert"

	"github.com/mbolis/reqlicit/model"
)

func withClaims(r *http.Request, username, roles string) *http.Request {
	ctx := context.WithValue(r.Context(), oauth.ClaimsContext, map[string]string{"roles": roles})
	ctx = context.WithValue(ctx, oauth.CredentialContext, username)
	return r.WithContext(ctx)
}

func TestIdentityFrom(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	_, ok := IdentityFrom(r.Context())
	assert.False(t, ok)

	id, ok := IdentityFrom(withClaims(r, "nurse", "bogus, analyst").Context())
	assert.True(t, ok)
	assert.Equal(t, Identity{Username: "nurse", Role: model.AnalystRole}, id)
}

func TestIdentity_Can(t *testing.T) {
	assert.True(t, Identity{Role: model.AdminRole}.Can(model.AnalystRole))
	assert.True(t, Identity{Role: model.DesignerRole}.Can(model.AnalystRole, model.DesignerRole))
	assert.False(t, Identity{Role: model.RespondentRole}.Can(model.AnalystRole))
	assert.False(t, Identity{}.Can())
}

func TestHasRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := hasRole([]model.Role{model.AnalystRole})(ok)

	tests := []struct {
		name  string
		roles string
		want  int
	}{
		{"analyst", "analyst", http.StatusNoContent},
		{"admin", "admin", http.StatusNoContent},
		{"respondent", "respondent", http.StatusForbidden},
		{"no role", "", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, withClaims(httptest.NewRequest("GET", "/", nil), "u", tt.roles))
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_NoToken(t *testing.T) {
	handler := RequireRole("secret", model.AnalystRole)(http.NotFoundHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCookieAuth_RedirectsWithoutCookies(t *testing.T) {
	handler := CookieAuth(nil)(RequireRole("secret", model.AnalystRole)(http.NotFoundHandler()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/analysis/index.html", nil))

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/login?goto=%2Fanalysis%2Findex.html", rec.Header().Get("location"))
}
