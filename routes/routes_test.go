package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbolis/reqlicit/app"
	"github.com/mbolis/reqlicit/config"
	"github.com/mbolis/reqlicit/database"
	"github.com/mbolis/reqlicit/model"
)

type testServer struct {
	*httptest.Server
	app app.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "routes.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{TokenSecret: "test-secret", TokenTTL: time.Minute, StaticDir: t.TempDir()}
	a := app.New(db, cfg)

	ctx := context.Background()
	for _, u := range []model.User{
		{Username: "admin", Password: "pw", Role: model.AdminRole},
		{Username: "designer", Password: "pw", Role: model.DesignerRole},
		{Username: "analyst", Password: "pw", Role: model.AnalystRole},
		{Username: "patient", Password: "pw", Role: model.RespondentRole},
	} {
		_, err := a.Users.Create(ctx, u)
		require.NoError(t, err)
	}

	srv := httptest.NewServer(Wire(a))
	t.Cleanup(srv.Close)
	return &testServer{srv, a}
}

func (s *testServer) login(t *testing.T, username string) string {
	t.Helper()
	req, err := http.NewRequest("POST", s.URL+"/api/login", nil)
	require.NoError(t, err)
	req.SetBasicAuth(username, "pw")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tokens))
	require.NotEmpty(t, tokens.AccessToken)
	return tokens.AccessToken
}

func (s *testServer) do(t *testing.T, token, method, path, body string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, s.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("content-type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func TestLogin_BadPassword(t *testing.T) {
	s := newTestServer(t)

	req, err := http.NewRequest("POST", s.URL+"/api/login", nil)
	require.NoError(t, err)
	req.SetBasicAuth("analyst", "nope")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	code, _ := s.do(t, "", "POST", "/api/login", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestMe(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, "", "GET", "/api/me", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, body := s.do(t, s.login(t, "designer"), "GET", "/api/me", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"username":"designer","role":"designer"}`, string(body))
}

func TestRoleGate(t *testing.T) {
	s := newTestServer(t)
	patient := s.login(t, "patient")
	analyst := s.login(t, "analyst")
	admin := s.login(t, "admin")

	code, _ := s.do(t, patient, "GET", "/api/analysis", "")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(t, analyst, "PUT", "/api/form", `{"questions":[]}`)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(t, analyst, "GET", "/api/admin/users", "")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(t, admin, "GET", "/api/analysis", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestSurveyFlow(t *testing.T) {
	s := newTestServer(t)
	designer := s.login(t, "designer")
	patient := s.login(t, "patient")
	analyst := s.login(t, "analyst")

	code, body := s.do(t, designer, "PUT", "/api/form", `{"questions":[
		{"id":1,"type":"single","question":"Agree?","options":["Yes","No"]},
		{"id":2,"type":"multiple","question":"Aspects","options":["Empathy","Clear Communication"]},
		{"id":3,"type":"text","question":"Challenges","options":[]}
	]}`)
	require.Equal(t, http.StatusNoContent, code, string(body))

	code, body = s.do(t, patient, "GET", "/api/form", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), `"question":"Agree?"`)

	for _, answers := range []string{
		`{"answers":{"1":"Yes","2":["Empathy","Clear Communication"],"3":"The patient felt anxious and unheard"}}`,
		`{"answers":{"1":"Yes","3":"Patients feel anxious when unheard"}}`,
		`{"answers":{"1":"No","2":["Empathy"]}}`,
	} {
		code, body = s.do(t, patient, "POST", "/api/responses", answers)
		require.Equal(t, http.StatusCreated, code, string(body))
	}

	code, body = s.do(t, analyst, "GET", "/api/analysis/questions/1", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"questionId":1,"question":"Agree?","type":"choice","data":[
		{"name":"Yes","value":2},{"name":"No","value":1}
	]}`, string(body))

	code, body = s.do(t, analyst, "GET", "/api/analysis/questions/2", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"questionId":2,"question":"Aspects","type":"choice","data":[
		{"name":"Empathy","value":2},{"name":"Clear Communication","value":1}
	]}`, string(body))

	code, body = s.do(t, analyst, "GET", "/api/analysis/questions/3", "")
	require.Equal(t, http.StatusOK, code)
	var stats struct {
		Type string                   `json:"type"`
		Data []model.KeywordFrequency `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, "text", stats.Type)
	require.NotEmpty(t, stats.Data)
	assert.Equal(t, model.KeywordFrequency{Text: "anxious", Count: 2}, stats.Data[0])
	assert.Equal(t, model.KeywordFrequency{Text: "unheard", Count: 2}, stats.Data[1])

	code, _ = s.do(t, analyst, "GET", "/api/analysis/questions/42", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, body = s.do(t, analyst, "GET", "/api/analysis/summary", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"totalResponses":3,"totalQuestions":3}`, string(body))

	code, body = s.do(t, analyst, "GET", "/api/responses", "")
	require.Equal(t, http.StatusOK, code)
	var listed struct {
		Responses []model.Response `json:"responses"`
	}
	require.NoError(t, json.Unmarshal(body, &listed))
	assert.Len(t, listed.Responses, 3)
}

func TestSaveForm_Invalid(t *testing.T) {
	s := newTestServer(t)
	designer := s.login(t, "designer")

	code, body := s.do(t, designer, "PUT", "/api/form", `{"questions":[{"id":1,"type":"single","question":"Agree?"}]}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "single question needs options")

	code, _ = s.do(t, designer, "PUT", "/api/form", `not json`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSubmitResponse_Invalid(t *testing.T) {
	s := newTestServer(t)
	patient := s.login(t, "patient")

	code, body := s.do(t, patient, "POST", "/api/responses", `{"answers":{"77":"?"}}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body), "unknown question 77")

	code, _ = s.do(t, patient, "POST", "/api/responses", `{"answers":{"1":42}}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUsers(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin")

	code, body := s.do(t, admin, "POST", "/api/admin/users", `{"username":"nurse","email":"n@example.org","password":"pw","role":"analyst"}`)
	require.Equal(t, http.StatusCreated, code, string(body))
	assert.NotContains(t, string(body), "password")

	code, _ = s.do(t, admin, "POST", "/api/admin/users", `{"username":"nurse","password":"pw","role":"analyst"}`)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = s.do(t, admin, "POST", "/api/admin/users", `{"username":"x","password":"pw","role":"root"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = s.do(t, admin, "GET", "/api/admin/users", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body), `"username":"nurse"`)

	s.login(t, "nurse")

	code, _ = s.do(t, admin, "DELETE", "/api/admin/users/nurse", "")
	assert.Equal(t, http.StatusNoContent, code)
	code, _ = s.do(t, admin, "DELETE", "/api/admin/users/nurse", "")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = s.do(t, admin, "DELETE", "/api/admin/users/admin", "")
	assert.Equal(t, http.StatusConflict, code)
}
