package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbolis/reqlicit/config"
	"github.com/mbolis/reqlicit/database"
	"github.com/mbolis/reqlicit/model"
	"github.com/mbolis/reqlicit/store"
)

func TestNew(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "app.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	a := New(db, config.Config{TokenSecret: "secret", TokenTTL: time.Minute})
	require.NotNil(t, a.BearerServer)
	assert.Equal(t, "secret", a.TokenSecret)

	ctx := context.Background()
	questions, err := a.Forms.Questions(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.DefaultQuestions(), questions)

	// responses are validated against the form the same App serves
	_, err = a.Responses.Submit(ctx, map[int]model.Answer{1: model.Choice("Comfortable")}, time.Now())
	require.NoError(t, err)
	responses, err := a.Responses.List(ctx)
	require.NoError(t, err)
	assert.Len(t, responses, 1)

	_, err = a.Users.Create(ctx, model.User{Username: "nurse", Password: "pw", Role: model.AnalystRole})
	require.NoError(t, err)
	role, err := a.Users.Role(ctx, "nurse")
	require.NoError(t, err)
	assert.Equal(t, model.AnalystRole, role)
}
