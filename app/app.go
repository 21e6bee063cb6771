package app

import (
	"database/sql"

	"github.com/go-chi/oauth"

	"github.com/mbolis/reqlicit/config"
	"github.com/mbolis/reqlicit/httpx"
	"github.com/mbolis/reqlicit/store"
)

// App carries the request-independent dependencies handed to every
// route. Per-user state travels in the request context, never here.
type App struct {
	*oauth.BearerServer
	config.Config

	Forms     *store.Forms
	Responses *store.Responses
	Users     *store.Users
}

func New(db *sql.DB, cfg config.Config) App {
	blobs := store.NewBlobs(db)
	forms := store.NewForms(blobs)
	users := store.NewUsers(db)

	return App{
		BearerServer: httpx.NewBearerServer(db, users, cfg),
		Config:       cfg,
		Forms:        forms,
		Responses:    store.NewResponses(blobs),
		Users:        users,
	}
}
