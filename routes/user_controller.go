package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/mbolis/reqlicit/app"
	"github.com/mbolis/reqlicit/httpx"
	"github.com/mbolis/reqlicit/log"
	"github.com/mbolis/reqlicit/model"
	"github.com/mbolis/reqlicit/routes/middlewares"
)

func ListUsers(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := app.Users.List(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.get_users", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"users": users,
		})
	}
}

func CreateUser(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := model.User{}
		err := render.DecodeJSON(r.Body, &user)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		user, err = app.Users.Create(r.Context(), user)
		if err != nil {
			httpx.LogStoreError(w, "db.insert_user", err)
			return
		}
		log.WithFields(log.Fields{"username": user.Username, "role": user.Role}).Info("user created")

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, user)
	}
}

func DeleteUser(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		if id, _ := middlewares.IdentityFrom(r.Context()); id.Username == username {
			httpx.LogStatusMsg(w, http.StatusConflict, log.DebugLevel, "delete_user.self", "cannot delete own account")
			return
		}

		err := app.Users.Delete(r.Context(), username)
		if err != nil {
			httpx.LogStoreError(w, "db.delete_user", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
