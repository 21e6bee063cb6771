package routes

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mbolis/reqlicit/app"
	"github.com/mbolis/reqlicit/log"
	"github.com/mbolis/reqlicit/model"
	"github.com/mbolis/reqlicit/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	requestLogger := middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  log.Logger,
		NoColor: true,
	})

	root := chi.NewRouter()
	root.Use(middleware.RequestID, requestLogger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	// per-role front-end areas
	secret := app.TokenSecret
	root.
		With(middlewares.CookieAuth(app.BearerServer), middlewares.RequireRole(secret, model.DesignerRole)).
		Mount("/designer", servePrivateFiles(app, "designer"))
	root.
		With(middlewares.CookieAuth(app.BearerServer), middlewares.RequireRole(secret, model.AnalystRole)).
		Mount("/analysis", servePrivateFiles(app, "analysis"))
	root.
		With(middlewares.CookieAuth(app.BearerServer), middlewares.RequireRole(secret, model.AdminRole)).
		Mount("/admin", servePrivateFiles(app, "admin"))
	root.Mount("/", servePublicFiles(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	secret := app.TokenSecret
	api := chi.NewRouter()

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	api.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticated(secret))

		r.Get("/me", Me(app))
		r.Get("/form", GetForm(app))
	})

	api.With(middlewares.RequireRole(secret, model.DesignerRole)).
		Put("/form", SaveForm(app))

	api.With(middlewares.RequireRole(secret, model.RespondentRole)).
		Post("/responses", SubmitResponse(app))

	api.Group(func(r chi.Router) {
		r.Use(middlewares.RequireRole(secret, model.AnalystRole))

		r.Get("/responses", ListResponses(app))
		r.Get("/analysis", GetAllStats(app))
		r.Get("/analysis/summary", GetSummary(app))
		r.Get(`/analysis/questions/{id:^\d+$}`, GetQuestionStats(app))
	})

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.RequireRole(secret, model.AdminRole))

		r.Get("/users", ListUsers(app))
		r.Post("/users", CreateUser(app))
		r.Delete("/users/{username}", DeleteUser(app))
	})

	return api
}

func servePublicFiles(app app.App) http.Handler {
	return http.FileServer(http.Dir(filepath.Join(app.StaticDir, "public")))
}

func servePrivateFiles(app app.App, area string) http.Handler {
	return http.StripPrefix("/"+area, http.FileServer(http.Dir(filepath.Join(app.StaticDir, area))))
}
