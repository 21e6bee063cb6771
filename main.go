package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/mbolis/reqlicit/app"
	"github.com/mbolis/reqlicit/config"
	"github.com/mbolis/reqlicit/database"
	"github.com/mbolis/reqlicit/log"
	"github.com/mbolis/reqlicit/routes"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatal("main.env:", err)
	}
	cfg, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal("main.config:", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal("main.config.log_level:", err)
	}
	if cfg.Debug {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	logFile := log.SetFile(cfg.LogFile)
	defer logFile.Close()

	db, err := database.Open(cfg.DBUrl)
	if err != nil {
		log.Fatal("main.db.open:", err)
	}
	defer db.Close()

	app := app.New(db, cfg)

	if cfg.AdminUser != "" {
		created, err := app.Users.EnsureAdmin(context.Background(), cfg.AdminUser, cfg.AdminPassword)
		if err != nil {
			log.Fatal("main.admin:", err)
		}
		if created {
			log.WithFields(log.Fields{"username": cfg.AdminUser}).Info("admin account created")
		}
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
