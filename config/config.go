package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "REQLICIT_"

type Config struct {
	Addr          string
	DBUrl         string
	TokenSecret   string
	TokenTTL      time.Duration
	Debug         bool
	LogLevel      string
	LogFile       string
	StaticDir     string
	AdminUser     string
	AdminPassword string
}

// LoadEnv reads a .env file into the process environment, if there is one.
// Variables already set are not overridden.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFlags parses command line arguments. Every flag defaults to the
// matching REQLICIT_* environment variable when set, e.g. -db-url to
// REQLICIT_DB_URL.
func ParseFlags(args []string) (cfg Config, err error) {
	fs := flag.NewFlagSet("reqlicit", flag.ContinueOnError)

	var host string
	fs.StringVar(&host, "host", env("HOST", "0.0.0.0"), "listen host name")
	var port uint
	fs.UintVar(&port, "port", envUint("PORT", 80), "listen port number")
	fs.StringVar(&cfg.DBUrl, "db-url", env("DB_URL", "reqlicit.sqlite"), "path to SQLite3 DB file")
	fs.StringVar(&cfg.TokenSecret, "token-secret", env("TOKEN_SECRET", ""), "secret key for token encryption and decryption")
	var ttl uint
	fs.UintVar(&ttl, "token-ttl", envUint("TOKEN_TTL", 120), "token TTL in seconds")
	fs.BoolVar(&cfg.Debug, "debug", env("DEBUG", "") == "true", "log at DEBUG level")
	fs.StringVar(&cfg.LogLevel, "log-level", env("LOG_LEVEL", "info"), "log level (trace, debug, info, warn, error)")
	fs.StringVar(&cfg.LogFile, "log-file", env("LOG_FILE", ""), "also write logs to this file, rotated by size")
	fs.StringVar(&cfg.StaticDir, "static-dir", env("STATIC_DIR", "web"), "directory holding the public/ and per-role front-end files")
	fs.StringVar(&cfg.AdminUser, "admin-user", env("ADMIN_USER", ""), "create this admin account on startup if missing")
	fs.StringVar(&cfg.AdminPassword, "admin-password", env("ADMIN_PASSWORD", ""), "password for -admin-user")

	if err = fs.Parse(args); err != nil {
		return
	}

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.TokenTTL = time.Duration(ttl) * time.Second

	switch {
	case cfg.TokenSecret == "":
		err = errors.New("missing parameter -token-secret")
	case cfg.AdminUser != "" && cfg.AdminPassword == "":
		err = errors.New("parameter -admin-user requires -admin-password")
	}

	return
}

func env(name, fallback string) string {
	if v, ok := os.LookupEnv(envPrefix + name); ok {
		return v
	}
	return fallback
}

func envUint(name string, fallback uint) uint {
	v, err := strconv.ParseUint(env(name, ""), 10, 0)
	if err != nil {
		return fallback
	}
	return uint(v)
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
