package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr string

	StoreDriver string // fs|sqlite|postgres
	QuizzesDir  string // for fs
	DBDSN       string // for sqlite/postgres

	CORSOrigins []string
}

func FromEnv() Config {
	return Config{
		HTTPAddr:    envOr("HTTP_ADDR", ":3000"),
		StoreDriver: envOr("STORE_DRIVER", "fs"),
		QuizzesDir:  envOr("QUIZZES_DIR", "./quizzes"),
		DBDSN:       envOr("DB_DSN", ""),
		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
