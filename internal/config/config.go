// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devJWTSecret = "dev-secret-change-me"

// Config holds the process settings.
type Config struct {
	Addr           string
	DatabaseURL    string
	JWTSecret      string
	AccessTokenTTL time.Duration
	CORSOrigins    []string

	TrustForwardAuth bool

	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string
	SSORedirectURL   string

	AMQPURL   string
	AMQPQueue string
}

// SSOEnabled reports whether an OIDC provider is configured.
func (c Config) SSOEnabled() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != ""
}

// Load reads a .env file when present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[config] .env: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables alone.
func FromEnv() (Config, error) {
	c := Config{
		Addr:             env("ADDR", ":8000"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		CORSOrigins:      splitList(env("CORS_ORIGINS", "http://localhost:5173")),
		OIDCIssuer:       os.Getenv("OIDC_ISSUER"),
		OIDCClientID:     os.Getenv("OIDC_CLIENT_ID"),
		OIDCClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
		OIDCRedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
		SSORedirectURL:   env("SSO_REDIRECT_URL", "/"),
		AMQPURL:          os.Getenv("AMQP_URL"),
		AMQPQueue:        env("AMQP_QUEUE", "weighttrack.events"),
	}

	ttl, err := time.ParseDuration(env("ACCESS_TOKEN_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("ACCESS_TOKEN_TTL: invalid duration %q", os.Getenv("ACCESS_TOKEN_TTL"))
	}
	c.AccessTokenTTL = ttl

	if v := os.Getenv("TRUST_FORWARD_AUTH"); v != "" {
		c.TrustForwardAuth, err = strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("TRUST_FORWARD_AUTH: %w", err)
		}
	}

	if c.JWTSecret == "" {
		if c.DatabaseURL != "" {
			return Config{}, errors.New("JWT_SECRET is required when DATABASE_URL is set")
		}
		log.Println("[config] JWT_SECRET not set, using an insecure development secret")
		c.JWTSecret = devJWTSecret
	}
	return c, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitList splits a comma-separated list, dropping blanks and trailing
// slashes.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimRight(strings.TrimSpace(p), "/"); v != "" {
			out = append(out, v)
		}
	}
	return out
}
