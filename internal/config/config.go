package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
)

// Issuer is the business identity printed on every document. It used to be
// hardcoded in the renderer; it now travels through configuration so the
// renderer stays reusable.
type Issuer struct {
	Name    string
	Address string
	City    string
	Email   string
	TaxID   string
	Phone   string
}

type Config struct {
	Port        string
	DatabaseDSN string
	OutputDir   string
	VATRate     float64
	Issuer      Issuer
	Env         string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
// The defaults reproduce the shop's historical identity and output layout:
// a sqlite database in the user's home directory and PDFs on the desktop.
func Load() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", filepath.Join(home, "ferreteria.db"))
	cfg.OutputDir = getEnv("OUTPUT_DIR", filepath.Join(home, "Desktop"))
	cfg.VATRate = ParseFloat("VAT_RATE", 0.21)
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.Issuer = Issuer{
		Name:    getEnv("ISSUER_NAME", "FERRETERIA JJBARJA"),
		Address: getEnv("ISSUER_ADDRESS", "C/San Maximiliano 57"),
		City:    getEnv("ISSUER_CITY", "28017 MADRID"),
		Email:   getEnv("ISSUER_EMAIL", "juanjobarja@gmail.com"),
		TaxID:   getEnv("ISSUER_TAX_ID", "33338853P"),
		Phone:   getEnv("ISSUER_PHONE", "Telf. 688 902 949"),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseFloat reads an env var as float64 with default.
func ParseFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			log.Printf("invalid float for %s: %s", key, v)
			return def
		}
		return f
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
