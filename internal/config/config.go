package config

import (
	"log"
	"os"
)

type Config struct {
	Port    string
	DBDSN   string
	LogFile string

	// Seed credential for the single admin account.
	AdminUser string
	AdminPass string

	// Server-side relay credentials. Kept out of anything shipped to the
	// browser; empty values disable the corresponding endpoint.
	GeminiAPIKey      string
	ChatModel         string
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() Config {
	cfg := Config{
		Port:    env("PORT", "5000"),
		DBDSN:   env("DB_DSN", "ammanroofing.db"), // sqlite file in project root
		LogFile: env("LOG_FILE", "./ammanroofing.log"),

		AdminUser: env("ADMIN_USER", "admin"),
		AdminPass: env("ADMIN_PASS", "ChangeMe1!"),

		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		ChatModel:         env("CHAT_MODEL", "gemini-2.0-flash"),
		EmailJSServiceID:  os.Getenv("EMAILJS_SERVICE_ID"),
		EmailJSTemplateID: os.Getenv("EMAILJS_TEMPLATE_ID"),
		EmailJSPublicKey:  os.Getenv("EMAILJS_PUBLIC_KEY"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s chat=%t mail=%t",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.GeminiAPIKey != "", cfg.EmailJSServiceID != "")
	return cfg
}
