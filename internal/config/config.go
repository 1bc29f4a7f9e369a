package config

import (
	"os"
	"strings"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	// Catalog documents; empty means the embedded defaults.
	CatalogPath      string
	DailyCatalogPath string

	BlobBasePath string // uploaded tongue images

	EnableLocalAuth bool
	EnableGuestAuth bool
	AuthSecret      string

	// Remote advice generator; used only in online mode with a key set,
	// otherwise the rule-based generator serves every request.
	GenAIAPIKey string
	GenAIModel  string

	CORSOrigins []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		Mode:             mode,
		HTTPAddr:         addr,
		DBDriver:         envOr("DB_DRIVER", "sqlite"),
		DBDSN:            envOr("DB_DSN", ""),
		CatalogPath:      os.Getenv("CATALOG_PATH"),
		DailyCatalogPath: os.Getenv("DAILY_CATALOG_PATH"),
		BlobBasePath:     envOr("BLOB_BASE_PATH", "./data"),
		EnableLocalAuth:  envBool("ENABLE_LOCAL_AUTH", true),
		EnableGuestAuth:  envBool("ENABLE_GUEST_AUTH", true),
		AuthSecret:       envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		GenAIAPIKey:      os.Getenv("GENAI_API_KEY"),
		GenAIModel:       envOr("GENAI_MODEL", "gemini-2.0-flash"),
		CORSOrigins:      csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
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
