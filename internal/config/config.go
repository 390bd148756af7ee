package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	// DataDir holds static YY-MM-DD.json quiz files (importer input and
	// offline fallback for the CLI player).
	DataDir string

	// ReportDir receives exported PDF reports.
	ReportDir string

	// ProgressPath is the best-effort streak/high-score file.
	ProgressPath string

	EnableEventLog bool

	CORSOrigins []string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		HTTPAddr:       addr,
		DBDriver:       envOr("DB_DRIVER", "sqlite"),
		DBDSN:          envOr("DB_DSN", ""),
		DataDir:        envOr("QUIZ_DATA_DIR", "./data"),
		ReportDir:      envOr("REPORT_DIR", "./reports"),
		ProgressPath:   envOr("PROGRESS_PATH", "./.dailyquiz-progress.json"),
		EnableEventLog: envBool("ENABLE_EVENT_LOG", true),
		CORSOrigins:    csvOr("CORS_ORIGINS", "*"),
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
