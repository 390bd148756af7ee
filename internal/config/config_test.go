package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "DB_DRIVER", "DB_DSN", "QUIZ_DATA_DIR",
		"REPORT_DIR", "PROGRESS_PATH", "ENABLE_EVENT_LOG", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.DBDriver != "sqlite" {
		t.Errorf("DBDriver = %q", cfg.DBDriver)
	}
	if !cfg.EnableEventLog {
		t.Error("event log should default on")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("ENABLE_EVENT_LOG", "false")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg := FromEnv()
	if cfg.HTTPAddr != ":9999" || cfg.DBDriver != "postgres" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.EnableEventLog {
		t.Error("ENABLE_EVENT_LOG=false ignored")
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://a.example" || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}
