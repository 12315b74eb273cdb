package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":8080")
	os.Unsetenv("SERVER_ADDRESS")

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
	if cfg.ServerAddress != ":8080" || cfg.JWTExpiration != 24*time.Hour || cfg.MaxUploadSizeMB != 10 {
		t.Errorf("defaults = %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("origins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_HOURS", "2")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "oops")
	t.Setenv("MEDIA_MODERATION", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))
	if cfg.JWTExpiration != 2*time.Hour {
		t.Errorf("expiration = %v", cfg.JWTExpiration)
	}
	if cfg.MaxUploadSizeMB != 10 {
		t.Errorf("bad int should fall back, got %d", cfg.MaxUploadSizeMB)
	}
	if !cfg.MediaModeration {
		t.Error("MEDIA_MODERATION not read")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("origins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("MONGO_DB=from_file\nLOG_FORMAT=json\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("MONGO_DB", "")
	os.Unsetenv("MONGO_DB")

	cfg := Load(path)
	if cfg.MongoDB != "from_file" {
		t.Errorf("MongoDB = %q", cfg.MongoDB)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("environment should win over the file, got %q", cfg.LogFormat)
	}
}
