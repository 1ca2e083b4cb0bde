// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielhkuo/who-pays/auth"
)

// clearEnv blanks every variable ParseFlags reads for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "ACCESS_SECRET", "ACCESS_HASH", "MUTATION_RATE", "MUTATION_BURST"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("ACCESS_SECRET", "hunter2")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabasePostgres {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.ReferenceHash != auth.ReferenceHash("hunter2") {
		t.Errorf("reference hash not derived from ACCESS_SECRET")
	}
	if cfg.MutationRate != 5 || cfg.MutationBurst != 10 {
		t.Errorf("expected default rate 5/10, got %v/%d", cfg.MutationRate, cfg.MutationBurst)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-access-secret", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabaseSQLite {
		t.Errorf("expected default sqlite, got %s", cfg.DatabaseType)
	}
}

func TestParseFlags_AccessHashWins(t *testing.T) {
	clearEnv(t)
	hash := auth.ReferenceHash("from-hash")

	cfg, err := ParseFlags([]string{"-t", "memory", "-access-secret", "ignored", "-access-hash", hash})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ReferenceHash != hash {
		t.Errorf("expected explicit hash to be used")
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing database url", []string{"-access-secret", "s"}},
		{"missing secret", []string{"-t", "memory"}},
		{"empty credential hash", []string{"-t", "memory", "-access-hash", auth.EmptyCredentialHash}},
		{"uppercase empty credential hash", []string{"-t", "memory", "-access-hash", strings.ToUpper(auth.EmptyCredentialHash)}},
		{"raw secret as hash", []string{"-t", "memory", "-access-hash", "hunter2"}},
		{"short hash", []string{"-t", "memory", "-access-hash", auth.ReferenceHash("s")[:63]}},
		{"non-hex hash", []string{"-t", "memory", "-access-hash", strings.Repeat("z", 64)}},
		{"unknown database type", []string{"-t", "mysql", "-d", "x", "-access-secret", "s"}},
		{"negative rate", []string{"-t", "memory", "-access-secret", "s", "-mutation-rate", "-1"}},
		{"unknown flag", []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseFlags_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "eighty")

	if _, err := ParseFlags([]string{"-t", "memory", "-access-secret", "s"}); err == nil {
		t.Error("expected error for invalid PORT")
	}
}

func TestParseFlags_EnvFile(t *testing.T) {
	clearEnv(t)
	t.Cleanup(func() {
		os.Unsetenv("ACCESS_SECRET")
		os.Unsetenv("DATABASE_TYPE")
	})

	path := filepath.Join(t.TempDir(), ".env")
	content := "ACCESS_SECRET=from-file\nDATABASE_TYPE=memory\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{"-env-file", path})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ReferenceHash != auth.ReferenceHash("from-file") {
		t.Error("ACCESS_SECRET from env file not applied")
	}
	if cfg.DatabaseType != DatabaseMemory {
		t.Errorf("expected memory from env file, got %s", cfg.DatabaseType)
	}
}

func TestParseFlags_MissingEnvFile(t *testing.T) {
	clearEnv(t)
	if _, err := ParseFlags([]string{"-env-file", filepath.Join(t.TempDir(), "missing.env")}); err == nil {
		t.Error("expected error for missing env file")
	}
}

func TestParseFlags_AccessHashNormalised(t *testing.T) {
	clearEnv(t)
	hash := auth.ReferenceHash("from-env")
	t.Setenv("ACCESS_HASH", " "+strings.ToUpper(hash)+"\n")

	cfg, err := ParseFlags([]string{"-t", "memory"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ReferenceHash != hash {
		t.Errorf("expected %s, got %s", hash, cfg.ReferenceHash)
	}
	if !auth.IsPrivileged("from-env", cfg.ReferenceHash) {
		t.Error("normalised hash should open the gate for its secret")
	}
}
