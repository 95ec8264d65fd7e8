package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Path        string        `split_words:"true" default:"farmer_chatbot.db"`
	BusyTimeout time.Duration `split_words:"true" default:"5s"`
	Name        string        `required:"true"`
}

// These tests mutate the process environment and the package-level env file,
// so they do not run in parallel.

func TestNewReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	content := "KMTEST_NAME=krishi\nKMTEST_BUSY_TIMEOUT=2s\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() {
		SetEnvFile("")
		_ = os.Unsetenv("KMTEST_NAME")
		_ = os.Unsetenv("KMTEST_BUSY_TIMEOUT")
	})

	SetEnvFile(file)
	conf, err := New[testConfig]("KMTEST")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if conf.Name != "krishi" {
		t.Fatalf("Name = %q, want krishi", conf.Name)
	}
	if conf.BusyTimeout != 2*time.Second {
		t.Fatalf("BusyTimeout = %v, want 2s", conf.BusyTimeout)
	}
	if conf.Path != "farmer_chatbot.db" {
		t.Fatalf("Path = %q, want default", conf.Path)
	}
}

func TestNewEnvironmentWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	if err := os.WriteFile(file, []byte("KMTEST2_NAME=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("KMTEST2_NAME", "from-env")
	t.Cleanup(func() { SetEnvFile("") })

	SetEnvFile(file)
	conf, err := New[testConfig]("KMTEST2")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if conf.Name != "from-env" {
		t.Fatalf("Name = %q, want from-env", conf.Name)
	}
}

func TestNewMissingRequired(t *testing.T) {
	t.Cleanup(func() { SetEnvFile("") })
	SetEnvFile("")

	if _, err := New[testConfig]("KMTEST_MISSING"); err == nil {
		t.Fatal("expected error for missing required variable")
	}
}

func TestNewMissingEnvFile(t *testing.T) {
	t.Cleanup(func() { SetEnvFile("") })
	SetEnvFile(filepath.Join(t.TempDir(), "absent.env"))

	if _, err := New[testConfig]("KMTEST3"); err == nil {
		t.Fatal("expected error for missing env file")
	}
}
