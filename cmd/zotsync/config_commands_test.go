package main

import (
	"os"
	"path/filepath"
	"testing"

	"zotsync/internal/testsupport"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.configPath)

	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, env.configPath)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}

func TestConfigShowHonorsConfigFlag(t *testing.T) {
	setupCLITestEnv(t)

	// A second config outside the default lookup order must win when
	// addressed via --config.
	altCfg := testsupport.NewConfig(t,
		testsupport.WithTag("paper_queue"),
		testsupport.WithGraph("research"),
	)
	altPath := filepath.Join(t.TempDir(), "alt.toml")
	writeTestConfig(t, altPath, altCfg)

	out, _, err := runCLI(t, []string{"config", "show"}, altPath)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, altPath)
	requireContains(t, out, "paper_queue")
	requireContains(t, out, "research")
}

func TestConfigValidateHonorsConfigFlag(t *testing.T) {
	setupCLITestEnv(t)

	altCfg := testsupport.NewConfig(t)
	altPath := filepath.Join(t.TempDir(), "alt.toml")
	writeTestConfig(t, altPath, altCfg)

	out, _, err := runCLI(t, []string{"config", "validate"}, altPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+altPath)
	requireContains(t, out, "Configuration valid")
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	env := setupCLITestEnv(t)

	tmp := t.TempDir()
	target := filepath.Join(tmp, "config.toml")
	if err := os.WriteFile(target, []byte("# keep\n"), 0o644); err != nil {
		t.Fatalf("seed config: %v", err)
	}

	_, _, err := runCLI(t, []string{"config", "init", "--path", target}, env.configPath)
	if err == nil {
		t.Fatal("expected error when config already exists")
	}
	requireContains(t, err.Error(), "already exists")

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, env.configPath); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}
