package cmd

import (
	"testing"
)

func TestCLIArgsDefaults(t *testing.T) {
	args := ParseArgsWithArgs([]string{})

	if args.Mode != "stdio" {
		t.Errorf("expected default mode stdio, got %s", args.Mode)
	}

	if args.ListenAddr != ":8080" {
		t.Errorf("expected default listen :8080, got %s", args.ListenAddr)
	}

	if args.LogLevel != "" {
		t.Errorf("expected empty log level by default, got %s", args.LogLevel)
	}

	if args.DBPath != "" {
		t.Errorf("expected empty DBPath by default, got %s", args.DBPath)
	}
}

func TestCLIArgsCustom(t *testing.T) {
	args := ParseArgsWithArgs([]string{
		"-mode", "http",
		"-listen", ":9000",
		"-log-level", "debug",
		"-db", "/tmp/audit.db",
	})

	if args.Mode != "http" {
		t.Errorf("expected mode http, got %s", args.Mode)
	}

	if args.ListenAddr != ":9000" {
		t.Errorf("expected listen :9000, got %s", args.ListenAddr)
	}

	if args.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", args.LogLevel)
	}

	if args.DBPath != "/tmp/audit.db" {
		t.Errorf("expected DBPath /tmp/audit.db, got %s", args.DBPath)
	}
}
