package db

import (
	"path/filepath"
	"testing"
)

func TestNormalizeDSN(t *testing.T) {
	if got := NormalizeDSN(`  "postgres://u:p@host:5432/shop?sslmode=disable" `); got != "postgres://u:p@host:5432/shop?sslmode=disable" {
		t.Fatalf("postgres dsn mangled: %q", got)
	}
	if got := NormalizeDSN(""); got != "" {
		t.Fatalf("empty dsn should stay empty: %q", got)
	}
	got := NormalizeDSN("ferreteria.db")
	if !filepath.IsAbs(got) {
		t.Fatalf("relative sqlite path not absolutized: %q", got)
	}
}

func TestIsPostgres(t *testing.T) {
	cases := map[string]bool{
		"postgres://x":               true,
		"POSTGRESQL://x":             true,
		"/home/u/ferreteria.db":      false,
		"ferreteria.db":              false,
		"file::memory:?cache=shared": false,
	}
	for dsn, want := range cases {
		if got := IsPostgres(dsn); got != want {
			t.Fatalf("IsPostgres(%q) = %v, want %v", dsn, got, want)
		}
	}
}

func TestMigrateURL(t *testing.T) {
	if got := MigrateURL("postgres://u@h/db"); got != "postgres://u@h/db" {
		t.Fatalf("postgres url rewritten: %q", got)
	}
	if got := MigrateURL("/home/u/ferreteria.db"); got != "sqlite3:///home/u/ferreteria.db" {
		t.Fatalf("sqlite url = %q", got)
	}
}

func TestConnectCreatesSchema(t *testing.T) {
	dbConn, err := Connect("file:" + t.Name() + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	for _, table := range []string{"products", "customers", "invoices", "ledger_entries"} {
		if !dbConn.Migrator().HasTable(table) {
			t.Fatalf("missing table %s", table)
		}
	}
	// connecting again must be idempotent
	if _, err := Connect("file:" + t.Name() + "?mode=memory&cache=shared"); err != nil {
		t.Fatalf("reconnect: %v", err)
	}
}
