package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

// isolate points the user config dir and working directory at temp dirs and
// clears TODOMVC_* variables.
func isolate(t *testing.T) (configHome, workDir string) {
	t.Helper()
	configHome = t.TempDir()
	workDir = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("HOME", configHome)
	for _, k := range []string{"TODOMVC_DB", "TODOMVC_LOG_FILE", "TODOMVC_LOG_LEVEL", "TODOMVC_ROUTE", "TODOMVC_PDF_FONT"} {
		t.Setenv(k, "")
	}
	t.Chdir(workDir)
	return configHome, workDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("test", flag.ContinueOnError)
}

func TestDefaults(t *testing.T) {
	home, _ := isolate(t)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if !cfg.RememberRoute {
		t.Error("RememberRoute should default to true")
	}
	wantDB := filepath.Join(home, "todomvc", "todomvc.db")
	if cfg.DBPath != wantDB {
		t.Errorf("DBPath: got %q, want %q", cfg.DBPath, wantDB)
	}
	if cfg.LogFile != filepath.Join(home, "todomvc", "todomvc.log") {
		t.Errorf("LogFile should sit next to the database, got %q", cfg.LogFile)
	}
	if len(cfg.Files) != 0 {
		t.Errorf("no files should be read, got %v", cfg.Files)
	}
	if cfg.PDFFont != "" {
		t.Errorf("PDFFont should default to empty, got %q", cfg.PDFFont)
	}
}

func TestPDFFontLayers(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, "todomvc", "config.toml"), `pdf_font = "~/fonts/file.ttf"`)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, "fonts", "file.ttf"); cfg.PDFFont != want {
		t.Fatalf("PDFFont = %q, want %q", cfg.PDFFont, want)
	}

	t.Setenv("TODOMVC_PDF_FONT", "/env/font.ttf")
	cfg, err = Load(newFlagSet(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PDFFont != "/env/font.ttf" {
		t.Fatalf("PDFFont = %q, want env value", cfg.PDFFont)
	}

	cfg, err = Load(newFlagSet(), []string{"-pdf-font", "/flag/font.ttf"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PDFFont != "/flag/font.ttf" {
		t.Fatalf("PDFFont = %q, want flag value", cfg.PDFFont)
	}
}

func TestUserConfigFile(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, "todomvc", "config.toml"), `
db_path = "/tmp/todos.db"
log_level = "debug"
route = "#/active"
remember_route = false
`)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "/tmp/todos.db" || cfg.LogLevel != "debug" || cfg.Route != "#/active" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.RememberRoute {
		t.Fatal("remember_route = false should be honored")
	}
	if cfg.LogFile != "/tmp/todomvc.log" {
		t.Fatalf("LogFile = %q", cfg.LogFile)
	}
}

func TestProjectFileOverridesUserFile(t *testing.T) {
	home, work := isolate(t)
	writeFile(t, filepath.Join(home, "todomvc", "config.toml"), `log_level = "debug"`)
	writeFile(t, filepath.Join(work, ProjectConfigFile), `log_level = "warn"`)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if len(cfg.Files) != 2 {
		t.Fatalf("expected both files read, got %v", cfg.Files)
	}
}

func TestEnvOverridesFiles(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, "todomvc", "config.toml"), `db_path = "/from/file.db"`)
	t.Setenv("TODOMVC_DB", "/from/env.db")
	t.Setenv("TODOMVC_ROUTE", "#/completed")

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "/from/env.db" {
		t.Fatalf("DBPath = %q, want env value", cfg.DBPath)
	}
	if cfg.Route != "#/completed" {
		t.Fatalf("Route = %q", cfg.Route)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TODOMVC_LOG_LEVEL", "debug")

	fs := newFlagSet()
	cfg, err := Load(fs, []string{"-log-level", "error", "-db", "/x/y.db", "export", "csv"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "error" || cfg.DBPath != "/x/y.db" {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if rest := fs.Args(); len(rest) != 2 || rest[0] != "export" {
		t.Fatalf("remaining args = %v", rest)
	}
}

func TestExplicitConfigFlag(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, path, `route = "#/completed"`)

	cfg, err := Load(newFlagSet(), []string{"-config=" + path})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Route != "#/completed" {
		t.Fatalf("Route = %q", cfg.Route)
	}
}

func TestExplicitConfigMissing(t *testing.T) {
	isolate(t)
	if _, err := Load(newFlagSet(), []string{"-config", "/does/not/exist.toml"}); err == nil {
		t.Fatal("missing explicit config should be an error")
	}
}

func TestInvalidTOML(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, "todomvc", "config.toml"), `db_path = `)
	if _, err := Load(newFlagSet(), nil); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestInvalidLogLevel(t *testing.T) {
	isolate(t)
	if _, err := Load(newFlagSet(), []string{"-log-level", "chatty"}); err == nil {
		t.Fatal("expected invalid log level error")
	}
}

func TestConfigFlag(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, ""},
		{[]string{"-config", "a.toml"}, "a.toml"},
		{[]string{"--config=b.toml"}, "b.toml"},
		{[]string{"-db", "config"}, ""},
		{[]string{"--", "-config", "c.toml"}, ""},
		{[]string{"-config"}, ""},
	}
	for _, tt := range tests {
		if got := configFlag(tt.args); got != tt.want {
			t.Errorf("configFlag(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("TODO_DIR", "/data")
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{":memory:", ":memory:"},
		{"~", "/home/tester"},
		{"~/todos.db", "/home/tester/todos.db"},
		{"$TODO_DIR/todos.db", "/data/todos.db"},
		{"/abs/path.db", "/abs/path.db"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
