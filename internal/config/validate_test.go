package config

import (
	"strings"
	"testing"
)

func minimalConfig() *Config {
	return &Config{
		CommentStyles: []CommentStyle{{Name: "hash", Prefixes: []string{"#"}}},
		FileTypes:     []FileType{{Name: "python", Extensions: []string{".py"}, CommentStyles: []string{"hash"}}},
	}
}

func TestValidate_DefaultLogFolder(t *testing.T) {
	cfg := minimalConfig()
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogFolder != ".weaver/logs" {
		t.Fatalf("expected default log folder, got %q", cfg.LogFolder)
	}
}

func TestValidate_NoStyles(t *testing.T) {
	cfg := &Config{}
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "comment style is required") {
		t.Fatalf("expected styles error, got %v", err)
	}
}

func TestValidate_DuplicateStyle(t *testing.T) {
	cfg := minimalConfig()
	cfg.CommentStyles = append(cfg.CommentStyles, CommentStyle{Name: "hash", Prefixes: []string{"#"}})
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "duplicate comment style") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_EmptyPrefix(t *testing.T) {
	cfg := minimalConfig()
	cfg.CommentStyles[0].Prefixes = []string{"  "}
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "non-empty") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_ExtensionNeedsDot(t *testing.T) {
	cfg := minimalConfig()
	cfg.FileTypes[0].Extensions = []string{"py"}
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "start with a dot") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_UnknownStyleReference(t *testing.T) {
	cfg := minimalConfig()
	cfg.FileTypes[0].CommentStyles = []string{"ghost"}
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "unknown comment style") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_DefaultConfigIsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestStyleConfig_Tags(t *testing.T) {
	sc := Default().StyleConfig(nil)
	for _, tag := range []string{"python", "py", "go", "yaml", "yml"} {
		if _, ok := sc.Tags[tag]; !ok {
			t.Errorf("missing tag %q", tag)
		}
	}
	if got := sc.Tags["py"]; len(got) != 1 || got[0] != "hash" {
		t.Fatalf("unexpected styles for py: %v", got)
	}
}

func TestStyleConfig_LearnedDoesNotShadowConfigured(t *testing.T) {
	learned := &Learned{Extensions: map[string]string{".py": "slash", ".zig": "slash"}}
	sc := Default().StyleConfig(learned)
	if got := sc.Tags["py"]; len(got) != 1 || got[0] != "hash" {
		t.Fatalf("learned mapping shadowed the configured one: %v", got)
	}
	if got := sc.Tags["zig"]; len(got) != 1 || got[0] != "slash" {
		t.Fatalf("learned mapping missing: %v", got)
	}
}

func TestStyleForExt(t *testing.T) {
	cfg := Default()
	if got := cfg.StyleForExt(".py"); got != "hash" {
		t.Fatalf("expected hash, got %q", got)
	}
	if got := cfg.StyleForExt(".zig"); got != "" {
		t.Fatalf("expected empty for unknown ext, got %q", got)
	}
}
