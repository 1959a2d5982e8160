package config

import (
	"fmt"
	"strings"
)

// Validate checks the config for errors and sets defaults.
func Validate(cfg *Config) error {
	if cfg.LogFolder == "" {
		cfg.LogFolder = ".weaver/logs"
	}
	if len(cfg.CommentStyles) == 0 {
		return fmt.Errorf("config: at least one comment style is required")
	}

	styles := make(map[string]bool)
	for i, s := range cfg.CommentStyles {
		if s.Name == "" {
			return fmt.Errorf("config: comment style %d: 'name' is required", i+1)
		}
		if styles[s.Name] {
			return fmt.Errorf("config: duplicate comment style %q", s.Name)
		}
		styles[s.Name] = true
		if len(s.Prefixes) == 0 {
			return fmt.Errorf("config: comment style %q: at least one prefix is required", s.Name)
		}
		for _, p := range s.Prefixes {
			if strings.TrimSpace(p) == "" {
				return fmt.Errorf("config: comment style %q: prefixes must be non-empty", s.Name)
			}
		}
	}

	seen := make(map[string]bool)
	for i, ft := range cfg.FileTypes {
		if ft.Name == "" {
			return fmt.Errorf("config: file type %d: 'name' is required", i+1)
		}
		if seen[ft.Name] {
			return fmt.Errorf("config: duplicate file type %q", ft.Name)
		}
		seen[ft.Name] = true
		for _, ext := range ft.Extensions {
			if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
				return fmt.Errorf("config: file type %q: extension %q must start with a dot", ft.Name, ext)
			}
		}
		if len(ft.CommentStyles) == 0 {
			return fmt.Errorf("config: file type %q: at least one comment style is required", ft.Name)
		}
		for _, name := range ft.CommentStyles {
			if !styles[name] {
				return fmt.Errorf("config: file type %q: unknown comment style %q", ft.Name, name)
			}
		}
	}

	return nil
}
