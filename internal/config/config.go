// Package config loads and validates the .weaver configuration: comment
// styles, file-type mappings, and the log folder.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jorge-barreto/weaver/internal/parser"
)

// CommentStyle is a named, ordered list of comment prefixes used to
// detect file-path declarations on a block's first line.
type CommentStyle struct {
	Name     string   `yaml:"name"`
	Prefixes []string `yaml:"prefixes"`
}

// FileType maps a language name and its extensions to the comment styles
// that apply to it. Order matters everywhere: styles are tried as listed.
type FileType struct {
	Name          string   `yaml:"name"`
	Extensions    []string `yaml:"extensions"`
	CommentStyles []string `yaml:"comment-styles"`
}

type Config struct {
	LogFolder     string         `yaml:"log-folder"`
	CommentStyles []CommentStyle `yaml:"comment-styles"`
	FileTypes     []FileType     `yaml:"file-types"`
}

// Load reads a YAML config file and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration used when no .weaver
// directory exists.
func Default() *Config {
	return &Config{
		LogFolder: ".weaver/logs",
		CommentStyles: []CommentStyle{
			{Name: "hash", Prefixes: []string{"# File:", "#"}},
			{Name: "slash", Prefixes: []string{"// File:", "//"}},
			{Name: "dash", Prefixes: []string{"-- File:", "--"}},
			{Name: "html", Prefixes: []string{"<!-- File:", "<!--"}},
		},
		FileTypes: []FileType{
			{Name: "python", Extensions: []string{".py"}, CommentStyles: []string{"hash"}},
			{Name: "javascript", Extensions: []string{".js", ".jsx"}, CommentStyles: []string{"slash"}},
			{Name: "typescript", Extensions: []string{".ts", ".tsx"}, CommentStyles: []string{"slash"}},
			{Name: "go", Extensions: []string{".go"}, CommentStyles: []string{"slash"}},
			{Name: "shell", Extensions: []string{".sh"}, CommentStyles: []string{"hash"}},
			{Name: "yaml", Extensions: []string{".yaml", ".yml"}, CommentStyles: []string{"hash"}},
			{Name: "sql", Extensions: []string{".sql"}, CommentStyles: []string{"dash"}},
			{Name: "html", Extensions: []string{".html", ".xml"}, CommentStyles: []string{"html"}},
		},
	}
}

// StyleConfig compiles the config into the parser's immutable view.
// Learned extension mappings, if any, are merged into the tag lookup;
// explicit file-type entries always win over learned ones.
func (c *Config) StyleConfig(learned *Learned) *parser.StyleConfig {
	sc := &parser.StyleConfig{Tags: make(map[string][]string)}
	for _, s := range c.CommentStyles {
		sc.Styles = append(sc.Styles, parser.Style{Name: s.Name, Prefixes: s.Prefixes})
	}
	for _, ft := range c.FileTypes {
		names := append([]string(nil), ft.CommentStyles...)
		sc.Tags[strings.ToLower(ft.Name)] = names
		for _, ext := range ft.Extensions {
			sc.Tags[tagForExt(ext)] = names
		}
	}
	if learned != nil {
		for ext, style := range learned.Extensions {
			tag := tagForExt(ext)
			if _, exists := sc.Tags[tag]; !exists {
				sc.Tags[tag] = []string{style}
			}
		}
	}
	return sc
}

// StyleForExt returns the first configured style name for an extension,
// or "" if the extension is unknown.
func (c *Config) StyleForExt(ext string) string {
	for _, ft := range c.FileTypes {
		for _, e := range ft.Extensions {
			if strings.EqualFold(e, ext) && len(ft.CommentStyles) > 0 {
				return ft.CommentStyles[0]
			}
		}
	}
	return ""
}

func tagForExt(ext string) string {
	return strings.TrimPrefix(strings.ToLower(ext), ".")
}
