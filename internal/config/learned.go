package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Learned holds comment styles taught through manual disambiguation,
// keyed by file extension (with the leading dot). It lives next to the
// config so future parses resolve those extensions automatically.
type Learned struct {
	Extensions map[string]string `yaml:"extensions"`
}

// LoadLearned reads the learned-extension file. A missing file is an
// empty mapping, not an error.
func LoadLearned(path string) (*Learned, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Learned{Extensions: make(map[string]string)}, nil
		}
		return nil, err
	}
	var l Learned
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	if l.Extensions == nil {
		l.Extensions = make(map[string]string)
	}
	return &l, nil
}

// Set records a style for an extension. Returns true if the mapping
// changed.
func (l *Learned) Set(ext, style string) bool {
	if ext == "" || style == "" {
		return false
	}
	if l.Extensions[ext] == style {
		return false
	}
	l.Extensions[ext] = style
	return true
}

// Save writes the mapping back to disk.
func (l *Learned) Save(path string) error {
	data, err := yaml.Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
