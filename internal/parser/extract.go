package parser

import "strings"

// Style is a named, ordered list of comment prefixes (e.g. "hash" →
// ["# File:", "#"]).
type Style struct {
	Name     string
	Prefixes []string
}

// StyleConfig is the immutable comment-style view the parser works from.
// Order is a contract: styles and prefixes are tried exactly as listed,
// because overlapping prefixes ("#" is a prefix of "# File:") make the
// order observable.
type StyleConfig struct {
	Styles []Style
	// Tags maps a lowercased fence language tag (a file-type name like
	// "python", or a bare extension like "py") to the style names
	// configured for it.
	Tags map[string][]string
}

func (c *StyleConfig) style(name string) (Style, bool) {
	for _, s := range c.Styles {
		if s.Name == name {
			return s, true
		}
	}
	return Style{}, false
}

// Extractor finds candidate file paths in transcript lines.
type Extractor struct {
	cfg *StyleConfig
}

// NewExtractor returns an Extractor over cfg. The config is shared, never
// copied, and must not change during a parse.
func NewExtractor(cfg *StyleConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// Extract finds a file path in a line: first the trimmed line itself
// (standalone mode), then every configured style's prefixes in order
// (commented mode). The first match wins.
func (e *Extractor) Extract(l Line) (string, bool) {
	return e.extract(l.Text, e.cfg.Styles)
}

// ExtractForTag restricts commented mode to the styles configured for the
// fence language tag. An empty tag tries every style; an unknown tag means
// standalone mode only.
func (e *Extractor) ExtractForTag(l Line, tag string) (string, bool) {
	if tag == "" {
		return e.extract(l.Text, e.cfg.Styles)
	}
	names, ok := e.cfg.Tags[strings.ToLower(tag)]
	if !ok {
		return e.extract(l.Text, nil)
	}
	var styles []Style
	for _, name := range names {
		// An absent style name is "no match", never an error.
		if s, ok := e.cfg.style(name); ok {
			styles = append(styles, s)
		}
	}
	return e.extract(l.Text, styles)
}

func (e *Extractor) extract(text string, styles []Style) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if IsValidPath(trimmed) {
		return trimmed, true
	}
	for _, s := range styles {
		for _, prefix := range s.Prefixes {
			if !strings.HasPrefix(trimmed, prefix) {
				continue
			}
			candidate := strings.TrimSpace(strings.TrimPrefix(trimmed, prefix))
			if IsValidPath(candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}
