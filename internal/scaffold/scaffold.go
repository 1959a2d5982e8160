package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/weaver/internal/ux"
)

var configTemplate = `log-folder: .weaver/logs

comment-styles:
  - name: hash
    prefixes: ["# File:", "#"]
  - name: slash
    prefixes: ["// File:", "//"]
  - name: dash
    prefixes: ["-- File:", "--"]
  - name: html
    prefixes: ["<!-- File:", "<!--"]

file-types:
  - name: python
    extensions: [".py"]
    comment-styles: [hash]
  - name: javascript
    extensions: [".js", ".jsx"]
    comment-styles: [slash]
  - name: typescript
    extensions: [".ts", ".tsx"]
    comment-styles: [slash]
  - name: go
    extensions: [".go"]
    comment-styles: [slash]
  - name: shell
    extensions: [".sh", ".bash"]
    comment-styles: [hash]
  - name: yaml
    extensions: [".yaml", ".yml"]
    comment-styles: [hash]
  - name: sql
    extensions: [".sql"]
    comment-styles: [dash]
  - name: html
    extensions: [".html", ".xml"]
    comment-styles: [html]
`

// Init creates a new .weaver/ directory with a config template and an
// empty log folder.
func Init(targetDir string) error {
	weaverDir := filepath.Join(targetDir, ".weaver")
	if _, err := os.Stat(weaverDir); err == nil {
		return fmt.Errorf(".weaver directory already exists in %s", targetDir)
	}

	logsDir := filepath.Join(weaverDir, "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("creating .weaver/logs: %w", err)
	}

	configPath := filepath.Join(weaverDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config.yaml: %w", err)
	}

	gitignorePath := filepath.Join(weaverDir, ".gitignore")
	if err := os.WriteFile(gitignorePath, []byte("logs/\n"), 0644); err != nil {
		return fmt.Errorf("writing .weaver/.gitignore: %w", err)
	}

	fmt.Printf("\n%s%s✓ Initialized .weaver/ directory%s\n\n", ux.Bold, ux.Green, ux.Reset)
	fmt.Printf("  Created:\n")
	fmt.Printf("    %s.weaver/config.yaml%s — comment styles and file types\n", ux.Cyan, ux.Reset)
	fmt.Printf("    %s.weaver/logs/%s       — backups and instruction logs\n\n", ux.Cyan, ux.Reset)
	fmt.Printf("  Next steps:\n")
	fmt.Printf("    1. Adjust %s.weaver/config.yaml%s for your languages\n", ux.Cyan, ux.Reset)
	fmt.Printf("    2. Run %sweaver parse <transcript>%s on a saved AI response\n", ux.Cyan, ux.Reset)
	fmt.Printf("    3. Or %sweaver watch <transcript>%s to reparse on every save\n\n", ux.Cyan, ux.Reset)

	return nil
}
