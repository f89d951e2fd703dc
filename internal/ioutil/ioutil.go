// Package ioutil holds the tiny file-read/file-write helpers cmd/athena
// needs. Not part of the core pipeline: pkg/pipeline and below never import
// this package, so the compiler core stays a pure function of source text.
package ioutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// ReadSource reads a .ath file, wrapping os errors with the path so CLI
// diagnostics can say exactly which file failed.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// WriteOutput writes generated YAML to path, creating parent directories as
// needed. An empty path is rejected by the caller before this is reached.
func WriteOutput(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// DefaultOutputPath derives "<name>.yml" from a "<name>.ath" source path.
func DefaultOutputPath(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	base := sourcePath[:len(sourcePath)-len(ext)]
	return base + ".yml"
}
