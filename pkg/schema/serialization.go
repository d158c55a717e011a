package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a manifest from disk. The format follows the file
// extension: .yaml/.yml and .json are parsed as structured manifests,
// anything else as one pattern per line with blank lines skipped.
//
// The manifest is returned as parsed; callers decide when Validate runs.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read patterns file: %w", err)
	}

	var manifest Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &manifest); err != nil {
			return nil, fmt.Errorf("failed to parse patterns manifest: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &manifest); err != nil {
			return nil, fmt.Errorf("failed to parse patterns manifest: %w", err)
		}
	default:
		parsePlain(data, &manifest)
	}

	return &manifest, nil
}

// parsePlain fills a manifest from a line-oriented pattern list.
// CR is stripped so CRLF files behave like LF files.
func parsePlain(data []byte, manifest *Manifest) {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		manifest.Patterns = append(manifest.Patterns, line)
	}
}
