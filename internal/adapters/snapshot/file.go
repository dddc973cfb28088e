package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"eventbuddy/internal/domain"
)

type fileLoader struct {
	path string
}

// NewFileLoader returns a loader reading a JSON or YAML snapshot file. The
// format follows the extension: .yaml and .yml are YAML, anything else JSON.
func NewFileLoader(path string) domain.SnapshotLoader {
	return &fileLoader{path: path}
}

func (l *fileLoader) Load(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", l.path, err)
	}
	switch strings.ToLower(filepath.Ext(l.path)) {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	}
	return DecodeJSON(data)
}

// DecodeJSON parses a snapshot document. Missing collections decode as empty.
func DecodeJSON(data []byte) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	if len(bytes.TrimSpace(data)) == 0 {
		return &snap, nil
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return &snap, nil
}

// DecodeYAML is DecodeJSON for YAML documents.
func DecodeYAML(data []byte) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return &snap, nil
}
