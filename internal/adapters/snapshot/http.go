package snapshot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"eventbuddy/internal/domain"
)

// maxSnapshotBytes bounds the body read from a remote snapshot.
const maxSnapshotBytes = 32 << 20

type httpLoader struct {
	client *http.Client
	url    string
}

// NewHTTPLoader returns a loader that fetches a snapshot document from url.
// YAML is decoded when the response says so; JSON otherwise.
func NewHTTPLoader(client *http.Client, url string) domain.SnapshotLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpLoader{client: client, url: url}
}

func (l *httpLoader) Load(ctx context.Context) (*domain.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml")
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("snapshot source returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSnapshotBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if strings.Contains(resp.Header.Get("Content-Type"), "yaml") {
		return DecodeYAML(body)
	}
	return DecodeJSON(body)
}
