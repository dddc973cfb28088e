package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"eventbuddy/internal/adapters/snapshot"
	"eventbuddy/internal/domain"
	"eventbuddy/internal/repository/postgres"
)

// openLoader picks a snapshot loader for source. A nil loader means there is
// nothing to load. The returned close func is never nil.
func openLoader(ctx context.Context, source string, initSchema bool) (domain.SnapshotLoader, func(), error) {
	noop := func() {}
	switch {
	case source == "":
		return nil, noop, nil
	case strings.HasPrefix(source, "postgres://"), strings.HasPrefix(source, "postgresql://"):
		db, err := postgres.Open(ctx, source)
		if err != nil {
			return nil, noop, err
		}
		if initSchema {
			if err := postgres.EnsureSchema(ctx, db); err != nil {
				db.Close()
				return nil, noop, fmt.Errorf("ensure schema: %w", err)
			}
		}
		return postgres.NewSnapshotLoader(db), func() { db.Close() }, nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		client := &http.Client{Timeout: 30 * time.Second}
		return snapshot.NewHTTPLoader(client, source), noop, nil
	case strings.Contains(source, "://"):
		return nil, noop, fmt.Errorf("unsupported data source %q", source)
	}
	return snapshot.NewFileLoader(source), noop, nil
}
