package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventbuddy/internal/domain"
	"eventbuddy/internal/services"
)

func TestOpenLoader(t *testing.T) {
	ctx := context.Background()

	loader, closeFn, err := openLoader(ctx, "", false)
	require.NoError(t, err)
	assert.Nil(t, loader)
	closeFn()

	_, _, err = openLoader(ctx, "ftp://example.com/data.json", false)
	require.Error(t, err)

	loader, closeFn, err = openLoader(ctx, "https://example.com/data.json", false)
	require.NoError(t, err)
	assert.NotNil(t, loader)
	closeFn()
}

func TestOpenLoader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tags:
  - id: t1
    title: Work
events:
  - id: e1
    title: Kickoff
    status: geplant
    tagIds: [t1]
`), 0o600))

	loader, closeFn, err := openLoader(context.Background(), path, false)
	require.NoError(t, err)
	defer closeFn()

	planner := services.NewPlanner(nil)
	require.NoError(t, planner.Load(context.Background(), loader))
	assert.True(t, planner.Ready())
	assert.Equal(t, "Work", planner.GetTagTitle("t1"))
	events := planner.EventsForTag("t1")
	require.Len(t, events, 1)
	assert.Equal(t, "planned", string(events[0].Status))
}

func TestLoadSource_OpenFailureNotifies(t *testing.T) {
	planner := services.NewPlanner(nil)
	var got []domain.Notification
	planner.Subscribe(domain.NotifyError, func(n domain.Notification) { got = append(got, n) })

	err := loadSource(context.Background(), slog.New(slog.DiscardHandler), planner, "ftp://example.com/data.json", false, time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported data source")
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Message, "unsupported data source")
	assert.False(t, planner.Ready())
}

func TestLoadSource_EmptySourceIsReady(t *testing.T) {
	planner := services.NewPlanner(nil)
	ready := 0
	planner.Subscribe(domain.NotifyDataReady, func(domain.Notification) { ready++ })

	require.NoError(t, loadSource(context.Background(), slog.New(slog.DiscardHandler), planner, "", false, time.Second))
	assert.True(t, planner.Ready())
	assert.Equal(t, 1, ready)
}
