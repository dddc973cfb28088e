package snapshot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"eventbuddy/internal/domain"
	"eventbuddy/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonSnapshot = `{
  "events": [
    {"id": "e1", "title": "Kickoff", "datetime": "2025-05-10T18:00", "status": "planned",
     "tagIds": ["t1"], "participants": [{"participantId": "p1", "status": "accepted"}]}
  ],
  "participants": [{"id": "p1", "name": "Ada", "email": "ada@example.com"}],
  "tags": [{"id": "t1", "title": "Work"}]
}`

const yamlSnapshot = `
events:
  - id: e1
    title: Kickoff
    datetime: "2025-05-10T18:00"
    status: planned
    tagIds: [t1]
    participants:
      - participantId: p1
        status: accepted
participants:
  - id: p1
    name: Ada
    email: ada@example.com
tags:
  - id: t1
    title: Work
`

func assertFixture(t *testing.T, snap *domain.Snapshot) {
	t.Helper()
	require.Len(t, snap.Events, 1)
	require.Len(t, snap.Participants, 1)
	require.Len(t, snap.Tags, 1)
	ev := snap.Events[0]
	assert.Equal(t, "Kickoff", ev.Title)
	assert.Equal(t, domain.StatusPlanned, ev.Status)
	assert.Equal(t, []string{"t1"}, ev.TagIDs)
	assert.Equal(t, []domain.ParticipantLink{{ParticipantID: "p1", Status: domain.ParticipationAccepted}}, ev.Participants)
	assert.Equal(t, "ada@example.com", snap.Participants[0].Email)
	assert.Equal(t, "Work", snap.Tags[0].Title)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileLoader(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "data.json", jsonSnapshot},
		{"yaml", "data.yaml", yamlSnapshot},
		{"yml", "data.yml", yamlSnapshot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := NewFileLoader(writeFile(t, tt.file, tt.content)).Load(context.Background())
			require.NoError(t, err)
			assertFixture(t, snap)
		})
	}
}

func TestFileLoader_MissingCollectionsAreEmpty(t *testing.T) {
	snap, err := NewFileLoader(writeFile(t, "data.json", `{"tags":[{"id":"t1","title":"Work"}]}`)).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Events)
	assert.Empty(t, snap.Participants)
	assert.Len(t, snap.Tags, 1)
}

func TestFileLoader_Errors(t *testing.T) {
	_, err := NewFileLoader(filepath.Join(t.TempDir(), "missing.json")).Load(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewFileLoader(writeFile(t, "broken.json", `{"events": [`)).Load(context.Background())
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFileLoader(writeFile(t, "data.json", jsonSnapshot)).Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestHTTPLoader(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"json", "application/json", jsonSnapshot},
		{"yaml", "application/yaml", yamlSnapshot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "/json/data.json", r.URL.Path)
				w.Header().Set("Content-Type", tt.contentType)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			snap, err := NewHTTPLoader(srv.Client(), srv.URL+"/json/data.json").Load(context.Background())
			require.NoError(t, err)
			assertFixture(t, snap)
		})
	}
}

func TestHTTPLoader_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTPLoader(nil, srv.URL).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

// legacySnapshot is the layout of the older data files: event tags under
// "tags" and German status labels.
const legacySnapshot = `{
  "participants": [{"id": "p1", "name": "Ada", "email": "ada@example.com"}],
  "tags": [{"id": "t1", "title": "Work"}],
  "events": [
    {"id": "e1", "title": "Kickoff", "datetime": "2025-05-10T18:00", "status": "geplant",
     "tags": ["t1"], "participants": [{"participantId": "p1", "status": "accepted"}]}
  ]
}`

func TestFileLoader_LegacyTagsKey(t *testing.T) {
	snap, err := NewFileLoader(writeFile(t, "data.json", legacySnapshot)).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Events, 1)
	assert.Equal(t, []string{"t1"}, snap.Events[0].TagIDs)

	planner := services.NewPlanner(nil)
	require.NoError(t, planner.LoadSnapshot(*snap))
	events := planner.EventsForTag("t1")
	require.Len(t, events, 1)
	assert.Equal(t, domain.StatusPlanned, events[0].Status)

	err = planner.DeleteTag("t1")
	require.ErrorIs(t, err, domain.ErrReferenced)
	_, ok := planner.GetTagByID("t1")
	assert.True(t, ok)
}
