package ical

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventbuddy/internal/domain"
)

type stubDirectory struct {
	participants map[string]*domain.Participant
	tags         map[string]string
}

func (d stubDirectory) GetParticipantByID(id string) (*domain.Participant, bool) {
	p, ok := d.participants[id]
	return p, ok
}

func (d stubDirectory) GetTagTitle(id string) string {
	if title, ok := d.tags[id]; ok {
		return title
	}
	return id
}

func newTestExporter() *Exporter {
	x := NewExporter(stubDirectory{
		participants: map[string]*domain.Participant{
			"p1": {ID: "p1", Name: "Ada", Email: "ada@example.com"},
			"p2": {ID: "p2", Name: "Grace"},
		},
		tags: map[string]string{"t1": "Work"},
	})
	x.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	return x
}

func TestExporter_Encode(t *testing.T) {
	events := []*domain.Event{
		{
			ID: "e1", Title: "Kickoff", Datetime: "2025-05-10T18:00", Location: "Office",
			Status: domain.StatusPlanned, TagIDs: []string{"t1", "t9"},
			Participants: []domain.ParticipantLink{
				{ParticipantID: "p1", Status: domain.ParticipationAccepted},
				{ParticipantID: "p2", Status: domain.ParticipationDeclined},
			},
		},
		{ID: "e2", Title: "Holiday", Datetime: "2025-06-01", Status: domain.StatusDone},
		{ID: "e3", Title: "Someday", Status: domain.StatusPlanned},
	}

	var buf bytes.Buffer
	require.NoError(t, newTestExporter().Encode(&buf, events))
	out := buf.String()

	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "PRODID:-//eventbuddy//EN")
	assert.Contains(t, out, "UID:e1@eventbuddy")
	assert.Contains(t, out, "DTSTART:20250510T180000Z")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20250601")
	assert.Contains(t, out, "CATEGORIES:Work")
	assert.Contains(t, out, "CATEGORIES:t9")
	assert.Contains(t, out, "mailto:ada@example.com")
	assert.NotContains(t, out, "Grace")
	assert.NotContains(t, out, "Someday")

	cal, err := ical.NewDecoder(strings.NewReader(out)).Decode()
	require.NoError(t, err)
	decoded := cal.Events()
	require.Len(t, decoded, 2)
	summary, err := decoded[0].Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Kickoff", summary)
	attendee := decoded[0].Props.Get(ical.PropAttendee)
	require.NotNil(t, attendee)
	assert.Equal(t, "ACCEPTED", attendee.Params.Get(ical.ParamParticipationStatus))
	assert.Equal(t, "Ada", attendee.Params.Get(ical.ParamCommonName))

	status, err := decoded[0].Props.Text(ical.PropStatus)
	require.NoError(t, err)
	assert.Equal(t, "TENTATIVE", status)
	assert.Nil(t, decoded[1].Props.Get(ical.PropStatus), "done events carry no STATUS")
	assert.Equal(t, 1, strings.Count(out, "STATUS:"))
}

func TestPartStat(t *testing.T) {
	assert.Equal(t, "ACCEPTED", partStat(domain.ParticipationAccepted))
	assert.Equal(t, "DECLINED", partStat(domain.ParticipationDeclined))
	assert.Equal(t, "NEEDS-ACTION", partStat(domain.ParticipationUndecided))
}
