// Package ical renders events as an iCalendar feed.
package ical

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"eventbuddy/internal/domain"
)

const productID = "-//eventbuddy//EN"

// Directory resolves the ids an event refers to.
type Directory interface {
	GetParticipantByID(id string) (*domain.Participant, bool)
	GetTagTitle(id string) string
}

// Exporter converts events to VEVENT components.
type Exporter struct {
	dir Directory
	now func() time.Time
}

// NewExporter returns an Exporter resolving names through dir.
func NewExporter(dir Directory) *Exporter {
	return &Exporter{dir: dir, now: time.Now}
}

// Calendar builds a calendar holding one VEVENT per dated event. Events whose
// datetime cannot be parsed are left out.
func (x *Exporter) Calendar(events []*domain.Event) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	stamp := x.now().UTC()
	for _, e := range events {
		if ve := x.toICal(e, stamp); ve != nil {
			cal.Children = append(cal.Children, ve)
		}
	}
	return cal
}

// Encode writes the calendar for events to w.
func (x *Exporter) Encode(w io.Writer, events []*domain.Event) error {
	if err := ical.NewEncoder(w).Encode(x.Calendar(events)); err != nil {
		return fmt.Errorf("failed to encode events to iCal format: %w", err)
	}
	return nil
}

func (x *Exporter) toICal(e *domain.Event, stamp time.Time) *ical.Component {
	start, ok := e.Start()
	if !ok {
		return nil
	}
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, e.ID+"@eventbuddy")
	ve.Props.SetText(ical.PropSummary, e.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	if len(strings.TrimSpace(e.Datetime)) == len("2006-01-02") {
		ve.Props.SetDate(ical.PropDateTimeStart, start)
	} else {
		ve.Props.SetDateTime(ical.PropDateTimeStart, start)
	}
	// VEVENT has no status for a finished event, so done events carry none.
	if e.Status == domain.StatusPlanned {
		ve.Props.SetText(ical.PropStatus, "TENTATIVE")
	}

	if e.Description != "" {
		ve.Props.SetText(ical.PropDescription, e.Description)
	}
	if e.Location != "" {
		ve.Props.SetText(ical.PropLocation, e.Location)
	}
	for _, id := range e.TagIDs {
		p := ical.NewProp(ical.PropCategories)
		p.SetText(x.dir.GetTagTitle(id))
		ve.Props.Add(p)
	}
	for _, l := range e.Participants {
		participant, ok := x.dir.GetParticipantByID(l.ParticipantID)
		if !ok || participant.Email == "" {
			continue
		}
		p := ical.NewProp(ical.PropAttendee)
		p.SetText(fmt.Sprintf("mailto:%s", participant.Email))
		p.Params.Set(ical.ParamCommonName, participant.Name)
		p.Params.Set(ical.ParamParticipationStatus, partStat(l.Status))
		ve.Props.Add(p)
	}
	return ve
}

func partStat(s domain.ParticipationStatus) string {
	switch s {
	case domain.ParticipationAccepted:
		return "ACCEPTED"
	case domain.ParticipationDeclined:
		return "DECLINED"
	}
	return "NEEDS-ACTION"
}
