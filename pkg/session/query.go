package session

import (
	"time"

	"golang.org/x/text/search"
)

// Temporal selects sessions by their position relative to now.
type Temporal string

const (
	// TemporalAll applies no time predicate. It is the zero value.
	TemporalAll Temporal = ""
	// TemporalUpcoming matches sessions that are stored active and
	// scheduled in the future.
	TemporalUpcoming Temporal = "upcoming"
	// TemporalPast matches sessions scheduled before now, regardless of
	// stored status: a cancelled session whose time has passed is still
	// "past".
	TemporalPast Temporal = "past"
)

// Filter is the configuration for ListSessions. All supplied predicates are
// ANDed; zero values apply no constraint. Temporal and Status are independent
// predicates with no precedence between them.
type Filter struct {
	// Text is a case-insensitive substring matched against title, sport
	// or venue.
	Text string
	// Sport is an exact-match sport name.
	Sport string
	// Temporal is one of TemporalAll, TemporalUpcoming, TemporalPast.
	Temporal Temporal
	// Status is matched against the derived display status.
	Status Status
	// CreatorID matches sessions created by the given participant.
	CreatorID string
	// ParticipantID matches sessions the given participant has joined.
	ParticipantID string
}

func (f Filter) matches(sess *Session, now time.Time, matcher *search.Matcher) bool {
	if f.Text != "" && !matchesText(sess, f.Text, matcher) {
		return false
	}
	if f.Sport != "" && sess.Sport != f.Sport {
		return false
	}

	switch f.Temporal {
	case TemporalUpcoming:
		if sess.Status != StatusActive || !sess.ScheduledAt.After(now) {
			return false
		}
	case TemporalPast:
		if !sess.ScheduledAt.Before(now) {
			return false
		}
	}

	if f.Status != "" && sess.DerivedStatus(now) != f.Status {
		return false
	}
	if f.CreatorID != "" && sess.CreatorID != f.CreatorID {
		return false
	}
	if f.ParticipantID != "" && !sess.HasParticipant(f.ParticipantID) {
		return false
	}

	return true
}

func matchesText(sess *Session, text string, matcher *search.Matcher) bool {
	for _, field := range []string{sess.Title, sess.Sport, sess.Venue} {
		if start, _ := matcher.IndexString(field, text); start >= 0 {
			return true
		}
	}
	return false
}
