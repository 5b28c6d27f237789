package fixtures

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/sportkit/pkg/session"
)

// Set is a collection of demo sessions parsed from YAML.
type Set struct {
	Sessions []SessionFixture `yaml:"sessions"`
}

// SessionFixture describes one demo session. A non-empty CancelReason means
// the session is cancelled by its creator after the joins are replayed.
type SessionFixture struct {
	Title         string    `yaml:"title"`
	Sport         string    `yaml:"sport"`
	Venue         string    `yaml:"venue"`
	TeamA         string    `yaml:"team_a"`
	TeamB         string    `yaml:"team_b"`
	ScheduledAt   time.Time `yaml:"scheduled_at"`
	CapacityTotal int       `yaml:"capacity_total"`
	Creator       string    `yaml:"creator"`
	Participants  []string  `yaml:"participants"`
	CancelReason  string    `yaml:"cancel_reason"`
}

// Parse decodes a fixture set from YAML.
func Parse(data []byte) (Set, error) {
	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return Set{}, fmt.Errorf("parse fixtures: %w", err)
	}
	return set, nil
}

// ParseFile decodes a fixture set from a YAML file.
func ParseFile(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("read fixtures: %w", err)
	}
	return Parse(data)
}

// seedLead is how far before a fixture's scheduled time the replay clock is
// positioned, so creation and joins pass the future-schedule checks even for
// demo sessions whose scheduled time is already in the past.
const seedLead = 24 * time.Hour

// Seed replays the fixture set into the store strictly through the service
// operations: every session is created, joined and cancelled exactly the way
// production callers would do it, with a replay clock positioned shortly
// before each session's scheduled time. The store ends up indistinguishable
// from one populated by real traffic.
func Seed(ctx context.Context, store session.Store, set Set) error {
	clk := &replayClock{}
	svc := session.NewService(
		session.WithStore(store),
		session.WithClock(clk.Now),
	)

	for i, f := range set.Sessions {
		clk.Set(f.ScheduledAt.Add(-seedLead))

		created, err := svc.CreateSession(ctx, session.CreateSessionParams{
			Title:         f.Title,
			Sport:         f.Sport,
			Venue:         f.Venue,
			TeamA:         f.TeamA,
			TeamB:         f.TeamB,
			ScheduledAt:   f.ScheduledAt,
			CapacityTotal: f.CapacityTotal,
			CreatorID:     f.Creator,
		})
		if err != nil {
			return fmt.Errorf("seed fixture %d (%s): %w", i, f.Title, err)
		}

		for _, participant := range f.Participants {
			if _, err := svc.JoinSession(ctx, created.Session.ID, participant); err != nil {
				return fmt.Errorf("seed fixture %d (%s): join %s: %w", i, f.Title, participant, err)
			}
		}

		if f.CancelReason != "" {
			if _, err := svc.CancelSession(ctx, created.Session.ID, f.Creator, f.CancelReason); err != nil {
				return fmt.Errorf("seed fixture %d (%s): cancel: %w", i, f.Title, err)
			}
		}
	}

	return nil
}

// replayClock is a settable time source for fixture replay.
type replayClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *replayClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *replayClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}
