package history

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/chargehive/chargehive-client/internal/models"
)

// Lister is the slice of the API client the history view needs.
type Lister interface {
	ListSessions(ctx context.Context) ([]models.Session, error)
}

// Entry is one session paired with its status as of the fetch. The
// status is a pure projection of the session window onto the clock;
// re-deriving it later with a fresh timestamp is always safe.
type Entry struct {
	Session models.Session
	Status  models.SessionStatus
}

// History fetches and orders the user's booking history.
type History struct {
	api    Lister
	logger *zap.Logger
	now    func() time.Time
}

func New(api Lister, logger *zap.Logger) *History {
	return &History{api: api, logger: logger, now: time.Now}
}

// Fetch returns all sessions newest-first with derived statuses.
func (h *History) Fetch(ctx context.Context) ([]Entry, error) {
	sessions, err := h.api.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	return Project(sessions, h.now()), nil
}

// Project orders sessions newest-first and annotates each with its
// status at now. Sessions sharing a creation timestamp keep their input
// order. Pure: the input slice is not modified.
func Project(sessions []models.Session, now time.Time) []Entry {
	ordered := make([]models.Session, len(sessions))
	copy(ordered, sessions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	entries := make([]Entry, 0, len(ordered))
	for i := range ordered {
		entries = append(entries, Entry{
			Session: ordered[i],
			Status:  ordered[i].StatusAt(now),
		})
	}
	return entries
}

// Active returns only the entries whose window covers the fetch time.
func Active(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Status == models.SessionActive {
			out = append(out, e)
		}
	}
	return out
}
