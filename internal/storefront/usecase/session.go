package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/goflightstore/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goflightstore/internal/storefront/airport"
	"github.com/shandysiswandi/goflightstore/internal/storefront/criteria"
	"github.com/shandysiswandi/goflightstore/internal/storefront/entity"
	"github.com/shandysiswandi/goflightstore/internal/storefront/results"
	"github.com/shandysiswandi/goflightstore/internal/storefront/selection"
)

const DefaultSessionTTL = 30 * time.Minute

var ErrSessionNotFound = pkgerror.NewNotFound("session not found or expired")

// Session is everything one shopper carries between pages. Owner scopes the
// recent airport lists and may outlive the session.
type Session struct {
	ID         string
	Owner      string
	CreatedAt  time.Time
	Builder    *criteria.Builder
	View       *results.View
	Selection  *selection.Context
	suggesters map[entity.FieldKind]*airport.Suggester
}

func (s *Session) Suggester(kind entity.FieldKind) (*airport.Suggester, bool) {
	sg, ok := s.suggesters[kind]
	return sg, ok
}

func (s *Session) close() {
	s.View.Reset()
	for _, sg := range s.suggesters {
		sg.Close()
	}
}

// CreateSession starts a session. A blank clientID makes the session its own
// recency owner.
func (u *Usecase) CreateSession(ctx context.Context, clientID string) *Session {
	id := u.uuid.Generate()
	owner := strings.TrimSpace(clientID)
	if owner == "" {
		owner = id
	}

	s := &Session{
		ID:         id,
		Owner:      owner,
		CreatedAt:  u.clock.Now(),
		Builder:    criteria.NewBuilder(),
		View:       results.NewView(),
		Selection:  selection.New(),
		suggesters: make(map[entity.FieldKind]*airport.Suggester, 2),
	}
	for _, kind := range []entity.FieldKind{entity.FieldOrigin, entity.FieldDestination} {
		s.suggesters[kind] = airport.NewSuggester(u.directory, u.clock, u.debounceDelay, owner, kind)
	}

	u.sessions.Set(id, s, u.ttl())
	slog.InfoContext(ctx, "session created", "session_id", id, "owner", owner)
	return s
}

// Session looks up a live session and extends its lifetime.
func (u *Usecase) Session(id string) (*Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrSessionNotFound
	}
	s, ok := u.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	u.sessions.Touch(id, u.ttl())
	return s, nil
}

func (u *Usecase) EndSession(ctx context.Context, id string) error {
	s, err := u.Session(id)
	if err != nil {
		return err
	}
	s.close()
	u.sessions.Delete(s.ID)
	slog.InfoContext(ctx, "session ended", "session_id", s.ID)
	return nil
}

// SweepSessions drops expired sessions. It runs on the module's scheduler.
func (u *Usecase) SweepSessions(ctx context.Context) {
	if n := u.sessions.Sweep(); n > 0 {
		slog.DebugContext(ctx, "expired sessions swept", "count", n)
	}
}

func (u *Usecase) ttl() time.Duration {
	if u.sessionTTL <= 0 {
		return DefaultSessionTTL
	}
	return u.sessionTTL
}
