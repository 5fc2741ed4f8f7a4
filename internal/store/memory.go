package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"skyland/internal/game"
)

func timeNow() time.Time {
	return time.Now().UTC()
}

// Memory holds everything in maps. It backs tests and zero-config demo
// runs; nothing survives a restart.
type Memory struct {
	mu       sync.Mutex
	sessions map[string]game.Session
	badges   map[string][]game.UserAchievement
	audits   map[string][]game.SettlementResult
}

func NewMemory() *Memory {
	return &Memory{
		sessions: map[string]game.Session{},
		badges:   map[string][]game.UserAchievement{},
		audits:   map[string][]game.SettlementResult{},
	}
}

func (m *Memory) Create(_ context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*game.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, game.ErrSessionNotFound
	}
	out := s
	return &out, nil
}

func (m *Memory) Save(_ context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; !ok {
		return game.ErrSessionNotFound
	}
	m.sessions[s.ID] = *s
	return nil
}

func (m *Memory) ListAutoAdvance(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for id, s := range m.sessions {
		if s.AutoAdvance {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *Memory) HasAchievement(_ context.Context, sessionID, achievementID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.badges[sessionID] {
		if b.AchievementID == achievementID {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) Achieve(_ context.Context, sessionID, achievementID string, starRating int, trophyGrade string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.badges[sessionID] {
		if b.AchievementID == achievementID {
			return nil
		}
	}
	m.badges[sessionID] = append(m.badges[sessionID], game.UserAchievement{
		AchievementID: achievementID,
		AchievedAt:    timeNow(),
		StarRating:    starRating,
		TrophyGrade:   trophyGrade,
	})
	return nil
}

func (m *Memory) Summary(_ context.Context, sessionID string) (game.AchievementSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := game.AchievementSummary{TrophyCounts: map[string]int{}}
	for _, b := range m.badges[sessionID] {
		out.Unlocked = append(out.Unlocked, b)
		out.TotalStars += b.StarRating
		out.TrophyCounts[b.TrophyGrade]++
	}
	return out, nil
}

func (m *Memory) Record(_ context.Context, sessionID string, res game.SettlementResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.audits[sessionID] = append(m.audits[sessionID], res)
	return nil
}

// Audits returns the recorded settlement reports for a session.
func (m *Memory) Audits(sessionID string) []game.SettlementResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]game.SettlementResult(nil), m.audits[sessionID]...)
}
