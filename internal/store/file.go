package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"skyland/internal/game"
)

// File persists each session as a pretty-printed JSON file in a
// directory, with badge unlocks in a sibling file per session. Good
// enough for a single classroom machine; anything multi-writer should
// use Postgres.
type File struct {
	dir string
	mu  sync.Mutex
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &File{dir: dir}, nil
}

func (f *File) sessionPath(id string) string {
	return filepath.Join(f.dir, id+".json")
}

func (f *File) badgesPath(id string) string {
	return filepath.Join(f.dir, id+".badges.json")
}

func (f *File) Create(_ context.Context, s *game.Session) error {
	return f.write(f.sessionPath(s.ID), s)
}

func (f *File) Get(_ context.Context, id string) (*game.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, err := os.ReadFile(f.sessionPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, game.ErrSessionNotFound
		}
		return nil, err
	}
	var s game.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (f *File) Save(_ context.Context, s *game.Session) error {
	if _, err := os.Stat(f.sessionPath(s.ID)); os.IsNotExist(err) {
		return game.ErrSessionNotFound
	}
	return f.write(f.sessionPath(s.ID), s)
}

func (f *File) ListAutoAdvance(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if filepath.Ext(name) != ".json" || len(name) <= len(".json") {
			continue
		}
		id := name[:len(name)-len(".json")]
		if ext := filepath.Ext(id); ext == ".badges" || ext == ".settlements" {
			continue
		}
		s, err := f.Get(ctx, id)
		if err != nil {
			continue
		}
		if s.AutoAdvance {
			out = append(out, s.ID)
		}
	}
	return out, nil
}

func (f *File) HasAchievement(ctx context.Context, sessionID, achievementID string) (bool, error) {
	badges, err := f.readBadges(sessionID)
	if err != nil {
		return false, err
	}
	for _, b := range badges {
		if b.AchievementID == achievementID {
			return true, nil
		}
	}
	return false, nil
}

func (f *File) Achieve(ctx context.Context, sessionID, achievementID string, starRating int, trophyGrade string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	badges, err := f.readBadgesLocked(sessionID)
	if err != nil {
		return err
	}
	for _, b := range badges {
		if b.AchievementID == achievementID {
			return nil
		}
	}
	badges = append(badges, game.UserAchievement{
		AchievementID: achievementID,
		AchievedAt:    timeNow(),
		StarRating:    starRating,
		TrophyGrade:   trophyGrade,
	})
	return f.writeLocked(f.badgesPath(sessionID), badges)
}

func (f *File) Summary(ctx context.Context, sessionID string) (game.AchievementSummary, error) {
	out := game.AchievementSummary{TrophyCounts: map[string]int{}}
	badges, err := f.readBadges(sessionID)
	if err != nil {
		return out, err
	}
	for _, b := range badges {
		out.Unlocked = append(out.Unlocked, b)
		out.TotalStars += b.StarRating
		out.TrophyCounts[b.TrophyGrade]++
	}
	return out, nil
}

func (f *File) auditPath(id string) string {
	return filepath.Join(f.dir, id+".settlements.json")
}

func (f *File) Record(_ context.Context, sessionID string, res game.SettlementResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var log []game.SettlementResult
	raw, err := os.ReadFile(f.auditPath(sessionID))
	if err == nil {
		if err := json.Unmarshal(raw, &log); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}
	log = append(log, res)
	return f.writeLocked(f.auditPath(sessionID), log)
}

func (f *File) readBadges(sessionID string) ([]game.UserAchievement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readBadgesLocked(sessionID)
}

func (f *File) readBadgesLocked(sessionID string) ([]game.UserAchievement, error) {
	raw, err := os.ReadFile(f.badgesPath(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []game.UserAchievement
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *File) write(path string, v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writeLocked(path, v)
}

func (f *File) writeLocked(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}
