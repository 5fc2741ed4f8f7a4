package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// SessionStore persists whole GameState snapshots. The engine never
// talks to storage directly; the service loads a snapshot, runs pure
// engine steps, and saves the replacement.
type SessionStore interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	ListAutoAdvance(ctx context.Context) ([]string, error)
}

// SettlementAuditor records settlement reports in an append-only log.
// Auditing is best-effort: a failed write is logged, never rolled into
// the settlement outcome.
type SettlementAuditor interface {
	Record(ctx context.Context, sessionID string, res SettlementResult) error
}

// PromptContext is everything the commentary generator may look at.
type PromptContext struct {
	SessionID   string             `json:"session_id"`
	Day         int                `json:"day"`
	Stars       int                `json:"stars"`
	Level       int                `json:"level"`
	Coins       int64              `json:"coins"`
	Mode        Mode               `json:"mode"`
	Allocations []AssetAllocation  `json:"allocations"`
	Recent      []PerformancePoint `json:"recent"`
	Settlement  *SettlementResult  `json:"settlement,omitempty"`
}

// Commentary turns a settlement into a line of advisor chatter. It is
// pure decoration: settlement math is committed before it is invoked,
// and any failure falls back to a canned line.
type Commentary interface {
	Generate(ctx context.Context, pc PromptContext) (string, error)
}

const fallbackCommentary = "The skies are calm today. Check how each guardian pulled their weight, then plan tomorrow's watch!"

// Service drives one player action at a time against the stores. It is
// constructed per process and carries no game state of its own, so any
// number of sessions can share it.
type Service struct {
	engine   *Engine
	sessions SessionStore
	badges   AchievementStore
	audit    SettlementAuditor
	advisor  Commentary
	log      *slog.Logger

	// CommentaryBudget caps how long a settlement response waits for
	// the advisor before using the fallback line.
	CommentaryBudget time.Duration
}

func NewService(engine *Engine, sessions SessionStore, badges AchievementStore, audit SettlementAuditor, advisor Commentary, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		engine:           engine,
		sessions:         sessions,
		badges:           badges,
		audit:            audit,
		advisor:          advisor,
		log:              logger,
		CommentaryBudget: 3 * time.Second,
	}
}

func (s *Service) Engine() *Engine {
	return s.engine
}

// ApplyResult reports everything an allocation change set in motion.
type ApplyResult struct {
	State       GameState          `json:"state"`
	Completed   []CompletedMission `json:"completed_missions,omitempty"`
	NewBadges   []string           `json:"new_badges,omitempty"`
	Offered     []Card             `json:"offered_cards,omitempty"`
	LevelChange LevelChange        `json:"level_change"`
}

// DayResult is the settlement outcome plus everything that cascaded
// from it.
type DayResult struct {
	Settlement  SettlementResult   `json:"settlement"`
	Commentary  string             `json:"commentary"`
	State       GameState          `json:"state"`
	Completed   []CompletedMission `json:"completed_missions,omitempty"`
	NewBadges   []string           `json:"new_badges,omitempty"`
	Offered     []Card             `json:"offered_cards,omitempty"`
	LevelChange LevelChange        `json:"level_change"`
}

// CreateSession starts a fresh game. The init trigger is rolled for
// symmetry with the other actions but its odds are zero: nobody gets a
// card for just showing up.
func (s *Service) CreateSession(ctx context.Context, mode Mode, autoAdvance bool) (*Session, error) {
	state := s.engine.NewGameState(mode)
	state, _ = s.engine.CheckForNewCards(state, TriggerInit)
	now := time.Now().UTC()
	sess := &Session{
		ID:          uuid.NewString(),
		AutoAdvance: autoAdvance,
		State:       state,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	s.log.Info("session created", "session_id", sess.ID, "mode", mode, "auto_advance", autoAdvance)
	return sess, nil
}

func (s *Service) Session(ctx context.Context, id string) (*Session, error) {
	return s.sessions.Get(ctx, id)
}

// ApplyAllocation replaces the player's allocation vector, then runs
// the cascade a portfolio change triggers: mission completion checks,
// badge evaluation, and the apply-action card roll. An unbalanced or
// unknown-asset vector changes nothing.
func (s *Service) ApplyAllocation(ctx context.Context, sessionID string, inputs []AllocationInput) (ApplyResult, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return ApplyResult{}, err
	}
	state := sess.State

	allocs := make([]AssetAllocation, len(state.Allocations))
	copy(allocs, state.Allocations)
	byID := make(map[string]int, len(allocs))
	for i, a := range allocs {
		byID[a.ID] = i
	}
	for _, in := range inputs {
		i, ok := byID[in.ID]
		if !ok {
			return ApplyResult{}, ErrUnknownAsset
		}
		if in.Allocation < 0 || in.Allocation > 100 {
			return ApplyResult{}, ErrAllocationUnbalanced
		}
		allocs[i].Allocation = in.Allocation
	}
	if !AllocationBalanced(allocs) {
		return ApplyResult{}, ErrAllocationUnbalanced
	}

	oldStars := state.Stars
	state.Allocations = allocs
	state, completed := s.engine.UpdateActiveCards(state)
	state, offered := s.engine.CheckForNewCards(state, TriggerApply)

	sess.State = state
	sess.UpdatedAt = time.Now().UTC()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return ApplyResult{}, err
	}
	badges := s.evaluateBadges(ctx, sessionID, state)
	return ApplyResult{
		State:       state,
		Completed:   completed,
		NewBadges:   badges,
		Offered:     offered,
		LevelChange: CheckLevelUp(s.engine.cat.Levels, oldStars, state.Stars),
	}, nil
}

// AdvanceDay runs the daily settlement and everything downstream of it.
// The new snapshot is saved before the advisor is consulted, so a slow
// or failing commentary call can never re-run or roll back settlement.
func (s *Service) AdvanceDay(ctx context.Context, sessionID string) (DayResult, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return DayResult{}, err
	}
	oldStars := sess.State.Stars

	res, state, err := s.engine.SettleDay(sess.State)
	if err != nil {
		return DayResult{}, err
	}
	state, completed := s.engine.UpdateActiveCards(state)
	state, offered := s.engine.CheckForNewCards(state, TriggerNextDay)

	sess.State = state
	sess.UpdatedAt = time.Now().UTC()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return DayResult{}, err
	}
	badges := s.evaluateBadges(ctx, sessionID, state)
	if s.audit != nil {
		if err := s.audit.Record(ctx, sessionID, res); err != nil {
			s.log.Warn("settlement audit failed", "session_id", sessionID, "err", err)
		}
	}

	out := DayResult{
		Settlement:  res,
		Commentary:  s.commentary(ctx, sess, res),
		State:       state,
		Completed:   completed,
		NewBadges:   badges,
		Offered:     offered,
		LevelChange: CheckLevelUp(s.engine.cat.Levels, oldStars, state.Stars),
	}
	s.log.Info("day settled",
		"session_id", sessionID,
		"day", res.Day,
		"portfolio_return", res.PortfolioReturn,
		"coin_delta", res.CoinDelta,
	)
	return out, nil
}

// evaluateBadges runs achievement evaluation for a snapshot that has
// already been saved. Unlock writes are idempotent, so a failed write
// is only logged; the next qualifying action records it.
func (s *Service) evaluateBadges(ctx context.Context, sessionID string, state GameState) []string {
	badges, err := s.engine.EvaluateAchievements(ctx, s.badges, sessionID, state.Allocations, state.Stars)
	if err != nil {
		s.log.Warn("achievement evaluation failed", "session_id", sessionID, "err", err)
	}
	return badges
}

func (s *Service) commentary(ctx context.Context, sess *Session, res SettlementResult) string {
	if s.advisor == nil {
		return fallbackCommentary
	}
	cctx, cancel := context.WithTimeout(ctx, s.CommentaryBudget)
	defer cancel()
	line, err := s.advisor.Generate(cctx, PromptContext{
		SessionID:   sess.ID,
		Day:         res.Day,
		Stars:       sess.State.Stars,
		Level:       sess.State.Level,
		Coins:       sess.State.Coins,
		Mode:        sess.State.Mode,
		Allocations: sess.State.Allocations,
		Recent:      sess.State.History,
		Settlement:  &res,
	})
	if err != nil || line == "" {
		if err != nil {
			s.log.Warn("advisor unavailable, using fallback", "session_id", sess.ID, "err", err)
		}
		return fallbackCommentary
	}
	return line
}

// AcceptCard answers a pending card with yes.
func (s *Service) AcceptCard(ctx context.Context, sessionID, instanceID string) (*Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	state, err := s.engine.AcceptCard(sess.State, instanceID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	sess.State = state
	sess.UpdatedAt = time.Now().UTC()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// DeclineCard answers a pending card with no. Event cards cannot really
// be refused: the market does not care, so a declined event is accepted
// instead and the returned status says so. That mirrors the game's
// original dialog, where the decline button on an event only dismisses
// the popup.
func (s *Service) DeclineCard(ctx context.Context, sessionID, instanceID string) (*Session, CardStatus, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}
	for _, c := range sess.State.PendingCards {
		if c.InstanceID == instanceID && c.Kind == CardEvent {
			sess, err = s.AcceptCard(ctx, sessionID, instanceID)
			return sess, StatusActive, err
		}
	}
	state, err := s.engine.DeclineCard(sess.State, instanceID)
	if err != nil {
		return nil, "", err
	}
	sess.State = state
	sess.UpdatedAt = time.Now().UTC()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, "", err
	}
	return sess, StatusDeclined, nil
}

// TriggerCard offers a specific catalog card, for the debug panel. A
// bad id comes back ErrUnknownCatalogID and no card is created.
func (s *Service) TriggerCard(ctx context.Context, sessionID, refID string) (Card, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return Card{}, err
	}
	state, card, err := s.engine.OfferCard(sess.State, refID)
	if err != nil {
		return Card{}, err
	}
	sess.State = state
	sess.UpdatedAt = time.Now().UTC()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return Card{}, err
	}
	return card, nil
}

// Achievements returns the badge summary for a session.
func (s *Service) Achievements(ctx context.Context, sessionID string) (AchievementSummary, error) {
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return AchievementSummary{}, err
	}
	return s.badges.Summary(ctx, sessionID)
}

// LevelProgress reports the session's position on the level ladder.
func (s *Service) LevelProgress(ctx context.Context, sessionID string) (LevelProgress, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return LevelProgress{}, err
	}
	return Progress(s.engine.cat.Levels, sess.State.Stars), nil
}

// AutoAdvanceAll settles one day for every session flagged for
// automatic play. Failures are logged per session and do not stop the
// sweep; it returns how many sessions settled cleanly.
func (s *Service) AutoAdvanceAll(ctx context.Context) (int, error) {
	ids, err := s.sessions.ListAutoAdvance(ctx)
	if err != nil {
		return 0, err
	}
	settled := 0
	for _, id := range ids {
		if _, err := s.AdvanceDay(ctx, id); err != nil {
			s.log.Warn("auto advance skipped", "session_id", id, "err", err)
			continue
		}
		settled++
	}
	return settled, nil
}
