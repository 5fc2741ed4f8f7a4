package game

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

type fakeSessions struct {
	byID     map[string]Session
	failSave bool
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{byID: map[string]Session{}}
}

func (f *fakeSessions) Create(_ context.Context, s *Session) error {
	f.byID[s.ID] = *s
	return nil
}

func (f *fakeSessions) Get(_ context.Context, id string) (*Session, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	out := s
	return &out, nil
}

func (f *fakeSessions) Save(_ context.Context, s *Session) error {
	if f.failSave {
		return errors.New("session store down")
	}
	if _, ok := f.byID[s.ID]; !ok {
		return ErrSessionNotFound
	}
	f.byID[s.ID] = *s
	return nil
}

func (f *fakeSessions) ListAutoAdvance(_ context.Context) ([]string, error) {
	var out []string
	for id, s := range f.byID {
		if s.AutoAdvance {
			out = append(out, id)
		}
	}
	return out, nil
}

type fakeAuditor struct {
	records []SettlementResult
	fail    bool
}

func (f *fakeAuditor) Record(_ context.Context, _ string, res SettlementResult) error {
	if f.fail {
		return errors.New("audit store down")
	}
	f.records = append(f.records, res)
	return nil
}

type fakeAdvisor struct {
	line string
	err  error
}

func (f *fakeAdvisor) Generate(_ context.Context, _ PromptContext) (string, error) {
	return f.line, f.err
}

func testService(t *testing.T, advisor Commentary) (*Service, *fakeSessions, *fakeBadgeStore, *fakeAuditor) {
	t.Helper()
	e := testEngine(t, nil, ReturnSimulated)
	sessions := newFakeSessions()
	badges := newFakeBadgeStore()
	audit := &fakeAuditor{}
	svc := NewService(e, sessions, badges, audit, advisor, slog.Default())
	return svc, sessions, badges, audit
}

func TestCreateSessionStartsAtDayOne(t *testing.T) {
	svc, _, _, _ := testService(t, nil)
	sess, err := svc.CreateSession(context.Background(), ModeNormal, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	st := sess.State
	if st.CurrentDay != 1 || st.Coins != StartingCoins || st.Stars != 0 {
		t.Fatalf("fresh state wrong: day=%d coins=%d stars=%d", st.CurrentDay, st.Coins, st.Stars)
	}
	if len(st.PendingCards) != 0 {
		t.Fatalf("fresh session has pending cards: %+v", st.PendingCards)
	}
	if AllocationTotal(st.Allocations) != 0 {
		t.Fatalf("fresh session not all-zero allocated")
	}
}

func TestCreateSessionChaosOnlyChangesMode(t *testing.T) {
	svc, _, _, _ := testService(t, nil)
	sess, err := svc.CreateSession(context.Background(), ModeChaos, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.State.Mode != ModeChaos {
		t.Fatalf("mode got %s", sess.State.Mode)
	}
	if sess.State.Coins != StartingCoins || sess.State.CurrentDay != 1 {
		t.Fatalf("chaos mode changed starting economy")
	}
}

func TestApplyAllocationValidation(t *testing.T) {
	svc, sessions, _, _ := testService(t, nil)
	sess, _ := svc.CreateSession(context.Background(), ModeNormal, false)

	if _, err := svc.ApplyAllocation(context.Background(), sess.ID, []AllocationInput{
		{ID: "dragon", Allocation: 100},
	}); !errors.Is(err, ErrUnknownAsset) {
		t.Fatalf("unknown asset: got %v", err)
	}

	if _, err := svc.ApplyAllocation(context.Background(), sess.ID, []AllocationInput{
		{ID: "sword", Allocation: 50},
	}); !errors.Is(err, ErrAllocationUnbalanced) {
		t.Fatalf("partial sum: got %v", err)
	}

	if _, err := svc.ApplyAllocation(context.Background(), sess.ID, []AllocationInput{
		{ID: "sword", Allocation: 150},
		{ID: "shield", Allocation: -50},
	}); !errors.Is(err, ErrAllocationUnbalanced) {
		t.Fatalf("out-of-range values: got %v", err)
	}

	// Rejected updates must leave the stored state untouched.
	stored, _ := sessions.Get(context.Background(), sess.ID)
	if AllocationTotal(stored.State.Allocations) != 0 {
		t.Fatalf("rejected update leaked into the store")
	}
}

func TestApplyAllocationCascade(t *testing.T) {
	svc, sessions, _, _ := testService(t, nil)
	sess, _ := svc.CreateSession(context.Background(), ModeNormal, false)

	out, err := svc.ApplyAllocation(context.Background(), sess.ID, []AllocationInput{
		{ID: "sword", Allocation: 25},
		{ID: "shield", Allocation: 25},
		{ID: "forest", Allocation: 25},
		{ID: "golden", Allocation: 25},
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if AllocationTotal(out.State.Allocations) != 100 {
		t.Fatalf("allocations not applied")
	}
	if len(out.NewBadges) == 0 {
		t.Fatalf("balanced quarters should unlock badges")
	}
	stored, _ := sessions.Get(context.Background(), sess.ID)
	if AllocationTotal(stored.State.Allocations) != 100 {
		t.Fatalf("applied allocations not persisted")
	}
}

func TestApplyAllocationSaveFailureWritesNoBadges(t *testing.T) {
	svc, sessions, badges, _ := testService(t, nil)
	sess, _ := svc.CreateSession(context.Background(), ModeNormal, false)
	sessions.failSave = true

	_, err := svc.ApplyAllocation(context.Background(), sess.ID, []AllocationInput{
		{ID: "sword", Allocation: 25},
		{ID: "shield", Allocation: 25},
		{ID: "forest", Allocation: 25},
		{ID: "golden", Allocation: 25},
	})
	if err == nil {
		t.Fatalf("want an error when the session store fails to save")
	}
	// Unlocks belong to committed snapshots only.
	if badges.writes != 0 {
		t.Fatalf("badge store written for an uncommitted state: %d writes", badges.writes)
	}
	stored, _ := sessions.Get(context.Background(), sess.ID)
	if AllocationTotal(stored.State.Allocations) != 0 {
		t.Fatalf("failed save leaked into the store")
	}
}

func TestAdvanceDaySettlesAndAudits(t *testing.T) {
	svc, sessions, _, audit := testService(t, &fakeAdvisor{line: "Good winds today."})
	sess, _ := svc.CreateSession(context.Background(), ModeNormal, false)
	if _, err := svc.ApplyAllocation(context.Background(), sess.ID, []AllocationInput{
		{ID: "sword", Allocation: 25},
		{ID: "shield", Allocation: 25},
		{ID: "forest", Allocation: 25},
		{ID: "golden", Allocation: 25},
	}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	out, err := svc.AdvanceDay(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if out.Settlement.Day != 1 || out.State.CurrentDay != 2 {
		t.Fatalf("day bookkeeping wrong: %+v", out.Settlement)
	}
	if out.Commentary != "Good winds today." {
		t.Fatalf("commentary got %q", out.Commentary)
	}
	if len(audit.records) != 1 || audit.records[0].Day != 1 {
		t.Fatalf("settlement not audited: %+v", audit.records)
	}
	stored, _ := sessions.Get(context.Background(), sess.ID)
	if stored.State.CurrentDay != 2 {
		t.Fatalf("advanced state not persisted")
	}
}

func TestAdvanceDayUnbalancedFails(t *testing.T) {
	svc, _, _, _ := testService(t, nil)
	sess, _ := svc.CreateSession(context.Background(), ModeNormal, false)
	if _, err := svc.AdvanceDay(context.Background(), sess.ID); !errors.Is(err, ErrAllocationUnbalanced) {
		t.Fatalf("want ErrAllocationUnbalanced, got %v", err)
	}
}

func TestAdvanceDayAdvisorFailureUsesFallback(t *testing.T) {
	svc, _, _, _ := testService(t, &fakeAdvisor{err: errors.New("advisor offline")})
	sess, _ := svc.CreateSession(context.Background(), ModeNormal, false)
	if _, err := svc.ApplyAllocation(context.Background(), sess.ID, []AllocationInput{
		{ID: "river", Allocation: 100},
	}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	out, err := svc.AdvanceDay(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("settlement must not fail with the advisor down: %v", err)
	}
	if out.Commentary != fallbackCommentary {
		t.Fatalf("commentary got %q want fallback", out.Commentary)
	}
	if out.State.CurrentDay != 2 {
		t.Fatalf("settlement did not commit")
	}
}

func TestAdvanceDayAuditFailureIsBestEffort(t *testing.T) {
	svc, _, _, audit := testService(t, nil)
	audit.fail = true
	sess, _ := svc.CreateSession(context.Background(), ModeNormal, false)
	if _, err := svc.ApplyAllocation(context.Background(), sess.ID, []AllocationInput{
		{ID: "river", Allocation: 100},
	}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	out, err := svc.AdvanceDay(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("audit failure must not fail settlement: %v", err)
	}
	if out.State.CurrentDay != 2 {
		t.Fatalf("settlement did not commit")
	}
}

func TestDeclineEventCardIsForcedAccept(t *testing.T) {
	svc, _, _, _ := testService(t, nil)
	sess, _ := svc.CreateSession(context.Background(), ModeNormal, false)
	card, err := svc.TriggerCard(context.Background(), sess.ID, "solar-flare-rally")
	if err != nil {
		t.Fatalf("trigger: %v", err)
	}

	updated, status, err := svc.DeclineCard(context.Background(), sess.ID, card.InstanceID)
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if status != StatusActive {
		t.Fatalf("declined event status got %s want %s", status, StatusActive)
	}
	if len(updated.State.ActiveEvents) != 1 {
		t.Fatalf("declined event not activated: %+v", updated.State.ActiveEvents)
	}
}

func TestDeclineMissionCardSticks(t *testing.T) {
	svc, _, _, _ := testService(t, nil)
	sess, _ := svc.CreateSession(context.Background(), ModeNormal, false)
	card, err := svc.TriggerCard(context.Background(), sess.ID, "green-awakening")
	if err != nil {
		t.Fatalf("trigger: %v", err)
	}

	updated, status, err := svc.DeclineCard(context.Background(), sess.ID, card.InstanceID)
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if status != StatusDeclined {
		t.Fatalf("declined mission status got %s", status)
	}
	if len(updated.State.ActiveMissions) != 0 {
		t.Fatalf("declined mission became active")
	}
}

func TestTriggerCardUnknownID(t *testing.T) {
	svc, _, _, _ := testService(t, nil)
	sess, _ := svc.CreateSession(context.Background(), ModeNormal, false)
	if _, err := svc.TriggerCard(context.Background(), sess.ID, "kraken-attack"); !errors.Is(err, ErrUnknownCatalogID) {
		t.Fatalf("want ErrUnknownCatalogID, got %v", err)
	}
}

func TestAutoAdvanceAllSkipsFailures(t *testing.T) {
	svc, _, _, _ := testService(t, nil)

	ready, _ := svc.CreateSession(context.Background(), ModeNormal, true)
	if _, err := svc.ApplyAllocation(context.Background(), ready.ID, []AllocationInput{
		{ID: "river", Allocation: 100},
	}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	// Second auto session keeps its zero allocation, so it cannot settle.
	if _, err := svc.CreateSession(context.Background(), ModeNormal, true); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Manual sessions are not swept at all.
	if _, err := svc.CreateSession(context.Background(), ModeNormal, false); err != nil {
		t.Fatalf("create: %v", err)
	}

	settled, err := svc.AutoAdvanceAll(context.Background())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if settled != 1 {
		t.Fatalf("settled got %d want 1", settled)
	}

	after, err := svc.Session(context.Background(), ready.ID)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if after.State.CurrentDay != 2 {
		t.Fatalf("ready session not advanced")
	}
}

func TestSessionNotFound(t *testing.T) {
	svc, _, _, _ := testService(t, nil)
	if _, err := svc.Session(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("want ErrSessionNotFound, got %v", err)
	}
}

func TestCommentaryTimeoutFallsBack(t *testing.T) {
	slow := &slowAdvisor{delay: 200 * time.Millisecond}
	svc, _, _, _ := testService(t, slow)
	svc.CommentaryBudget = 10 * time.Millisecond

	sess, _ := svc.CreateSession(context.Background(), ModeNormal, false)
	if _, err := svc.ApplyAllocation(context.Background(), sess.ID, []AllocationInput{
		{ID: "river", Allocation: 100},
	}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	out, err := svc.AdvanceDay(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if out.Commentary != fallbackCommentary {
		t.Fatalf("slow advisor should fall back, got %q", out.Commentary)
	}
}

type slowAdvisor struct {
	delay time.Duration
}

func (s *slowAdvisor) Generate(ctx context.Context, _ PromptContext) (string, error) {
	select {
	case <-time.After(s.delay):
		return "too late", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
