package store

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"skyland/internal/game"

	"github.com/stretchr/testify/require"
)

func newTestFile(t *testing.T) *File {
	t.Helper()
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)
	return f
}

func TestFileSessionRoundTrip(t *testing.T) {
	f := newTestFile(t)
	ctx := context.Background()

	require.NoError(t, f.Create(ctx, testSession("s1")))

	got, err := f.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "s1", got.ID)
	require.Equal(t, int64(1000), got.State.Coins)

	got.State.CurrentDay = 3
	require.NoError(t, f.Save(ctx, got))

	again, err := f.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, 3, again.State.CurrentDay)
}

func TestFileGetMissing(t *testing.T) {
	f := newTestFile(t)
	_, err := f.Get(context.Background(), "missing")
	require.ErrorIs(t, err, game.ErrSessionNotFound)
}

func TestFileSaveMissing(t *testing.T) {
	f := newTestFile(t)
	err := f.Save(context.Background(), testSession("never-created"))
	require.ErrorIs(t, err, game.ErrSessionNotFound)
}

func TestFileListAutoAdvance(t *testing.T) {
	f := newTestFile(t)
	ctx := context.Background()

	auto := testSession("auto")
	auto.AutoAdvance = true
	require.NoError(t, f.Create(ctx, auto))
	require.NoError(t, f.Create(ctx, testSession("manual")))

	ids, err := f.ListAutoAdvance(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"auto"}, ids)
}

func TestFileBadgeLedger(t *testing.T) {
	f := newTestFile(t)
	ctx := context.Background()

	require.NoError(t, f.Achieve(ctx, "s1", "explorer", 1, "bronze"))
	require.NoError(t, f.Achieve(ctx, "s1", "explorer", 1, "bronze"))
	require.NoError(t, f.Achieve(ctx, "s1", "galaxy", 3, "gold"))

	has, err := f.HasAchievement(ctx, "s1", "explorer")
	require.NoError(t, err)
	require.True(t, has)

	sum, err := f.Summary(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, sum.Unlocked, 2)
	require.Equal(t, 4, sum.TotalStars)
	require.Equal(t, 1, sum.TrophyCounts["gold"])
}

func TestFileAuditLogAppends(t *testing.T) {
	f := newTestFile(t)
	ctx := context.Background()

	require.NoError(t, f.Record(ctx, "s1", game.SettlementResult{Day: 1, CoinDelta: 7}))
	require.NoError(t, f.Record(ctx, "s1", game.SettlementResult{Day: 2, CoinDelta: -2}))
	require.NoError(t, f.Record(ctx, "s2", game.SettlementResult{Day: 1}))

	// A second store instance over the same directory sees the log.
	reopened, err := NewFile(f.dir)
	require.NoError(t, err)
	require.NoError(t, reopened.Record(ctx, "s1", game.SettlementResult{Day: 3, CoinDelta: 4}))

	raw, err := os.ReadFile(f.auditPath("s1"))
	require.NoError(t, err)
	var log []game.SettlementResult
	require.NoError(t, json.Unmarshal(raw, &log))
	require.Len(t, log, 3)
	require.Equal(t, 3, log[2].Day)
}
