package main

import (
	"fmt"
	"strings"

	"skyland/internal/game"

	"github.com/fatih/color"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func renderState(st game.GameState) {
	accent.Printf("\n== DAY %d ==\n", st.CurrentDay)
	fmt.Printf("Coins:  %d\n", st.Coins)
	fmt.Printf("Stars:  %d\n", st.Stars)
	fmt.Printf("Level:  %d\n", st.Level)
	fmt.Printf("Sky:    %s\n", st.Mode)
	renderAllocations(st.Allocations)
	renderCards(st)
}

func renderAllocations(allocs []game.AssetAllocation) {
	fmt.Println()
	accent.Println("Guardians")
	fmt.Printf("%-10s %-22s %-10s %8s\n", "ID", "NAME", "TYPE", "POWER")
	total := 0.0
	for _, a := range allocs {
		fmt.Printf("%-10s %-22s %-10s %7.1f%%\n", a.ID, truncate(a.DisplayName, 22), a.Type, a.Allocation)
		total += a.Allocation
	}
	if total < 99.9 || total > 100.1 {
		printWarn(fmt.Sprintf("Power totals %.1f%%, assign the remainder before the day can settle.", total))
	}
}

func renderCards(st game.GameState) {
	if len(st.PendingCards) > 0 {
		fmt.Println()
		accent.Println("Pending Cards")
		fmt.Printf("%-38s %-8s %-24s %8s\n", "INSTANCE", "KIND", "CARD", "OFFERED")
		for _, c := range st.PendingCards {
			fmt.Printf("%-38s %-8s %-24s %8d\n", c.InstanceID, c.Kind, c.RefID, c.OfferedAtDay)
		}
	}
	if len(st.ActiveMissions) > 0 {
		fmt.Println()
		accent.Println("Active Missions")
		for _, m := range st.ActiveMissions {
			fmt.Printf("  %-24s accepted day %d\n", m.RefID, m.AcceptedAtDay)
		}
	}
	if len(st.ActiveEvents) > 0 {
		fmt.Println()
		accent.Println("Active Events")
		for _, e := range st.ActiveEvents {
			fmt.Printf("  %-24s since day %d\n", e.RefID, e.AcceptedAtDay)
		}
	}
	fmt.Println()
}

func renderSettlement(res game.SettlementResult, commentary string) {
	accent.Printf("\n== DAY %d SETTLED ==\n", res.Day)
	fmt.Printf("Portfolio return: %s\n", colorizePercent(res.PortfolioReturn*100))
	fmt.Printf("Coin change:      %s\n", colorizeCoins(res.CoinDelta))
	fmt.Printf("Coins now:        %d\n", res.CoinsAfter)

	fmt.Println()
	accent.Println("Per Guardian")
	fmt.Printf("%-10s %10s %10s %10s\n", "ID", "BASE", "ADJUSTED", "COINS")
	for _, a := range res.PerAsset {
		fmt.Printf("%-10s %9.2f%% %9.2f%% %10s\n",
			a.ID,
			a.BaseReturn*100,
			a.AdjustedReturn*100,
			colorizeCoins(a.CoinDelta),
		)
	}

	if strings.TrimSpace(commentary) != "" {
		fmt.Println()
		accent.Println("Sage Advisor")
		fmt.Println("  " + commentary)
	}
	fmt.Println()
}

func renderCascade(completed []game.CompletedMission, badges []string, offered []game.Card, lc game.LevelChange) {
	for _, m := range completed {
		printSuccess(fmt.Sprintf("Mission complete: %s (+%d stars)", m.Title, m.RewardStars))
	}
	for _, b := range badges {
		printSuccess("Badge unlocked: " + b)
	}
	for _, c := range offered {
		printInfo(fmt.Sprintf("New %s card offered: %s (instance %s)", c.Kind, c.RefID, c.InstanceID))
	}
	if lc.LeveledUp {
		printSuccess(fmt.Sprintf("Level up! %d -> %d", lc.OldLevel, lc.NewLevel))
	}
}

func renderBadges(sum game.AchievementSummary) {
	accent.Println("\n== BADGES ==")
	if len(sum.Unlocked) == 0 {
		printInfo("No badges yet. Balance the guardians and keep playing.")
		return
	}
	fmt.Printf("%-26s %-8s %8s %-20s\n", "BADGE", "TROPHY", "STARS", "UNLOCKED")
	for _, b := range sum.Unlocked {
		fmt.Printf("%-26s %-8s %8d %-20s\n",
			b.AchievementID,
			b.TrophyGrade,
			b.StarRating,
			b.AchievedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	fmt.Printf("\nTotal badge stars: %d\n\n", sum.TotalStars)
}

func renderLevel(p game.LevelProgress) {
	accent.Printf("\n== LEVEL %d: %s ==\n", p.Level, p.Title)
	fmt.Printf("Stars into level: %d\n", p.StarsIntoLevel)
	if p.StarsToNext > 0 {
		fmt.Printf("Stars to next:    %d (%.0f%%)\n", p.StarsToNext, p.PercentToNext)
	} else {
		printSuccess("Top of the ladder.")
	}
	fmt.Println()
}

func renderHistory(points []game.PerformancePoint) {
	accent.Println("\n== RECENT DAYS ==")
	if len(points) == 0 {
		printInfo("No settled days yet. Run `sky next`.")
		return
	}
	fmt.Printf("%-6s %10s %12s\n", "DAY", "RETURN", "COINS")
	for _, p := range points {
		fmt.Printf("%-6d %10s %12d\n", p.Day, colorizePercent(p.PortfolioReturn*100), p.TotalCoins)
	}
	fmt.Println()
}

func colorizeCoins(v int64) string {
	text := fmt.Sprintf("%+d", v)
	switch {
	case v > 0:
		return success.Sprint(text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

func colorizePercent(v float64) string {
	text := fmt.Sprintf("%+.2f%%", v)
	switch {
	case v > 0:
		return success.Sprint(text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
