package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	cl "skyland/internal/cli"
	"skyland/internal/config"
	"skyland/internal/game"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "sky",
		Short:        "Skyland Guardians CLI game client",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiBase, "api", apiBase, "API base URL")

	root.AddCommand(
		newNewCmd(&apiBase),
		newUseCmd(&apiBase),
		newStateCmd(&apiBase),
		newAllocateCmd(&apiBase),
		newNextCmd(&apiBase),
		newCardsCmd(&apiBase),
		newBadgesCmd(&apiBase),
		newLevelCmd(&apiBase),
		newHistoryCmd(&apiBase),
		newForgetCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func activeSession() (cl.Active, error) {
	return cl.LoadActive()
}

func newNewCmd(apiBase *string) *cobra.Command {
	var mode string
	var auto bool
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new island",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			sess, err := newClient(apiBase).CreateSession(ctx, mode, auto)
			if err != nil {
				return err
			}
			if err := cl.SaveActive(cl.Active{SessionID: sess.ID, Mode: string(sess.State.Mode)}); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("New island ready. Session %s (%s sky).", sess.ID, sess.State.Mode))
			renderState(sess.State)
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "normal", "sky mode: normal or chaos")
	cmd.Flags().BoolVar(&auto, "auto", false, "let the worker settle days automatically")
	return cmd
}

func newUseCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "use SESSION_ID",
		Short: "Switch the active session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			sess, err := newClient(apiBase).Session(ctx, args[0])
			if err != nil {
				return err
			}
			if err := cl.SaveActive(cl.Active{SessionID: sess.ID, Mode: string(sess.State.Mode)}); err != nil {
				return err
			}
			printSuccess("Active session switched to " + sess.ID)
			return nil
		},
	}
}

func newStateCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the island's current state",
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			sess, err := newClient(apiBase).Session(ctx, active.SessionID)
			if err != nil {
				return err
			}
			renderState(sess.State)
			return nil
		},
	}
}

func newAllocateCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "allocate ASSET=PCT [ASSET=PCT...]",
		Short: "Assign guardian power (percentages must sum to 100)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := activeSession()
			if err != nil {
				return err
			}
			inputs := make([]game.AllocationInput, 0, len(args))
			for _, arg := range args {
				id, pct, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("bad allocation %q, want ASSET=PCT", arg)
				}
				v, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
				if err != nil {
					return fmt.Errorf("bad percentage in %q: %w", arg, err)
				}
				inputs = append(inputs, game.AllocationInput{ID: strings.TrimSpace(id), Allocation: v})
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).ApplyAllocation(ctx, active.SessionID, inputs)
			if err != nil {
				return err
			}
			printSuccess("Guardian power assigned.")
			renderCascade(out.Completed, out.NewBadges, out.Offered, out.LevelChange)
			renderAllocations(out.State.Allocations)
			return nil
		},
	}
}

func newNextCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Settle the day and move to the next",
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).AdvanceDay(ctx, active.SessionID)
			if err != nil {
				return err
			}
			renderSettlement(out.Settlement, out.Commentary)
			renderCascade(out.Completed, out.NewBadges, out.Offered, out.LevelChange)
			return nil
		},
	}
}

func newForgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forget",
		Short: "Drop the active session pointer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.ClearActive(); err != nil {
				return err
			}
			printInfo("Active session forgotten. The island itself lives on server-side.")
			return nil
		},
	}
}

func newCardsCmd(apiBase *string) *cobra.Command {
	cards := &cobra.Command{
		Use:   "cards",
		Short: "Mission and event cards",
	}
	cards.AddCommand(
		newCardsListCmd(apiBase),
		newCardsAnswerCmd(apiBase, "accept", "Accept a pending card"),
		newCardsAnswerCmd(apiBase, "decline", "Decline a pending card"),
	)
	return cards
}

func newCardsListCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pending and active cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			sess, err := newClient(apiBase).Session(ctx, active.SessionID)
			if err != nil {
				return err
			}
			renderCards(sess.State)
			return nil
		},
	}
}

func newCardsAnswerCmd(apiBase *string, verb, short string) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " INSTANCE_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			var out cl.CardAnswer
			if verb == "accept" {
				out, err = client.AcceptCard(ctx, active.SessionID, args[0])
			} else {
				out, err = client.DeclineCard(ctx, active.SessionID, args[0])
			}
			if err != nil {
				return err
			}
			switch out.Status {
			case game.StatusActive:
				printSuccess("Card is now active.")
			case game.StatusDeclined:
				printInfo("Card declined.")
			default:
				printInfo("Card is now " + string(out.Status) + ".")
			}
			renderCards(out.State)
			return nil
		},
	}
}

func newBadgesCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "badges",
		Short: "Show unlocked achievement badges",
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).Achievements(ctx, active.SessionID)
			if err != nil {
				return err
			}
			renderBadges(out)
			return nil
		},
	}
}

func newLevelCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "level",
		Short: "Show guardian level progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := newClient(apiBase).LevelProgress(ctx, active.SessionID)
			if err != nil {
				return err
			}
			renderLevel(out)
			return nil
		},
	}
}

func newHistoryCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show recent daily performance",
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := activeSession()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			points, err := newClient(apiBase).History(ctx, active.SessionID)
			if err != nil {
				return err
			}
			renderHistory(points)
			return nil
		},
	}
}
