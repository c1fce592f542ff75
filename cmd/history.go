package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/slideai/internal/config"
	"github.com/ziadkadry99/slideai/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent generation attempts",
	Long:  `Lists recent completion calls recorded in the generation history, newest first. Only metadata is stored.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of events to show")
	historyCmd.Flags().String("kind", "", "filter by kind (slides or script)")
	historyCmd.Flags().String("session", "", "filter by session ID")
	historyCmd.Flags().Bool("stats", false, "show per-kind totals instead of events")
	historyCmd.Flags().Duration("prune", 0, "delete events older than this age, then exit")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, closeDB, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	if prune, _ := cmd.Flags().GetDuration("prune"); prune > 0 {
		n, err := store.DeleteBefore(ctx, time.Now().Add(-prune))
		if err != nil {
			return fmt.Errorf("pruning history: %w", err)
		}
		fmt.Printf("Deleted %d events\n", n)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer w.Flush()

	if stats, _ := cmd.Flags().GetBool("stats"); stats {
		rows, err := store.Stats(ctx)
		if err != nil {
			return fmt.Errorf("reading history stats: %w", err)
		}
		fmt.Fprintln(w, "KIND\tTOTAL\tSUCCEEDED\tFAILED\tAVG DURATION")
		for _, s := range rows {
			avg := time.Duration(s.AvgDurationMS * float64(time.Millisecond)).Round(time.Millisecond)
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", s.Kind, s.Total, s.Succeeded, s.Failed, avg)
		}
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	kind, _ := cmd.Flags().GetString("kind")
	sessionID, _ := cmd.Flags().GetString("session")

	events, err := store.Query(ctx, history.QueryFilter{
		SessionID: sessionID,
		Kind:      history.Kind(kind),
		Limit:     limit,
	})
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if len(events) == 0 {
		fmt.Println("No generation events recorded.")
		return nil
	}

	fmt.Fprintln(w, "TIME\tKIND\tMODEL\tSTATUS\tDURATION\tPROMPT TOKENS\tOUTPUT CHARS")
	for _, ev := range events {
		status := string(ev.Status)
		if ev.StatusCode != 0 {
			status = fmt.Sprintf("%s (%d)", status, ev.StatusCode)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
			ev.CreatedAt.Local().Format(time.DateTime), ev.Kind, ev.Model, status,
			time.Duration(ev.DurationMS)*time.Millisecond, ev.PromptTokens, ev.OutputChars)
		if verbose && ev.Error != "" {
			fmt.Fprintf(w, "\t\t%s\t\t\t\t\n", ev.Error)
		}
	}
	return nil
}
