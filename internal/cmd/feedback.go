package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runger/bistro/internal/config"
	"github.com/runger/bistro/internal/feedback"
	"github.com/runger/bistro/internal/storage"
)

var (
	feedbackSessionID    string
	feedbackStrategy     string
	feedbackSatisfaction int
	feedbackRelevant     bool
	feedbackComment      string
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Record and inspect feedback on recommendations",
	Long: `Record how satisfied you were with a recommendation run, keyed by the
session ID that "bistro recommend" prints. Aggregated feedback shows
which scoring strategy is working better for you.`,
	RunE: runFeedbackRecord,
}

var feedbackSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show per-strategy feedback averages",
	RunE:  runFeedbackSummary,
}

func init() {
	feedbackCmd.Flags().StringVar(&feedbackSessionID, "session", "", "session ID the feedback applies to (required)")
	feedbackCmd.Flags().StringVar(&feedbackStrategy, "strategy", "", "strategy the results were ranked under")
	feedbackCmd.Flags().IntVar(&feedbackSatisfaction, "satisfaction", 0, "satisfaction from 1 (poor) to 5 (great)")
	feedbackCmd.Flags().BoolVar(&feedbackRelevant, "relevant", false, "were the recommendations relevant")
	feedbackCmd.Flags().StringVar(&feedbackComment, "comment", "", "optional free-form comment")
	_ = feedbackCmd.MarkFlagRequired("session")
	_ = feedbackCmd.MarkFlagRequired("satisfaction")

	feedbackCmd.AddCommand(feedbackSummaryCmd)
}

func openStore() (*storage.SQLiteStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return storage.NewSQLiteStore(cfg.Storage.DBPath)
}

func runFeedbackRecord(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec := &feedback.Record{
		SessionID:    feedbackSessionID,
		Strategy:     feedbackStrategy,
		Satisfaction: feedbackSatisfaction,
		Relevant:     feedbackRelevant,
		Comment:      feedbackComment,
	}
	id, err := store.RecordFeedback(cmd.Context(), rec)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Thank you! Recorded feedback #%d (satisfaction: %d, relevant: %v)\n",
		id, rec.Satisfaction, rec.Relevant)
	return nil
}

func runFeedbackSummary(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	sums, err := store.FeedbackSummary(cmd.Context())
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(sums) == 0 {
		fmt.Fprintln(w, "No feedback recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "%-16s %8s %14s %10s\n", "strategy", "count", "satisfaction", "relevant")
	for _, s := range sums {
		fmt.Fprintf(w, "%-16s %8d %14.2f %9d%%\n",
			s.Strategy, s.Count, s.AvgSatisfaction, 100*s.RelevantCount/s.Count)
	}
	return nil
}
