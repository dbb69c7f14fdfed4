package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/runger/bistro/internal/config"
	"github.com/runger/bistro/internal/dataset"
	"github.com/runger/bistro/internal/engine"
	"github.com/runger/bistro/internal/logging"
	"github.com/runger/bistro/internal/session"
	"github.com/runger/bistro/internal/storage"
	"github.com/runger/bistro/internal/tui"
)

var (
	recommendDataPath    string
	recommendCuisines    []string
	recommendBudget      float64
	recommendLocation    string
	recommendStrategy    string
	recommendTop         int
	recommendInteractive bool
	recommendJSON        bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend restaurants matching your preferences",
	Long: `Recommend restaurants from a CSV dataset.

Filters by cuisine, budget and location, then ranks the matches under
the selected scoring strategy. With --interactive you can flip between
strategies and watch the same matches re-rank in place.`,
	Example: `  bistro recommend --data zomato.csv --cuisine indian --budget 700 --location bangalore
  bistro recommend --data zomato.csv --cuisine thai --strategy votes-heavy --top 5
  bistro recommend --data zomato.csv --cuisine italian --interactive`,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&recommendDataPath, "data", "", "path to the restaurant CSV (default from config)")
	recommendCmd.Flags().StringSliceVar(&recommendCuisines, "cuisine", nil, "cuisine to match (repeatable)")
	recommendCmd.Flags().Float64Var(&recommendBudget, "budget", 0, "maximum cost for two")
	recommendCmd.Flags().StringVar(&recommendLocation, "location", "", "city or area to match")
	recommendCmd.Flags().StringVar(&recommendStrategy, "strategy", "", "scoring strategy (default from config)")
	recommendCmd.Flags().IntVar(&recommendTop, "top", 0, "number of results to show (default from config)")
	recommendCmd.Flags().BoolVar(&recommendInteractive, "interactive", false, "browse results in an interactive TUI")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "emit results as JSON")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.NewFromEnv()

	reg, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	dataPath := recommendDataPath
	if dataPath == "" {
		dataPath = cfg.Dataset.Path
	}
	if dataPath == "" {
		return fmt.Errorf("no dataset: pass --data or set dataset.path in config")
	}

	restaurants, report, err := dataset.Load(dataPath)
	if err != nil {
		return err
	}
	logger.Debug("dataset loaded",
		"path", dataPath, "rows", report.Rows, "kept", report.Kept,
		"dropped", report.DroppedNoName, "duplicates", report.Duplicates)
	if len(report.MissingColumns) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: dataset is missing columns: %s\n",
			strings.Join(report.MissingColumns, ", "))
	}

	prefs := engine.Preferences{
		Cuisines: recommendCuisines,
		Location: recommendLocation,
	}
	if cmd.Flags().Changed("budget") {
		budget := recommendBudget
		prefs.MaxCost = &budget
	}

	strategyName := recommendStrategy
	if strategyName == "" {
		strategyName = cfg.Engine.DefaultStrategy
	}

	// Query logging is best-effort: a broken state db must not block
	// recommendations.
	var opts []session.Option
	opts = append(opts, session.WithLogger(logger))
	store, err := storage.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("query log unavailable", "error", err)
	} else {
		defer store.Close()
		opts = append(opts, session.WithStore(store))
	}

	sess := session.New(restaurants, reg, opts...)
	results, err := sess.Submit(cmd.Context(), prefs, strategyName)
	if err != nil {
		return err
	}

	if recommendInteractive {
		model := tui.NewModel(sess, reg.Names())
		_, err := tea.NewProgram(model, tea.WithOutput(cmd.OutOrStdout())).Run()
		return err
	}

	top := recommendTop
	if top <= 0 {
		top = cfg.Engine.MaxResults
	}
	if len(results) > top {
		results = results[:top]
	}

	if recommendJSON {
		return writeResultsJSON(cmd, sess, results)
	}
	writeResultsTable(cmd, sess, prefs, results)
	return nil
}

// resultJSON is the JSON shape for one ranked restaurant.
type resultJSON struct {
	Rank      int      `json:"rank"`
	Name      string   `json:"name"`
	City      string   `json:"city"`
	Cuisines  []string `json:"cuisines,omitempty"`
	Score     float64  `json:"score"`
	Rating    *float64 `json:"rating"`
	Votes     *int     `json:"votes"`
	Cost      *float64 `json:"cost_for_two"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func writeResultsJSON(cmd *cobra.Command, sess *session.Session, results []engine.Scored) error {
	out := struct {
		SessionID string       `json:"session_id"`
		Strategy  string       `json:"strategy"`
		Results   []resultJSON `json:"results"`
	}{
		SessionID: sess.ID(),
		Strategy:  sess.Strategy(),
		Results:   make([]resultJSON, 0, len(results)),
	}
	for i, sc := range results {
		r := sc.Restaurant
		out.Results = append(out.Results, resultJSON{
			Rank: i + 1, Name: r.Name, City: r.City, Cuisines: r.Cuisines,
			Score: sc.Score, Rating: r.Rating, Votes: r.Votes, Cost: r.CostForTwo,
			Latitude: r.Latitude, Longitude: r.Longitude,
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true)
	explainStyle     = lipgloss.NewStyle().Faint(true)
)

func writeResultsTable(cmd *cobra.Command, sess *session.Session, prefs engine.Preferences, results []engine.Scored) {
	w := cmd.OutOrStdout()

	if len(results) == 0 {
		fmt.Fprintln(w, noMatchMessage(prefs, sess.Strategy()))
		return
	}

	fmt.Fprintln(w, tableHeaderStyle.Render(fmt.Sprintf("Top %d recommendations (strategy: %s)", len(results), sess.Strategy())))
	for i, sc := range results {
		r := sc.Restaurant
		fmt.Fprintf(w, "%2d. %s — %s  [score %.3f]\n",
			i+1, runewidth.Truncate(r.Name, 40, "…"), r.City, sc.Score)
		fmt.Fprintf(w, "    %s\n", explainStyle.Render(explain(sc, prefs, sess.Strategy())))
	}
	fmt.Fprintf(w, "\nsession: %s\n", sess.ID())
}

// explain builds the human-readable reason line for one result, in the
// spirit of "Matched on indian cuisine, within 700 budget, 4.5 rating
// from 900 votes (strategy: rating-heavy)".
func explain(sc engine.Scored, prefs engine.Preferences, strategyName string) string {
	r := sc.Restaurant
	var parts []string

	if len(prefs.Cuisines) > 0 {
		parts = append(parts, fmt.Sprintf("matched on %s cuisine", strings.Join(prefs.Cuisines, ", ")))
	}
	if prefs.MaxCost != nil {
		if r.CostForTwo != nil {
			parts = append(parts, fmt.Sprintf("%.0f for two (within %.0f budget)", *r.CostForTwo, *prefs.MaxCost))
		} else {
			parts = append(parts, "cost unknown")
		}
	}
	if r.Rating != nil {
		parts = append(parts, fmt.Sprintf("%.1f rating from %d votes", *r.Rating, r.VotesOrZero()))
	} else {
		parts = append(parts, "unrated")
	}

	return fmt.Sprintf("%s (strategy: %s)", strings.Join(parts, ", "), strategyName)
}

func noMatchMessage(prefs engine.Preferences, strategyName string) string {
	var constraints []string
	if len(prefs.Cuisines) > 0 {
		constraints = append(constraints, "cuisine: "+strings.Join(prefs.Cuisines, ", "))
	}
	if prefs.MaxCost != nil {
		constraints = append(constraints, fmt.Sprintf("budget: %.0f", *prefs.MaxCost))
	}
	if prefs.Location != "" {
		constraints = append(constraints, "location: "+prefs.Location)
	}
	if len(constraints) == 0 {
		return "No restaurants in the dataset."
	}
	return fmt.Sprintf("No restaurants match your preferences (%s, strategy: %s). Try adjusting your filters or using a broader location.",
		strings.Join(constraints, ", "), strategyName)
}
