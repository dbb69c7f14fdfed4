package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

type recommendGlobals struct {
	dataPath  string
	cuisines  []string
	budget    *float64
	location  string
	strategy  string
	top       int
	jsonOut   bool
	interactv bool
}

func withRecommendGlobals(t *testing.T, g recommendGlobals) {
	t.Helper()
	old := recommendGlobals{
		dataPath:  recommendDataPath,
		cuisines:  recommendCuisines,
		location:  recommendLocation,
		strategy:  recommendStrategy,
		top:       recommendTop,
		jsonOut:   recommendJSON,
		interactv: recommendInteractive,
	}
	budgetFlag := recommendCmd.Flags().Lookup("budget")
	oldChanged := budgetFlag.Changed
	oldBudget := recommendBudget

	recommendDataPath = g.dataPath
	recommendCuisines = g.cuisines
	recommendLocation = g.location
	recommendStrategy = g.strategy
	recommendTop = g.top
	recommendJSON = g.jsonOut
	recommendInteractive = g.interactv
	if g.budget != nil {
		recommendBudget = *g.budget
		budgetFlag.Changed = true
	} else {
		recommendBudget = 0
		budgetFlag.Changed = false
	}

	t.Cleanup(func() {
		recommendDataPath = old.dataPath
		recommendCuisines = old.cuisines
		recommendLocation = old.location
		recommendStrategy = old.strategy
		recommendTop = old.top
		recommendJSON = old.jsonOut
		recommendInteractive = old.interactv
		recommendBudget = oldBudget
		budgetFlag.Changed = oldChanged
	})
}

type feedbackGlobals struct {
	session      string
	strategy     string
	satisfaction int
	relevant     bool
	comment      string
}

func withFeedbackGlobals(t *testing.T, g feedbackGlobals) {
	t.Helper()
	old := feedbackGlobals{
		session:      feedbackSessionID,
		strategy:     feedbackStrategy,
		satisfaction: feedbackSatisfaction,
		relevant:     feedbackRelevant,
		comment:      feedbackComment,
	}
	feedbackSessionID = g.session
	feedbackStrategy = g.strategy
	feedbackSatisfaction = g.satisfaction
	feedbackRelevant = g.relevant
	feedbackComment = g.comment
	t.Cleanup(func() {
		feedbackSessionID = old.session
		feedbackStrategy = old.strategy
		feedbackSatisfaction = old.satisfaction
		feedbackRelevant = old.relevant
		feedbackComment = old.comment
	})
}

// isolateHome points the config and state paths at temp directories so
// command tests never touch the real ~/.bistro.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("BISTRO_DB_PATH", filepath.Join(home, "state.db"))
	t.Setenv("BISTRO_DATA", "")
	t.Setenv("BISTRO_LOG_LEVEL", "")
	t.Setenv("BISTRO_DEBUG", "")
	return home
}

func writeTestDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "restaurants.csv")
	csv := `Restaurant Name,City,Cuisines,Average Cost for two,Aggregate rating,Votes
Alpha,Bangalore,North Indian,600,4.5,900
Beta,Bangalore,North Indian,650,4.0,1200
Gamma,Mumbai,Thai,400,3.5,50
`
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	return path
}

// captureCmd runs fn with the command's stdout redirected to a buffer.
// Warnings on stderr are discarded so they cannot leak into output
// assertions.
func captureCmd(t *testing.T, c *cobra.Command, fn func() error) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetErr(io.Discard)
	c.SetContext(context.Background())
	t.Cleanup(func() {
		c.SetOut(nil)
		c.SetErr(nil)
	})
	err := fn()
	return buf.String(), err
}
