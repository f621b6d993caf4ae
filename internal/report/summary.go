package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"
)

const (
	prefix              = "   "
	runSummaryHeader    = "❯❯ Run Summary"
	successLabel        = "Succeeded"
	failureLabel        = "Failed"
	earlyExitLabel      = "Early Exits"
	excludeLabel        = "Excluded"
	separatorLineLength = 28
	labelColumnWidth    = 14
)

// Summary formats data from a report for output as a summary.
type Summary struct {
	firstRunStart time.Time
	lastRunEnd    time.Time
	runs          []*Run

	TotalProjects int
	Succeeded     int
	Failed        int
	EarlyExits    int
	Excluded      int
}

// Summarize returns a summary of the report.
func (r *Report) Summarize() *Summary {
	summary := &Summary{runs: r.Runs()}

	for _, run := range summary.runs {
		summary.TotalProjects++

		switch run.Result {
		case ResultSucceeded:
			summary.Succeeded++
		case ResultFailed:
			summary.Failed++
		case ResultEarlyExit:
			summary.EarlyExits++
		case ResultExcluded:
			summary.Excluded++
		}

		if run.Started.IsZero() {
			continue
		}

		if summary.firstRunStart.IsZero() || run.Started.Before(summary.firstRunStart) {
			summary.firstRunStart = run.Started
		}

		if run.Ended.After(summary.lastRunEnd) {
			summary.lastRunEnd = run.Ended
		}
	}

	return summary
}

// TotalDuration is the wall time between the first run starting and the last run ending.
func (s *Summary) TotalDuration() time.Duration {
	if s.firstRunStart.IsZero() {
		return 0
	}

	return s.lastRunEnd.Sub(s.firstRunStart)
}

// Write writes the summary to w. With showProjects every project is listed under its
// category, slowest first.
func (s *Summary) Write(w io.Writer, colorizer *Colorizer, showProjects bool) error {
	header := fmt.Sprintf("%s  %s  %s",
		colorizer.headingTitleColorizer(runSummaryHeader),
		colorizer.headingCountColorizer(fmt.Sprintf("%d projects", s.TotalProjects)),
		colorizer.colorDuration(s.TotalDuration()),
	)

	if _, err := fmt.Fprintf(w, "\n%s\n%s%s\n", header, prefix, strings.Repeat("─", separatorLineLength)); err != nil {
		return err
	}

	categories := []struct {
		colorize func(string) string
		result   Result
		label    string
		count    int
	}{
		{colorize: colorizer.successColorizer, result: ResultSucceeded, label: successLabel, count: s.Succeeded},
		{colorize: colorizer.failureColorizer, result: ResultFailed, label: failureLabel, count: s.Failed},
		{colorize: colorizer.exitColorizer, result: ResultEarlyExit, label: earlyExitLabel, count: s.EarlyExits},
		{colorize: colorizer.excludeColorizer, result: ResultExcluded, label: excludeLabel, count: s.Excluded},
	}

	for _, category := range categories {
		if category.count == 0 {
			continue
		}

		label := category.colorize(fmt.Sprintf("%-*s", labelColumnWidth, category.label))
		if _, err := fmt.Fprintf(w, "%s%s%d\n", prefix, label, category.count); err != nil {
			return err
		}

		if !showProjects {
			continue
		}

		if err := s.writeProjects(w, colorizer, category.result); err != nil {
			return err
		}
	}

	return nil
}

func (s *Summary) writeProjects(w io.Writer, colorizer *Colorizer, result Result) error {
	var runs []*Run

	nameWidth := 0

	for _, run := range s.runs {
		nameWidth = max(nameWidth, len(run.Name))

		if run.Result == result {
			runs = append(runs, run)
		}
	}

	slices.SortStableFunc(runs, func(a, b *Run) int {
		return cmp.Compare(b.Duration(), a.Duration())
	})

	for _, run := range runs {
		if _, err := fmt.Fprintf(w, "%s%s%-*s  %s\n",
			prefix, prefix, nameWidth, run.Name, colorizer.colorDuration(run.Duration())); err != nil {
			return err
		}
	}

	return nil
}
