package analytics

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
)

// WriteSummary prints the acceptance statistics recorded so far. limit caps
// the hint and day listings.
func WriteSummary(w io.Writer, analyticsManager *AnalyticsManager, limit int) error {
	total, err := analyticsManager.GetTotalCount()
	if err != nil {
		return fmt.Errorf("count entries: %w", err)
	}
	accepted, err := analyticsManager.GetAcceptanceCount()
	if err != nil {
		return fmt.Errorf("count accepted entries: %w", err)
	}

	rate := 0.0
	if total > 0 {
		rate = float64(accepted) / float64(total) * 100
	}

	fmt.Fprintf(w, "Lines committed:      %s\n", humanize.Comma(total))
	fmt.Fprintf(w, "Suggestions accepted: %s (%s%%)\n", humanize.Comma(accepted), humanize.FtoaWithDigits(rate, 1))

	top, err := analyticsManager.GetTopAccepted(limit)
	if err != nil {
		return fmt.Errorf("top accepted hints: %w", err)
	}
	if len(top) > 0 {
		fmt.Fprintln(w, "\nMost accepted hints:")
		for i, hint := range top {
			fmt.Fprintf(w, "  %s %-30s %s\n", humanize.Ordinal(i+1), hint.Hint, humanize.Comma(hint.Count))
		}
	}

	activity, err := analyticsManager.GetDailyActivity()
	if err != nil {
		return fmt.Errorf("daily activity: %w", err)
	}
	if len(activity) > 0 {
		days := lo.Keys(activity)
		sort.Sort(sort.Reverse(sort.StringSlice(days)))
		if len(days) > limit {
			days = days[:limit]
		}

		fmt.Fprintln(w, "\nRecent activity:")
		for _, day := range days {
			fmt.Fprintf(w, "  %s  %s\n", day, humanize.Comma(activity[day]))
		}
	}

	recent, err := analyticsManager.GetRecentEntries(1)
	if err != nil {
		return fmt.Errorf("recent entries: %w", err)
	}
	if len(recent) > 0 {
		fmt.Fprintf(w, "\nLast line committed %s\n", humanize.Time(recent[0].CreatedAt))
	}
	return nil
}
