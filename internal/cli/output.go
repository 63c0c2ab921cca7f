package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"pitchmatch/internal/domain/matching"
	"pitchmatch/internal/usecase"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeMatches(w io.Writer, res usecase.RecalculationResult) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "startup %s: %d match(es)\n", res.StartupID, res.MatchesCreated)
	fmt.Fprintln(tw, "INVESTOR\tSCORE\tSTATUS")
	for _, m := range res.Matches {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", m.InvestorID, m.MatchPercentage, m.Status)
	}
	return tw.Flush()
}

func writeBatchReport(w io.Writer, r usecase.BatchReport) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "STARTUP\tRESULT\tMATCHES\tERROR")
	for _, it := range r.Results {
		if it.Success {
			fmt.Fprintf(tw, "%s\tok\t%d\t\n", it.StartupID, it.MatchesCreated)
			continue
		}
		fmt.Fprintf(tw, "%s\tfailed\t-\t%s\n", it.StartupID, it.Error)
	}
	fmt.Fprintf(tw, "processed %d, succeeded %d, failed %d\n", r.StartupsProcessed, r.Successes, r.Failures)
	return tw.Flush()
}

func writePreview(w io.Writer, p usecase.Preview, weights matching.Weights) error {
	b := p.Result.Breakdown
	rows := []struct {
		name   string
		score  float64
		weight float64
	}{
		{"sector", b.Sector, weights.Sector},
		{"stage", b.Stage, weights.Stage},
		{"geography", b.Geography, weights.Geography},
		{"readiness", b.Readiness, weights.Readiness},
		{"ticket_size", b.TicketSize, weights.TicketSize},
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "FACTOR\tSCORE\tWEIGHT")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%.2f\t%g\n", r.name, r.score, r.weight)
	}
	fmt.Fprintf(tw, "match\t%d%%\t\n", p.Result.MatchScore)
	return tw.Flush()
}
