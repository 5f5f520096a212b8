package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/adrianowead/wead/pkg/bench"
	"github.com/adrianowead/wead/pkg/person"
	"github.com/adrianowead/wead/pkg/store"
)

const notAvailable = "N/A"

// outputJSON writes v as indented JSON
func outputJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// outputPerson displays a single person
func outputPerson(w io.Writer, format string, p *person.Person) error {
	if format == "json" {
		return outputJSON(w, p)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "ID:\t%s\n", formatID(p.ID))
	fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", p.Email)
	fmt.Fprintf(tw, "Phone:\t%s\n", p.Phone)
	return nil
}

// outputPersons displays multiple persons
func outputPersons(w io.Writer, format string, people []*person.Person) error {
	if format == "json" {
		if people == nil {
			people = []*person.Person{}
		}
		return outputJSON(w, people)
	}

	if len(people) == 0 {
		fmt.Fprintln(w, "No persons found")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE")
	for _, p := range people {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", formatID(p.ID), oneLine(p.Name), oneLine(p.Email), oneLine(p.Phone))
	}
	return nil
}

// outputStats displays repository statistics
func outputStats(w io.Writer, format string, stats *store.Stats) error {
	if format == "json" {
		return outputJSON(w, stats)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "Path:\t%s\n", stats.Path)
	fmt.Fprintf(tw, "Records:\t%d\n", stats.Records)
	fmt.Fprintf(tw, "Last ID:\t%d\n", stats.LastID)
	fmt.Fprintf(tw, "File size:\t%d bytes\n", stats.FileSize)
	if stats.Scan != nil {
		fmt.Fprintf(tw, "Lines scanned at open:\t%d\n", stats.Scan.LinesScanned)
		fmt.Fprintf(tw, "Lines skipped at open:\t%d\n", stats.Scan.LinesSkipped)
	}
	return nil
}

// outputBenchResult displays one benchmark run
func outputBenchResult(w io.Writer, label string, r bench.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "%s\n", label)
	fmt.Fprintf(tw, "  Iterations:\t%d\n", r.Iterations)
	fmt.Fprintf(tw, "  Execution time:\t%.4fs\n", r.ExecutionTime)
	fmt.Fprintf(tw, "  Ops/sec:\t%.0f\n", r.OpsPerSec)
	if r.CoresUsed > 0 {
		fmt.Fprintf(tw, "  Cores used:\t%d\n", r.CoresUsed)
	}
	fmt.Fprintf(tw, "  Total value:\t%.2f\n", r.TotalValue)
	fmt.Fprintf(tw, "  Total tax:\t%.2f\n", r.TotalTax)
	fmt.Fprintf(tw, "  Total freight:\t%.2f\n", r.TotalFreight)
	fmt.Fprintf(tw, "  Total discount:\t%.2f\n", r.TotalDiscount)
	fmt.Fprintf(tw, "  Total final:\t%.2f\n", r.TotalFinal)
}

func formatID(id int64) string {
	if id == 0 {
		return notAvailable
	}
	return fmt.Sprintf("%d", id)
}

// oneLine keeps table rows on a single line
func oneLine(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r == '\n' || r == '\r' || r == '\t' {
			out[i] = ' '
		}
	}
	return string(out)
}
