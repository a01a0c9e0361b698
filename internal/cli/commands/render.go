package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/leaplineage/pkg/lineage"
)

func renderExtractJSON(w io.Writer, results []lineage.ParsedQuery) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func renderExtractTable(w io.Writer, results []lineage.ParsedQuery) error {
	for i, r := range results {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintf(w, "Statement %d (%s): %d edges\n", i+1, r.QueryType, len(r.Edges))

		for _, msg := range r.Errors {
			_, _ = fmt.Fprintf(w, "  ! %s\n", msg)
		}
		if len(r.Edges) == 0 {
			continue
		}

		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"SOURCE", "TARGET", "TYPE", "CONF", "EXPRESSION"})

		for _, e := range r.Edges {
			t.AppendRow(table.Row{
				columnID(e.Source),
				columnID(e.Target),
				e.Type,
				e.Confidence,
				e.Expression,
			})
		}
		t.Render()
	}
	return nil
}

// columnID renders one side of an edge. Unverified references are marked so
// a reader can tell validated lineage from best-effort naming.
func columnID(c lineage.Column) string {
	id := c.Column
	if c.Table != "" {
		id = c.Table + "." + c.Column
	}
	if !c.Verified {
		id += " (?)"
	}
	return id
}
