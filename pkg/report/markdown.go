package report

import (
	"fmt"
	"io"
	"strings"
)

// Markdown writes the report as a Markdown document.
// The output is deterministic for a given report.
func (r Report) Markdown(w io.Writer) error {
	var b strings.Builder

	b.WriteString("# Dependency report\n\n")
	if r.Root != "" {
		fmt.Fprintf(&b, "Scanned `%s` at %s.\n\n", r.Root, r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintf(&b, "- Files: %d\n", r.NodeCount)
	fmt.Fprintf(&b, "- References: %d\n\n", r.EdgeCount)

	writeRankingTable(&b, "Most referenced", "Inbound", r.MostReferenced)
	writeRankingTable(&b, "Most dependent", "Outbound", r.MostDependent)

	b.WriteString("## Isolated files\n\n")
	if len(r.Orphans) == 0 {
		b.WriteString("None.\n\n")
	} else {
		for _, path := range r.Orphans {
			fmt.Fprintf(&b, "- `%s`\n", path)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Cycles\n\n")
	if len(r.Cycles) == 0 {
		b.WriteString("None.\n")
	} else {
		for i, cycle := range r.Cycles {
			fmt.Fprintf(&b, "%d. %s\n", i+1, "`"+strings.Join(cycle, "` ↔ `")+"`")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRankingTable(b *strings.Builder, title, column string, rows []Ranking) {
	fmt.Fprintf(b, "## %s\n\n", title)
	if len(rows) == 0 {
		b.WriteString("None.\n\n")
		return
	}
	fmt.Fprintf(b, "| File | %s |\n", column)
	b.WriteString("| --- | ---: |\n")
	for _, row := range rows {
		fmt.Fprintf(b, "| `%s` | %d |\n", row.Path, row.Count)
	}
	b.WriteString("\n")
}
