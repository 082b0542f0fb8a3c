package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/roach88/rolodex/internal/record"
)

const recordSeparator = "------------------------------"

// renderRecord prints one record as a field-per-line block.
func renderRecord(w io.Writer, r *record.Record) {
	fmt.Fprintln(w, recordSeparator)
	fmt.Fprintf(w, "Id: %d\n", r.ID)
	fmt.Fprintf(w, "Name: %s\n", r.Name)
	fmt.Fprintf(w, "Age: %d\n", r.Age)

	keys := make([]string, 0, len(r.Attrs))
	for k := range r.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %s\n", capitalize(k), r.Attrs[k])
	}
	fmt.Fprintln(w, recordSeparator)
}

// renderRecords prints a heading and every record in order.
func renderRecords(w io.Writer, records []*record.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}
	fmt.Fprintf(w, "===== Displaying %d entries =====\n", len(records))
	for _, r := range records {
		renderRecord(w, r)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
