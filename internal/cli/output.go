package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"
)

// Table renders rows under a header line with aligned columns.
type Table struct {
	headers []string
	rows    [][]string
	writer  *tabwriter.Writer
}

func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		writer:  tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0),
	}
}

func (t *Table) AddRow(cols ...string) {
	t.rows = append(t.rows, cols)
}

func (t *Table) Render() {
	fmt.Fprintln(t.writer, strings.Join(t.headers, "\t"))
	for _, row := range t.rows {
		fmt.Fprintln(t.writer, strings.Join(row, "\t"))
	}
	t.writer.Flush()
}

func printOutput(v interface{}) error {
	switch getOutputFormat() {
	case "json":
		return printJSON(v)
	case "yaml":
		return printYAML(v)
	default:
		return printJSON(v)
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printYAML(v interface{}) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func formatStatus(status string) string {
	switch status {
	case "up":
		return "[+] up"
	case "down":
		return "[-] down"
	case "degraded":
		return "[*] degraded"
	default:
		return "[?] " + status
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatTime(*t)
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatMillis(ms int64) string {
	return fmt.Sprintf("%dms", ms)
}
