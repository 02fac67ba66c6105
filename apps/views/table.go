// Package views maps fetched collections to view-models and renders them as text tables.
package views

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"
)

// Table is a pure view-model: columns, rows and what to show when there are no rows.
type Table struct {
	Columns []string
	Rows    [][]string
	Empty   string
}

func (t Table) Len() int { return len(t.Rows) }

// Container is the on-screen region a page renders into.
// Every Render replaces the previous content; nothing is patched in place.
type Container struct {
	mu          sync.RWMutex
	title       string
	table       Table
	placeholder string
	failed      bool
	renders     int
}

func NewContainer(title string) *Container {
	return &Container{title: title}
}

// Render clears the container and rebuilds it from t.
func (c *Container) Render(t Table) {
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = append([]string(nil), row...)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table = Table{Columns: append([]string(nil), t.Columns...), Rows: rows, Empty: t.Empty}
	c.placeholder = ""
	c.failed = false
	c.renders++
}

// Fail replaces the content with a "failed to load" placeholder.
func (c *Container) Fail(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table = Table{}
	c.placeholder = msg
	c.failed = true
	c.renders++
}

// RowCount is the number of data rows on screen.
func (c *Container) RowCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.table.Rows)
}

// Failed reports whether the container shows a failed-load placeholder.
func (c *Container) Failed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.failed
}

// Message is the placeholder or empty-state text currently shown, if any.
func (c *Container) Message() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.failed {
		return c.placeholder
	}
	if len(c.table.Rows) == 0 {
		return c.table.Empty
	}
	return ""
}

// Rendered reports whether anything was ever rendered.
func (c *Container) Rendered() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.renders > 0
}

// Snapshot returns a copy of the rendered table.
func (c *Container) Snapshot() Table {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rows := make([][]string, len(c.table.Rows))
	for i, row := range c.table.Rows {
		rows[i] = append([]string(nil), row...)
	}
	return Table{Columns: append([]string(nil), c.table.Columns...), Rows: rows, Empty: c.table.Empty}
}

// WriteTo prints the container as an aligned text table.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var buf bytes.Buffer
	if c.title != "" {
		fmt.Fprintf(&buf, "== %s ==\n", c.title)
	}
	switch {
	case c.failed:
		fmt.Fprintln(&buf, c.placeholder)
	case len(c.table.Rows) == 0:
		fmt.Fprintln(&buf, c.table.Empty)
	default:
		tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(c.table.Columns, "\t"))
		for _, row := range c.table.Rows {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return 0, err
		}
	}
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

func (c *Container) String() string {
	var sb strings.Builder
	_, _ = c.WriteTo(&sb)
	return sb.String()
}
