// Package console prints the page for non-interactive use.
package console

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"CovidDash/internal/domain"
	"CovidDash/internal/infrastructure/page"
	"CovidDash/internal/infrastructure/render"
)

// Printer writes page snapshots and status changes as plain text.
type Printer struct {
	mu         sync.Mutex
	w          io.Writer
	chartWidth int
	lastStatus domain.StatusMessage
}

// NewPrinter writes to w; sparklines are at most chartWidth cells wide.
func NewPrinter(w io.Writer, chartWidth int) *Printer {
	if chartWidth <= 0 {
		chartWidth = 60
	}
	return &Printer{w: w, chartWidth: chartWidth}
}

// Follow prints every status change of p as it happens.
func (pr *Printer) Follow(p *page.Page) {
	p.OnChange(func() {
		pr.status(p.Snapshot().Status)
	})
}

func (pr *Printer) status(msg domain.StatusMessage) {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	if msg == pr.lastStatus {
		return
	}
	pr.lastStatus = msg
	if msg.Cleared() {
		return
	}
	fmt.Fprintf(pr.w, "%s %s\n", render.SeverityLabel(msg.Severity), msg.Text)
}

// Print writes the content areas of snap: charts, comments, documents and
// enabled links.
func (pr *Printer) Print(snap page.Snapshot) {
	pr.mu.Lock()
	defer pr.mu.Unlock()

	var sb strings.Builder
	for _, id := range []domain.ContainerID{domain.ContainerCasesChart, domain.ContainerDeathsChart} {
		chart, ok := snap.Charts[id]
		if !ok {
			continue
		}
		sb.WriteString(chart.Title + "\n")
		sb.WriteString("  " + render.Sparkline(chart.Daily, pr.chartWidth) + "\n")
		sb.WriteString("  " + render.Summarize(chart).String() + "\n")
	}

	if items, ok := snap.Comments[domain.ContainerComments]; ok {
		fmt.Fprintf(&sb, "Comments (%d)\n", len(items))
		for _, c := range items {
			sb.WriteString("  - " + render.Comment(c) + "\n")
		}
	}

	if len(snap.Documents) > 0 {
		sb.WriteString("Documents\n")
		ids := make([]string, 0, len(snap.Documents))
		for id := range snap.Documents {
			ids = append(ids, string(id))
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(&sb, "  %s: %s\n", id, snap.Documents[domain.ContainerID(id)])
		}
	}

	if links := snap.EnabledLinks(); len(links) > 0 {
		sb.WriteString("Links\n")
		for _, id := range links {
			fmt.Fprintf(&sb, "  %s: %s\n", id, snap.Controls[id].Target)
		}
	}

	io.WriteString(pr.w, sb.String())
}
