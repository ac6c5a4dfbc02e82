package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/careers-portal/internal/db"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// Printer writes human-readable summaries for CLI commands.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMigrationStatus lists every known migration and whether it is applied.
func (p *Printer) PrintMigrationStatus(statuses []db.MigrationStatus) {
	if len(statuses) == 0 {
		p.printBox("MIGRATIONS", "No migrations found")
		return
	}

	var sb strings.Builder
	pending := 0
	for _, st := range statuses {
		mark := "✓"
		if !st.Applied {
			mark = "·"
			pending++
		}
		sb.WriteString(fmt.Sprintf("%s %05d  %s\n", mark, st.Version, st.Source))
	}
	sb.WriteString(fmt.Sprintf("\n%d applied, %d pending", len(statuses)-pending, pending))

	p.printBox("MIGRATIONS", sb.String())
}

// PrintMigrationResult reports the versions a migrate run touched.
func (p *Printer) PrintMigrationResult(direction string, versions []int64) {
	if len(versions) == 0 {
		p.printBox("MIGRATE "+strings.ToUpper(direction), "Nothing to do")
		return
	}

	lines := make([]string, 0, len(versions))
	for _, v := range versions {
		lines = append(lines, fmt.Sprintf("%05d", v))
	}
	p.printBox("MIGRATE "+strings.ToUpper(direction), strings.Join(lines, "\n"))
}

// PrintAdminUser confirms an admin account without echoing its password.
func (p *Printer) PrintAdminUser(user *db.AdminUser) {
	if user == nil {
		return
	}
	content := fmt.Sprintf("ID:      %s\nEmail:   %s\nCreated: %s",
		user.ID, user.Email, user.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	p.printBox("ADMIN USER", content)
}
