package seed

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Report summarizes a completed provisioning run.
type Report struct {
	Database    string
	Collections []string
	Counts      map[string]int64
	OrphanTasks int64
	Credentials []Credential
	SeededAt    time.Time
}

// Print writes the human-readable completion banner and login credentials.
func (r *Report) Print(w io.Writer) {
	rule := strings.Repeat("=", 50)

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintln(w, "✅ Database setup completed successfully!")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Database: %s\n", r.Database)
	fmt.Fprintf(w, "Collections: %s\n", strings.Join(r.Collections, ", "))
	for _, name := range r.Collections {
		fmt.Fprintf(w, "  %-10s %d documents\n", name+":", r.Counts[name])
	}
	fmt.Fprintln(w, "Sample data inserted")
	if r.OrphanTasks > 0 {
		fmt.Fprintf(w, "WARNING: %d task(s) reference a missing project\n", r.OrphanTasks)
	}
	fmt.Fprintln(w, "\nLogin Credentials:")
	for _, c := range r.Credentials {
		fmt.Fprintf(w, "  Username: %-8s | Password: %s\n", c.Username, c.Password)
	}
	fmt.Fprintf(w, "%s\n\n", rule)
}
