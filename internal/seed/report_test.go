package seed

import (
	"bytes"
	"strings"
	"testing"
)

func TestReportPrint(t *testing.T) {
	r := &Report{
		Database:    "nosql_mis_db",
		Collections: []string{"employees", "projects", "tasks", "users"},
		Counts:      map[string]int64{"employees": 3, "projects": 2, "tasks": 2, "users": 2},
		Credentials: Credentials,
	}

	var buf bytes.Buffer
	r.Print(&buf)
	out := buf.String()

	for _, want := range []string{
		"Database setup completed successfully!",
		"Database: nosql_mis_db",
		"Collections: employees, projects, tasks, users",
		"Username: admin    | Password: admin123",
		"Username: manager  | Password: manager123",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "WARNING") {
		t.Errorf("unexpected orphan warning:\n%s", out)
	}
}

func TestReportPrintWarnsOnOrphans(t *testing.T) {
	r := &Report{Database: "db", Counts: map[string]int64{}, OrphanTasks: 1}

	var buf bytes.Buffer
	r.Print(&buf)
	if !strings.Contains(buf.String(), "WARNING: 1 task(s) reference a missing project") {
		t.Fatalf("missing orphan warning:\n%s", buf.String())
	}
}
