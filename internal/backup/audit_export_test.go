package backup

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"supplycore/pkg/domain"
)

func sampleEntries() []domain.AuditLogEntry {
	ts := time.Date(2024, time.June, 5, 12, 0, 0, 0, time.UTC)
	return []domain.AuditLogEntry{
		{
			ID:        "1717588800000-001",
			Timestamp: ts,
			User:      "Dana Whitfield",
			Action:    domain.AuditActionCreate,
			Module:    "Products",
			Details:   `Said "hi"`,
		},
		{
			ID:        "1717588800000-002",
			Timestamp: ts,
			User:      "System",
			Action:    domain.AuditActionExport,
			Module:    "Backup",
			Details:   "Exported full backup",
		},
	}
}

func TestAuditCSVHeaderAndQuoting(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAuditCSV(&buf, sampleEntries()); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "Timestamp,User,Action,Module,Details" {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], `"Said ""hi"""`) {
		t.Fatalf("embedded quotes not doubled: %q", lines[1])
	}
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
}

func TestAuditCSVPreservesEntryOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAuditCSV(&buf, sampleEntries()); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if strings.Index(out, "Dana Whitfield") > strings.Index(out, "Exported full backup") {
		t.Fatal("rows reordered")
	}
}

func TestAuditXLSXRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteAuditXLSX(&buf, sampleEntries()); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Audit Log")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "Timestamp" || rows[0][4] != "Details" {
		t.Fatalf("header row: %v", rows[0])
	}
	if rows[1][4] != `Said "hi"` {
		t.Fatalf("details cell: %q", rows[1][4])
	}
}
