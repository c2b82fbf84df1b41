package backup

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"supplycore/pkg/domain"
)

// auditColumns is the fixed export header, shared by CSV and XLSX.
var auditColumns = []string{"Timestamp", "User", "Action", "Module", "Details"}

func auditRow(e domain.AuditLogEntry) []string {
	return []string{
		e.Timestamp.Format(time.RFC3339),
		e.User,
		string(e.Action),
		e.Module,
		e.Details,
	}
}

// WriteAuditCSV streams the entries as CSV in the given order, header
// first. Fields containing quotes come out RFC 4180 escaped, with embedded
// quotes doubled.
func WriteAuditCSV(w io.Writer, entries []domain.AuditLogEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(auditColumns); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write(auditRow(e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAuditXLSX renders the entries as a single-sheet workbook with the
// same columns as the CSV export.
func WriteAuditXLSX(w io.Writer, entries []domain.AuditLogEntry) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Audit Log"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	for col, name := range auditColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}
	for rowIdx, e := range entries {
		for col, val := range auditRow(e) {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
