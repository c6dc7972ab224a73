package export

import (
	"bytes"
	"fmt"
	"strings"

	"carebook/internal/model"
	"carebook/internal/service"

	"github.com/xuri/excelize/v2"
)

var memberHeader = []string{
	"Name", "Relationship", "Date of Birth", "Blood Type", "Allergies", "Medical History",
}

var contactHeader = []string{"Name", "Phone", "Relationship"}

var criticalNoteHeader = []string{"Title", "Member", "Date", "Content"}

// EmergencySheetWorkbook renders the emergency sheet as a printable
// workbook with contacts, critical notes and the affected members.
func EmergencySheetWorkbook(sheet service.EmergencySheet) ([]byte, error) {
	f := excelize.NewFile()

	headerStyle, err := newHeaderStyle(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	memberName := make(map[string]string, len(sheet.AffectedMembers))
	for _, m := range sheet.AffectedMembers {
		memberName[m.ID.String()] = m.Name
	}

	contactRows := make([][]any, 0, len(sheet.Contacts))
	for _, c := range sheet.Contacts {
		contactRows = append(contactRows, []any{c.Name, c.Phone, c.Relationship})
	}
	if err := writeSheet(f, "Emergency Contacts", headerStyle, contactHeader, contactRows); err != nil {
		f.Close()
		return nil, err
	}

	noteRows := make([][]any, 0, len(sheet.CriticalNotes))
	for _, n := range sheet.CriticalNotes {
		member := "General"
		if n.FamilyMemberID.IsSet {
			if name, ok := memberName[n.FamilyMemberID.Val.String()]; ok {
				member = name
			} else {
				member = "Unknown Member"
			}
		}
		noteRows = append(noteRows, []any{n.Title, member, n.Date.String(), n.Content})
	}
	if err := writeSheet(f, "Critical Notes", headerStyle, criticalNoteHeader, noteRows); err != nil {
		f.Close()
		return nil, err
	}

	memberRows := make([][]any, 0, len(sheet.AffectedMembers))
	for _, m := range sheet.AffectedMembers {
		memberRows = append(memberRows, memberRow(m))
	}
	if err := writeSheet(f, "Members", headerStyle, memberHeader, memberRows); err != nil {
		f.Close()
		return nil, err
	}

	f.DeleteSheet("Sheet1")
	return writeTo(f)
}

// FamilyWorkbook renders a one-sheet roster of every family member.
func FamilyWorkbook(members []model.FamilyMember) ([]byte, error) {
	f := excelize.NewFile()

	headerStyle, err := newHeaderStyle(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	rows := make([][]any, 0, len(members))
	for _, m := range members {
		rows = append(rows, memberRow(m))
	}
	if err := writeSheet(f, "Family Members", headerStyle, memberHeader, rows); err != nil {
		f.Close()
		return nil, err
	}

	f.DeleteSheet("Sheet1")
	return writeTo(f)
}

var conditionHeader = []string{"Condition", "Diagnosed", "Status", "Notes"}

var prescriptionHeader = []string{"Medication", "Dosage", "Frequency", "Doctor", "Start Date", "End Date", "Refills"}

var noteHeader = []string{"Title", "Date", "Critical", "Content"}

// MemberSummaryWorkbook renders one member's medical summary with their
// conditions, prescriptions and notes on separate sheets.
func MemberSummaryWorkbook(member model.FamilyMember, conditions []model.Condition, prescriptions []model.Prescription, notes []model.MedicalNote) ([]byte, error) {
	f := excelize.NewFile()

	headerStyle, err := newHeaderStyle(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := writeSheet(f, "Member", headerStyle, memberHeader, [][]any{memberRow(member)}); err != nil {
		f.Close()
		return nil, err
	}

	conditionRows := make([][]any, 0, len(conditions))
	for _, c := range conditions {
		conditionRows = append(conditionRows, []any{c.Name, c.DateOfDiagnosis.String(), string(c.Status), c.Notes})
	}
	if err := writeSheet(f, "Conditions", headerStyle, conditionHeader, conditionRows); err != nil {
		f.Close()
		return nil, err
	}

	rxRows := make([][]any, 0, len(prescriptions))
	for _, rx := range prescriptions {
		endDate := ""
		if rx.EndDate.IsSet {
			endDate = rx.EndDate.Val.String()
		}
		refills := ""
		if rx.RefillsRemaining.IsSet {
			refills = fmt.Sprintf("%d", rx.RefillsRemaining.Val)
		}
		rxRows = append(rxRows, []any{
			rx.MedicationName, rx.Dosage, rx.Frequency, rx.PrescribingDoctor,
			rx.StartDate.String(), endDate, refills,
		})
	}
	if err := writeSheet(f, "Prescriptions", headerStyle, prescriptionHeader, rxRows); err != nil {
		f.Close()
		return nil, err
	}

	noteRows := make([][]any, 0, len(notes))
	for _, n := range notes {
		critical := "No"
		if n.IsCritical {
			critical = "Yes"
		}
		noteRows = append(noteRows, []any{n.Title, n.Date.String(), critical, n.Content})
	}
	if err := writeSheet(f, "Notes", headerStyle, noteHeader, noteRows); err != nil {
		f.Close()
		return nil, err
	}

	f.DeleteSheet("Sheet1")
	return writeTo(f)
}

func memberRow(m model.FamilyMember) []any {
	return []any{
		m.Name,
		string(m.Relationship),
		m.DateOfBirth.String(),
		m.BloodType.UnwrapOr("Unknown"),
		strings.Join(m.Allergies, ", "),
		m.MedicalHistorySummary,
	}
}

func newHeaderStyle(f *excelize.File) (int, error) {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create header style: %w", err)
	}
	return style, nil
}

func writeSheet(f *excelize.File, name string, headerStyle int, headers []string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(name, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(name, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(name, cell, value); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	for i := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(name, col, col, 24); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	return nil
}

func writeTo(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}
