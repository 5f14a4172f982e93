package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/gestione-turni/backend/internal/domain"
	"github.com/gestione-turni/backend/internal/planner"
)

// Exported documents keep the product's Italian labels; only these two files
// are user-facing in that sense.
var exportDayNames = [7]string{"Lun", "Mar", "Mer", "Gio", "Ven", "Sab", "Dom"}

func exportDayHeader(monday time.Time, dayIndex int) string {
	day := monday.AddDate(0, 0, dayIndex)
	return fmt.Sprintf("%s %s", exportDayNames[dayIndex], day.Format("02/01"))
}

func exportNames(plan *planner.Plan) map[int64]string {
	names := make(map[int64]string, len(plan.People))
	for _, p := range plan.People {
		names[p.ID] = p.FullName
	}
	return names
}

func exportCellText(plan *planner.Plan, names map[int64]string, dayIndex int, shiftID int64) string {
	personID := plan.Grid[dayIndex][shiftID]
	if personID == nil {
		return ""
	}
	return names[*personID]
}

func (h *Handler) ExportWeekPDF(w http.ResponseWriter, r *http.Request) {
	week := r.Context().Value(WeekCtx).(*domain.Week)

	plan, err := h.buildWeeklyPlan(week)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Pianificazione Turni", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// first column is wider for the shift names
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	shiftColWidth := 50.0
	dayColWidth := (pageWidth - left - right - shiftColWidth) / 7
	rowHeight := 8.0

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(shiftColWidth, rowHeight, "Turno", "1", 0, "C", true, 0, "")
	for d := 0; d < 7; d++ {
		pdf.CellFormat(dayColWidth, rowHeight, exportDayHeader(week.MondayDate, d), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	names := exportNames(plan)
	for _, shift := range plan.Shifts {
		pdf.CellFormat(shiftColWidth, rowHeight, shift.Name, "1", 0, "L", false, 0, "")
		for d := 0; d < 7; d++ {
			pdf.CellFormat(dayColWidth, rowHeight, exportCellText(plan, names, d, shift.ID), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	monday := week.MondayDate.Format("2006-01-02")
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"turni_%s.pdf\"", monday))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logInternalServerError(r, err)
	}
}

func (h *Handler) ExportWeekXLSX(w http.ResponseWriter, r *http.Request) {
	week := r.Context().Value(WeekCtx).(*domain.Week)

	plan, err := h.buildWeeklyPlan(week)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Turni"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "H", 18)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheet, "A1", "Turno")
	for d := 0; d < 7; d++ {
		cell, _ := excelize.CoordinatesToCellName(2+d, 1)
		f.SetCellValue(sheet, cell, exportDayHeader(week.MondayDate, d))
	}
	f.SetCellStyle(sheet, "A1", "H1", headerStyle)

	names := exportNames(plan)
	for i, shift := range plan.Shifts {
		row := 2 + i
		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetCellValue(sheet, cell, shift.Name)
		for d := 0; d < 7; d++ {
			cell, _ := excelize.CoordinatesToCellName(2+d, row)
			f.SetCellValue(sheet, cell, exportCellText(plan, names, d, shift.ID))
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	monday := week.MondayDate.Format("2006-01-02")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"turni_%s.xlsx\"", monday))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logInternalServerError(r, err)
	}
}
