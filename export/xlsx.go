package export

import (
	"fmt"
	"io"

	"getaround-api/analytics"

	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary   = "Summary"
	SheetCurve     = "Friction curve"
	SheetHistogram = "Delay histogram"
	SheetCheckin   = "Late by checkin"
)

// ContentType is the MIME type of the workbooks written by WriteReport.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Filename names the export for a threshold, e.g. "delay_report_1.5h.xlsx".
func Filename(threshold float64) string {
	return fmt.Sprintf("delay_report_%gh.xlsx", threshold)
}

// WriteReport renders r as a workbook with one sheet per dashboard block.
func WriteReport(w io.Writer, r analytics.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetCurve, SheetHistogram, SheetCheckin} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %q: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	sheets := map[string][][]interface{}{
		SheetSummary:   summaryRows(r),
		SheetCurve:     curveRows(r.FrictionCurve),
		SheetHistogram: binRows(r.DelayHistogram),
		SheetCheckin:   checkinRows(r.LateByCheckin),
	}
	for name, rows := range sheets {
		if err := writeRows(f, name, rows, bold); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func summaryRows(r analytics.Report) [][]interface{} {
	return [][]interface{}{
		{"metric", "value"},
		{"threshold_hours", r.Threshold},
		{"late_share_percent", r.LateSharePercent},
		{"mean_late_delay_hours", r.MeanLateDelayHours},
		{"friction_count", r.Friction.Count},
		{"friction_percent", r.Friction.Percent()},
		{"late_loss_count", r.LateLoss.Count},
		{"late_loss_percent", r.LateLoss.Percent()},
		{"rental_loss_count", r.RentalLoss.Count},
		{"rental_loss_percent", r.RentalLoss.Percent()},
		{"total_daily_price", r.Revenue.TotalDailyPrice},
		{"adjusted_total_daily_price", r.Revenue.AdjustedTotalDailyPrice},
		{"revenue_loss", r.Revenue.Loss()},
		{"revenue_loss_percent", r.Revenue.LossPercent()},
		{},
		{r.Text.Headline},
		{r.Text.Friction},
		{r.Text.Revenue},
		{r.Text.Rentals},
	}
}

func curveRows(curve []analytics.CurvePoint) [][]interface{} {
	rows := [][]interface{}{{"threshold_hours", "friction_percent"}}
	for _, p := range curve {
		rows = append(rows, []interface{}{p.Threshold, p.Percent})
	}
	return rows
}

func binRows(bins []analytics.Bin) [][]interface{} {
	rows := [][]interface{}{{"lower_hours", "upper_hours", "count"}}
	for _, b := range bins {
		rows = append(rows, []interface{}{b.Lower, b.Upper, b.Count})
	}
	return rows
}

func checkinRows(groups []analytics.CheckinHistogram) [][]interface{} {
	rows := [][]interface{}{{"checkin_type", "lower_hours", "upper_hours", "count"}}
	for _, g := range groups {
		for _, b := range g.Bins {
			rows = append(rows, []interface{}{g.CheckinType, b.Lower, b.Upper, b.Count})
		}
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i := range rows {
		if len(rows[i]) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	return f.SetColWidth(sheet, "A", "A", 28)
}
