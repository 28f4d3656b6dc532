package httpapi

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"aquasolar-cloud/internal/service"
)

// Sheet layouts for the usage report workbook.
var (
	usageSummaryHeader     = []string{"Field", "Value"}
	usageConsumptionHeader = []string{"Date", "Volume (L)", "Pump Cycles"}
	usageSensorHeader      = []string{"Log ID", "Sensor", "Reading", "Unit", "Recorded At"}
	usagePowerHeader       = []string{"Power ID", "Voltage (V)", "Current (A)", "Battery (%)", "Recorded At"}
	usageControlHeader     = []string{"Control ID", "Action", "Method", "Details", "Control Time"}
	usageAlertsHeader      = []string{"Alert ID", "Type", "Status", "Details", "Alert Date"}
)

const excelTimeLayout = "2006-01-02 15:04:05"

// GenerateUsageWorkbook renders a usage report as an Excel workbook with one
// sheet per stream. Column order matches the CSV export.
func GenerateUsageWorkbook(report *service.UsageReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("report is required")
	}

	f := excelize.NewFile()
	// Close only after WriteTo; the file must stay open while writing.

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	sheets := []struct {
		name    string
		headers []string
		widths  []float64
		rows    [][]any
	}{
		{"Summary", usageSummaryHeader, []float64{20, 30}, usageSummaryRows(report)},
		{"Consumption", usageConsumptionHeader, []float64{15, 15, 15}, usageConsumptionRows(report)},
		{"Sensor Logs", usageSensorHeader, []float64{18, 18, 12, 10, 22}, usageSensorRows(report)},
		{"Power Logs", usagePowerHeader, []float64{18, 14, 14, 14, 22}, usagePowerRows(report)},
		{"Control Logs", usageControlHeader, []float64{18, 14, 12, 30, 22}, usageControlRows(report)},
		{"Alerts", usageAlertsHeader, []float64{18, 14, 12, 40, 22}, usageAlertsRows(report)},
	}

	for _, sheet := range sheets {
		if err := writeUsageSheet(f, headerStyle, sheet.name, sheet.headers, sheet.widths, sheet.rows); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.DeleteSheet("Sheet1")
	if index, err := f.GetSheetIndex("Summary"); err == nil {
		f.SetActiveSheet(index)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// writeUsageSheet creates one sheet: styled header row, column widths, data
// rows from row 2, header row frozen.
func writeUsageSheet(f *excelize.File, headerStyle int, name string, headers []string, widths []float64, rows [][]any) error {
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

	for i := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if i < len(widths) && widths[i] > 0 {
			if err := f.SetColWidth(name, col, col, widths[i]); err != nil {
				return fmt.Errorf("failed to set column width: %w", err)
			}
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

	if err := f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}

	return nil
}

func usageSummaryRows(report *service.UsageReport) [][]any {
	return [][]any{
		{"Tenant ID", report.TenantID},
		{"Start Date", report.StartDate},
		{"End Date", report.EndDate},
		{"Generated At", report.GeneratedAt.Format(excelTimeLayout)},
		{"Total Volume (L)", report.TotalVolumeL},
		{"Total Pump Cycles", report.TotalCycles},
	}
}

func usageConsumptionRows(report *service.UsageReport) [][]any {
	rows := make([][]any, 0, len(report.Consumption))
	for _, day := range report.Consumption {
		rows = append(rows, []any{day.ConsumptionDate, day.ConsumptionTotal, day.PumpCycles})
	}
	return rows
}

func usageSensorRows(report *service.UsageReport) [][]any {
	rows := make([][]any, 0, len(report.SensorLogs))
	for _, l := range report.SensorLogs {
		rows = append(rows, []any{l.LogID, l.SensorID, l.ReadingValue, l.Unit, l.RecordedAt.Format(excelTimeLayout)})
	}
	return rows
}

func usagePowerRows(report *service.UsageReport) [][]any {
	rows := make([][]any, 0, len(report.PowerLogs))
	for _, l := range report.PowerLogs {
		rows = append(rows, []any{l.PowerID, l.PowerLevelV, l.CurrentA, l.BatteryPercent, l.RecordedAt.Format(excelTimeLayout)})
	}
	return rows
}

func usageControlRows(report *service.UsageReport) [][]any {
	rows := make([][]any, 0, len(report.ControlLogs))
	for _, l := range report.ControlLogs {
		rows = append(rows, []any{l.ControlID, l.Action, l.Method, l.Details, l.ControlTime.Format(excelTimeLayout)})
	}
	return rows
}

func usageAlertsRows(report *service.UsageReport) [][]any {
	rows := make([][]any, 0, len(report.Alerts))
	for _, a := range report.Alerts {
		rows = append(rows, []any{a.AlertID, a.AlertType, a.Status, a.Details, a.AlertDate.Format(excelTimeLayout)})
	}
	return rows
}
