package httpapi

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"aquasolar-cloud/internal/service"
)

// GenerateUsageCSV renders a usage report as a multi-section CSV: the summary
// block first, then one titled section per stream. Column order matches the
// workbook export.
func GenerateUsageCSV(report *service.UsageReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("report is required")
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	write := func(record []string) {
		_ = cw.Write(record)
	}

	write([]string{"AquaSolar Usage Report"})
	for _, row := range usageSummaryRows(report) {
		write(csvRecord(row))
	}

	sections := []struct {
		name    string
		headers []string
		rows    [][]any
	}{
		{"Consumption", usageConsumptionHeader, usageConsumptionRows(report)},
		{"Sensor Logs", usageSensorHeader, usageSensorRows(report)},
		{"Power Logs", usagePowerHeader, usagePowerRows(report)},
		{"Control Logs", usageControlHeader, usageControlRows(report)},
		{"Alerts", usageAlertsHeader, usageAlertsRows(report)},
	}

	for _, section := range sections {
		write([]string{""})
		write([]string{section.name})
		write(section.headers)
		for _, row := range section.rows {
			write(csvRecord(row))
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func csvRecord(row []any) []string {
	record := make([]string, len(row))
	for i, v := range row {
		record[i] = fmt.Sprint(v)
	}
	return record
}
