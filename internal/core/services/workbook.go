// internal/core/services/workbook.go
package services

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/tealeg/xlsx/v3"

	"github.com/storelens/storelens-be/internal/core/domain"
)

// WorkbookContentType is the MIME type of the generated report file.
const WorkbookContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BuildWorkbook renders a dashboard snapshot as an xlsx workbook with
// one sheet per report section. The same bytes serve the synchronous
// download endpoint and the background export job.
func BuildWorkbook(snapshot *domain.DashboardSnapshot) ([]byte, error) {
	file := xlsx.NewFile()

	if err := addSummarySheet(file, snapshot); err != nil {
		return nil, err
	}
	if err := addAlertsSheet(file, snapshot.Alerts); err != nil {
		return nil, err
	}
	if err := addCategoriesSheet(file, snapshot.TopCategories); err != nil {
		return nil, err
	}
	if err := addTrendSheet(file, snapshot.Trend); err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write workbook to buffer: %w", err)
	}

	return buffer.Bytes(), nil
}

func addSummarySheet(file *xlsx.File, snapshot *domain.DashboardSnapshot) error {
	sheet, err := file.AddSheet("Summary")
	if err != nil {
		return fmt.Errorf("failed to add Summary sheet: %w", err)
	}

	addPair := func(label, value string) {
		row := sheet.AddRow()
		labelCell := row.AddCell()
		labelCell.Value = label
		labelCell.GetStyle().Font.Bold = true
		row.AddCell().Value = value
	}

	s := snapshot.Summary
	addPair("Generated At", snapshot.GeneratedAt.Format("2006-01-02 15:04:05"))
	addPair("Total Records", strconv.Itoa(s.TotalRecords))
	addPair("Total Quantity", strconv.Itoa(s.TotalQuantity))
	addPair("Total Value", s.TotalValue.StringFixed(2))
	addPair("Active Alerts", strconv.Itoa(s.AlertCount))
	addPair("Settled Orders", strconv.Itoa(s.SettledOrders))
	addPair("Settled Revenue", s.SettledRevenue.StringFixed(2))

	statuses := []domain.StockStatus{
		domain.StatusOutOfStock,
		domain.StatusCritical,
		domain.StatusReorderNeeded,
		domain.StatusOverstock,
		domain.StatusNormal,
	}
	for _, status := range statuses {
		addPair(string(status), strconv.Itoa(s.StatusCounts[status]))
	}

	sheet.SetColWidth(1, 1, 22)
	sheet.SetColWidth(2, 2, 22)
	return nil
}

func addAlertsSheet(file *xlsx.File, alerts []domain.StockAlert) error {
	sheet, err := file.AddSheet("Alerts")
	if err != nil {
		return fmt.Errorf("failed to add Alerts sheet: %w", err)
	}

	addHeaderRow(sheet, "Inventory ID", "Product", "Quantity", "Threshold", "Status", "Message")

	for i := range alerts {
		a := &alerts[i]
		row := sheet.AddRow()
		row.AddCell().Value = a.InventoryID
		row.AddCell().Value = a.ProductName
		row.AddCell().Value = strconv.Itoa(a.Quantity)
		row.AddCell().Value = strconv.Itoa(a.Threshold)
		row.AddCell().Value = string(a.Status)
		row.AddCell().Value = a.Message
	}

	sheet.SetColWidth(1, 6, 18)
	return nil
}

func addCategoriesSheet(file *xlsx.File, categories []domain.CategorySummary) error {
	sheet, err := file.AddSheet("Categories")
	if err != nil {
		return fmt.Errorf("failed to add Categories sheet: %w", err)
	}

	addHeaderRow(sheet, "Category", "Quantity", "Share %", "Products")

	for i := range categories {
		c := &categories[i]
		row := sheet.AddRow()
		row.AddCell().Value = c.Name
		row.AddCell().Value = strconv.Itoa(c.Quantity)
		row.AddCell().Value = strconv.FormatFloat(c.Percentage, 'f', 1, 64)
		row.AddCell().Value = strconv.Itoa(c.ProductCount)
	}

	sheet.SetColWidth(1, 4, 16)
	return nil
}

func addTrendSheet(file *xlsx.File, trend []domain.TrendBucket) error {
	sheet, err := file.AddSheet("Trend")
	if err != nil {
		return fmt.Errorf("failed to add Trend sheet: %w", err)
	}

	addHeaderRow(sheet, "Date", "Inbound", "Outbound")

	for i := range trend {
		b := &trend[i]
		row := sheet.AddRow()
		row.AddCell().Value = b.Date
		row.AddCell().Value = strconv.Itoa(b.InboundTotal)
		row.AddCell().Value = strconv.Itoa(b.OutboundTotal)
	}

	sheet.SetColWidth(1, 3, 14)
	return nil
}

func addHeaderRow(sheet *xlsx.Sheet, headers ...string) {
	row := sheet.AddRow()
	for _, header := range headers {
		cell := row.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}
}
