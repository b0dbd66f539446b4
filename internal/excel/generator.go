package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/farmkart/farmkart-api/internal/repository"
	"github.com/farmkart/farmkart-api/internal/service"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateSpendReport writes a summary sheet plus one sheet per product
// category.
func (g *Generator) GenerateSpendReport(report *service.SpendReport) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, report); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, category := range report.Categories {
		sheetName := buildSheetName(category.Category, usedNames)
		usedNames[sheetName] = struct{}{}

		file.NewSheet(sheetName)
		if err := g.writeCategory(file, sheetName, report, category); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, report *service.SpendReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Report")
	set("B1", "Spend analysis")
	set("A2", "Buyer")
	set("B2", report.BuyerName)
	set("A3", "Generated at")
	set("B3", formatDate(report.GeneratedAt))
	set("A4", "Total orders")
	set("B4", report.OrderVolume)
	set("A5", "Total spend")
	set("B5", formatAmount(report.TotalSpend))

	tableRow := 7
	set(fmt.Sprintf("A%d", tableRow), "Category")
	set(fmt.Sprintf("B%d", tableRow), "Orders")
	set(fmt.Sprintf("C%d", tableRow), "Spend")

	for i, category := range report.Categories {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), category.Category)
		set(fmt.Sprintf("B%d", row), category.OrderCount)
		set(fmt.Sprintf("C%d", row), formatAmount(category.TotalValue))
	}

	_ = file.SetColWidth(sheet, "A", "A", 32)
	_ = file.SetColWidth(sheet, "B", "B", 14)
	_ = file.SetColWidth(sheet, "C", "C", 16)
	return nil
}

func (g *Generator) writeCategory(file *excelize.File, sheet string, report *service.SpendReport, category repository.CategorySpend) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Category")
	set("B1", category.Category)
	set("A2", "Buyer")
	set("B2", report.BuyerName)
	set("A3", "Orders")
	set("B3", category.OrderCount)
	set("A4", "Items purchased")
	set("B4", fmt.Sprintf("%.2f", category.TotalItems))
	set("A5", "Spend")
	set("B5", formatAmount(category.TotalValue))
	set("A6", "Share of total")
	set("B6", formatShare(category.TotalValue, report.TotalSpend))

	_ = file.SetColWidth(sheet, "A", "A", 20)
	_ = file.SetColWidth(sheet, "B", "B", 32)
	return nil
}

func buildSheetName(name string, used map[string]struct{}) string {
	base := sanitizeSheetName(name)
	if len(base) > 31 {
		base = base[:31]
	}

	candidate := base
	counter := 2
	for {
		if _, exists := used[candidate]; !exists {
			return candidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		candidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Category"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = replacer.Replace(value)
	value = strings.TrimSpace(value)
	if value == "" {
		return "Category"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

func formatShare(part, total float64) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", part/total*100)
}
