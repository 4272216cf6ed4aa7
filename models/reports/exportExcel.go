package reports

import (
	"bytes"
	"context"
	"fmt"

	"github.com/benela/benela_backend/config"
	"github.com/benela/benela_backend/models"
	"github.com/benela/benela_backend/utils"
	"github.com/xuri/excelize/v2"
)

const (
	ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportSheet      = "Sheet1"
)

func writeWorkbook(f *excelize.File) ([]byte, error) {
	defer f.Close()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setHeaders(f *excelize.File, headers ...string) error {
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return err
		}
	}
	return nil
}

// ExportRevenueSeries renders GetRevenueSeries as a two column workbook.
func ExportRevenueSeries(ctx context.Context, months int) ([]byte, error) {
	series, err := GetRevenueSeries(ctx, months)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := setHeaders(f, "Month", "Revenue"); err != nil {
		return nil, err
	}
	for i, p := range series {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(exportSheet, "A"+row, p.Month)
		f.SetCellValue(exportSheet, "B"+row, p.Revenue.InexactFloat64())
	}
	return writeWorkbook(f)
}

// ExportTransactions renders every transaction, newest first.
func ExportTransactions(ctx context.Context) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "reports.ExportTransactions")
	defer span.End()

	var records []*models.Transaction
	if err := configDB(ctx).Order("date DESC, id DESC").Find(&records).Error; err != nil {
		config.LogError(config.GetLogger(), "reports", "ExportTransactions", "find transactions", nil, err)
		return nil, err
	}

	f := excelize.NewFile()
	if err := setHeaders(f, "Date", "Description", "Category", "Type", "Status", "Amount", "Notes"); err != nil {
		return nil, err
	}
	for i, t := range records {
		row := fmt.Sprint(i + 2)
		f.SetCellValue(exportSheet, "A"+row, t.Date.Format("2006-01-02"))
		f.SetCellValue(exportSheet, "B"+row, t.Description)
		f.SetCellValue(exportSheet, "C"+row, t.Category)
		f.SetCellValue(exportSheet, "D"+row, string(t.Type))
		f.SetCellValue(exportSheet, "E"+row, string(t.Status))
		f.SetCellValue(exportSheet, "F"+row, t.Amount.InexactFloat64())
		f.SetCellValue(exportSheet, "G"+row, utils.DereferencePtr(t.Notes, ""))
	}
	return writeWorkbook(f)
}

// ArchiveExport uploads a generated workbook to the exports bucket and
// returns its access url.
func ArchiveExport(ctx context.Context, prefix string, data []byte) (string, error) {
	objectName := fmt.Sprintf("exports/%s-%s.xlsx", prefix, utils.GenerateUniqueFilename())
	if err := utils.UploadBytesToGCS(ctx, objectName, data, ExcelContentType); err != nil {
		config.LogError(config.GetLogger(), "reports", "ArchiveExport", "upload", objectName, err)
		return "", err
	}
	return utils.BuildObjectAccessURL(objectName), nil
}
