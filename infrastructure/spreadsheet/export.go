package spreadsheet

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/gzlb/dash/internal/domain"
)

const (
	defaultSheetName = "Data"
	maxSheetName     = 31
)

// ExportXLSX grava a tabela em uma planilha com o cabeçalho em negrito
func ExportXLSX(w io.Writer, table *domain.Table, sheetName string) error {
	if table == nil {
		table = domain.NewTable()
	}
	sheetName = sanitizeSheetName(sheetName)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return errors.Wrap(err, "renomear planilha")
	}

	header := make([]any, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return errors.Wrap(err, "escrever cabeçalho")
	}

	if len(table.Columns) > 0 {
		headerStyle, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: true},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		})
		if err != nil {
			return errors.Wrap(err, "criar estilo do cabeçalho")
		}

		lastCell, err := excelize.CoordinatesToCellName(len(table.Columns), 1)
		if err != nil {
			return errors.Wrap(err, "calcular célula final do cabeçalho")
		}
		if err := f.SetCellStyle(sheetName, "A1", lastCell, headerStyle); err != nil {
			return errors.Wrap(err, "aplicar estilo do cabeçalho")
		}
	}

	for i, r := range table.Rows {
		values := make([]any, len(table.Columns))
		for j, c := range table.Columns {
			values[j] = r[c]
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "calcular célula da linha")
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return errors.Wrapf(err, "escrever linha %d", i+1)
		}
	}

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "gravar xlsx")
	}
	return nil
}

func sanitizeSheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	name = strings.Trim(name, "'")

	if name == "" {
		return defaultSheetName
	}
	if runes := []rune(name); len(runes) > maxSheetName {
		name = string(runes[:maxSheetName])
	}
	return name
}
