package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/gzlb/dash/internal/domain"
	"github.com/gzlb/dash/pkg/utils"
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyFile           = errors.New("file has no header row")
	ErrMalformedFile       = errors.New("malformed file")
)

// Marcadores tratados como célula ausente, além de texto vazio
var missingMarkers = map[string]struct{}{
	"nan": {}, "na": {}, "n/a": {}, "null": {}, "none": {}, "#n/a": {},
}

// Parser converte arquivos enviados em tabelas
type Parser interface {
	Parse(filename string, r io.Reader) (*domain.Table, error)
}

type parser struct{}

func NewParser() Parser {
	return &parser{}
}

// IsSupported informa se a extensão do arquivo é aceita
func IsSupported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}

// Parse lê CSV ou XLSX (primeira planilha). A primeira linha é o cabeçalho.
func (p *parser) Parse(filename string, r io.Reader) (*domain.Table, error) {
	var (
		records [][]string
		err     error
	)

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		records, err = readCSV(r)
	case ".xlsx":
		records, err = readXLSX(r)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFileType, "arquivo %q (extensão %q)", filename, ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "ler arquivo %q", filename)
	}

	return buildTable(records)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedFile, "csv inválido: %v", err)
	}
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedFile, "xlsx inválido: %v", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, errors.Wrap(ErrMalformedFile, "nenhuma planilha encontrada")
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedFile, "xlsx inválido: %v", err)
	}
	raw, err := file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedFile, "xlsx inválido: %v", err)
	}

	dates := newDateCells(file, sheetName)
	for i, row := range rows {
		for j := range row {
			if i >= len(raw) || j >= len(raw[i]) {
				continue
			}
			if value, ok := dates.value(i, j, raw[i][j]); ok {
				row[j] = value
			}
		}
	}
	return rows, nil
}

// dateCells converte células com formato de data a partir do valor bruto,
// já que o texto exibido depende do formato (ex.: "1/15/24 13:45")
type dateCells struct {
	file     *excelize.File
	sheet    string
	date1904 bool
	styles   map[int]bool
}

func newDateCells(file *excelize.File, sheet string) *dateCells {
	d := &dateCells{file: file, sheet: sheet, styles: map[int]bool{}}
	if props, err := file.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		d.date1904 = *props.Date1904
	}
	return d
}

func (d *dateCells) value(row, col int, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return "", false
	}
	styleID, err := d.file.GetCellStyle(d.sheet, cell)
	if err != nil || !d.isDateStyle(styleID) {
		return "", false
	}

	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// células do tipo "d" guardam a data em ISO 8601
		if _, ok := utils.ParseTimestamp(raw); ok {
			return raw, true
		}
		return "", false
	}

	t, err := excelize.ExcelDateToTime(serial, d.date1904)
	if err != nil {
		return "", false
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly), true
	}
	return t.Format(time.DateTime), true
}

func (d *dateCells) isDateStyle(styleID int) bool {
	if isDate, ok := d.styles[styleID]; ok {
		return isDate
	}

	isDate := false
	if style, err := d.file.GetStyle(styleID); err == nil && style != nil {
		if style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		} else {
			isDate = isBuiltInDateFormat(style.NumFmt)
		}
	}
	d.styles[styleID] = isDate
	return isDate
}

// Formatos internos de data/hora do Excel, incluindo as variantes CJK
func isBuiltInDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormatCode procura tokens de data/hora fora de trechos entre aspas,
// colchetes ([Red], [$-409]) e caracteres escapados
func isDateFormatCode(code string) bool {
	section, _, _ := strings.Cut(code, ";")
	inQuote, inBracket, escaped := false, false, false
	for _, r := range strings.ToLower(section) {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			inQuote = r != '"'
		case inBracket:
			inBracket = r != ']'
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		case strings.ContainsRune("ydmhs", r):
			return true
		}
	}
	return false
}

func buildTable(records [][]string) (*domain.Table, error) {
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	columns := headerColumns(records[0])
	if len(columns) == 0 {
		return nil, ErrEmptyFile
	}

	table := domain.NewTable(columns...)
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}

		row := make(domain.Row, len(columns))
		for i, c := range columns {
			if i < len(record) {
				row[c] = ParseCell(record[i])
			} else {
				row[c] = nil
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// headerColumns nomeia colunas sem título e desambigua nomes repetidos (nome.1, nome.2)
func headerColumns(header []string) []string {
	last := len(header)
	for last > 0 && strings.TrimSpace(header[last-1]) == "" {
		last--
	}

	columns := make([]string, 0, last)
	used := make(map[string]int, last)
	for i, h := range header[:last] {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}

		if n, dup := used[name]; dup {
			base := name
			for {
				n++
				name = fmt.Sprintf("%s.%d", base, n)
				if _, taken := used[name]; !taken {
					break
				}
			}
			used[base] = n
		}
		used[name] = 0
		columns = append(columns, name)
	}
	return columns
}

// ParseCell tipa o conteúdo textual de uma célula: vazio vira ausente, texto
// numérico vira float64 e o restante permanece como texto
func ParseCell(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	if _, missing := missingMarkers[strings.ToLower(s)]; missing {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return s
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
