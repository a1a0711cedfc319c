package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Colunas com comportamento especial no pipeline de análise
const (
	ColumnDate     = "date"
	ColumnCurrency = "currency"
	ColumnYear     = "year"
	ColumnQuarter  = "quarter"
	ColumnMonth    = "month"
	ColumnTradeID  = "trade id"

	DefaultMonetaryColumn = "nominal"
)

// Row representa uma linha da tabela: nome da coluna -> valor.
// Valores possíveis: string, float64, int, time.Time ou nil (ausente).
type Row map[string]any

// Table é uma coleção ordenada de linhas com colunas nomeadas e sem tipo estático
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable cria uma tabela vazia com as colunas informadas
func NewTable(columns ...string) *Table {
	return &Table{
		Columns: append([]string{}, columns...),
		Rows:    make([]Row, 0),
	}
}

// Len retorna o número de linhas (tabela nil conta como vazia)
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// IsEmpty indica se a tabela não possui linhas
func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}

// HasColumn verifica se a coluna existe (comparação exata)
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Clone copia a tabela e cada linha; os valores em si são imutáveis
func (t *Table) Clone() *Table {
	if t == nil {
		return NewTable()
	}
	out := &Table{
		Columns: append([]string{}, t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}

// Head retorna uma nova tabela com no máximo n linhas
func (t *Table) Head(n int) *Table {
	if t == nil {
		return NewTable()
	}
	if n < 0 || n > len(t.Rows) {
		n = len(t.Rows)
	}
	out := NewTable(t.Columns...)
	out.Rows = append(out.Rows, t.Rows[:n]...)
	return out
}

// Filter retorna uma nova tabela apenas com as linhas aceitas por keep.
// As linhas são compartilhadas com a origem e não devem ser alteradas.
func (t *Table) Filter(keep func(Row) bool) *Table {
	if t == nil {
		return NewTable()
	}
	out := NewTable(t.Columns...)
	for _, r := range t.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Map aplica fn a uma cópia de cada linha e retorna a nova tabela
func (t *Table) Map(fn func(Row) Row) *Table {
	if t == nil {
		return NewTable()
	}
	out := &Table{
		Columns: append([]string{}, t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = fn(r.Clone())
	}
	return out
}

// WithColumns retorna uma cópia rasa da tabela acrescentando as colunas ausentes
func (t *Table) WithColumns(columns ...string) *Table {
	out := &Table{Columns: append([]string{}, t.Columns...), Rows: t.Rows}
	for _, c := range columns {
		if !out.HasColumn(c) {
			out.Columns = append(out.Columns, c)
		}
	}
	return out
}

// DropColumn remove a coluna da lista de colunas e de cada linha (em cópias)
func (t *Table) DropColumn(name string) *Table {
	if t == nil {
		return NewTable()
	}
	columns := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c != name {
			columns = append(columns, c)
		}
	}
	out := t.Map(func(r Row) Row {
		delete(r, name)
		return r
	})
	out.Columns = columns
	return out
}

// Values retorna os valores de uma coluna na ordem das linhas
func (t *Table) Values(column string) []any {
	values := make([]any, 0, t.Len())
	if t == nil {
		return values
	}
	for _, r := range t.Rows {
		values = append(values, r[column])
	}
	return values
}

// Clone copia o mapa da linha
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Concat concatena as tabelas na ordem recebida. As colunas resultantes são a união
// na ordem de primeira aparição; células ausentes em uma tabela ficam nil.
func Concat(tables ...*Table) *Table {
	out := NewTable()
	seen := make(map[string]struct{})
	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, c := range t.Columns {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out.Columns = append(out.Columns, c)
		}
	}

	for _, t := range tables {
		if t == nil {
			continue
		}
		for _, r := range t.Rows {
			row := make(Row, len(out.Columns))
			for _, c := range out.Columns {
				row[c] = r[c]
			}
			out.Rows = append(out.Rows, row)
		}
	}

	return out
}

// ToFloat converte um valor de célula em número quando possível
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) {
			return 0, false
		}
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// FormatValue gera a representação textual de uma célula para rótulos e exportação
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.DateTime)
	default:
		if f, ok := ToFloat(v); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return ""
	}
}
