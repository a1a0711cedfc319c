package aggregating

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gzlb/dash/internal/domain"
	"github.com/gzlb/dash/pkg/apiErrors"
	"github.com/gzlb/dash/pkg/log"
)

// MissingLabel é o rótulo do grupo de valores ausentes no gráfico
const MissingLabel = "N/A"

// Colunas que nunca servem de chave de agrupamento (comparação sem caixa)
var excludedGroupColumns = []string{
	domain.ColumnDate,
	domain.ColumnYear,
	domain.ColumnQuarter,
	domain.ColumnMonth,
	domain.ColumnTradeID,
}

// Request contém as escolhas do usuário para uma passada de agregação
type Request struct {
	GroupColumns   []string `json:"group_columns"`
	MonetaryColumn string   `json:"monetary_column"`
	Convert        bool     `json:"convert"`
}

// Result é a tabela agregada (ou as linhas brutas) com os metadados da passada
type Result struct {
	Table             *domain.Table     `json:"table"`
	GroupCandidates   []string          `json:"group_candidates"`
	Grouped           bool              `json:"grouped"`
	Converted         bool              `json:"converted"`
	Chart             *domain.BarSeries `json:"chart,omitempty"`
	ChartReady        bool              `json:"chart_ready"`
	Notices           []string          `json:"notices,omitempty"`
	UnknownCurrencies []string          `json:"unknown_currencies,omitempty"`
}

type Service struct {
	rates           domain.RateTable
	defaultMonetary string
}

// NewService cria o agregador com uma tabela de taxas fixa para toda a execução
func NewService(rates domain.RateTable, defaultMonetary string) Aggregator {
	if rates == nil {
		rates = domain.RateTable{}
	}
	if defaultMonetary == "" {
		defaultMonetary = domain.DefaultMonetaryColumn
	}
	return &Service{
		rates:           rates,
		defaultMonetary: defaultMonetary,
	}
}

func (s *Service) Rates() domain.RateTable {
	return s.rates
}

// Aggregate aplica a conversão de moeda (quando pedida), valida as colunas de
// agrupamento e soma a coluna monetária por grupo. Sem colunas de agrupamento a
// tabela convertida é devolvida como está.
func (s *Service) Aggregate(table *domain.Table, req Request) (*Result, error) {
	monetary := req.MonetaryColumn
	if monetary == "" {
		monetary = s.defaultMonetary
	}

	if !table.HasColumn(monetary) {
		return nil, NewAnalysisError(ErrMissingColumn, apiErrors.ErrMissingColumn, monetary,
			fmt.Sprintf("coluna monetária %q não encontrada", monetary))
	}

	result := &Result{}
	working := table

	if req.Convert {
		if table.HasColumn(domain.ColumnCurrency) {
			converted, unknown := s.ConvertCurrency(table, monetary)
			working = converted
			result.Converted = true
			result.UnknownCurrencies = unknown
			if len(unknown) > 0 {
				result.Notices = append(result.Notices,
					fmt.Sprintf("Unknown currency codes kept unconverted: %s", strings.Join(unknown, ", ")))
			}
		} else {
			result.Notices = append(result.Notices, "No currency column found; conversion skipped")
		}
	}

	result.GroupCandidates = s.GroupCandidates(working, monetary)

	groupColumns, err := validateGroupColumns(working, req.GroupColumns, result.GroupCandidates)
	if err != nil {
		return nil, err
	}

	if len(groupColumns) == 0 {
		result.Table = working
		return result, nil
	}

	result.Table = groupAndSum(working, groupColumns, monetary)
	result.Grouped = true

	if len(groupColumns) == 1 {
		result.Chart = buildChart(result.Table, groupColumns[0], monetary)
		result.ChartReady = true
	} else {
		result.Notices = append(result.Notices, "Select exactly one group column to draw a chart")
	}

	log.L.WithFields(log.Fields{
		"group_columns": groupColumns,
		"groups":        result.Table.Len(),
		"converted":     result.Converted,
	}).Debug("aggregating: agregação concluída")

	return result, nil
}

// GroupCandidates retorna as colunas na ordem da tabela, exceto a coluna monetária
// e as colunas de data/identificador
func (s *Service) GroupCandidates(table *domain.Table, monetaryColumn string) []string {
	if monetaryColumn == "" {
		monetaryColumn = s.defaultMonetary
	}

	candidates := make([]string, 0)
	if table == nil {
		return candidates
	}

	for _, c := range table.Columns {
		if strings.EqualFold(c, monetaryColumn) || isExcluded(c) {
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// ConvertCurrency gera uma nova tabela com a coluna monetária multiplicada pela taxa
// da moeda de cada linha e sem a coluna de moeda. Códigos desconhecidos mantêm o
// valor original e são devolvidos em ordem alfabética.
func (s *Service) ConvertCurrency(table *domain.Table, monetaryColumn string) (*domain.Table, []string) {
	unknown := make(map[string]struct{})

	converted := table.Map(func(r domain.Row) domain.Row {
		code, _ := r[domain.ColumnCurrency].(string)
		rate, ok := s.rates.Rate(code)
		if !ok {
			if normalized := domain.NormalizeCurrencyCode(code); normalized != "" {
				unknown[normalized] = struct{}{}
			}
			return r
		}

		if amount, isNumber := domain.ToFloat(r[monetaryColumn]); isNumber {
			r[monetaryColumn] = amount * rate
		}
		return r
	})

	codes := make([]string, 0, len(unknown))
	for c := range unknown {
		codes = append(codes, c)
	}
	sort.Strings(codes)

	if len(codes) > 0 {
		log.L.WithField("unknown_currencies", codes).Debug("aggregating: moedas sem taxa mantidas sem conversão")
	}

	return converted.DropColumn(domain.ColumnCurrency), codes
}

func isExcluded(column string) bool {
	for _, e := range excludedGroupColumns {
		if strings.EqualFold(column, e) {
			return true
		}
	}
	return false
}

func validateGroupColumns(table *domain.Table, requested, candidates []string) ([]string, error) {
	allowed := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		allowed[c] = struct{}{}
	}

	seen := make(map[string]struct{}, len(requested))
	columns := make([]string, 0, len(requested))
	for _, c := range requested {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}

		if !table.HasColumn(c) {
			return nil, NewAnalysisError(ErrMissingColumn, apiErrors.ErrMissingColumn, c,
				fmt.Sprintf("coluna de agrupamento %q não encontrada", c))
		}
		if _, ok := allowed[c]; !ok {
			return nil, NewAnalysisError(ErrInvalidGroupColumn, apiErrors.ErrInvalidGroupColumn, c,
				fmt.Sprintf("coluna %q não pode ser usada para agrupar", c))
		}
		columns = append(columns, c)
	}
	return columns, nil
}

type group struct {
	values []any
	sum    float64
}

func groupAndSum(table *domain.Table, groupColumns []string, monetary string) *domain.Table {
	groups := make(map[string]*group)
	order := make([]*group, 0)

	for _, r := range table.Rows {
		key := groupKey(r, groupColumns)

		g, ok := groups[key]
		if !ok {
			values := make([]any, len(groupColumns))
			for i, c := range groupColumns {
				values[i] = r[c]
			}
			g = &group{values: values}
			groups[key] = g
			order = append(order, g)
		}

		if amount, isNumber := domain.ToFloat(r[monetary]); isNumber {
			g.sum += amount
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return compareTuples(order[i].values, order[j].values) < 0
	})

	columns := append(append([]string{}, groupColumns...), monetary)
	out := domain.NewTable(columns...)
	for _, g := range order {
		row := make(domain.Row, len(columns))
		for i, c := range groupColumns {
			row[c] = g.values[i]
		}
		row[monetary] = g.sum
		out.Rows = append(out.Rows, row)
	}
	return out
}

// keyPart gera a parte da chave de um valor; inteiros e floats iguais caem no mesmo grupo
// groupKey identifica a tupla exata de valores. Cada parte é citada com
// strconv.Quote para que nenhum valor se confunda com o separador.
func groupKey(r domain.Row, columns []string) string {
	var b strings.Builder
	for _, c := range columns {
		b.WriteString(strconv.Quote(keyPart(r[c])))
		b.WriteByte(',')
	}
	return b.String()
}

func keyPart(v any) string {
	if v == nil {
		return "n:"
	}
	switch val := v.(type) {
	case string:
		return "s:" + val
	case time.Time:
		return "t:" + val.UTC().Format(time.RFC3339Nano)
	}
	if f, ok := numeric(v); ok {
		return "f:" + strconv.FormatFloat(f, 'g', -1, 64)
	}
	return "o:" + fmt.Sprint(v)
}

func numeric(v any) (float64, bool) {
	switch v.(type) {
	case float64, float32, int, int32, int64:
		return domain.ToFloat(v)
	}
	return 0, false
}

// rank ordena tipos diferentes: números, datas, textos e por último ausentes
func rank(v any) int {
	if v == nil {
		return 3
	}
	if _, ok := v.(time.Time); ok {
		return 1
	}
	if _, ok := numeric(v); ok {
		return 0
	}
	return 2
}

func compareValues(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra - rb
	}

	switch ra {
	case 0:
		fa, _ := numeric(a)
		fb, _ := numeric(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case 1:
		return a.(time.Time).Compare(b.(time.Time))
	case 2:
		return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
	return 0
}

func compareTuples(a, b []any) int {
	for i := range a {
		if c := compareValues(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

func buildChart(table *domain.Table, column, monetary string) *domain.BarSeries {
	chart := &domain.BarSeries{
		Title:  fmt.Sprintf("%s by %s", monetary, column),
		Column: column,
		Labels: make([]string, 0, table.Len()),
		Values: make([]float64, 0, table.Len()),
	}

	for _, r := range table.Rows {
		label := MissingLabel
		if r[column] != nil {
			label = domain.FormatValue(r[column])
		}
		amount, _ := domain.ToFloat(r[monetary])
		chart.Labels = append(chart.Labels, label)
		chart.Values = append(chart.Values, amount)
	}
	return chart
}
