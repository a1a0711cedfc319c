package filtering

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gzlb/dash/internal/domain"
	"github.com/gzlb/dash/pkg/log"
	"github.com/gzlb/dash/pkg/utils"
)

var ErrUnknownLabel = errors.New("unknown facet label")

// Selection contém os valores escolhidos pelo usuário em cada seletor.
// Seleção vazia em uma faceta significa "sem restrição".
type Selection struct {
	Years    []int    `json:"years"`
	Quarters []string `json:"quarters"`
	Months   []string `json:"months"`
}

// Validate rejeita rótulos de trimestre ou mês desconhecidos
func (s Selection) Validate() error {
	for _, q := range s.Quarters {
		if _, ok := domain.QuarterFromLabel(q); !ok {
			return fmt.Errorf("%w: trimestre %q", ErrUnknownLabel, q)
		}
	}
	for _, m := range s.Months {
		if _, ok := domain.MonthFromLabel(m); !ok {
			return fmt.Errorf("%w: mês %q", ErrUnknownLabel, m)
		}
	}
	return nil
}

// IsEmpty indica que nenhuma faceta está restrita
func (s Selection) IsEmpty() bool {
	return len(s.Years) == 0 && len(s.Quarters) == 0 && len(s.Months) == 0
}

// Result é a saída de uma passada do filtro de datas
type Result struct {
	Table     *domain.Table     `json:"table"`
	Selectors []domain.Selector `json:"selectors,omitempty"`
	RowCount  int               `json:"row_count"`
	// Applied é falso quando a tabela não tem coluna de data
	Applied bool `json:"applied"`
}

// DateFilter define a interface do filtro por ano, trimestre e mês
type DateFilter interface {
	Render(table *domain.Table, keyPrefix string, selection Selection) *Result
}

type Service struct{}

func NewService() DateFilter {
	return &Service{}
}

// Render deriva as facetas de data e aplica os filtros em sequência: ano, depois
// trimestre (opções calculadas sobre o resultado do ano) e por fim mês.
func (s *Service) Render(table *domain.Table, keyPrefix string, selection Selection) *Result {
	if table == nil || !table.HasColumn(domain.ColumnDate) {
		return &Result{Table: table, RowCount: table.Len()}
	}

	filtered := DeriveFacets(table)
	selectors := make([]domain.Selector, 0, 3)

	years := distinctInts(filtered, domain.ColumnYear)
	selectors = append(selectors, domain.Selector{
		Key:      selectorKey(keyPrefix, domain.ColumnYear),
		Label:    "Year",
		Options:  intsToStrings(years),
		Selected: intsToStrings(selection.Years),
	})
	if len(selection.Years) > 0 {
		filtered = filtered.Filter(matchAny(domain.ColumnYear, toSet(selection.Years)))
	}

	quarters := distinctInts(filtered, domain.ColumnQuarter)
	selectors = append(selectors, domain.Selector{
		Key:      selectorKey(keyPrefix, domain.ColumnQuarter),
		Label:    "Quarter",
		Options:  toLabels(quarters, domain.QuarterLabel),
		Selected: normalizeLabels(selection.Quarters, domain.QuarterFromLabel, domain.QuarterLabel),
	})
	if len(selection.Quarters) > 0 {
		set := fromLabels(selection.Quarters, domain.QuarterFromLabel)
		filtered = filtered.Filter(matchAny(domain.ColumnQuarter, set))
	}

	months := distinctInts(filtered, domain.ColumnMonth)
	selectors = append(selectors, domain.Selector{
		Key:      selectorKey(keyPrefix, domain.ColumnMonth),
		Label:    "Month",
		Options:  toLabels(months, domain.MonthLabel),
		Selected: normalizeLabels(selection.Months, domain.MonthFromLabel, domain.MonthLabel),
	})
	if len(selection.Months) > 0 {
		set := fromLabels(selection.Months, domain.MonthFromLabel)
		filtered = filtered.Filter(matchAny(domain.ColumnMonth, set))
	}

	log.L.WithFields(log.Fields{
		"key_prefix": keyPrefix,
		"rows_in":    table.Len(),
		"rows_out":   filtered.Len(),
	}).Debug("filtering: filtro de datas aplicado")

	return &Result{
		Table:     filtered,
		Selectors: selectors,
		RowCount:  filtered.Len(),
		Applied:   true,
	}
}

// DeriveFacets retorna uma nova tabela com a coluna de data convertida e as colunas
// year, quarter e month. Datas inválidas geram facetas ausentes (nil).
func DeriveFacets(table *domain.Table) *domain.Table {
	out := table.Map(func(r domain.Row) domain.Row {
		ts, ok := utils.ParseTimestamp(r[domain.ColumnDate])
		if !ok {
			r[domain.ColumnDate] = nil
			r[domain.ColumnYear] = nil
			r[domain.ColumnQuarter] = nil
			r[domain.ColumnMonth] = nil
			return r
		}

		month := int(ts.Month())
		r[domain.ColumnDate] = ts
		r[domain.ColumnYear] = ts.Year()
		r[domain.ColumnQuarter] = domain.QuarterOfMonth(month)
		r[domain.ColumnMonth] = month
		return r
	})

	return out.WithColumns(domain.ColumnYear, domain.ColumnQuarter, domain.ColumnMonth)
}

func selectorKey(prefix, facet string) string {
	if prefix == "" {
		return facet
	}
	return prefix + "_" + facet
}

func matchAny(column string, set map[int]struct{}) func(domain.Row) bool {
	return func(r domain.Row) bool {
		v, ok := r[column].(int)
		if !ok {
			return false
		}
		_, found := set[v]
		return found
	}
}

func distinctInts(table *domain.Table, column string) []int {
	seen := make(map[int]struct{})
	values := make([]int, 0)
	for _, r := range table.Rows {
		v, ok := r[column].(int)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Ints(values)
	return values
}

func toSet(values []int) map[int]struct{} {
	set := make(map[int]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func fromLabels(labels []string, parse func(string) (int, bool)) map[int]struct{} {
	set := make(map[int]struct{}, len(labels))
	for _, l := range labels {
		if v, ok := parse(l); ok {
			set[v] = struct{}{}
		}
	}
	return set
}

// normalizeLabels devolve os rótulos na grafia canônica ("q1" vira "Q1"),
// sem repetições e ignorando os desconhecidos
func normalizeLabels(labels []string, parse func(string) (int, bool), label func(int) (string, bool)) []string {
	out := make([]string, 0, len(labels))
	seen := make(map[int]struct{}, len(labels))
	for _, l := range labels {
		v, ok := parse(l)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		if canonical, ok := label(v); ok {
			out = append(out, canonical)
		}
	}
	return out
}

func toLabels(values []int, label func(int) (string, bool)) []string {
	labels := make([]string, 0, len(values))
	for _, v := range values {
		if l, ok := label(v); ok {
			labels = append(labels, l)
		}
	}
	return labels
}

func intsToStrings(values []int) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprintf("%d", v))
	}
	return out
}
