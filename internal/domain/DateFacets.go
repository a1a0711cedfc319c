package domain

import "strings"

var quarterLabels = [4]string{"Q1", "Q2", "Q3", "Q4"}

var monthLabels = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// QuarterLabel converte o trimestre (1-4) no rótulo exibido ("Q1".."Q4")
func QuarterLabel(quarter int) (string, bool) {
	if quarter < 1 || quarter > len(quarterLabels) {
		return "", false
	}
	return quarterLabels[quarter-1], true
}

// QuarterFromLabel faz o caminho inverso de QuarterLabel
func QuarterFromLabel(label string) (int, bool) {
	label = strings.TrimSpace(label)
	for i, l := range quarterLabels {
		if strings.EqualFold(l, label) {
			return i + 1, true
		}
	}
	return 0, false
}

// MonthLabel converte o mês (1-12) no nome em inglês
func MonthLabel(month int) (string, bool) {
	if month < 1 || month > len(monthLabels) {
		return "", false
	}
	return monthLabels[month-1], true
}

// MonthFromLabel faz o caminho inverso de MonthLabel
func MonthFromLabel(label string) (int, bool) {
	label = strings.TrimSpace(label)
	for i, l := range monthLabels {
		if strings.EqualFold(l, label) {
			return i + 1, true
		}
	}
	return 0, false
}

// QuarterOfMonth retorna o trimestre ao qual o mês pertence
func QuarterOfMonth(month int) int {
	return (month-1)/3 + 1
}
