package domain

// Selector descreve um seletor de múltipla escolha a ser exibido pelo cliente
type Selector struct {
	Key      string   `json:"key"`
	Label    string   `json:"label"`
	Options  []string `json:"options"`
	Selected []string `json:"selected"`
}

// BarSeries é uma série pronta para gráfico de barras
type BarSeries struct {
	Title  string    `json:"title"`
	Column string    `json:"column"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// TabView é o resultado de uma passada de renderização de uma aba
type TabView struct {
	TabID           string           `json:"tab_id"`
	Kind            string           `json:"kind"`
	Table           *Table           `json:"table,omitempty"`
	Selectors       []Selector       `json:"selectors,omitempty"`
	Chart           *BarSeries       `json:"chart,omitempty"`
	ChartReady      bool             `json:"chart_ready"`
	GroupCandidates []string         `json:"group_candidates,omitempty"`
	Datasets        []DatasetSummary `json:"datasets,omitempty"`
	Notices         []string         `json:"notices,omitempty"`
	RowCount        int              `json:"row_count"`
}

// AddNotice acrescenta uma mensagem informativa para o usuário
func (v *TabView) AddNotice(msg string) {
	v.Notices = append(v.Notices, msg)
}
