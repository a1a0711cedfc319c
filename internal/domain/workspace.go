package domain

// Tipos de aba disponíveis no registro padrão
const (
	TabKindUpload   = "upload"
	TabKindPlots    = "plots"
	TabKindAnalysis = "analysis"
)

type TabRef struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Title string `json:"title"`
}

// Sheet agrupa abas em uma ordem definida pelo usuário
type Sheet struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Tabs   []TabRef `json:"tabs"`
	Active bool     `json:"active"`
}
