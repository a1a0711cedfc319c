package domain

import "time"

// Dataset é um arquivo enviado pelo usuário já convertido em tabela
type Dataset struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
	Table      *Table    `json:"-"`
}

// DatasetSummary é a visão resumida de um dataset para listagens
type DatasetSummary struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	UploadedAt time.Time `json:"uploaded_at"`
	Rows       int       `json:"rows"`
	Columns    []string  `json:"columns"`
}

func (d *Dataset) Summary() DatasetSummary {
	return DatasetSummary{
		ID:         d.ID,
		Filename:   d.Filename,
		UploadedAt: d.UploadedAt,
		Rows:       d.Table.Len(),
		Columns:    append([]string{}, d.Table.Columns...),
	}
}
