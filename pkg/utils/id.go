package utils

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	characters    = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	shortIDLength = 8
)

// GenerateShortID gera IDs curtos para planilhas e abas
func GenerateShortID() (string, error) {
	return gonanoid.Generate(characters, shortIDLength)
}

// GenerateUUID gera o identificador de cada upload
func GenerateUUID() string {
	return uuid.NewString()
}
