package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateShortID(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id, err := GenerateShortID()
		require.NoError(t, err)
		assert.Len(t, id, shortIDLength)
		assert.NotContains(t, seen, id)
		seen[id] = struct{}{}
	}
}

func TestGenerateUUID(t *testing.T) {
	_, err := uuid.Parse(GenerateUUID())
	assert.NoError(t, err)
}
