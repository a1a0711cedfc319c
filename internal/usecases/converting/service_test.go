package converting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gzlb/dash/infrastructure/repository/mocks"
	"github.com/gzlb/dash/internal/domain"
)

func TestParseRates(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []domain.CurrencyRate
		wantErr bool
	}{
		{
			name: "duas moedas",
			raw: "USD:1.0,EUR:1.05",
			want: []domain.CurrencyRate{{Code: "USD", Rate: 1}, {Code: "EUR", Rate: 1.05}},
		},
		{
			name: "espaços e minúsculas",
			raw: " usd : 1 , , gbp:1.25 ",
			want: []domain.CurrencyRate{{Code: "USD", Rate: 1}, {Code: "GBP", Rate: 1.25}},
		},
		{name: "vazia", raw: "", want: []domain.CurrencyRate{}},
		{name: "sem separador", raw: "USD1.0", wantErr: true},
		{name: "taxa zero", raw: "USD:0", wantErr: true},
		{name: "taxa negativa", raw: "USD:-1", wantErr: true},
		{name: "taxa não numérica", raw: "USD:abc", wantErr: true},
		{name: "código vazio", raw: ":1.0", wantErr: true},
		{name: "moeda repetida", raw: "USD:1,usd:2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRates(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRates)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadRates(t *testing.T) {
	ctx := context.Background()

	t.Run("sem repositório usa a configuração", func(t *testing.T) {
		rates, err := NewService(nil, "USD:1,EUR:1.05").LoadRates(ctx)
		require.NoError(t, err)

		rate, ok := rates.Rate("EUR")
		assert.True(t, ok)
		assert.Equal(t, 1.05, rate)
	})

	t.Run("taxas do banco têm prioridade", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockCurrencyRateRepository(ctrl)

		repo.EXPECT().
			ListRates(gomock.Any()).
			Return([]domain.CurrencyRate{{Code: "EUR", Rate: 1.1}}, nil)

		rates, err := NewService(repo, "USD:1,EUR:1.05").LoadRates(ctx)
		require.NoError(t, err)

		assert.Equal(t, domain.RateTable{"EUR": 1.1}, rates)
	})

	t.Run("banco vazio recebe as taxas da configuração", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockCurrencyRateRepository(ctrl)

		repo.EXPECT().ListRates(gomock.Any()).Return(nil, nil)
		repo.EXPECT().
			SaveOrUpdate(gomock.Any(), []domain.CurrencyRate{{Code: "EUR", Rate: 1.05}, {Code: "USD", Rate: 1}}).
			Return(nil)

		rates, err := NewService(repo, "USD:1,EUR:1.05").LoadRates(ctx)
		require.NoError(t, err)

		assert.Len(t, rates, 2)
	})

	t.Run("erro do banco é propagado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockCurrencyRateRepository(ctrl)
		dbErr := errors.New("conexão recusada")

		repo.EXPECT().ListRates(gomock.Any()).Return(nil, dbErr)

		_, err := NewService(repo, "USD:1").LoadRates(ctx)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("configuração inválida", func(t *testing.T) {
		_, err := NewService(nil, "USD:zero").LoadRates(ctx)
		assert.ErrorIs(t, err, ErrInvalidRates)
	})
}
