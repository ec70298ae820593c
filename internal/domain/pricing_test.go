package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCity(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bogotá", "bogota"},
		{"  BOGOTA  ", "bogota"},
		{"Medellín", "medellin"},
		{"Chía", "chia"},
		{"cajicá", "cajica"},
		{"Cúcuta", "cucuta"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCity(tt.in), "input %q", tt.in)
	}
}

func TestGetDeliveryFee(t *testing.T) {
	local := GetDeliveryFee("Bogotá")
	assert.Equal(t, float64(DeliveryFeeLocalAmount), local.Amount)
	assert.Equal(t, DefaultCurrency, local.Currency)

	national := GetDeliveryFee("Medellín")
	assert.Equal(t, float64(DeliveryFeeNationalAmount), national.Amount)

	// pure and idempotent under repeated calls
	for i := 0; i < 3; i++ {
		assert.Equal(t, local, GetDeliveryFee("Bogotá"))
		assert.Equal(t, national, GetDeliveryFee("Medellín"))
	}

	// unknown cities fall back to the national tier
	assert.Equal(t, float64(DeliveryFeeNationalAmount), GetDeliveryFee("Leticia").Amount)
}

func TestEstimateDeliveryDateByTier(t *testing.T) {
	from := mustParseDay(t, "2025-03-10")

	assert.Equal(t, mustParseDay(t, "2025-03-12"), EstimateDeliveryDate("Bogotá", from))
	assert.Equal(t, mustParseDay(t, "2025-03-14"), EstimateDeliveryDate("Medellín", from))
}
