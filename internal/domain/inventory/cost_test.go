package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/inventory"
)

func batch(qty int64, cost int64) *entity.Batch {
	return &entity.Batch{
		UnitCost:     decimal.NewFromInt(cost),
		ReceivedQty:  decimal.NewFromInt(qty),
		RemainingQty: decimal.NewFromInt(qty),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// WeightedAverageCost — promedio ponderado sobre lotes
// ──────────────────────────────────────────────────────────────────────────────

// Vector de referencia: lotes de 20 @ 15000 y 50 @ 15500.
// (20*15000 + 50*15500) / 70 = 1075000/70 = 15357.142857... → 15357.1429
// con redondeo half-up a 4 decimales (CostScale).
func TestWeightedAverageCost_VectorExacto(t *testing.T) {
	batches := []*entity.Batch{
		batch(20, 15000),
		batch(50, 15500),
	}
	avg := inventory.WeightedAverageCost(batches)
	require.NotNil(t, avg)
	assert.Equal(t, "15357.1429", avg.String())
}

func TestWeightedAverageCost_UnSoloLote(t *testing.T) {
	avg := inventory.WeightedAverageCost([]*entity.Batch{batch(10, 2500)})
	require.NotNil(t, avg)
	assert.True(t, avg.Equal(decimal.NewFromInt(2500)))
}

// Lotes agotados no participan del promedio.
func TestWeightedAverageCost_IgnoraLotesAgotados(t *testing.T) {
	agotado := batch(100, 99999)
	agotado.RemainingQty = decimal.Zero

	avg := inventory.WeightedAverageCost([]*entity.Batch{agotado, batch(10, 2000)})
	require.NotNil(t, avg)
	assert.True(t, avg.Equal(decimal.NewFromInt(2000)))
}

// Sin stock en ningún lote: nil, el costo vigente del producto se conserva.
func TestWeightedAverageCost_SinStockDevuelveNil(t *testing.T) {
	agotado := batch(5, 1000)
	agotado.RemainingQty = decimal.Zero

	assert.Nil(t, inventory.WeightedAverageCost([]*entity.Batch{agotado}))
	assert.Nil(t, inventory.WeightedAverageCost(nil))
}

// El promedio no deriva tras muchas recepciones: punto fijo, no flotante.
func TestWeightedAverageCost_SinDerivaAcumulada(t *testing.T) {
	var batches []*entity.Batch
	for i := 0; i < 1000; i++ {
		batches = append(batches, batch(3, 10))
	}
	avg := inventory.WeightedAverageCost(batches)
	require.NotNil(t, avg)
	assert.True(t, avg.Equal(decimal.NewFromInt(10)), "1000 lotes idénticos deben promediar exacto, got %s", avg)
}

// ──────────────────────────────────────────────────────────────────────────────
// IncrementalAverageCost — promedio al momento de una entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestIncrementalAverageCost(t *testing.T) {
	got := inventory.IncrementalAverageCost(
		decimal.NewFromInt(20), decimal.NewFromInt(15000),
		decimal.NewFromInt(50), decimal.NewFromInt(15500),
	)
	assert.Equal(t, "15357.1429", got.String())
}

func TestIncrementalAverageCost_SinStockPrevio(t *testing.T) {
	got := inventory.IncrementalAverageCost(
		decimal.Zero, decimal.Zero,
		decimal.NewFromInt(10), decimal.NewFromInt(500),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(500)))
}

func TestIncrementalAverageCost_TotalCeroDevuelveCero(t *testing.T) {
	got := inventory.IncrementalAverageCost(decimal.Zero, decimal.NewFromInt(100), decimal.Zero, decimal.Zero)
	assert.True(t, got.IsZero())
}
