package user

import (
	"testing"
	"time"

	"github.com/Kaiser-luz/rio-verde-loja/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{Customer: "antigo", CreatedAt: base},
		{Customer: "recente", CreatedAt: base.Add(48 * time.Hour)},
		{Customer: "meio", CreatedAt: base.Add(24 * time.Hour)},
	}

	sortNewestFirst(orders)

	assert.Equal(t, "recente", orders[0].Customer)
	assert.Equal(t, "meio", orders[1].Customer)
	assert.Equal(t, "antigo", orders[2].Customer)
}

func TestSortNewestFirstEmpty(t *testing.T) {
	var orders []models.Order
	sortNewestFirst(orders)
	assert.Empty(t, orders)
}
