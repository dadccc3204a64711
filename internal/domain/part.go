package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part é um item do estoque de peças da frota.
// Quantity só muda através de um ajuste de estoque (ver StockMovement).
type Part struct {
	ID           string          `json:"id" db:"id"`
	Number       string          `json:"number" db:"number"`
	Name         string          `json:"name" db:"name"`
	Description  string          `json:"description" db:"description"`
	Quantity     int             `json:"quantity" db:"quantity"`
	MinimumStock int             `json:"minimumStock" db:"minimum_stock"`
	Cost         decimal.Decimal `json:"cost" db:"cost" swaggertype:"number"`
	Version      int             `json:"version" db:"version"` // incrementada a cada ajuste
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}

// IsLowStock indica se a peça atingiu o ponto de reposição.
func (p Part) IsLowStock() bool {
	return p.Quantity <= p.MinimumStock
}

// PartFilter define paginação para listagens de peças.
type PartFilter struct {
	Page  int
	Limit int
}
