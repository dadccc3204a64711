package domain

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MovementType classifica a causa de um movimento de estoque.
type MovementType string

const (
	MovementPurchase    MovementType = "PURCHASE"
	MovementConsumption MovementType = "CONSUMPTION"
	MovementAdjustment  MovementType = "ADJUSTMENT"
	MovementTransfer    MovementType = "TRANSFER"
	MovementReturn      MovementType = "RETURN"
	MovementDamage      MovementType = "DAMAGE"
	MovementExpired     MovementType = "EXPIRED"
)

// MovementTypes lista todos os tipos aceitos, na ordem de exibição.
var MovementTypes = []MovementType{
	MovementPurchase,
	MovementConsumption,
	MovementAdjustment,
	MovementTransfer,
	MovementReturn,
	MovementDamage,
	MovementExpired,
}

// ParseMovementType converte a string recebida no tipo fechado.
// Valores desconhecidos são rejeitados (ok=false), nunca convertidos para um padrão.
func ParseMovementType(s string) (MovementType, bool) {
	candidate := MovementType(strings.ToUpper(strings.TrimSpace(s)))
	for _, t := range MovementTypes {
		if t == candidate {
			return t, true
		}
	}
	return "", false
}

// StockMovement é uma entrada imutável do livro-razão de estoque.
// Invariantes: NewStock = PreviousStock + Quantity e NewStock >= 0.
type StockMovement struct {
	ID            string           `json:"id"`
	PartID        string           `json:"partId"`
	Type          MovementType     `json:"type"`
	Quantity      int              `json:"quantity"`
	PreviousStock int              `json:"previousStock"`
	NewStock      int              `json:"newStock"`
	Reason        string           `json:"reason"`
	ReferenceID   string           `json:"referenceId,omitempty"`
	ReferenceType string           `json:"referenceType,omitempty"`
	Cost          *decimal.Decimal `json:"cost,omitempty" swaggertype:"number"`
	TotalCost     *decimal.Decimal `json:"totalCost,omitempty" swaggertype:"number"`
	Notes         string           `json:"notes,omitempty"`
	CreatedBy     string           `json:"createdBy"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// StockAdjustmentRequest é o payload de POST /v1/parts/{partId}/adjust-stock.
// PartID e CreatedBy vêm da rota e do token, não do corpo.
type StockAdjustmentRequest struct {
	PartID        string           `json:"-"`
	Quantity      int              `json:"quantity" example:"-3"`
	Reason        string           `json:"reason" example:"Troca de pastilhas de freio"`
	Type          string           `json:"type,omitempty" example:"CONSUMPTION"`
	ReferenceID   string           `json:"referenceId,omitempty"`
	ReferenceType string           `json:"referenceType,omitempty" example:"SERVICE_ENTRY"`
	Cost          *decimal.Decimal `json:"cost,omitempty" swaggertype:"number"`
	Notes         string           `json:"notes,omitempty"`
	CreatedBy     string           `json:"-"`
}

// StockAdjustment é o ajuste já validado, pronto para o repositório.
type StockAdjustment struct {
	PartID        string
	Quantity      int
	Type          MovementType
	Reason        string
	ReferenceID   string
	ReferenceType string
	Cost          *decimal.Decimal
	Notes         string
	CreatedBy     string
}

// AppliedAdjustment ecoa o ajuste aplicado na resposta.
type AppliedAdjustment struct {
	Quantity      int          `json:"quantity"`
	Type          MovementType `json:"type"`
	Reason        string       `json:"reason"`
	PreviousStock int          `json:"previousStock"`
	NewStock      int          `json:"newStock"`
}

// StockAdjustmentResult é o resultado de um ajuste: peça atualizada e movimento criado
// na mesma transação.
type StockAdjustmentResult struct {
	Part       Part              `json:"part"`
	Movement   StockMovement     `json:"movement"`
	Adjustment AppliedAdjustment `json:"adjustment"`
}

// MaxStock é o maior estoque que cabe nas colunas INTEGER (32 bits).
const MaxStock = math.MaxInt32

// StockCheck é o resultado da verificação de um novo estoque.
type StockCheck int

const (
	StockOK StockCheck = iota
	StockNegative
	StockOverflow
)

// ResultingStock calcula em int64 o estoque após aplicar delta e classifica o resultado.
func ResultingStock(current, delta int) (int64, StockCheck) {
	next := int64(current) + int64(delta)
	switch {
	case delta > 0 && next < int64(current):
		return next, StockOverflow // estouro de int64
	case delta < 0 && next > int64(current):
		return next, StockNegative
	case next < 0:
		return next, StockNegative
	case next > MaxStock:
		return next, StockOverflow
	}
	return next, StockOK
}

// TotalCost devolve cost * |quantity|, ou nil se não houver custo unitário.
func TotalCost(cost *decimal.Decimal, quantity int) *decimal.Decimal {
	if cost == nil {
		return nil
	}
	if quantity < 0 {
		quantity = -quantity
	}
	total := cost.Mul(decimal.NewFromInt(int64(quantity)))
	return &total
}

// NewStockMovement monta o movimento correspondente a um ajuste sobre previousStock.
func NewStockMovement(id string, adj StockAdjustment, previousStock int, createdAt time.Time) StockMovement {
	return StockMovement{
		ID:            id,
		PartID:        adj.PartID,
		Type:          adj.Type,
		Quantity:      adj.Quantity,
		PreviousStock: previousStock,
		NewStock:      previousStock + adj.Quantity,
		Reason:        adj.Reason,
		ReferenceID:   adj.ReferenceID,
		ReferenceType: adj.ReferenceType,
		Cost:          adj.Cost,
		TotalCost:     TotalCost(adj.Cost, adj.Quantity),
		Notes:         adj.Notes,
		CreatedBy:     adj.CreatedBy,
		CreatedAt:     createdAt,
	}
}

// Applied resume o movimento para o eco da resposta.
func (m StockMovement) Applied() AppliedAdjustment {
	return AppliedAdjustment{
		Quantity:      m.Quantity,
		Type:          m.Type,
		Reason:        m.Reason,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
	}
}
