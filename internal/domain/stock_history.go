package domain

import "time"

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// StockHistoryFilter define filtros e paginação do histórico de movimentos de uma peça.
type StockHistoryFilter struct {
	PartID    string
	Page      int
	Limit     int
	Type      MovementType // vazio = todos
	StartDate *time.Time
	EndDate   *time.Time
}

// Offset devolve o deslocamento SQL da página atual.
func (f StockHistoryFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// NormalizePage aplica os padrões de paginação (página 1, limite 20, máximo 100).
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// Pagination descreve a página devolvida.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination calcula o total de páginas.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// TypeSummary agrega os movimentos de um tipo.
type TypeSummary struct {
	Type     MovementType `json:"type" db:"type"`
	Count    int          `json:"count" db:"count"`
	Quantity int          `json:"quantity" db:"quantity"`
	TotalIn  int          `json:"-" db:"total_in"`
	TotalOut int          `json:"-" db:"total_out"`
}

// StockStatistics resume os movimentos do conjunto filtrado.
type StockStatistics struct {
	TotalMovements int                          `json:"totalMovements"`
	TotalIn        int                          `json:"totalIn"`
	TotalOut       int                          `json:"totalOut"`
	NetChange      int                          `json:"netChange"`
	ByType         map[MovementType]TypeSummary `json:"byType"`
}

// NewStockStatistics consolida os agregados por tipo.
// TotalOut é sempre positivo (valor absoluto das saídas).
func NewStockStatistics(summaries []TypeSummary) StockStatistics {
	stats := StockStatistics{ByType: make(map[MovementType]TypeSummary, len(summaries))}
	for _, s := range summaries {
		stats.TotalMovements += s.Count
		stats.TotalIn += s.TotalIn
		stats.TotalOut += s.TotalOut
		stats.NetChange += s.Quantity

		acc := stats.ByType[s.Type]
		acc.Type = s.Type
		acc.Count += s.Count
		acc.Quantity += s.Quantity
		acc.TotalIn += s.TotalIn
		acc.TotalOut += s.TotalOut
		stats.ByType[s.Type] = acc
	}
	return stats
}

// StockHistory é a resposta de GET /v1/parts/{partId}/stock-history.
type StockHistory struct {
	Part       Part            `json:"part"`
	Movements  []StockMovement `json:"movements"`
	Pagination Pagination      `json:"pagination"`
	Statistics StockStatistics `json:"statistics"`
}
