package stockservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fleetstock/internal/domain"
	apperror "fleetstock/internal/errors"
	"fleetstock/internal/pkg/logger"
)

// Limites das colunas cost NUMERIC(12,2) e total_cost NUMERIC(14,2).
var (
	maxUnitCost  = decimal.New(1, 10)
	maxTotalCost = decimal.New(1, 12)
)

const (
	costScale              = 2
	maxReasonLength        = 500
	maxReferenceIDLength   = 100
	maxReferenceTypeLength = 50
)

// StockRepository define o contrato que o Serviço de Estoque espera da camada de Persistência.
type StockRepository interface {
	ApplyAdjustment(ctx context.Context, adj domain.StockAdjustment) (domain.StockAdjustmentResult, error)
	ListMovements(ctx context.Context, filter domain.StockHistoryFilter) ([]domain.StockMovement, int, error)
	MovementSummaries(ctx context.Context, filter domain.StockHistoryFilter) ([]domain.TypeSummary, error)
}

// PartStore é o acesso às peças usado pelo serviço (leitura e invalidação de cache).
type PartStore interface {
	FindByID(ctx context.Context, id string) (domain.Part, error)
	InvalidatePart(ctx context.Context, id string) error
}

// Service implementa o ajuste de estoque e a consulta do histórico de movimentos.
type Service struct {
	repo   StockRepository
	parts  PartStore
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Estoque.
func NewService(repo StockRepository, parts PartStore, log logger.Logger) *Service {
	return &Service{repo: repo, parts: parts, logger: log}
}

// AdjustStock valida o pedido e aplica o ajuste de forma atômica.
// Erros de validação são detectados antes de qualquer acesso ao banco.
func (s *Service) AdjustStock(ctx context.Context, req domain.StockAdjustmentRequest) (domain.StockAdjustmentResult, error) {
	fields := map[string]interface{}{
		"part_id":    req.PartID,
		"delta":      req.Quantity,
		"created_by": req.CreatedBy,
	}
	s.logger.Debug("Iniciando ajuste de estoque no serviço.", fields)

	// 1. Validar o pedido antes de qualquer acesso ao banco
	adj, err := validateAdjustment(req)
	if err != nil {
		s.logger.Debug("Ajuste de estoque rejeitado na validação.", map[string]interface{}{"part_id": req.PartID, "error": err.Error()})
		return domain.StockAdjustmentResult{}, err
	}

	// 2. Aplicar o ajuste de forma atômica no repositório
	result, err := s.repo.ApplyAdjustment(ctx, adj)
	if err != nil {
		var appErr apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.HTTPStatus() >= 500 {
				s.logger.Error("Falha ao ajustar estoque no repositório.", err, fields)
			}
			return domain.StockAdjustmentResult{}, err
		}
		s.logger.Error("Erro inesperado ao ajustar estoque.", err, fields)
		return domain.StockAdjustmentResult{}, apperror.NewInternalError("Falha interna ao ajustar estoque.", err)
	}

	// 3. Invalidar o cache da peça (falha aqui não desfaz o ajuste)
	if err := s.parts.InvalidatePart(ctx, adj.PartID); err != nil {
		s.logger.Warn("Falha ao invalidar cache da peça após ajuste.", map[string]interface{}{"part_id": adj.PartID, "error": err.Error()})
	}

	s.logger.Info("Estoque ajustado.", map[string]interface{}{
		"part_id":        result.Part.ID,
		"movement_id":    result.Movement.ID,
		"type":           result.Movement.Type,
		"previous_stock": result.Movement.PreviousStock,
		"new_stock":      result.Movement.NewStock,
		"created_by":     result.Movement.CreatedBy,
	})
	return result, nil
}

// validateAdjustment converte o pedido bruto em um ajuste validado.
func validateAdjustment(req domain.StockAdjustmentRequest) (domain.StockAdjustment, error) {
	if _, err := uuid.Parse(req.PartID); err != nil {
		return domain.StockAdjustment{}, apperror.NewValidationError("O ID da peça deve ser um UUID válido.")
	}
	if req.Quantity == 0 {
		return domain.StockAdjustment{}, apperror.NewValidationError("A quantidade do ajuste não pode ser zero.")
	}
	if req.Quantity > domain.MaxStock || req.Quantity < -domain.MaxStock {
		return domain.StockAdjustment{}, apperror.NewValidationError(fmt.Sprintf("A quantidade do ajuste deve estar entre -%d e %d.", domain.MaxStock, domain.MaxStock))
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return domain.StockAdjustment{}, apperror.NewValidationError("O motivo do ajuste é obrigatório.")
	}
	if utf8.RuneCountInString(reason) > maxReasonLength {
		return domain.StockAdjustment{}, apperror.NewValidationError(fmt.Sprintf("O motivo deve ter no máximo %d caracteres.", maxReasonLength))
	}

	movementType := domain.MovementAdjustment
	if strings.TrimSpace(req.Type) != "" {
		parsed, ok := domain.ParseMovementType(req.Type)
		if !ok {
			return domain.StockAdjustment{}, apperror.NewValidationError(fmt.Sprintf("Tipo de movimento inválido: %q.", req.Type))
		}
		movementType = parsed
	}

	referenceID := strings.TrimSpace(req.ReferenceID)
	if utf8.RuneCountInString(referenceID) > maxReferenceIDLength {
		return domain.StockAdjustment{}, apperror.NewValidationError(fmt.Sprintf("referenceId deve ter no máximo %d caracteres.", maxReferenceIDLength))
	}
	referenceType := strings.TrimSpace(req.ReferenceType)
	if utf8.RuneCountInString(referenceType) > maxReferenceTypeLength {
		return domain.StockAdjustment{}, apperror.NewValidationError(fmt.Sprintf("referenceType deve ter no máximo %d caracteres.", maxReferenceTypeLength))
	}

	if err := validateCost(req.Cost, req.Quantity); err != nil {
		return domain.StockAdjustment{}, err
	}
	if strings.TrimSpace(req.CreatedBy) == "" {
		return domain.StockAdjustment{}, apperror.NewUnauthorizedError("Usuário do ajuste não identificado.")
	}

	return domain.StockAdjustment{
		PartID:        req.PartID,
		Quantity:      req.Quantity,
		Type:          movementType,
		Reason:        reason,
		ReferenceID:   referenceID,
		ReferenceType: referenceType,
		Cost:          req.Cost,
		Notes:         strings.TrimSpace(req.Notes),
		CreatedBy:     req.CreatedBy,
	}, nil
}

// validateCost garante que o custo cabe nas colunas sem arredondamento nem estouro.
func validateCost(cost *decimal.Decimal, quantity int) error {
	if cost == nil {
		return nil
	}
	if cost.IsNegative() {
		return apperror.NewValidationError("O custo unitário não pode ser negativo.")
	}
	if !cost.Equal(cost.Round(costScale)) {
		return apperror.NewValidationError(fmt.Sprintf("O custo unitário deve ter no máximo %d casas decimais.", costScale))
	}
	if cost.GreaterThanOrEqual(maxUnitCost) {
		return apperror.NewValidationError(fmt.Sprintf("O custo unitário deve ser menor que %s.", maxUnitCost.String()))
	}
	if domain.TotalCost(cost, quantity).GreaterThanOrEqual(maxTotalCost) {
		return apperror.NewValidationError(fmt.Sprintf("O custo total do ajuste deve ser menor que %s.", maxTotalCost.String()))
	}
	return nil
}

// StockHistory devolve a página de movimentos da peça e as estatísticas do conjunto filtrado.
func (s *Service) StockHistory(ctx context.Context, filter domain.StockHistoryFilter) (domain.StockHistory, error) {
	s.logger.Debug("Consultando histórico de estoque.", map[string]interface{}{"part_id": filter.PartID, "page": filter.Page, "limit": filter.Limit})

	// 1. Validar e normalizar o filtro
	if _, err := uuid.Parse(filter.PartID); err != nil {
		return domain.StockHistory{}, apperror.NewValidationError("O ID da peça deve ser um UUID válido.")
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return domain.StockHistory{}, apperror.NewValidationError("startDate deve ser anterior ou igual a endDate.")
	}
	filter.Page, filter.Limit = domain.NormalizePage(filter.Page, filter.Limit)

	// 2. A peça deve existir
	part, err := s.parts.FindByID(ctx, filter.PartID)
	if err != nil {
		return domain.StockHistory{}, err
	}

	// 3. Página de movimentos e estatísticas do conjunto filtrado
	movements, total, err := s.repo.ListMovements(ctx, filter)
	if err != nil {
		return domain.StockHistory{}, err
	}

	summaries, err := s.repo.MovementSummaries(ctx, filter)
	if err != nil {
		return domain.StockHistory{}, err
	}

	return domain.StockHistory{
		Part:       part,
		Movements:  movements,
		Pagination: domain.NewPagination(filter.Page, filter.Limit, total),
		Statistics: domain.NewStockStatistics(summaries),
	}, nil
}
