package partservice

import (
	"context"

	"github.com/google/uuid"

	"fleetstock/internal/domain"
	apperror "fleetstock/internal/errors"
	"fleetstock/internal/pkg/logger"
)

// PartRepository define o contrato que este Serviço espera da camada de Persistência.
type PartRepository interface {
	FindByID(ctx context.Context, id string) (domain.Part, error)
	FindLowStock(ctx context.Context, filter domain.PartFilter) ([]domain.Part, int, error)
}

// Service expõe as leituras do catálogo de peças.
type Service struct {
	repo   PartRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Peças.
func NewService(repo PartRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// GetPartByID busca uma peça pelo ID.
func (s *Service) GetPartByID(ctx context.Context, id string) (domain.Part, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Part{}, apperror.NewValidationError("O ID da peça deve ser um UUID válido.")
	}
	return s.repo.FindByID(ctx, id)
}

// ListLowStock lista as peças no ponto de reposição.
func (s *Service) ListLowStock(ctx context.Context, filter domain.PartFilter) ([]domain.Part, domain.Pagination, error) {
	// 1. Aplicar os padrões de paginação
	filter.Page, filter.Limit = domain.NormalizePage(filter.Page, filter.Limit)

	// 2. Buscar a página e o total
	parts, total, err := s.repo.FindLowStock(ctx, filter)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	s.logger.Debug("Peças com estoque baixo listadas.", map[string]interface{}{"count": len(parts), "total": total})
	return parts, domain.NewPagination(filter.Page, filter.Limit, total), nil
}
