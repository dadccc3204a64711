package partrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"fleetstock/internal/domain"
	apperror "fleetstock/internal/errors"
	"fleetstock/internal/pkg/cache"
	"fleetstock/internal/pkg/logger"
)

// Define a chave de cache para peças.
const partCacheKey = "part:%s"

const partColumns = `id, number, name, description, quantity, minimum_stock, cost, version, created_at, updated_at`

// PartRepository dá acesso de leitura às peças, com cache-aside no Redis.
// Cache pode ser nil: nesse caso toda leitura vai ao banco.
type PartRepository struct {
	DB        *sqlx.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewPartRepository cria e retorna uma nova instância do Repositório de Peças.
func NewPartRepository(db *sqlx.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, log logger.Logger) *PartRepository {
	return &PartRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    log,
	}
}

// FindByID busca uma peça pelo ID, utilizando a estratégia Cache-Aside.
func (r *PartRepository) FindByID(ctx context.Context, id string) (domain.Part, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(partCacheKey, id)
	var part domain.Part

	// 1. Tentar obter do cache
	if r.Cache != nil {
		cached, err := r.Cache.Get(ctxTimeout, key)
		switch {
		case err == nil:
			if json.Unmarshal([]byte(cached), &part) == nil {
				r.logger.Debug("Peça encontrada no cache.", map[string]interface{}{"part_id": id})
				return part, nil
			}
			r.logger.Warn("Entrada de cache de peça inválida, lendo do DB.", map[string]interface{}{"part_id": id})
		case !errors.Is(err, cache.ErrCacheMiss):
			r.logger.Warn("Falha ao ler peça do cache.", map[string]interface{}{"part_id": id, "error": err.Error()})
		}
	}

	// 2. Busca no banco
	query := `SELECT ` + partColumns + ` FROM parts WHERE id = $1`
	err := r.DB.GetContext(ctxTimeout, &part, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Part{}, apperror.NewNotFoundError(fmt.Sprintf("Peça com ID %s não existe.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar peça no DB.", err, map[string]interface{}{"part_id": id})
		return domain.Part{}, apperror.NewDBError("Falha ao buscar peça", err)
	}

	// 3. Popular o cache para as próximas leituras
	if r.Cache != nil {
		if payload, marshalErr := json.Marshal(part); marshalErr == nil {
			if setErr := r.Cache.Set(ctxTimeout, key, payload, r.CacheTTL); setErr != nil {
				r.logger.Warn("Falha ao gravar peça no cache.", map[string]interface{}{"part_id": id, "error": setErr.Error()})
			}
		}
	}

	return part, nil
}

// FindLowStock lista peças com quantidade no ou abaixo do estoque mínimo,
// maiores faltas primeiro. Devolve também o total sem paginação.
func (r *PartRepository) FindLowStock(ctx context.Context, filter domain.PartFilter) ([]domain.Part, int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var total int
	if err := r.DB.GetContext(ctxTimeout, &total, `SELECT COUNT(*) FROM parts WHERE quantity <= minimum_stock`); err != nil {
		r.logger.Error("Falha ao contar peças com estoque baixo.", err)
		return nil, 0, apperror.NewDBError("Falha ao contar peças com estoque baixo", err)
	}

	query := `SELECT ` + partColumns + ` FROM parts
        WHERE quantity <= minimum_stock
        ORDER BY (minimum_stock - quantity) DESC, number
        LIMIT $1 OFFSET $2`

	parts := []domain.Part{}
	if err := r.DB.SelectContext(ctxTimeout, &parts, query, filter.Limit, (filter.Page-1)*filter.Limit); err != nil {
		r.logger.Error("Falha ao listar peças com estoque baixo.", err)
		return nil, 0, apperror.NewDBError("Falha ao listar peças com estoque baixo", err)
	}

	return parts, total, nil
}

// InvalidatePart remove a peça do cache; chamado após cada ajuste confirmado.
func (r *PartRepository) InvalidatePart(ctx context.Context, id string) error {
	if r.Cache == nil {
		return nil
	}
	return r.Cache.Delete(ctx, fmt.Sprintf(partCacheKey, id))
}
