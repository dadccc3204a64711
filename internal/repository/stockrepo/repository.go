package stockrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"fleetstock/internal/domain"
	apperror "fleetstock/internal/errors"
	"fleetstock/internal/pkg/logger"
)

// StockRepository persiste ajustes de estoque e lê o livro-razão de movimentos.
type StockRepository struct {
	DB        *sqlx.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewStockRepository cria e retorna uma nova instância do Repositório de Estoque.
func NewStockRepository(db *sqlx.DB, dbTimeout time.Duration, log logger.Logger) *StockRepository {
	return &StockRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// movementRow espelha a tabela stock_movements (colunas opcionais anuláveis).
type movementRow struct {
	ID            string              `db:"id"`
	PartID        string              `db:"part_id"`
	Type          string              `db:"type"`
	Quantity      int                 `db:"quantity"`
	PreviousStock int                 `db:"previous_stock"`
	NewStock      int                 `db:"new_stock"`
	Reason        string              `db:"reason"`
	ReferenceID   sql.NullString      `db:"reference_id"`
	ReferenceType sql.NullString      `db:"reference_type"`
	Cost          decimal.NullDecimal `db:"cost"`
	TotalCost     decimal.NullDecimal `db:"total_cost"`
	Notes         sql.NullString      `db:"notes"`
	CreatedBy     string              `db:"created_by"`
	CreatedAt     time.Time           `db:"created_at"`
}

func (row movementRow) toDomain() domain.StockMovement {
	m := domain.StockMovement{
		ID:            row.ID,
		PartID:        row.PartID,
		Type:          domain.MovementType(row.Type),
		Quantity:      row.Quantity,
		PreviousStock: row.PreviousStock,
		NewStock:      row.NewStock,
		Reason:        row.Reason,
		ReferenceID:   row.ReferenceID.String,
		ReferenceType: row.ReferenceType.String,
		Notes:         row.Notes.String,
		CreatedBy:     row.CreatedBy,
		CreatedAt:     row.CreatedAt,
	}
	m.Cost = decimalPtr(row.Cost)
	m.TotalCost = decimalPtr(row.TotalCost)
	return m
}

const movementColumns = `id, part_id, type, quantity, previous_stock, new_stock, reason,
        reference_id, reference_type, cost, total_cost, notes, created_by, created_at`

// ApplyAdjustment aplica o ajuste numa única transação:
// bloqueia a linha da peça (FOR UPDATE), calcula o novo estoque, rejeita resultado negativo,
// atualiza a peça e insere o movimento. Qualquer falha desfaz as duas escritas.
func (r *StockRepository) ApplyAdjustment(ctx context.Context, adj domain.StockAdjustment) (domain.StockAdjustmentResult, error) {
	fields := map[string]interface{}{
		"part_id":    adj.PartID,
		"delta":      adj.Quantity,
		"type":       adj.Type,
		"created_by": adj.CreatedBy,
	}
	r.logger.Debug("Iniciando ajuste de estoque no repositório.", fields)

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTxx(ctxTimeout, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		r.logger.Error("Falha ao iniciar transação de ajuste de estoque.", err, fields)
		return domain.StockAdjustmentResult{}, apperror.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback()

	// 1. Carregar a peça bloqueando a linha até o fim da transação
	var part domain.Part
	querySelect := `SELECT id, number, name, description, quantity, minimum_stock, cost, version, created_at, updated_at
        FROM parts WHERE id = $1 FOR UPDATE`
	err = tx.GetContext(ctxTimeout, &part, querySelect, adj.PartID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StockAdjustmentResult{}, apperror.NewNotFoundError(fmt.Sprintf("Peça com ID %s não existe.", adj.PartID))
	}
	if err != nil {
		r.logger.Error("Falha ao bloquear peça para ajuste.", err, fields)
		return domain.StockAdjustmentResult{}, apperror.NewDBError("Falha ao buscar peça para ajuste", err)
	}

	// 2. Calcular e validar o novo estoque
	previousStock := part.Quantity
	next, check := domain.ResultingStock(previousStock, adj.Quantity)
	switch check {
	case domain.StockNegative:
		r.logger.Warn("Ajuste resultaria em estoque negativo.", map[string]interface{}{
			"part_id":       adj.PartID,
			"current_stock": previousStock,
			"delta":         adj.Quantity,
			"would_result":  next,
		})
		return domain.StockAdjustmentResult{}, apperror.NewNegativeStockError(previousStock, adj.Quantity, int(next))
	case domain.StockOverflow:
		return domain.StockAdjustmentResult{}, apperror.NewValidationError(
			fmt.Sprintf("O estoque resultante (%d) excede o máximo permitido (%d).", next, domain.MaxStock))
	}
	newStock := int(next)

	// 3. Atualizar a peça (a checagem de versão é redundante sob o lock, mas mantém o OCC)
	queryUpdate := `UPDATE parts
        SET quantity = $1, version = version + 1, updated_at = clock_timestamp()
        WHERE id = $2 AND version = $3
        RETURNING version, updated_at`
	err = tx.QueryRowxContext(ctxTimeout, queryUpdate, newStock, part.ID, part.Version).Scan(&part.Version, &part.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Warn("Falha no controle de concorrência otimista (OCC).", map[string]interface{}{
			"part_id":          part.ID,
			"expected_version": part.Version,
		})
		return domain.StockAdjustmentResult{}, apperror.NewConflictError("A peça foi modificada por outra operação. Tente novamente.")
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar quantidade da peça.", err, fields)
		return domain.StockAdjustmentResult{}, apperror.NewTransactionError("Falha ao atualizar peça", err)
	}
	part.Quantity = newStock

	// 4. Registrar o movimento no livro-razão
	movement := domain.NewStockMovement(uuid.New().String(), adj, previousStock, time.Time{})
	queryInsert := `INSERT INTO stock_movements (
            id, part_id, type, quantity, previous_stock, new_stock, reason,
            reference_id, reference_type, cost, total_cost, notes, created_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, clock_timestamp())
        RETURNING cost, total_cost, created_at`
	var storedCost, storedTotal decimal.NullDecimal
	err = tx.QueryRowxContext(ctxTimeout, queryInsert,
		movement.ID,
		movement.PartID,
		string(movement.Type),
		movement.Quantity,
		movement.PreviousStock,
		movement.NewStock,
		movement.Reason,
		nullString(movement.ReferenceID),
		nullString(movement.ReferenceType),
		nullDecimal(movement.Cost),
		nullDecimal(movement.TotalCost),
		nullString(movement.Notes),
		movement.CreatedBy,
	).Scan(&storedCost, &storedTotal, &movement.CreatedAt)
	if err != nil {
		r.logger.Error("Falha ao inserir movimento de estoque.", err, fields)
		return domain.StockAdjustmentResult{}, apperror.NewTransactionError("Falha ao registrar movimento", err)
	}

	// O movimento devolvido reflete os valores gravados pelo banco.
	movement.Cost = decimalPtr(storedCost)
	movement.TotalCost = decimalPtr(storedTotal)

	// 5. Commit
	if err := tx.Commit(); err != nil {
		r.logger.Error("Falha ao commitar transação de ajuste de estoque.", err, fields)
		return domain.StockAdjustmentResult{}, apperror.NewTransactionError("Falha ao commitar transação", err)
	}

	r.logger.Info("Estoque ajustado com sucesso.", map[string]interface{}{
		"part_id":        part.ID,
		"movement_id":    movement.ID,
		"previous_stock": previousStock,
		"new_stock":      newStock,
		"version":        part.Version,
	})

	return domain.StockAdjustmentResult{
		Part:       part,
		Movement:   movement,
		Adjustment: movement.Applied(),
	}, nil
}

// historyWhere monta o WHERE comum ao histórico e às estatísticas (placeholders "?").
func historyWhere(filter domain.StockHistoryFilter) (string, []interface{}) {
	conditions := []string{"part_id = ?"}
	args := []interface{}{filter.PartID}

	if filter.Type != "" {
		conditions = append(conditions, "type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.StartDate != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, *filter.EndDate)
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// ListMovements devolve a página de movimentos (mais recentes primeiro) e o total filtrado.
func (r *StockRepository) ListMovements(ctx context.Context, filter domain.StockHistoryFilter) ([]domain.StockMovement, int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	where, args := historyWhere(filter)

	var total int
	countQuery := r.DB.Rebind(`SELECT COUNT(*) FROM stock_movements` + where)
	if err := r.DB.GetContext(ctxTimeout, &total, countQuery, args...); err != nil {
		r.logger.Error("Falha ao contar movimentos de estoque.", err, map[string]interface{}{"part_id": filter.PartID})
		return nil, 0, apperror.NewDBError("Falha ao contar movimentos", err)
	}

	query := r.DB.Rebind(`SELECT ` + movementColumns + ` FROM stock_movements` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`)
	args = append(args, filter.Limit, filter.Offset())

	var rows []movementRow
	if err := r.DB.SelectContext(ctxTimeout, &rows, query, args...); err != nil {
		r.logger.Error("Falha ao listar movimentos de estoque.", err, map[string]interface{}{"part_id": filter.PartID})
		return nil, 0, apperror.NewDBError("Falha ao listar movimentos", err)
	}

	movements := make([]domain.StockMovement, 0, len(rows))
	for _, row := range rows {
		movements = append(movements, row.toDomain())
	}
	return movements, total, nil
}

// MovementSummaries agrega o conjunto filtrado (todas as páginas) por tipo.
func (r *StockRepository) MovementSummaries(ctx context.Context, filter domain.StockHistoryFilter) ([]domain.TypeSummary, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	where, args := historyWhere(filter)
	query := r.DB.Rebind(`SELECT type,
            COUNT(*) AS count,
            COALESCE(SUM(quantity), 0) AS quantity,
            COALESCE(SUM(CASE WHEN quantity > 0 THEN quantity ELSE 0 END), 0) AS total_in,
            COALESCE(SUM(CASE WHEN quantity < 0 THEN -quantity ELSE 0 END), 0) AS total_out
        FROM stock_movements` + where + `
        GROUP BY type
        ORDER BY type`)

	var summaries []domain.TypeSummary
	if err := r.DB.SelectContext(ctxTimeout, &summaries, query, args...); err != nil {
		r.logger.Error("Falha ao agregar movimentos de estoque.", err, map[string]interface{}{"part_id": filter.PartID})
		return nil, apperror.NewDBError("Falha ao agregar movimentos", err)
	}
	return summaries, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
