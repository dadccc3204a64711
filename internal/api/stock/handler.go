package stock

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fleetstock/internal/api/response"
	"fleetstock/internal/domain"
	apperror "fleetstock/internal/errors"
	"fleetstock/internal/pkg/logger"
	"fleetstock/internal/pkg/middleware"
)

const dateOnlyLayout = "2006-01-02"

// StockService define o contrato que o Handler espera da camada de Serviço.
type StockService interface {
	AdjustStock(ctx context.Context, req domain.StockAdjustmentRequest) (domain.StockAdjustmentResult, error)
	StockHistory(ctx context.Context, filter domain.StockHistoryFilter) (domain.StockHistory, error)
}

// Handler agrupa todos os métodos de Handler de estoque.
type Handler struct {
	Service StockService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc StockService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// AdjustStockHandler lida com a requisição POST /v1/parts/{partId}/adjust-stock.
// @Summary Ajusta o estoque de uma peça
// @Description Aplica um delta assinado à quantidade da peça e registra o movimento no livro-razão, na mesma transação.
// @Tags stock
// @Accept json
// @Produce json
// @Param partId path string true "ID da peça"
// @Param adjustment body domain.StockAdjustmentRequest true "Dados do ajuste"
// @Success 201 {object} domain.SuccessResponse{data=domain.StockAdjustmentResult} "Estoque ajustado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 403 {object} domain.ErrorResponse "Sem permissão"
// @Failure 404 {object} domain.ErrorResponse "Peça não encontrada"
// @Failure 409 {object} domain.ErrorResponse "Conflito de versão"
// @Failure 422 {object} domain.ErrorResponse "Estoque ficaria negativo"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /parts/{partId}/adjust-stock [post]
func (h *Handler) AdjustStockHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// 1. Identificar o ator pelas claims do token
	claims, ok := middleware.GetUserClaimsFromContext(ctx)
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."))
		return
	}

	// 2. Decodificar o Payload (estrito: sem campos desconhecidos nem dados extras)
	req, err := decodeAdjustment(r.Body)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	req.PartID = r.PathValue("partId")
	req.CreatedBy = claims.UserID

	// 3. Chamar o Serviço
	result, err := h.Service.AdjustStock(ctx, req)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	if err := response.JSON(w, http.StatusCreated, result); err != nil {
		h.Logger.Error("Falha ao codificar JSON de resposta", err)
	}
}

// StockHistoryHandler lida com a requisição GET /v1/parts/{partId}/stock-history.
// @Summary Histórico de movimentos de uma peça
// @Description Lista os movimentos (mais recentes primeiro) com paginação, filtros e estatísticas do conjunto filtrado.
// @Tags stock
// @Produce json
// @Param partId path string true "ID da peça"
// @Param page query int false "Página (padrão 1)"
// @Param limit query int false "Itens por página (padrão 20, máximo 100)"
// @Param type query string false "Tipo de movimento" Enums(PURCHASE, CONSUMPTION, ADJUSTMENT, TRANSFER, RETURN, DAMAGE, EXPIRED)
// @Param startDate query string false "Início (RFC3339 ou YYYY-MM-DD)"
// @Param endDate query string false "Fim (RFC3339 ou YYYY-MM-DD, data inclui o dia inteiro)"
// @Success 200 {object} domain.SuccessResponse{data=domain.StockHistory} "Histórico da peça"
// @Failure 400 {object} domain.ErrorResponse "Filtro inválido"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 404 {object} domain.ErrorResponse "Peça não encontrada"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /parts/{partId}/stock-history [get]
func (h *Handler) StockHistoryHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := parseHistoryFilter(r)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	history, err := h.Service.StockHistory(r.Context(), filter)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, history); err != nil {
		h.Logger.Error("Falha ao codificar JSON de resposta", err)
	}
}

func decodeAdjustment(body io.Reader) (domain.StockAdjustmentRequest, error) {
	var req domain.StockAdjustmentRequest

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
			return req, apperror.NewValidationError("Payload inválido: campo desconhecido " + field + ".")
		}
		return req, apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	if dec.More() {
		return req, apperror.NewValidationError("Payload inválido: dados extras após o objeto JSON.")
	}
	return req, nil
}

func parseHistoryFilter(r *http.Request) (domain.StockHistoryFilter, error) {
	q := r.URL.Query()
	filter := domain.StockHistoryFilter{PartID: r.PathValue("partId")}

	var err error
	if filter.Page, err = parsePositiveInt(q.Get("page"), "page"); err != nil {
		return filter, err
	}
	if filter.Limit, err = parsePositiveInt(q.Get("limit"), "limit"); err != nil {
		return filter, err
	}

	if raw := strings.TrimSpace(q.Get("type")); raw != "" {
		t, ok := domain.ParseMovementType(raw)
		if !ok {
			return filter, apperror.NewValidationError("Tipo de movimento inválido: " + raw + ".")
		}
		filter.Type = t
	}

	if raw := q.Get("startDate"); raw != "" {
		start, _, err := parseDate(raw)
		if err != nil {
			return filter, apperror.NewValidationError("startDate inválida. Use RFC3339 ou YYYY-MM-DD.")
		}
		filter.StartDate = &start
	}
	if raw := q.Get("endDate"); raw != "" {
		end, dateOnly, err := parseDate(raw)
		if err != nil {
			return filter, apperror.NewValidationError("endDate inválida. Use RFC3339 ou YYYY-MM-DD.")
		}
		if dateOnly {
			end = end.Add(24*time.Hour - time.Nanosecond)
		}
		filter.EndDate = &end
	}

	return filter, nil
}

// parseDate aceita RFC3339 ou apenas a data (UTC); dateOnly indica o segundo formato.
func parseDate(raw string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, false, nil
	}
	t, err := time.Parse(dateOnlyLayout, raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// parsePositiveInt lê um parâmetro de paginação; vazio devolve 0 (o serviço aplica o padrão).
func parsePositiveInt(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, apperror.NewValidationError(name + " deve ser um inteiro positivo.")
	}
	return n, nil
}
