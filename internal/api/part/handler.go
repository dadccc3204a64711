package part

import (
	"context"
	"net/http"
	"strconv"

	"fleetstock/internal/api/response"
	"fleetstock/internal/domain"
	apperror "fleetstock/internal/errors"
	"fleetstock/internal/pkg/logger"
)

// PartService define o contrato que o Handler espera da camada de Serviço.
type PartService interface {
	GetPartByID(ctx context.Context, id string) (domain.Part, error)
	ListLowStock(ctx context.Context, filter domain.PartFilter) ([]domain.Part, domain.Pagination, error)
}

// Handler agrupa todos os métodos de Handler de peças.
type Handler struct {
	Service PartService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc PartService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// GetPartHandler lida com a requisição GET /v1/parts/{partId}.
// @Summary Obtém uma peça por ID
// @Description Busca uma peça pelo ID (com cache Redis).
// @Tags parts
// @Produce json
// @Param partId path string true "ID da peça"
// @Success 200 {object} domain.SuccessResponse{data=domain.Part} "Peça encontrada"
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Peça não encontrada"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /parts/{partId} [get]
func (h *Handler) GetPartHandler(w http.ResponseWriter, r *http.Request) {
	p, err := h.Service.GetPartByID(r.Context(), r.PathValue("partId"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, p); err != nil {
		h.Logger.Error("Falha ao codificar JSON de resposta", err)
	}
}

// ListLowStockHandler lida com a requisição GET /v1/parts/low-stock.
// @Summary Lista peças com estoque baixo
// @Description Peças com quantidade menor ou igual ao estoque mínimo, maior falta primeiro.
// @Tags parts
// @Produce json
// @Param page query int false "Página (padrão 1)"
// @Param limit query int false "Itens por página (padrão 20, máximo 100)"
// @Success 200 {object} domain.SuccessResponse{data=[]domain.Part} "Peças no ponto de reposição"
// @Failure 400 {object} domain.ErrorResponse "Paginação inválida"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Security ApiKeyAuth
// @Router /parts/low-stock [get]
func (h *Handler) ListLowStockHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := parsePositiveInt(q.Get("page"), "page")
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	limit, err := parsePositiveInt(q.Get("limit"), "limit")
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	parts, pagination, err := h.Service.ListLowStock(r.Context(), domain.PartFilter{Page: page, Limit: limit})
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(pagination.Total))
	if err := response.JSON(w, http.StatusOK, parts); err != nil {
		h.Logger.Error("Falha ao codificar JSON de resposta", err)
	}
}

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
