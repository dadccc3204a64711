package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"fleetstock/internal/domain"
	apperror "fleetstock/internal/errors"
	"fleetstock/internal/pkg/logger"
)

// JSON envia o envelope de sucesso {"success":true,"data":...}.
func JSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(domain.SuccessResponse{Success: true, Data: data})
}

// WriteError traduz o erro para o envelope padronizado, sem registrar log.
func WriteError(w http.ResponseWriter, err error) int {
	status, category, message := apperror.MapToHTTPStatus(err)

	body := domain.ErrorResponse{
		Success:  false,
		Code:     status,
		Category: category,
		Message:  message,
		Details:  apperror.DetailsOf(err),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
	return status
}

// Error registra o erro (5xx como Error, 4xx como Debug) e envia o envelope padronizado.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, category, _ := apperror.MapToHTTPStatus(err)

	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err, map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
		})
	} else {
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{
			"path":  r.URL.Path,
			"error": err.Error(),
		})
	}

	WriteError(w, err)
}
