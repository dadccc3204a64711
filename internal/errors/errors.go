package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do serviço.
// Ela permite que o Handler acesse a Categoria, o status HTTP e a Mensagem do erro.
type AppError interface {
	Error() string
	Category() string
	HTTPStatus() int
	Unwrap() error
}

// Detailer é implementado por erros que carregam dados de diagnóstico para o cliente.
type Detailer interface {
	Details() map[string]interface{}
}

// --- Erros de Domínio ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// UnauthorizedError representa ausência ou invalidade de credenciais.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized }
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro de autenticação.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// ForbiddenError representa um usuário autenticado sem a permissão necessária.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string    { return fmt.Sprintf("Acesso negado: %s", e.Msg) }
func (e *ForbiddenError) Category() string { return "FORBIDDEN" }
func (e *ForbiddenError) HTTPStatus() int  { return http.StatusForbidden }
func (e *ForbiddenError) Unwrap() error    { return nil }

// NewForbiddenError cria um novo erro de autorização.
func NewForbiddenError(msg string) AppError {
	return &ForbiddenError{Msg: msg}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound }
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa um conflito de estado (e.g., OCC).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict }
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// NegativeStockError rejeita um ajuste que deixaria o estoque abaixo de zero.
// Carrega o estoque atual, o ajuste pedido e o valor que resultaria.
type NegativeStockError struct {
	CurrentStock        int
	RequestedAdjustment int
	WouldResult         int
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("Estoque insuficiente: estoque atual %d, ajuste %d resultaria em %d",
		e.CurrentStock, e.RequestedAdjustment, e.WouldResult)
}
func (e *NegativeStockError) Category() string { return "NEGATIVE_STOCK" }
func (e *NegativeStockError) HTTPStatus() int  { return http.StatusUnprocessableEntity }
func (e *NegativeStockError) Unwrap() error    { return nil }

func (e *NegativeStockError) Details() map[string]interface{} {
	return map[string]interface{}{
		"currentStock":        e.CurrentStock,
		"requestedAdjustment": e.RequestedAdjustment,
		"wouldResult":         e.WouldResult,
	}
}

// NewNegativeStockError cria o erro de estoque negativo.
func NewNegativeStockError(current, requested, wouldResult int) AppError {
	return &NegativeStockError{CurrentStock: current, RequestedAdjustment: requested, WouldResult: wouldResult}
}

// --- Erros de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor.
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB): %s", msg, err.Error()), err)
}

// TransactionError representa uma falha durante a escrita atômica.
// A transação foi desfeita: nenhuma escrita parcial é visível.
type TransactionError struct {
	Msg string
	Err error
}

func (e *TransactionError) Error() string    { return fmt.Sprintf("Falha na transação: %s", e.Msg) }
func (e *TransactionError) Category() string { return "TRANSACTION_ERROR" }
func (e *TransactionError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *TransactionError) Unwrap() error    { return e.Err }

// NewTransactionError cria um erro de transação.
func NewTransactionError(msg string, err error) AppError {
	return &TransactionError{Msg: msg, Err: err}
}

// --- Helper para o Handler (Tradução Final) ---

// GenericServerMessage é a mensagem devolvida ao cliente para qualquer erro 5xx.
const GenericServerMessage = "Ocorreu um erro inesperado."

// MapToHTTPStatus traduz um erro para código HTTP, categoria e mensagem pública.
// Erros 5xx nunca expõem a mensagem interna.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		status := appErr.HTTPStatus()
		if status >= http.StatusInternalServerError {
			return status, appErr.Category(), GenericServerMessage
		}
		return status, appErr.Category(), appErr.Error()
	}
	return http.StatusInternalServerError, "UNKNOWN_ERROR", GenericServerMessage
}

// DetailsOf devolve os dados de diagnóstico do erro, se houver.
func DetailsOf(err error) map[string]interface{} {
	var d Detailer
	if stderrors.As(err, &d) {
		return d.Details()
	}
	return nil
}
