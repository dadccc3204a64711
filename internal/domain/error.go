package domain

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Success  bool                   `json:"success" example:"false"`
	Code     int                    `json:"code" example:"422"`
	Category string                 `json:"category" example:"NEGATIVE_STOCK"`
	Message  string                 `json:"message" example:"Estoque insuficiente: estoque atual 10, ajuste -15 resultaria em -5"`
	Details  map[string]interface{} `json:"details,omitempty" swaggertype:"object"`
}

// SuccessResponse envolve o payload de respostas bem-sucedidas.
type SuccessResponse struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}
