package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "fleetstock/docs" // registra a documentação Swagger gerada
	"fleetstock/internal/api/part"
	"fleetstock/internal/api/stock"
	"fleetstock/internal/domain"
	"fleetstock/internal/pkg/cache"
	"fleetstock/internal/pkg/logger"
	"fleetstock/internal/pkg/middleware"
)

// RateLimit configura o limitador global; MaxRequests <= 0 desativa.
type RateLimit struct {
	MaxRequests int
	Period      time.Duration
}

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
// cacheClient pode ser nil: nesse caso o rate limit não é aplicado.
func NewRouter(
	partHandler *part.Handler,
	stockHandler *stock.Handler,
	tokenSvc middleware.TokenService,
	cacheClient cache.Client,
	limit RateLimit,
	log logger.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// --- 1. Health Check e documentação ---
	mux.HandleFunc("GET /ping", PingHandler)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- 2. Rotas de Peças e Estoque (v1) ---
	auth := middleware.NewAuthMiddleware(tokenSvc)
	canAdjust := middleware.PermissionMiddleware(domain.RoleAdmin, domain.RoleUser)

	mux.HandleFunc("POST /v1/parts/{partId}/adjust-stock", auth(canAdjust(stockHandler.AdjustStockHandler)))
	mux.HandleFunc("GET /v1/parts/{partId}/stock-history", auth(stockHandler.StockHistoryHandler))
	mux.HandleFunc("GET /v1/parts/low-stock", auth(partHandler.ListLowStockHandler))
	mux.HandleFunc("GET /v1/parts/{partId}", auth(partHandler.GetPartHandler))

	// --- 3. Middlewares globais ---
	var handler http.Handler = mux
	if cacheClient != nil && limit.MaxRequests > 0 {
		handler = middleware.RateLimiter(cacheClient, limit.MaxRequests, limit.Period, log)(handler)
	}
	return middleware.RequestLogger(log)(handler)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
