package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	// Nossos pacotes de infraestrutura e utilitários
	"fleetstock/config"
	"fleetstock/internal/pkg/cache"
	"fleetstock/internal/pkg/database"
	"fleetstock/internal/pkg/logger"
	"fleetstock/internal/pkg/token"

	// Camadas de Peças e Estoque para Injeção de Dependências
	"fleetstock/internal/api/part"
	"fleetstock/internal/api/router"
	"fleetstock/internal/api/stock"
	"fleetstock/internal/repository/partrepo"
	"fleetstock/internal/repository/stockrepo"
	"fleetstock/internal/service/partservice"
	"fleetstock/internal/service/stockservice"
)

// @title FleetStock API
// @version 1.0
// @description Livro-razão de estoque de peças da frota: ajustes atômicos e histórico de movimentos.
// @host localhost:8080
// @BasePath /v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	log.Println("⚡ Inicializando serviço FleetStock...")
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	appLog := logger.NewLogger(cfg.LogLevel, cfg.Environment)
	defer logger.Sync(appLog)
	appLog.Info("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment, "port": cfg.Port})

	// Custos saem como número JSON, não como string.
	decimal.MarshalJSONWithoutQuotes = true

	// 1. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (PostgreSQL)
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer db.Close()
	appLog.Info("Conexão PostgreSQL estabelecida.", nil)

	// B. Cache (Redis). Sem Redis o serviço continua, apenas sem cache efetivo.
	cacheClient, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		appLog.Warn("Redis indisponível no início; leituras irão direto ao DB.", map[string]interface{}{"addr": cfg.RedisAddr, "error": err.Error()})
	} else {
		appLog.Info("Conexão Redis estabelecida.", nil)
	}
	defer cacheClient.Close()

	// 2. INJEÇÃO DE DEPENDÊNCIAS
	// Ordem: Repository -> Service -> Handler
	partRepo := partrepo.NewPartRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, appLog)
	stockRepo := stockrepo.NewStockRepository(db, cfg.DBTimeout, appLog)
	appLog.Debug("Repositórios inicializados.", nil)

	partSvc := partservice.NewService(partRepo, appLog)
	stockSvc := stockservice.NewService(stockRepo, partRepo, appLog)
	appLog.Debug("Serviços inicializados.", nil)

	partHandler := part.NewHandler(partSvc, appLog)
	stockHandler := stock.NewHandler(stockSvc, appLog)

	// Serviço de Tokens (JWT): a API apenas valida tokens emitidos externamente.
	tokenSvc := token.NewService(cfg.JWTSecretKey)

	// 3. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(partHandler, stockHandler, tokenSvc, cacheClient, router.RateLimit{
		MaxRequests: cfg.RateLimitMaxRequests,
		Period:      cfg.RateLimitPeriod,
	}, appLog)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 4. Execução e Graceful Shutdown
	go func() {
		appLog.Info("Servidor FleetStock ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	appLog.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLog.Error("Desligamento do servidor forçado.", err)
	}

	appLog.Info("Servidor encerrado com sucesso.", nil)
}
