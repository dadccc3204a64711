package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config armazena todas as configurações do serviço fleetstock.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Banco de Dados (PostgreSQL)
	DatabaseURL string
	DBTimeout   time.Duration

	// Cache (Redis)
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	// Segurança (JWT)
	JWTSecretKey string

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente (e de um .env opcional).
// Encerra o processo se DATABASE_URL ou JWT_SECRET_KEY não estiverem definidos.
func LoadConfig() *Config {
	cfg, err := Load(newViper())
	if err != nil {
		log.Fatalf("❌ Erro de Configuração: %v", err)
	}
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // o arquivo é opcional; o ambiente tem prioridade

	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_TIMEOUT_SEC", 5)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("CACHE_TTL_SEC", 300)
	v.SetDefault("RATE_LIMIT_MAX_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_PERIOD_MIN", 1)
}

// Load monta a Config a partir de uma instância do viper já preparada.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),

		DatabaseURL: v.GetString("DATABASE_URL"),
		DBTimeout:   time.Duration(positiveInt(v, "DB_TIMEOUT_SEC", 5)) * time.Second,

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		CacheTTL:      time.Duration(positiveInt(v, "CACHE_TTL_SEC", 300)) * time.Second,

		JWTSecretKey: v.GetString("JWT_SECRET_KEY"),

		RateLimitMaxRequests: positiveInt(v, "RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      time.Duration(positiveInt(v, "RATE_LIMIT_PERIOD_MIN", 1)) * time.Minute,
	}

	if cfg.DatabaseURL == "" {
		return nil, errMissing("DATABASE_URL")
	}
	if cfg.JWTSecretKey == "" {
		return nil, errMissing("JWT_SECRET_KEY")
	}
	return cfg, nil
}

// positiveInt lê um inteiro positivo; valores inválidos caem no padrão com aviso.
func positiveInt(v *viper.Viper, key string, defaultValue int) int {
	value := v.GetInt(key)
	if value <= 0 {
		if raw := v.GetString(key); raw != "" && raw != "0" {
			log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro positivo. Usando padrão (%d).", key, raw, defaultValue)
		}
		return defaultValue
	}
	return value
}

type missingEnvError struct{ key string }

func (e missingEnvError) Error() string {
	return "a variável de ambiente " + e.key + " deve ser definida"
}

func errMissing(key string) error { return missingEnvError{key: key} }

// LoadDatabaseURL lê apenas DATABASE_URL; usado pela ferramenta de migração.
func LoadDatabaseURL() (string, error) {
	url := newViper().GetString("DATABASE_URL")
	if url == "" {
		return "", errMissing("DATABASE_URL")
	}
	return url, nil
}
