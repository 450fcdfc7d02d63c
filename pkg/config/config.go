package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App        AppConfig
	Log        LogConfig
	JWT        JWTConfig
	HTTP       HTTPConfig
	Pagination PaginationConfig
	Billing    BillingConfig
	Swagger    SwaggerConfig
	Seed       SeedConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nivel del logger (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
}

// JWTConfig configuración de JWT. Secret vacío = modo confianza (cabecera X-User-ID).
type JWTConfig struct {
	Secret string
	// Issuer emisor esperado en el claim iss; vacío = no se valida.
	Issuer string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PaginationConfig límites de página compartidos por todos los listados.
type PaginationConfig struct {
	DefaultLimit int
	MinLimit     int
	MaxLimit     int
}

// BillingConfig reglas configurables de facturación.
type BillingConfig struct {
	// RequireCashCoverage exige al finalizar que el efectivo recibido cubra el total.
	RequireCashCoverage bool
	// BusinessName encabezado del comprobante PDF.
	BusinessName string
}

// SwaggerConfig ubicación del documento OpenAPI servido en /docs.
type SwaggerConfig struct {
	FilePath string
}

// SeedConfig datos de demostración.
type SeedConfig struct {
	DemoCatalog bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	env := getString(v, "APP_ENV", "development")
	cfg := &Config{
		App: AppConfig{
			Env:  env,
			Name: getString(v, "APP_NAME", "gestion-api"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", "gestion-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Pagination: PaginationConfig{
			DefaultLimit: getInt(v, "PAGINATION_DEFAULT_LIMIT", 10),
			MinLimit:     getInt(v, "PAGINATION_MIN_LIMIT", 1),
			MaxLimit:     getInt(v, "PAGINATION_MAX_LIMIT", 100),
		},
		Billing: BillingConfig{
			RequireCashCoverage: getBool(v, "BILLING_REQUIRE_CASH_COVERAGE", true),
			BusinessName:        getString(v, "BILLING_BUSINESS_NAME", "Gestión"),
		},
		Swagger: SwaggerConfig{
			FilePath: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		Seed: SeedConfig{
			DemoCatalog: getBool(v, "SEED_DEMO_CATALOG", env == "development"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	p := c.Pagination
	if p.MinLimit < 1 {
		return fmt.Errorf("config: PAGINATION_MIN_LIMIT debe ser >= 1")
	}
	if p.MaxLimit < p.MinLimit {
		return fmt.Errorf("config: PAGINATION_MAX_LIMIT (%d) menor que PAGINATION_MIN_LIMIT (%d)", p.MaxLimit, p.MinLimit)
	}
	if p.DefaultLimit < p.MinLimit || p.DefaultLimit > p.MaxLimit {
		return fmt.Errorf("config: PAGINATION_DEFAULT_LIMIT fuera de [%d, %d]", p.MinLimit, p.MaxLimit)
	}
	if c.HTTP.Port <= 0 {
		return fmt.Errorf("config: HTTP_PORT inválido")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case bool:
			return v.GetBool(key)
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return b
		default:
			return v.GetBool(key)
		}
	}
	return def
}
