package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Redis      Redis      `mapstructure:",squash"`
	IronSource IronSource `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
	StatsSync  StatsSync  `mapstructure:",squash"`
	Query      Query      `mapstructure:",squash"`
	SecretKey  string     `mapstructure:"secret_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN         string `mapstructure:"-"`
	StoreDriver string `mapstructure:"store_driver"`
	Driver      string `mapstructure:"database_driver"`
	Password    string `mapstructure:"database_password"`
	URL         string `mapstructure:"database_url"`
	User        string `mapstructure:"database_user"`
}

type Redis struct {
	Addr                 string        `mapstructure:"redis_addr"`
	Password             string        `mapstructure:"redis_password"`
	DB                   int           `mapstructure:"redis_db"`
	ApplicationsCacheTTL time.Duration `mapstructure:"applications_cache_ttl"`
}

// Enabled indica se o cache em Redis deve ser usado
func (r Redis) Enabled() bool {
	return r.Addr != ""
}

type IronSource struct {
	StatsURL        string        `mapstructure:"ironsource_stats_url"`
	ApplicationsURL string        `mapstructure:"ironsource_apps_url"`
	Timeout         time.Duration `mapstructure:"ironsource_timeout"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
	Issuer string `mapstructure:"auth_issuer"`
}

type StatsSync struct {
	CronSchedule string `mapstructure:"stats_sync_cron"`
	Timezone     string `mapstructure:"stats_sync_timezone"`
	LookbackDays int    `mapstructure:"stats_sync_lookback_days"`
	Enabled      bool   `mapstructure:"stats_sync_enabled"`
}

type Query struct {
	MaxRangeDays int `mapstructure:"query_max_range_days"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/mediation_stats?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("APPLICATIONS_CACHE_TTL", "1h")

	viper.SetDefault("IRONSOURCE_STATS_URL", "https://platform.ironsrc.com/partners/publisher/mediation/applications/v5/stats")
	viper.SetDefault("IRONSOURCE_APPS_URL", "https://platform.ironsrc.com/partners/publisher/applications/v3")
	viper.SetDefault("IRONSOURCE_TIMEOUT", "30s")

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")
	viper.SetDefault("AUTH_ISSUER", "")
	viper.SetDefault("SECRET_KEY", "your_secret_key")

	// Sincronização de estatísticas
	viper.SetDefault("STATS_SYNC_CRON", "0 */6 * * *") // A cada 6 horas
	viper.SetDefault("STATS_SYNC_TIMEZONE", "UTC")
	viper.SetDefault("STATS_SYNC_LOOKBACK_DAYS", 2) // Hoje e os 2 dias anteriores
	viper.SetDefault("STATS_SYNC_ENABLED", true)

	viper.SetDefault("QUERY_MAX_RANGE_DAYS", 366)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate verifica combinações de configuração que impedem a aplicação de subir
func (c *Config) Validate() error {
	if c.Database.StoreDriver != StoreDriverPostgres && c.Database.StoreDriver != StoreDriverMemory {
		return fmt.Errorf("config: store_driver inválido: %q", c.Database.StoreDriver)
	}

	if c.StatsSync.LookbackDays < 0 {
		return fmt.Errorf("config: stats_sync_lookback_days não pode ser negativo")
	}

	if c.Query.MaxRangeDays <= 0 {
		return fmt.Errorf("config: query_max_range_days deve ser positivo")
	}

	if _, err := time.LoadLocation(c.StatsSync.Timezone); err != nil {
		return fmt.Errorf("config: stats_sync_timezone inválido: %w", err)
	}

	return nil
}

// SyncLocation retorna o fuso horário do agendador de sincronização
func (c *Config) SyncLocation() *time.Location {
	loc, err := time.LoadLocation(c.StatsSync.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
