package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Analysis         Analysis         `mapstructure:",squash"`
	Upload           Upload           `mapstructure:",squash"`
	DatasetRetention DatasetRetention `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Enabled  bool   `mapstructure:"database_enabled"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

// Analysis agrupa os parâmetros do pipeline de filtro e agregação
type Analysis struct {
	// CurrencyRates no formato "USD:1.0,EUR:1.05"
	CurrencyRates  string `mapstructure:"currency_rates"`
	MonetaryColumn string `mapstructure:"monetary_column"`
	PreviewRows    int    `mapstructure:"preview_rows"`
}

type Upload struct {
	MaxUploadMB int64 `mapstructure:"max_upload_mb"`
}

type DatasetRetention struct {
	CronSchedule string `mapstructure:"dataset_retention_cron"`
	Hours        int    `mapstructure:"dataset_retention_hours"`
	Enabled      bool   `mapstructure:"dataset_retention_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8050")

	viper.SetDefault("DATABASE_ENABLED", false)
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/dash?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("CURRENCY_RATES", "USD:1.0,EUR:1.05,GBP:1.25")
	viper.SetDefault("MONETARY_COLUMN", "nominal")
	viper.SetDefault("PREVIEW_ROWS", 20)

	viper.SetDefault("MAX_UPLOAD_MB", 32)

	// Limpeza de datasets antigos
	viper.SetDefault("DATASET_RETENTION_CRON", "0 * * * *") // A cada hora
	viper.SetDefault("DATASET_RETENTION_HOURS", 24)         // Mantém uploads por 24 horas
	viper.SetDefault("DATASET_RETENTION_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
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

// Validate garante valores utilizáveis para os parâmetros numéricos
func (c *Config) Validate() error {
	if c.Analysis.PreviewRows <= 0 {
		return fmt.Errorf("PREVIEW_ROWS deve ser positivo, recebido %d", c.Analysis.PreviewRows)
	}
	if c.Upload.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB deve ser positivo, recebido %d", c.Upload.MaxUploadMB)
	}
	if c.DatasetRetention.Enabled && c.DatasetRetention.Hours <= 0 {
		return fmt.Errorf("DATASET_RETENTION_HOURS deve ser positivo, recebido %d", c.DatasetRetention.Hours)
	}
	return nil
}

// MaxUploadBytes retorna o limite de upload em bytes
func (c *Config) MaxUploadBytes() int64 {
	return c.Upload.MaxUploadMB << 20
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
