package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
)

// Origens de dados suportadas
const (
	DataSourceAPI      = "api"
	DataSourcePostgres = "postgres"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	SalesAPI    SalesAPI    `mapstructure:",squash"`
	Analytics   Analytics   `mapstructure:",squash"`
	StockAlerts StockAlerts `mapstructure:",squash"`
	Cors        Cors        `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
	SSLMode  string `mapstructure:"database_sslmode"`
}

type App struct {
	LogLevel   string `mapstructure:"log_level"`
	DataSource string `mapstructure:"data_source"`
}

// SalesAPI é o backend de vendas consultado quando DATA_SOURCE=api
type SalesAPI struct {
	URL     string        `mapstructure:"sales_api_url"`
	Token   string        `mapstructure:"sales_api_token"`
	Timeout time.Duration `mapstructure:"sales_api_timeout"`
}

// Analytics reúne os parâmetros de política do motor de análise
type Analytics struct {
	MovingAverageWindow  int     `mapstructure:"analytics_moving_average_window"`
	TopN                 int     `mapstructure:"analytics_top_n"`
	FirstDayOfWeek       string  `mapstructure:"analytics_first_day_of_week"`
	Timezone             string  `mapstructure:"analytics_timezone"`
	LowStockThreshold    int     `mapstructure:"analytics_low_stock_threshold"`
	StableThreshold      float64 `mapstructure:"analytics_stable_threshold"`
	ModerateThreshold    float64 `mapstructure:"analytics_moderate_threshold"`
	GrossMarginPercent   float64 `mapstructure:"analytics_gross_margin_percent"`
	OperatingCostPercent float64 `mapstructure:"analytics_operating_cost_percent"`
	ForecastDays         int     `mapstructure:"analytics_forecast_days"`
	ExcludeCancelled     bool    `mapstructure:"analytics_exclude_cancelled"`
}

type StockAlerts struct {
	CronSchedule string `mapstructure:"stock_alerts_cron"`
	Enabled      bool   `mapstructure:"stock_alerts_enabled"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATA_SOURCE", DataSourceAPI)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_SSLMODE", "disable")

	viper.SetDefault("SALES_API_URL", "http://localhost:8080")
	viper.SetDefault("SALES_API_TOKEN", "")
	viper.SetDefault("SALES_API_TIMEOUT", "30s")

	viper.SetDefault("ANALYTICS_MOVING_AVERAGE_WINDOW", 7)
	viper.SetDefault("ANALYTICS_TOP_N", 5)
	viper.SetDefault("ANALYTICS_FIRST_DAY_OF_WEEK", "sunday")
	viper.SetDefault("ANALYTICS_TIMEZONE", "UTC")
	viper.SetDefault("ANALYTICS_LOW_STOCK_THRESHOLD", 10)
	viper.SetDefault("ANALYTICS_STABLE_THRESHOLD", 70)
	viper.SetDefault("ANALYTICS_MODERATE_THRESHOLD", 40)
	viper.SetDefault("ANALYTICS_GROSS_MARGIN_PERCENT", 30)
	viper.SetDefault("ANALYTICS_OPERATING_COST_PERCENT", 15)
	viper.SetDefault("ANALYTICS_FORECAST_DAYS", 7)
	viper.SetDefault("ANALYTICS_EXCLUDE_CANCELLED", false)

	viper.SetDefault("STOCK_ALERTS_CRON", "0 7 * * *") // Todos os dias às 7h da manhã
	viper.SetDefault("STOCK_ALERTS_ENABLED", false)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
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

	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.App.DataSource = strings.ToLower(strings.TrimSpace(config.App.DataSource))
	if config.App.DataSource != DataSourceAPI && config.App.DataSource != DataSourcePostgres {
		return nil, fmt.Errorf("DATA_SOURCE inválido: %q (valores aceitos: api, postgres)", config.App.DataSource)
	}

	if _, err := config.Analytics.Options(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s?sslmode=%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
		config.Database.SSLMode,
	)

	return config, nil
}

// Options converte a configuração nas opções do motor de análise
func (a Analytics) Options() (analytics.Options, error) {
	firstDay, err := ParseWeekday(a.FirstDayOfWeek)
	if err != nil {
		return analytics.Options{}, err
	}

	location, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return analytics.Options{}, errors.Wrapf(err, "ANALYTICS_TIMEZONE inválido: %q", a.Timezone)
	}

	if a.MovingAverageWindow < 1 {
		return analytics.Options{}, fmt.Errorf("ANALYTICS_MOVING_AVERAGE_WINDOW deve ser maior que zero: %d", a.MovingAverageWindow)
	}

	if a.TopN < 0 {
		return analytics.Options{}, fmt.Errorf("ANALYTICS_TOP_N não pode ser negativo: %d", a.TopN)
	}

	return analytics.Options{
		MovingAverageWindow: a.MovingAverageWindow,
		TopN:                a.TopN,
		FirstDayOfWeek:      firstDay,
		Location:            location,
		LowStockThreshold:   a.LowStockThreshold,
		Stability: analytics.StabilityThresholds{
			Stable:   a.StableThreshold,
			Moderate: a.ModerateThreshold,
		},
		GrossMarginPercent:   a.GrossMarginPercent,
		OperatingCostPercent: a.OperatingCostPercent,
		ForecastDays:         a.ForecastDays,
		ExcludeCancelled:     a.ExcludeCancelled,
	}, nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"domingo":   time.Sunday,
	"monday":    time.Monday,
	"segunda":   time.Monday,
	"tuesday":   time.Tuesday,
	"terca":     time.Tuesday,
	"terça":     time.Tuesday,
	"wednesday": time.Wednesday,
	"quarta":    time.Wednesday,
	"thursday":  time.Thursday,
	"quinta":    time.Thursday,
	"friday":    time.Friday,
	"sexta":     time.Friday,
	"saturday":  time.Saturday,
	"sabado":    time.Saturday,
	"sábado":    time.Saturday,
}

// ParseWeekday aceita o nome do dia (inglês ou português) ou o número de 0 (domingo) a 6
func ParseWeekday(value string) (time.Weekday, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if day, ok := weekdays[value]; ok {
		return day, nil
	}

	if n, err := strconv.Atoi(value); err == nil && n >= 0 && n <= 6 {
		return time.Weekday(n), nil
	}

	return time.Sunday, fmt.Errorf("ANALYTICS_FIRST_DAY_OF_WEEK inválido: %q", value)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
