package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del bot.
type Config struct {
	Feed     FeedConfig     `yaml:"feed"`
	Exchange ExchangeConfig `yaml:"exchange"`
	Trading  TradingConfig  `yaml:"trading"`
	Notify   NotifyConfig   `yaml:"notify"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`

	// Secrets se cargan solo de variables de entorno, nunca del YAML.
	Secrets Secrets `yaml:"-"`
}

// FeedConfig controla el feed de partidos en vivo.
type FeedConfig struct {
	BaseURL   string   `yaml:"base_url"`  // vacío = producción
	Countries []string `yaml:"countries"` // allow-list; vacía = todos
}

// ExchangeConfig contiene los endpoints del exchange.
type ExchangeConfig struct {
	BettingURL  string `yaml:"betting_url"`  // vacío = producción
	IdentityURL string `yaml:"identity_url"` // vacío = producción
}

// TradingConfig controla la ventana de entrada, el monitoreo y el sizing.
type TradingConfig struct {
	MinMinute            int     `yaml:"min_minute"`
	MaxMinute            int     `yaml:"max_minute"`
	PollSeconds          int     `yaml:"poll_seconds"`
	CashoutMinute        int     `yaml:"cashout_minute"`
	MaxPrice             float64 `yaml:"max_price"`
	MarketRetry          int     `yaml:"market_retry"`
	MarketRetryDelaySecs int     `yaml:"market_retry_delay_seconds"`

	MinBackStake     float64 `yaml:"min_back_stake"`
	TestMode         bool    `yaml:"test_mode"`
	MinLiabilityMode bool    `yaml:"min_liability_mode"`
	MaxTestLiability float64 `yaml:"max_test_liability"`
	TestStakeCap     float64 `yaml:"test_stake_cap"`
	TestStake        float64 `yaml:"test_stake"`
	Stake            float64 `yaml:"stake"`
	MaxLiveLiability float64 `yaml:"max_live_liability"` // 0 = sin límite
}

// NotifyConfig controla los canales de notificación.
type NotifyConfig struct {
	TelegramEnabled bool `yaml:"telegram_enabled"`
}

// StorageConfig controla dónde se persiste el journal.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Secrets son las credenciales, siempre desde el entorno.
type Secrets struct {
	FeedAPIKey       string // AF_API_KEY
	ExchangeAppKey   string // BF_APP_KEY
	ExchangeUsername string // BF_USERNAME
	ExchangePassword string // BF_PASSWORD
	TelegramToken    string // TELEGRAM_BOT_TOKEN
	TelegramChatID   string // TELEGRAM_CHAT_ID
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del entorno sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// PollInterval devuelve el intervalo de polling como time.Duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Trading.PollSeconds) * time.Second
}

// MarketRetryDelay devuelve el delay entre intentos de resolución de mercado.
func (c *Config) MarketRetryDelay() time.Duration {
	return time.Duration(c.Trading.MarketRetryDelaySecs) * time.Second
}

// ValidateSecrets comprueba que las credenciales obligatorias estén presentes.
func (c *Config) ValidateSecrets() error {
	if c.Secrets.FeedAPIKey == "" {
		return fmt.Errorf("config: AF_API_KEY is required")
	}
	if c.Secrets.ExchangeAppKey == "" || c.Secrets.ExchangeUsername == "" || c.Secrets.ExchangePassword == "" {
		return fmt.Errorf("config: BF_APP_KEY, BF_USERNAME and BF_PASSWORD are required")
	}
	if c.Notify.TelegramEnabled && (c.Secrets.TelegramToken == "" || c.Secrets.TelegramChatID == "") {
		return fmt.Errorf("config: TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID are required when telegram is enabled")
	}
	return nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	cfg.Secrets.FeedAPIKey = os.Getenv("AF_API_KEY")
	cfg.Secrets.ExchangeAppKey = os.Getenv("BF_APP_KEY")
	cfg.Secrets.ExchangeUsername = os.Getenv("BF_USERNAME")
	cfg.Secrets.ExchangePassword = os.Getenv("BF_PASSWORD")
	cfg.Secrets.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.Secrets.TelegramChatID = os.Getenv("TELEGRAM_CHAT_ID")

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Trading.MinMinute <= 0 {
		cfg.Trading.MinMinute = 25
	}
	if cfg.Trading.MaxMinute <= 0 {
		cfg.Trading.MaxMinute = 60
	}
	if cfg.Trading.PollSeconds <= 0 {
		cfg.Trading.PollSeconds = 20
	}
	if cfg.Trading.CashoutMinute <= 0 {
		cfg.Trading.CashoutMinute = 71
	}
	if cfg.Trading.MaxPrice <= 0 {
		cfg.Trading.MaxPrice = 50.0
	}
	if cfg.Trading.MarketRetry <= 0 {
		cfg.Trading.MarketRetry = 3
	}
	if cfg.Trading.MarketRetryDelaySecs <= 0 {
		cfg.Trading.MarketRetryDelaySecs = 10
	}
	if cfg.Trading.MinBackStake <= 0 {
		cfg.Trading.MinBackStake = 2.0
	}
	if cfg.Trading.MaxTestLiability <= 0 {
		cfg.Trading.MaxTestLiability = 1.0
	}
	if cfg.Trading.TestStakeCap <= 0 {
		cfg.Trading.TestStakeCap = cfg.Trading.MinBackStake
	}
	if cfg.Trading.TestStake <= 0 {
		cfg.Trading.TestStake = 0.5
	}
	if cfg.Trading.Stake <= 0 {
		cfg.Trading.Stake = 5.0
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "goalbot.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
