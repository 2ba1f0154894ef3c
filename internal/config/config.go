package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	// LedgerModeDev — локальный леджер в БД и dev FHE-сервис.
	LedgerModeDev = "dev"
	// LedgerModeEVM — развёрнутый контракт через JSON-RPC и FHE relayer.
	LedgerModeEVM = "evm"
)

type Config struct {
	// Server-side settings
	DatabaseDSN     string `env:"DATABASE_URI"`
	AuthSecret      string `env:"AUTH_SECRET"`
	LedgerMode      string `env:"LEDGER_MODE"`
	RPCURL          string `env:"RPC_URL"`
	ContractAddress string `env:"CONTRACT_ADDRESS"`
	ChainID         int64  `env:"CHAIN_ID"`
	SignerKey       string `env:"SIGNER_KEY"`
	RelayerURL      string `env:"RELAYER_URL"`
	DevFHESecret    string `env:"DEV_FHE_SECRET"`
	LoadConcurrency int    `env:"LOAD_CONCURRENCY"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL string `env:"-"`
	TokenFile string `env:"TOKEN_FILE"`
	Version   bool   `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД dev-леджера")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.LedgerMode, "ledger", cfg.LedgerMode, "ledger backend: dev | evm")
	flag.StringVar(&cfg.RPCURL, "rpc", cfg.RPCURL, "JSON-RPC endpoint of the chain (evm mode)")
	flag.StringVar(&cfg.ContractAddress, "contract", cfg.ContractAddress, "credit score contract address (evm mode)")
	flag.Int64Var(&cfg.ChainID, "chain-id", cfg.ChainID, "chain id for signing transactions (evm mode)")
	flag.StringVar(&cfg.SignerKey, "signer-key", cfg.SignerKey, "hex private key of the wallet signer")
	flag.StringVar(&cfg.RelayerURL, "relayer", cfg.RelayerURL, "FHE relayer base URL (evm mode)")
	flag.StringVar(&cfg.DevFHESecret, "dev-fhe-secret", cfg.DevFHESecret, "secret of the dev FHE service")
	flag.IntVar(&cfg.LoadConcurrency, "load-concurrency", cfg.LoadConcurrency, "parallel record fetches per refresh")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL of the CreditScoreZ server (may be host:port or full URL)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to session token file (client; default <UserConfigDir>/CreditScoreZ/auth_token)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	cfg.LedgerMode = strings.ToLower(strings.TrimSpace(cfg.LedgerMode))
	if cfg.LedgerMode == "" {
		cfg.LedgerMode = LedgerModeDev
	}
	if cfg.ChainID == 0 {
		cfg.ChainID = 11155111 // sepolia
	}
	if cfg.DevFHESecret == "" {
		cfg.DevFHESecret = "dev-fhe-secret"
	}
	if cfg.LoadConcurrency <= 0 {
		cfg.LoadConcurrency = 4
	}
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	home, _ := os.UserHomeDir()
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = filepath.Join(home, "creditscorez.db")
	}
	// пустой TokenFile: клиент хранит токен в <UserConfigDir>/CreditScoreZ/auth_token
}

// Validate проверяет настройки сервера для выбранного режима леджера.
func (cfg *Config) Validate() error {
	switch cfg.LedgerMode {
	case LedgerModeDev:
		return nil
	case LedgerModeEVM:
		var missing []string
		if cfg.RPCURL == "" {
			missing = append(missing, "RPC_URL")
		}
		if cfg.ContractAddress == "" {
			missing = append(missing, "CONTRACT_ADDRESS")
		}
		if cfg.SignerKey == "" {
			missing = append(missing, "SIGNER_KEY")
		}
		if cfg.RelayerURL == "" {
			missing = append(missing, "RELAYER_URL")
		}
		if len(missing) > 0 {
			return errors.New("evm ledger mode requires " + strings.Join(missing, ", "))
		}
		return nil
	default:
		return errors.New("unknown LEDGER_MODE " + cfg.LedgerMode)
	}
}
