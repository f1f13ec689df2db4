package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App      App      `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	BCB      BCB      `mapstructure:",squash"`
	Auth     Auth     `mapstructure:",squash"`
	Analysis Analysis `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// BCB configura o acesso ao SGS (Sistema Gerenciador de Séries Temporais)
// do Banco Central.
type BCB struct {
	BaseURL        string `mapstructure:"bcb_base_url"`
	UserAgent      string `mapstructure:"bcb_user_agent"`
	TimeoutSeconds int    `mapstructure:"bcb_timeout_seconds"`

	SelicCode      int `mapstructure:"bcb_selic_code"`
	IPCACode       int `mapstructure:"bcb_ipca_code"`
	DesempregoCode int `mapstructure:"bcb_desemprego_code"`
	ConfiancaCode  int `mapstructure:"bcb_confianca_code"`

	// SeriesCodes é o mapeamento indicador → código SGS montado a partir
	// dos campos acima; imutável após NewConfig.
	SeriesCodes map[string]int `mapstructure:"-"`
}

type Auth struct {
	Secret           string `mapstructure:"auth_secret"`
	ClientID         string `mapstructure:"auth_client_id"`
	ClientSecretHash string `mapstructure:"auth_client_secret_hash"`
	TokenTTLHours    int    `mapstructure:"auth_token_ttl_hours"`
}

// Analysis configura o pipeline de análise.
type Analysis struct {
	TargetColumn     string `mapstructure:"analysis_target_column"`
	ConfidenceColumn string `mapstructure:"analysis_confidence_column"`
	DefaultScenario  string `mapstructure:"analysis_default_scenario"`
	MinObservations  int    `mapstructure:"analysis_min_observations"`
	MaxUploadBytes   int64  `mapstructure:"analysis_max_upload_bytes"`
}

// Nomes dos indicadores macro. São também os nomes de coluna na tabela
// unificada e as variáveis candidatas da regressão.
const (
	IndicatorSelic      = "selic_mensal"
	IndicatorIPCA       = "ipca_mensal"
	IndicatorDesemprego = "taxa_desemprego"
	IndicatorConfianca  = "confianca_consumidor"
)

func (b BCB) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("BCB_BASE_URL", "https://api.bcb.gov.br/dados/serie")
	viper.SetDefault("BCB_USER_AGENT", "EconoRealize/1.0 (contato@econorealize.com.br)")
	viper.SetDefault("BCB_TIMEOUT_SECONDS", 15)

	// Códigos SGS padrão: Meta Selic (% a.a.), IPCA (% m/m),
	// PNAD Contínua (taxa de desocupação) e ICC (FGV/IBRE)
	viper.SetDefault("BCB_SELIC_CODE", 4189)
	viper.SetDefault("BCB_IPCA_CODE", 433)
	viper.SetDefault("BCB_DESEMPREGO_CODE", 24369)
	viper.SetDefault("BCB_CONFIANCA_CODE", 4390)

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")
	viper.SetDefault("AUTH_CLIENT_ID", "econorealize-web")
	// bcrypt de "local-dev-secret"; substituir em produção
	viper.SetDefault("AUTH_CLIENT_SECRET_HASH", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
	viper.SetDefault("AUTH_TOKEN_TTL_HOURS", 24)

	viper.SetDefault("ANALYSIS_TARGET_COLUMN", "inadimplencia_total")
	viper.SetDefault("ANALYSIS_CONFIDENCE_COLUMN", IndicatorConfianca)
	viper.SetDefault("ANALYSIS_DEFAULT_SCENARIO", IndicatorSelic)
	viper.SetDefault("ANALYSIS_MIN_OBSERVATIONS", 8)
	viper.SetDefault("ANALYSIS_MAX_UPLOAD_BYTES", 10<<20)

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

	config.BCB.SeriesCodes = map[string]int{
		IndicatorSelic:      config.BCB.SelicCode,
		IndicatorIPCA:       config.BCB.IPCACode,
		IndicatorDesemprego: config.BCB.DesempregoCode,
		IndicatorConfianca:  config.BCB.ConfiancaCode,
	}

	return config, nil
}

// RegressorCandidates retorna os nomes das variáveis macro candidatas, na
// ordem fixa usada pela regressão.
func (c *Config) RegressorCandidates() []string {
	return []string{
		IndicatorSelic,
		IndicatorIPCA,
		IndicatorDesemprego,
		IndicatorConfianca,
	}
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
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Info("Nenhum arquivo .env encontrado; usando defaults e variáveis de ambiente")
}
