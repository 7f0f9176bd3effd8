package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Service ServiceConfig `mapstructure:"service"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Weights WeightsConfig `mapstructure:"weights"`
	Stub    StubConfig    `mapstructure:"stub"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServiceConfig 遠端評分服務設定
type ServiceConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CatalogConfig 食譜瀏覽設定
type CatalogConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// WeightsConfig 預設權重向量
type WeightsConfig struct {
	Similarity float64 `mapstructure:"similarity"`
	Context    float64 `mapstructure:"context"`
	Method     float64 `mapstructure:"method"`
	Category   float64 `mapstructure:"category"`
}

// StubConfig 本地開發用評分服務 stub 設定
type StubConfig struct {
	Port int `mapstructure:"port"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件（不存在時不視為錯誤）
	_ = godotenv.Load()

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("service.base_url", "SERVICE_BASE_URL")
	viper.BindEnv("service.timeout", "SERVICE_TIMEOUT")
	viper.BindEnv("catalog.page_size", "CATALOG_PAGE_SIZE")
	viper.BindEnv("stub.port", "STUB_PORT")
	viper.BindEnv("app.log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "substitute-finder")

	// 遠端評分服務設定
	viper.SetDefault("service.base_url", "http://localhost:8080")
	viper.SetDefault("service.timeout", "30s")

	// 瀏覽設定（一次載入 30 筆，與「載入更多」步進一致）
	viper.SetDefault("catalog.page_size", 30)

	// 權重預設：重視相似度與文脈，調理法與分類預設關閉
	viper.SetDefault("weights.similarity", 0.5)
	viper.SetDefault("weights.context", 0.5)
	viper.SetDefault("weights.method", 0.0)
	viper.SetDefault("weights.category", 0.0)

	// stub 伺服器設定
	viper.SetDefault("stub.port", 8080)
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	if config.Service.BaseURL == "" {
		return fmt.Errorf("service base url is required")
	}
	if config.Service.Timeout <= 0 {
		return fmt.Errorf("invalid service timeout")
	}
	if config.Catalog.PageSize <= 0 {
		return fmt.Errorf("invalid catalog page size")
	}

	// 權重只允許 [0,1]
	for name, w := range map[string]float64{
		"similarity": config.Weights.Similarity,
		"context":    config.Weights.Context,
		"method":     config.Weights.Method,
		"category":   config.Weights.Category,
	} {
		if w < 0 || w > 1 {
			return fmt.Errorf("invalid default weight %s: %v", name, w)
		}
	}

	if config.Stub.Port == 0 {
		return fmt.Errorf("stub port is required")
	}

	return nil
}
