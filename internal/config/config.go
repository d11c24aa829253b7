package config

import (
	"fmt"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"Server"`
	Thumbnail ThumbnailConfig `mapstructure:"Thumbnail"`
	Store     StoreConfig     `mapstructure:"Store"`
}

type ServerConfig struct {
	Port string `mapstructure:"Port"`
}

type ThumbnailConfig struct {
	Size       int  `mapstructure:"Size"`
	PublicRead bool `mapstructure:"PublicRead"`
}

type StoreConfig struct {
	Table  string `mapstructure:"Table"`
	Region string `mapstructure:"Region"`
}

func NewConfig(path string) (*Config, error) {
	v := viper.New()

	// Устанавливаем файл конфигурации
	v.SetConfigFile(path)

	// Привязываем переменные окружения
	v.BindEnv("Server.Port", "HTTP_PORT")
	v.BindEnv("Thumbnail.Size", "THUMBNAIL_SIZE")
	v.BindEnv("Thumbnail.PublicRead", "THUMBNAIL_PUBLIC_READ")
	v.BindEnv("Store.Table", "DYNAMODB_TABLE")
	v.BindEnv("Store.Region", "REGION_NAME")

	v.SetDefault("Thumbnail.PublicRead", true)

	// Читаем конфигурацию из файла
	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Warning: using only environment variables: %v\n", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Проверяем переменные окружения напрямую если конфигурация неполная
	if cfg.Thumbnail.Size == 0 {
		cfg.Thumbnail.Size = v.GetInt("THUMBNAIL_SIZE")
	}
	if cfg.Store.Table == "" {
		cfg.Store.Table = v.GetString("DYNAMODB_TABLE")
	}
	if cfg.Store.Region == "" {
		cfg.Store.Region = v.GetString("REGION_NAME")
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = v.GetString("HTTP_PORT")
	}

	// Проверяем, что все необходимые поля заполнены
	if cfg.Thumbnail.Size <= 0 {
		return nil, fmt.Errorf("thumbnail size must be a positive integer, got %d", cfg.Thumbnail.Size)
	}
	if cfg.Store.Table == "" {
		return nil, fmt.Errorf("record table name is required")
	}
	if cfg.Store.Region == "" {
		return nil, fmt.Errorf("region is required")
	}

	// Установка значений по умолчанию
	if cfg.Server.Port == "" {
		cfg.Server.Port = "2525"
	}

	return &cfg, nil
}
