package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config - настройки сервиса. Читаются из YAML-файла, отдельные значения
// можно переопределить переменными окружения (удобно в docker-compose).
//
// Комментарии в коде на русском языке по требованию пользователя

type Config struct {
	Port               string `yaml:"port"`
	DatabaseURL        string `yaml:"database_url"`
	BotToken           string `yaml:"bot_token"`
	SnapshotPath       string `yaml:"snapshot_path"` // файл снимка для режима без Postgres
	TickIntervalSecs   int    `yaml:"tick_interval_secs"`
	PrecheckWindowSecs int    `yaml:"precheck_window_secs"`
}

// Load читает конфигурацию. Отсутствующий файл не ошибка:
// применяются значения по умолчанию и переменные окружения.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err == nil {
		if uerr := yaml.Unmarshal(data, cfg); uerr != nil {
			return nil, fmt.Errorf("разбор %s: %w", path, uerr)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("чтение %s: %w", path, err)
	}

	applyDefaults(cfg)
	applyEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path возвращает путь к файлу конфигурации.
func Path() string {
	if p := os.Getenv("CPV_CONFIG"); p != "" {
		return p
	}
	return "./config.yaml"
}

func applyDefaults(cfg *Config) {
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.TickIntervalSecs == 0 {
		cfg.TickIntervalSecs = 5
	}
	if cfg.PrecheckWindowSecs == 0 {
		cfg.PrecheckWindowSecs = 600
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("BOT_TOKEN"); v != "" {
		cfg.BotToken = v
	}
	if v := os.Getenv("SNAPSHOT_PATH"); v != "" {
		cfg.SnapshotPath = v
	}
}

func validate(cfg *Config) error {
	if cfg.TickIntervalSecs < 1 {
		return fmt.Errorf("tick_interval_secs должен быть не меньше 1, задано %d", cfg.TickIntervalSecs)
	}
	if cfg.PrecheckWindowSecs < 1 {
		return fmt.Errorf("precheck_window_secs должен быть не меньше 1, задано %d", cfg.PrecheckWindowSecs)
	}
	return nil
}

// TickInterval и PrecheckWindow - удобные обёртки над секундами из файла.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalSecs) * time.Second
}

func (c *Config) PrecheckWindow() time.Duration {
	return time.Duration(c.PrecheckWindowSecs) * time.Second
}
