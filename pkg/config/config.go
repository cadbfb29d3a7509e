package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Endpoint        string `yaml:"endpoint"`          // API 基地址，为空用默认
	Account         string `yaml:"account"`           // 默认账户 ID（可选）
	WarnOnOrders    bool   `yaml:"warn_on_orders"`    // 下单是否保留交易确认提示
	LogLevel        string `yaml:"log_level"`         // 日志级别
	LogFile         string `yaml:"log_file"`          // 日志文件路径（可选）
	DBPath          string `yaml:"db_path"`           // 持仓库 sqlite 路径
	SecretStorePath string `yaml:"secret_store_path"` // 凭据库（badger）路径
	ControlBind     string `yaml:"control_bind"`      // 控制面监听地址（可选，为空不启动）
}

// applyDefaults 填默认值
func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.DBPath == "" {
		c.DBPath = "data/goally.db"
	}
	if c.SecretStorePath == "" {
		c.SecretStorePath = "data/secrets"
	}
}

// applyEnv 用环境变量覆盖文件配置（GOALLY_ 前缀）
func (c *Config) applyEnv() {
	if v := os.Getenv("GOALLY_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("GOALLY_ACCOUNT"); v != "" {
		c.Account = v
	}
	if v := os.Getenv("GOALLY_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("GOALLY_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("GOALLY_SECRET_STORE_PATH"); v != "" {
		c.SecretStorePath = v
	}
	if v := os.Getenv("GOALLY_CONTROL_BIND"); v != "" {
		c.ControlBind = v
	}
}

// Load 加载配置：先 .env（存在才读），再 yaml 文件，最后环境变量覆盖。
// path 为空时只用默认值加环境变量。
func Load(path string) (*Config, error) {
	// .env 是开发态便利，缺失不算错误
	_ = godotenv.Load()

	cfg := &Config{WarnOnOrders: true}

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("解析配置文件失败: %w", err)
		}
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg, nil
}
