// Package config 负责加载和管理应用程序的配置。
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// 全局配置变量，存储从配置文件加载的所有设置。
var Conf Config

// Config 是整个应用程序的配置结构体，与 config.yaml 文件结构对应。
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Log      LogConfig      `mapstructure:"log"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Chat     ChatConfig     `mapstructure:"chat"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 存储所有数据库连接的配置。
type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
	Redis RedisConfig `mapstructure:"redis"`
}

// MySQLConfig 存储 MySQL 数据库的配置。
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig 存储 Redis 的配置。
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StorageConfig 选择内容数据（简历/项目/留言/课程）的持久化后端。
// driver 可选 "mysql"（关系表）或 "redis"（整表 JSON 存储）。
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

// JWTConfig 存储 JWT 相关的配置。
type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// AdminConfig 定义站点管理员账号。密码以 bcrypt 哈希形式存放。
type AdminConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

// LogConfig 存储日志相关的配置。
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// MinIOConfig 存储 MinIO 对象存储的配置（项目配图）。
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
}

// LLMConfig 存储远端文本生成服务（Groq，OpenAI 兼容协议）的配置。
type LLMConfig struct {
	APIKey         string              `mapstructure:"api_key"`
	BaseURL        string              `mapstructure:"base_url"`
	Model          string              `mapstructure:"model"`
	VoiceModel     string              `mapstructure:"voice_model"`
	TimeoutSeconds int                 `mapstructure:"timeout_seconds"`
	Generation     LLMGenerationConfig `mapstructure:"generation"`
}

// LLMGenerationConfig 配置生成相关参数。
type LLMGenerationConfig struct {
	Temperature    float64 `mapstructure:"temperature"`
	TopP           float64 `mapstructure:"top_p"`
	MaxTokens      int     `mapstructure:"max_tokens"`
	VoiceMaxTokens int     `mapstructure:"voice_max_tokens"`
}

// ChatConfig 控制对话管线的窗口与留存策略。
type ChatConfig struct {
	// RetrieveLimit 是检索阶段返回的候选上限。
	RetrieveLimit int `mapstructure:"retrieve_limit"`
	// ContextLimit 是进入提示词的候选上限。
	ContextLimit int `mapstructure:"context_limit"`
	// HistoryLimit 是进入提示词的历史轮次上限。
	HistoryLimit int `mapstructure:"history_limit"`
	// MaxTurns 是单个会话在存储中保留的消息尾部长度。
	MaxTurns int `mapstructure:"max_turns"`
	// TurnTTLHours 是会话消息的留存窗口（小时）。
	TurnTTLHours int `mapstructure:"turn_ttl_hours"`
	// MemoryTTLDays 是记忆摘要的留存窗口（天）。
	MemoryTTLDays int `mapstructure:"memory_ttl_days"`
}

// Init 初始化配置加载，从指定的路径读取 YAML 文件并解析到 Conf 变量中。
func Init(configPath string) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// 对话管线的缺省窗口，与线上行为保持一致
	viper.SetDefault("storage.driver", "mysql")
	viper.SetDefault("chat.retrieve_limit", 15)
	viper.SetDefault("chat.context_limit", 5)
	viper.SetDefault("chat.history_limit", 5)
	viper.SetDefault("chat.max_turns", 40)
	viper.SetDefault("chat.turn_ttl_hours", 24)
	viper.SetDefault("chat.memory_ttl_days", 7)
	viper.SetDefault("llm.timeout_seconds", 30)
	viper.SetDefault("llm.generation.max_tokens", 800)
	viper.SetDefault("llm.generation.voice_max_tokens", 150)
	viper.SetDefault("llm.generation.temperature", 0.7)

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("读取配置文件失败: %w", err))
	}

	if err := viper.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("无法将配置解析到结构体中: %w", err))
	}
}
