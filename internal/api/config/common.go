package config

// Config 配置主体
type Config struct {
	Server             ServerConfig     `mapstructure:"server"`
	DB                 DBConfig         `mapstructure:"database"`
	Redis              RedisConfig      `mapstructure:"redis"`
	Mongo              MongoConfig      `mapstructure:"mongo"`
	LLM                LLMConfig        `mapstructure:"llm"`
	MinIO              MinIOConfig      `mapstructure:"minio"`
	Elastic            ElasticConfig    `mapstructure:"elastic"`
	Kafka              KafkaConfig      `mapstructure:"kafka"`
	KafkaMetricWebhook KafkaTopicConfig `mapstructure:"kafka_metric_webhook"`
	Logstash           LogstashConfig   `mapstructure:"logstash"`
	Auth               AuthConfig       `mapstructure:"auth"`
	Webhook            WebhookConfig    `mapstructure:"webhook"`
	Instagram          InstagramConfig  `mapstructure:"instagram"`
	Report             ReportConfig     `mapstructure:"report"`
	Cron               CronConfig       `mapstructure:"cron"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// LLMConfig 模型配置，timeout_seconds 为单次补全的超时
type LLMConfig struct {
	URL            string `mapstructure:"url"`
	Model          string `mapstructure:"model"`
	ApiKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxConcurrency int64  `mapstructure:"max_concurrency"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	ExportBucket     string `mapstructure:"export_bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
	ExportExpireDays int    `mapstructure:"export_expire_days"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address  string         `mapstructure:"address"`
	Username string         `mapstructure:"username"`
	Password string         `mapstructure:"password"`
	Indices  ElasticIndices `mapstructure:"indices"`
}

// ElasticIndices Elastic索引
type ElasticIndices struct {
	ReportIndex string `mapstructure:"report_index"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaTopicConfig struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// AuthConfig 身份提供方签发的 JWT 校验参数
type AuthConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// WebhookConfig Instagram webhook 校验参数
type WebhookConfig struct {
	VerifyToken string `mapstructure:"verify_token"`
	Secret      string `mapstructure:"secret"`
}

type InstagramConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// ReportConfig 报告生成相关
type ReportConfig struct {
	LatestCacheMinutes int `mapstructure:"latest_cache_minutes"`
	LockSeconds        int `mapstructure:"lock_seconds"`
}

// CronConfig 定时任务表达式 (带秒)
type CronConfig struct {
	WeeklyInsight string `mapstructure:"weekly_insight"`
	MetricSync    string `mapstructure:"metric_sync"`
}
