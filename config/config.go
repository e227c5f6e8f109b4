package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Configs struct {
	Env string `toml:"env"`

	Log       LogConfigs       `toml:"log"`
	Database  DatabaseConfigs  `toml:"database"`
	ApiServer APIServerConfigs `toml:"api_server"`
	Auth      AuthConfigs      `toml:"auth"`
	Cron      CronConfigs      `toml:"cron"`
	Kafka     KafkaConfigs     `toml:"kafka"`
	Redis     RedisConfigs     `toml:"redis"`
	SnowFlake SnowFlakeConfigs `toml:"snowflake"`
}

type LogConfigs struct {
	Level string `toml:"level"`
}

type DatabaseConfigs struct {
	// Driver is either "mysql" or "sqlite".
	Driver   string `toml:"driver"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`

	// File is the sqlite database path.
	File string `toml:"file"`

	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&multiStatements=true",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type APIServerConfigs struct {
	Host           string   `toml:"host"`
	Port           string   `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`

	DefaultPageSize int `toml:"default_page_size"`
	MaxPageSize     int `toml:"max_page_size"`
}

type AuthConfigs struct {
	TokenSecret string       `toml:"token_secret"`
	AccessToken TokenConfigs `toml:"access_token"`
}

type TokenConfigs struct {
	Name       string        `toml:"name"`
	Expiration time.Duration `toml:"expiration"`
}

type CronConfigs struct {
	ExpireChallengeInterval time.Duration `toml:"expire_challenge_interval"`
	LockTTL                 time.Duration `toml:"lock_ttl"`
}

type KafkaConfigs struct {
	Addrs    []string `toml:"addrs"`
	ClientID string   `toml:"client_id"`
}

func (k KafkaConfigs) Enabled() bool {
	return len(k.Addrs) > 0
}

type RedisConfigs struct {
	Addr string `toml:"addr"`
}

func (r RedisConfigs) Enabled() bool {
	return r.Addr != ""
}

type SnowFlakeConfigs struct {
	NodeID int64 `toml:"node_id"`
}

func Default() Configs {
	return Configs{
		Env: "local",
		Log: LogConfigs{Level: "info"},
		Database: DatabaseConfigs{
			Driver:          "sqlite",
			File:            "docthru.db",
			MaxOpenConns:    100,
			MaxIdleConns:    10,
			ConnMaxLifetime: time.Hour,
		},
		ApiServer: APIServerConfigs{
			Port:            "8080",
			AllowedOrigins:  []string{"*"},
			DefaultPageSize: 10,
			MaxPageSize:     100,
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{Name: "access_token", Expiration: time.Hour},
		},
		Cron: CronConfigs{
			ExpireChallengeInterval: time.Minute,
			LockTTL:                 30 * time.Second,
		},
		Kafka: KafkaConfigs{ClientID: "docthru"},
	}
}

// Load reads the optional TOML file at path on top of the defaults, then
// applies secrets from the environment. A .env file in the working directory
// is loaded first if it exists.
func Load(path string) (Configs, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, fmt.Errorf("cannot decode config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Configs{}, fmt.Errorf("cannot load .env: %w", err)
	}

	overrideString(&cfg.Env, "ENV")
	overrideString(&cfg.Log.Level, "LOG_LEVEL")
	overrideString(&cfg.Database.Driver, "DB_DRIVER")
	overrideString(&cfg.Database.Host, "DB_HOST")
	overrideString(&cfg.Database.Port, "DB_PORT")
	overrideString(&cfg.Database.Database, "DB_NAME")
	overrideString(&cfg.Database.User, "DB_USER")
	overrideString(&cfg.Database.Password, "DB_PASSWORD")
	overrideString(&cfg.Auth.TokenSecret, "TOKEN_SECRET")
	overrideString(&cfg.Redis.Addr, "REDIS_ADDR")
	overrideString(&cfg.ApiServer.Port, "PORT")

	if cfg.Auth.TokenSecret == "" {
		return Configs{}, fmt.Errorf("auth.token_secret is required")
	}

	return cfg, nil
}

func overrideString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
