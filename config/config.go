package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     Server
	Db         Db
	Migrations Migrations
	Media      Media
	Emoji      Emoji
	Limits     Limits
}

type Server struct {
	Port           string
	Environment    string
	MaxConnections int    `mapstructure:"max_connections"`
	SessionSecret  string `mapstructure:"session_secret"`
	SecureCookies  bool   `mapstructure:"secure_cookies"`
	LogFile        string `mapstructure:"log_file"`
	LogMaxSizeMb   int    `mapstructure:"log_max_size_mb"`
}

type Db struct {
	Url          string
	MaxOpenConns int `mapstructure:"max_open_conns"`
	MaxIdleConns int `mapstructure:"max_idle_conns"`
}

type Migrations struct {
	Dir string
}

type Media struct {
	Backend  string
	Root     string
	Url      string
	S3Bucket string `mapstructure:"s3_bucket"`
	S3Region string `mapstructure:"s3_region"`
	S3Prefix string `mapstructure:"s3_prefix"`
}

type Emoji struct {
	Dir string
	Url string
}

type Limits struct {
	ThreadsPerHour  int `mapstructure:"threads_per_hour"`
	PostsPerHour    int `mapstructure:"posts_per_hour"`
	MessagesPerHour int `mapstructure:"messages_per_hour"`
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load resolves configuration from .env, an optional config/forum.yaml and the environment.
// Environment always wins over the file.
func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("error loading .env: %v", err)
	}

	v := viper.New()
	v.SetConfigName("forum")
	v.SetConfigType("yaml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("FORUM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// unprefixed names kept for compatibility with container setups
	bindLegacyEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %v", err)
		}
	}

	return Parse(v)
}

func Parse(v *viper.Viper) (*Config, error) {
	var c Config
	err := v.Unmarshal(&c)
	if err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %v", err)
	}

	if c.Db.Url == "" {
		c.Db.Url = dbUrlFromParts(v)
	}

	if c.Db.Url == "" {
		return nil, errors.New("DATABASE_URL or DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, and DB_NAME environment variables must be set")
	}

	if c.Server.SessionSecret == "" {
		if c.IsProduction() {
			return nil, errors.New("server.session_secret must be set in production")
		}
		c.Server.SessionSecret = "development-session-secret-change-me"
	}

	switch c.Media.Backend {
	case "local", "s3":
	default:
		return nil, fmt.Errorf("unknown media backend: %q", c.Media.Backend)
	}

	if c.Media.Backend == "s3" && c.Media.S3Bucket == "" {
		return nil, errors.New("media.s3_bucket is required for the s3 media backend")
	}

	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8088")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_connections", 512)
	v.SetDefault("server.session_secret", "")
	v.SetDefault("server.secure_cookies", false)
	v.SetDefault("server.log_file", "")
	v.SetDefault("server.log_max_size_mb", 50)
	v.SetDefault("db.url", "")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("migrations.dir", "migrations")
	v.SetDefault("media.backend", "local")
	v.SetDefault("media.root", "media")
	v.SetDefault("media.url", "/media/")
	v.SetDefault("media.s3_bucket", "")
	v.SetDefault("media.s3_region", "us-east-1")
	v.SetDefault("media.s3_prefix", "")
	v.SetDefault("emoji.dir", "static/emoji")
	v.SetDefault("emoji.url", "/static/emoji/")
	v.SetDefault("limits.threads_per_hour", 10)
	v.SetDefault("limits.posts_per_hour", 30)
	v.SetDefault("limits.messages_per_hour", 120)
}

func bindLegacyEnv(v *viper.Viper) {
	legacy := map[string]string{
		"server.port":        "PORT",
		"server.environment": "GOENV",
		"db.url":             "DATABASE_URL",
		"migrations.dir":     "MIGRATIONS_DIR",
		"db.host":            "DB_HOST",
		"db.port":            "DB_PORT",
		"db.user":            "DB_USER",
		"db.password":        "DB_PASSWORD",
		"db.name":            "DB_NAME",
	}
	for key, env := range legacy {
		// BindEnv only errors when called without a key
		_ = v.BindEnv(key, "FORUM_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env)
	}
}

func dbUrlFromParts(v *viper.Viper) string {
	host := v.GetString("db.host")
	port := v.GetString("db.port")
	user := v.GetString("db.user")
	password := v.GetString("db.password")
	name := v.GetString("db.name")

	if host == "" || port == "" || user == "" || password == "" || name == "" {
		return ""
	}

	encodedPassword := url.QueryEscape(password)
	return "postgres://" + user + ":" + encodedPassword + "@" + host + ":" + port + "/" + name
}
