package config

import (
	"log"

	"github.com/spf13/viper"
)

type WebServerConfig struct {
	Port            string `mapstructure:"port"`
	IP              string `mapstructure:"ip"`
	ReadTimeout     int    `mapstructure:"read_timeout"`
	WriteTimeout    int    `mapstructure:"write_timeout"`
	RequestTimeout  int    `mapstructure:"request_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"` // SQLite file path (development default)
	URL  string `mapstructure:"url"`  // Full DSN override (production)
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type Config struct {
	Environment string          `mapstructure:"environment"`
	WebServer   WebServerConfig `mapstructure:"webserver"`
	Database    DatabaseConfig  `mapstructure:"database"`
	CORS        CORSConfig      `mapstructure:"cors"`
	RateLimit   RateLimitConfig `mapstructure:"ratelimit"`
}

// IsDevelopment reports whether the service runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// DSN returns the database connection string: the explicit URL when
// configured, otherwise the local SQLite file path.
func (c Config) DSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	return c.Database.Path
}

func LoadConfig() (Config, error) {
	var config Config

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Enable environment variable overrides
	viper.SetEnvPrefix("ANALYTICS")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine; defaults and env overrides apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Error reading config file: %v", err)
			return config, err
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		log.Printf("Unable to decode into struct: %v", err)
		return config, err
	}

	return config, nil
}

func MustLoadConfig() Config {
	config, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return config
}

func setDefaults() {
	viper.SetDefault("environment", "production")

	// WebServer defaults
	viper.SetDefault("webserver.port", "5000")
	viper.SetDefault("webserver.ip", "0.0.0.0")
	viper.SetDefault("webserver.read_timeout", 15)
	viper.SetDefault("webserver.write_timeout", 15)
	viper.SetDefault("webserver.request_timeout", 10)
	viper.SetDefault("webserver.shutdown_timeout", 30)

	// Database defaults
	viper.SetDefault("database.path", "analytics.db")
	viper.SetDefault("database.url", "")

	// CORS defaults: the GitHub Pages site plus local development servers
	viper.SetDefault("cors.allowed_origins", []string{
		"http://localhost:8000",
		"http://127.0.0.1:8000",
		"https://3dimaging.github.io",
	})

	// RateLimit defaults
	viper.SetDefault("ratelimit.requests_per_second", 20.0)
	viper.SetDefault("ratelimit.burst", 40)
}
