package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppName  string
	Env      string
	Debug    bool
	TestMode bool

	Address        string
	FrontendOrigin string

	Database struct {
		URL  string
		Name string
	}

	// UploadDir is the base directory served back under /uploads.
	UploadDir string

	RateLimit struct {
		Requests int
		Window   time.Duration
	}

	RollbarToken string
}

// LoadConfig reads the environment-driven configuration: defaults first, then
// an optional config/.env.<env> file, then environment variables prefixed
// with the environment name.
func LoadConfig() *Config {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Gradia")
	conf.SetDefault("address", ":4000")
	conf.SetDefault("frontendOrigin", "*")
	conf.SetDefault("databaseUrl", "mongodb://localhost:27017")
	conf.SetDefault("databaseName", "GRADIA")
	conf.SetDefault("uploadDir", "uploads")
	conf.SetDefault("rateLimitRequests", 100)
	conf.SetDefault("rateLimitWindow", 15*time.Minute)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	case "PROD":
		conf.SetDefault("debug", false)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	cfg := &Config{
		AppName:        conf.GetString("appName"),
		Env:            env,
		Debug:          conf.GetBool("debug"),
		TestMode:       conf.GetBool("testMode"),
		Address:        conf.GetString("address"),
		FrontendOrigin: conf.GetString("frontendOrigin"),
		UploadDir:      conf.GetString("uploadDir"),
		RollbarToken:   conf.GetString("rollbarToken"),
	}
	cfg.Database.URL = conf.GetString("databaseUrl")
	cfg.Database.Name = conf.GetString("databaseName")
	cfg.RateLimit.Requests = conf.GetInt("rateLimitRequests")
	cfg.RateLimit.Window = conf.GetDuration("rateLimitWindow")
	return cfg
}
