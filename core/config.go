package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf *Config

type (
	Config struct {
		Env      string
		Debug    bool
		TestMode bool
		AppName  string
		// SecretKey signs the session cookies. It is unrelated to the API app key.
		SecretKey    string
		RollbarToken string
		Build        string

		Server ServerConfig
		API    APIConfig
	}

	ServerConfig struct {
		Host            string
		Port            int
		ShutdownTimeout time.Duration
	}

	// APIConfig points at the remote spwapi backend and carries the request-signing
	// credentials. The app key ships with client configuration; see DESIGN.md on why
	// this is kept as-is.
	APIConfig struct {
		BaseURL string
		AppID   string
		AppKey  string
		Version string
		Timeout time.Duration
	}
)

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func init() {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "LanguageBridge")
	v.SetDefault("secretKey", "w#1t$9y8d@kq0c&e2(u!zr7x_m4v%p5j^h6g3f+n8b-s")
	v.SetDefault("build", "dev")
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.shutdownTimeout", 20*time.Second)
	v.SetDefault("api.baseURL", "http://localhost:18080")
	v.SetDefault("api.appID", "primary")
	v.SetDefault("api.appKey", "9882768ab9183051ea9ce724d1e6b645a0581492a5bbbf9b23ca88a3d8051f7e")
	v.SetDefault("api.version", "1.0")
	v.SetDefault("api.timeout", 15*time.Second)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	v.SetDefault("env", env)
	if strings.EqualFold(env, "TEST") {
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	Conf = &Config{
		Env:          v.GetString("env"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		AppName:      v.GetString("appName"),
		SecretKey:    v.GetString("secretKey"),
		RollbarToken: v.GetString("rollbarToken"),
		Build:        v.GetString("build"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Port:            v.GetInt("server.port"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
		},
		API: APIConfig{
			BaseURL: v.GetString("api.baseURL"),
			AppID:   v.GetString("api.appID"),
			AppKey:  v.GetString("api.appKey"),
			Version: v.GetString("api.version"),
			Timeout: v.GetDuration("api.timeout"),
		},
	}
}
