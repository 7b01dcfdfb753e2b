package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env      string
		Debug    bool
		TestMode bool
		AppName  string
		Build    string

		Server struct {
			Address         string
			DebugAddress    string
			ShutdownTimeout time.Duration
			DisableReqLogs  bool
		}

		RollbarToken     string
		SendgridAPIKey   string
		defaultFromEmail string
		FrontendBaseURL  string

		// catalog
		DefaultLanguage     string
		CurrentStudentID    string // stands in for the logged in student
		DefaultAcademicYear string
		DefaultImageURL     string
		SeedFile            string // optional YAML seed overriding the embedded one
	}
)

// NewConfig loads the app configuration from defaults, an optional `config/.env.<env>` file and the environment.
// ENV selects the environment (DEV: default, TEST, QA, PROD) and the env vars prefix, eg. DEV_DEBUG=false.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Katalog")
	v.SetDefault("build", "dev")
	v.SetDefault("serverAddress", ":8000")
	v.SetDefault("serverDebugAddress", ":4000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("serverDisableReqLogs", false)
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("defaultFromEmail", "Katalog <noreply@localhost>")
	v.SetDefault("frontendBaseUrl", "http://localhost:3000")
	v.SetDefault("defaultLanguage", "cs")
	v.SetDefault("currentStudentId", "u1")
	v.SetDefault("defaultAcademicYear", "2023/2024")
	v.SetDefault("defaultImageUrl", "https://picsum.photos/400/300")
	v.SetDefault("seedFile", "")

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	if wd, err := os.Getwd(); err == nil {
		dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
		}
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:                 env,
		Debug:               v.GetBool("debug"),
		TestMode:            v.GetBool("testMode"),
		AppName:             v.GetString("appName"),
		Build:               v.GetString("build"),
		RollbarToken:        v.GetString("rollbarToken"),
		SendgridAPIKey:      v.GetString("sendgridApiKey"),
		defaultFromEmail:    v.GetString("defaultFromEmail"),
		FrontendBaseURL:     v.GetString("frontendBaseUrl"),
		DefaultLanguage:     v.GetString("defaultLanguage"),
		CurrentStudentID:    v.GetString("currentStudentId"),
		DefaultAcademicYear: v.GetString("defaultAcademicYear"),
		DefaultImageURL:     v.GetString("defaultImageUrl"),
		SeedFile:            v.GetString("seedFile"),
	}
	conf.Server.Address = v.GetString("serverAddress")
	conf.Server.DebugAddress = v.GetString("serverDebugAddress")
	conf.Server.ShutdownTimeout = v.GetDuration("serverShutdownTimeout")
	conf.Server.DisableReqLogs = v.GetBool("serverDisableReqLogs")
	return conf
}

// NewTestConfig returns the configuration used by tests: no env lookups, quiet output.
func NewTestConfig() *Config {
	conf := &Config{
		Env:                 "TEST",
		TestMode:            true,
		AppName:             "Katalog",
		Build:               "test",
		defaultFromEmail:    "Katalog <noreply@localhost>",
		FrontendBaseURL:     "http://localhost:3000",
		DefaultLanguage:     "cs",
		CurrentStudentID:    "u1",
		DefaultAcademicYear: "2023/2024",
		DefaultImageURL:     "https://picsum.photos/400/300",
	}
	conf.Server.DisableReqLogs = true
	conf.Server.ShutdownTimeout = time.Second
	return conf
}

func (conf *Config) DefaultFromEmail() mail.Address {
	addr, err := mail.ParseAddress(conf.defaultFromEmail)
	if err != nil {
		return mail.Address{Name: conf.AppName, Address: "noreply@localhost"}
	}
	return *addr
}
