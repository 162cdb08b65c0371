package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/reusedev/vector-hub/internal/consts"
	"gopkg.in/yaml.v3"
)

var GConfig *Config

// Init loads the YAML config file and applies environment overrides.
// A missing file is not an error: the service can run on environment
// variables alone.
func Init(filePath string) {
	GConfig = &Config{}
	data, err := os.ReadFile(filePath)
	if err == nil {
		initFromYaml(data)
	} else if !os.IsNotExist(err) {
		panic(err)
	}
	GConfig.applyEnv()
	GConfig.fullWithDefault()
	err = GConfig.Verify()
	if err != nil {
		panic(err)
	}
}

func initFromYaml(config []byte) {
	err := yaml.Unmarshal(config, &GConfig)
	if err != nil {
		panic(err)
	}
}

type Config struct {
	Listen     string `yaml:"listen"`
	Vectorizer `yaml:"vectorizer"`
	Auth       `yaml:"auth"`
	Log        `yaml:"log"`
}

type Vectorizer struct {
	APIId     string `yaml:"api_id"`
	APISecret string `yaml:"api_secret"`
	BaseURL   string `yaml:"base_url"`
}

type Auth struct {
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	SessionExpire string `yaml:"session_expire"`
}

type Log struct {
	LogLevel      string `yaml:"level"`
	LogFile       string `yaml:"file"`
	LogMaxSize    int    `yaml:"max_size"`
	LogMaxBackups int    `yaml:"max_backups"`
	LogMaxAge     int    `yaml:"max_age"`
}

func (c *Config) applyEnv() {
	if v := os.Getenv("VECTORIZER_API_ID"); v != "" {
		c.APIId = v
	}
	if v := os.Getenv("VECTORIZER_API_SECRET"); v != "" {
		c.APISecret = v
	}
	if v := os.Getenv("VECTORIZER_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("AUTH_USERNAME"); v != "" {
		c.Username = v
	}
	if v := os.Getenv("AUTH_PASSWORD"); v != "" {
		c.Password = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Listen = ":" + v
	}
}

func (c *Config) fullWithDefault() {
	if c.Listen == "" {
		c.Listen = ":3001"
	}
	if c.BaseURL == "" {
		c.BaseURL = consts.VectorizerBaseURL
	}
	if c.SessionExpire == "" {
		c.SessionExpire = "12h"
	}
	if c.LogFile == "" {
		c.LogFile = "vector-hub.log"
	}
	if c.LogMaxSize == 0 {
		c.LogMaxSize = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 10
	}
	if c.LogMaxAge == 0 {
		c.LogMaxAge = 30
	}
}

// Verify rejects malformed values. Absent API credentials are not a
// config error here: resolution failure surfaces per request instead.
func (c *Config) Verify() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be http or https: %s", c.BaseURL)
	}
	_, err = time.ParseDuration(c.SessionExpire)
	if err != nil {
		return err
	}
	return nil
}

func (c *Config) SessionExpireDuration() time.Duration {
	d, err := time.ParseDuration(c.SessionExpire)
	if err != nil {
		return 12 * time.Hour
	}
	return d
}
