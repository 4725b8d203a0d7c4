package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	d "github.com/invertedv/owid"
	"github.com/invertedv/owid/internal/logging"
	s "github.com/invertedv/owid/sql"
)

const (
	DefaultURL     = "https://ourworldindata.org/grapher/life-expectancy-vs-electoral-democracy-index.csv?v=1&csvType=full&useColumnShortNames=true"
	DefaultOutput  = "owid_democracy.csv"
	DefaultMinYear = 2001
)

// Config controls a run. The zero value is not usable; start from DefaultConfig.
type Config struct {
	URL       string    `yaml:"url"`
	UserAgent string    `yaml:"user_agent"`
	Output    string    `yaml:"output"`
	MinYear   int       `yaml:"min_year"`
	Log       LogConfig `yaml:"log"`
	Sinks     Sinks     `yaml:"sinks"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Sinks are optional databases that receive a copy of the output table.
type Sinks struct {
	ClickHouse *s.Sink `yaml:"clickhouse"`
	Postgres   *s.Sink `yaml:"postgres"`
	DuckDB     *s.Sink `yaml:"duckdb"`
}

func DefaultConfig() Config {
	return Config{
		URL:       DefaultURL,
		UserAgent: d.DefaultUserAgent,
		Output:    DefaultOutput,
		MinYear:   DefaultMinYear,
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig reads a YAML file. Keys present in the file replace the defaults.
func LoadConfig(path string) (Config, error) {
	data, e := os.ReadFile(path)
	if e != nil {
		return Config{}, fmt.Errorf("read config: %w", e)
	}

	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if e := dec.Decode(&cfg); e != nil && !errors.Is(e, io.EOF) {
		return Config{}, fmt.Errorf("parse config yaml: %w", e)
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("config: url is required")
	}

	if c.Output == "" {
		return fmt.Errorf("config: output is required")
	}

	if _, e := logging.ParseLevel(c.Log.Level); e != nil {
		return fmt.Errorf("config: %w", e)
	}

	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("config: log format must be text or json, got %q", c.Log.Format)
	}

	sinks := c.Sinks.byDialect()
	for _, name := range sinkOrder {
		if sk := sinks[name]; sk != nil && (sk.DSN == "") != (sk.Table == "") {
			return fmt.Errorf("config: sink %s needs both dsn and table", name)
		}
	}

	return nil
}

func (sk Sinks) byDialect() map[string]*s.Sink {
	return map[string]*s.Sink{
		d.CH:   sk.ClickHouse,
		d.PG:   sk.Postgres,
		d.Duck: sk.DuckDB,
	}
}
