package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "QKART_CONFIG_FILE"
	envPrefix         = "QKART"
)

const (
	StorageMemory = "memory"
	StorageSQL    = "sql"
)

type tlsFiles struct {
	CA   string `mapstructure:"ca"`
	Cert string `mapstructure:"cert"`
	Key  string `mapstructure:"key"`
}

type api struct {
	Endpoint    string        `mapstructure:"endpoint"`
	Timeout     time.Duration `mapstructure:"timeout"`
	BalancePath string        `mapstructure:"balance_path"`
	TLS         tlsFiles      `mapstructure:"tls"`
}

type search struct {
	Debounce time.Duration `mapstructure:"debounce"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type session struct {
	CookieName string        `mapstructure:"cookie_name"`
	Storage    string        `mapstructure:"storage"`
	SQLDB      string        `mapstructure:"sql_db"`
	ViewTTL    time.Duration `mapstructure:"view_ttl"`
}

type topics struct {
	ClientEvents string `mapstructure:"client_events"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	ClientID           string   `mapstructure:"client_id"`
	Topics             topics   `mapstructure:"topics"`
	TLS                tlsFiles `mapstructure:"tls"`
}

type Config struct {
	LogLevel        slog.Level    `mapstructure:"log_level"`
	HTTPServerAddr  string        `mapstructure:"http_server_addr"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	API             api           `mapstructure:"api"`
	Search          search        `mapstructure:"search"`
	Session         session       `mapstructure:"session"`
	Broker          broker        `mapstructure:"broker"`
}

// EventsEnabled reports whether client events are published.
func (c Config) EventsEnabled() bool {
	return len(c.Broker.SeedBrokers) != 0
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("http_server_addr", ":8080")
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("shutdown_timeout", "10s")

	v.SetDefault("api.endpoint", "https://qkartfrontend-zbs6.onrender.com/api/v1")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.balance_path", "")
	v.SetDefault("api.tls.ca", "")
	v.SetDefault("api.tls.cert", "")
	v.SetDefault("api.tls.key", "")

	v.SetDefault("search.debounce", "500ms")
	v.SetDefault("search.timeout", "10s")

	v.SetDefault("session.cookie_name", "qkart_session")
	v.SetDefault("session.storage", StorageMemory)
	v.SetDefault("session.sql_db", "")
	v.SetDefault("session.view_ttl", "30m")

	v.SetDefault("broker.seed_brokers", []string{})
	v.SetDefault("broker.schema_registry_urls", []string{})
	v.SetDefault("broker.client_id", "qkart-storefront")
	v.SetDefault("broker.topics.client_events", "qkart-client-events")
	v.SetDefault("broker.tls.ca", "")
	v.SetDefault("broker.tls.cert", "")
	v.SetDefault("broker.tls.key", "")
}

// Load reads the config located by the --config flag or QKART_CONFIG_FILE
// and exits the process on failure.
func Load() Config {
	cfg, err := LoadFrom(FilePath())
	if err != nil {
		die(err)
	}
	return cfg
}

// LoadFrom reads the YAML file at path over the defaults. An empty path
// reads defaults and environment only.
func LoadFrom(path string) (Config, error) {
	const op = "config.LoadFrom"

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	var cfg Config
	err := v.UnmarshalExact(&cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error

	if c.API.Endpoint == "" {
		errs = append(errs, errors.New("api.endpoint: required"))
	}

	switch c.Session.Storage {
	case StorageMemory:
	case StorageSQL:
		if c.Session.SQLDB == "" {
			errs = append(errs, errors.New("session.sql_db: required for sql storage"))
		}
	default:
		errs = append(errs, fmt.Errorf(
			"session.storage: %q is not one of %q, %q",
			c.Session.Storage, StorageMemory, StorageSQL,
		))
	}

	if c.EventsEnabled() {
		if len(c.Broker.SchemaRegistryURLs) == 0 {
			errs = append(errs, errors.New("broker.schema_registry_urls: required with seed_brokers"))
		}
		if c.Broker.Topics.ClientEvents == "" {
			errs = append(errs, errors.New("broker.topics.client_events: required with seed_brokers"))
		}
	}

	return errors.Join(errs...)
}

// FilePath returns the config file path. --config wins over
// QKART_CONFIG_FILE. Flags of the calling command are ignored.
func FilePath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	cmdLine.ParseErrorsWhitelist.UnknownFlags = true
	cmdLine.Usage = func() {}
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	if *arg != "" {
		return *arg
	}
	return os.Getenv(configFileEnvName)
}

func die(err error) {
	fmt.Printf("failed to load config: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	CORSOrigins=%q
	ShutdownTimeout=%q

	API:
	Endpoint=%q
	Timeout=%q
	BalancePath=%q
	TLS=%t

	Search:
	Debounce=%q
	Timeout=%q

	Session:
	CookieName=%q
	Storage=%q
	ViewTTL=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	ClientID=%q
	Topics:
		ClientEvents=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.CORSOrigins,
		c.ShutdownTimeout,
		c.API.Endpoint,
		c.API.Timeout,
		c.API.BalancePath,
		c.API.TLS != tlsFiles{},
		c.Search.Debounce,
		c.Search.Timeout,
		c.Session.CookieName,
		c.Session.Storage,
		c.Session.ViewTTL,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.ClientID,
		c.Broker.Topics.ClientEvents,
	)
}
