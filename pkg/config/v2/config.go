package config

import (
	"fmt"
	"net"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	defaultExtension = "yaml"
	defaultTagName   = "yaml"
)

const (
	DispatcherHTTP   = "http"
	DispatcherSlack  = "slack"
	DispatcherStatic = "static"
)

type Binder interface {
	Bind(v *viper.Viper) error
}

type Loader interface {
	Load(name, path, envPrefix string, binder Binder) (Config, error)
}

type Config struct {
	Server          Server          `yaml:"server"`
	MetadataService MetadataService `yaml:"metadata_service"`
	BigQuery        BigQuery        `yaml:"big_query"`
	Notifications   Notifications   `yaml:"notifications"`
	Postgres        Postgres        `yaml:"postgres"`
	NestedColumns   NestedColumns   `yaml:"nested_columns"`
	Cache           Cache           `yaml:"cache"`

	LogLevel    string `yaml:"log_level"`
	FrontendURL string `yaml:"frontend_url"`
	Debug       bool   `yaml:"debug"`
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Server, validation.Required),
		validation.Field(&c.MetadataService, validation.Required),
		validation.Field(&c.Notifications, validation.Required),
		validation.Field(&c.Postgres, validation.Required),
		validation.Field(&c.Cache, validation.Required),
		validation.Field(&c.LogLevel, validation.Required, validation.In("trace", "debug", "info", "warn", "error")),
		validation.Field(&c.FrontendURL, validation.Required, is.URL),
	)
}

// MetadataService is the upstream service that owns table metadata.
type MetadataService struct {
	APIURL         string `yaml:"api_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (m MetadataService) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.APIURL, validation.Required, is.URL),
		validation.Field(&m.TimeoutSeconds, validation.Min(0)),
	)
}

func (m MetadataService) Timeout() time.Duration {
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// BigQuery is used to read tables keyed as bigquery://, the endpoint is only
// set when running against an emulator.
type BigQuery struct {
	Endpoint   string `yaml:"endpoint"`
	EnableAuth bool   `yaml:"enable_auth"`
}

type Notifications struct {
	Dispatcher string `yaml:"dispatcher"`
	APIURL     string `yaml:"api_url"`
	RetryMax   int    `yaml:"retry_max"`
	Slack      Slack  `yaml:"slack"`
}

func (n Notifications) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.Dispatcher, validation.Required, validation.In(DispatcherHTTP, DispatcherSlack, DispatcherStatic)),
		validation.Field(&n.APIURL, validation.When(n.Dispatcher == DispatcherHTTP, validation.Required, is.URL)),
		validation.Field(&n.RetryMax, validation.Min(0)),
		validation.Field(&n.Slack, validation.When(n.Dispatcher == DispatcherSlack, validation.By(func(interface{}) error {
			return n.Slack.validate()
		}))),
	)
}

type Slack struct {
	Token   string `yaml:"token"`
	Channel string `yaml:"channel"`
}

func (s Slack) validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Token, validation.Required),
		validation.Field(&s.Channel, validation.Required),
	)
}

type Postgres struct {
	UserName      string                `yaml:"user_name"`
	Password      string                `yaml:"password"`
	Host          string                `yaml:"host"`
	Port          string                `yaml:"port"`
	DatabaseName  string                `yaml:"database_name"`
	SSLMode       string                `yaml:"ssl_mode"`
	Configuration PostgresConfiguration `yaml:"configuration"`
}

func (p Postgres) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.UserName, validation.Required),
		validation.Field(&p.Password, validation.Required),
		validation.Field(&p.Host, validation.Required, is.Host),
		validation.Field(&p.Port, validation.Required, is.Port),
		validation.Field(&p.DatabaseName, validation.Required),
		validation.Field(&p.SSLMode, validation.Required, validation.In("disable", "allow", "prefer", "require")),
	)
}

func (p Postgres) ConnectionString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s?sslmode=%s",
		p.UserName,
		p.Password,
		net.JoinHostPort(p.Host, p.Port),
		p.DatabaseName,
		p.SSLMode,
	)
}

type PostgresConfiguration struct {
	MaxIdleConnections int `yaml:"max_idle_connections"`
	MaxOpenConnections int `yaml:"max_open_connections"`
}

type Server struct {
	Hostname string `yaml:"hostname"`
	Address  string `yaml:"address"`
	Port     string `yaml:"port"`
}

func (s Server) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Address, validation.Required, is.IP),
		validation.Field(&s.Hostname, validation.Required, is.Host),
		validation.Field(&s.Port, validation.Required, is.Port),
	)
}

type NestedColumns struct {
	Enabled            bool `yaml:"enabled"`
	DeriveTypeMetadata bool `yaml:"derive_type_metadata"`
}

type Cache struct {
	Size       int `yaml:"size"`
	TTLSeconds int `yaml:"ttl_seconds"`
}

func (c Cache) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Size, validation.Required, validation.Min(1)),
		validation.Field(&c.TTLSeconds, validation.Required, validation.Min(1)),
	)
}

func (c Cache) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type FileParts struct {
	FileName string
	Path     string
}

func ProcessConfigPath(configFile string) (FileParts, error) {
	absolutePath, err := filepath.Abs(configFile)
	if err != nil {
		return FileParts{}, fmt.Errorf("convert to absolute path: %w", err)
	}

	fileName := filepath.Base(absolutePath)
	extension := filepath.Ext(fileName)

	if strings.ReplaceAll(strings.ToLower(extension), ".", "") != defaultExtension {
		return FileParts{}, fmt.Errorf("config file must have extension %s, got: %s", defaultExtension, extension)
	}

	return FileParts{
		FileName: strings.TrimSuffix(fileName, extension),
		Path:     filepath.Dir(absolutePath),
	}, nil
}

func NewFileSystemLoader() *FileSystemLoader {
	return &FileSystemLoader{}
}

type FileSystemLoader struct{}

func (fs *FileSystemLoader) Load(name, path, envPrefix string, b Binder) (Config, error) {
	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName(name)
	v.SetConfigType(defaultExtension)

	// server.port is read from SERVER_PORT
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if b != nil {
		if err := b.Bind(v); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix(envPrefix)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var config Config

	err := v.Unmarshal(&config, func(cfg *mapstructure.DecoderConfig) {
		cfg.TagName = defaultTagName
	})
	if err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return config, nil
}

type EnvBinder struct {
	binders map[string]string
}

func (e *EnvBinder) Bind(v *viper.Viper) error {
	for envVar, key := range e.binders {
		if err := v.BindEnv(key, envVar); err != nil {
			return fmt.Errorf("bind env var %s to key %s: %w", envVar, key, err)
		}
	}

	return nil
}

func NewEnvBinder(binders map[string]string) *EnvBinder {
	return &EnvBinder{
		binders: binders,
	}
}

func NewDefaultEnvBinder() *EnvBinder {
	return NewEnvBinder(map[string]string{
		"NAIS_DATABASE_NADA_TABLEMETADATA_NADA_TABLEMETADATA_PASSWORD": "postgres.password",

		"SLACK_TOKEN":          "notifications.slack.token",
		"METADATA_SERVICE_URL": "metadata_service.api_url",
	})
}
