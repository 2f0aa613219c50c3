package config

import (
	_ "embed"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const ConfigurationName = "config.yaml"

const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

// Configuration holds the shell's settings.
type Configuration struct {
	configFs afero.Fs

	Prompt              string `json:"prompt"`
	HistorySize         int    `json:"history_size" validate:"gte=1,lte=10000"`
	MaxRecallDepth      int    `json:"max_recall_depth" validate:"gte=1,lte=1024"`
	SearchPath          string `json:"search_path"`
	EventLog            string `json:"event_log"`
	Color               string `json:"color" validate:"oneof=always auto never"`
	BackgroundStdinNull bool   `json:"background_stdin_null"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		c.configFs = afero.NewMemMapFs()
	}
	return c.configFs
}

// ResolveSearchPath returns the directories to search for commands, falling
// back to the given $PATH value.
func (c *Configuration) ResolveSearchPath(envPath string) string {
	if c.SearchPath != "" {
		return c.SearchPath
	}
	return envPath
}

// OpenEventLog opens the event log in an append only state. It returns nil
// if event logging is disabled.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	if c.EventLog == "" {
		return nil, nil
	}
	return c.fs().OpenFile(c.EventLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.EventLog, os.O_RDONLY, 0600)
}

// Default returns the built-in configuration, not backed by any directory.
func Default() *Configuration {
	return defaultConfig()
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
