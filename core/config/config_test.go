package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := defaultConfig()
	assert.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "tosh$ ", cfg.Prompt)
	assert.Equal(t, 10, cfg.HistorySize)
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(*Configuration)
		wantErr string
	}{
		"default":           {mutate: func(*Configuration) {}},
		"zero-history":      {mutate: func(c *Configuration) { c.HistorySize = 0 }, wantErr: "history_size"},
		"huge-recall-depth": {mutate: func(c *Configuration) { c.MaxRecallDepth = 1 << 20 }, wantErr: "max_recall_depth"},
		"bad-color":         {mutate: func(c *Configuration) { c.Color = "sometimes" }, wantErr: "color"},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestResolveSearchPath(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, "/bin:/usr/bin", cfg.ResolveSearchPath("/bin:/usr/bin"))

	cfg.SearchPath = "/opt/bin"
	assert.Equal(t, "/opt/bin", cfg.ResolveSearchPath("/bin:/usr/bin"))
}

func TestOpenEventLog_disabled(t *testing.T) {
	cfg := defaultConfig()
	cfg.EventLog = ""

	fd, err := cfg.OpenEventLog()
	assert.NoError(t, err)
	assert.Nil(t, fd)
}
