package config

import (
	"fmt"
	"io/ioutil"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory.
func Load(path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	configContents, err := ioutil.ReadFile(filepath.Join(path, ConfigurationName))
	if err != nil {
		return nil, err
	}

	out := defaultConfig()
	if err := yaml.UnmarshalStrict(configContents, out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ConfigurationName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigurationName, err)
	}
	out.configFs = afero.NewBasePathFs(afero.NewOsFs(), path)
	return out, nil
}

// Initialize writes the default configuration into dir and loads it.
// An existing configuration is left untouched.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	fs := afero.NewBasePathFs(afero.NewOsFs(), dir)

	exists, err := afero.Exists(fs, ConfigurationName)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.Printf("%s already exists, skipping", filepath.Join(dir, ConfigurationName))
	} else {
		logger.Printf("Writing %s", filepath.Join(dir, ConfigurationName))
		if err := afero.WriteFile(fs, ConfigurationName, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	}

	return Load(dir)
}
