package config

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	if _, err := Initialize(tempDir, log.New(ioutil.Discard, "", 0)); err != nil {
		t.Fatal(err)
	}

	// Check that the config is valid
	cfg, err := Load(tempDir)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("OpenEventLog", func(t *testing.T) {
		fd, err := cfg.OpenEventLog()
		assert.Nil(t, err)
		assert.NotNil(t, fd)
		fd.Close()

		_, err = os.Stat(filepath.Join(tempDir, cfg.EventLog))
		assert.Nil(t, err, "event log lives in the config dir")
	})

	t.Run("ReadEventLog", func(t *testing.T) {
		fd, err := cfg.ReadEventLog()
		assert.Nil(t, err)
		fd.Close()
	})

	t.Run("LoadConfigFilePath", func(t *testing.T) {
		_, err := Load(filepath.Join(tempDir, ConfigurationName))
		assert.Nil(t, err)
	})
}

func TestInitialize_keepsExisting(t *testing.T) {
	tempDir := t.TempDir()
	custom := []byte("prompt: \"$ \"\n")
	assert.Nil(t, ioutil.WriteFile(filepath.Join(tempDir, ConfigurationName), custom, 0600))

	cfg, err := Initialize(tempDir, log.New(ioutil.Discard, "", 0))
	assert.Nil(t, err)
	assert.Equal(t, "$ ", cfg.Prompt)
	assert.Equal(t, 10, cfg.HistorySize, "unset fields keep their defaults")
}

func TestLoad_invalid(t *testing.T) {
	tempDir := t.TempDir()
	assert.Nil(t, ioutil.WriteFile(filepath.Join(tempDir, ConfigurationName), []byte("history_size: -1\n"), 0600))

	_, err := Load(tempDir)
	assert.Error(t, err)
}

func TestLoad_unknownField(t *testing.T) {
	tempDir := t.TempDir()
	assert.Nil(t, ioutil.WriteFile(filepath.Join(tempDir, ConfigurationName), []byte("ssh_port: 22\n"), 0600))

	_, err := Load(tempDir)
	assert.Error(t, err)
}
