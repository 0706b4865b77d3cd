package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	conf := Config{Server: ServerConfig{URL: "http://localhost:8001"}}
	assert.NoError(t, conf.Validate())

	conf = Config{}
	assert.Error(t, conf.Validate())

	conf = Config{Server: ServerConfig{URL: "localhost:8001"}}
	assert.Error(t, conf.Validate())

	conf = Config{Server: ServerConfig{URL: "http://%zz"}}
	assert.Error(t, conf.Validate())
}
