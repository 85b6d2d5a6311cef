package sealog

import (
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// maxConfigFileSize guards against loading an unreasonable file as config.
const maxConfigFileSize = 1 << 20 // 1MB

// LoadConfig reads and validates a YAML configuration file.
//
// Schema:
//
//	level: info
//	formatter: json
//	queue_capacity: 4096
//	workers: 1
//	filters:
//	  env: production
//	handlers:
//	  - type: console
//	    config: {capacity: 8192}
//	  - type: file
//	    level: warn
//	    config: {path: /var/log/app.log}
//	  - type: network
//	    level: error
//	    config: {address: collector:9000, retries: 3}
//	redaction:
//	  enabled: true
//	metrics:
//	  addr: 127.0.0.1:9600
func LoadConfig(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "stat config file")
	}
	if info.Size() > maxConfigFileSize {
		return nil, errors.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}
	return ParseConfig(content)
}

// ParseConfig decodes YAML bytes into a validated Config.
func ParseConfig(content []byte) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
