package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  Server  `yaml:"server" json:"server"`
	Storage Storage `yaml:"storage" json:"storage"`
	Static  Static  `yaml:"static" json:"static"`
}

type Server struct {
	Addr string `yaml:"addr" json:"addr"`
}

type Storage struct {
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

type Static struct {
	Dir     string `yaml:"dir" json:"dir"`
	UseDisk bool   `yaml:"use_disk" json:"use_disk"`
}

func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8787"
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "data"
	}
	if c.Static.Dir == "" {
		c.Static.Dir = "static"
	}
}

func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// Load reads the YAML config at path. A missing file yields defaults so the
// server runs with zero setup.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	return &c, nil
}
