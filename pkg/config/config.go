// Copyright 2018 The Kura Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kurafs/memfs/pkg/memfs"
	"gopkg.in/yaml.v3"
)

// DefaultRPCPort is the control plane port used when none is configured.
const DefaultRPCPort = 10669

// Config is the top level configuration.
type Config struct {
	Volume   memfs.Geometry `yaml:"volume"`
	Fuse     FuseConfig     `yaml:"fuse"`
	RPC      RPCConfig      `yaml:"rpc"`
	Registry RegistryConfig `yaml:"registry"`
}

// FuseConfig holds the kernel mount options.
type FuseConfig struct {
	// FsName shows up as the source column of mount(8).
	FsName string `yaml:"fs-name"`

	// AllowOther lets users other than the mounting one access the volume.
	// Requires user_allow_other in /etc/fuse.conf.
	AllowOther bool `yaml:"allow-other"`

	// SingleThreaded serves kernel requests one at a time.
	SingleThreaded bool `yaml:"single-threaded"`

	// AttrTimeout is how long the kernel may cache attributes and entries.
	AttrTimeout time.Duration `yaml:"attr-timeout"`

	Debug bool `yaml:"debug"`
}

// RPCConfig configures the volume control plane.
type RPCConfig struct {
	// Port to listen on, on the loopback interface. Zero disables the
	// control plane for mount.
	Port int `yaml:"port"`
}

// RegistryConfig locates the mount registry.
type RegistryConfig struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used absent a config file.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Volume: memfs.DefaultGeometry(),
		Fuse: FuseConfig{
			FsName:      "memfs",
			AttrTimeout: time.Second,
		},
		RPC: RPCConfig{
			Port: DefaultRPCPort,
		},
		Registry: RegistryConfig{
			Path: filepath.Join(homeDir, ".memfs", "mounts.db"),
		},
	}
}

// Load returns the configuration in the file at path, or Default if path
// is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile overlays the YAML file at path onto Default. Unknown keys are
// rejected. ${VAR} references in paths are expanded.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.Registry.Path = os.ExpandEnv(cfg.Registry.Path)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if err := c.Volume.Validate(); err != nil {
		return err
	}
	if c.RPC.Port < 0 || c.RPC.Port > 65535 {
		return fmt.Errorf("rpc port %d out of range", c.RPC.Port)
	}
	if c.Fuse.AttrTimeout < 0 {
		return fmt.Errorf("negative attribute timeout %s", c.Fuse.AttrTimeout)
	}
	if c.Registry.Path == "" {
		return fmt.Errorf("registry path not set")
	}
	return nil
}

// Marshal renders the configuration as YAML, e.g. to seed a config file.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
