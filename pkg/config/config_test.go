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
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kurafs/memfs/pkg/memfs"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "memfs.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Volume != memfs.DefaultGeometry() {
		t.Errorf("expected default geometry, got %+v", cfg.Volume)
	}
	if cfg.RPC.Port != DefaultRPCPort {
		t.Errorf("expected port %d, got %d", DefaultRPCPort, cfg.RPC.Port)
	}
	if !strings.HasSuffix(cfg.Registry.Path, filepath.Join(".memfs", "mounts.db")) {
		t.Errorf("unexpected registry path %q", cfg.Registry.Path)
	}
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	os.Setenv("MEMFS_TEST_DIR", "/var/tmp/memfs")
	defer os.Unsetenv("MEMFS_TEST_DIR")

	path := writeConfig(t, `
volume:
  block-size: 512
  block-count: 2048
fuse:
  allow-other: true
  attr-timeout: 250ms
registry:
  path: ${MEMFS_TEST_DIR}/mounts.db
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	expected := memfs.Geometry{BlockSize: 512, BlockCount: 2048, Fanout: memfs.DefaultFanout}
	if cfg.Volume != expected {
		t.Errorf("expected geometry %+v, got %+v", expected, cfg.Volume)
	}
	if !cfg.Fuse.AllowOther || cfg.Fuse.AttrTimeout != 250*time.Millisecond {
		t.Errorf("unexpected fuse config: %+v", cfg.Fuse)
	}
	if cfg.Fuse.FsName != "memfs" || cfg.RPC.Port != DefaultRPCPort {
		t.Errorf("expected unset keys to keep their defaults, got %+v", cfg)
	}
	if cfg.Registry.Path != "/var/tmp/memfs/mounts.db" {
		t.Errorf("expected expanded registry path, got %q", cfg.Registry.Path)
	}
}

func TestLoadFileRejects(t *testing.T) {
	testCases := []struct {
		name, content string
	}{
		{"unknown key", "volume:\n  blocksize: 512\n"},
		{"zero block size", "volume:\n  block-size: 0\n"},
		{"zero fanout", "volume:\n  fanout: 0\n"},
		{"bad port", "rpc:\n  port: 70000\n"},
		{"malformed", "volume: [\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadFile(writeConfig(t, tc.content)); err == nil {
				t.Errorf("expected %q to be rejected", tc.content)
			}
		})
	}

	cfg, err := LoadFile(writeConfig(t, "volume:\n  block-count: 2\n"))
	if !errors.Is(err, memfs.ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v (%+v)", err, cfg)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); !os.IsNotExist(err) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Volume.Fanout = 7
	cfg.RPC.Port = 0

	b, err := cfg.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadFile(writeConfig(t, string(b)))
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}
