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

// Package config holds the settings shared by the memfs commands: volume
// geometry, FUSE mount options, the control plane listener and the mount
// registry location. Settings come from Default, optionally overlaid with a
// YAML file; command line flags are applied on top by the commands
// themselves.
//
// An example file:
//
//	volume:
//	  block-size: 4096
//	  block-count: 1048576
//	  fanout: 100
//	fuse:
//	  fs-name: memfs
//	  allow-other: false
//	  attr-timeout: 1s
//	rpc:
//	  port: 10669
//	registry:
//	  path: ${HOME}/.memfs/mounts.db
package config
