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

package main

import (
	"os"

	"github.com/kurafs/memfs/doc"
	"github.com/kurafs/memfs/pkg/cli"

	fuseserver "github.com/kurafs/memfs/cmd/fuse-server"
	volumeclient "github.com/kurafs/memfs/cmd/volume-client"
	volumeserver "github.com/kurafs/memfs/cmd/volume-server"
)

func main() {
	// We aggregate all the top-level commands (i.e. 'memfs <command> ...') as
	// needed.
	var commands cli.Commands

	// Serving a volume, either mounted through the kernel or headless.
	commands = append(commands, fuseserver.MountCmd)
	commands = append(commands, volumeserver.VolumeServerCmd)

	// Client commands reaching a served volume over its control plane.
	commands = append(commands, volumeclient.Commands...)

	// Documentation pseudo-commands.
	commands = append(commands, doc.ArchitectureCmd)
	commands = append(commands, doc.VolumeLayoutCmd)

	abstract := "Memfs is an in-memory block file system, mountable through FUSE."
	if err := cli.Process(abstract, commands); err != nil {
		os.Exit(1)
	}
}
