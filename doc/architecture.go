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

package doc

import "github.com/kurafs/memfs/pkg/cli"

var ArchitectureCmd = &cli.Command{
	UsageLine: "architecture",
	Short:     "memfs system architecture overview",
	Long: `
A memfs volume lives entirely in the memory of the process serving it; it
disappears when that process exits.

    +-------------+        +-----------------+        +---------------+
    |   kernel    | <----> |   FUSE bridge   | <----> |               |
    |  (VFS/FUSE) |        |  (pkg/fusefs)   |        |    volume     |
    +-------------+        +-----------------+        |  (pkg/memfs)  |
                                                      |               |
    +-------------+        +-----------------+        |               |
    | memfs ls,   | <----> |  control plane  | <----> |               |
    | cat, put .. |  gRPC  | (volume-server) |        +---------------+
    +-------------+        +-----------------+

'memfs mount' serves a volume to the kernel and, unless disabled, to the
control plane on a loopback port. 'memfs volume-server' serves a volume
to the control plane alone. Mounts are recorded in the mount registry
(~/.memfs/mounts.db) for 'memfs mounts' and 'memfs mount -unmount'.

The control plane multiplexes gRPC and gRPC-Web on a single port. Reads
and writes travel in 64 KiB pieces.

The volume is a flat directory of regular files. Every operation on it is
serialized by a single lock; there is no caching layer between the kernel
and the block store, and pages are never cached (files are opened with
direct I/O). See 'memfs help volume-layout' for how files map onto blocks.
`,
}
