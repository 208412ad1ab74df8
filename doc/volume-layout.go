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

var VolumeLayoutCmd = &cli.Command{
	UsageLine: "volume-layout",
	Short:     "how files map onto volume blocks",
	Long: `
A volume is a fixed number of equally sized blocks (4 KiB and 2^20 of them
by default; see the 'volume' section of the config file). A bitmap tracks
which blocks are in use. Allocation scans forward from a cursor left at
the last allocation, wrapping around at the end of the volume, and hands
out zero-filled blocks.

Block 0 holds the volume header, block 1 the directory. Each file costs
one entry block plus the blocks of its index chain and its data:

    entry --> index node --> index node --> ...
                |  |  |        |  |
               data blocks    data blocks

An index node references up to 'fanout' data blocks (100 by default) and
links to the next node. A file of n data blocks therefore occupies
1 + ceil(n/fanout) + n blocks, with a minimum of one index node.

A block is referenced by a handle, its block number plus a generation
bumped on every allocation, so a handle outliving its block is detected.
Inode numbers reported to the kernel are entry block numbers; the
generation disambiguates reuse.

A write is refused with ENOSPC up front when its payload, in blocks, plus
one exceeds the free blocks. A write admitted this way may still run out
of blocks midway, when it spans several new index nodes; it then reports
the bytes it copied. The file still takes the size of the whole write; the
uncopied remainder reads as zeros. Truncation frees the
data blocks past the new end, along with index nodes left empty. Unwritten
ranges read back as zeros.

'memfs check' verifies that every block is owned exactly once and that the
counters in the volume header agree with the bitmap.
`,
}
