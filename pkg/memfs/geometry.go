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

package memfs

import "fmt"

const (
	// DefaultBlockSize is the unit of allocation, in bytes.
	DefaultBlockSize = 4096
	// DefaultBlockCount gives a nominal capacity of 4 GiB.
	DefaultBlockCount = 1 << 20
	// DefaultFanout is the number of block references per index node.
	DefaultFanout = 100

	// MaxNameLen is the longest file name accepted, in bytes.
	MaxNameLen = 254

	// Blocks claimed at mount: the volume header and the directory sentinel.
	reservedBlocks = 2
)

// Geometry fixes the shape of a volume.
type Geometry struct {
	BlockSize  int `yaml:"block-size"`
	BlockCount int `yaml:"block-count"`
	Fanout     int `yaml:"fanout"`
}

// DefaultGeometry returns 4 KiB blocks, 2^20 of them, 100 references per
// index node.
func DefaultGeometry() Geometry {
	return Geometry{
		BlockSize:  DefaultBlockSize,
		BlockCount: DefaultBlockCount,
		Fanout:     DefaultFanout,
	}
}

// Validate rejects geometries the engine cannot operate on. A volume needs
// room for its reserved blocks plus at least one file (entry and index
// node).
func (g Geometry) Validate() error {
	switch {
	case g.BlockSize <= 0 || g.BlockSize > 1<<20:
		return fmt.Errorf("%w: block size %d not in (0, 1MiB]", ErrInvalidGeometry, g.BlockSize)
	case g.BlockCount < reservedBlocks+2 || g.BlockCount > 1<<24:
		return fmt.Errorf("%w: block count %d not in [%d, 2^24]", ErrInvalidGeometry, g.BlockCount, reservedBlocks+2)
	case g.Fanout <= 0:
		return fmt.Errorf("%w: fanout %d must be positive", ErrInvalidGeometry, g.Fanout)
	}
	return nil
}

// MaxFileSize is the largest size a file can be written or truncated to.
func (g Geometry) MaxFileSize() int64 {
	return int64(g.BlockSize) * int64(g.BlockCount)
}

// blocksFor returns the number of blocks needed to hold n bytes.
func (g Geometry) blocksFor(n int64) int64 {
	bs := int64(g.BlockSize)
	return (n + bs - 1) / bs
}
