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

import "math/bits"

// handle is a checked reference to an allocated block. The generation is
// bumped every time a slot is claimed, so a handle kept past a free is
// detected on its next use. The zero handle refers to nothing.
type handle struct {
	id  uint32
	gen uint32
}

var noBlock handle

func (h handle) valid() bool { return h.gen != 0 }

// header is the volume accounting record. It owns block 0.
type header struct {
	fileCount  int
	usedBlocks int
	cursor     int // Where the next free-slot scan starts.
}

// blockStore is the fixed-size array of blocks. Occupancy is tracked in a
// bitmap; the buffers themselves are only materialized for live blocks.
type blockStore struct {
	blockSize int
	count     int

	occupied []uint64
	gens     []uint32
	data     map[uint32][]byte

	hdr header
}

func newBlockStore(g Geometry) *blockStore {
	return &blockStore{
		blockSize: g.BlockSize,
		count:     g.BlockCount,
		occupied:  make([]uint64, (g.BlockCount+63)/64),
		gens:      make([]uint32, g.BlockCount),
		data:      make(map[uint32][]byte),
	}
}

func (s *blockStore) isOccupied(id int) bool {
	return s.occupied[id/64]&(1<<uint(id%64)) != 0
}

func (s *blockStore) freeBlocks() int {
	return s.count - s.hdr.usedBlocks
}

// allocate claims the first free slot at or after the scan cursor, wrapping
// around once, and returns a zero-filled block.
func (s *blockStore) allocate() (handle, error) {
	for i := 0; i < s.count; i++ {
		id := (s.hdr.cursor + i) % s.count
		if s.isOccupied(id) {
			continue
		}
		h := s.claim(id)
		s.hdr.cursor = (id + 1) % s.count
		return h, nil
	}
	return noBlock, ErrOutOfSpace
}

// claim marks the given slot as occupied. Claiming an occupied slot is fatal.
func (s *blockStore) claim(id int) handle {
	if s.isOccupied(id) {
		invariantf("allocating occupied block %d", id)
	}
	s.occupied[id/64] |= 1 << uint(id%64)
	s.gens[id]++
	if s.gens[id] == 0 {
		s.gens[id] = 1
	}
	s.data[uint32(id)] = make([]byte, s.blockSize)
	s.hdr.usedBlocks++
	return handle{id: uint32(id), gen: s.gens[id]}
}

// release returns the block to the free pool, invalidating h.
func (s *blockStore) release(h handle) {
	s.check(h)
	s.occupied[h.id/64] &^= 1 << uint(h.id%64)
	delete(s.data, h.id)
	s.hdr.usedBlocks--
}

// block returns the contents of the block behind h.
func (s *blockStore) block(h handle) []byte {
	s.check(h)
	return s.data[h.id]
}

func (s *blockStore) check(h handle) {
	if !h.valid() || int(h.id) >= s.count {
		invariantf("invalid handle %d/%d", h.id, h.gen)
	}
	if !s.isOccupied(int(h.id)) {
		invariantf("block %d used after free", h.id)
	}
	if s.gens[h.id] != h.gen {
		invariantf("stale handle for block %d: generation %d, current %d", h.id, h.gen, s.gens[h.id])
	}
}

// occupiedCount counts set bits in the occupancy map.
func (s *blockStore) occupiedCount() int {
	n := 0
	for _, w := range s.occupied {
		n += bits.OnesCount64(w)
	}
	return n
}
