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

// Check walks the volume and verifies its accounting: every live block has
// exactly one owner, the occupancy map agrees with the header, and every
// file's attributes agree with its chain. It returns the first
// inconsistency found.
func (v *Volume) Check() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	owners := make(map[uint32]string)
	claim := func(h handle, owner string) error {
		if !h.valid() || int(h.id) >= v.store.count {
			return fmt.Errorf("%s: invalid handle %d/%d", owner, h.id, h.gen)
		}
		if !v.store.isOccupied(int(h.id)) {
			return fmt.Errorf("%s: block %d is free", owner, h.id)
		}
		if v.store.gens[h.id] != h.gen {
			return fmt.Errorf("%s: stale handle for block %d", owner, h.id)
		}
		if prev, ok := owners[h.id]; ok {
			return fmt.Errorf("block %d owned by both %s and %s", h.id, prev, owner)
		}
		owners[h.id] = owner
		return nil
	}

	if err := claim(v.hdr, "volume header"); err != nil {
		return err
	}
	if err := claim(v.dir.sentinel.self, "directory sentinel"); err != nil {
		return err
	}

	files, nodes := 0, 0
	prev := &v.dir.sentinel
	for e := v.dir.sentinel.next; e != &v.dir.sentinel; prev, e = e, e.next {
		files++
		if e.prev != prev {
			return fmt.Errorf("file %q: broken back link", e.name)
		}
		if ie, ok := v.dir.lookup(e.name); !ok || ie != e {
			return fmt.Errorf("file %q: missing from name index", e.name)
		}
		if err := claim(e.self, fmt.Sprintf("file %q", e.name)); err != nil {
			return err
		}
		if want := e.attr.Size / int64(v.geo.BlockSize); e.attr.Blocks != want {
			return fmt.Errorf("file %q: %d blocks recorded, size implies %d", e.name, e.attr.Blocks, want)
		}

		limit := v.geo.blocksFor(e.attr.Size)
		var err error
		for h := e.head; h.valid() && err == nil; {
			if err = claim(h, fmt.Sprintf("index node of %q", e.name)); err != nil {
				break
			}
			n, ok := v.chains.nodes[h.id]
			if !ok {
				return fmt.Errorf("file %q: block %d is not an index node", e.name, h.id)
			}
			nodes++
			h = n.next
		}
		if err != nil {
			return err
		}
		v.chains.visit(e.head, func(nh handle, n *indexNode, first int64) {
			if err == nil && nh != e.head && first >= limit {
				err = fmt.Errorf("file %q: index node %d past end of file", e.name, nh.id)
			}
			for i, ref := range n.refs {
				if err != nil || !ref.valid() {
					continue
				}
				lblock := first + int64(i)
				if lblock >= limit {
					err = fmt.Errorf("file %q: data block %d past end of file", e.name, lblock)
					continue
				}
				err = claim(ref, fmt.Sprintf("block %d of %q", lblock, e.name))
			}
		})
		if err != nil {
			return err
		}
	}

	switch {
	case files != v.store.hdr.fileCount:
		return fmt.Errorf("header counts %d files, directory holds %d", v.store.hdr.fileCount, files)
	case files != v.dir.len():
		return fmt.Errorf("name index holds %d files, directory holds %d", v.dir.len(), files)
	case nodes != len(v.chains.nodes):
		return fmt.Errorf("%d index nodes allocated, %d reachable", len(v.chains.nodes), nodes)
	case len(owners) != v.store.hdr.usedBlocks:
		return fmt.Errorf("header counts %d used blocks, %d are owned", v.store.hdr.usedBlocks, len(owners))
	case v.store.occupiedCount() != v.store.hdr.usedBlocks:
		return fmt.Errorf("header counts %d used blocks, %d are occupied", v.store.hdr.usedBlocks, v.store.occupiedCount())
	case len(v.store.data) != v.store.hdr.usedBlocks:
		return fmt.Errorf("header counts %d used blocks, %d are materialized", v.store.hdr.usedBlocks, len(v.store.data))
	}
	return nil
}
