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

// write copies p into the file at off, growing the chain as needed. The
// size attribute is updated once the first block is in place; a later
// allocation failure returns the bytes copied so far with ErrOutOfSpace and
// leaves the size as is.
func (v *Volume) write(e *entry, p []byte, off int64) (int, error) {
	n := len(p)
	if n == 0 {
		return 0, nil
	}
	bs := int64(v.geo.BlockSize)
	if end := off + int64(n); end > v.geo.MaxFileSize() || end < off {
		return 0, ErrFileTooLarge
	}

	// Admission is conservative: one block per BlockSize of payload plus an
	// index node, plus the nodes needed to reach the node holding off.
	need := v.geo.blocksFor(int64(n)) + 1
	if hops := off/bs/int64(v.geo.Fanout) + 1 - v.chains.length(e.head); hops > 0 {
		need += hops
	}
	if free := int64(v.store.freeBlocks()); need > free {
		v.logger.Warnf("rejecting %d byte write to %q: need %d blocks, %d free", n, e.name, need, free)
		return 0, ErrOutOfSpace
	}

	nh, slot, err := v.chains.resolve(e.head, off/bs, true)
	if err != nil {
		v.chains.truncate(e.head, v.geo.blocksFor(e.attr.Size))
		return 0, err
	}
	b, err := v.chains.ensureBlock(nh, slot)
	if err != nil {
		v.chains.truncate(e.head, v.geo.blocksFor(e.attr.Size))
		return 0, err
	}

	if end := off + int64(n); end > e.attr.Size {
		e.attr.Size = end
		e.attr.Blocks = end / bs
	}
	now := v.now()
	e.attr.Mtime, e.attr.Ctime = now, now

	copied := copy(v.store.block(b)[off%bs:], p)
	for copied < n {
		slot++
		if slot == v.geo.Fanout {
			node := v.chains.node(nh)
			if !node.next.valid() {
				next, err := v.chains.newNode()
				if err != nil {
					return copied, err
				}
				node.next = next
			}
			nh, slot = node.next, 0
		}
		b, err := v.chains.ensureBlock(nh, slot)
		if err != nil {
			return copied, err
		}
		copied += copy(v.store.block(b), p[copied:])
	}
	return copied, nil
}

// read fills p from the file at off, stopping at the end of the file.
// Unwritten ranges read as zeros.
func (v *Volume) read(e *entry, p []byte, off int64) int {
	if off >= e.attr.Size {
		return 0
	}
	n := len(p)
	if rem := e.attr.Size - off; int64(n) > rem {
		n = int(rem)
	}

	bs := v.geo.BlockSize
	nh, slot, _ := v.chains.resolve(e.head, off/int64(bs), false)
	r := int(off % int64(bs))
	for done := 0; done < n; {
		chunk := bs - r
		if chunk > n-done {
			chunk = n - done
		}

		dst := p[done : done+chunk]
		if b := v.slot(nh, slot); b.valid() {
			copy(dst, v.store.block(b)[r:])
		} else {
			for i := range dst {
				dst[i] = 0
			}
		}

		done += chunk
		r = 0
		if slot++; slot == v.geo.Fanout {
			slot = 0
			if nh.valid() {
				nh = v.chains.node(nh).next
			}
		}
	}
	return n
}

// slot returns the data block referenced by the given slot, if any.
func (v *Volume) slot(nh handle, slot int) handle {
	if !nh.valid() {
		return noBlock
	}
	return v.chains.node(nh).refs[slot]
}

// truncate sets the file size. Shrinking zeroes the tail of the block
// holding the new end of file. Either way every block and index node past
// the new end is released; growing allocates nothing, the gap reads as
// zeros.
func (v *Volume) truncate(e *entry, size int64) error {
	if size > v.geo.MaxFileSize() {
		return ErrFileTooLarge
	}
	bs := int64(v.geo.BlockSize)
	old := e.attr.Size
	e.attr.Size = size
	e.attr.Blocks = size / bs
	now := v.now()
	e.attr.Mtime, e.attr.Ctime = now, now

	keep := v.geo.blocksFor(size)
	if r := size % bs; r != 0 && size < old {
		nh, slot, _ := v.chains.resolve(e.head, keep-1, false)
		if b := v.slot(nh, slot); b.valid() {
			tail := v.store.block(b)[r:]
			for i := range tail {
				tail[i] = 0
			}
		}
	}
	before := v.store.hdr.usedBlocks
	v.chains.truncate(e.head, keep)
	v.logger.Debugf("truncated %q to %d bytes, released %d blocks", e.name, size, before-v.store.hdr.usedBlocks)
	return nil
}
