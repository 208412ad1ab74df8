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

import "github.com/kurafs/memfs/pkg/log"

// indexNode maps Fanout consecutive logical blocks of a file to data blocks.
// Nodes form a singly linked chain through next.
type indexNode struct {
	refs []handle
	next handle
}

// arena holds every index node of the volume, keyed by the id of the block
// that backs it.
type arena struct {
	logger *log.Logger
	store  *blockStore
	fanout int
	nodes  map[uint32]*indexNode
}

func newArena(logger *log.Logger, store *blockStore, fanout int) *arena {
	return &arena{
		logger: logger,
		store:  store,
		fanout: fanout,
		nodes:  make(map[uint32]*indexNode),
	}
}

// newNode allocates an index node with every slot empty.
func (a *arena) newNode() (handle, error) {
	h, err := a.store.allocate()
	if err != nil {
		return noBlock, err
	}
	a.nodes[h.id] = &indexNode{refs: make([]handle, a.fanout)}
	return h, nil
}

func (a *arena) node(h handle) *indexNode {
	a.store.check(h)
	n, ok := a.nodes[h.id]
	if !ok {
		invariantf("block %d is not an index node", h.id)
	}
	return n
}

// resolve walks from head to the node covering logical block lblock and
// returns it along with the slot within it. With grow set, missing nodes
// are allocated on the way. Without it, a missing node yields noBlock: the
// offset lies past anything written.
func (a *arena) resolve(head handle, lblock int64, grow bool) (handle, int, error) {
	h := head
	slot := int(lblock % int64(a.fanout))
	for hops := lblock / int64(a.fanout); hops > 0; hops-- {
		n := a.node(h)
		if !n.next.valid() {
			if !grow {
				return noBlock, slot, nil
			}
			next, err := a.newNode()
			if err != nil {
				return noBlock, 0, err
			}
			a.logger.Debugf("grew chain at block %d with index node %d", h.id, next.id)
			n.next = next
		}
		h = n.next
	}
	return h, slot, nil
}

// ensureBlock returns the data block in the given slot, allocating one if
// the slot is empty.
func (a *arena) ensureBlock(nh handle, slot int) (handle, error) {
	n := a.node(nh)
	if n.refs[slot].valid() {
		return n.refs[slot], nil
	}
	b, err := a.store.allocate()
	if err != nil {
		return noBlock, err
	}
	n.refs[slot] = b
	return b, nil
}

// releaseTail frees the data blocks in slots [from, Fanout) of the given
// node and every node after it, children first, and detaches them. The
// node itself is kept.
func (a *arena) releaseTail(nh handle, from int) {
	n := a.node(nh)
	var tail []handle
	for h := n.next; h.valid(); h = a.node(h).next {
		tail = append(tail, h)
	}
	for i := len(tail) - 1; i >= 0; i-- {
		a.releaseNode(tail[i], 0)
	}
	n.next = noBlock
	a.releaseSlots(n, from)
}

// releaseChain frees the whole chain starting at head, head included.
func (a *arena) releaseChain(head handle) {
	a.releaseTail(head, 0)
	a.releaseNode(head, 0)
}

func (a *arena) releaseNode(h handle, from int) {
	a.releaseSlots(a.node(h), from)
	delete(a.nodes, h.id)
	a.store.release(h)
}

func (a *arena) releaseSlots(n *indexNode, from int) {
	for i := from; i < len(n.refs); i++ {
		if n.refs[i].valid() {
			a.store.release(n.refs[i])
			n.refs[i] = noBlock
		}
	}
}

// truncate keeps the first keep logical blocks of the chain and releases
// the rest, along with any index node past the one holding the last kept
// block. The head node is always kept.
func (a *arena) truncate(head handle, keep int64) {
	ni, slot := keep/int64(a.fanout), int(keep%int64(a.fanout))
	if slot == 0 && ni > 0 {
		// The last kept block fills its node; drop everything after it.
		last, _, _ := a.resolve(head, (ni-1)*int64(a.fanout), false)
		if last.valid() {
			a.releaseTail(last, a.fanout)
		}
		return
	}
	nh, _, _ := a.resolve(head, keep, false)
	if nh.valid() {
		a.releaseTail(nh, slot)
	}
}

// length returns the number of index nodes in the chain.
func (a *arena) length(head handle) int64 {
	var n int64
	for h := head; h.valid(); h = a.node(h).next {
		n++
	}
	return n
}

// visit calls fn for every node of the chain in order, along with the
// logical block number of its first slot.
func (a *arena) visit(head handle, fn func(nh handle, n *indexNode, first int64)) {
	var first int64
	for h := head; h.valid(); {
		n := a.node(h)
		fn(h, n, first)
		first += int64(a.fanout)
		h = n.next
	}
}
