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

import "github.com/google/btree"

// entry is a file in the directory. It owns the block self and, through
// head, its whole block chain.
type entry struct {
	name string
	attr Attr
	self handle
	head handle

	prev, next *entry
}

// Less orders entries by name within the lookup index.
func (e *entry) Less(than btree.Item) bool {
	return e.name < than.(*entry).name
}

// directory is the flat list of files, most recently created first. The
// list is circular through a sentinel that owns block 1. A B-tree over the
// names serves lookups; listing follows the list.
type directory struct {
	sentinel entry
	index    *btree.BTree
}

func newDirectory(sentinel handle) *directory {
	d := &directory{index: btree.New(8)}
	d.sentinel.self = sentinel
	d.sentinel.prev, d.sentinel.next = &d.sentinel, &d.sentinel
	return d
}

func (d *directory) lookup(name string) (*entry, bool) {
	item := d.index.Get(&entry{name: name})
	if item == nil {
		return nil, false
	}
	return item.(*entry), true
}

// insert links e at the head of the list.
func (d *directory) insert(e *entry) {
	e.prev, e.next = &d.sentinel, d.sentinel.next
	d.sentinel.next.prev = e
	d.sentinel.next = e
	d.index.ReplaceOrInsert(e)
}

// remove unlinks e from both neighbours and the index.
func (d *directory) remove(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev, e.next = nil, nil
	d.index.Delete(e)
}

// each calls fn for every entry in list order.
func (d *directory) each(fn func(e *entry)) {
	for e := d.sentinel.next; e != &d.sentinel; e = e.next {
		fn(e)
	}
}

func (d *directory) len() int {
	return d.index.Len()
}
