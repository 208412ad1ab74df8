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

import "testing"

func expectInvariantViolation(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if _, ok := r.(InvariantViolation); !ok {
			t.Errorf("expected an InvariantViolation panic, got %v", r)
		}
	}()
	fn()
}

func TestAllocateScansFromCursor(t *testing.T) {
	s := newBlockStore(Geometry{BlockSize: 8, BlockCount: 4, Fanout: 1})

	var hs []handle
	for i := 0; i < 4; i++ {
		h, err := s.allocate()
		if err != nil {
			t.Fatal(err)
		}
		if int(h.id) != i {
			t.Errorf("expected block %d, got %d", i, h.id)
		}
		hs = append(hs, h)
	}
	if _, err := s.allocate(); err != ErrOutOfSpace {
		t.Fatalf("expected ErrOutOfSpace, got %v", err)
	}

	// The cursor wrapped to 0; freeing 1 and 2 hands out 1 first.
	s.release(hs[2])
	s.release(hs[1])
	h, err := s.allocate()
	if err != nil {
		t.Fatal(err)
	}
	if h.id != 1 {
		t.Errorf("expected block 1, got %d", h.id)
	}
	if h.gen != 2 {
		t.Errorf("expected second generation of block 1, got %d", h.gen)
	}
	if s.hdr.cursor != 2 {
		t.Errorf("expected cursor at 2, got %d", s.hdr.cursor)
	}
	if s.hdr.usedBlocks != 3 || s.occupiedCount() != 3 {
		t.Errorf("expected 3 used blocks, header says %d, bitmap %d", s.hdr.usedBlocks, s.occupiedCount())
	}
}

func TestAllocateZeroFills(t *testing.T) {
	s := newBlockStore(Geometry{BlockSize: 8, BlockCount: 1, Fanout: 1})
	h, _ := s.allocate()
	copy(s.block(h), "dirty!!!")
	s.release(h)

	h, _ = s.allocate()
	for _, b := range s.block(h) {
		if b != 0 {
			t.Fatalf("expected a zero-filled block, got %q", s.block(h))
		}
	}
}

func TestInvariantViolations(t *testing.T) {
	s := newBlockStore(Geometry{BlockSize: 8, BlockCount: 4, Fanout: 1})
	h, _ := s.allocate()

	expectInvariantViolation(t, func() { s.claim(int(h.id)) })

	s.release(h)
	expectInvariantViolation(t, func() { s.release(h) })
	expectInvariantViolation(t, func() { s.block(h) })

	// A reused slot does not honor handles from a previous generation.
	s.hdr.cursor = int(h.id)
	fresh, _ := s.allocate()
	if fresh.id != h.id {
		t.Fatalf("expected slot %d to be reused, got %d", h.id, fresh.id)
	}
	expectInvariantViolation(t, func() { s.block(h) })
	expectInvariantViolation(t, func() { s.block(noBlock) })
}
