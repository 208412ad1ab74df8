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

package streaming

import (
	"bytes"
	"testing"
)

func TestChunker(t *testing.T) {
	parts := 16
	extra := []byte("efghijk")
	chunk := bytes.Repeat([]byte("abcd"), ChunkSize/4)
	source := append(bytes.Repeat(chunk, parts), extra...)

	chunker := NewChunker(source, 0)
	for i := 0; i < parts; i++ {
		if !chunker.Next() {
			t.Fatalf("expected chunk %d", i)
		}
		if !bytes.Equal(chunker.Value(), chunk) {
			t.Errorf("chunk %d: unexpected contents", i)
		}
		if off := chunker.Offset(); off != int64(i*ChunkSize) {
			t.Errorf("chunk %d: expected offset %d, got %d", i, i*ChunkSize, off)
		}
	}
	if !chunker.Next() {
		t.Fatal("trailing chunk was not found")
	}
	if last := chunker.Value(); !bytes.Equal(last, extra) {
		t.Errorf("expected trailing chunk %s, got %s", extra, last)
	}
	if chunker.Next() {
		t.Error("unexpected chunk past the end")
	}
}

func TestChunkerEmpty(t *testing.T) {
	if NewChunker(nil, 8).Next() {
		t.Error("expected no chunks for an empty source")
	}
}

func TestChunkerExactMultiple(t *testing.T) {
	c := NewChunker([]byte("abcdefgh"), 4)
	var got []string
	for c.Next() {
		got = append(got, string(c.Value()))
	}
	if len(got) != 2 || got[0] != "abcd" || got[1] != "efgh" {
		t.Errorf("expected [abcd efgh], got %v", got)
	}
}
