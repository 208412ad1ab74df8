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

// Chunker iterates over consecutive size-bounded slices of a buffer. It
// starts positioned before the first chunk:
//
//      c := streaming.NewChunker(payload, streaming.ChunkSize)
//      for c.Next() {
//              write(c.Offset(), c.Value())
//      }
type Chunker struct {
	source []byte
	size   int
	off    int // Start of the current chunk.
	end    int // End of the current chunk; off == end before the first Next.
}

// NewChunker returns a Chunker over source. A non-positive size defaults to
// ChunkSize.
func NewChunker(source []byte, size int) *Chunker {
	if size <= 0 {
		size = ChunkSize
	}
	return &Chunker{source: source, size: size}
}

// Next advances to the following chunk, reporting whether there is one.
func (c *Chunker) Next() bool {
	if c.end >= len(c.source) {
		return false
	}
	c.off = c.end
	c.end += c.size
	if c.end > len(c.source) {
		c.end = len(c.source)
	}
	return true
}

// Value returns the current chunk.
func (c *Chunker) Value() []byte {
	return c.source[c.off:c.end]
}

// Offset returns the position of the current chunk within the source.
func (c *Chunker) Offset() int64 {
	return int64(c.off)
}
