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

// Package memfs implements an in-memory block file system. A volume is a
// fixed pool of equally sized blocks, a flat directory of files and, per
// file, a chain of index nodes mapping logical blocks to data blocks:
//
//      entry ──head──▶ node ──next──▶ node ──next──▶ ∅
//                      │ refs[0..Fanout)
//                      ▼
//                      data blocks
//
// Logical block L of a file lives in node L/Fanout of its chain, slot
// L%Fanout. Writes grow the chain as they go; truncation zeroes the tail of
// the new last block and releases everything after it.
//
// Nothing is persisted: a volume lives as long as its *Volume.
package memfs
