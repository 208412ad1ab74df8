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

import "golang.org/x/crypto/blake2b"

// Digest returns the BLAKE2b-256 sum of the file's content. Holes hash as
// zeros, the same as they read.
func (v *Volume) Digest(path string) ([]byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	e, err := v.file(path)
	if err != nil {
		return nil, err
	}
	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, v.geo.BlockSize)
	for off := int64(0); off < e.attr.Size; {
		n := v.read(e, buf, off)
		h.Write(buf[:n])
		off += int64(n)
	}
	return h.Sum(nil), nil
}
