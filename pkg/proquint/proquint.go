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

// Package proquint renders integers as pronounceable identifiers, e.g.
// 0x7F000001 as "lusab-babad". memfs uses them to name mounted volumes.
//
// Each 16-bit word is spelled as five letters, alternating four-bit
// consonants and two-bit vowels:
//
//      0 1 2 3 4 5 6 7 8 9 A B C D E F
//      b d f g h j k l m n p r s t v z
//
//      0 1 2 3
//      a i o u
//
//      0 1 2 3 4 5 6 7 8 9 A B C D E F
//      +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//      |con    |vo |con    |vo |con    |
//      +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//
// Wider integers join their words, most significant first, with '-'.
package proquint

import (
	"fmt"
	"strings"
)

const (
	consonants = "bdfghjklmnprstvz"
	vowels     = "aiou"
	wordLen    = 5
)

func appendWord(b []byte, w uint16) []byte {
	return append(b,
		consonants[w>>12&0xF],
		vowels[w>>10&0x3],
		consonants[w>>6&0xF],
		vowels[w>>4&0x3],
		consonants[w&0xF],
	)
}

func encode(v uint64, words int) string {
	b := make([]byte, 0, words*(wordLen+1))
	for i := words - 1; i >= 0; i-- {
		if len(b) > 0 {
			b = append(b, '-')
		}
		b = appendWord(b, uint16(v>>(16*uint(i))))
	}
	return string(b)
}

// Encode16 spells out a single word.
func Encode16(v uint16) string { return encode(uint64(v), 1) }

// Encode32 spells out v as two words.
func Encode32(v uint32) string { return encode(uint64(v), 2) }

// Encode64 spells out v as four words.
func Encode64(v uint64) string { return encode(v, 4) }

func decodeWord(s string) (uint16, error) {
	if len(s) != wordLen {
		return 0, fmt.Errorf("proquint: word %q is not %d letters long", s, wordLen)
	}
	var w uint16
	for i := 0; i < wordLen; i++ {
		alphabet, bits := consonants, uint(4)
		if i%2 == 1 {
			alphabet, bits = vowels, 2
		}
		idx := strings.IndexByte(alphabet, s[i])
		if idx < 0 {
			return 0, fmt.Errorf("proquint: unexpected letter %q in %q", s[i], s)
		}
		w = w<<bits | uint16(idx)
	}
	return w, nil
}

func decode(s string, words int) (uint64, error) {
	parts := strings.Split(s, "-")
	if len(parts) != words {
		return 0, fmt.Errorf("proquint: %q has %d words, expected %d", s, len(parts), words)
	}
	var v uint64
	for _, p := range parts {
		w, err := decodeWord(p)
		if err != nil {
			return 0, err
		}
		v = v<<16 | uint64(w)
	}
	return v, nil
}

// Decode16 parses a single word.
func Decode16(s string) (uint16, error) {
	v, err := decode(s, 1)
	return uint16(v), err
}

// Decode32 parses a two word proquint.
func Decode32(s string) (uint32, error) {
	v, err := decode(s, 2)
	return uint32(v), err
}

// Decode64 parses a four word proquint.
func Decode64(s string) (uint64, error) {
	return decode(s, 4)
}
