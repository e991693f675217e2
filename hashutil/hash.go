// SPDX-License-Identifier: Unlicense OR MIT

// Package hashutil provides the deterministic FNV-1a based mixing primitive
// used by pane state hashes, replay trace checksums, and widget layout keys.
// Strings and byte slices are length-prefixed and integers are written at a
// fixed little-endian width, so field boundaries are part of the digest:
// ("ab","c") and ("a","bc") hash differently. The digest depends only on the
// values written, so it is stable across platforms.
package hashutil

import "hash/fnv"

// Digest accumulates a 64-bit FNV-1a hash over a sequence of fields.
type Digest struct {
	h uint64
}

// New returns a Digest seeded with the FNV-1a offset basis.
func New() *Digest {
	d := &Digest{}
	h := fnv.New64a()
	d.h = h.Sum64()
	return d
}

const fnvPrime = 1099511628211

func (d *Digest) mix(b byte) {
	d.h ^= uint64(b)
	d.h *= fnvPrime
}

// WriteUint64 mixes in a little-endian uint64.
func (d *Digest) WriteUint64(v uint64) *Digest {
	for i := 0; i < 8; i++ {
		d.mix(byte(v >> (8 * i)))
	}
	return d
}

// WriteUint32 mixes in a little-endian uint32.
func (d *Digest) WriteUint32(v uint32) *Digest {
	for i := 0; i < 4; i++ {
		d.mix(byte(v >> (8 * i)))
	}
	return d
}

// WriteUint16 mixes in a little-endian uint16.
func (d *Digest) WriteUint16(v uint16) *Digest {
	d.mix(byte(v))
	d.mix(byte(v >> 8))
	return d
}

// WriteByte mixes in a single byte.
func (d *Digest) WriteByte(b byte) *Digest {
	d.mix(b)
	return d
}

// WriteBool mixes in a boolean as a single byte.
func (d *Digest) WriteBool(b bool) *Digest {
	if b {
		return d.WriteByte(1)
	}
	return d.WriteByte(0)
}

// WriteString mixes in a length-prefixed string so that ("ab","c") and
// ("a","bc") never collide.
func (d *Digest) WriteString(s string) *Digest {
	d.WriteUint32(uint32(len(s)))
	for i := 0; i < len(s); i++ {
		d.mix(s[i])
	}
	return d
}

// WriteBytes mixes in a length-prefixed byte slice.
func (d *Digest) WriteBytes(b []byte) *Digest {
	d.WriteUint32(uint32(len(b)))
	for _, c := range b {
		d.mix(c)
	}
	return d
}

// Sum64 returns the accumulated digest.
func (d *Digest) Sum64() uint64 { return d.h }

// Sum64String is a convenience for a single string input.
func Sum64String(s string) uint64 {
	return New().WriteString(s).Sum64()
}
