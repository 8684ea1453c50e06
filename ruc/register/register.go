// Package register provides the 512-bit register algebra the round function
// composes: per-byte GF(2^8) scalar multiplication, bitwise rotation with
// carry across byte boundaries, and XOR combination. Registers are value
// types; every operation returns a new register and never mutates in place.
package register

import (
	"encoding/binary"

	"github.com/randomuniverse/RUC/ruc/gf"
)

// Size is the register width in bytes (512 bits).
const Size = 64

// Register is a fixed 64-byte cipher register. Bit ordering follows byte
// order with bit 7 as the high bit of each byte.
type Register [Size]byte

// FromSlice copies up to Size bytes of b into a fresh register. Short
// input leaves the remaining bytes zero.
func FromSlice(b []byte) Register {
	var r Register
	copy(r[:], b)
	return r
}

// MulScalar multiplies every byte of the register by m in GF(2^8).
func (r Register) MulScalar(m byte) Register {
	var out Register
	for i := 0; i < Size; i++ {
		out[i] = gf.Mul(r[i], m)
	}
	return out
}

// RotateLeft rotates the 512-bit value left by n bits. The shift decomposes
// into a whole-byte shift plus a residual bit shift; the carry bits come
// from the adjacent byte, wrapping around the register end.
func (r Register) RotateLeft(n int) Register {
	var out Register
	byteShift := (n / 8) % Size
	bitShift := uint(n % 8)

	for i := 0; i < Size; i++ {
		src := (i + byteShift) % Size
		next := (i + byteShift + 1) % Size

		low := r[src] << bitShift
		var high byte
		if bitShift > 0 {
			high = r[next] >> (8 - bitShift)
		}
		out[i] = low | high
	}
	return out
}

// XOR combines two registers byte-wise.
func XOR(a, b Register) Register {
	var out Register
	for i := 0; i < Size; i++ {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// Uint64 interprets the first 8 bytes of the register as a little-endian
// 64-bit integer. Used only to derive selection indices, never for mixing.
func (r *Register) Uint64() uint64 {
	return binary.LittleEndian.Uint64(r[:8])
}

// PutUint64 writes v into the first 8 bytes of the register, little-endian.
func (r *Register) PutUint64(v uint64) {
	binary.LittleEndian.PutUint64(r[:8], v)
}
