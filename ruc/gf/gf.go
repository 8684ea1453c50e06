// Package gf implements byte arithmetic over GF(2^8) reduced modulo the
// AES polynomial x^8 + x^4 + x^3 + x + 1. Multiplication in this field is
// the atomic nonlinear operation of the cipher; everything else composes it.
package gf

// Poly is the reduction constant of the field polynomial 0x11B with the
// implicit x^8 term stripped.
const Poly = 0x1B

// Mul multiplies a and b in GF(2^8) using double-and-add over the eight
// bit positions of b. Total over all byte pairs; never fails.
func Mul(a, b byte) byte {
	var result byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			result ^= a
		}
		hiBit := a & 0x80
		a <<= 1
		if hiBit != 0 {
			a ^= Poly
		}
		b >>= 1
	}
	return result
}

// Add adds two field elements. Addition in GF(2^8) is XOR.
func Add(a, b byte) byte {
	return a ^ b
}
