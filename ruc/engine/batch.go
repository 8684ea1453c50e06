package engine

import (
	"errors"
	"fmt"
)

var (
	ErrPlaintextLen    = errors.New("engine: plaintext length is not a multiple of the block size")
	ErrKeyMaterialLen  = errors.New("engine: key material length is not a multiple of the register size")
	ErrSBoxTableLen    = errors.New("engine: sbox table has wrong length")
	ErrRoundKeyLen     = errors.New("engine: round key table has wrong length")
	ErrKeyConstantsLen = errors.New("engine: key constants length does not match blocks × selectors")
	ErrBlockCount      = errors.New("engine: block count exceeds available plaintext")
)

// Report describes how much of a batch was actually processed under the
// fail-open policy, so callers can distinguish a clean run from one where
// undersized inputs caused rounds or blocks to be skipped.
type Report struct {
	// Blocks is the number of blocks encrypted.
	Blocks int
	// SkippedRounds counts rounds dropped because a table slice was short.
	SkippedRounds int
}

// EncryptBlocks encrypts up to numBlocks 32-byte blocks of plaintext under
// the supplied key material and pre-expanded tables, returning the
// concatenated ciphertext.
//
// Inputs are flat buffers: keyMaterial holds up to 7 64-byte registers,
// sboxes holds 24 rounds × 256 bytes, roundKeys 24 rounds × 64 bytes, and
// keyConstants one byte per selector per block. Each block is mixed by 24
// rounds over a fresh state, the state is hashed into a 32-byte keystream,
// and the keystream is XORed with the plaintext block.
//
// The call is fail-open: processing stops at the first incomplete plaintext
// block (output is truncated, not padded) and any round whose table slice
// would run out of bounds is skipped silently. Use EncryptBlocksStrict when
// up-front validation is wanted.
func EncryptBlocks(plaintext, keyMaterial []byte, selectors []uint16, sboxes, roundKeys, keyConstants []byte, numBlocks int) []byte {
	out, _ := EncryptBlocksReport(plaintext, keyMaterial, selectors, sboxes, roundKeys, keyConstants, numBlocks)
	return out
}

// EncryptBlocksReport is EncryptBlocks plus a Report of skipped work.
func EncryptBlocksReport(plaintext, keyMaterial []byte, selectors []uint16, sboxes, roundKeys, keyConstants []byte, numBlocks int) ([]byte, Report) {
	out := make([]byte, 0, numBlocks*BlockSize)
	var rep Report

	state := new(State)
	for blockIdx := 0; blockIdx < numBlocks; blockIdx++ {
		off := blockIdx * BlockSize
		if off+BlockSize > len(plaintext) {
			break
		}

		var dst [BlockSize]byte
		rep.SkippedRounds += encryptOneBlock(state, dst[:],
			plaintext, keyMaterial, selectors, sboxes, roundKeys, keyConstants, blockIdx)
		out = append(out, dst[:]...)
		rep.Blocks++
	}
	return out, rep
}

// encryptOneBlock runs the full round mix for the block at blockIdx over a
// freshly reset state and writes its ciphertext into dst. It returns the
// number of rounds skipped under the fail-open policy.
func encryptOneBlock(state *State, dst, plaintext, keyMaterial []byte, selectors []uint16, sboxes, roundKeys, keyConstants []byte, blockIdx int) int {
	state.Reset(keyMaterial)
	skipped := 0

	// The key-constant slice is per block, shared by all rounds.
	constOff := blockIdx * len(selectors)

	for round := 0; round < Rounds; round++ {
		sboxOff := round * SBoxSize
		rkOff := round * RegisterSize

		if sboxOff+SBoxSize <= len(sboxes) &&
			rkOff+RegisterSize <= len(roundKeys) &&
			constOff+len(selectors) <= len(keyConstants) {
			if state.executeRound(
				selectors,
				sboxes[sboxOff:sboxOff+SBoxSize],
				roundKeys[rkOff:rkOff+RegisterSize],
				keyConstants[constOff:constOff+len(selectors)],
			) {
				continue
			}
		}
		skipped++
	}

	ks := state.Keystream()
	block := plaintext[blockIdx*BlockSize : blockIdx*BlockSize+BlockSize]
	for i := range block {
		dst[i] = block[i] ^ ks[i]
	}
	return skipped
}

// DecryptBlocks recovers plaintext from ciphertext. The keystream XOR is an
// involution, so decryption is the same transformation as encryption.
func DecryptBlocks(ciphertext, keyMaterial []byte, selectors []uint16, sboxes, roundKeys, keyConstants []byte, numBlocks int) []byte {
	return EncryptBlocks(ciphertext, keyMaterial, selectors, sboxes, roundKeys, keyConstants, numBlocks)
}

// ValidateInputs checks that every buffer matches the documented multiples
// for a numBlocks batch. It returns a descriptive error for the first
// mismatch found, or nil if the batch would be processed in full.
func ValidateInputs(plaintext, keyMaterial []byte, selectors []uint16, sboxes, roundKeys, keyConstants []byte, numBlocks int) error {
	if len(plaintext)%BlockSize != 0 {
		return fmt.Errorf("%w: %d bytes", ErrPlaintextLen, len(plaintext))
	}
	if numBlocks*BlockSize > len(plaintext) {
		return fmt.Errorf("%w: %d blocks requested, %d available", ErrBlockCount, numBlocks, len(plaintext)/BlockSize)
	}
	if len(keyMaterial)%RegisterSize != 0 {
		return fmt.Errorf("%w: %d bytes", ErrKeyMaterialLen, len(keyMaterial))
	}
	if len(sboxes) != Rounds*SBoxSize {
		return fmt.Errorf("%w: %d bytes, want %d", ErrSBoxTableLen, len(sboxes), Rounds*SBoxSize)
	}
	if len(roundKeys) != Rounds*RegisterSize {
		return fmt.Errorf("%w: %d bytes, want %d", ErrRoundKeyLen, len(roundKeys), Rounds*RegisterSize)
	}
	if len(keyConstants) != numBlocks*len(selectors) {
		return fmt.Errorf("%w: %d bytes, want %d", ErrKeyConstantsLen, len(keyConstants), numBlocks*len(selectors))
	}
	return nil
}

// EncryptBlocksStrict rejects malformed inputs up front instead of the
// default skip/truncate behavior. On valid inputs the output is identical
// to EncryptBlocks.
func EncryptBlocksStrict(plaintext, keyMaterial []byte, selectors []uint16, sboxes, roundKeys, keyConstants []byte, numBlocks int) ([]byte, error) {
	if err := ValidateInputs(plaintext, keyMaterial, selectors, sboxes, roundKeys, keyConstants, numBlocks); err != nil {
		return nil, err
	}
	return EncryptBlocks(plaintext, keyMaterial, selectors, sboxes, roundKeys, keyConstants, numBlocks), nil
}
