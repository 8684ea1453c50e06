package ruc

import (
	"context"
	"errors"

	"github.com/randomuniverse/RUC/ruc/engine"
	"github.com/randomuniverse/RUC/ruc/keyschedule"
)

var (
	ErrDataLen = errors.New("ruc: data length is not a multiple of the block size")
)

// Cipher bundles a derived key schedule with the block engine. It uses the
// strict input contract: data handed to Encrypt or Decrypt must be a
// multiple of the 32-byte block size (see the payload package for
// arbitrary-length framing).
//
// A Cipher is safe for concurrent use; the schedule is read-only after
// derivation and every call builds its own block state.
type Cipher struct {
	sched *keyschedule.Schedule
}

// New derives a Cipher from a 32-byte master key with the default selector
// count.
func New(masterKey []byte) (*Cipher, error) {
	return NewWithSelectors(masterKey, keyschedule.DefaultSelectorCount)
}

// NewWithSelectors derives a Cipher with an explicit selector-sequence
// length. Longer sequences mean more mixing sub-steps per round.
func NewWithSelectors(masterKey []byte, selectorCount int) (*Cipher, error) {
	sched, err := keyschedule.New(masterKey, selectorCount)
	if err != nil {
		return nil, err
	}
	return &Cipher{sched: sched}, nil
}

// BlockSize returns the cipher block size in bytes.
func (c *Cipher) BlockSize() int { return engine.BlockSize }

// Schedule exposes the derived tables, for callers that drive the engine
// directly.
func (c *Cipher) Schedule() *keyschedule.Schedule { return c.sched }

// Encrypt encrypts data, whose length must be a multiple of the block size.
func (c *Cipher) Encrypt(data []byte) ([]byte, error) {
	if len(data)%engine.BlockSize != 0 {
		return nil, ErrDataLen
	}
	numBlocks := len(data) / engine.BlockSize
	consts, err := c.sched.KeyConstants(numBlocks)
	if err != nil {
		return nil, err
	}
	return engine.EncryptBlocksStrict(data, c.sched.KeyMaterial, c.sched.Selectors,
		c.sched.SBoxes, c.sched.RoundKeys, consts, numBlocks)
}

// Decrypt recovers plaintext from ciphertext produced by Encrypt. The
// keystream XOR is an involution, so this is the same transformation.
func (c *Cipher) Decrypt(data []byte) ([]byte, error) {
	return c.Encrypt(data)
}

// EncryptParallel encrypts data across the given number of worker
// goroutines. Output is byte-identical to Encrypt.
func (c *Cipher) EncryptParallel(ctx context.Context, data []byte, workers int) ([]byte, error) {
	if len(data)%engine.BlockSize != 0 {
		return nil, ErrDataLen
	}
	numBlocks := len(data) / engine.BlockSize
	consts, err := c.sched.KeyConstants(numBlocks)
	if err != nil {
		return nil, err
	}
	return engine.EncryptBlocksParallel(ctx, data, c.sched.KeyMaterial, c.sched.Selectors,
		c.sched.SBoxes, c.sched.RoundKeys, consts, numBlocks, workers)
}

// DecryptParallel is EncryptParallel over ciphertext.
func (c *Cipher) DecryptParallel(ctx context.Context, data []byte, workers int) ([]byte, error) {
	return c.EncryptParallel(ctx, data, workers)
}
