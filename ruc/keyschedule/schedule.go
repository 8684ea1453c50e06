// Package keyschedule expands a master key into the tables the engine
// consumes: key-material registers, selectors, per-round S-boxes and round
// keys, and per-block key constants. The engine treats these as opaque
// buffers; this package is the host-side collaborator that produces them.
//
// Derivation is deterministic: HKDF-SHA256 splits the master key into one
// seed per table, and a SHAKE256 stream expands each seed to its table.
package keyschedule

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"

	"github.com/randomuniverse/RUC/ruc/engine"
)

// MasterKeySize is the required master key length in bytes.
const MasterKeySize = 32

// DefaultSelectorCount is the selector-sequence length used when the caller
// has no preference.
const DefaultSelectorCount = 16

var (
	ErrMasterKeySize    = errors.New("keyschedule: master key must be 32 bytes")
	ErrSelectorCount    = errors.New("keyschedule: selector count must be positive")
	ErrNegativeBlockLen = errors.New("keyschedule: block count must be non-negative")
)

// seedSize is the per-table seed length drawn from HKDF.
const seedSize = 32

// Domain-separation labels, one per derived table.
var (
	infoKeyMaterial  = []byte("ruc/v1/key-material")
	infoSelectors    = []byte("ruc/v1/selectors")
	infoSBoxes       = []byte("ruc/v1/sboxes")
	infoRoundKeys    = []byte("ruc/v1/round-keys")
	infoKeyConstants = []byte("ruc/v1/key-constants")
)

// Schedule holds every expanded table for one master key. The flat layouts
// match what the engine expects: KeyMaterial is 7 registers of 64 bytes,
// SBoxes is 24 rounds × 256 bytes, RoundKeys is 24 rounds × 64 bytes.
type Schedule struct {
	KeyMaterial []byte
	Selectors   []uint16
	SBoxes      []byte
	RoundKeys   []byte

	constSeed [seedSize]byte
}

// New derives a complete schedule from a 32-byte master key. selectorCount
// sets the length of the selector sequence shared by all blocks and rounds.
func New(masterKey []byte, selectorCount int) (*Schedule, error) {
	if len(masterKey) != MasterKeySize {
		return nil, ErrMasterKeySize
	}
	if selectorCount <= 0 {
		return nil, ErrSelectorCount
	}

	s := &Schedule{
		KeyMaterial: make([]byte, engine.RegisterCount*engine.RegisterSize),
		Selectors:   make([]uint16, selectorCount),
		SBoxes:      make([]byte, engine.Rounds*engine.SBoxSize),
		RoundKeys:   make([]byte, engine.Rounds*engine.RegisterSize),
	}

	if err := expandSeed(masterKey, infoKeyMaterial, s.KeyMaterial); err != nil {
		return nil, err
	}
	if err := expandSeed(masterKey, infoRoundKeys, s.RoundKeys); err != nil {
		return nil, err
	}

	selBytes := make([]byte, 2*selectorCount)
	if err := expandSeed(masterKey, infoSelectors, selBytes); err != nil {
		return nil, err
	}
	for i := range s.Selectors {
		s.Selectors[i] = binary.LittleEndian.Uint16(selBytes[2*i:])
	}

	sboxSeed, err := deriveSeed(masterKey, infoSBoxes)
	if err != nil {
		return nil, err
	}
	shake := sha3.NewShake256()
	shake.Write(sboxSeed)
	for round := 0; round < engine.Rounds; round++ {
		fillSBox(s.SBoxes[round*engine.SBoxSize:(round+1)*engine.SBoxSize], shake)
	}

	constSeed, err := deriveSeed(masterKey, infoKeyConstants)
	if err != nil {
		return nil, err
	}
	copy(s.constSeed[:], constSeed)

	return s, nil
}

// KeyConstants derives the per-block constant table for a numBlocks batch:
// numBlocks × len(Selectors) bytes, one constant per selector per block.
// The same schedule always yields the same constants for a given batch size.
func (s *Schedule) KeyConstants(numBlocks int) ([]byte, error) {
	if numBlocks < 0 {
		return nil, ErrNegativeBlockLen
	}
	out := make([]byte, numBlocks*len(s.Selectors))
	shake := sha3.NewShake256()
	shake.Write(s.constSeed[:])
	if _, err := io.ReadFull(shake, out); err != nil {
		return nil, err
	}
	return out, nil
}

// SelectorCount returns the length of the selector sequence.
func (s *Schedule) SelectorCount() int {
	return len(s.Selectors)
}

// deriveSeed derives one per-table seed from the master key with
// HKDF-SHA256, using info for domain separation.
func deriveSeed(masterKey, info []byte) ([]byte, error) {
	hk := hkdf.New(sha256.New, masterKey, nil, info)
	seed := make([]byte, seedSize)
	if _, err := io.ReadFull(hk, seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// expandSeed fills dst from a SHAKE256 stream keyed by the table seed.
func expandSeed(masterKey, info, dst []byte) error {
	seed, err := deriveSeed(masterKey, info)
	if err != nil {
		return err
	}
	shake := sha3.NewShake256()
	shake.Write(seed)
	_, err = io.ReadFull(shake, dst)
	return err
}

// fillSBox writes a permutation of 0..255 into dst, shuffled by bytes drawn
// from the stream. Every round's S-box is bijective, so substitution never
// collapses distinct inputs.
func fillSBox(dst []byte, stream io.Reader) {
	for i := range dst {
		dst[i] = byte(i)
	}
	var buf [2]byte
	for i := len(dst) - 1; i > 0; i-- {
		_, _ = io.ReadFull(stream, buf[:])
		j := int(binary.LittleEndian.Uint16(buf[:])) % (i + 1)
		dst[i], dst[j] = dst[j], dst[i]
	}
}
