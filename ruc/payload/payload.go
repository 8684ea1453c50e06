// Package payload frames arbitrary-length data for the 32-byte-block cipher
// core: data is LZ4-compressed when that helps, zero-filled to the block
// boundary, encrypted, and prefixed with a small cleartext header recording
// the magic, compression flag and payload length. The core itself never
// pads; all framing lives here on the host side.
package payload

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/randomuniverse/RUC/ruc"
)

var (
	ErrEnvelopeTooShort    = errors.New("payload: envelope too short")
	ErrBadMagic            = errors.New("payload: invalid envelope magic")
	ErrLengthMismatch      = errors.New("payload: recorded length exceeds decrypted data")
	ErrCompressionFailed   = errors.New("payload: compression failed")
	ErrDecompressionFailed = errors.New("payload: decompression failed")
)

const (
	// Magic identifies a sealed envelope ("RUC1").
	Magic = uint32(0x52554331)

	// headerSize is magic (4) + flags (1) + payload length (4).
	headerSize = 9

	flagCompressed = byte(1 << 0)
)

// compressorPool reuses LZ4 writers to reduce allocations.
var compressorPool = sync.Pool{
	New: func() interface{} {
		return lz4.NewWriter(nil)
	},
}

// decompressorPool reuses LZ4 readers.
var decompressorPool = sync.Pool{
	New: func() interface{} {
		return lz4.NewReader(nil)
	},
}

// compress compresses data with LZ4 at a fast level.
func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := compressorPool.Get().(*lz4.Writer)
	defer compressorPool.Put(w)

	w.Reset(&buf)
	_ = w.Apply(lz4.CompressionLevelOption(lz4.Fast))

	if _, err := w.Write(data); err != nil {
		return nil, ErrCompressionFailed
	}
	if err := w.Close(); err != nil {
		return nil, ErrCompressionFailed
	}
	return buf.Bytes(), nil
}

// decompress inflates LZ4-compressed data.
func decompress(data []byte) ([]byte, error) {
	r := decompressorPool.Get().(*lz4.Reader)
	defer decompressorPool.Put(r)

	r.Reset(bytes.NewReader(data))

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, ErrDecompressionFailed
	}
	return buf.Bytes(), nil
}

// Seal compresses (when beneficial), pads and encrypts data, returning a
// self-describing envelope:
//
//	4 bytes: magic
//	1 byte:  flags (bit 0: compressed)
//	4 bytes: payload length before padding
//	N bytes: ciphertext, a multiple of the block size
func Seal(c *ruc.Cipher, data []byte) ([]byte, error) {
	body := data
	var flags byte
	if compressed, err := compress(data); err == nil && len(compressed) < len(data) {
		body = compressed
		flags |= flagCompressed
	}

	// Zero-fill up to the next block boundary.
	blockSize := c.BlockSize()
	padded := make([]byte, (len(body)+blockSize-1)/blockSize*blockSize)
	copy(padded, body)

	ct, err := c.Encrypt(padded)
	if err != nil {
		return nil, err
	}

	out := make([]byte, headerSize+len(ct))
	binary.BigEndian.PutUint32(out[:4], Magic)
	out[4] = flags
	binary.BigEndian.PutUint32(out[5:9], uint32(len(body)))
	copy(out[headerSize:], ct)
	return out, nil
}

// Open decrypts and unframes an envelope produced by Seal.
func Open(c *ruc.Cipher, envelope []byte) ([]byte, error) {
	if len(envelope) < headerSize {
		return nil, ErrEnvelopeTooShort
	}
	if binary.BigEndian.Uint32(envelope[:4]) != Magic {
		return nil, ErrBadMagic
	}
	flags := envelope[4]
	bodyLen := int(binary.BigEndian.Uint32(envelope[5:9]))

	pt, err := c.Decrypt(envelope[headerSize:])
	if err != nil {
		return nil, err
	}
	if bodyLen > len(pt) {
		return nil, ErrLengthMismatch
	}
	body := pt[:bodyLen]

	if flags&flagCompressed != 0 {
		return decompress(body)
	}
	return body, nil
}
