package engine

import (
	"context"
	"sync"
)

// EncryptBlocksParallel splits a batch into contiguous block ranges and
// encrypts them on worker goroutines. Blocks never share state, so the
// result is byte-identical to EncryptBlocks on the same inputs.
//
// The context is checked between blocks; on cancellation the call returns
// ctx.Err() and discards partial output. workers values below 1 fall back
// to a single worker.
func EncryptBlocksParallel(ctx context.Context, plaintext, keyMaterial []byte, selectors []uint16, sboxes, roundKeys, keyConstants []byte, numBlocks, workers int) ([]byte, error) {
	// Only complete blocks are processed, matching the serial driver's
	// truncation behavior.
	blocks := numBlocks
	if avail := len(plaintext) / BlockSize; blocks > avail {
		blocks = avail
	}
	if blocks <= 0 {
		return []byte{}, ctx.Err()
	}
	if workers < 1 {
		workers = 1
	}
	if workers > blocks {
		workers = blocks
	}

	out := make([]byte, blocks*BlockSize)
	var wg sync.WaitGroup

	// Contiguous ranges keep each worker's table accesses sequential.
	per := (blocks + workers - 1) / workers
	for start := 0; start < blocks; start += per {
		end := start + per
		if end > blocks {
			end = blocks
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			state := new(State)
			for blockIdx := start; blockIdx < end; blockIdx++ {
				if ctx.Err() != nil {
					return
				}
				encryptOneBlock(state, out[blockIdx*BlockSize:(blockIdx+1)*BlockSize],
					plaintext, keyMaterial, selectors, sboxes, roundKeys, keyConstants, blockIdx)
			}
		}(start, end)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
