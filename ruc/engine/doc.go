// Package engine implements the block transformation core of the Random
// Universe Cipher: a register-based substitution-permutation network that
// derives a per-block keystream from caller-supplied key material and
// pre-expanded tables.
//
// The engine is deliberately narrow. It receives key material, selectors,
// S-boxes, round keys and key constants as opaque flat buffers and returns
// ciphertext bytes; it does not generate or validate key schedules (see the
// keyschedule package for that side of the system).
//
// Each 32-byte block is processed with a fresh state built from the same key
// material, so blocks are fully independent of one another. That makes the
// batch driver embarrassingly parallel (see EncryptBlocksParallel) and gives
// the cipher ECB-like properties, which is an intentional part of the design.
//
// Malformed inputs follow a fail-open policy for drop-in compatibility:
// undersized tables cause rounds to be skipped and short plaintext truncates
// the batch, with no error raised. Callers that prefer up-front rejection can
// use ValidateInputs or EncryptBlocksStrict.
package engine
