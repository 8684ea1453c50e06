// Package ruc provides a library implementation of the Random Universe
// Cipher building blocks.
//
// The cipher is a register-based substitution-permutation network: each
// 32-byte block is mixed by 24 rounds over seven 512-bit registers, the
// final state is hashed with SHA3-256 into a keystream, and the keystream is
// XORed with the plaintext. Blocks are processed independently from the same
// key material, which makes batches embarrassingly parallel.
//
// The layered packages mirror the data flow: gf implements GF(2^8) byte
// arithmetic, register the 64-byte register algebra, engine the round
// function and batch drivers, and keyschedule the host-side table expansion.
// The Cipher type in this package ties schedule and engine together behind a
// small strict-mode API, and payload adds a compress-then-encrypt envelope
// for arbitrary-length data.
package ruc
