package ruc

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func testKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i * 5)
	}
	return key
}

func TestCipherRoundTrip(t *testing.T) {
	c, err := New(testKey())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	pt := make([]byte, 4*c.BlockSize())
	for i := range pt {
		pt[i] = byte(i)
	}

	ct, err := c.Encrypt(pt)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if bytes.Equal(ct, pt) {
		t.Fatal("ciphertext equals plaintext")
	}

	back, err := c.Decrypt(ct)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(back, pt) {
		t.Fatal("round trip did not recover plaintext")
	}
}

func TestCipherRejectsRaggedLength(t *testing.T) {
	c, err := New(testKey())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Encrypt(make([]byte, 33)); !errors.Is(err, ErrDataLen) {
		t.Fatalf("got %v, want ErrDataLen", err)
	}
	if _, err := c.EncryptParallel(context.Background(), make([]byte, 17), 2); !errors.Is(err, ErrDataLen) {
		t.Fatalf("parallel: got %v, want ErrDataLen", err)
	}
}

func TestCipherKeySeparation(t *testing.T) {
	a, _ := New(testKey())
	otherKey := testKey()
	otherKey[0] ^= 1
	b, _ := New(otherKey)

	pt := make([]byte, 2*a.BlockSize())
	ctA, _ := a.Encrypt(pt)
	ctB, _ := b.Encrypt(pt)
	if bytes.Equal(ctA, ctB) {
		t.Fatal("different master keys produced identical ciphertext")
	}
}

func TestCipherParallelMatchesSerial(t *testing.T) {
	c, err := NewWithSelectors(testKey(), 8)
	if err != nil {
		t.Fatalf("NewWithSelectors: %v", err)
	}
	pt := make([]byte, 40*c.BlockSize())
	for i := range pt {
		pt[i] = byte(i * 13)
	}

	serial, err := c.Encrypt(pt)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	par, err := c.EncryptParallel(context.Background(), pt, 6)
	if err != nil {
		t.Fatalf("EncryptParallel: %v", err)
	}
	if !bytes.Equal(serial, par) {
		t.Fatal("parallel output differs from serial")
	}

	back, err := c.DecryptParallel(context.Background(), par, 6)
	if err != nil {
		t.Fatalf("DecryptParallel: %v", err)
	}
	if !bytes.Equal(back, pt) {
		t.Fatal("parallel round trip did not recover plaintext")
	}
}

func BenchmarkCipherEncrypt(b *testing.B) {
	c, err := New(testKey())
	if err != nil {
		b.Fatalf("New: %v", err)
	}
	pt := make([]byte, 1024)
	b.SetBytes(int64(len(pt)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Encrypt(pt)
	}
}
