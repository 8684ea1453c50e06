package engine

import (
	"bytes"
	"math/rand"
	"testing"
)

// testTables builds a deterministic pseudo-random table set for the given
// selector count and block count.
type testTables struct {
	keyMaterial  []byte
	selectors    []uint16
	sboxes       []byte
	roundKeys    []byte
	keyConstants []byte
}

func newTestTables(seed int64, selectorCount, numBlocks int) testTables {
	rng := rand.New(rand.NewSource(seed))
	fill := func(n int) []byte {
		b := make([]byte, n)
		for i := range b {
			b[i] = byte(rng.Intn(256))
		}
		return b
	}
	sels := make([]uint16, selectorCount)
	for i := range sels {
		sels[i] = uint16(rng.Intn(1 << 16))
	}
	return testTables{
		keyMaterial:  fill(RegisterCount * RegisterSize),
		selectors:    sels,
		sboxes:       fill(Rounds * SBoxSize),
		roundKeys:    fill(Rounds * RegisterSize),
		keyConstants: fill(numBlocks * selectorCount),
	}
}

func TestStateResetShortKeyMaterial(t *testing.T) {
	// 100 bytes covers register 0 but not a full second register; the
	// partial remainder must not be copied.
	km := make([]byte, 100)
	for i := range km {
		km[i] = byte(i + 1)
	}
	s := NewState(km)

	regs := s.Registers()
	if !bytes.Equal(regs[:RegisterSize], km[:RegisterSize]) {
		t.Fatal("register 0 does not match key material")
	}
	for i := RegisterSize; i < len(regs); i++ {
		if regs[i] != 0 {
			t.Fatalf("register byte %d not zero with short key material", i)
		}
	}
	if s.AccumulatorSum() != 0 {
		t.Fatal("fresh state has nonzero accumulator sum")
	}
}

func TestStateResetClearsPreviousBlock(t *testing.T) {
	tt := newTestTables(1, 4, 1)
	s := NewState(tt.keyMaterial)
	if !s.executeRound(tt.selectors, tt.sboxes[:SBoxSize], tt.roundKeys[:RegisterSize], tt.keyConstants[:len(tt.selectors)]) {
		t.Fatal("round unexpectedly skipped")
	}
	if s.AccumulatorSum() == 0 {
		t.Fatal("accumulator sum not updated by round")
	}

	s.Reset(tt.keyMaterial)
	fresh := NewState(tt.keyMaterial)
	if !bytes.Equal(s.Registers(), fresh.Registers()) || s.AccumulatorSum() != 0 {
		t.Fatal("Reset did not restore the initial state")
	}
}

func TestRoundSkipsShortInputs(t *testing.T) {
	tt := newTestTables(2, 3, 1)

	cases := []struct {
		name     string
		sbox     []byte
		roundKey []byte
	}{
		{"short sbox", tt.sboxes[:SBoxSize-1], tt.roundKeys[:RegisterSize]},
		{"short round key", tt.sboxes[:SBoxSize], tt.roundKeys[:RegisterSize-1]},
		{"both empty", nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewState(tt.keyMaterial)
			before := s.Registers()
			if s.executeRound(tt.selectors, tc.sbox, tc.roundKey, tt.keyConstants) {
				t.Fatal("expected round to be skipped")
			}
			if !bytes.Equal(s.Registers(), before) || s.AccumulatorSum() != 0 {
				t.Fatal("skipped round mutated state")
			}
		})
	}
}

func TestRoundMissingKeyConstantsStillProcesses(t *testing.T) {
	// Key constants shorter than the selector list drop the XOR for the
	// tail selectors but the round itself still runs.
	tt := newTestTables(3, 5, 1)
	s := NewState(tt.keyMaterial)
	before := s.Registers()
	if !s.executeRound(tt.selectors, tt.sboxes[:SBoxSize], tt.roundKeys[:RegisterSize], nil) {
		t.Fatal("round skipped despite valid sbox and round key")
	}
	if bytes.Equal(s.Registers(), before) {
		t.Fatal("round did not mutate state")
	}
}

func TestRoundDeterministic(t *testing.T) {
	tt := newTestTables(4, 8, 1)
	a := NewState(tt.keyMaterial)
	b := NewState(tt.keyMaterial)
	for round := 0; round < Rounds; round++ {
		sbox := tt.sboxes[round*SBoxSize : (round+1)*SBoxSize]
		rk := tt.roundKeys[round*RegisterSize : (round+1)*RegisterSize]
		a.executeRound(tt.selectors, sbox, rk, tt.keyConstants)
		b.executeRound(tt.selectors, sbox, rk, tt.keyConstants)
	}
	if !bytes.Equal(a.Registers(), b.Registers()) || a.AccumulatorSum() != b.AccumulatorSum() {
		t.Fatal("identical round sequences diverged")
	}
}

func TestKeystreamStableUntilStateChanges(t *testing.T) {
	tt := newTestTables(5, 4, 1)
	s := NewState(tt.keyMaterial)

	a := s.Keystream()
	b := s.Keystream()
	if a != b {
		t.Fatal("Keystream is not a pure function of the state")
	}

	s.executeRound(tt.selectors, tt.sboxes[:SBoxSize], tt.roundKeys[:RegisterSize], tt.keyConstants)
	if c := s.Keystream(); c == a {
		t.Fatal("keystream unchanged after a round mutated the state")
	}
}

func BenchmarkRound(b *testing.B) {
	tt := newTestTables(6, 16, 1)
	s := NewState(tt.keyMaterial)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.executeRound(tt.selectors, tt.sboxes[:SBoxSize], tt.roundKeys[:RegisterSize], tt.keyConstants)
	}
}
