package ecrun

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/klauspost/reedsolomon"

	"github.com/yuezato/xorslp-ec/schedule"
)

func randomBlocks(n, size int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = make([]byte, size)
		rand.Read(out[i])
	}
	return out
}

func TestExtractCombinePlanesRoundTrip(t *testing.T) {
	block := randomBlocks(1, 256)[0]
	planes := ExtractPlanes(block)
	for _, p := range planes {
		for _, bit := range p {
			if bit != 0 && bit != 1 {
				t.Fatalf("plane value out of range: %d", bit)
			}
		}
	}
	got := CombinePlanes(planes)
	if !bytes.Equal(got, block) {
		t.Fatal("CombinePlanes(ExtractPlanes(block)) != block")
	}
}

func TestCodecEncodeDecodeRoundTrip(t *testing.T) {
	const dataBlocks, parityBlocks, blockSize = 4, 2, 64
	codec, err := NewCodec(dataBlocks, parityBlocks, 32, schedule.UseLRU)
	if err != nil {
		t.Fatalf("NewCodec error = %v", err)
	}

	for trial := 0; trial < 20; trial++ {
		data := randomBlocks(dataBlocks, blockSize)
		parity, err := codec.Encode(data)
		if err != nil {
			t.Fatalf("Encode error = %v", err)
		}
		if len(parity) != parityBlocks {
			t.Fatalf("Encode returned %d parity blocks, want %d", len(parity), parityBlocks)
		}

		present := map[int][]byte{}
		for i, b := range data {
			present[i] = b
		}
		for i, b := range parity {
			present[dataBlocks+i] = b
		}

		// drop two data blocks, recover them from the rest.
		missing := []int{0, 2}
		for _, m := range missing {
			delete(present, m)
		}

		recovered, err := codec.Reconstruct(present)
		if err != nil {
			t.Fatalf("Reconstruct error = %v", err)
		}
		for _, m := range missing {
			if !bytes.Equal(recovered[m], data[m]) {
				t.Fatalf("trial %d: recovered block %d mismatch", trial, m)
			}
		}
	}
}

func TestCodecReconstructFromParityOnly(t *testing.T) {
	const dataBlocks, parityBlocks, blockSize = 3, 3, 32
	codec, err := NewCodec(dataBlocks, parityBlocks, 16, schedule.UseLRU)
	if err != nil {
		t.Fatalf("NewCodec error = %v", err)
	}

	data := randomBlocks(dataBlocks, blockSize)
	parity, err := codec.Encode(data)
	if err != nil {
		t.Fatalf("Encode error = %v", err)
	}

	present := map[int][]byte{
		dataBlocks + 0: parity[0],
		dataBlocks + 1: parity[1],
		dataBlocks + 2: parity[2],
	}
	recovered, err := codec.Reconstruct(present)
	if err != nil {
		t.Fatalf("Reconstruct error = %v", err)
	}
	for i := range data {
		if !bytes.Equal(recovered[i], data[i]) {
			t.Fatalf("block %d mismatch when recovering purely from parity", i)
		}
	}
}

func TestCodecTooFewSurvivorsErrors(t *testing.T) {
	const dataBlocks, parityBlocks, blockSize = 4, 2, 16
	codec, err := NewCodec(dataBlocks, parityBlocks, 16, schedule.UseLRU)
	if err != nil {
		t.Fatalf("NewCodec error = %v", err)
	}
	data := randomBlocks(dataBlocks, blockSize)
	parity, err := codec.Encode(data)
	if err != nil {
		t.Fatalf("Encode error = %v", err)
	}

	present := map[int][]byte{0: data[0], 1: data[1], dataBlocks: parity[0]}
	if _, err := codec.Reconstruct(present); err == nil {
		t.Fatal("expected error reconstructing from fewer than dataBlocks survivors")
	}
}

// TestAgainstReedSolomon cross-checks xorslp-ec's encode/reconstruct
// pipeline against klauspost/reedsolomon run over the same input, as an
// independent, externally-known-correct reference implementation.
func TestAgainstReedSolomon(t *testing.T) {
	const dataBlocks, parityBlocks, blockSize = 6, 3, 128

	codec, err := NewCodec(dataBlocks, parityBlocks, 64, schedule.UseLRU)
	if err != nil {
		t.Fatalf("NewCodec error = %v", err)
	}
	enc, err := reedsolomon.New(dataBlocks, parityBlocks)
	if err != nil {
		t.Fatalf("reedsolomon.New error = %v", err)
	}

	for trial := 0; trial < 50; trial++ {
		data := randomBlocks(dataBlocks, blockSize)

		ourParity, err := codec.Encode(data)
		if err != nil {
			t.Fatalf("Encode error = %v", err)
		}

		rsShards := make([][]byte, dataBlocks+parityBlocks)
		for i, b := range data {
			rsShards[i] = append([]byte(nil), b...)
		}
		for i := range rsShards[dataBlocks:] {
			rsShards[dataBlocks+i] = make([]byte, blockSize)
		}
		if err := enc.Encode(rsShards); err != nil {
			t.Fatalf("reedsolomon Encode error = %v", err)
		}

		ok, err := enc.Verify(rsShards)
		if err != nil || !ok {
			t.Fatalf("reedsolomon shards failed self-verification: ok=%v err=%v", ok, err)
		}

		// Both libraries must agree that the same erasure pattern is
		// reconstructible; drop the same two blocks from each and
		// compare recovered data against the original input, not
		// against each other's parity bytes directly (the two
		// encoders use different, independently chosen generator
		// matrices, so parity bytes themselves need not match).
		missing := []int{0, dataBlocks - 1}

		present := map[int][]byte{}
		for i, b := range data {
			present[i] = b
		}
		for i, b := range ourParity {
			present[dataBlocks+i] = b
		}
		for _, m := range missing {
			delete(present, m)
		}
		ourRecovered, err := codec.Reconstruct(present)
		if err != nil {
			t.Fatalf("Reconstruct error = %v", err)
		}

		rsRecovered := make([][]byte, len(rsShards))
		copy(rsRecovered, rsShards)
		for _, m := range missing {
			rsRecovered[m] = nil
		}
		if err := enc.Reconstruct(rsRecovered); err != nil {
			t.Fatalf("reedsolomon Reconstruct error = %v", err)
		}

		for _, m := range missing {
			if !bytes.Equal(ourRecovered[m], data[m]) {
				t.Fatalf("trial %d: xorslp-ec recovered block %d mismatch", trial, m)
			}
			if !bytes.Equal(rsRecovered[m], data[m]) {
				t.Fatalf("trial %d: reedsolomon recovered block %d mismatch", trial, m)
			}
		}
	}
}

func BenchmarkCodecEncode(b *testing.B) {
	const dataBlocks, parityBlocks, blockSize = 10, 4, 4096
	codec, err := NewCodec(dataBlocks, parityBlocks, 64, schedule.UseLRU)
	if err != nil {
		b.Fatalf("NewCodec error = %v", err)
	}
	data := randomBlocks(dataBlocks, blockSize)

	b.Run("Ours", func(b *testing.B) {
		b.ResetTimer()
		b.SetBytes(int64(dataBlocks * blockSize))
		for i := 0; i < b.N; i++ {
			if _, err := codec.Encode(data); err != nil {
				b.Fatal(err)
			}
		}
	})

	enc, err := reedsolomon.New(dataBlocks, parityBlocks)
	if err != nil {
		b.Fatalf("reedsolomon.New error = %v", err)
	}
	rsShards := make([][]byte, dataBlocks+parityBlocks)
	for i, block := range data {
		rsShards[i] = block
	}
	for i := range rsShards[dataBlocks:] {
		rsShards[dataBlocks+i] = make([]byte, blockSize)
	}

	b.Run("ReedSolomon", func(b *testing.B) {
		b.ResetTimer()
		b.SetBytes(int64(dataBlocks * blockSize))
		for i := 0; i < b.N; i++ {
			if err := enc.Encode(rsShards); err != nil {
				b.Fatal(err)
			}
		}
	})
}
