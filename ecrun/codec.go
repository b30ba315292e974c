package ecrun

import (
	"fmt"
	"sort"

	"github.com/yuezato/xorslp-ec/linalg"
	"github.com/yuezato/xorslp-ec/schedule"
)

// Codec encodes dataBlocks data blocks into parityBlocks parity blocks
// using the ISA-RSV systematic generator matrix, and can reconstruct
// the data blocks from any DataBlocks surviving blocks whose generator
// rows form an invertible matrix.
type Codec struct {
	DataBlocks   int
	ParityBlocks int
	Gen          *linalg.Matrix

	capacity int
	strategy schedule.Strategy
	compress bool
	encode   *Program
}

// NewCodec builds the systematic ISA-RSV generator matrix for the given
// shape and compiles its parity rows into an executable program sized
// to a pebble cache of cacheCapacity slots, running the RePair
// compressor over the generated SLP before fusion and scheduling.
func NewCodec(dataBlocks, parityBlocks, cacheCapacity int, strategy schedule.Strategy) (*Codec, error) {
	return newCodec(dataBlocks, parityBlocks, cacheCapacity, strategy, true)
}

// NewCodecNoCompress is NewCodec with the RePair pass skipped, matching
// the CLI's --no-compress flag (spec section 6).
func NewCodecNoCompress(dataBlocks, parityBlocks, cacheCapacity int, strategy schedule.Strategy) (*Codec, error) {
	return newCodec(dataBlocks, parityBlocks, cacheCapacity, strategy, false)
}

func newCodec(dataBlocks, parityBlocks, cacheCapacity int, strategy schedule.Strategy, compress bool) (*Codec, error) {
	gen, err := linalg.ISARSV(dataBlocks, parityBlocks)
	if err != nil {
		return nil, err
	}
	targetRows := make([]int, parityBlocks)
	for i := range targetRows {
		targetRows[i] = dataBlocks + i
	}
	var prog *Program
	if compress {
		prog = Compile(gen, targetRows, cacheCapacity, strategy)
	} else {
		prog = CompileNoCompress(gen, targetRows, cacheCapacity, strategy)
	}
	return &Codec{
		DataBlocks:   dataBlocks,
		ParityBlocks: parityBlocks,
		Gen:          gen,
		capacity:     cacheCapacity,
		strategy:     strategy,
		compress:     compress,
		encode:       prog,
	}, nil
}

// EncodeProgram exposes the compiled encode program, for callers (the
// CLI's --stat-enc/--compare-compress) that want to inspect it with
// the stat package rather than run it.
func (c *Codec) EncodeProgram() *Program {
	return c.encode
}

// DecodeProgram compiles (but does not run) the program that recovers
// all DataBlocks original blocks assuming every row except those listed
// in erased survives, for statistics purposes (the CLI's
// --stat-dec/--all-stat).
func (c *Codec) DecodeProgram(erased []int) (*Program, error) {
	total := c.DataBlocks + c.ParityBlocks
	gone := make(map[int]bool, len(erased))
	for _, e := range erased {
		if e < 0 || e >= total {
			return nil, fmt.Errorf("ecrun: DecodeProgram: row %d out of range", e)
		}
		gone[e] = true
	}

	survivors := make([]int, 0, total-len(gone))
	for row := 0; row < total; row++ {
		if !gone[row] {
			survivors = append(survivors, row)
		}
	}
	if len(survivors) < c.DataBlocks {
		return nil, fmt.Errorf("ecrun: DecodeProgram needs at least %d surviving blocks, got %d", c.DataBlocks, len(survivors))
	}
	survivors = survivors[:c.DataBlocks]

	sub := linalg.NewMatrix(c.DataBlocks, c.DataBlocks)
	for i, row := range survivors {
		for col := 0; col < c.DataBlocks; col++ {
			sub.Set(i, col, c.Gen.At(row, col))
		}
	}
	inv, err := sub.Inverse()
	if err != nil {
		return nil, err
	}

	targetRows := make([]int, c.DataBlocks)
	for i := range targetRows {
		targetRows[i] = i
	}
	if c.compress {
		return Compile(inv, targetRows, c.capacity, c.strategy), nil
	}
	return CompileNoCompress(inv, targetRows, c.capacity, c.strategy), nil
}

func blockPlanes(blocks [][]byte) [][]byte {
	var inputs [][]byte
	for _, block := range blocks {
		planes := ExtractPlanes(block)
		for j := 0; j < 8; j++ {
			inputs = append(inputs, planes[j])
		}
	}
	return inputs
}

// Encode computes the parity blocks for data, which must hold exactly
// DataBlocks equally sized blocks.
func (c *Codec) Encode(data [][]byte) ([][]byte, error) {
	if len(data) != c.DataBlocks {
		return nil, fmt.Errorf("ecrun: Encode expects %d data blocks, got %d", c.DataBlocks, len(data))
	}
	blockSize := len(data[0])
	for _, b := range data {
		if len(b) != blockSize {
			return nil, fmt.Errorf("ecrun: Encode requires equally sized blocks")
		}
	}

	values, err := c.encode.Run(blockPlanes(data))
	if err != nil {
		return nil, err
	}

	parity := make([][]byte, c.ParityBlocks)
	for i := 0; i < c.ParityBlocks; i++ {
		origRow := c.DataBlocks + i
		var planes [8][]byte
		for j := 0; j < 8; j++ {
			p, err := c.encode.RowPlane(origRow*8+j, values, blockSize)
			if err != nil {
				return nil, err
			}
			planes[j] = p
		}
		parity[i] = CombinePlanes(planes)
	}
	return parity, nil
}

// Reconstruct recovers all DataBlocks original data blocks given any
// DataBlocks of the dataBlocks+parityBlocks total blocks (keyed by
// their row index in Gen: 0..DataBlocks-1 for data, DataBlocks..
// DataBlocks+ParityBlocks-1 for parity). It returns an error if fewer
// than DataBlocks rows are present or the selected rows are singular.
func (c *Codec) Reconstruct(present map[int][]byte) ([][]byte, error) {
	total := c.DataBlocks + c.ParityBlocks
	if len(present) < c.DataBlocks {
		return nil, fmt.Errorf("ecrun: Reconstruct needs at least %d surviving blocks, got %d", c.DataBlocks, len(present))
	}

	survivors := make([]int, 0, len(present))
	var blockSize int
	for row, block := range present {
		if row < 0 || row >= total {
			return nil, fmt.Errorf("ecrun: Reconstruct: row %d out of range", row)
		}
		survivors = append(survivors, row)
		blockSize = len(block)
	}
	sort.Ints(survivors)
	survivors = survivors[:c.DataBlocks]

	sub := linalg.NewMatrix(c.DataBlocks, c.DataBlocks)
	for i, row := range survivors {
		for col := 0; col < c.DataBlocks; col++ {
			sub.Set(i, col, c.Gen.At(row, col))
		}
	}
	inv, err := sub.Inverse()
	if err != nil {
		return nil, err
	}

	targetRows := make([]int, c.DataBlocks)
	for i := range targetRows {
		targetRows[i] = i
	}
	var prog *Program
	if c.compress {
		prog = Compile(inv, targetRows, c.capacity, c.strategy)
	} else {
		prog = CompileNoCompress(inv, targetRows, c.capacity, c.strategy)
	}

	survivorBlocks := make([][]byte, len(survivors))
	for i, row := range survivors {
		survivorBlocks[i] = present[row]
	}

	values, err := prog.Run(blockPlanes(survivorBlocks))
	if err != nil {
		return nil, err
	}

	out := make([][]byte, c.DataBlocks)
	for r := 0; r < c.DataBlocks; r++ {
		var planes [8][]byte
		for j := 0; j < 8; j++ {
			p, err := prog.RowPlane(r*8+j, values, blockSize)
			if err != nil {
				return nil, err
			}
			planes[j] = p
		}
		out[r] = CombinePlanes(planes)
	}
	return out, nil
}
