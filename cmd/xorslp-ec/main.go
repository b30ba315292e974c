// Command xorslp-ec drives the encode/decode pipeline described in
// section 6 of the design spec: build an ISA-RSV codec for a given
// (data, parity) shape, optionally print compile-time statistics for
// the encode or decode programs, and run timed encode/decode loops.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yuezato/xorslp-ec/ecrun"
	"github.com/yuezato/xorslp-ec/schedule"
	"github.com/yuezato/xorslp-ec/stat"
)

var (
	dataBlocks   int
	parityBlocks int
	blockSize    int
	loopIter     int
	statEnc      bool
	statDecRaw   string
	allStat      bool
	encDecRaw    string
	noCompress   bool
	optimLevel   string
	compareCmp   bool
	cacheCap     int
)

// optimizeLevel names the three values the --optimize-level flag
// accepts. run validates the value but does not otherwise read it:
// every level compiles the same fused and scheduled program, and only
// --no-compress changes the pipeline (by skipping RePair compression).
type optimizeLevel string

const (
	optimNone           optimizeLevel = "none"
	optimFusion         optimizeLevel = "fusion"
	optimFusionSchedule optimizeLevel = "fusion-schedule"
)

func main() {
	root := &cobra.Command{
		Use:          "xorslp-ec",
		Short:        "Compile and run bit-matrix RePair/fusion/pebble-scheduled Reed-Solomon codecs",
		SilenceUsage: true,
		RunE:         run,
	}

	root.Flags().IntVar(&dataBlocks, "data-block", 10, "number of data blocks")
	root.Flags().IntVar(&parityBlocks, "parity-block", 4, "number of parity blocks")
	root.Flags().IntVar(&blockSize, "block-size", 4096, "bytes per block")
	root.Flags().IntVar(&loopIter, "loop-iter", 100, "number of encode/decode iterations to run")
	root.Flags().BoolVar(&statEnc, "stat-enc", false, "print statistics for the encode program")
	root.Flags().StringVar(&statDecRaw, "stat-dec", "", "comma-separated erased block indices to print decode statistics for")
	root.Flags().BoolVar(&allStat, "all-stat", false, "print statistics for every possible single-block erasure")
	root.Flags().StringVar(&encDecRaw, "enc-dec", "", "comma-separated erased block indices to encode, erase, and decode")
	root.Flags().BoolVar(&noCompress, "no-compress", false, "skip the RePair compression pass")
	root.Flags().StringVar(&optimLevel, "optimize-level", string(optimFusionSchedule), "one of none, fusion, fusion-schedule")
	root.Flags().BoolVar(&compareCmp, "compare-compress", false, "print stats with and without RePair compression for comparison")
	root.Flags().IntVar(&cacheCap, "pebble-capacity", 0, "pebble cache capacity (0 = derive from --block-size)")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if dataBlocks <= 0 || parityBlocks <= 0 {
		return fmt.Errorf("xorslp-ec: --data-block and --parity-block must be positive")
	}
	if _, ok := map[string]bool{string(optimNone): true, string(optimFusion): true, string(optimFusionSchedule): true}[optimLevel]; !ok {
		return fmt.Errorf("xorslp-ec: --optimize-level must be one of none, fusion, fusion-schedule")
	}

	capacity := cacheCap
	if capacity <= 0 {
		capacity = 32768 / blockSizePerIter(blockSize)
		if capacity < 1 {
			capacity = 1
		}
	}

	var codec *ecrun.Codec
	var err error
	if noCompress {
		codec, err = ecrun.NewCodecNoCompress(dataBlocks, parityBlocks, capacity, schedule.UseLRU)
	} else {
		codec, err = ecrun.NewCodec(dataBlocks, parityBlocks, capacity, schedule.UseLRU)
	}
	if err != nil {
		return err
	}

	if statEnc {
		printEncodeStat(codec, capacity)
	}
	if allStat {
		for i := 0; i < dataBlocks+parityBlocks; i++ {
			printDecodeStat(codec, capacity, []int{i})
		}
	}
	if statDecRaw != "" {
		erased, err := parseIntList(statDecRaw)
		if err != nil {
			return err
		}
		printDecodeStat(codec, capacity, erased)
	}
	if compareCmp {
		printCompareCompress(dataBlocks, parityBlocks, capacity)
	}
	if encDecRaw != "" {
		erased, err := parseIntList(encDecRaw)
		if err != nil {
			return err
		}
		if err := encDecLoop(cmd, codec, erased); err != nil {
			return err
		}
	}
	return nil
}

func blockSizePerIter(blockSize int) int {
	for _, candidate := range []int{8192, 4096, 3072, 2048, 1024, 512, 256, 128, 64} {
		if blockSize%candidate == 0 {
			return candidate
		}
	}
	return 2048
}

func parseIntList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("xorslp-ec: invalid integer %q", p)
		}
		out = append(out, n)
	}
	return out, nil
}

func printEncodeStat(codec *ecrun.Codec, capacity int) {
	s := stat.Analyze(codec.EncodeProgram().Fused, codec.EncodeProgram().Targets, capacity, schedule.UseLRU)
	fmt.Printf("encode: xors=%d memacc=%d page-transfers=%d variables=%d\n",
		s.NrXors, s.NrMemAcc, s.NrPageTransfer, s.NrVariables)
}

func printDecodeStat(codec *ecrun.Codec, capacity int, erased []int) {
	prog, err := codec.DecodeProgram(erased)
	if err != nil {
		fmt.Printf("decode(%v): error: %v\n", erased, err)
		return
	}
	s := stat.Analyze(prog.Fused, prog.Targets, capacity, schedule.UseLRU)
	fmt.Printf("decode(erased=%v): xors=%d memacc=%d page-transfers=%d variables=%d\n",
		erased, s.NrXors, s.NrMemAcc, s.NrPageTransfer, s.NrVariables)
}

func printCompareCompress(dataBlocks, parityBlocks, capacity int) {
	compressed, err := ecrun.NewCodec(dataBlocks, parityBlocks, capacity, schedule.UseLRU)
	if err != nil {
		fmt.Printf("compare-compress: error: %v\n", err)
		return
	}
	uncompressed, err := ecrun.NewCodecNoCompress(dataBlocks, parityBlocks, capacity, schedule.UseLRU)
	if err != nil {
		fmt.Printf("compare-compress: error: %v\n", err)
		return
	}
	cs := stat.Analyze(compressed.EncodeProgram().Fused, compressed.EncodeProgram().Targets, capacity, schedule.UseLRU)
	us := stat.Analyze(uncompressed.EncodeProgram().Fused, uncompressed.EncodeProgram().Targets, capacity, schedule.UseLRU)
	fmt.Printf("compare-compress: repair xors=%d, no-compress xors=%d (%.1f%% reduction)\n",
		cs.NrXors, us.NrXors, 100*(1-float64(cs.NrXors)/float64(us.NrXors)))
}

func encDecLoop(cmd *cobra.Command, codec *ecrun.Codec, erased []int) error {
	data := make([][]byte, dataBlocks)
	for i := range data {
		data[i] = make([]byte, blockSize)
		rand.Read(data[i])
	}

	start := time.Now()
	var parity [][]byte
	var err error
	for i := 0; i < loopIter; i++ {
		parity, err = codec.Encode(data)
		if err != nil {
			return err
		}
	}
	encodeElapsed := time.Since(start)

	present := map[int][]byte{}
	for i, b := range data {
		present[i] = b
	}
	for i, b := range parity {
		present[dataBlocks+i] = b
	}
	for _, e := range erased {
		delete(present, e)
	}

	start = time.Now()
	var recovered [][]byte
	for i := 0; i < loopIter; i++ {
		recovered, err = codec.Reconstruct(present)
		if err != nil {
			return err
		}
	}
	decodeElapsed := time.Since(start)

	for _, e := range erased {
		if e < dataBlocks && recovered[e] != nil && string(recovered[e]) != string(data[e]) {
			return fmt.Errorf("xorslp-ec: reconstructed block %d does not match original", e)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "enc-dec(erased=%v): %d iterations, encode=%s decode=%s\n",
		erased, loopIter, encodeElapsed, decodeElapsed)
	return nil
}
