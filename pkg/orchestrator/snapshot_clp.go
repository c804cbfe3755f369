package orchestrator

import (
	"context"
	"math/big"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pal9000i/arb-engine/pkg/clp"
	"github.com/pal9000i/arb-engine/pkg/collab"
)

const (
	bitmapWindowWords   = 4 // ±W words scanned around the current word
	tickInfoChunkSize   = 4096
	tickInfoConcurrency = 6
)

// compressTick returns compressed = floor(tick / spacing); wordAndBit then
// splits it into v4-style tick bitmap coordinates: word = compressed >> 8,
// bit = compressed & 255.
func compressTick(tick int32, spacing int32) int32 {
	if tick < 0 && tick%spacing != 0 {
		return tick/spacing - 1
	}
	return tick / spacing
}

func wordAndBit(compressed int32) (wordPos int16, bitPos uint8) {
	return int16(compressed >> 8), uint8(compressed & 255)
}

// LoadCLPSnapshot fetches slot0 and liquidity in parallel, then runs a
// windowed tick-bitmap scan around the current tick, decodes set bits into candidate ticks, and fetches
// each candidate's tick info with bounded concurrency, keeping only ticks
// with positive gross liquidity. If the scan yields no initialized ticks,
// it falls back to a synthetic wide-range snapshot.
func LoadCLPSnapshot(ctx context.Context, reader collab.CLPChainReader, key clp.PoolKey, tickSpacing int32) (*clp.Snapshot, error) {
	poolID, err := key.Hash()
	if err != nil {
		return nil, err
	}

	var sqrtPriceX96 *big.Int
	var tick int32
	var liquidity *big.Int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sqrtPriceX96, tick, err = reader.Slot0(gctx, poolID)
		return err
	})
	g.Go(func() error {
		var err error
		liquidity, err = reader.Liquidity(gctx, poolID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	currentCompressed := compressTick(tick, tickSpacing)
	currentWord, _ := wordAndBit(currentCompressed)

	words := make(map[int16]*big.Int)
	var wordsMu sync.Mutex
	wg, wgctx := errgroup.WithContext(ctx)
	for w := currentWord - bitmapWindowWords; w <= currentWord+bitmapWindowWords; w++ {
		w := w
		wg.Go(func() error {
			bitmap, err := reader.TickBitmap(wgctx, poolID, w)
			if err != nil {
				return err
			}
			wordsMu.Lock()
			words[w] = bitmap
			wordsMu.Unlock()
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, err
	}

	var candidates []int32
	for w, bitmap := range words {
		if bitmap == nil || bitmap.Sign() == 0 {
			continue
		}
		for bit := 0; bit < 256; bit++ {
			if bitmap.Bit(bit) == 0 {
				continue
			}
			compressed := int32(w)<<8 + int32(bit)
			candidates = append(candidates, compressed*tickSpacing)
		}
	}

	if len(candidates) == 0 {
		return clp.NewSyntheticSnapshot(key, sqrtPriceX96, tick, liquidity), nil
	}

	entries := make(map[int32]clp.TickInfo)
	var entriesMu sync.Mutex

	sem := make(chan struct{}, tickInfoConcurrency)
	eg, egctx := errgroup.WithContext(ctx)
	for start := 0; start < len(candidates); start += tickInfoChunkSize {
		end := start + tickInfoChunkSize
		if end > len(candidates) {
			end = len(candidates)
		}
		chunk := candidates[start:end]
		for _, t := range chunk {
			t := t
			eg.Go(func() error {
				sem <- struct{}{}
				defer func() { <-sem }()

				gross, net, err := reader.TickInfo(egctx, poolID, t)
				if err != nil {
					return err
				}
				if gross == nil || gross.Sign() <= 0 {
					return nil
				}
				entriesMu.Lock()
				entries[t] = clp.TickInfo{LiquidityGross: gross, LiquidityNet: net}
				entriesMu.Unlock()
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return clp.NewSyntheticSnapshot(key, sqrtPriceX96, tick, liquidity), nil
	}

	return &clp.Snapshot{
		Key:          key,
		SqrtPriceX96: sqrtPriceX96,
		Tick:         tick,
		Liquidity:    liquidity,
		Ticks:        clp.NewTickTable(entries),
	}, nil
}
