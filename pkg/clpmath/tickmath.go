// Package clpmath implements the fixed-point tick and swap-step arithmetic
// used by a tick-quantized concentrated-liquidity pool. It is pure integer
// math with no I/O: every exported function is deterministic and
// allocation-light, matching the canonical Uniswap v3/v4 reference port.
package clpmath

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
)

// MinTick and MaxTick bound the signed tick range a pool may express.
const (
	MinTick = -887272
	MaxTick = 887272
)

var (
	// ErrTickOutOfBounds is returned when a tick falls outside [MinTick, MaxTick].
	ErrTickOutOfBounds = errors.New("clpmath: tick out of bounds")
	// ErrSqrtRatioOutOfBounds is returned when a sqrt price falls outside the valid range.
	ErrSqrtRatioOutOfBounds = errors.New("clpmath: sqrt ratio out of bounds")

	// MinSqrtRatio and MaxSqrtRatio are GetSqrtRatioAtTick(MinTick) and
	// GetSqrtRatioAtTick(MaxTick), reproduced as constants to bound
	// GetTickAtSqrtRatio's input without recomputing the extremes.
	MinSqrtRatio, _ = new(big.Int).SetString("4295128739", 10)
	MaxSqrtRatio, _ = new(big.Int).SetString("1461446703485210103287273052203988822378723970342", 10)

	one        = uint256.NewInt(1)
	maxUint256 = uint256.MustFromBig(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)))

	// ratioConstants holds the canonical Uniswap tick-math magic constants
	// in UQ128.128: index 0 is 1/sqrt(1.0001) (the seed for an odd
	// |tick|), index 1 is 1.0 (the seed for an even |tick|), index i in
	// [2,20] is 1/sqrt(1.0001^(2^(i-1))) (applied when bit i-1 of |tick| is
	// set), and index 21 is the rounding mask.
	ratioConstants = [22]*uint256.Int{
		uint256.MustFromBig(fromHex("0xfffcb933bd6fad37aa2d162d1a594001")),
		uint256.MustFromBig(fromHex("0x100000000000000000000000000000000")),
		uint256.MustFromBig(fromHex("0xfff97272373d413259a46990580e213a")),
		uint256.MustFromBig(fromHex("0xfff2e50f5f656932ef12357cf3c7fdcc")),
		uint256.MustFromBig(fromHex("0xffe5caca7e10e4e61c3624eaa0941cd0")),
		uint256.MustFromBig(fromHex("0xffcb9843d60f6159c9db58835c926644")),
		uint256.MustFromBig(fromHex("0xff973b41fa98c081472e6896dfb254c0")),
		uint256.MustFromBig(fromHex("0xff2ea16466c96a3843ec78b326b52861")),
		uint256.MustFromBig(fromHex("0xfe5dee046a99a2a811c461f1969c3053")),
		uint256.MustFromBig(fromHex("0xfcbe86c7900a88aedcffc83b479aa3a4")),
		uint256.MustFromBig(fromHex("0xf987a7253ac413176f2b074cf7815e54")),
		uint256.MustFromBig(fromHex("0xf3392b0822b70005940c7a398e4b70f3")),
		uint256.MustFromBig(fromHex("0xe7159475a2c29b7443b29c7fa6e889d9")),
		uint256.MustFromBig(fromHex("0xd097f3bdfd2022b8845ad8f792aa5825")),
		uint256.MustFromBig(fromHex("0xa9f746462d870fdf8a65dc1f90e061e5")),
		uint256.MustFromBig(fromHex("0x70d869a156d2a1b890bb3df62baf32f7")),
		uint256.MustFromBig(fromHex("0x31be135f97d08fd981231505542fcfa6")),
		uint256.MustFromBig(fromHex("0x9aa508b5b7a84e1c677de54f3e99bc9")),
		uint256.MustFromBig(fromHex("0x5d6af8dedb81196699c329225ee604")),
		uint256.MustFromBig(fromHex("0x2216e584f5fa1ea926041bedfe98")),
		uint256.MustFromBig(fromHex("0x48a170391f7dc42444e8fa2")),
		uint256.MustFromBig(fromHex("0xffffffff")),
	}
)

func fromHex(s string) *big.Int {
	n, _ := new(big.Int).SetString(s[2:], 16)
	return n
}

// GetSqrtRatioAtTick returns sqrt(1.0001^tick) as a Q64.96 fixed-point
// value. tick must lie in [MinTick, MaxTick].
func GetSqrtRatioAtTick(tick int32) (*big.Int, error) {
	if tick < MinTick || tick > MaxTick {
		return nil, ErrTickOutOfBounds
	}

	absTick := tick
	if absTick < 0 {
		absTick = -absTick
	}

	ratio := new(uint256.Int)
	if absTick&0x1 != 0 {
		ratio.Set(ratioConstants[0])
	} else {
		ratio.Set(ratioConstants[1])
	}

	for i := 2; i < 21; i++ {
		if absTick&(1<<(i-1)) != 0 {
			ratio.Mul(ratio, ratioConstants[i]).Rsh(ratio, 128)
		}
	}

	if tick > 0 {
		ratio.Div(maxUint256, ratio)
	}

	rem := new(uint256.Int).And(ratio, ratioConstants[21])
	ratio.Rsh(ratio, 32)
	if rem.Sign() > 0 {
		ratio.Add(ratio, one)
	}

	return ratio.ToBig(), nil
}

// GetTickAtSqrtRatio returns the greatest tick t such that
// GetSqrtRatioAtTick(t) <= sqrtPriceX96, found by monotone binary search
// since GetSqrtRatioAtTick is strictly increasing in tick.
func GetTickAtSqrtRatio(sqrtPriceX96 *big.Int) (int32, error) {
	if sqrtPriceX96.Cmp(MinSqrtRatio) < 0 || sqrtPriceX96.Cmp(MaxSqrtRatio) >= 0 {
		return 0, ErrSqrtRatioOutOfBounds
	}

	low, high := int32(MinTick), int32(MaxTick)
	var tick int32

	for low <= high {
		mid := low + (high-low)/2
		ratio, err := GetSqrtRatioAtTick(mid)
		if err != nil {
			return 0, err
		}
		if ratio.Cmp(sqrtPriceX96) <= 0 {
			tick = mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}

	return tick, nil
}
