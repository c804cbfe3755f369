package clpmath

import "math/big"

// FeeDenominator is the parts-per-million denominator fees are expressed in.
var FeeDenominator = big.NewInt(1_000_000)

// StepResult is the outcome of a single per-tick swap step.
type StepResult struct {
	SqrtRatioNextX96 *big.Int
	AmountIn         *big.Int // net input consumed by the step, excluding fee
	AmountOut        *big.Int
	FeeAmount        *big.Int
}

// ComputeSwapStep advances the price from sqrtRatioCurrentX96 toward
// sqrtRatioTargetX96 (clamped by the caller's price limit) at the given
// liquidity, consuming up to amountRemaining of gross input (positive) or
// delivering up to |amountRemaining| of output (negative), at fee feePpm
// (denominator 1_000_000). It mirrors Uniswap's SwapMath.computeSwapStep.
func ComputeSwapStep(
	sqrtRatioCurrentX96, sqrtRatioTargetX96, liquidity, amountRemaining, feePpm *big.Int,
) (StepResult, error) {
	zeroForOne := sqrtRatioCurrentX96.Cmp(sqrtRatioTargetX96) >= 0
	exactIn := amountRemaining.Sign() >= 0

	res := StepResult{
		AmountIn:  big.NewInt(0),
		AmountOut: big.NewInt(0),
		FeeAmount: big.NewInt(0),
	}

	if exactIn {
		feeComplement := new(big.Int).Sub(FeeDenominator, feePpm)
		amountRemainingLessFee := mulDiv(amountRemaining, feeComplement, FeeDenominator)

		var amountInToTarget *big.Int
		var err error
		if zeroForOne {
			amountInToTarget = GetAmount0Delta(sqrtRatioTargetX96, sqrtRatioCurrentX96, liquidity, true)
		} else {
			amountInToTarget = GetAmount1Delta(sqrtRatioCurrentX96, sqrtRatioTargetX96, liquidity, true)
		}
		res.AmountIn = amountInToTarget

		if amountRemainingLessFee.Cmp(amountInToTarget) >= 0 {
			res.SqrtRatioNextX96 = new(big.Int).Set(sqrtRatioTargetX96)
		} else {
			res.SqrtRatioNextX96, err = GetNextSqrtPriceFromInput(sqrtRatioCurrentX96, liquidity, amountRemainingLessFee, zeroForOne)
			if err != nil {
				return StepResult{}, err
			}
		}
	} else {
		amountRemainingAbs := new(big.Int).Neg(amountRemaining)

		var amountOutToTarget *big.Int
		var err error
		if zeroForOne {
			amountOutToTarget = GetAmount1Delta(sqrtRatioTargetX96, sqrtRatioCurrentX96, liquidity, false)
		} else {
			amountOutToTarget = GetAmount0Delta(sqrtRatioCurrentX96, sqrtRatioTargetX96, liquidity, false)
		}
		res.AmountOut = amountOutToTarget

		if amountRemainingAbs.Cmp(amountOutToTarget) >= 0 {
			res.SqrtRatioNextX96 = new(big.Int).Set(sqrtRatioTargetX96)
		} else {
			res.SqrtRatioNextX96, err = GetNextSqrtPriceFromOutput(sqrtRatioCurrentX96, liquidity, amountRemainingAbs, zeroForOne)
			if err != nil {
				return StepResult{}, err
			}
		}
	}

	reachedTarget := sqrtRatioTargetX96.Cmp(res.SqrtRatioNextX96) == 0

	if zeroForOne {
		if !(reachedTarget && exactIn) {
			res.AmountIn = GetAmount0Delta(res.SqrtRatioNextX96, sqrtRatioCurrentX96, liquidity, true)
		}
		if !(reachedTarget && !exactIn) {
			res.AmountOut = GetAmount1Delta(res.SqrtRatioNextX96, sqrtRatioCurrentX96, liquidity, false)
		}
	} else {
		if !(reachedTarget && exactIn) {
			res.AmountIn = GetAmount1Delta(sqrtRatioCurrentX96, res.SqrtRatioNextX96, liquidity, true)
		}
		if !(reachedTarget && !exactIn) {
			res.AmountOut = GetAmount0Delta(sqrtRatioCurrentX96, res.SqrtRatioNextX96, liquidity, false)
		}
	}

	if !exactIn {
		amountRemainingAbs := new(big.Int).Neg(amountRemaining)
		if res.AmountOut.Cmp(amountRemainingAbs) > 0 {
			res.AmountOut = new(big.Int).Set(amountRemainingAbs)
		}
	}

	if exactIn && res.SqrtRatioNextX96.Cmp(sqrtRatioTargetX96) != 0 {
		res.FeeAmount = new(big.Int).Sub(amountRemaining, res.AmountIn)
	} else {
		feeComplement := new(big.Int).Sub(FeeDenominator, feePpm)
		res.FeeAmount = mulDivRoundingUp(res.AmountIn, feePpm, feeComplement)
	}

	return res, nil
}
