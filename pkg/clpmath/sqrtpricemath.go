package clpmath

import (
	"errors"
	"math/big"
)

// Q96 is 2^96, the fixed-point scale of a Q64.96 sqrt price.
var Q96 = new(big.Int).Lsh(big.NewInt(1), 96)

// ErrNonPositiveAmount is returned where a caller-supplied amount must be
// strictly positive to produce a meaningful result.
var ErrNonPositiveAmount = errors.New("clpmath: non-positive amount")

// mulDiv returns floor(a*b/c) into a freshly allocated big.Int.
func mulDiv(a, b, c *big.Int) *big.Int {
	num := new(big.Int).Mul(a, b)
	return num.Div(num, c)
}

// mulDivRoundingUp returns ceil(a*b/c).
func mulDivRoundingUp(a, b, c *big.Int) *big.Int {
	num := new(big.Int).Mul(a, b)
	q, r := new(big.Int), new(big.Int)
	q.DivMod(num, c, r)
	if r.Sign() > 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}

// divRoundingUp returns ceil(a/b).
func divRoundingUp(a, b *big.Int) *big.Int {
	q, r := new(big.Int), new(big.Int)
	q.DivMod(a, b, r)
	if r.Sign() > 0 {
		q.Add(q, big.NewInt(1))
	}
	return q
}

// GetAmount0Delta returns the amount of token0 required to move the price
// from sqrtRatioAX96 to sqrtRatioBX96 (order-independent) at the given
// liquidity, rounded up or down per roundUp.
//
//	roundUp:   ceil( ceil( (L<<96)*(sb-sa) / sb ) / sa )
//	!roundUp: floor( floor( (L<<96)*(sb-sa) / sb ) / sa )
//
// Returns 0 when liquidity is 0 or the two ratios are equal.
func GetAmount0Delta(sqrtRatioAX96, sqrtRatioBX96, liquidity *big.Int, roundUp bool) *big.Int {
	sa, sb := sqrtRatioAX96, sqrtRatioBX96
	if sa.Cmp(sb) > 0 {
		sa, sb = sb, sa
	}
	if liquidity.Sign() == 0 || sa.Cmp(sb) == 0 {
		return big.NewInt(0)
	}

	numerator1 := new(big.Int).Lsh(liquidity, 96)
	numerator2 := new(big.Int).Sub(sb, sa)

	if roundUp {
		return divRoundingUp(mulDivRoundingUp(numerator1, numerator2, sb), sa)
	}
	inner := mulDiv(numerator1, numerator2, sb)
	return inner.Div(inner, sa)
}

// GetAmount1Delta returns the amount of token1 required to move the price
// from sqrtRatioAX96 to sqrtRatioBX96 (order-independent) at the given
// liquidity: roundUp ? ceil(L*(sb-sa)/Q96) : floor(L*(sb-sa)/Q96).
func GetAmount1Delta(sqrtRatioAX96, sqrtRatioBX96, liquidity *big.Int, roundUp bool) *big.Int {
	sa, sb := sqrtRatioAX96, sqrtRatioBX96
	if sa.Cmp(sb) > 0 {
		sa, sb = sb, sa
	}
	if liquidity.Sign() == 0 || sa.Cmp(sb) == 0 {
		return big.NewInt(0)
	}

	diff := new(big.Int).Sub(sb, sa)
	if roundUp {
		return mulDivRoundingUp(liquidity, diff, Q96)
	}
	return mulDiv(liquidity, diff, Q96)
}

// GetNextSqrtPriceFromInput computes the sqrt price reached after adding
// amountIn (post-fee) of the input token at the given liquidity.
func GetNextSqrtPriceFromInput(sqrtPX96, liquidity, amountIn *big.Int, zeroForOne bool) (*big.Int, error) {
	if sqrtPX96.Sign() <= 0 || liquidity.Sign() <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if zeroForOne {
		return nextSqrtPriceFromAmount0RoundingUp(sqrtPX96, liquidity, amountIn)
	}
	return nextSqrtPriceFromAmount1RoundingDown(sqrtPX96, liquidity, amountIn), nil
}

// GetNextSqrtPriceFromOutput computes the sqrt price reached after removing
// amountOut of the output token at the given liquidity.
func GetNextSqrtPriceFromOutput(sqrtPX96, liquidity, amountOut *big.Int, zeroForOne bool) (*big.Int, error) {
	if sqrtPX96.Sign() <= 0 || liquidity.Sign() <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if zeroForOne {
		return nextSqrtPriceFromAmount1RoundingDownSub(sqrtPX96, liquidity, amountOut)
	}
	return nextSqrtPriceFromAmount0RoundingUpSub(sqrtPX96, liquidity, amountOut)
}

// zeroForOne exact-in: sqrtQ = ceil( (L<<96)*sqrtP / ((L<<96) + amount*sqrtP) ).
func nextSqrtPriceFromAmount0RoundingUp(sqrtPX96, liquidity, amount *big.Int) (*big.Int, error) {
	if amount.Sign() == 0 {
		return new(big.Int).Set(sqrtPX96), nil
	}
	numerator1 := new(big.Int).Lsh(liquidity, 96)
	product := new(big.Int).Mul(amount, sqrtPX96)
	denominator := new(big.Int).Add(numerator1, product)
	if denominator.Sign() <= 0 {
		return nil, errors.New("clpmath: sqrt price overflow")
	}
	return mulDivRoundingUp(numerator1, sqrtPX96, denominator), nil
}

// oneForZero exact-in: sqrtQ = sqrtP + floor(amount*Q96/L).
func nextSqrtPriceFromAmount1RoundingDown(sqrtPX96, liquidity, amount *big.Int) *big.Int {
	quotient := mulDiv(amount, Q96, liquidity)
	return new(big.Int).Add(sqrtPX96, quotient)
}

// zeroForOne exact-out (removing token1): sqrtQ = sqrtP - ceil(amount*Q96/L).
func nextSqrtPriceFromAmount1RoundingDownSub(sqrtPX96, liquidity, amount *big.Int) (*big.Int, error) {
	quotient := mulDivRoundingUp(amount, Q96, liquidity)
	if sqrtPX96.Cmp(quotient) <= 0 {
		return nil, errors.New("clpmath: sqrt price underflow")
	}
	return new(big.Int).Sub(sqrtPX96, quotient), nil
}

// oneForZero exact-out (removing token0): sqrtQ = ceil( (L<<96)*sqrtP / ((L<<96) - amount*sqrtP) ).
func nextSqrtPriceFromAmount0RoundingUpSub(sqrtPX96, liquidity, amount *big.Int) (*big.Int, error) {
	numerator1 := new(big.Int).Lsh(liquidity, 96)
	product := new(big.Int).Mul(amount, sqrtPX96)
	if numerator1.Cmp(product) <= 0 {
		return nil, errors.New("clpmath: sqrt price underflow")
	}
	denominator := new(big.Int).Sub(numerator1, product)
	return mulDivRoundingUp(numerator1, sqrtPX96, denominator), nil
}
