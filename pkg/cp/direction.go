package cp

// Direction selects which reserve is being sold, mirroring pkg/clp's
// sum-type convention: never inferred from token addresses.
type Direction int

const (
	// ZeroForOne sells token0 (reserve0 grows, reserve1 shrinks).
	ZeroForOne Direction = iota
	// OneForZero sells token1 (reserve1 grows, reserve0 shrinks).
	OneForZero
)

func (d Direction) String() string {
	if d == ZeroForOne {
		return "ZeroForOne"
	}
	return "OneForZero"
}
