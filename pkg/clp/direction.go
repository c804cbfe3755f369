package clp

// Direction is a sum type over the two swap orientations of a pool. It is
// computed once per snapshot from the caller's token-orientation flag and
// is never re-derived from currency addresses.
type Direction int

const (
	// ZeroForOne sells currency0 for currency1; price moves down.
	ZeroForOne Direction = iota
	// OneForZero sells currency1 for currency0; price moves up.
	OneForZero
)

func (d Direction) String() string {
	if d == ZeroForOne {
		return "ZeroForOne"
	}
	return "OneForZero"
}
