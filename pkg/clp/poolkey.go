package clp

import (
	"fmt"
	"math/big"

	"github.com/daoleno/uniswapv3-sdk/constants"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// PoolKey identifies a concentrated-liquidity pool: an ordered pair of
// 20-byte currency identifiers, a fee in parts-per-million, a signed tick
// spacing, and an opaque 20-byte hook address.
type PoolKey struct {
	Currency0   common.Address
	Currency1   common.Address
	Fee         uint32 // parts-per-million, fits uint24
	TickSpacing int32  // fits int24
	Hooks       common.Address
}

var poolKeyArgs = mustPoolKeyArgs()

func mustPoolKeyArgs() abi.Arguments {
	addressTy, err := abi.NewType("address", "", nil)
	if err != nil {
		panic(err)
	}
	uint24Ty, err := abi.NewType("uint24", "", nil)
	if err != nil {
		panic(err)
	}
	int24Ty, err := abi.NewType("int24", "", nil)
	if err != nil {
		panic(err)
	}
	return abi.Arguments{
		{Type: addressTy},
		{Type: addressTy},
		{Type: uint24Ty},
		{Type: int24Ty},
		{Type: addressTy},
	}
}

// Hash returns the 32-byte pool identifier: keccak256 of the ABI encoding
// of (currency0, currency1, fee, tickSpacing, hooks).
func (k PoolKey) Hash() ([32]byte, error) {
	packed, err := poolKeyArgs.Pack(
		k.Currency0,
		k.Currency1,
		big.NewInt(int64(k.Fee)),
		big.NewInt(int64(k.TickSpacing)),
		k.Hooks,
	)
	if err != nil {
		return [32]byte{}, err
	}
	return crypto.Keccak256Hash(packed), nil
}

// ValidateFeeTier checks that the key's fee and tick spacing form one of
// the canonical Uniswap fee tiers (the hook-free, vanilla-fee case every
// v4 pool with the zero hooks address falls back to). A pool deployed
// with a custom tick spacing via hooks is exempt: hooks own that pairing.
func (k PoolKey) ValidateFeeTier() error {
	if k.Hooks != (common.Address{}) {
		return nil
	}
	want, ok := constants.TickSpacings[constants.FeeAmount(k.Fee)]
	if !ok {
		return fmt.Errorf("clp: fee %d is not a recognized fee tier", k.Fee)
	}
	if int32(want) != k.TickSpacing {
		return fmt.Errorf("clp: fee %d expects tick spacing %d, got %d", k.Fee, want, k.TickSpacing)
	}
	return nil
}
