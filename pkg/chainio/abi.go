// Package chainio implements the collab package's chain-reader, gas
// oracle, bridge fee oracle, and reference price source interfaces
// against live RPC/HTTP endpoints, using go-ethereum's abi encoder for
// contract-call packing, matching the chain-reader contracts named by
// ABI in the engine's external interface.
package chainio

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

func mustType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(fmt.Sprintf("chainio: bad abi type %q: %v", t, err))
	}
	return typ
}

func methodSelector(signature string) []byte {
	return crypto.Keccak256([]byte(signature))[:4]
}

// pack builds calldata for a method signature and return-type list,
// packing values using go-ethereum's abi argument encoder.
func pack(signature string, argTypes []string, values ...interface{}) ([]byte, error) {
	args := make(abi.Arguments, len(argTypes))
	for i, t := range argTypes {
		args[i] = abi.Argument{Type: mustType(t)}
	}
	packed, err := args.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("chainio: pack %s: %w", signature, err)
	}
	return append(methodSelector(signature), packed...), nil
}

// unpack decodes return data against a type list.
func unpack(returnTypes []string, data []byte) ([]interface{}, error) {
	args := make(abi.Arguments, len(returnTypes))
	for i, t := range returnTypes {
		args[i] = abi.Argument{Type: mustType(t)}
	}
	values, err := args.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("chainio: unpack: %w", err)
	}
	return values, nil
}

// call performs a read-only eth_call against to, returning the raw
// return data.
func call(ctx context.Context, ethc *ethclient.Client, to common.Address, data []byte) ([]byte, error) {
	return ethc.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
}
