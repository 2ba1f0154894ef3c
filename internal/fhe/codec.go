package fhe

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var uint256Type, _ = abi.NewType("uint256", "", nil)

// EncodeClearValues ABI-кодирует расшифрованные значения как последовательность uint256
// (в порядке handles), в том же формате, который ожидает verifyDecryption.
func EncodeClearValues(values []*big.Int) ([]byte, error) {
	args := make(abi.Arguments, len(values))
	params := make([]any, len(values))
	for i, v := range values {
		if v == nil {
			return nil, errors.New("nil clear value")
		}
		args[i] = abi.Argument{Type: uint256Type}
		params[i] = v
	}
	return args.Pack(params...)
}

// DecodeClearValues разбирает результат EncodeClearValues для n значений.
func DecodeClearValues(data []byte, n int) ([]*big.Int, error) {
	args := make(abi.Arguments, n)
	for i := range args {
		args[i] = abi.Argument{Type: uint256Type}
	}
	decoded, err := args.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("decode clear values: %w", err)
	}
	out := make([]*big.Int, 0, len(decoded))
	for _, d := range decoded {
		v, ok := d.(*big.Int)
		if !ok {
			return nil, fmt.Errorf("decode clear values: unexpected type %T", d)
		}
		out = append(out, v)
	}
	return out, nil
}
