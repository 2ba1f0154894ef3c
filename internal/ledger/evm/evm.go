// Package evm — доступ к развёрнутому контракту кредитных профилей через JSON-RPC.
package evm

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"CreditScoreZ/internal/ledger"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/holiman/uint256"
)

// Backend — то, что нужно контракту от RPC-клиента. *ethclient.Client подходит.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Contract реализует ledger.Reader, а при наличии ключа и ledger.Writer.
type Contract struct {
	address  common.Address
	backend  Backend
	bound    *bind.BoundContract
	transact *bind.TransactOpts
}

var (
	_ ledger.Reader = (*Contract)(nil)
	_ ledger.Writer = (*Contract)(nil)
)

// ErrNoSigner — запись без ключа подписанта.
var ErrNoSigner = errors.New("evm: signer key is not configured")

// Dial подключается к узлу по rpcURL.
func Dial(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	return ethclient.DialContext(ctx, rpcURL)
}

// New привязывает контракт по адресу. key может быть nil — тогда доступно только чтение.
func New(backend Backend, address string, chainID *big.Int, key *ecdsa.PrivateKey) (*Contract, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("evm: invalid contract address %q", address)
	}
	parsed, err := abi.JSON(strings.NewReader(contractABI))
	if err != nil {
		return nil, fmt.Errorf("evm: parse abi: %w", err)
	}
	addr := common.HexToAddress(address)
	c := &Contract{
		address: addr,
		backend: backend,
		bound:   bind.NewBoundContract(addr, parsed, backend, backend, backend),
	}
	if key != nil {
		opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
		if err != nil {
			return nil, fmt.Errorf("evm: transactor: %w", err)
		}
		c.transact = opts
	}
	return c, nil
}

// ParseKey разбирает hex-ключ подписанта (с префиксом 0x или без).
func ParseKey(hexKey string) (*ecdsa.PrivateKey, error) {
	return crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
}

func (c *Contract) Address() string { return c.address.Hex() }

func (c *Contract) Account() string {
	if c.transact == nil {
		return ""
	}
	return c.transact.From.Hex()
}

func (c *Contract) GetAllBusinessIds(ctx context.Context) ([]string, error) {
	var out []interface{}
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, "getAllBusinessIds"); err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("evm: getAllBusinessIds: unexpected output %d", len(out))
	}
	ids, ok := out[0].([]string)
	if !ok {
		return nil, fmt.Errorf("evm: getAllBusinessIds: unexpected type %T", out[0])
	}
	return ids, nil
}

func (c *Contract) GetBusinessData(ctx context.Context, id string) (ledger.BusinessData, error) {
	var out []interface{}
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, "getBusinessData", id); err != nil {
		return ledger.BusinessData{}, err
	}
	return decodeBusinessData(out)
}

func (c *Contract) GetEncryptedValue(ctx context.Context, id string) (ledger.Handle, error) {
	var out []interface{}
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, "getEncryptedValue", id); err != nil {
		return ledger.Handle{}, err
	}
	if len(out) != 1 {
		return ledger.Handle{}, fmt.Errorf("evm: getEncryptedValue: unexpected output %d", len(out))
	}
	raw, ok := out[0].([32]byte)
	if !ok {
		return ledger.Handle{}, fmt.Errorf("evm: getEncryptedValue: unexpected type %T", out[0])
	}
	return ledger.Handle(raw), nil
}

func (c *Contract) CreateBusinessData(ctx context.Context, in ledger.CreateInput) (ledger.Tx, error) {
	return c.send(ctx, "createBusinessData",
		in.ID,
		in.Name,
		[32]byte(in.EncryptedValue),
		in.Proof,
		new(big.Int).SetUint64(uint64(in.PublicValue1)),
		new(big.Int).SetUint64(uint64(in.PublicValue2)),
		in.Description,
	)
}

func (c *Contract) VerifyDecryption(ctx context.Context, id string, clearValues, proof []byte) (ledger.Tx, error) {
	return c.send(ctx, "verifyDecryption", id, clearValues, proof)
}

func (c *Contract) send(ctx context.Context, method string, params ...interface{}) (ledger.Tx, error) {
	if c.transact == nil {
		return nil, ErrNoSigner
	}
	opts := *c.transact
	opts.Context = ctx
	tx, err := c.bound.Transact(&opts, method, params...)
	if err != nil {
		return nil, fmt.Errorf("evm: %s: %w", method, err)
	}
	return &pendingTx{tx: tx, backend: c.backend}, nil
}

type pendingTx struct {
	tx      *types.Transaction
	backend bind.DeployBackend
}

func (p *pendingTx) Hash() string { return p.tx.Hash().Hex() }

// Wait ждёт включения в блок; status 0 → ledger.ErrReverted.
func (p *pendingTx) Wait(ctx context.Context) error {
	receipt, err := bind.WaitMined(ctx, p.backend, p.tx)
	if err != nil {
		return err
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return fmt.Errorf("%w: %s", ledger.ErrReverted, p.Hash())
	}
	return nil
}

func decodeBusinessData(out []interface{}) (ledger.BusinessData, error) {
	if len(out) != 7 {
		return ledger.BusinessData{}, fmt.Errorf("evm: getBusinessData: unexpected output %d", len(out))
	}
	name, ok1 := out[0].(string)
	ts, ok2 := out[1].(*big.Int)
	creator, ok3 := out[2].(common.Address)
	pv1, ok4 := out[3].(*big.Int)
	pv2, ok5 := out[4].(*big.Int)
	verified, ok6 := out[5].(bool)
	decrypted, ok7 := out[6].(uint32)
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6 && ok7) {
		return ledger.BusinessData{}, errors.New("evm: getBusinessData: unexpected output types")
	}
	v1, err := toUint32(pv1)
	if err != nil {
		return ledger.BusinessData{}, fmt.Errorf("evm: publicValue1: %w", err)
	}
	v2, err := toUint32(pv2)
	if err != nil {
		return ledger.BusinessData{}, fmt.Errorf("evm: publicValue2: %w", err)
	}
	if !ts.IsInt64() {
		return ledger.BusinessData{}, errors.New("evm: timestamp overflows int64")
	}
	return ledger.BusinessData{
		Name:           name,
		Timestamp:      ts.Int64(),
		Creator:        creator.Hex(),
		PublicValue1:   v1,
		PublicValue2:   v2,
		IsVerified:     verified,
		DecryptedValue: decrypted,
	}, nil
}

// toUint32 сужает uint256 из контракта до uint32.
func toUint32(v *big.Int) (uint32, error) {
	u, overflow := uint256.FromBig(v)
	if overflow || v.Sign() < 0 || !u.IsUint64() || u.Uint64() > uint64(^uint32(0)) {
		return 0, fmt.Errorf("value %s out of uint32 range", v)
	}
	return uint32(u.Uint64()), nil
}
