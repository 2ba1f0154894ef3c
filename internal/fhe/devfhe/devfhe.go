// Package devfhe — локальная замена FHE-сервиса для dev-режима и тестов.
// Значения запечатываются XChaCha20-Poly1305, handle — keccak256 от шифртекста,
// доказательства — keccak256 с общим секретом. Это не FHE-схема, а заглушка
// с тем же контрактом, что и у настоящего relayer.
package devfhe

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sync"

	"CreditScoreZ/internal/fhe"
	"CreditScoreZ/internal/ledger"
	"CreditScoreZ/internal/model"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/chacha20poly1305"
)

var (
	// ErrUnknownHandle — handle не создавался этим сервисом.
	ErrUnknownHandle = errors.New("devfhe: unknown handle")
	// ErrInvalidProof — доказательство не сходится.
	ErrInvalidProof = errors.New("Invalid proof")
)

// Store — постоянное хранилище шифртекстов (repo.CiphertextRepository).
type Store interface {
	SaveCiphertext(ctx context.Context, c *model.DevCiphertext) error
	GetCiphertext(ctx context.Context, handle string) (*model.DevCiphertext, error)
}

// Option настраивает Service.
type Option func(*Service)

// WithStore сохраняет шифртексты в store и дочитывает их оттуда при промахе кэша.
func WithStore(store Store) Option {
	return func(s *Service) { s.store = store }
}

type sealed struct {
	nonce  []byte
	cipher []byte
	aad    []byte
}

// Service реализует fhe.Service и проверку доказательств для dev-леджера.
type Service struct {
	secret []byte
	aead   cipher.AEAD
	store  Store

	mu          sync.RWMutex
	initialized bool
	ciphertexts map[ledger.Handle]sealed
}

var _ fhe.Service = (*Service)(nil)

// New создаёт сервис; ключ шифрования выводится из secret.
func New(secret []byte, opts ...Option) (*Service, error) {
	if len(secret) == 0 {
		return nil, errors.New("devfhe: empty secret")
	}
	key := crypto.Keccak256(secret, []byte("devfhe-key"))
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	s := &Service{
		secret:      append([]byte(nil), secret...),
		aead:        aead,
		ciphertexts: make(map[ledger.Handle]sealed),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Initialize помечает сервис готовым.
func (s *Service) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()
	return nil
}

// Encrypt запечатывает value для пары (contract, account).
func (s *Service) Encrypt(ctx context.Context, contract, account string, value uint32) (fhe.EncryptedInput, error) {
	if err := s.ready(ctx); err != nil {
		return fhe.EncryptedInput{}, err
	}
	plain := make([]byte, 4)
	binary.BigEndian.PutUint32(plain, value)

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fhe.EncryptedInput{}, err
	}
	aad := bindingAAD(contract, account)
	ct := s.aead.Seal(nil, nonce, plain, aad)
	handle := common.BytesToHash(crypto.Keccak256(nonce, ct))

	if s.store != nil {
		err := s.store.SaveCiphertext(ctx, &model.DevCiphertext{Handle: handle.Hex(), Nonce: nonce, Cipher: ct, AAD: aad})
		if err != nil {
			return fhe.EncryptedInput{}, fmt.Errorf("devfhe: save ciphertext: %w", err)
		}
	}
	s.mu.Lock()
	s.ciphertexts[handle] = sealed{nonce: nonce, cipher: ct, aad: aad}
	s.mu.Unlock()

	return fhe.EncryptedInput{Handle: handle, Proof: s.inputProof(handle, contract, account)}, nil
}

// PublicDecrypt расшифровывает handles и возвращает значения с доказательством.
func (s *Service) PublicDecrypt(ctx context.Context, handles []ledger.Handle, contract string) (fhe.DecryptionResult, error) {
	if err := s.ready(ctx); err != nil {
		return fhe.DecryptionResult{}, err
	}
	if len(handles) == 0 {
		return fhe.DecryptionResult{}, errors.New("devfhe: no handles")
	}
	values := make([]*big.Int, 0, len(handles))
	clear := make(map[ledger.Handle]*big.Int, len(handles))
	for _, h := range handles {
		sl, err := s.lookup(ctx, h)
		if err != nil {
			return fhe.DecryptionResult{}, err
		}
		plain, err := s.aead.Open(nil, sl.nonce, sl.cipher, sl.aad)
		if err != nil {
			return fhe.DecryptionResult{}, fmt.Errorf("devfhe: open %s: %w", h.Hex(), err)
		}
		v := new(big.Int).SetUint64(uint64(binary.BigEndian.Uint32(plain)))
		values = append(values, v)
		clear[h] = v
	}
	encoded, err := fhe.EncodeClearValues(values)
	if err != nil {
		return fhe.DecryptionResult{}, err
	}
	return fhe.DecryptionResult{
		ClearValues:           clear,
		AbiEncodedClearValues: encoded,
		DecryptionProof:       s.decryptionProof(handles, encoded),
	}, nil
}

func (s *Service) lookup(ctx context.Context, h ledger.Handle) (sealed, error) {
	s.mu.RLock()
	sl, ok := s.ciphertexts[h]
	s.mu.RUnlock()
	if ok {
		return sl, nil
	}
	if s.store == nil {
		return sealed{}, fmt.Errorf("%w: %s", ErrUnknownHandle, h.Hex())
	}
	c, err := s.store.GetCiphertext(ctx, h.Hex())
	if err != nil {
		return sealed{}, fmt.Errorf("%w: %s: %v", ErrUnknownHandle, h.Hex(), err)
	}
	sl = sealed{nonce: c.Nonce, cipher: c.Cipher, aad: c.AAD}
	s.mu.Lock()
	s.ciphertexts[h] = sl
	s.mu.Unlock()
	return sl, nil
}

// VerifyInput проверяет доказательство входного значения.
func (s *Service) VerifyInput(handle ledger.Handle, contract, account string, proof []byte) error {
	if subtle.ConstantTimeCompare(proof, s.inputProof(handle, contract, account)) != 1 {
		return ErrInvalidProof
	}
	return nil
}

// VerifyDecryption проверяет доказательство расшифровки.
func (s *Service) VerifyDecryption(handles []ledger.Handle, clearValues, proof []byte) error {
	if subtle.ConstantTimeCompare(proof, s.decryptionProof(handles, clearValues)) != 1 {
		return ErrInvalidProof
	}
	return nil
}

func (s *Service) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.initialized {
		return fhe.ErrNotInitialized
	}
	return nil
}

func (s *Service) inputProof(handle ledger.Handle, contract, account string) []byte {
	return crypto.Keccak256(s.secret, []byte("input"), handle.Bytes(), bindingAAD(contract, account))
}

func (s *Service) decryptionProof(handles []ledger.Handle, clearValues []byte) []byte {
	parts := [][]byte{s.secret, []byte("decrypt")}
	for _, h := range handles {
		parts = append(parts, h.Bytes())
	}
	parts = append(parts, clearValues)
	return crypto.Keccak256(parts...)
}

// bindingAAD нормализует адреса, чтобы регистр hex не влиял на доказательства.
func bindingAAD(contract, account string) []byte {
	out := make([]byte, 0, 2*common.AddressLength)
	out = append(out, common.HexToAddress(contract).Bytes()...)
	return append(out, common.HexToAddress(account).Bytes()...)
}
