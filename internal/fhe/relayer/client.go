// Package relayer — HTTP-клиент FHE relayer: шифрование входов и публичная расшифровка.
package relayer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"sync/atomic"

	"CreditScoreZ/internal/fhe"
	"CreditScoreZ/internal/ledger"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Client реализует fhe.Service поверх HTTP JSON API relayer.
type Client struct {
	baseURL     string
	http        *http.Client
	initialized atomic.Bool
}

var _ fhe.Service = (*Client)(nil)

// New создаёт клиента. httpClient может быть nil — тогда используется http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type inputProofRequest struct {
	ContractAddress string `json:"contractAddress"`
	UserAddress     string `json:"userAddress"`
	Value           uint32 `json:"value"`
	Bits            int    `json:"bits"`
}

type inputProofResponse struct {
	Handle     common.Hash   `json:"handle"`
	InputProof hexutil.Bytes `json:"inputProof"`
}

type publicDecryptRequest struct {
	CiphertextHandles []common.Hash `json:"ciphertextHandles"`
	ContractAddress   string        `json:"contractAddress"`
}

type publicDecryptResponse struct {
	ClearValues           map[string]string `json:"clearValues"`
	AbiEncodedClearValues hexutil.Bytes     `json:"abiEncodedClearValues"`
	DecryptionProof       hexutil.Bytes     `json:"decryptionProof"`
}

// Initialize проверяет доступность relayer (загрузка публичного ключа).
func (c *Client) Initialize(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/keyurl", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("relayer: keyurl: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("relayer: keyurl: status %d", resp.StatusCode)
	}
	c.initialized.Store(true)
	return nil
}

// Encrypt запрашивает у relayer зашифрованный вход euint32 и доказательство.
func (c *Client) Encrypt(ctx context.Context, contract, account string, value uint32) (fhe.EncryptedInput, error) {
	if !c.initialized.Load() {
		return fhe.EncryptedInput{}, fhe.ErrNotInitialized
	}
	var out inputProofResponse
	err := c.postJSON(ctx, "/v1/input-proof", inputProofRequest{
		ContractAddress: contract,
		UserAddress:     account,
		Value:           value,
		Bits:            32,
	}, &out)
	if err != nil {
		return fhe.EncryptedInput{}, err
	}
	if len(out.InputProof) == 0 {
		return fhe.EncryptedInput{}, errors.New("relayer: empty input proof")
	}
	return fhe.EncryptedInput{Handle: out.Handle, Proof: out.InputProof}, nil
}

// PublicDecrypt запрашивает расшифровку handles с доказательством.
func (c *Client) PublicDecrypt(ctx context.Context, handles []ledger.Handle, contract string) (fhe.DecryptionResult, error) {
	if !c.initialized.Load() {
		return fhe.DecryptionResult{}, fhe.ErrNotInitialized
	}
	var out publicDecryptResponse
	if err := c.postJSON(ctx, "/v1/public-decrypt", publicDecryptRequest{
		CiphertextHandles: handles,
		ContractAddress:   contract,
	}, &out); err != nil {
		return fhe.DecryptionResult{}, err
	}
	clear := make(map[ledger.Handle]*big.Int, len(out.ClearValues))
	for k, v := range out.ClearValues {
		n, ok := new(big.Int).SetString(v, 0)
		if !ok {
			return fhe.DecryptionResult{}, fmt.Errorf("relayer: bad clear value %q for %s", v, k)
		}
		clear[common.HexToHash(k)] = n
	}
	return fhe.DecryptionResult{
		ClearValues:           clear,
		AbiEncodedClearValues: out.AbiEncodedClearValues,
		DecryptionProof:       out.DecryptionProof,
	}, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("relayer %s: %w", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("relayer %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("relayer %s: decode: %w", path, err)
	}
	return nil
}
