package service

import (
	"context"
	"testing"
	"time"

	"CreditScoreZ/internal/fhe"
	"CreditScoreZ/internal/ledger"
	"CreditScoreZ/internal/state"
	"CreditScoreZ/internal/status"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// мок для ledger.Reader
type mockReader struct{ mock.Mock }

func (m *mockReader) Address() string {
	return m.Called().String(0)
}

func (m *mockReader) GetAllBusinessIds(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if ids, ok := args.Get(0).([]string); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReader) GetBusinessData(ctx context.Context, id string) (ledger.BusinessData, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ledger.BusinessData), args.Error(1)
}

func (m *mockReader) GetEncryptedValue(ctx context.Context, id string) (ledger.Handle, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ledger.Handle), args.Error(1)
}

// мок для ledger.Writer
type mockWriter struct{ mock.Mock }

func (m *mockWriter) Account() string {
	return m.Called().String(0)
}

func (m *mockWriter) CreateBusinessData(ctx context.Context, in ledger.CreateInput) (ledger.Tx, error) {
	args := m.Called(ctx, in)
	if tx, ok := args.Get(0).(ledger.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWriter) VerifyDecryption(ctx context.Context, id string, clearValues, proof []byte) (ledger.Tx, error) {
	args := m.Called(ctx, id, clearValues, proof)
	if tx, ok := args.Get(0).(ledger.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

// мок для fhe.Service
type mockFHE struct{ mock.Mock }

func (m *mockFHE) Initialize(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockFHE) Encrypt(ctx context.Context, contract, account string, value uint32) (fhe.EncryptedInput, error) {
	args := m.Called(ctx, contract, account, value)
	return args.Get(0).(fhe.EncryptedInput), args.Error(1)
}

func (m *mockFHE) PublicDecrypt(ctx context.Context, handles []ledger.Handle, contract string) (fhe.DecryptionResult, error) {
	args := m.Called(ctx, handles, contract)
	return args.Get(0).(fhe.DecryptionResult), args.Error(1)
}

// подтверждённая транзакция
type okTx struct{ hash string }

func (t okTx) Hash() string                 { return t.hash }
func (t okTx) Wait(ctx context.Context) error { return nil }

// транзакция, которая откатилась при ожидании
type failedTx struct{ err error }

func (t failedTx) Hash() string                 { return "0xfailed" }
func (t failedTx) Wait(ctx context.Context) error { return t.err }

var (
	_ ledger.Reader = (*mockReader)(nil)
	_ ledger.Writer = (*mockWriter)(nil)
	_ fhe.Service   = (*mockFHE)(nil)
)

const (
	testAccount  = "0x1111111111111111111111111111111111111111"
	testContract = "0x2222222222222222222222222222222222222222"
)

type fixture struct {
	d      *Dashboard
	reader *mockReader
	writer *mockWriter
	fhe    *mockFHE
	status *status.Reporter
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		reader: new(mockReader),
		writer: new(mockWriter),
		fhe:    new(mockFHE),
		status: status.NewReporter(nil),
		now:    time.UnixMilli(1_700_000_000_123),
	}
	t.Cleanup(f.status.Stop)
	f.reader.On("Address").Return(testContract).Maybe()
	f.writer.On("Account").Return(testAccount).Maybe()
	f.d = NewDashboard(Deps{
		Reader: f.reader,
		Writer: f.writer,
		FHE:    f.fhe,
		Store:  state.NewStore(),
		Status: f.status,
		Now:    func() time.Time { return f.now },
	})
	return f
}

// connect открывает шлюз; первая загрузка возвращает ids.
func (f *fixture) connect(t *testing.T, ids []string, data map[string]ledger.BusinessData) {
	t.Helper()
	f.fhe.On("Initialize", mock.Anything).Return(nil).Once()
	f.expectLoad(ids, data)
	require.NoError(t, f.d.Connect(context.Background()))
}

func (f *fixture) expectLoad(ids []string, data map[string]ledger.BusinessData) {
	f.reader.On("GetAllBusinessIds", mock.Anything).Return(ids, nil).Once()
	for _, id := range ids {
		f.reader.On("GetBusinessData", mock.Anything, id).Return(data[id], nil).Once()
	}
}
