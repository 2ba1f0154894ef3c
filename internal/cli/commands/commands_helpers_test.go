package commands

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"CreditScoreZ/internal/config"
	"CreditScoreZ/internal/fhe/devfhe"
	"CreditScoreZ/internal/handlers"
	"CreditScoreZ/internal/ledger/devchain"
	"CreditScoreZ/internal/repo"
	dashsvc "CreditScoreZ/internal/service"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSigner = "0x1111111111111111111111111111111111111111"

// withTempConfig — конфиг клиента с файлом токена во временном каталоге.
func withTempConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	return &config.Config{
		ServerURL: serverURL,
		TokenFile: filepath.Join(t.TempDir(), "token"),
	}
}

// перехват вывода на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

// newStack поднимает сервер дашборда на dev-леджере и dev FHE.
func newStack(t *testing.T) *httptest.Server {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repo.InitDB(fmt.Sprintf("file:cli_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	fheSvc, err := devfhe.New([]byte("secret"), devfhe.WithStore(repo.NewCiphertextRepository(db)))
	require.NoError(t, err)
	chain := devchain.New(repo.NewLedgerRepository(db), fheSvc, testSigner)

	logger := zap.NewNop().Sugar()
	d := dashsvc.NewDashboard(dashsvc.Deps{Reader: chain, Writer: chain, FHE: fheSvc, Logger: logger})
	h := handlers.NewHandler(d, logger, &config.Config{AuthSecret: "test-secret"})
	ts := httptest.NewServer(h.Router)
	t.Cleanup(ts.Close)
	return ts
}
