package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"CreditScoreZ/internal/cli/api"
	fsrepo "CreditScoreZ/internal/cli/repo/fs"
	dash "CreditScoreZ/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) fsrepo.TokenFSStore {
	t.Helper()
	return fsrepo.TokenFSStore{Path: filepath.Join(t.TempDir(), "token")}
}

func TestConnect_PersistsCookie(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/wallet/connect", r.URL.Path)
		http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "tok-1"})
		_, _ = w.Write([]byte(`{"connected":true,"account":"0xabc","ready":true,"gate":"ready"}`))
	}))
	defer ts.Close()

	store := newStore(t)
	sess, err := NewDashboardClient(ts.URL+"/", store).Connect(context.Background())
	require.NoError(t, err)
	assert.True(t, sess.Ready)
	assert.Equal(t, "0xabc", sess.Account)

	tok, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
}

func TestConnect_FHEFailureKeepsCookie(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "tok-2"})
		http.Error(w, "FHEVM initialization failed", http.StatusBadGateway)
	}))
	defer ts.Close()

	store := newStore(t)
	_, err := NewDashboardClient(ts.URL, store).Connect(context.Background())
	var se *api.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Code)

	tok, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
}

func TestConnect_NoCookieOnSuccessIsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"connected":true}`))
	}))
	defer ts.Close()

	_, err := NewDashboardClient(ts.URL, newStore(t)).Connect(context.Background())
	assert.Error(t, err)
}

func TestRequests_NeedStoredToken(t *testing.T) {
	c := NewDashboardClient("http://127.0.0.1:1", newStore(t))
	_, err := c.Dashboard(context.Background())
	assert.ErrorIs(t, err, ErrNotConnected)
	_, err = c.Verify(context.Background(), "score-1")
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestProfiles_SearchAndPaths(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Cookie"), "auth_token=tok")
		mu.Lock()
		seen = append(seen, r.Method+" "+r.URL.RequestURI())
		mu.Unlock()
		switch r.URL.Path {
		case "/api/create/open":
			w.WriteHeader(http.StatusNoContent)
		case "/api/profiles":
			if r.Method == http.MethodPost {
				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"id":"score-1","tx_hash":"0x01"}`))
				return
			}
			_, _ = w.Write([]byte(`{"search":"a b","records":[]}`))
		default:
			_, _ = w.Write([]byte(`{}`))
		}
	}))
	defer ts.Close()

	store := newStore(t)
	require.NoError(t, store.Save("tok"))
	c := NewDashboardClient(ts.URL, store)
	ctx := context.Background()

	term := "a b"
	v, err := c.Profiles(ctx, &term)
	require.NoError(t, err)
	assert.Equal(t, "a b", v.Search)

	_, err = c.Profiles(ctx, nil)
	require.NoError(t, err)

	res, err := c.Create(ctx, dash.CreateForm{Name: "Alice", Score: "720", Activity: "7"})
	require.NoError(t, err)
	assert.Equal(t, "score-1", res.ID)

	_, err = c.Detail(ctx, "score 1")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"GET /api/profiles?search=a+b",
		"GET /api/profiles",
		"POST /api/create/open",
		"POST /api/profiles",
		"GET /api/profiles/score%201",
	}, seen)
}

func TestDisconnect_ClearsToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"connected":false,"gate":"Connect Your Wallet to Continue"}`))
	}))
	defer ts.Close()

	store := newStore(t)
	require.NoError(t, store.Save("tok"))
	sess, err := NewDashboardClient(ts.URL, store).Disconnect(context.Background())
	require.NoError(t, err)
	assert.False(t, sess.Connected)

	_, err = store.Load()
	assert.Error(t, err)
}
