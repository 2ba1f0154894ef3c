package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	fsrepo "CreditScoreZ/internal/cli/repo/fs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSON_SendsToken_And_ParsesBody(t *testing.T) {
	// test server проверяет cookie и JSON
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c := r.Header.Get("Cookie"); !strings.Contains(c, "auth_token=tok123") {
			t.Errorf("Cookie header missing token, got: %q", c)
		}
		var m map[string]any
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			t.Errorf("bad json: %v", err)
		}
		if m["x"] != float64(1) { // JSON number → float64
			t.Errorf("unexpected payload: %#v", m)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	resp, body, err := PostJSON(context.Background(), ts.URL+"/api", map[string]any{"x": 1}, "tok123")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"ok":true}`, strings.TrimSpace(string(body)))
}

func TestGetJSON_SendsToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Contains(t, r.Header.Get("Cookie"), "auth_token=tok")
		assert.Equal(t, "a b", r.URL.Query().Get("search"))
		_, _ = w.Write([]byte(`{"total":3}`))
	}))
	defer ts.Close()

	resp, body, err := GetJSON(context.Background(), ts.URL+"/api/profiles?search=a+b", "tok")
	require.NoError(t, err)

	var out struct {
		Total int `json:"total"`
	}
	require.NoError(t, Decode(resp, body, &out))
	assert.Equal(t, 3, out.Total)
}

func TestPostJSON_JSONMarshalError(t *testing.T) {
	// chan в payload вызовет ошибку json.Marshal
	_, _, err := PostJSON(context.Background(), "http://example.invalid", map[string]any{"c": make(chan int)}, "")
	assert.Error(t, err)
}

func TestDecode_StatusAndBody(t *testing.T) {
	resp := &http.Response{StatusCode: http.StatusConflict}
	err := Decode(resp, []byte("Please connect wallet first\n"), nil)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusConflict, se.Code)
	assert.Equal(t, "Please connect wallet first", se.Body)

	// допустимые коды задаются явно
	resp = &http.Response{StatusCode: http.StatusCreated}
	var out map[string]string
	require.NoError(t, Decode(resp, []byte(`{"id":"score-1"}`), &out, http.StatusCreated))
	assert.Equal(t, "score-1", out["id"])

	// битый JSON
	resp = &http.Response{StatusCode: http.StatusOK}
	assert.Error(t, Decode(resp, []byte("{"), &out))

	// 204 без тела
	resp = &http.Response{StatusCode: http.StatusNoContent}
	assert.NoError(t, Decode(resp, nil, nil, http.StatusNoContent))
}

func TestPersistAuthFromResponse_SaveAndNoCookie(t *testing.T) {
	store := fsrepo.TokenFSStore{Path: filepath.Join(t.TempDir(), "tok")}

	// success: есть Set-Cookie с auth_token
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Add("Set-Cookie", (&http.Cookie{Name: "auth_token", Value: "tok-abc"}).String())
	require.NoError(t, PersistAuthFromResponse(resp, store))

	tok, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", tok)

	// error: нет cookie
	resp = &http.Response{Header: http.Header{}}
	assert.Error(t, PersistAuthFromResponse(resp, store))
}
