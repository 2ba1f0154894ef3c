package service

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"CreditScoreZ/internal/cli/api"
	"CreditScoreZ/internal/cli/repo"
	"CreditScoreZ/internal/model"
	dash "CreditScoreZ/internal/service"
)

// ErrNotConnected — на клиенте нет сохранённой сессии кошелька.
var ErrNotConnected = errors.New("wallet not connected: run `connect` first")

// VerifyResponse — ответ POST /api/profiles/{id}/verify.
type VerifyResponse struct {
	Result *dash.VerifyResult `json:"result"`
	Detail dash.DetailView    `json:"detail"`
}

// DashboardClient — клиент HTTP API дашборда. Cookie сессии хранится в TokenStore.
type DashboardClient struct {
	baseURL string
	store   repo.TokenStore
}

func NewDashboardClient(baseURL string, store repo.TokenStore) *DashboardClient {
	return &DashboardClient{baseURL: strings.TrimRight(baseURL, "/"), store: store}
}

func (c *DashboardClient) url(path string) string { return c.baseURL + path }

func (c *DashboardClient) token() (string, error) {
	tok, err := c.store.Load()
	if err != nil || tok == "" {
		return "", ErrNotConnected
	}
	return tok, nil
}

func (c *DashboardClient) get(ctx context.Context, path string, out any) error {
	tok, err := c.token()
	if err != nil {
		return err
	}
	resp, body, err := api.GetJSON(ctx, c.url(path), tok)
	if err != nil {
		return err
	}
	return api.Decode(resp, body, out)
}

func (c *DashboardClient) post(ctx context.Context, path string, payload, out any, okCodes ...int) error {
	tok, err := c.token()
	if err != nil {
		return err
	}
	resp, body, err := api.PostJSON(ctx, c.url(path), payload, tok)
	if err != nil {
		return err
	}
	return api.Decode(resp, body, out, okCodes...)
}

// Connect подключает кошелёк и сохраняет cookie сессии.
// Если сервер выдал cookie, но FHE не инициализирован, cookie сохраняется, а ошибка возвращается.
func (c *DashboardClient) Connect(ctx context.Context) (dash.SessionView, error) {
	var sess dash.SessionView
	resp, body, err := api.PostJSON(ctx, c.url("/api/wallet/connect"), struct{}{}, "")
	if err != nil {
		return sess, err
	}
	if perr := api.PersistAuthFromResponse(resp, c.store); perr != nil && resp.StatusCode == http.StatusOK {
		return sess, perr
	}
	if err := api.Decode(resp, body, &sess); err != nil {
		return sess, err
	}
	return sess, nil
}

// Disconnect отключает кошелёк на сервере и удаляет локальную сессию.
func (c *DashboardClient) Disconnect(ctx context.Context) (dash.SessionView, error) {
	var sess dash.SessionView
	tok, _ := c.store.Load()
	resp, body, err := api.PostJSON(ctx, c.url("/api/wallet/disconnect"), struct{}{}, tok)
	if err != nil {
		return sess, err
	}
	if err := c.store.Clear(); err != nil {
		return sess, err
	}
	return sess, api.Decode(resp, body, &sess)
}

// Session не требует сохранённой сессии.
func (c *DashboardClient) Session(ctx context.Context) (dash.SessionView, error) {
	var sess dash.SessionView
	tok, _ := c.store.Load()
	resp, body, err := api.GetJSON(ctx, c.url("/api/session"), tok)
	if err != nil {
		return sess, err
	}
	return sess, api.Decode(resp, body, &sess)
}

func (c *DashboardClient) Dashboard(ctx context.Context) (dash.DashboardView, error) {
	var v dash.DashboardView
	return v, c.get(ctx, "/api/dashboard", &v)
}

// Profiles отдаёт список; search == nil оставляет строку поиска на сервере без изменений.
func (c *DashboardClient) Profiles(ctx context.Context, search *string) (dash.ProfilesView, error) {
	var v dash.ProfilesView
	path := "/api/profiles"
	if search != nil {
		path += "?" + url.Values{"search": {*search}}.Encode()
	}
	return v, c.get(ctx, path, &v)
}

func (c *DashboardClient) Refresh(ctx context.Context) (dash.ProfilesView, error) {
	var v dash.ProfilesView
	return v, c.post(ctx, "/api/profiles/refresh", struct{}{}, &v)
}

func (c *DashboardClient) Create(ctx context.Context, form dash.CreateForm) (dash.CreateResult, error) {
	var res dash.CreateResult
	if err := c.post(ctx, "/api/create/open", struct{}{}, nil, http.StatusNoContent); err != nil {
		return res, err
	}
	return res, c.post(ctx, "/api/profiles", form, &res, http.StatusCreated)
}

func (c *DashboardClient) Detail(ctx context.Context, id string) (dash.DetailView, error) {
	var v dash.DetailView
	return v, c.get(ctx, "/api/profiles/"+url.PathEscape(id), &v)
}

// Verify переключает расшифровку записи: повторный вызов скрывает значение.
func (c *DashboardClient) Verify(ctx context.Context, id string) (VerifyResponse, error) {
	var v VerifyResponse
	return v, c.post(ctx, "/api/profiles/"+url.PathEscape(id)+"/verify", struct{}{}, &v)
}

func (c *DashboardClient) CloseDetail(ctx context.Context, id string) error {
	return c.post(ctx, "/api/profiles/"+url.PathEscape(id)+"/close", struct{}{}, nil, http.StatusNoContent)
}

func (c *DashboardClient) History(ctx context.Context) ([]model.HistoryEntry, error) {
	var v []model.HistoryEntry
	return v, c.get(ctx, "/api/history", &v)
}

func (c *DashboardClient) Status(ctx context.Context) (model.TxStatus, error) {
	var v model.TxStatus
	return v, c.get(ctx, "/api/status", &v)
}
