package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"storefront/internal/domain/model"
)

// 上流REST API（商品・認証・注文）のJSONクライアント。
// レスポンスは { data: ... } 封筒で返ってくる。
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// 商品一覧（searchは部分一致検索）
func (c *Client) ListProducts(ctx context.Context, search string) ([]model.Product, error) {
	path := "/api/products"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}

	var out []model.Product
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Product{}
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (model.Product, error) {
	var out model.Product
	err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), "", nil, &out)
	return out, err
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	SupabaseID string `json:"supabaseId,omitempty"`
}

type loginResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// ログイン。Supabase側の確認は呼び出し元（フロント）の責務のまま。
func (c *Client) Login(ctx context.Context, email string, password string, supabaseID string) (model.AuthSession, error) {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "", loginRequest{
		Email:      email,
		Password:   password,
		SupabaseID: supabaseID,
	}, &out)
	if err != nil {
		return model.AuthSession{}, err
	}

	return model.AuthSession{
		Token: out.Token,
		User:  model.User{ID: out.ID, Name: out.Name, Email: out.Email},
	}, nil
}

type registerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	SupabaseID string `json:"supabaseId,omitempty"`
}

func (c *Client) Register(ctx context.Context, name string, email string, password string, supabaseID string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", "", registerRequest{
		Name:       name,
		Email:      email,
		Password:   password,
		SupabaseID: supabaseID,
	}, nil)
}

func (c *Client) Profile(ctx context.Context, token string) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodGet, "/api/auth/profile", token, nil, &out)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, token string, profile model.User) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPut, "/api/auth/profile", token, profile, &out)
	return out, err
}

// 注文系はこのコアの所有データではないのでスキーマを決めずに素通しする

func (c *Client) OrderHistory(ctx context.Context, token string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.do(ctx, http.MethodGet, "/api/orders/myorders", token, nil, &out)
	return out, err
}

func (c *Client) CurrentOrders(ctx context.Context, token string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.do(ctx, http.MethodGet, "/api/orders/current", token, nil, &out)
	return out, err
}

func (c *Client) CancelOrder(ctx context.Context, token string, orderID string) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.do(ctx, http.MethodPut, "/api/orders/"+url.PathEscape(orderID)+"/cancel", token, struct{}{}, &out)
	return out, err
}

// 上流エラー（ステータスと上流のメッセージ）
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream %d: %s", e.Status, e.Message)
}

func (c *Client) do(ctx context.Context, method string, path string, token string, in any, out any) error {
	var body *bytes.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("upstream response decode failed: %w", err)
	}

	if resp.StatusCode >= 400 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
