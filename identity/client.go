package identity

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/atelier-moveis/atelier-backend/util/common"

	"github.com/goccy/go-json"
)

// Client talks to a GoTrue-compatible auth API over HTTP.
type Client struct {
	baseURL    string
	anonKey    string
	serviceKey string
	http       *http.Client
}

// NewClient builds a Client for the auth API at baseURL. anonKey is sent
// with every call; serviceKey authorizes admin user creation.
func NewClient(baseURL, anonKey, serviceKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		anonKey:    anonKey,
		serviceKey: serviceKey,
		http:       &http.Client{Timeout: 15 * time.Second},
	}
}

type providerError struct {
	Msg       string `json:"msg"`
	Message   string `json:"message"`
	ErrorDesc string `json:"error_description"`
}

func (e *providerError) text() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Message != "":
		return e.Message
	case e.ErrorDesc != "":
		return e.ErrorDesc
	}
	return ""
}

// do sends the request and decodes the JSON response into out when the
// status is 2xx, or into the provider's error shape otherwise.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var perr providerError
		if err := json.Unmarshal(body, &perr); err == nil && perr.text() != "" {
			return common.NewError(perr.text())
		}
		return common.NewErrorf("identity provider returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (c *Client) newRequest(ctx context.Context, method, path, bearer string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.anonKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) CreateUser(ctx context.Context, email, password string) (*User, error) {
	payload := map[string]any{
		"email":         email,
		"password":      password,
		"email_confirm": true,
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/admin/users", c.serviceKey, payload)
	if err != nil {
		return nil, err
	}

	user := &User{}
	if err := c.do(req, user); err != nil {
		return nil, err
	}
	if user.Id == "" {
		return nil, common.NewError("identity provider returned no user")
	}
	return user, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/token?grant_type=password", "", payload)
	if err != nil {
		return nil, err
	}

	session := &Session{}
	if err := c.do(req, session); err != nil {
		return nil, err
	}
	if session.AccessToken == "" {
		return nil, common.NewError("identity provider returned no access token")
	}
	return session, nil
}

func (c *Client) UserFromToken(ctx context.Context, token string) (*User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/user", token, nil)
	if err != nil {
		return nil, err
	}

	user := &User{}
	if err := c.do(req, user); err != nil {
		return nil, err
	}
	if user.Id == "" {
		return nil, common.NewError("identity provider returned no user")
	}
	return user, nil
}

func (c *Client) Recover(ctx context.Context, email, redirectTo string) error {
	path := "/recover"
	if redirectTo != "" {
		path = fmt.Sprintf("/recover?redirect_to=%s", url.QueryEscape(redirectTo))
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, "", map[string]string{"email": email})
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
