// Package backend is the HTTP client of the remote QKart API.
package backend

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/niksmo/qkart/internal/core/domain"
	"github.com/niksmo/qkart/internal/core/port"
)

var _ port.BackendAPI = (*Client)(nil)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 64 << 10
)

type Opt func(*Client)

func TimeoutOpt(d time.Duration) Opt {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func TLSConfigOpt(cfg *tls.Config) Opt {
	return func(c *Client) {
		if cfg == nil {
			return
		}
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = cfg
		c.http.Transport = t
	}
}

// BalancePathOpt enables Balance. The path answers {"balance": int}.
func BalancePathOpt(path string) Opt {
	return func(c *Client) {
		c.balancePath = path
	}
}

func HTTPClientOpt(hc *http.Client) Opt {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

type Client struct {
	endpoint    string
	balancePath string
	http        *http.Client
}

func New(endpoint string, opts ...Opt) (*Client, error) {
	const op = "backend.New"

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%s: endpoint %q is not absolute", op, endpoint)
	}

	c := &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	const op = "Client.Products"

	var ps []product
	if err := c.do(ctx, http.MethodGet, "/products", "", nil, &ps); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return toDomainProducts(ps), nil
}

// SearchProducts returns an empty slice when nothing matches, including
// the 404 the API answers with.
func (c *Client) SearchProducts(
	ctx context.Context, query string,
) ([]domain.Product, error) {
	const op = "Client.SearchProducts"

	path := "/products/search?value=" + url.QueryEscape(query)

	var ps []product
	err := c.do(ctx, http.MethodGet, path, "", nil, &ps)
	if err != nil {
		var remoteErr *domain.RemoteError
		if errors.As(err, &remoteErr) && remoteErr.StatusCode == http.StatusNotFound {
			return []domain.Product{}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return toDomainProducts(ps), nil
}

func (c *Client) Cart(ctx context.Context, token string) ([]domain.CartLine, error) {
	const op = "Client.Cart"

	var ls []cartLine
	if err := c.do(ctx, http.MethodGet, "/cart", token, nil, &ls); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return toDomainLines(ls), nil
}

func (c *Client) UpsertCart(
	ctx context.Context, token string, line domain.CartLine,
) ([]domain.CartLine, error) {
	const op = "Client.UpsertCart"

	body := cartLine{ProductID: line.ProductID, Qty: line.Qty}

	var ls []cartLine
	if err := c.do(ctx, http.MethodPost, "/cart", token, body, &ls); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return toDomainLines(ls), nil
}

func (c *Client) Checkout(ctx context.Context, token, addressID string) error {
	const op = "Client.Checkout"

	body := checkoutRequest{AddressID: addressID}
	if err := c.do(ctx, http.MethodPost, "/cart/checkout", token, body, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *Client) Addresses(ctx context.Context, token string) ([]domain.Address, error) {
	const op = "Client.Addresses"

	var as []address
	if err := c.do(ctx, http.MethodGet, "/user/addresses", token, nil, &as); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return toDomainAddresses(as), nil
}

func (c *Client) AddAddress(
	ctx context.Context, token, text string,
) ([]domain.Address, error) {
	const op = "Client.AddAddress"

	body := addressRequest{Address: text}

	var as []address
	err := c.do(ctx, http.MethodPost, "/user/addresses", token, body, &as)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return toDomainAddresses(as), nil
}

func (c *Client) DeleteAddress(
	ctx context.Context, token, addressID string,
) ([]domain.Address, error) {
	const op = "Client.DeleteAddress"

	path := "/user/addresses/" + url.PathEscape(addressID)

	var as []address
	if err := c.do(ctx, http.MethodDelete, path, token, nil, &as); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return toDomainAddresses(as), nil
}

func (c *Client) Login(
	ctx context.Context, creds domain.Credentials,
) (domain.Login, error) {
	const op = "Client.Login"

	body := credentials{Username: creds.Username, Password: creds.Password}

	var res loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &res); err != nil {
		return domain.Login{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.Login{
		Token:    res.Token,
		Username: res.Username,
		Balance:  res.Balance,
	}, nil
}

func (c *Client) Register(ctx context.Context, creds domain.Credentials) error {
	const op = "Client.Register"

	body := credentials{Username: creds.Username, Password: creds.Password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", body, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Balance reports ok false without a call when no balance path is set.
func (c *Client) Balance(ctx context.Context, token string) (int, bool, error) {
	const op = "Client.Balance"

	if c.balancePath == "" {
		return 0, false, nil
	}

	var res balanceResponse
	if err := c.do(ctx, http.MethodGet, c.balancePath, token, nil, &res); err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	return res.Balance, true, nil
}

// do sends a JSON request and decodes a 2xx response into out.
//
// Transport failures and undecodable success bodies are reported as
// [domain.ErrBackendUnreachable], other statuses as [*domain.RemoteError].
func (c *Client) do(
	ctx context.Context, method, path, token string, in, out any,
) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %w", domain.ErrBackendUnreachable, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeRemoteError(res)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: invalid JSON: %w", domain.ErrBackendUnreachable, err)
	}
	return nil
}

func decodeRemoteError(res *http.Response) error {
	remoteErr := &domain.RemoteError{StatusCode: res.StatusCode}

	var v errorResponse
	err := json.NewDecoder(io.LimitReader(res.Body, maxErrorBody)).Decode(&v)
	if err == nil {
		remoteErr.Message = v.Message
	}
	if remoteErr.Message == "" {
		remoteErr.Message = http.StatusText(res.StatusCode)
	}
	return remoteErr
}
