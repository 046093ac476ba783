package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ariefcatur/go-catalog-cart.git/internal/cart"
	"github.com/ariefcatur/go-catalog-cart.git/internal/catalog"
)

// Client talks to the catalog-cart API. A 404 from the server comes back
// as catalog.ErrNotFound so callers can branch on it.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type checkStockReq struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

type validateCartReq struct {
	Items []cart.Line `json:"items"`
}

func (c *Client) CheckStock(ctx context.Context, itemID string, qty int) (cart.StockCheck, error) {
	var out cart.StockCheck
	err := c.do(ctx, http.MethodPost, "/cart/check-stock", checkStockReq{ItemID: itemID, Quantity: qty}, &out)
	return out, err
}

func (c *Client) ValidateCart(ctx context.Context, lines []cart.Line) (cart.Report, error) {
	var out cart.Report
	err := c.do(ctx, http.MethodPost, "/cart/validate", validateCartReq{Items: lines}, &out)
	return out, err
}

func (c *Client) GetItem(ctx context.Context, id string) (catalog.Item, error) {
	var out catalog.Item
	err := c.do(ctx, http.MethodGet, "/items/"+id, nil, &out)
	return out, err
}

func (c *Client) ListItems(ctx context.Context) ([]catalog.Item, error) {
	var out []catalog.Item
	err := c.do(ctx, http.MethodGet, "/items", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = resp.Status
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", catalog.ErrNotFound, e.Error)
		}
		return fmt.Errorf("api: %s (%d)", e.Error, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
