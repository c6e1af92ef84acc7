package cnpj

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrInvalidCNPJ = errors.New("invalid cnpj")
	ErrNotFound    = errors.New("cnpj not found")
)

// Record is the subset of the public registry data the platform uses
// to prefill a company registration form.
type Record struct {
	CNPJ        string `json:"cnpj"`
	RazaoSocial string `json:"razao_social"`
	TradeName   string `json:"nome_fantasia"`
	Email       string `json:"email"`
	Phone       string `json:"ddd_telefone_1"`
	City        string `json:"municipio"`
	State       string `json:"uf"`
}

// Client queries a public CNPJ registry (BrasilAPI-compatible).
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://brasilapi.com.br/api/cnpj/v1"
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *Client) Lookup(ctx context.Context, raw string) (Record, error) {
	digits := Normalize(raw)
	if !Valid(digits) {
		return Record{}, ErrInvalidCNPJ
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+digits, nil)
	if err != nil {
		return Record{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Record{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return Record{}, ErrNotFound
	default:
		return Record{}, fmt.Errorf("cnpj registry returned status %d", resp.StatusCode)
	}

	var rec Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return Record{}, err
	}
	rec.CNPJ = digits
	return rec, nil
}
