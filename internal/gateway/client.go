package gateway

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alovak/payment-details/paymentdetails/models"
	"github.com/google/uuid"
)

const resourcePath = "/api/PaymentDetails"

// Client talks to the payment details API.
type Client struct {
	Base string
	HTTP *http.Client
}

// Options tune the underlying http.Client built by New.
type Options struct {
	Timeout time.Duration
	// InsecureSkipVerify accepts self-signed certificates of a local API.
	InsecureSkipVerify bool
}

func New(base string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	hc := &http.Client{Timeout: opts.Timeout}
	if opts.InsecureSkipVerify {
		hc.Transport = &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // local development only
		}
	}
	return NewWithHTTPClient(base, hc)
}

func NewWithHTTPClient(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s status=%d body=%s", e.Method, e.URL, e.StatusCode, e.Body)
}

func (c *Client) List(ctx context.Context) ([]models.PaymentDetail, error) {
	var out []models.PaymentDetail
	if err := c.do(ctx, http.MethodGet, c.Base+resourcePath, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.PaymentDetail{}
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*models.PaymentDetail, error) {
	var out models.PaymentDetail
	if err := c.do(ctx, http.MethodGet, c.itemURL(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, in models.PaymentDetailInput) (*models.PaymentDetail, error) {
	var out models.PaymentDetail
	if err := c.do(ctx, http.MethodPost, c.Base+resourcePath, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update sends the full record, id included.
func (c *Client) Update(ctx context.Context, id int64, detail models.PaymentDetail) error {
	return c.do(ctx, http.MethodPut, c.itemURL(id), detail, nil)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client) itemURL(id int64) string {
	return fmt.Sprintf("%s%s/%d", c.Base, resourcePath, id)
}

func (c *Client) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(b)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, target, err)
	}
	return nil
}
