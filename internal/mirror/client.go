package mirror

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultTimeout = 5 * time.Second

// Client copies user lists to a remote document store. Each Publish is a
// single PUT in its own goroutine; failures are logged and dropped.
type Client struct {
	http    *resty.Client
	baseURL string
	timeout time.Duration
	wg      sync.WaitGroup
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithToken sends token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(c *Client) {
		if token != "" {
			c.http.SetAuthToken(token)
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:    resty.New().SetHeader("Content-Type", "application/json"),
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Publish implements userdata.Mirror. It never blocks on the network.
func (c *Client) Publish(userID, key string, value []byte) {
	body := append([]byte(nil), value...)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		if err := c.Put(ctx, userID, key, body); err != nil {
			log.Printf("[mirror] publish %s for %s error: %v", key, userID, err)
		}
	}()
}

// Put sends one document synchronously.
func (c *Client) Put(ctx context.Context, userID, key string, value []byte) error {
	endpoint := fmt.Sprintf("%s/users/%s/%s", c.baseURL, url.PathEscape(userID), url.PathEscape(key))
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(value).
		Put(endpoint)
	if err != nil {
		return fmt.Errorf("put %s: %w", endpoint, err)
	}
	if res.IsError() {
		return fmt.Errorf("put %s: unexpected status %s", endpoint, res.Status())
	}
	return nil
}

// Wait blocks until in-flight publishes finish.
func (c *Client) Wait() {
	c.wg.Wait()
}
