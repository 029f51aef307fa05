package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"golang.org/x/net/publicsuffix"

	"github.com/dmitrijs2005/bienestar/internal/client/models"
	"github.com/dmitrijs2005/bienestar/internal/logging"
)

const (
	DefaultTimeout = 30 * time.Second

	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 4 << 10

	pathLogin        = "/login"
	pathLogout       = "/logout"
	pathUserInfo     = "/api/auth/user-info"
	pathClients      = "/api/clientes"
	pathServices     = "/api/servicios"
	pathAppointments = "/api/citas"
	pathInvoices     = "/api/facturas"
)

// HTTPClient talks to the backend over HTTP. The session cookie issued by
// /login lives in the cookie jar and is replayed on every later request.
type HTTPClient struct {
	baseURL *url.URL
	jar     http.CookieJar
	http    *http.Client
	log     logging.Logger

	retries   uint64
	retryBase time.Duration

	clients      *restResource[models.Client]
	services     *restResource[models.Service]
	appointments *restResource[models.Appointment]
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

// WithTimeout overrides DefaultTimeout for every request.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRetries retries GET requests that failed in transport up to n times
// with exponential backoff starting at base. Mutations are never retried.
func WithRetries(n uint64, base time.Duration) Option {
	return func(c *HTTPClient) {
		c.retries = n
		if base > 0 {
			c.retryBase = base
		}
	}
}

// WithTransport replaces the underlying round tripper; tests use it to
// point the client at an in-process handler.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *HTTPClient) { c.http.Transport = rt }
}

func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	c := &HTTPClient{
		baseURL: u,
		jar:     jar,
		http:    &http.Client{Jar: jar, Timeout: DefaultTimeout},
		log:     logging.Discard(),

		retryBase: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.clients = newResource[models.Client](c, pathClients)
	c.services = newResource[models.Service](c, pathServices)
	c.appointments = newResource[models.Appointment](c, pathAppointments)

	return c, nil
}

func (c *HTTPClient) Clients() Resource[models.Client]           { return c.clients }
func (c *HTTPClient) Services() Resource[models.Service]         { return c.services }
func (c *HTTPClient) Appointments() Resource[models.Appointment] { return c.appointments }

func (c *HTTPClient) Login(ctx context.Context, username, password string) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	return c.do(ctx, http.MethodPost, pathLogin, strings.NewReader(form.Encode()),
		"application/x-www-form-urlencoded", nil)
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, pathLogout, nil, "", nil)
}

func (c *HTTPClient) UserInfo(ctx context.Context) (*models.UserInfo, error) {
	var info models.UserInfo
	if err := c.doJSON(ctx, http.MethodGet, pathUserInfo, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *HTTPClient) AppointmentsByClient(ctx context.Context, clientID int64) ([]models.Appointment, error) {
	items := make([]models.Appointment, 0)
	path := pathAppointments + "/cliente/" + strconv.FormatInt(clientID, 10)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) CreateInvoice(ctx context.Context, invoice models.Invoice) (models.Invoice, error) {
	var created models.Invoice
	err := c.doJSON(ctx, http.MethodPost, pathInvoices, invoice, &created)
	return created, err
}

func (c *HTTPClient) InvoicesByClient(ctx context.Context, clientID int64) ([]models.Invoice, error) {
	items := make([]models.Invoice, 0)
	path := pathInvoices + "/cliente/" + strconv.FormatInt(clientID, 10)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) SessionCookies() []*http.Cookie {
	return c.jar.Cookies(c.baseURL)
}

func (c *HTTPClient) RestoreSessionCookies(cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}
	c.jar.SetCookies(c.baseURL, cookies)
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// doJSON encodes in (when not nil) as the request body and decodes the
// response into out (when not nil).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var (
		body        io.Reader
		contentType string
	)
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, out)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	if c.retries == 0 || method != http.MethodGet || body != nil {
		return c.roundTrip(ctx, method, path, body, contentType, out)
	}

	backoff := retry.WithMaxRetries(c.retries, retry.NewExponential(c.retryBase))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.roundTrip(ctx, method, path, nil, contentType, out)
		if errors.Is(err, ErrUnavailable) {
			c.log.Debug(ctx, "retrying", "method", method, "path", path)
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *HTTPClient) roundTrip(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	target := c.baseURL.JoinPath(path)

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, path, err)
	}

	reqID := uuid.NewString()
	req.Header.Set(requestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", reqID, "err", err)
		return mapError(ctx, method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request done",
		"method", method, "path", path, "status", resp.StatusCode,
		"request_id", reqID, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(snippet),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// mapError turns a transport failure into ErrUnavailable. Cancellation by
// the caller is passed through untouched so it is not shown as a network problem.
func mapError(ctx context.Context, method, path string, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
}
