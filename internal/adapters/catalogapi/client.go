// Package catalogapi implémente ports.CatalogGetter au-dessus de l'API REST du catalogue.
package catalogapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Guilhem-Bonnet/tubebrowse/internal/domain"
	"github.com/Guilhem-Bonnet/tubebrowse/internal/ports"
	"github.com/codeGROOVE-dev/retry"
	"github.com/rs/zerolog"
)

const (
	DefaultEndpoint = "https://www.googleapis.com"

	// corps au-delà de cette taille: considéré illisible
	maxBodyBytes = 8 << 20
)

type Client struct {
	endpoint  string
	apiKey    string
	userAgent string
	client    *http.Client
	attempts  uint
	delay     time.Duration
	logger    zerolog.Logger
}

func New(apiKey string, logger zerolog.Logger) *Client {
	return &Client{
		endpoint:  DefaultEndpoint,
		apiKey:    strings.TrimSpace(apiKey),
		userAgent: "tubebrowse",
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		attempts: 2,
		delay:    200 * time.Millisecond,
		logger:   logger.With().Str("component", "catalogapi").Logger(),
	}
}

func (c *Client) WithEndpoint(endpoint string) *Client {
	if strings.TrimSpace(endpoint) != "" {
		c.endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	}
	return c
}

func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.client = hc
	}
	return c
}

// WithRetry règle les nouvelles tentatives sur erreur réseau ou 5xx.
// attempts compte l'appel initial; 1 désactive les retries.
func (c *Client) WithRetry(attempts int, delay time.Duration) *Client {
	if attempts < 1 {
		attempts = 1
	}
	c.attempts = uint(attempts)
	if delay > 0 {
		c.delay = delay
	}
	return c
}

func (c *Client) WithUserAgent(ua string) *Client {
	if strings.TrimSpace(ua) != "" {
		c.userAgent = strings.TrimSpace(ua)
	}
	return c
}

// URL construit l'URL d'une requête. Les paramètres gardent leur ordre;
// la clé d'API n'est ajoutée que hors authentification.
func (c *Client) URL(req ports.Request, auth ports.AuthContext) string {
	var b strings.Builder
	b.WriteString(c.endpoint)
	for _, seg := range req.Path {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(seg))
	}
	query := req.Query
	if !auth.Authenticated && c.apiKey != "" {
		query = append(append([]ports.Param(nil), query...), ports.Param{Key: "key", Value: c.apiKey})
	}
	for i, p := range query {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// Get exécute le GET. Un corps illisible donne un Record vide;
// un statut non-succès donne un *ports.RemoteError portant le message de l'API.
func (c *Client) Get(ctx context.Context, req ports.Request, auth ports.AuthContext) (domain.Record, error) {
	target := c.URL(req, auth)
	var (
		rec     domain.Record
		lastErr error
	)

	err := retry.Do(
		func() error {
			r, err := c.do(ctx, target, auth)
			lastErr = err
			if err != nil {
				var remote *ports.RemoteError
				if errors.As(err, &remote) && remote.Status < 500 {
					return retry.Unrecoverable(err)
				}
				return err
			}
			rec = r
			return nil
		},
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.MaxDelay(2*time.Second),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug().Uint("attempt", n+1).Err(err).Str("path", strings.Join(req.Path, "/")).Msg("retrying catalog call")
		}),
		retry.RetryIf(func(err error) bool {
			return ctx.Err() == nil
		}),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, err
	}
	return rec, nil
}

func (c *Client) do(ctx context.Context, target string, auth ports.AuthContext) (domain.Record, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if auth.Authenticated && strings.TrimSpace(auth.AccessToken) != "" {
		httpReq.Header.Set("Authorization", "Bearer "+strings.TrimSpace(auth.AccessToken))
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ports.RemoteError{Status: resp.StatusCode, Message: errorMessage(body)}
	}

	var rec domain.Record
	if err := json.Unmarshal(body, &rec); err != nil || rec == nil {
		c.logger.Warn().
			Str("code", "malformed_response").
			Int("bytes", len(body)).
			Err(err).
			Msg("unreadable catalog body, treated as empty")
		return domain.Record{}, nil
	}
	return rec, nil
}

// errorMessage lit {"error":{"message":...}} ou {"error":"..."}.
func errorMessage(body []byte) string {
	var rec domain.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return ""
	}
	if msg := rec.Str("error", "message"); msg != "" {
		return msg
	}
	return rec.Str("error")
}
