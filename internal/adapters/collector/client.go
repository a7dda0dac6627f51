// Package collector posts payment records to the remote collector endpoint
package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"cobrify/internal/core/payment"
	"cobrify/internal/core/version"
	perr "cobrify/internal/platform/errors"
	"cobrify/internal/platform/logger"
)

const defaultTimeout = 15 * time.Second

// Options configures the Client
type Options struct {
	URL       string
	UserAgent string

	// Timeout bounds connect, write and read of one Push
	Timeout time.Duration

	// HTTP overrides the transport, mainly for tests
	HTTP *http.Client
}

// Payload is the collector's JSON body
type Payload struct {
	BusinessID    string      `json:"businessId"`
	UserID        string      `json:"userId"`
	Amount        json.Number `json:"amount"`
	SenderName    string      `json:"senderName"`
	OriginalText  string      `json:"originalText"`
	OriginalTitle string      `json:"originalTitle"`
	Timestamp     int64       `json:"timestamp"`
}

// PayloadOf builds the body for rec attributed to businessID and userID
func PayloadOf(rec payment.Record, businessID, userID string) Payload {
	return Payload{
		BusinessID:    businessID,
		UserID:        userID,
		Amount:        json.Number(rec.AmountText()),
		SenderName:    rec.SenderName,
		OriginalText:  rec.RawBody,
		OriginalTitle: rec.RawTitle,
		Timestamp:     rec.ObservedAtMillis,
	}
}

// Client makes exactly one request per Push; it never retries
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a Client; URL is required
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = version.Info().Service
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	hc := o.HTTP
	if hc == nil {
		// Push puts the deadline on the request context
		hc = &http.Client{}
	}
	return &Client{
		http: hc,
		opts: o,
		log:  *logger.Named("collector"),
		now:  time.Now,
	}
}

// Push sends p for the record identified by eventID.
// Only a 200 counts as delivered; anything else comes back as an error
func (c *Client) Push(ctx context.Context, eventID string, p Payload) error {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	body, err := json.Marshal(p)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "collector payload encode failed")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.URL, bytes.NewReader(body))
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "collector new request failed")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)
	if eventID != "" {
		req.Header.Set("X-Event-ID", eventID)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		var ne net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
			return perr.Wrapf(err, perr.ErrorCodeTimeout, "collector timed out after %s", c.opts.Timeout)
		}
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "collector request failed")
	}
	defer drainAndClose(resp.Body)

	c.log.Debug().
		Str("event_id", eventID).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("collector http response")

	if resp.StatusCode != http.StatusOK {
		tail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return perr.Upstreamf("collector status %d body %s", resp.StatusCode, bytes.TrimSpace(tail))
	}
	return nil
}

func drainAndClose(rc io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 64<<10))
	_ = rc.Close()
}
