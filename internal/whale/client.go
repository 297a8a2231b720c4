package whale

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"whale-alert-bot/internal/types"
)

// ErrMalformedBody is returned when a 200 response cannot be decoded.
var ErrMalformedBody = errors.New("malformed response body")

// StatusError reports a non-200 answer from a source.
type StatusError struct {
	Source     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("source %s returned status %d", e.Source, e.StatusCode)
}

type transactionsResponse struct {
	Transactions []types.Transaction `json:"transactions"`
}

// Client fetches whale transactions from configured sources.
type Client struct {
	http *resty.Client
}

// NewClient creates a client that authenticates with apiKey as a bearer
// token. A zero timeout leaves requests unbounded.
func NewClient(apiKey string, timeout time.Duration) *Client {
	c := resty.New().
		SetAuthToken(apiKey).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &Client{http: c}
}

// Fetch issues one GET to the source endpoint and returns its transactions in
// response order.
func (c *Client) Fetch(ctx context.Context, source types.Source) ([]types.Transaction, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(source.Endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", source.Name)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, &StatusError{Source: source.Name, StatusCode: resp.StatusCode()}
	}

	var data *transactionsResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, errors.Wrapf(ErrMalformedBody, "source %s: %v", source.Name, err)
	}
	if data == nil {
		return nil, errors.Wrapf(ErrMalformedBody, "source %s: null body", source.Name)
	}

	for i := range data.Transactions {
		data.Transactions[i].Source = source.Name
	}

	log.WithFields(log.Fields{
		"source":       source.Name,
		"transactions": len(data.Transactions),
	}).Debug("Fetched whale transactions")

	return data.Transactions, nil
}
