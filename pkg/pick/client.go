package pick

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/outofforest/dayseed/pkg/daily"
	"github.com/outofforest/dayseed/pkg/thttp"
)

const clientTimeout = 10 * time.Second

// Client fetches picks from the server.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates client of the server running at baseURL.
// Requests are logged to the logger of ctx.
func NewClient(ctx context.Context, baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  thttp.WithRequestsLogging(ctx, &http.Client{Timeout: clientTimeout}),
	}
}

// Pick requests the draw. If date is not set, the server uses its own today.
func (c *Client) Pick(ctx context.Context, req Request) (Result, error) {
	q := url.Values{}
	q.Set("list", req.List)
	if req.Date != (daily.DateKey{}) {
		q.Set("date", req.Date.String())
	}
	if req.Namespace != "" {
		q.Set("namespace", string(req.Namespace))
	}
	if req.Count > 0 {
		q.Set("count", strconv.Itoa(req.Count))
	}
	if req.Shuffle {
		q.Set("shuffle", "true")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/pick?"+q.Encode(), nil)
	if err != nil {
		return Result{}, errors.WithStack(err)
	}
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Result{}, errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
			return Result{}, errors.Errorf("server returned %s", resp.Status)
		}
		return Result{}, errors.Errorf("server returned %s: %s", resp.Status, errResp.Error)
	}

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return Result{}, errors.Wrap(err, "decoding response")
	}
	return res, nil
}
