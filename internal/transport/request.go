package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/unitworks/switchboard/pkg/errors"
)

// newRequest builds a request carrying the client's common headers: the
// configured defaults, User-Agent, Accept, a fresh X-Request-ID, and
// the session token when one is set.
func (c *Client) newRequest(ctx context.Context, method, rawURL string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, errors.WrapAPI(rawURL, 0, err)
	}

	for key, values := range c.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.token != "" {
		c.auth.Apply(req, c.token)
	}

	return req, nil
}

// DecodeResponse decodes a JSON response body into target. The body is
// always closed. Non-200 statuses are an APIError carrying the body as
// the message; undecodable bodies are a ParseError.
func DecodeResponse(resp *http.Response, target any) error {
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &errors.APIError{
			Endpoint:   requestURL(resp),
			StatusCode: resp.StatusCode,
			Message:    snippet(body),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", requestURL(resp), err)
	}

	return nil
}

// snippet trims a response body down to something loggable.
func snippet(body []byte) string {
	const max = 512
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}

// requestURL names the request target for error messages.
func requestURL(resp *http.Response) string {
	if resp.Request != nil && resp.Request.URL != nil {
		return resp.Request.URL.String()
	}
	return "response"
}
