package switchboard

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/unitworks/switchboard/pkg/errors"
)

// Response wraps the raw HTTP response from an endpoint call. The
// underlying response is returned untouched: no status validation, no
// body-shape validation. Bytes and JSON read the body at most once and
// cache it.
type Response struct {
	*http.Response

	body    []byte
	read    bool
	readErr error
}

func newResponse(resp *http.Response) *Response {
	return &Response{Response: resp}
}

// Bytes reads and closes the response body, returning the cached bytes
// on later calls.
func (r *Response) Bytes() ([]byte, error) {
	if r.read {
		return r.body, r.readErr
	}
	r.read = true
	defer func() { _ = r.Body.Close() }()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		r.readErr = errors.WrapIO("read", r.url(), err)
		return nil, r.readErr
	}
	r.body = body
	return r.body, nil
}

// JSON decodes the response body into target.
func (r *Response) JSON(target any) error {
	body, err := r.Bytes()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", r.url(), err)
	}
	return nil
}

func (r *Response) url() string {
	if r.Request != nil && r.Request.URL != nil {
		return r.Request.URL.String()
	}
	return "response"
}
