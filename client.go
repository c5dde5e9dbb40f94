package switchboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/agentstation/utc"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/unitworks/switchboard/internal/transport"
	"github.com/unitworks/switchboard/pkg/catalog"
	"github.com/unitworks/switchboard/pkg/errors"
	"github.com/unitworks/switchboard/pkg/logging"
)

// unitParam is the template parameter auto-filled from the session.
const unitParam = "unit"

// Client talks to one catalog-published service. It owns the endpoint
// catalog, the HTTP session (cookies and access token), and the
// signed-in state. A Client is not safe for concurrent use.
type Client struct {
	transport *transport.Client
	catalog   *catalog.Catalog
	session   Session
	logger    *zerolog.Logger
}

// New builds a client and loads its endpoint catalog: from an injected
// catalog, from a snapshot file, or by fetching the catalog URL, in
// that order of precedence. The remote path fetches exactly once; the
// catalog is never refreshed during the client's lifetime. With
// credentials configured, New also signs in.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	o := defaults()
	if err := o.apply(opts...); err != nil {
		return nil, err
	}

	logger := o.logger
	if logger == nil {
		logger = logging.Default()
	}

	t, err := transport.New(transportOptions(o)...)
	if err != nil {
		return nil, err
	}

	c := &Client{transport: t, logger: logger}
	if err := c.loadCatalog(ctx, o); err != nil {
		return nil, err
	}

	if o.signIn {
		if err := c.SignIn(ctx, o.username, o.password); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// transportOptions maps client options onto the transport's.
func transportOptions(o *options) []transport.Option {
	topts := make([]transport.Option, 0, 4+len(o.headers))
	if o.httpClient != nil {
		topts = append(topts, transport.WithHTTPClient(o.httpClient))
	}
	if o.timeout > 0 {
		topts = append(topts, transport.WithTimeout(o.timeout))
	}
	if o.userAgent != "" {
		topts = append(topts, transport.WithUserAgent(o.userAgent))
	}
	if o.logger != nil {
		topts = append(topts, transport.WithLogger(o.logger))
	}
	for key, values := range o.headers {
		for _, value := range values {
			topts = append(topts, transport.WithHeader(key, value))
		}
	}
	return topts
}

// loadCatalog resolves the catalog source chosen by the options.
func (c *Client) loadCatalog(ctx context.Context, o *options) error {
	switch {
	case o.catalog != nil:
		c.catalog = o.catalog
	case o.catalogFile != "":
		cat, err := catalog.LoadFile(o.catalogFile)
		if err != nil {
			return err
		}
		c.catalog = cat
	default:
		cat, err := c.fetchCatalog(ctx, o.catalogURL)
		if err != nil {
			return err
		}
		c.catalog = cat
	}

	c.logger.Debug().
		Str("source", c.catalog.Source()).
		Int("endpoints", c.catalog.Len()).
		Msg("Catalog loaded")
	return nil
}

// fetchCatalog GETs and decodes the remote catalog document.
func (c *Client) fetchCatalog(ctx context.Context, catalogURL string) (*catalog.Catalog, error) {
	resp, err := c.transport.Get(ctx, catalogURL)
	if err != nil {
		return nil, errors.NewCatalogError(catalogURL, "fetching catalog document", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewCatalogError(catalogURL, fmt.Sprintf("catalog fetch returned status %d", resp.StatusCode), nil)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewCatalogError(catalogURL, "reading catalog document", errors.WrapIO("read", catalogURL, err))
	}
	cat, err := catalog.Decode(data)
	if err != nil {
		return nil, errors.NewCatalogError(catalogURL, "malformed catalog document", err)
	}
	cat.MarkFetched(catalogURL)
	return cat, nil
}

// SignIn authenticates against the catalog's sign-in endpoint and
// records the session: cookies in the jar, an access token when the
// service returns one, and the user's unit number. Signing in replaces
// any existing session, even when the new attempt fails.
func (c *Client) SignIn(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return &errors.ValidationError{Field: "credentials", Message: "username and password are required"}
	}
	desc, ok := c.catalog.Get(EndpointAuth)
	if !ok {
		return errors.NewCatalogError(c.catalog.Source(), "catalog has no "+EndpointAuth+" endpoint", errors.ErrNotFound)
	}
	authURL, err := desc.Resolve(nil, nil, nil)
	if err != nil {
		return err
	}
	if err := c.reset(); err != nil {
		return err
	}

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	resp, err := c.transport.PostForm(ctx, authURL, form)
	if err != nil {
		return errors.NewAuthenticationError(EndpointAuth, 0, "sign-in request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.NewAuthenticationError(EndpointAuth, resp.StatusCode, "sign-in rejected", nil)
	}

	// The service marks success with an ETag header on the cookie flow,
	// or a JSON access token. A 2xx carrying neither is the sign-in
	// page served again: the credentials were rejected.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewAuthenticationError(EndpointAuth, resp.StatusCode, "reading sign-in response", errors.WrapIO("read", authURL, err))
	}
	token := accessToken(body)
	if resp.Header.Get("Etag") == "" && token == "" {
		return errors.NewAuthenticationError(EndpointAuth, resp.StatusCode, "response carried no session marker", errors.ErrInvalidCredentials)
	}
	if token != "" {
		c.transport.SetToken(token)
	}

	unit, err := c.currentUnit(ctx)
	if err != nil {
		c.transport.ClearToken()
		return err
	}

	c.session = Session{
		Unit:        unit,
		Token:       token,
		TokenExpiry: tokenExpiry(token),
		SignedInAt:  utc.Now(),
		valid:       true,
	}
	c.logger.Debug().
		Str("username", username).
		Str("unit", unit).
		Bool("token", token != "").
		Msg("Signed in")
	return nil
}

// SignOut ends the session. It calls the catalog's sign-out endpoint
// when one exists, then drops the local session regardless of the
// remote outcome; a remote failure is still returned. Signing out
// while signed out is a no-op.
func (c *Client) SignOut(ctx context.Context) error {
	if !c.session.valid {
		return nil
	}

	var remoteErr error
	if desc, ok := c.catalog.Get(EndpointSignOut); ok {
		remoteErr = c.remoteSignOut(ctx, desc)
	}

	if err := c.reset(); err != nil {
		return errors.Join(remoteErr, err)
	}
	c.logger.Debug().Msg("Signed out")
	return remoteErr
}

// remoteSignOut calls the sign-out endpoint. The response status is
// ignored; the server may have forgotten the session already.
func (c *Client) remoteSignOut(ctx context.Context, desc *catalog.Descriptor) error {
	target, err := desc.Resolve(nil, nil, nil)
	if err != nil {
		return err
	}
	resp, err := c.transport.Get(ctx, target)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	return nil
}

// Get resolves the named endpoint and performs the HTTP GET, returning
// the raw response.
func (c *Client) Get(ctx context.Context, name string, opts ...RequestOption) (*Response, error) {
	target, err := c.Resolve(name, opts...)
	if err != nil {
		return nil, err
	}
	resp, err := c.transport.Get(ctx, target)
	if err != nil {
		return nil, err
	}
	return newResponse(resp), nil
}

// Resolve binds arguments into the named endpoint's template and
// returns the final URL without requesting it. An unbound unit
// parameter is auto-filled from the session when signed in; explicit
// values always win.
func (c *Client) Resolve(name string, opts ...RequestOption) (string, error) {
	desc, ok := c.catalog.Get(name)
	if !ok {
		return "", &errors.UnknownEndpointError{Name: name}
	}
	ro := newResolveOptions(opts...)
	return desc.Resolve(ro.args, ro.named, c.sessionFallback())
}

// GetURL performs a GET against an absolute URL with the session's
// cookies and token. The URL must be http or https; there is no
// catalog lookup and no template binding.
func (c *Client) GetURL(ctx context.Context, rawURL string) (*Response, error) {
	if err := validateHTTPURL(rawURL); err != nil {
		return nil, err
	}
	resp, err := c.transport.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return newResponse(resp), nil
}

// SetHeader adds a default header to every subsequent request.
func (c *Client) SetHeader(key, value string) {
	c.transport.SetHeader(key, value)
}

// Catalog returns the client's endpoint catalog.
func (c *Client) Catalog() *catalog.Catalog {
	return c.catalog
}

// Session returns a copy of the current session state.
func (c *Client) Session() Session {
	return c.session
}

// SignedIn reports whether the client holds a valid session.
func (c *Client) SignedIn() bool {
	return c.session.valid
}

// Unit returns the signed-in user's unit number, empty when signed
// out.
func (c *Client) Unit() string {
	return c.session.Unit
}

// reset drops all local session state: fields, token, cookie jar.
func (c *Client) reset() error {
	c.session = Session{}
	return c.transport.ResetSession()
}

// sessionFallback exposes the session's unit number to template
// resolution. Signed out, or signed in without a unit, there is
// nothing to fill.
func (c *Client) sessionFallback() map[string]string {
	if !c.session.valid || c.session.Unit == "" {
		return nil
	}
	return map[string]string{unitParam: c.session.Unit}
}

// currentUnit asks the service for the signed-in user's unit number.
// A catalog without that endpoint leaves the unit empty.
func (c *Client) currentUnit(ctx context.Context) (string, error) {
	desc, ok := c.catalog.Get(EndpointUserUnit)
	if !ok {
		c.logger.Debug().Str("endpoint", EndpointUserUnit).Msg("Catalog has no unit endpoint, unit left empty")
		return "", nil
	}
	target, err := desc.Resolve(nil, nil, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.transport.Get(ctx, target)
	if err != nil {
		return "", err
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := transport.DecodeResponse(resp, &payload); err != nil {
		return "", err
	}
	return payload.Message, nil
}

// accessToken pulls an access token out of a JSON sign-in response.
// Non-JSON bodies, like the HTML sign-in page, yield no token.
func accessToken(body []byte) string {
	var payload struct {
		AccessToken string `json:"access_token"`
		Token       string `json:"token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.AccessToken != "" {
		return payload.AccessToken
	}
	return payload.Token
}

// tokenExpiry reads the expiry claim from a JWT without verifying the
// signature; the expiry only tracks session validity locally. Opaque
// tokens have none.
func tokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
