package switchboard

import (
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/unitworks/switchboard/pkg/catalog"
	"github.com/unitworks/switchboard/pkg/errors"
)

// options collects the configuration assembled by Option functions.
type options struct {
	catalogURL  string
	catalogFile string
	catalog     *catalog.Catalog

	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	headers    http.Header
	logger     *zerolog.Logger

	username string
	password string
	signIn   bool
}

// defaults returns the options New starts from.
func defaults() *options {
	return &options{
		catalogURL: DefaultCatalogURL,
		headers:    make(http.Header),
	}
}

// apply runs each option in order, stopping at the first error.
func (o *options) apply(opts ...Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return err
		}
	}
	return nil
}

// Option configures a Client during New.
type Option func(*options) error

// WithCatalogURL overrides the catalog document URL.
func WithCatalogURL(rawURL string) Option {
	return func(o *options) error {
		if err := validateHTTPURL(rawURL); err != nil {
			return err
		}
		o.catalogURL = rawURL
		return nil
	}
}

// WithCatalogFile loads the catalog from a local JSON or YAML snapshot
// instead of fetching it.
func WithCatalogFile(path string) Option {
	return func(o *options) error {
		if path == "" {
			return &errors.ValidationError{Field: "catalog file", Message: "path is required"}
		}
		o.catalogFile = path
		return nil
	}
}

// WithCatalog injects an already loaded catalog, for sharing one
// catalog across clients or for tests.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(o *options) error {
		if cat == nil {
			return &errors.ValidationError{Field: "catalog", Message: "catalog is required"}
		}
		o.catalog = cat
		return nil
	}
}

// WithHTTPClient sets the base HTTP client. Its settings are copied;
// the client still installs its own cookie jar.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) error {
		if hc == nil {
			return &errors.ValidationError{Field: "http client", Message: "client is required"}
		}
		o.httpClient = hc
		return nil
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) error {
		if timeout <= 0 {
			return &errors.ValidationError{Field: "timeout", Value: timeout, Message: "must be positive"}
		}
		o.timeout = timeout
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(o *options) error {
		o.userAgent = userAgent
		return nil
	}
}

// WithHeader adds a default header sent with every request.
func WithHeader(key, value string) Option {
	return func(o *options) error {
		o.headers.Add(key, value)
		return nil
	}
}

// WithLogger sets the logger for the client and its transport.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithCredentials makes New sign in before returning. The credentials
// are validated at sign-in time.
func WithCredentials(username, password string) Option {
	return func(o *options) error {
		o.username = username
		o.password = password
		o.signIn = true
		return nil
	}
}

// validateHTTPURL checks that rawURL is an absolute http or https URL.
func validateHTTPURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &errors.ValidationError{Field: "url", Value: rawURL, Message: "must be an absolute http or https URL"}
	}
	return nil
}

// resolveOptions collects per-request template bindings.
type resolveOptions struct {
	args  []any
	named map[string]any
}

// RequestOption supplies template bindings to Get and Resolve.
type RequestOption func(*resolveOptions)

// newResolveOptions applies request options over empty bindings.
func newResolveOptions(opts ...RequestOption) *resolveOptions {
	r := &resolveOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Args supplies positional arguments. They fill anonymous placeholders
// in appearance order, then any declared parameters still unbound;
// surplus arguments are ignored.
func Args(args ...any) RequestOption {
	return func(r *resolveOptions) {
		r.args = append(r.args, args...)
	}
}

// Param binds one named template parameter.
func Param(name string, value any) RequestOption {
	return func(r *resolveOptions) {
		if r.named == nil {
			r.named = make(map[string]any)
		}
		r.named[name] = value
	}
}

// Params binds a set of named template parameters.
func Params(values map[string]any) RequestOption {
	return func(r *resolveOptions) {
		if r.named == nil {
			r.named = make(map[string]any, len(values))
		}
		for name, value := range values {
			r.named[name] = value
		}
	}
}
