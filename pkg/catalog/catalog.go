// Package catalog models the service's endpoint catalog: named URL
// templates with ordered binding slots, decoded from the remote JSON
// document or a local snapshot file.
//
// A catalog maps endpoint names to descriptors. Descriptors carry a
// parsed template (placeholders like `{unit}`, `{member}` or anonymous
// `{}`) and resolve caller arguments into a final request URL.
//
// Example usage:
//
//	cat, err := catalog.Decode(data)
//	if err != nil {
//	    return err
//	}
//	d, ok := cat.Get("photo-url")
//	if !ok {
//	    return err
//	}
//	url, err := d.Resolve([]any{"individual"}, map[string]any{"member": 42}, nil)
package catalog

import (
	"maps"
	"sort"
	"sync"

	"github.com/agentstation/utc"

	"github.com/unitworks/switchboard/pkg/errors"
)

// Catalog is a concurrent safe map of endpoint descriptors, together
// with provenance for where and when the document was loaded.
type Catalog struct {
	mu          sync.RWMutex
	descriptors map[string]*Descriptor
	source      string
	fetchedAt   utc.Time
}

// Option defines a function that configures a Catalog instance.
type Option func(*Catalog)

// WithSource records where the catalog document came from (URL or file
// path).
func WithSource(source string) Option {
	return func(c *Catalog) {
		c.source = source
	}
}

// WithDescriptors initializes the map with existing descriptors.
func WithDescriptors(descriptors map[string]*Descriptor) Option {
	return func(c *Catalog) {
		if descriptors != nil {
			c.descriptors = make(map[string]*Descriptor, len(descriptors))
			maps.Copy(c.descriptors, descriptors)
		}
	}
}

// New creates a new empty Catalog with optional configuration.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		descriptors: make(map[string]*Descriptor),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get returns a descriptor by name and whether it exists.
func (c *Catalog) Get(name string) (*Descriptor, bool) {
	c.mu.RLock()
	d, ok := c.descriptors[name]
	c.mu.RUnlock()
	return d, ok
}

// Set sets a descriptor by name. Returns an error if the descriptor is nil.
func (c *Catalog) Set(name string, d *Descriptor) error {
	if d == nil {
		return errors.New("descriptor cannot be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.descriptors[name] = d
	return nil
}

// Add adds a descriptor under its own name, returning an error if the
// name already exists.
func (c *Catalog) Add(d *Descriptor) error {
	if d == nil {
		return errors.New("descriptor cannot be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.descriptors[d.Name]; exists {
		return errors.New("descriptor " + d.Name + " already exists")
	}

	c.descriptors[d.Name] = d
	return nil
}

// Len returns the number of descriptors.
func (c *Catalog) Len() int {
	c.mu.RLock()
	length := len(c.descriptors)
	c.mu.RUnlock()
	return length
}

// Names returns the endpoint names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	names := make([]string, 0, len(c.descriptors))
	for name := range c.descriptors {
		names = append(names, name)
	}
	c.mu.RUnlock()

	sort.Strings(names)
	return names
}

// List returns all descriptors sorted by name.
func (c *Catalog) List() []*Descriptor {
	c.mu.RLock()
	descriptors := make([]*Descriptor, 0, len(c.descriptors))
	for _, d := range c.descriptors {
		descriptors = append(descriptors, d)
	}
	c.mu.RUnlock()

	sort.Slice(descriptors, func(i, j int) bool {
		return descriptors[i].Name < descriptors[j].Name
	})
	return descriptors
}

// Map returns a copy of the name to descriptor map.
func (c *Catalog) Map() map[string]*Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]*Descriptor, len(c.descriptors))
	maps.Copy(result, c.descriptors)
	return result
}

// ForEach applies fn to each descriptor. If fn returns false, iteration
// stops early. fn must not modify the catalog.
func (c *Catalog) ForEach(fn func(name string, d *Descriptor) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for name, d := range c.descriptors {
		if !fn(name, d) {
			break
		}
	}
}

// MarkFetched records the catalog's provenance after a successful load.
func (c *Catalog) MarkFetched(source string) {
	c.mu.Lock()
	c.source = source
	c.fetchedAt = utc.Now()
	c.mu.Unlock()
}

// Source returns where the catalog document came from (URL or file path).
func (c *Catalog) Source() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source
}

// FetchedAt returns when the catalog document was loaded. Zero when the
// catalog was built by hand.
func (c *Catalog) FetchedAt() utc.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}
