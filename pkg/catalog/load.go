package catalog

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/unitworks/switchboard/pkg/errors"
)

// LoadFile reads a catalog snapshot file, picking the decoder by
// extension (.yaml/.yml for YAML, anything else JSON). Failures are
// CatalogError so callers can treat a bad snapshot like a failed fetch.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewCatalogError(path, "reading catalog snapshot", errors.WrapIO("read", path, err))
	}

	var c *Catalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		c, err = DecodeYAML(data)
	default:
		c, err = Decode(data)
	}
	if err != nil {
		return nil, errors.NewCatalogError(path, "malformed catalog snapshot", err)
	}

	c.MarkFetched(path)
	return c, nil
}
