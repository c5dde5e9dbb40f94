package output

import (
	"io"
	"strings"

	"github.com/unitworks/switchboard/pkg/catalog"
)

// endpointView is the JSON/YAML shape of one catalog entry.
type endpointView struct {
	Name     string   `json:"name" yaml:"name"`
	Params   []string `json:"params,omitempty" yaml:"params,omitempty"`
	Template string   `json:"template" yaml:"template"`
}

// FormatEndpoints writes a catalog listing in the requested format.
// Table output shows names and parameters; wide output adds the
// template text.
func FormatEndpoints(w io.Writer, descriptors []*catalog.Descriptor, format Format) error {
	formatter := NewFormatter(format)

	switch format {
	case FormatTable, FormatWide, "":
		return formatter.Format(w, endpointTableData(descriptors, format == FormatWide))
	default:
		views := make([]endpointView, 0, len(descriptors))
		for _, d := range descriptors {
			views = append(views, endpointView{
				Name:     d.Name,
				Params:   d.Requires(),
				Template: d.URL(),
			})
		}
		return formatter.Format(w, views)
	}
}

func endpointTableData(descriptors []*catalog.Descriptor, wide bool) Data {
	headers := []string{"NAME", "PARAMS"}
	if wide {
		headers = append(headers, "TEMPLATE")
	}

	rows := make([][]string, 0, len(descriptors))
	for _, d := range descriptors {
		params := strings.Join(d.Requires(), ", ")
		if params == "" {
			params = "-"
		}
		row := []string{d.Name, params}
		if wide {
			row = append(row, d.URL())
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows}
}
