package output

import (
	"strings"
	"time"

	"github.com/apitools/endpointindex/internal/extract"
)

// Result represents the complete outcome of one index generation.
type Result struct {
	Source      string             `json:"source"`
	API         string             `json:"api,omitempty"`
	Version     string             `json:"version,omitempty"`
	GeneratedAt time.Time          `json:"generated_at"`
	Stats       Stats              `json:"stats"`
	Endpoints   []extract.Endpoint `json:"endpoints"`
}

// Stats contains statistics about the generated index.
type Stats struct {
	EndpointCount int            `json:"endpoint_count"`
	ByHTTPMethod  map[string]int `json:"by_http_method,omitempty"`
	ByResource    map[string]int `json:"by_resource,omitempty"`
}

// ComputeStats tallies endpoints by HTTP method and by top-level
// resource (the qualified name's first segment).
func ComputeStats(endpoints []extract.Endpoint) Stats {
	stats := Stats{
		EndpointCount: len(endpoints),
		ByHTTPMethod:  make(map[string]int),
		ByResource:    make(map[string]int),
	}

	for _, ep := range endpoints {
		stats.ByHTTPMethod[ep.HTTPMethod]++

		root := ep.QualifiedName
		if i := strings.Index(root, "."); i >= 0 {
			root = root[:i]
		}
		stats.ByResource[root]++
	}

	return stats
}
