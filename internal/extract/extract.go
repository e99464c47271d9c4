// Package extract flattens discovery resources into endpoint entries.
package extract

import (
	"sort"

	"github.com/apitools/endpointindex/internal/discovery"
)

// DefaultPath is emitted when a method declares no REST path.
const DefaultPath = "N/A"

// Endpoint is one flattened API method: HTTP verb, REST path, and the
// dot-joined resource chain plus method name.
type Endpoint struct {
	HTTPMethod    string `json:"http_method"`
	Path          string `json:"path"`
	QualifiedName string `json:"qualified_name"`
}

// Flatten walks resources depth-first and returns one Endpoint per
// method. Resource and method names are visited in lexicographic
// order, and a resource's own methods precede those of its nested
// resources, so the output is stable regardless of document order.
//
// Missing methods or resources maps are treated as empty. Flatten is a
// pure function; its input is never mutated.
func Flatten(resources map[string]*discovery.Resource, prefix string) []Endpoint {
	var endpoints []Endpoint

	for _, name := range sortedKeys(resources) {
		res := resources[name]
		if res == nil {
			continue
		}

		qualified := name
		if prefix != "" {
			qualified = prefix + "." + name
		}

		for _, methodName := range sortedKeys(res.Methods) {
			method := res.Methods[methodName]
			if method == nil {
				continue
			}

			path := method.Path
			if path == "" {
				path = DefaultPath
			}

			endpoints = append(endpoints, Endpoint{
				HTTPMethod:    method.HTTPMethod,
				Path:          path,
				QualifiedName: qualified + "." + methodName,
			})
		}

		endpoints = append(endpoints, Flatten(res.Resources, qualified)...)
	}

	return endpoints
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
