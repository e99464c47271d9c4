// Package openapi converts discovery documents to OpenAPI 3 specs.
package openapi

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/apitools/endpointindex/internal/discovery"
)

// Convert builds an OpenAPI 3 document from a discovery document.
// Every method becomes a path operation with the flattened qualified
// name as its operationId. Methods without a REST path are skipped,
// since OpenAPI path items require one. Resources and methods are
// visited in the same lexicographic order as the text index.
func Convert(doc *discovery.Document) *openapi3.T {
	title := doc.Title
	if title == "" {
		title = doc.Name
	}
	version := doc.Version
	if version == "" {
		version = "unknown"
	}

	spec := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   title,
			Version: version,
		},
		Paths: openapi3.NewPaths(),
	}

	if doc.BaseURL != "" {
		spec.Servers = openapi3.Servers{{URL: doc.BaseURL}}
	}

	addResources(spec, doc.Resources, "")

	return spec
}

func addResources(spec *openapi3.T, resources map[string]*discovery.Resource, prefix string) {
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
			if method == nil || method.Path == "" {
				continue
			}

			path := "/" + strings.TrimPrefix(method.Path, "/")
			item := spec.Paths.Value(path)
			if item == nil {
				item = &openapi3.PathItem{}
				spec.Paths.Set(path, item)
			}

			op := &openapi3.Operation{
				OperationID: qualified + "." + methodName,
				Summary:     method.Description,
				Responses:   openapi3.NewResponses(),
			}
			item.SetOperation(strings.ToUpper(method.HTTPMethod), op)
		}

		addResources(spec, res.Resources, qualified)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CountOperations returns the number of operations in the spec. It
// differs from the index endpoint count by the number of methods that
// declare no REST path.
func CountOperations(spec *openapi3.T) int {
	count := 0
	for _, item := range spec.Paths.Map() {
		count += len(item.Operations())
	}
	return count
}

// WriteFile serializes the spec to path. A .yaml or .yml extension
// selects YAML output; everything else gets indented JSON.
func WriteFile(spec *openapi3.T, path string) error {
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal spec: %w", err)
	}

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		var tree map[string]interface{}
		if err := json.Unmarshal(data, &tree); err != nil {
			return fmt.Errorf("failed to rebuild spec for yaml: %w", err)
		}
		data, err = yaml.Marshal(tree)
		if err != nil {
			return fmt.Errorf("failed to marshal spec: %w", err)
		}
	}

	return os.WriteFile(path, data, 0644)
}
