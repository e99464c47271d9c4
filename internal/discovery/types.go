// Package discovery models Google-style API discovery documents.
package discovery

// Document is the root of an API discovery document. Only the fields
// the indexer consumes are modeled; everything else in the document is
// ignored on unmarshal.
type Document struct {
	Kind        string               `json:"kind,omitempty"`
	Name        string               `json:"name,omitempty"`
	Version     string               `json:"version,omitempty"`
	Title       string               `json:"title,omitempty"`
	RootURL     string               `json:"rootUrl,omitempty"`
	ServicePath string               `json:"servicePath,omitempty"`
	BaseURL     string               `json:"baseUrl,omitempty"`
	Resources   map[string]*Resource `json:"resources,omitempty"`
}

// Resource is a named grouping of API methods, possibly nested. Both
// maps may be absent, which is treated the same as empty.
type Resource struct {
	Methods   map[string]*Method   `json:"methods,omitempty"`
	Resources map[string]*Resource `json:"resources,omitempty"`
}

// Method describes a single API method.
type Method struct {
	ID          string `json:"id,omitempty"`
	Path        string `json:"path,omitempty"`
	HTTPMethod  string `json:"httpMethod"`
	Description string `json:"description,omitempty"`
}
