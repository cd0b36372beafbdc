package ir

// Endpoint is one route fact recovered from a source of route declarations.
// Values are never mutated after extraction.
type Endpoint struct {
	Method       string `json:"method"`
	Path         string `json:"path"`
	Handler      string `json:"handler,omitempty"`
	AuthRequired bool   `json:"authRequired"`
	Group        string `json:"group,omitempty"`
}

const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodPatch  = "PATCH"
	MethodDelete = "DELETE"
)

// Methods lists the HTTP verbs extraction recognizes, in matching order.
func Methods() []string {
	return []string{MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete}
}

// HasBodyMethod reports whether the verb may carry a request body in the
// generated collection.
func HasBodyMethod(method string) bool {
	switch method {
	case MethodPost, MethodPut, MethodPatch:
		return true
	}
	return false
}

// Stats counts what a scan saw versus what it kept, so silent losses stay
// diagnosable.
type Stats struct {
	FilesScanned int `json:"filesScanned"`
	Extracted    int `json:"extracted"`
}
