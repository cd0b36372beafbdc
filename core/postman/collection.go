package postman

// SchemaV210 identifies the Postman collection format this package emits.
const SchemaV210 = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

// Collection is the root document: fixed info/auth/variable blocks plus the
// item tree that accumulates folders as categories are assembled.
type Collection struct {
	Info     Info       `json:"info"`
	Auth     *Auth      `json:"auth,omitempty"`
	Variable []Variable `json:"variable,omitempty"`
	Item     []Item     `json:"item"`
}

type Info struct {
	Name        string `json:"name"`
	PostmanID   string `json:"_postman_id,omitempty"`
	Description string `json:"description"`
	Schema      string `json:"schema"`
	Version     string `json:"version"`
}

// Auth doubles as the collection-level bearer declaration and the
// request-level override. Overrides carry only Type.
type Auth struct {
	Type   string      `json:"type"`
	Bearer []AuthParam `json:"bearer,omitempty"`
}

type AuthParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

type Variable struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

// Item is one node of the collection tree, either a Folder or a RequestItem.
type Item interface {
	itemNode()
}

// Folder groups request items under a display name.
type Folder struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Item        []Item `json:"item"`
}

func (Folder) itemNode() {}

// RequestItem is a leaf request. Response must be non-nil so empty example
// lists encode as [] rather than null.
type RequestItem struct {
	Name     string     `json:"name"`
	Request  Request    `json:"request"`
	Response []Response `json:"response"`
}

func (RequestItem) itemNode() {}

// Request describes one call. Header must be non-nil for the same encoding
// reason as RequestItem.Response.
type Request struct {
	Method      string   `json:"method"`
	Header      []Header `json:"header"`
	URL         URL      `json:"url"`
	Description string   `json:"description"`
	Auth        *Auth    `json:"auth,omitempty"`
	Body        *Body    `json:"body,omitempty"`
}

type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type URL struct {
	Raw  string   `json:"raw"`
	Host []string `json:"host"`
	Path []string `json:"path"`
}

type Body struct {
	Mode    string       `json:"mode"`
	Raw     string       `json:"raw"`
	Options *BodyOptions `json:"options,omitempty"`
}

type BodyOptions struct {
	Raw RawOptions `json:"raw"`
}

type RawOptions struct {
	Language string `json:"language"`
}

// Response is a canned example attached to a request.
type Response struct {
	Name            string   `json:"name"`
	Status          string   `json:"status"`
	Code            int      `json:"code"`
	PreviewLanguage string   `json:"_postman_previewlanguage"`
	Header          []Header `json:"header"`
	Body            string   `json:"body"`
}

// Counts walks the item tree and reports folder and request totals.
func (c *Collection) Counts() (folders, requests int) {
	var walk func(items []Item)
	walk = func(items []Item) {
		for _, item := range items {
			switch node := item.(type) {
			case Folder:
				folders++
				walk(node.Item)
			case RequestItem:
				requests++
			}
		}
	}
	walk(c.Item)
	return folders, requests
}
