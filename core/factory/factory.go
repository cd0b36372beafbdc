package factory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rail-service/postman-gen/core/ir"
	"github.com/rail-service/postman-gen/core/mapper"
	"github.com/rail-service/postman-gen/core/postman"
)

const (
	DefaultCollectionName        = "RAIL Service API - Auto-Generated"
	DefaultCollectionDescription = "Auto-generated comprehensive API collection for RAIL Platform"
	DefaultCollectionVersion     = "2.0.0"
	DefaultBaseURL               = "http://localhost:8080"
)

// CollectionFactory assembles the collection document. The info, auth, and
// variable blocks are fixed at construction; folders accumulate through
// AddFolder and Build. A factory builds one document.
type CollectionFactory struct {
	name          string
	description   string
	version       string
	baseURL       string
	metadata      Metadata
	fallbackGlyph string
	items         []postman.Item
}

func NewCollectionFactory() *CollectionFactory {
	return &CollectionFactory{
		name:          DefaultCollectionName,
		description:   DefaultCollectionDescription,
		version:       DefaultCollectionVersion,
		baseURL:       DefaultBaseURL,
		metadata:      Metadata{},
		fallbackGlyph: mapper.FallbackGlyph,
	}
}

func (cf *CollectionFactory) WithName(name string) *CollectionFactory {
	if name != "" {
		cf.name = name
	}
	return cf
}

func (cf *CollectionFactory) WithDescription(description string) *CollectionFactory {
	if description != "" {
		cf.description = description
	}
	return cf
}

func (cf *CollectionFactory) WithVersion(version string) *CollectionFactory {
	if version != "" {
		cf.version = version
	}
	return cf
}

func (cf *CollectionFactory) WithBaseURL(baseURL string) *CollectionFactory {
	if baseURL != "" {
		cf.baseURL = baseURL
	}
	return cf
}

func (cf *CollectionFactory) WithMetadata(metadata Metadata) *CollectionFactory {
	if metadata != nil {
		cf.metadata = metadata
	}
	return cf
}

func (cf *CollectionFactory) WithFallbackGlyph(glyph string) *CollectionFactory {
	if glyph != "" {
		cf.fallbackGlyph = glyph
	}
	return cf
}

// AddFolder appends one folder built from the given endpoints, in input
// order.
func (cf *CollectionFactory) AddFolder(name, description string, endpoints []ir.Endpoint) {
	requests := make([]postman.Item, 0, len(endpoints))
	for _, endpoint := range endpoints {
		requests = append(requests, cf.createRequestItem(endpoint))
	}
	cf.items = append(cf.items, postman.Folder{
		Name:        name,
		Description: description,
		Item:        requests,
	})
}

// Build turns grouped endpoints into the finished document. Folder order
// follows the group order handed in. Group glyphs prefix the folder name; a
// group without one gets the fallback glyph.
func (cf *CollectionFactory) Build(groups []mapper.Group) *postman.Collection {
	for _, group := range groups {
		glyph := group.Glyph
		if glyph == "" {
			glyph = cf.fallbackGlyph
		}
		name := fmt.Sprintf("%s %s", glyph, group.Name)
		description := fmt.Sprintf("%s endpoints", group.Name)
		cf.AddFolder(name, description, group.Endpoints)
	}
	return cf.assemble()
}

func (cf *CollectionFactory) assemble() *postman.Collection {
	items := cf.items
	if items == nil {
		items = []postman.Item{}
	}
	return &postman.Collection{
		Info: postman.Info{
			Name:        cf.name,
			PostmanID:   collectionID(cf.name),
			Description: cf.description,
			Schema:      postman.SchemaV210,
			Version:     cf.version,
		},
		Auth: &postman.Auth{
			Type: "bearer",
			Bearer: []postman.AuthParam{
				{Key: "token", Value: "{{access_token}}", Type: "string"},
			},
		},
		Variable: []postman.Variable{
			{Key: "base_url", Value: cf.baseURL, Type: "string"},
			{Key: "access_token", Value: "", Type: "string"},
			{Key: "refresh_token", Value: "", Type: "string"},
			{Key: "user_id", Value: "", Type: "string"},
		},
		Item: items,
	}
}

// collectionID derives a stable v5 UUID from the collection name, so repeated
// runs over identical input emit identical documents.
func collectionID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("postman://collection/"+name)).String()
}

func (cf *CollectionFactory) createRequestItem(endpoint ir.Endpoint) postman.RequestItem {
	entry := cf.metadata[endpoint.Handler]

	path := endpoint.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	name := endpoint.Path
	if endpoint.Handler != "" {
		name = FormatRequestName(endpoint.Handler)
	}

	description := entry.Description
	if description == "" {
		description = endpoint.Method + " " + path
	}

	request := postman.Request{
		Method: endpoint.Method,
		Header: []postman.Header{},
		URL: postman.URL{
			Raw:  "{{base_url}}" + path,
			Host: []string{"{{base_url}}"},
			Path: strings.Split(strings.Trim(path, "/"), "/"),
		},
		Description: description,
	}

	if !endpoint.AuthRequired {
		request.Auth = &postman.Auth{Type: "noauth"}
	}

	if ir.HasBodyMethod(endpoint.Method) && len(entry.Body) > 0 {
		request.Body = &postman.Body{
			Mode: "raw",
			Raw:  indentJSON(entry.Body),
			Options: &postman.BodyOptions{
				Raw: postman.RawOptions{Language: "json"},
			},
		}
		request.Header = append(request.Header, postman.Header{
			Key:   "Content-Type",
			Value: "application/json",
		})
	}

	item := postman.RequestItem{
		Name:     name,
		Request:  request,
		Response: []postman.Response{},
	}

	if len(entry.Response) > 0 {
		code := 201
		if endpoint.Method == ir.MethodGet {
			code = 200
		}
		item.Response = append(item.Response, postman.Response{
			Name:            "Success",
			Status:          "OK",
			Code:            code,
			PreviewLanguage: "json",
			Header: []postman.Header{
				{Key: "Content-Type", Value: "application/json"},
			},
			Body: indentJSON(entry.Response),
		})
	}

	return item
}

// indentJSON re-indents a raw payload with two spaces, preserving the
// author's key order. Payloads that fail to re-indent pass through as-is.
func indentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
