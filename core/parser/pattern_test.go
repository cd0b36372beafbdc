package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rail-service/postman-gen/core/ir"
)

func writeRouteFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write route file: %v", err)
	}
}

func TestExtractRecognizesAllVerbs(t *testing.T) {
	dir := t.TempDir()
	writeRouteFile(t, dir, "routes.go", `package routes

func Register(router *gin.Engine) {
	router.GET("/users", ListUsersHandler)
	router.POST("/users", CreateUserHandler)
	router.PUT("/users/:id", UpdateUserHandler)
	router.PATCH("/users/:id", PatchUserHandler)
	router.DELETE("/users/:id", DeleteUserHandler)
}
`)

	endpoints, stats, err := NewPatternExtractor(dir).Extract()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.FilesScanned != 1 {
		t.Fatalf("expected 1 file scanned, got %d", stats.FilesScanned)
	}
	if len(endpoints) != 5 {
		t.Fatalf("expected 5 endpoints, got %d", len(endpoints))
	}

	want := []ir.Endpoint{
		{Method: "GET", Path: "/users", Handler: "ListUsersHandler", AuthRequired: true, Group: "router"},
		{Method: "POST", Path: "/users", Handler: "CreateUserHandler", AuthRequired: true, Group: "router"},
		{Method: "PUT", Path: "/users/:id", Handler: "UpdateUserHandler", AuthRequired: true, Group: "router"},
		{Method: "PATCH", Path: "/users/:id", Handler: "PatchUserHandler", AuthRequired: true, Group: "router"},
		{Method: "DELETE", Path: "/users/:id", Handler: "DeleteUserHandler", AuthRequired: true, Group: "router"},
	}
	for i, expected := range want {
		if endpoints[i] != expected {
			t.Fatalf("endpoint %d: expected %+v, got %+v", i, expected, endpoints[i])
		}
	}
}

func TestExtractHandlesSpacingVariants(t *testing.T) {
	dir := t.TempDir()
	writeRouteFile(t, dir, "routes.go", `package routes

func Register(r *gin.Engine) {
	r.GET("/a",HandlerA)
	r.GET("/b",    HandlerB)
	r.GET("/c", HandlerC)
}
`)

	endpoints, _, err := NewPatternExtractor(dir).Extract()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(endpoints) != 3 {
		t.Fatalf("expected 3 endpoints, got %d", len(endpoints))
	}
	for i, handler := range []string{"HandlerA", "HandlerB", "HandlerC"} {
		if endpoints[i].Handler != handler {
			t.Fatalf("expected handler %q, got %q", handler, endpoints[i].Handler)
		}
	}
}

func TestExtractIgnoresDynamicRegistrations(t *testing.T) {
	dir := t.TempDir()
	writeRouteFile(t, dir, "routes.go", `package routes

func Register(r *gin.Engine) {
	r.Handle("GET", "/dynamic", DynamicHandler)
	registerAll(r, routeTable)
	r.GET(pathFor("users"), ListUsersHandler)
}
`)

	endpoints, stats, err := NewPatternExtractor(dir).Extract()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(endpoints) != 0 {
		t.Fatalf("expected no endpoints, got %d", len(endpoints))
	}
	if stats.FilesScanned != 1 {
		t.Fatalf("expected 1 file scanned, got %d", stats.FilesScanned)
	}
}

func TestExtractAuthHeuristic(t *testing.T) {
	dir := t.TempDir()
	writeRouteFile(t, dir, "public.go", `package routes

// noauth routes live here
func RegisterPublic(router *gin.Engine) {
	router.POST("/api/v1/auth/login", LoginHandler)
}
`)
	writeRouteFile(t, dir, "mixed.go", `package routes

func RegisterMixed(router *gin.Engine) {
	// noauth marker applies to the whole file
	router.GET("/health", HealthHandler)
	protectedGroup.GET("/users/me", GetUserProfileHandler)
}
`)
	writeRouteFile(t, dir, "private.go", `package routes

func RegisterPrivate(api *gin.RouterGroup) {
	api.GET("/wallets", ListWalletsHandler)
}
`)

	endpoints, _, err := NewPatternExtractor(dir).Extract()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	authByHandler := make(map[string]bool, len(endpoints))
	for _, endpoint := range endpoints {
		authByHandler[endpoint.Handler] = endpoint.AuthRequired
	}

	if authByHandler["LoginHandler"] {
		t.Fatalf("expected LoginHandler to be auth-exempt in a noauth file")
	}
	if authByHandler["HealthHandler"] {
		t.Fatalf("expected HealthHandler to be auth-exempt in a noauth file")
	}
	if !authByHandler["GetUserProfileHandler"] {
		t.Fatalf("expected protected receiver to require auth despite noauth marker")
	}
	if !authByHandler["ListWalletsHandler"] {
		t.Fatalf("expected auth to default to required without a noauth marker")
	}
}

func TestExtractSkipsNonSourceEntries(t *testing.T) {
	dir := t.TempDir()
	writeRouteFile(t, dir, "routes.go", `package routes

func Register(r *gin.Engine) {
	r.GET("/health", HealthHandler)
}
`)
	writeRouteFile(t, dir, "README.md", `r.GET("/ignored", IgnoredHandler)`)
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}
	writeRouteFile(t, dir, filepath.Join("nested", "more.go"), `package nested`)

	endpoints, stats, err := NewPatternExtractor(dir).Extract()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.FilesScanned != 1 {
		t.Fatalf("expected 1 file scanned, got %d", stats.FilesScanned)
	}
	if len(endpoints) != 1 {
		t.Fatalf("expected 1 endpoint, got %d", len(endpoints))
	}
	if endpoints[0].Handler != "HealthHandler" {
		t.Fatalf("expected HealthHandler, got %q", endpoints[0].Handler)
	}
}

func TestExtractMissingDirectoryFails(t *testing.T) {
	_, _, err := NewPatternExtractor(filepath.Join(t.TempDir(), "missing")).Extract()
	if err == nil {
		t.Fatalf("expected an error for a missing routes directory")
	}
}

func TestExtractOrderIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	writeRouteFile(t, dir, "b.go", `package routes

func RegisterB(r *gin.Engine) {
	r.GET("/market/quotes", QuotesHandler)
}
`)
	writeRouteFile(t, dir, "a.go", `package routes

func RegisterA(r *gin.Engine) {
	r.GET("/news", NewsHandler)
}
`)

	first, _, err := NewPatternExtractor(dir).Extract()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _, err := NewPatternExtractor(dir).Extract()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 endpoints per run, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("run order diverged at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
	if first[0].Handler != "NewsHandler" {
		t.Fatalf("expected sorted file order to put a.go first, got %q", first[0].Handler)
	}
}
