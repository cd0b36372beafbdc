package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bndr/gotabulate"
	mcpsrv "github.com/mark3labs/mcp-go/server"
	yaml "go.yaml.in/yaml/v4"

	"github.com/rail-service/postman-gen/cmd/postman-gen/server"
	"github.com/rail-service/postman-gen/core/factory"
	"github.com/rail-service/postman-gen/core/mapper"
	"github.com/rail-service/postman-gen/core/parser"
	"github.com/rail-service/postman-gen/core/postman"
)

// settings is the effective configuration after merging defaults, the config
// file, and explicit flags, in that precedence order.
type settings struct {
	Routes   string
	OpenAPI  string
	Metadata string
	Output   string
	Format   string
	BaseURL  string
	Name     string
	Strict   bool
	Validate bool
}

type fileConfig struct {
	Routes   string `yaml:"routes"`
	OpenAPI  string `yaml:"openapi"`
	Metadata string `yaml:"metadata"`
	Output   string `yaml:"output"`
	Format   string `yaml:"format"`
	BaseURL  string `yaml:"base_url"`
	Name     string `yaml:"name"`
	Strict   *bool  `yaml:"strict"`
	Validate *bool  `yaml:"validate"`
}

func main() {
	routesFlag := flag.String("routes", filepath.Join("internal", "api", "routes"), "Directory containing route declaration source files")
	openapiFlag := flag.String("openapi", "", "Extract from an OpenAPI document instead of route sources")
	metadataFlag := flag.String("metadata", "endpoint_metadata.json", "Endpoint enrichment side-table (JSON or YAML)")
	outputFlag := flag.String("output", "postman_collection_generated.json", "Output file path")
	formatFlag := flag.String("format", factory.FormatJSON, "Output format: json or yaml")
	baseURLFlag := flag.String("base-url", "", "Value for the base_url collection variable (defaults to env or "+factory.DefaultBaseURL+")")
	nameFlag := flag.String("name", "", "Collection name override")
	configFlag := flag.String("config", "", "YAML config file supplying defaults for the other flags")
	strictFlag := flag.Bool("strict", false, "Fail when extraction finds nothing or endpoints match no category")
	validateFlag := flag.Bool("validate", false, "Validate the generated document against the collection schema")
	mcpFlag := flag.Bool("mcp", false, "Serve the generator as MCP tools over stdio instead of generating once")
	serverName := flag.String("server-name", "postman-gen", "MCP server name")
	serverVersion := flag.String("server-version", "2.0.0", "MCP server version")
	logOutput := flag.String("log-output", "", "Write logs to this destination (stdout, stderr, or file path)")
	teeConsole := flag.Bool("log-tee-console", false, "If true and log-output is a file, also write logs to stderr")
	flag.Parse()

	cleanup, err := configureLogging(*logOutput, *teeConsole)
	if err != nil {
		log.Fatalf("failed to configure logging: %v", err)
	}
	defer cleanup()

	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	cfg := settings{
		Routes:   *routesFlag,
		OpenAPI:  *openapiFlag,
		Metadata: *metadataFlag,
		Output:   *outputFlag,
		Format:   *formatFlag,
		BaseURL:  *baseURLFlag,
		Name:     *nameFlag,
		Strict:   *strictFlag,
		Validate: *validateFlag,
	}

	if *configFlag != "" {
		if err := applyConfigFile(&cfg, *configFlag, setFlags); err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	// A positional argument overrides the output path, matching the original
	// one-argument invocation.
	if flag.NArg() > 0 {
		cfg.Output = flag.Arg(0)
	}

	cfg.BaseURL = firstNonEmpty(cfg.BaseURL, os.Getenv("POSTMAN_GEN_BASE_URL"))

	if *mcpFlag {
		if err := runMCP(cfg, *serverName, *serverVersion); err != nil {
			log.Fatalf("mcp server stopped: %v", err)
		}
		return
	}

	if err := runGenerate(cfg); err != nil {
		log.Fatalf("%v", err)
	}
}

func runGenerate(cfg settings) error {
	var extractor parser.Extractor
	if cfg.OpenAPI != "" {
		extractor = parser.NewOpenAPIExtractor(cfg.OpenAPI)
	} else {
		extractor = parser.NewPatternExtractor(cfg.Routes)
	}

	fmt.Printf("🔍 Extracting endpoints from: %s\n", extractor.Source())

	endpoints, stats, err := extractor.Extract()
	if err != nil {
		return err
	}

	fmt.Printf("✅ Found %d endpoints (%d files scanned)\n", len(endpoints), stats.FilesScanned)

	groups, groupStats := mapper.NewMapper(nil).Group(endpoints)

	fmt.Printf("📁 Grouped into %d categories\n", len(groups))
	printCategoryTable(groups)
	if groupStats.Dropped > 0 {
		fmt.Printf("⚠️ %d endpoints matched no category\n", groupStats.Dropped)
	}

	if cfg.Strict {
		if len(endpoints) == 0 {
			return fmt.Errorf("strict mode: no endpoints extracted from %s", extractor.Source())
		}
		if groupStats.Dropped > 0 {
			return fmt.Errorf("strict mode: %d endpoints matched no category", groupStats.Dropped)
		}
	}

	fmt.Printf("\n🔨 Building Postman collection...\n")

	metadata, found, err := factory.LoadMetadata(cfg.Metadata)
	if err != nil {
		return err
	}
	if !found {
		fmt.Printf("Warning: %s not found, using minimal metadata\n", cfg.Metadata)
	}

	collection := factory.NewCollectionFactory().
		WithName(cfg.Name).
		WithBaseURL(cfg.BaseURL).
		WithMetadata(metadata).
		Build(groups)

	if cfg.Validate {
		data, err := factory.Encode(collection, factory.FormatJSON)
		if err != nil {
			return err
		}
		if err := postman.Validate(data); err != nil {
			return err
		}
	}

	if err := factory.Save(collection, cfg.Output, cfg.Format); err != nil {
		return err
	}

	fmt.Printf("✅ Collection saved to: %s\n", cfg.Output)

	folders, requests := collection.Counts()
	fmt.Printf("📊 Total folders: %d\n", folders)
	fmt.Printf("📊 Total requests: %d\n", requests)

	fmt.Printf("\n🎉 Done! Import the collection into Postman to start testing.\n")
	return nil
}

func runMCP(cfg settings, name, version string) error {
	srv := server.New(server.Options{
		RoutesDir:    cfg.Routes,
		OpenAPIPath:  cfg.OpenAPI,
		MetadataPath: cfg.Metadata,
		BaseURL:      cfg.BaseURL,
		Name:         name,
		Version:      version,
	})

	stdio := mcpsrv.NewStdioServer(srv.MCPServer())
	log.Printf("postman-gen MCP server ready. Routes dir: %s", cfg.Routes)

	if err := stdio.Listen(context.Background(), os.Stdin, os.Stdout); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func printCategoryTable(groups []mapper.Group) {
	if len(groups) == 0 {
		return
	}
	rows := make([][]interface{}, 0, len(groups))
	for _, group := range groups {
		rows = append(rows, []interface{}{group.Glyph, group.Name, len(group.Endpoints)})
	}
	table := gotabulate.Create(rows)
	table.SetHeaders([]string{"", "Category", "Endpoints"})
	table.SetAlign("left")
	fmt.Println(table.Render("simple"))
}

func applyConfigFile(cfg *settings, path string, setFlags map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Explicit flags win over the config file.
	if !setFlags["routes"] && fc.Routes != "" {
		cfg.Routes = fc.Routes
	}
	if !setFlags["openapi"] && fc.OpenAPI != "" {
		cfg.OpenAPI = fc.OpenAPI
	}
	if !setFlags["metadata"] && fc.Metadata != "" {
		cfg.Metadata = fc.Metadata
	}
	if !setFlags["output"] && fc.Output != "" {
		cfg.Output = fc.Output
	}
	if !setFlags["format"] && fc.Format != "" {
		cfg.Format = fc.Format
	}
	if !setFlags["base-url"] && fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if !setFlags["name"] && fc.Name != "" {
		cfg.Name = fc.Name
	}
	if !setFlags["strict"] && fc.Strict != nil {
		cfg.Strict = *fc.Strict
	}
	if !setFlags["validate"] && fc.Validate != nil {
		cfg.Validate = *fc.Validate
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func configureLogging(target string, tee bool) (func(), error) {
	switch strings.ToLower(strings.TrimSpace(target)) {
	case "", "stderr":
		log.SetOutput(os.Stderr)
		return func() {}, nil
	case "stdout":
		log.SetOutput(os.Stdout)
		return func() {}, nil
	default:
		abs, err := filepath.Abs(target)
		if err != nil {
			return func() {}, err
		}
		dir := filepath.Dir(abs)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return func() {}, err
		}
		file, err := os.OpenFile(abs, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return func() {}, err
		}
		if tee {
			log.SetOutput(io.MultiWriter(file, os.Stderr))
		} else {
			log.SetOutput(file)
		}
		return func() {
			_ = file.Close()
		}, nil
	}
}
