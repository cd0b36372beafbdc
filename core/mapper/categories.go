package mapper

// Category is one taxonomy entry: a folder name, the emoji glyph it carries in
// the collection, and the path substrings that claim an endpoint for it.
// Order matters: the first matching category wins.
type Category struct {
	Name       string   `json:"name"`
	Glyph      string   `json:"glyph"`
	Substrings []string `json:"substrings"`
}

// FallbackGlyph marks folders whose category carries no glyph of its own.
const FallbackGlyph = "📁"

// DefaultTaxonomy returns the fixed, ordered category list. Priority is
// top-down: a path matching several predicates lands in the first one only.
func DefaultTaxonomy() []Category {
	return []Category{
		{Name: "Health", Glyph: "🏥", Substrings: []string{"/health", "/ready", "/live", "/version"}},
		{Name: "Authentication", Glyph: "🔐", Substrings: []string{"/auth"}},
		{Name: "Onboarding", Glyph: "🚀", Substrings: []string{"/onboarding"}},
		{Name: "Users", Glyph: "👤", Substrings: []string{"/users"}},
		{Name: "Security", Glyph: "🔒", Substrings: []string{"/security", "/passcode"}},
		{Name: "Wallets", Glyph: "💰", Substrings: []string{"/wallet"}},
		{Name: "Funding", Glyph: "💸", Substrings: []string{"/funding", "/balances"}},
		{Name: "Investment", Glyph: "📈", Substrings: []string{"/investment", "/orders", "/positions"}},
		{Name: "Portfolio", Glyph: "📊", Substrings: []string{"/portfolio"}},
		{Name: "Analytics", Glyph: "📉", Substrings: []string{"/analytics"}},
		{Name: "Market", Glyph: "💹", Substrings: []string{"/market"}},
		{Name: "Scheduled Investments", Glyph: "🔄", Substrings: []string{"/scheduled"}},
		{Name: "Rebalancing", Glyph: "⚖️", Substrings: []string{"/rebalancing"}},
		{Name: "Copy Trading", Glyph: "👥", Substrings: []string{"/copy"}},
		{Name: "Roundups", Glyph: "🪙", Substrings: []string{"/roundup"}},
		{Name: "AI Chat", Glyph: "🤖", Substrings: []string{"/ai"}},
		{Name: "News", Glyph: "📰", Substrings: []string{"/news"}},
		{Name: "Webhooks", Glyph: "🔔", Substrings: []string{"/webhook"}},
		{Name: "Admin", Glyph: "⚙️", Substrings: []string{"/admin"}},
	}
}
