package jobquery

import "strings"

// termGroup is a set of related search terms added whenever its trigger
// fires on a query token.
type termGroup struct {
	triggers []string
	terms    []string
}

// The expansion table is fixed: recall-boosting synonym groups keyed by
// substrings of the raw token. Multiple groups may fire per token.
var termGroups = []termGroup{
	{triggers: []string{"software"}, terms: []string{"software", "developer", "engineer"}},
	{triggers: []string{"frontend", "front"}, terms: []string{"frontend", "front end", "react", "javascript"}},
	{triggers: []string{"backend", "back"}, terms: []string{"backend", "back end", "node", "express"}},
	{triggers: []string{"data"}, terms: []string{"data", "analyst", "sql", "python"}},
	{triggers: []string{"ux", "design"}, terms: []string{"ux", "designer", "figma", "design"}},
	{triggers: []string{"product"}, terms: []string{"product", "pm", "product manager"}},
}

// fullStackTerms fires only when a token contains both "full" and "stack"
var fullStackTerms = []string{"full stack", "fullstack", "frontend", "backend", "react", "node"}

// Expand maps a free-text query into the set of lowercase terms used for
// substring matching. The result always contains the whitespace-split tokens
// of the query itself; synonym groups are unioned in on top. Only membership
// matters downstream, but the order is kept deterministic for tests.
func Expand(q string) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(term string) {
		if _, ok := seen[term]; !ok {
			seen[term] = struct{}{}
			out = append(out, term)
		}
	}

	for _, tok := range strings.Fields(strings.ToLower(q)) {
		add(tok)
		for _, g := range termGroups {
			for _, trig := range g.triggers {
				if strings.Contains(tok, trig) {
					for _, t := range g.terms {
						add(t)
					}
					break
				}
			}
		}
		if strings.Contains(tok, "full") && strings.Contains(tok, "stack") {
			for _, t := range fullStackTerms {
				add(t)
			}
		}
	}

	return out
}
