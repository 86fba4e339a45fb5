// Package visual scores the look and feel of captured pages: design quality,
// UX structure, brand consistency, and competitive differentiation.
package visual

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/sells-group/proposal-cli/internal/colormath"
	"github.com/sells-group/proposal-cli/internal/model"
)

// logoMarkers are class/id fragments that indicate a logo element.
var logoMarkers = []string{"logo", "brand", "company-name", "site-title"}

// toneIndicators maps a messaging tone to the words that signal it.
var toneIndicators = map[string][]string{
	"professional": {"expertise", "trusted", "professional", "industry", "proven"},
	"friendly":     {"welcome", "love", "enjoy", "happy", "community"},
	"innovative":   {"innovative", "cutting-edge", "modern", "technology", "future"},
	"urgent":       {"now", "today", "limited", "act fast"},
}

// Profile is the visual census extracted from one captured page. All four
// agents consume it.
type Profile struct {
	URL         string
	Colors      map[string]int // normalized hex -> frequency
	Fonts       map[string]int // primary family -> frequency
	FontSizes   map[string]int
	FontWeights map[string]int

	HasLogo             bool
	NavLinkCount        int
	FormCount           int
	FormsWithValidation int
	ImageCount          int
	ImagesWithAlt       int
	AriaLabelCount      int
	HeadingLevels       []int // document order
	ParagraphCount      int
	WordCount           int

	ToneTallies map[string]int
	Text        string

	populated bool
}

// Empty reports whether the profile carries no extracted signal.
func (p Profile) Empty() bool {
	return !p.populated
}

// TopColors returns up to n colors by descending frequency. Ties break on
// hex value for determinism.
func (p Profile) TopColors(n int) []string {
	type entry struct {
		hex   string
		count int
	}
	entries := make([]entry, 0, len(p.Colors))
	for hex, count := range p.Colors {
		entries = append(entries, entry{hex, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].hex < entries[j].hex
	})
	if n > len(entries) {
		n = len(entries)
	}
	out := make([]string, 0, n)
	for _, e := range entries[:n] {
		out = append(out, e.hex)
	}
	return out
}

// DominantFont returns the most frequent font family and its share of all
// font records. Empty profile returns ("", 0).
func (p Profile) DominantFont() (string, float64) {
	var best string
	var bestCount, total int
	for family, count := range p.Fonts {
		total += count
		if count > bestCount || (count == bestCount && family < best) {
			best, bestCount = family, count
		}
	}
	if total == 0 {
		return "", 0
	}
	return best, float64(bestCount) / float64(total)
}

// BuildProfile extracts the visual census from a captured page. A nil or
// empty capture yields an empty profile.
func BuildProfile(page *model.CapturedPage) Profile {
	if page.Empty() {
		return Profile{}
	}

	p := Profile{
		URL:         page.URL,
		Colors:      map[string]int{},
		Fonts:       map[string]int{},
		FontSizes:   map[string]int{},
		FontWeights: map[string]int{},
		ToneTallies: map[string]int{},
		Text:        page.Text,
		WordCount:   len(strings.Fields(page.Text)),
		populated:   true,
	}

	for _, rec := range page.Styles {
		for _, prop := range []string{"color", "background-color"} {
			if hex, ok := colormath.Normalize(rec[prop]); ok {
				p.Colors[hex]++
			}
		}
		if family := primaryFamily(rec["font-family"]); family != "" {
			p.Fonts[family]++
		}
		if fs := rec["font-size"]; fs != "" {
			p.FontSizes[fs]++
		}
		if fw := rec["font-weight"]; fw != "" {
			p.FontWeights[fw]++
		}
		if !p.HasLogo && hasLogoMarker(rec["class"]+" "+rec["id"]) {
			p.HasLogo = true
		}
	}

	if doc, err := html.Parse(strings.NewReader(page.HTML)); err == nil {
		walkDOM(doc, &p, false)
	}

	lower := strings.ToLower(page.Text)
	for tone, words := range toneIndicators {
		for _, w := range words {
			p.ToneTallies[tone] += strings.Count(lower, w)
		}
	}

	return p
}

func walkDOM(n *html.Node, p *Profile, inNav bool) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "nav":
			inNav = true
		case "a":
			if inNav {
				p.NavLinkCount++
			}
		case "form":
			p.FormCount++
			if formHasValidation(n) {
				p.FormsWithValidation++
			}
		case "img":
			p.ImageCount++
			if nodeAttr(n, "alt") != "" {
				p.ImagesWithAlt++
			}
		case "h1", "h2", "h3", "h4", "h5", "h6":
			level, _ := strconv.Atoi(n.Data[1:])
			p.HeadingLevels = append(p.HeadingLevels, level)
		case "p":
			p.ParagraphCount++
		}
		if !p.HasLogo && hasLogoMarker(nodeAttr(n, "class")+" "+nodeAttr(n, "id")) {
			p.HasLogo = true
		}
		if nodeAttr(n, "aria-label") != "" {
			p.AriaLabelCount++
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkDOM(c, p, inNav)
	}
}

// formHasValidation reports whether any descendant input carries a required
// or pattern attribute.
func formHasValidation(form *html.Node) bool {
	var found bool
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if found {
			return
		}
		if n.Type == html.ElementNode && (n.Data == "input" || n.Data == "select" || n.Data == "textarea") {
			for _, a := range n.Attr {
				if a.Key == "required" || a.Key == "pattern" {
					found = true
					return
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(form)
	return found
}

func nodeAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func hasLogoMarker(attrs string) bool {
	lower := strings.ToLower(attrs)
	for _, marker := range logoMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// primaryFamily returns the first family from a font-family list, unquoted
// and lowercased.
func primaryFamily(value string) string {
	if value == "" {
		return ""
	}
	first := strings.SplitN(value, ",", 2)[0]
	first = strings.Trim(strings.TrimSpace(first), `"'`)
	return strings.ToLower(first)
}
