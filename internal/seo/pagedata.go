// Package seo derives structured page data from captured pages and scores it
// across three analysis agents: technical, content, and backlinks.
package seo

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/sells-group/proposal-cli/internal/model"
)

// TagPresence records whether a meta element exists and its content.
type TagPresence struct {
	Present bool   `json:"present"`
	Content string `json:"content,omitempty"`
}

// MetaData holds the head elements the technical agent inspects.
type MetaData struct {
	Title       TagPresence `json:"title"`
	Description TagPresence `json:"description"`
	Robots      TagPresence `json:"robots"`
	Canonical   TagPresence `json:"canonical"`
}

// MobileData holds mobile-friendliness signals.
type MobileData struct {
	HasViewportMeta    bool `json:"has_viewport_meta"`
	TextTooSmall       bool `json:"text_too_small"`
	TapTargetsTooClose bool `json:"tap_targets_too_close"`
}

// KeywordData holds keyword usage signals.
type KeywordData struct {
	PrimaryPresent bool     `json:"primary_present"`
	Secondary      []string `json:"secondary,omitempty"`
}

// StructureData holds the document structure census.
type StructureData struct {
	HeadingCounts  map[string]int `json:"heading_counts"`
	MultipleH1     bool           `json:"multiple_h1"`
	ParagraphCount int            `json:"paragraph_count"`
	ListCount      int            `json:"list_count"`
	ImageCount     int            `json:"image_count"`
	ImagesWithAlt  int            `json:"images_with_alt"`
	LinkCount      int            `json:"link_count"`
	ExternalHosts  []string       `json:"external_hosts,omitempty"`
	FormCount      int            `json:"form_count"`
	NavCount       int            `json:"nav_count"`
	WordCount      int            `json:"word_count"`
}

// QualityData holds content quality signals.
type QualityData struct {
	ReadabilityScore float64 `json:"readability_score"`
}

// PageData is the extracted input consumed by the SEO agents.
type PageData struct {
	Performance model.PerformanceTimings `json:"performance"`
	Mobile      MobileData               `json:"mobile"`
	Meta        MetaData                 `json:"meta"`
	Keywords    KeywordData              `json:"keywords"`
	Structure   StructureData            `json:"structure"`
	Quality     QualityData              `json:"quality"`

	populated bool
}

// Empty reports whether the page data carries no extracted signal. Agents
// return the shared empty insight for empty data instead of erroring.
func (d PageData) Empty() bool {
	return !d.populated
}

// BuildPageData extracts SEO-relevant structure from a captured page. A nil
// or empty capture yields empty PageData.
func BuildPageData(page *model.CapturedPage) PageData {
	if page.Empty() {
		return PageData{}
	}

	data := PageData{
		Performance: page.Performance,
		Structure:   StructureData{HeadingCounts: map[string]int{}},
		populated:   true,
	}

	doc, err := html.Parse(strings.NewReader(page.HTML))
	if err == nil {
		walk(doc, page.URL, &data)
	}

	data.Structure.MultipleH1 = data.Structure.HeadingCounts["h1"] > 1
	data.Structure.WordCount = len(strings.Fields(page.Text))
	data.Mobile.TextTooSmall = smallTextDominates(page.Styles)
	data.Quality.ReadabilityScore = readability(page.Text)
	// Treat the page's own title words as the primary keyword signal.
	data.Keywords.PrimaryPresent = data.Meta.Title.Present &&
		titleKeywordInText(data.Meta.Title.Content, page.Text)

	return data
}

func walk(n *html.Node, pageURL string, data *PageData) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "title":
			if t := textOf(n); t != "" {
				data.Meta.Title = TagPresence{Present: true, Content: t}
			}
		case "meta":
			name := strings.ToLower(attr(n, "name"))
			content := attr(n, "content")
			switch name {
			case "viewport":
				data.Mobile.HasViewportMeta = true
			case "description":
				data.Meta.Description = TagPresence{Present: true, Content: content}
			case "robots":
				data.Meta.Robots = TagPresence{Present: true, Content: content}
			case "keywords":
				for _, kw := range strings.Split(content, ",") {
					if k := strings.TrimSpace(kw); k != "" {
						data.Keywords.Secondary = append(data.Keywords.Secondary, k)
					}
				}
			}
		case "link":
			if strings.EqualFold(attr(n, "rel"), "canonical") {
				data.Meta.Canonical = TagPresence{Present: true, Content: attr(n, "href")}
			}
		case "h1", "h2", "h3", "h4", "h5", "h6":
			data.Structure.HeadingCounts[n.Data]++
		case "p":
			data.Structure.ParagraphCount++
		case "ul", "ol":
			data.Structure.ListCount++
		case "img":
			data.Structure.ImageCount++
			if attr(n, "alt") != "" {
				data.Structure.ImagesWithAlt++
			}
		case "a":
			data.Structure.LinkCount++
			if host := externalHost(attr(n, "href"), pageURL); host != "" {
				data.Structure.ExternalHosts = append(data.Structure.ExternalHosts, host)
			}
		case "form":
			data.Structure.FormCount++
		case "nav":
			data.Structure.NavCount++
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, pageURL, data)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}

// externalHost returns the href's host when it points off-site.
func externalHost(href, pageURL string) string {
	u, err := url.Parse(href)
	if err != nil || u.Host == "" {
		return ""
	}
	base, err := url.Parse(pageURL)
	if err == nil && strings.EqualFold(u.Host, base.Host) {
		return ""
	}
	return strings.ToLower(u.Host)
}

// smallTextDominates reports whether more than 30% of styled elements render
// text below 12px.
func smallTextDominates(styles []model.StyleRecord) bool {
	if len(styles) == 0 {
		return false
	}
	var sized, small int
	for _, rec := range styles {
		fs, ok := rec["font-size"]
		if !ok {
			continue
		}
		px, err := strconv.ParseFloat(strings.TrimSuffix(fs, "px"), 64)
		if err != nil {
			continue
		}
		sized++
		if px < 12 {
			small++
		}
	}
	return sized > 0 && float64(small)/float64(sized) > 0.3
}

// readability approximates a Flesch reading-ease style score (0-100) from
// average sentence length. Shorter sentences score higher.
func readability(text string) float64 {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	sentences := 0
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}
	score := 110 - 1.5*(float64(words)/float64(sentences))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// titleKeywordInText reports whether any significant title word appears in
// the body text.
func titleKeywordInText(title, text string) bool {
	lower := strings.ToLower(text)
	for _, w := range strings.Fields(strings.ToLower(title)) {
		if len(w) >= 4 && strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
