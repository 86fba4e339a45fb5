package model

// StyleRecord holds the computed CSS properties captured for one DOM element,
// plus identifying attributes (tag, id, class) when present.
type StyleRecord map[string]string

// PerformanceTimings holds page-load metrics read from the browser's
// navigation timing API, in milliseconds. Zero when unavailable.
type PerformanceTimings struct {
	FirstContentfulPaint   float64 `json:"first_contentful_paint"`
	LargestContentfulPaint float64 `json:"largest_contentful_paint"`
	TimeToFirstByte        float64 `json:"time_to_first_byte"`
	TimeToInteractive      float64 `json:"time_to_interactive"`
}

// CapturedPage is the raw material extracted from one browser visit.
// It is owned exclusively by the inspector for the duration of the visit and
// discarded once insights are derived.
type CapturedPage struct {
	URL         string
	HTML        string
	Styles      []StyleRecord
	Text        string
	Screenshot  []byte
	Performance PerformanceTimings
}

// Empty reports whether the capture produced no usable data.
func (p *CapturedPage) Empty() bool {
	return p == nil || (p.HTML == "" && len(p.Styles) == 0 && p.Text == "")
}
