package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/proposal-cli/internal/market"
	"github.com/sells-group/proposal-cli/internal/model"
)

// MockupSet holds the generated mockup file paths referenced by the
// proposal. Zero-value fields render as "Not available".
type MockupSet struct {
	Desktop string
	Mobile  string
}

// ExtractMockupRequirements derives design requirements for the mockups
// from the analysis results: weak color harmony, high-adoption trends, and
// mobile issues each contribute one requirement.
func ExtractMockupRequirements(design model.Insight, analysis market.Analysis, technical model.Insight) []string {
	var requirements []string

	if harmony, ok := design.Metadata["harmony_score"].(float64); ok && harmony < 0.7 {
		requirements = append(requirements, "improve color harmony")
	}
	for _, trend := range analysis.Trends {
		if trend.AdoptionRate > 0.7 {
			requirements = append(requirements, "incorporate "+strings.ToLower(trend.Name))
		}
	}
	if mobile, ok := technical.Metadata["mobile_score"].(float64); ok && mobile < 0.7 {
		requirements = append(requirements, "responsive design")
	}
	if speed, ok := technical.Metadata["speed_score"].(float64); ok && speed < 0.8 {
		requirements = append(requirements, "optimize performance")
	}

	return requirements
}

// GenerateMockups writes placeholder desktop and mobile mockup files
// annotated with the extracted requirements. An empty dir disables mockup
// generation and the proposal falls back to "Not available".
func GenerateMockups(dir, runID, project string, requirements []string) (MockupSet, error) {
	if dir == "" {
		return MockupSet{}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return MockupSet{}, eris.Wrap(err, "pipeline: create mockup dir")
	}

	set := MockupSet{
		Desktop: filepath.Join(dir, fmt.Sprintf("%s_desktop.svg", runID)),
		Mobile:  filepath.Join(dir, fmt.Sprintf("%s_mobile.svg", runID)),
	}

	if err := os.WriteFile(set.Desktop, mockupSVG(project, "Desktop", 1366, 768, requirements), 0o644); err != nil {
		return MockupSet{}, eris.Wrap(err, "pipeline: write desktop mockup")
	}
	if err := os.WriteFile(set.Mobile, mockupSVG(project, "Mobile", 390, 844, requirements), 0o644); err != nil {
		return MockupSet{}, eris.Wrap(err, "pipeline: write mobile mockup")
	}

	zap.L().Debug("mockups generated",
		zap.String("desktop", set.Desktop),
		zap.String("mobile", set.Mobile),
		zap.Int("requirements", len(requirements)))

	return set, nil
}

func mockupSVG(project, variant string, width, height int, requirements []string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n", width, height)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#f4f4f4"/>`+"\n", width, height)
	fmt.Fprintf(&b, `<text x="24" y="48" font-size="24">%s (%s mockup)</text>`+"\n", project, variant)
	for i, req := range requirements {
		fmt.Fprintf(&b, `<text x="24" y="%d" font-size="14">- %s</text>`+"\n", 88+i*24, req)
	}
	b.WriteString("</svg>\n")
	return []byte(b.String())
}
