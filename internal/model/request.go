package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// ProposalForm carries the raw fields of a generate-proposal call, as they
// arrive from CLI flags or the HTTP API.
type ProposalForm struct {
	ClientName            string   `json:"client_name"`
	BusinessName          string   `json:"business_name"`
	Industry              string   `json:"industry"`
	TargetMarket          string   `json:"target_market"`
	Website               string   `json:"website"`
	ProjectDescription    string   `json:"project_description"`
	SpecialFeatures       string   `json:"special_features,omitempty"`
	PainPoints            string   `json:"pain_points,omitempty"`
	BusinessGoals         string   `json:"business_goals,omitempty"`
	Competitors           []string `json:"competitors,omitempty"`
	Budget                string   `json:"budget,omitempty"`
	Timeline              string   `json:"timeline,omitempty"`
	TechnicalRequirements string   `json:"technical_requirements,omitempty"`
}

// AnalysisRequest is the normalized input for one proposal generation run.
// Created once per run and never mutated concurrently.
type AnalysisRequest struct {
	ClientName            string
	BusinessName          string
	Industry              string
	TargetAudience        []string
	KeyServices           []string
	Website               string
	CompetitorURLs        []string
	ProjectGoals          []string
	Budget                string
	Timeline              string
	TechnicalRequirements string
	PainPoints            string
}

// BuildRequest normalizes a form into an AnalysisRequest: project goals are
// assembled from the description, special features, and business goals
// (one goal per non-blank line); the target market splits on commas into
// audience segments; special features split on newlines into key services.
func BuildRequest(form ProposalForm) (*AnalysisRequest, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}

	var goals []string
	if form.ProjectDescription != "" {
		goals = append(goals, "Primary Goal: "+form.ProjectDescription)
	}
	if form.SpecialFeatures != "" {
		goals = append(goals, "Special Features: "+form.SpecialFeatures)
	}
	for _, g := range splitLines(form.BusinessGoals) {
		goals = append(goals, g)
	}

	var audience []string
	for _, seg := range strings.Split(form.TargetMarket, ",") {
		if s := strings.TrimSpace(seg); s != "" {
			audience = append(audience, s)
		}
	}

	competitors := form.Competitors
	if competitors == nil {
		competitors = []string{}
	}

	return &AnalysisRequest{
		ClientName:            form.ClientName,
		BusinessName:          form.BusinessName,
		Industry:              form.Industry,
		TargetAudience:        audience,
		KeyServices:           splitLines(form.SpecialFeatures),
		Website:               form.Website,
		CompetitorURLs:        competitors,
		ProjectGoals:          goals,
		Budget:                form.Budget,
		Timeline:              form.Timeline,
		TechnicalRequirements: form.TechnicalRequirements,
		PainPoints:            form.PainPoints,
	}, nil
}

// Validate checks that the request carries the fields the pipeline cannot
// run without. Requests built through BuildRequest always pass.
func (r *AnalysisRequest) Validate() error {
	missing := []string{}
	for _, f := range []struct{ name, value string }{
		{"client_name", r.ClientName},
		{"industry", r.Industry},
		{"website", r.Website},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return eris.Errorf("model: validation failed: missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// validateForm checks the contractually required fields. These surface as
// explicit errors at the API boundary; nothing past this point raises.
func validateForm(form ProposalForm) error {
	missing := []string{}
	for _, f := range []struct{ name, value string }{
		{"client_name", form.ClientName},
		{"business_name", form.BusinessName},
		{"industry", form.Industry},
		{"target_market", form.TargetMarket},
		{"website", form.Website},
		{"project_description", form.ProjectDescription},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return eris.Errorf("model: validation failed: missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if l := strings.TrimSpace(line); l != "" {
			out = append(out, l)
		}
	}
	return out
}
