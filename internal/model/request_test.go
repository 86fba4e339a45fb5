package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFormFixture() ProposalForm {
	return ProposalForm{
		ClientName:         "Acme Corp",
		BusinessName:       "Acme Plumbing",
		Industry:           "plumbing",
		TargetMarket:       "homeowners, landlords, property managers",
		Website:            "https://acme.example",
		ProjectDescription: "Modernize the website",
	}
}

func TestBuildRequestGoals(t *testing.T) {
	form := validFormFixture()
	form.SpecialFeatures = "Online booking\nLive chat"
	form.BusinessGoals = "Grow revenue\n\n  Expand service area  "

	req, err := BuildRequest(form)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Primary Goal: Modernize the website",
		"Special Features: Online booking\nLive chat",
		"Grow revenue",
		"Expand service area",
	}, req.ProjectGoals)
}

func TestBuildRequestAudienceAndServices(t *testing.T) {
	form := validFormFixture()
	form.SpecialFeatures = "Online booking\nLive chat\n"

	req, err := BuildRequest(form)
	require.NoError(t, err)

	assert.Equal(t, []string{"homeowners", "landlords", "property managers"}, req.TargetAudience)
	assert.Equal(t, []string{"Online booking", "Live chat"}, req.KeyServices)
	assert.Equal(t, []string{}, req.CompetitorURLs)
}

func TestBuildRequestMissingFields(t *testing.T) {
	form := validFormFixture()
	form.Website = ""
	form.Industry = "  "

	_, err := BuildRequest(form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required fields")
	assert.Contains(t, err.Error(), "industry")
	assert.Contains(t, err.Error(), "website")
}

func TestAnalysisRequestValidate(t *testing.T) {
	req := &AnalysisRequest{ClientName: "Acme", Industry: "plumbing", Website: "https://acme.example"}
	assert.NoError(t, req.Validate())

	req.Website = ""
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "website")
}
