package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/proposal-cli/internal/model"
)

var generateFlags struct {
	clientName      string
	businessName    string
	industry        string
	targetMarket    string
	website         string
	description     string
	features        string
	painPoints      string
	goals           string
	competitors     []string
	budget          string
	timeline        string
	techRequirement string
	output          string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a proposal for a client website",
	RunE: func(cmd *cobra.Command, args []string) error {
		form := model.ProposalForm{
			ClientName:            generateFlags.clientName,
			BusinessName:          generateFlags.businessName,
			Industry:              generateFlags.industry,
			TargetMarket:          generateFlags.targetMarket,
			Website:               generateFlags.website,
			ProjectDescription:    generateFlags.description,
			SpecialFeatures:       generateFlags.features,
			PainPoints:            generateFlags.painPoints,
			BusinessGoals:         generateFlags.goals,
			Competitors:           generateFlags.competitors,
			Budget:                generateFlags.budget,
			Timeline:              generateFlags.timeline,
			TechnicalRequirements: generateFlags.techRequirement,
		}

		req, err := model.BuildRequest(form)
		if err != nil {
			return err
		}

		env, err := initPipeline(cfg)
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.newRun().Run(cmd.Context(), req)
		if err != nil {
			return err
		}

		zap.L().Info("proposal generated",
			zap.String("run_id", result.RunID),
			zap.Int("recommendations", len(result.Recommendations)))

		if generateFlags.output == "" || generateFlags.output == "-" {
			fmt.Fprintln(cmd.OutOrStdout(), result.Document)
			return nil
		}
		if err := os.WriteFile(generateFlags.output, []byte(result.Document+"\n"), 0o644); err != nil {
			return eris.Wrap(err, "write proposal")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "proposal written to %s\n", generateFlags.output)
		return nil
	},
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&generateFlags.clientName, "client-name", "", "client contact name (required)")
	f.StringVar(&generateFlags.businessName, "business-name", "", "business name (required)")
	f.StringVar(&generateFlags.industry, "industry", "", "industry (required)")
	f.StringVar(&generateFlags.targetMarket, "target-market", "", "comma-separated audience segments (required)")
	f.StringVar(&generateFlags.website, "website", "", "client website URL (required)")
	f.StringVar(&generateFlags.description, "description", "", "project description (required)")
	f.StringVar(&generateFlags.features, "features", "", "special features, one per line")
	f.StringVar(&generateFlags.painPoints, "pain-points", "", "current pain points, one per line")
	f.StringVar(&generateFlags.goals, "goals", "", "business goals, one per line")
	f.StringSliceVar(&generateFlags.competitors, "competitors", nil, "competitor URLs")
	f.StringVar(&generateFlags.budget, "budget", "", "project budget range")
	f.StringVar(&generateFlags.timeline, "timeline", "", "project timeline")
	f.StringVar(&generateFlags.techRequirement, "tech-requirements", "", "technical requirements, one per line")
	f.StringVar(&generateFlags.output, "output", "", "output file path (default stdout)")

	for _, name := range []string{"client-name", "business-name", "industry", "target-market", "website", "description"} {
		_ = generateCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(generateCmd)
}
