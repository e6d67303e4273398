package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"survey-relay/api/internal/chart"
	"survey-relay/api/internal/config"
	"survey-relay/api/internal/llm/types"
	"survey-relay/api/internal/survey"
)

func chartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render the chart for a saved webhook payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			payloadPath, _ := cmd.Flags().GetString("payload")
			analysisPath, _ := cmd.Flags().GetString("analysis")
			useLLM, _ := cmd.Flags().GetBool("llm")
			simple, _ := cmd.Flags().GetBool("simple")

			p, err := readPayload(payloadPath)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := cfg.Logger()
			rec := survey.Parse(p, survey.WithResponseCap(cfg.RawResponsesMaxBytes))
			if u := rec.Unmatched(); len(u) > 0 {
				logger.Debug().Strs("labels", u).Msg("unclassified labels")
			}

			var a types.Analysis
			switch {
			case analysisPath != "":
				b, err := os.ReadFile(analysisPath)
				if err != nil {
					return fmt.Errorf("read analysis: %w", err)
				}
				a = types.ParseAnalysis(string(b))
			case useLLM:
				svc, err := buildService(cfg, logger)
				if err != nil {
					return err
				}
				if a, err = svc.Analyze(context.Background(), rec); err != nil {
					return err
				}
			}

			out := chart.Format(rec, a)
			if simple {
				out = chart.FormatSimple(rec, a)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().String("payload", "", "webhook payload JSON file")
	cmd.Flags().String("analysis", "", "saved model reply to use instead of calling the model")
	cmd.Flags().Bool("llm", false, "call the configured model")
	cmd.Flags().Bool("simple", false, "render the compact copy chart")
	_ = cmd.MarkFlagRequired("payload")
	return cmd
}

func readPayload(path string) (survey.Payload, error) {
	var p survey.Payload
	b, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read payload: %w", err)
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("decode payload %s: %w", path, err)
	}
	return p, nil
}
