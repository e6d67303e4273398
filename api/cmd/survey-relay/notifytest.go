package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"survey-relay/api/internal/chart"
	"survey-relay/api/internal/config"
	"survey-relay/api/internal/llm/types"
	"survey-relay/api/internal/notify"
	"survey-relay/api/internal/survey"
)

// sample is a fixed submission used to check channel wiring.
var sample = survey.Payload{Data: survey.PayloadData{
	FormName: "성인 설문 (테스트)",
	Fields: []survey.RawField{
		{Label: "성함", Value: "테스트 환자"},
		{Label: "성별", Value: "여성"},
		{Label: "나이", Value: "34"},
		{Label: "치료받고 싶은 증상 (1순위)", Value: "두통 3개월 전부터 오후에 심해짐"},
		{Label: "추위를 어느 정도 타시나요?", Value: "많이 탄다"},
	},
}}

func notifyTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify-test",
		Short: "Send a sample chart to the configured channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			staff, _ := cmd.Flags().GetBool("staff")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := cfg.Logger()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			now := time.Now()
			rec := survey.Parse(sample, survey.WithResponseCap(cfg.RawResponsesMaxBytes))
			a := types.Analysis{Constitution: types.Constitution{Type: "테스트", Confidence: "-"}}

			primary := notify.NewSlack(cfg.SlackWebhookURL, nil)
			if err := primary.Send(ctx, notify.Clinician(rec, a, chart.FormatAt(rec, a, now), now)); err != nil {
				return err
			}
			logger.Info().Str("channel", primary.Name()).Msg("sample sent")

			if !staff {
				return nil
			}
			for _, ch := range staffChannels(cfg, logger) {
				if err := ch.Send(ctx, notify.Staff(rec, a, now)); err != nil {
					logger.Error().Err(err).Str("channel", ch.Name()).Msg("sample failed")
					continue
				}
				logger.Info().Str("channel", ch.Name()).Msg("sample sent")
			}
			return nil
		},
	}
	cmd.Flags().Bool("staff", false, "also send the staff notice")
	return cmd
}
