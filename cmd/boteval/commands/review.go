package commands

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/phzwart/boteval/pkg/collect"
	"github.com/phzwart/boteval/pkg/dataset"
)

func newReviewCommand() *cobra.Command {
	var (
		topic  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Merge questions, annotations and responses into one record per question",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := buildStore(ctx)
			if err != nil {
				return err
			}

			questions, err := dataset.Fetch(ctx, st)
			if err != nil {
				return err
			}
			if topic != "" {
				questions = dataset.FilterByTopic(questions, topic)
			}

			annotations, err := collect.LoadAnnotations(ctx, st, logger)
			if err != nil {
				return err
			}
			submissions, err := collect.LoadSubmissions(ctx, st, logger)
			if err != nil {
				return err
			}

			reviews := collect.BuildReview(questions, annotations, submissions)

			out := cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return err
				}
				defer file.Close()
				out = file
			}
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(reviews)
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "limit the review to one topic")
	cmd.Flags().StringVar(&output, "output", "", "write output to a file instead of stdout")

	return cmd
}
