package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phzwart/boteval/pkg/collect"
	"github.com/phzwart/boteval/pkg/dataset"
)

func newGatherCommand() *cobra.Command {
	var (
		modelName     string
		runID         string
		operator      string
		responsesPath string
	)

	cmd := &cobra.Command{
		Use:   "gather",
		Short: "Submit a set of model responses for the question list",
		Long: "Reads a JSON object mapping question ids to response text and stores it\n" +
			"as an immutable submission record. Responses for unknown question ids\n" +
			"are rejected.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if modelName == "" {
				return fmt.Errorf("--model is required")
			}
			if responsesPath == "" {
				return fmt.Errorf("--responses is required")
			}

			data, err := os.ReadFile(responsesPath)
			if err != nil {
				return err
			}
			var responses map[string]string
			if err := json.Unmarshal(data, &responses); err != nil {
				return fmt.Errorf("decoding %s: %w", responsesPath, err)
			}

			st, err := buildStore(ctx)
			if err != nil {
				return err
			}

			questions, err := dataset.Fetch(ctx, st)
			if err != nil {
				return fmt.Errorf("fetching question list: %w", err)
			}
			known := make(map[string]bool, len(questions))
			for _, q := range questions {
				known[q.ID] = true
			}
			for qid := range responses {
				if !known[qid] {
					return fmt.Errorf("response for unknown question id %q", qid)
				}
			}

			path, err := collect.SaveSubmission(ctx, st, collect.Submission{
				ModelName: modelName,
				RunID:     runID,
				Operator:  operator,
				Responses: responses,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d responses to %s\n", len(responses), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&modelName, "model", "", "name of the model that produced the responses")
	cmd.Flags().StringVar(&runID, "run-id", "", "identifier for this collection run")
	cmd.Flags().StringVar(&operator, "operator", "", "person who collected the responses")
	cmd.Flags().StringVar(&responsesPath, "responses", "", "JSON file mapping question ids to response text")

	return cmd
}
