package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phzwart/boteval/pkg/collect"
)

func newAnnotateCommand() *cobra.Command {
	var (
		annotator       string
		topic           string
		annotationsPath string
	)

	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Submit human annotations for a topic's questions",
		Long: "Reads a JSON object mapping question ids to {benchmark, quality} and\n" +
			"stores it as an immutable annotation record. Quality must be -1, 0 or 1.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if annotationsPath == "" {
				return fmt.Errorf("--file is required")
			}

			data, err := os.ReadFile(annotationsPath)
			if err != nil {
				return err
			}
			var annotations map[string]collect.QuestionAnnotation
			if err := json.Unmarshal(data, &annotations); err != nil {
				return fmt.Errorf("decoding %s: %w", annotationsPath, err)
			}

			st, err := buildStore(ctx)
			if err != nil {
				return err
			}

			path, err := collect.SaveAnnotation(ctx, st, collect.Annotation{
				Annotator:   annotator,
				Topic:       topic,
				Annotations: annotations,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d annotations to %s\n", len(annotations), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&annotator, "annotator", "", "name of the annotator")
	cmd.Flags().StringVar(&topic, "topic", "", "topic the annotations cover")
	cmd.Flags().StringVar(&annotationsPath, "file", "", "JSON file mapping question ids to annotations")

	return cmd
}
