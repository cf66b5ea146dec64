package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phzwart/boteval/pkg/dataset"
)

func newQuestionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Manage the canonical question list",
	}
	cmd.AddCommand(newQuestionsConvertCommand())
	cmd.AddCommand(newQuestionsPushCommand())
	cmd.AddCommand(newQuestionsTopicsCommand())
	return cmd
}

func newQuestionsConvertCommand() *cobra.Command {
	var (
		input  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a qa_pairs YAML file to the canonical questions JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				return fmt.Errorf("--input is required")
			}
			questions, err := dataset.Load(input)
			if err != nil {
				return err
			}
			data, err := dataset.EncodeJSON(questions)
			if err != nil {
				return err
			}
			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d questions to %s\n", len(questions), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "question list file (YAML or JSON)")
	cmd.Flags().StringVar(&output, "output", "", "write JSON to a file instead of stdout")
	return cmd
}

func newQuestionsPushCommand() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Upload a question list to the store as questions.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if input == "" {
				return fmt.Errorf("--input is required")
			}
			questions, err := dataset.Load(input)
			if err != nil {
				return err
			}
			data, err := dataset.EncodeJSON(questions)
			if err != nil {
				return err
			}
			st, err := buildStore(ctx)
			if err != nil {
				return err
			}
			if err := st.Put(ctx, dataset.QuestionsPath, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pushed %d questions to %s\n", len(questions), dataset.QuestionsPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "question list file (YAML or JSON)")
	return cmd
}

func newQuestionsTopicsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List the topics across the stored question list",
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
			for _, topic := range dataset.Topics(questions) {
				count := len(dataset.FilterByTopic(questions, topic))
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", topic, count)
			}
			return nil
		},
	}
}
