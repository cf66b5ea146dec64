package commands

import (
	"os"
	"path"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/phzwart/boteval/pkg/collect"
	"github.com/phzwart/boteval/pkg/core"
)

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the store's evaluation documents, submissions and annotations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := buildStore(ctx)
			if err != nil {
				return err
			}

			prefix := appConfig.Prefix
			if prefix == "" {
				prefix = core.DefaultPrefix
			}
			docs, err := st.List(ctx, prefix)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(docs))
			for _, p := range docs {
				names = append(names, strings.TrimSuffix(path.Base(p), path.Ext(p)))
			}
			writeList("Documents", names)

			subs, err := st.List(ctx, collect.SubmissionPrefix)
			if err != nil {
				return err
			}
			writeList("Submissions", basenames(subs))

			anns, err := st.List(ctx, collect.AnnotationPrefix)
			if err != nil {
				return err
			}
			writeList("Annotations", basenames(anns))
			return nil
		},
	}
	return cmd
}

func basenames(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, path.Base(p))
	}
	return out
}

func writeList(title string, items []string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{title})
	for _, item := range items {
		table.Append([]string{item})
	}
	table.Render()
}
