package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"notelist-cli/internal/format"
	"notelist-cli/internal/model"
)

func newListCmd(app *App) *cobra.Command {
	var outFormat string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the full note document (json|text)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := loadRemote(app)
			if err != nil {
				return err
			}
			defer client.Close()

			notes, err := client.ListNotes(cmd.Context())
			if err != nil {
				return err
			}
			if outFormat == "text" {
				root := model.NewDocumentRoot()
				model.Materialize(root, notes)
				_, err = fmt.Fprint(cmd.OutOrStdout(), format.ExportChildren(root))
				return err
			}
			return format.Write(cmd.OutOrStdout(), notes, outFormat, app.PrettyJSON)
		},
	}
	cmd.Flags().StringVar(&outFormat, "format", "json", "Output format (json|text)")
	return cmd
}
