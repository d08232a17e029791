package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"notelist-cli/internal/format"
	"notelist-cli/internal/model"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the full note document as indented plain text",
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
			root := model.NewDocumentRoot()
			model.Materialize(root, notes)
			_, err = fmt.Fprint(cmd.OutOrStdout(), format.ExportChildren(root))
			return err
		},
	}
	return cmd
}
