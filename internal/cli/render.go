package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rest-mapper/internal/dsl"
	"rest-mapper/internal/resource"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render <resource-file>",
		Short: "Print the text representation of a resource's methods",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return newUsageError(fmt.Sprintf("render: expected one resource file, got %d", len(args)))
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := resource.LoadFile(args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), dsl.Render(&doc.Spec.Methods))

			return err
		},
	}
}
