package cli

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rest-mapper/internal/config"
	"rest-mapper/internal/openapi"
	"rest-mapper/internal/resource"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import an OpenAPI 3 document as an API resource document",
		Example: strings.TrimSpace(`  rest-mapper import --input openapi.yaml --out tasks-api.yaml
  rest-mapper import --input openapi.json --name tasks -o json`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, _ := cmd.Flags().GetString("input")
			name, _ := cmd.Flags().GetString("name")
			out, _ := cmd.Flags().GetString("out")

			input = strings.TrimSpace(input)
			if input == "" {
				return newUsageError("import: --input is required")
			}

			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			return runImport(cmd, cfg, input, strings.TrimSpace(name), strings.TrimSpace(out))
		},
	}

	flags := cmd.Flags()
	flags.String("input", "", "OpenAPI 3 document (YAML or JSON)")
	flags.String("name", "", "Resource name; defaults to the document title")
	flags.String("out", "", "Write the resource document here instead of stdout")

	return cmd
}

func runImport(cmd *cobra.Command, cfg *config.Config, input, name, out string) error {
	log := newLogger(cmd, cfg)

	res, err := openapi.ImportFile(cmd.Context(), input, name)
	if err != nil {
		return err
	}

	for _, d := range res.Diagnostics.Warnings {
		log.Warn(d.String())
	}

	for _, d := range res.Diagnostics.Infos {
		log.Debug(d.String())
	}

	log.WithFields(logrus.Fields{
		"resource": res.Document.Name(),
		"methods":  res.Document.Spec.Methods.Len(),
		"entities": len(res.Document.Entities),
	}).Info("document imported")

	if out != "" {
		if err := resource.WriteFile(res.Document, out); err != nil {
			return err
		}

		log.WithField("path", out).Info("resource written")

		return nil
	}

	return printDocument(cmd, cfg, res.Document)
}

func printDocument(cmd *cobra.Command, cfg *config.Config, doc *resource.Document) error {
	marshal := resource.Marshal
	if cfg.Output == config.OutputJSON {
		marshal = resource.MarshalJSON
	}

	data, err := marshal(doc)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}
