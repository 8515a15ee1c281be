package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"rest-mapper/internal/config"
	"rest-mapper/internal/diagnostic"
	"rest-mapper/internal/mapping"
	"rest-mapper/internal/reconcile"
	"rest-mapper/internal/resource"
)

type checkOptions struct {
	API     string
	Client  string
	Mapping string
	Write   bool
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Reconcile an API resource with a client resource and report the mapping",
		Long: "Build the method mapping between an API resource and a client resource. " +
			"An empty side receives copies of the other side's methods and entities. " +
			"With --write the updated resources and the reconciled mapping are saved.",
		Example: strings.TrimSpace(`  rest-mapper check --api tasks-api.yaml --client tasks-client.yaml
  rest-mapper check --api tasks-api.yaml --client tasks-client.yaml --mapping mapping.yaml --write`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := checkOptionsFrom(cmd)
			if err != nil {
				return err
			}

			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			return runCheck(cmd, cfg, opts)
		},
	}

	flags := cmd.Flags()
	flags.String("api", "", "API resource document (YAML or JSON)")
	flags.String("client", "", "Client resource document (YAML or JSON)")
	flags.String("mapping", "", "Mapping file; missing files start an empty mapping")
	flags.Bool("write", false, "Write the updated resources and mapping back to disk")
	flags.Bool("strict", false, "Fail on warnings as well as on issues")

	return cmd
}

func checkOptionsFrom(cmd *cobra.Command) (checkOptions, error) {
	var opts checkOptions

	flags := cmd.Flags()
	opts.API, _ = flags.GetString("api")
	opts.Client, _ = flags.GetString("client")
	opts.Mapping, _ = flags.GetString("mapping")
	opts.Write, _ = flags.GetBool("write")

	opts.API = strings.TrimSpace(opts.API)
	opts.Client = strings.TrimSpace(opts.Client)
	opts.Mapping = strings.TrimSpace(opts.Mapping)

	switch {
	case opts.API == "" || opts.Client == "":
		return opts, newUsageError("check: --api and --client are required")
	case opts.Write && opts.Mapping == "":
		return opts, newUsageError("check: --write needs --mapping to know where to save the mapping")
	}

	return opts, nil
}

func runCheck(cmd *cobra.Command, cfg *config.Config, opts checkOptions) error {
	log := newLogger(cmd, cfg)

	api, err := resource.LoadFile(opts.API)
	if err != nil {
		return err
	}

	client, err := resource.LoadFile(opts.Client)
	if err != nil {
		return err
	}

	persisted, err := loadMapping(opts.Mapping)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"api":      api.Name(),
		"client":   client.Name(),
		"mappings": persisted.Len(),
	}).Info("inputs loaded")

	var findings diagnostic.Diagnostics
	findings.Merge(prefixed(resource.Validate(api), api.Name()))
	findings.Merge(prefixed(resource.Validate(client), client.Name()))
	findings.Merge(*mapping.Validate(persisted, api.MethodIDs(), client.MethodIDs()))

	session := reconcile.NewSession(
		reconcile.Side{Resource: &api.Resource, Entities: api.Entities},
		reconcile.Side{Resource: &client.Resource, Entities: client.Entities},
		persisted,
		reconcile.WithLogger(log),
	)

	state := session.State()
	findings.Merge(*state.Validate())

	rep := newReport(state, findings)

	log.WithFields(logrus.Fields{
		"entries":  len(rep.Entries),
		"issues":   len(rep.Issues),
		"warnings": len(rep.Warnings),
	}).Info("connection checked")

	if err := printReport(cmd.OutOrStdout(), cfg.Output, rep); err != nil {
		return err
	}

	if opts.Write {
		if err := writeOutputs(session.Output(), opts); err != nil {
			return err
		}

		log.WithFields(logrus.Fields{
			"api":     opts.API,
			"client":  opts.Client,
			"mapping": opts.Mapping,
		}).Info("outputs written")
	}

	if !rep.Valid || (cfg.Strict && len(rep.Warnings) > 0) {
		return ErrCheckFailed
	}

	return nil
}

func loadMapping(path string) (*mapping.Connection, error) {
	if path == "" {
		return &mapping.Connection{}, nil
	}

	conn, err := mapping.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &mapping.Connection{}, nil
	}

	return conn, err
}

func writeOutputs(out reconcile.Output, opts checkOptions) error {
	api := &resource.Document{Resource: *out.Source, Entities: out.SourceEntities}
	if err := resource.WriteFile(api, opts.API); err != nil {
		return err
	}

	client := &resource.Document{Resource: *out.Target, Entities: out.TargetEntities}
	if err := resource.WriteFile(client, opts.Client); err != nil {
		return err
	}

	if err := mapping.WriteFile(out.Mapping, opts.Mapping); err != nil {
		return fmt.Errorf("failed to save mapping: %w", err)
	}

	return nil
}

// prefixed returns d with every subject qualified by the resource name.
func prefixed(d *diagnostic.Diagnostics, name string) diagnostic.Diagnostics {
	out := d.Clone()

	for _, list := range [][]diagnostic.Diagnostic{out.Errors, out.Warnings, out.Infos} {
		for i := range list {
			if list[i].Subject == "" {
				list[i].Subject = name
			} else {
				list[i].Subject = name + "." + list[i].Subject
			}
		}
	}

	return out
}
