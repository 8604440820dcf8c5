package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"provider-directory/internal/common/pagination"
	"provider-directory/internal/config"
	"provider-directory/internal/domain/entity"
	"provider-directory/internal/infra/fhir"
	"provider-directory/internal/observability/logging"
	searchUC "provider-directory/internal/usecase/search"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// factoriesFunc builds one session factory per searchable resource.
type factoriesFunc func(cfg *config.AppConfig, logger *slog.Logger) (map[entity.ResourceType]searchUC.Factory, error)

type searchOptions struct {
	query   string
	page    int
	sort    string
	output  string
	baseURL string
	timeout time.Duration
}

func newRootCmd(build factoriesFunc) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:           "npdsearch {organizations|practitioners}",
		Short:         "Search the National Provider Directory",
		Long:          "Runs one paginated directory search and prints the caption and matching records.",
		Version:       version,
		ValidArgs:     []string{"organizations", "practitioners"},
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutputFormat(opts.output); err != nil {
				return err
			}
			resource, err := entity.ParseResourceType(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig(opts.baseURL)
			if err != nil {
				return err
			}
			logger := logging.NewTextLoggerTo(cmd.ErrOrStderr())

			factories, err := build(cfg, logger)
			if err != nil {
				return err
			}
			factory, ok := factories[resource]
			if !ok {
				return fmt.Errorf("%w: %s", searchUC.ErrUnsupportedResource, resource)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			view, err := runSearch(ctx, factory, cmd, opts)
			if err != nil {
				return err
			}
			if view.Error != nil {
				return fmt.Errorf("search failed: %s", *view.Error)
			}
			if opts.output == outputJSON {
				return printJSON(cmd.OutOrStdout(), view)
			}
			return printText(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "Search terms")
	cmd.Flags().IntVarP(&opts.page, "page", "p", 1, "Page to show")
	cmd.Flags().StringVarP(&opts.sort, "sort", "s", "", "Sort key")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputText, "Output format (text, json)")
	cmd.Flags().StringVar(&opts.baseURL, "api-base-url", "", "Directory API base URL (overrides NPD_API_BASE_URL)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Time allowed for the search to settle")

	return cmd
}

// runSearch starts an empty session and replays the flags as user actions:
// sort first, then the query, then the page.
func runSearch(ctx context.Context, factory searchUC.Factory, cmd *cobra.Command, opts searchOptions) (searchUC.View, error) {
	session := factory("")
	defer session.Close()

	if cmd.Flags().Changed("sort") {
		if err := session.SetSort(ctx, opts.sort); err != nil {
			return searchUC.View{}, err
		}
	}
	if cmd.Flags().Changed("query") {
		if err := session.SetQuery(ctx, opts.query); err != nil {
			return searchUC.View{}, err
		}
	}
	if cmd.Flags().Changed("page") {
		if err := session.NavigateToPage(ctx, opts.page); err != nil {
			return searchUC.View{}, err
		}
	}

	view, err := session.Await(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return view, fmt.Errorf("search did not finish within %s", opts.timeout)
	}
	return view, err
}

// loadConfig is config.Load with the base URL flag applied before
// validation.
func loadConfig(baseURL string) (*config.AppConfig, error) {
	cfg := config.Default()
	if path := os.Getenv(config.EnvConfigFile); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()
	if baseURL != "" {
		cfg.APIBaseURL = baseURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func backendFactories(cfg *config.AppConfig, logger *slog.Logger) (map[entity.ResourceType]searchUC.Factory, error) {
	pageCfg := pagination.LoadFromEnv()

	backendCfg := fhir.DefaultConfig(cfg.APIBaseURL)
	backendCfg.Timeout = cfg.HTTPTimeout
	backendCfg.RequestsPerSecond = cfg.BackendRPS
	backendCfg.Burst = cfg.BackendBurst
	client, err := fhir.NewClient(backendCfg, fhir.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	codec := pagination.NewCodec(pageCfg)
	organizations := fhir.NewOrganizationAPI(client, pageCfg, cfg.CacheTTL)
	practitioners := fhir.NewPractitionerAPI(client, pageCfg, cfg.CacheTTL)
	return map[entity.ResourceType]searchUC.Factory{
		entity.ResourceOrganization: searchUC.NewFactory[entity.Organization](entity.ResourceOrganization, organizations, organizations.Sorts(), codec, logger),
		entity.ResourcePractitioner: searchUC.NewFactory[entity.Practitioner](entity.ResourcePractitioner, practitioners, practitioners.Sorts(), codec, logger),
	}, nil
}

func validateOutputFormat(output string) error {
	if output != outputText && output != outputJSON {
		return fmt.Errorf("unsupported output format %q: use 'text' or 'json'", output)
	}
	return nil
}

func printJSON(w io.Writer, v searchUC.View) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printText(w io.Writer, v searchUC.View) error {
	if _, err := fmt.Fprintln(w, v.Caption); err != nil {
		return err
	}
	if len(v.Records) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range v.Records {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.NPI, r.Location)
	}
	return tw.Flush()
}
