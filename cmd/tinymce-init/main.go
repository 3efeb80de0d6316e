package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/goliatone/go-tinymce/internal/prompt"
	"github.com/goliatone/go-tinymce/pkg/config"
	"github.com/goliatone/go-tinymce/pkg/extension"
	"github.com/goliatone/go-tinymce/pkg/locale"
	"github.com/goliatone/go-tinymce/pkg/markers"
)

type cliOptions struct {
	configPath   string
	parameterKey string
	sets         []string
	locale       string
	baseURL      string
	assetsBase   string
	policy       string
	merge        string
	routesPath   string
	output       string
	interactive  bool
	verbose      bool
}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	var opts cliOptions

	flagSet := pflag.NewFlagSet("tinymce-init", pflag.ContinueOnError)
	flagSet.StringVarP(&opts.configPath, "config", "c", "config/tinymce.yaml", "parameters file (YAML, JSON or JSONC)")
	flagSet.StringVar(&opts.parameterKey, "key", extension.DefaultParameterKey, "parameter holding the editor configuration")
	flagSet.StringArrayVar(&opts.sets, "set", nil, "override a setting, path=value (repeatable)")
	flagSet.StringVar(&opts.locale, "locale", "", "request locale used when the configuration has no language")
	flagSet.StringVar(&opts.baseURL, "base-url", "", "override base_url")
	flagSet.StringVar(&opts.assetsBase, "assets-base", "", "base path or URL for resolved assets")
	flagSet.StringVar(&opts.policy, "policy", locale.PolicyStrict.String(), "language matching policy: strict or fallback")
	flagSet.StringVar(&opts.merge, "merge", config.MergeRecursive.String(), "override merge strategy: recursive or replace")
	flagSet.StringVar(&opts.routesPath, "routes", "", "routes file mapping route names to paths")
	flagSet.StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	flagSet.BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for selector, language and jQuery settings")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}

	logger, err := newLogger(opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	markup, err := render(ctx, opts, logger, prompt.NewSurveyDriver())
	if err != nil {
		return err
	}

	if opts.output == "" {
		fmt.Println(markup)
		return nil
	}
	if err := os.WriteFile(opts.output, []byte(markup), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("tinymce.init.written", zap.String("path", opts.output))
	return nil
}

func render(ctx context.Context, opts cliOptions, logger *zap.Logger, driver prompt.Driver) (string, error) {
	params, err := config.LoadParameters(ctx, opts.configPath)
	if err != nil {
		return "", err
	}

	policy, err := locale.ParsePolicy(opts.policy)
	if err != nil {
		return "", err
	}
	strategy, err := config.ParseMergeStrategy(opts.merge)
	if err != nil {
		return "", err
	}

	overrides := map[string]any{}
	if opts.baseURL != "" {
		overrides[config.KeyBaseURL] = opts.baseURL
	}
	if len(opts.sets) > 0 {
		if overrides, err = config.ApplySets(overrides, opts.sets); err != nil {
			return "", err
		}
	}

	extOpts := []extension.Option{
		extension.WithParameters(params, opts.parameterKey),
		extension.WithLanguagePolicy(policy),
		extension.WithMergeStrategy(strategy),
		extension.WithLogger(logger),
	}
	if opts.assetsBase != "" {
		extOpts = append(extOpts, extension.WithAssets(markers.StaticAssets{BasePath: opts.assetsBase}))
	}
	if opts.locale != "" {
		extOpts = append(extOpts, extension.WithLocaleProvider(locale.StaticProvider(opts.locale)))
	}
	if opts.routesPath != "" {
		tree, err := config.LoadFile(ctx, opts.routesPath)
		if err != nil {
			return "", err
		}
		routes, err := markers.RouteTableFromTree("", tree)
		if err != nil {
			return "", err
		}
		logger.Debug("tinymce.routes.loaded", zap.Strings("names", routes.Names()))
		extOpts = append(extOpts, extension.WithRoutes(routes))
	}

	ext, err := extension.New(extOpts...)
	if err != nil {
		return "", err
	}

	if opts.interactive {
		answers, err := interview(ctx, ext, overrides, driver)
		if err != nil {
			return "", err
		}
		overrides = config.Merge(overrides, answers.Overrides(), config.MergeRecursive)
	}

	return ext.Init(ctx, overrides)
}

func interview(ctx context.Context, ext *extension.Extension, overrides map[string]any, driver prompt.Driver) (prompt.Answers, error) {
	current, err := ext.Config(ctx, overrides)
	if err != nil {
		return prompt.Answers{}, err
	}
	languages, err := locale.ListLanguages(extension.LanguagesFS(), ".")
	if err != nil {
		return prompt.Answers{}, fmt.Errorf("list languages: %w", err)
	}
	return prompt.Interview(ctx, driver, prompt.Answers{
		Selector:      current.Selector,
		Language:      current.Language,
		TinymceJQuery: current.TinymceJQuery,
		IncludeJQuery: current.IncludeJQuery,
	}, languages)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
