package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-mdstack"
	"github.com/alnah/go-mdstack/internal/config"
	"github.com/alnah/go-mdstack/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrNoInput        = errors.New("no input specified")
	ErrReadCSS        = errors.New("failed to read CSS file")
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrWriteOutput    = errors.New("failed to write output file")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// defaultTimeout bounds each document when neither flag nor env sets one.
const defaultTimeout = 30 * time.Second

func wrapUsage(err error) error {
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// buildParams groups the per-document inputs shared by a batch.
type buildParams struct {
	title string
	lang  string
	date  string
	css   string
	pdf   bool
	page  *mdstack.PageSettings
}

// runBuild orchestrates a build: flags, env and config are merged, files
// discovered, then converted in parallel through the pool.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	undo := configureMaxProcs(flags.common.verbose, env.Stderr)
	defer undo()

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadBuildConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeoutWithEnv(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	// Resolve "auto" once so every file of the batch shows the same date.
	date, err := mdstack.ResolveDate(cfg.Document.Date, env.Now())
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	css, err := readExtraCSS(flags.assets.css)
	if err != nil {
		return err
	}

	params := &buildParams{
		title: cfg.Document.Title,
		lang:  cfg.Document.Lang,
		date:  date,
		css:   css,
		pdf:   cfg.PDF.Enabled,
		page:  buildPageSettings(cfg),
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	size := min(mdstack.ResolvePoolSize(workers), len(files))
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", size)
	}

	pool := env.NewPool(size, buildConverterOptions(cfg, timeout, logger)...)
	defer pool.Close()

	results := convertBatch(ctx, pool, files, params)
	if failed := printResults(results, flags.common.quiet, flags.common.verbose, env); failed > 0 {
		if failed == len(results) {
			// Surface the first cause so the exit code reflects it.
			return fmt.Errorf("%d conversion(s) failed: %w", failed, firstError(results))
		}
		return fmt.Errorf("%d conversion(s) failed", failed)
	}
	return nil
}

// configureMaxProcs matches GOMAXPROCS to the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func configureMaxProcs(verbose bool, w io.Writer) func() {
	logf := func(string, ...any) {}
	if verbose {
		logf = func(format string, args ...any) {
			fmt.Fprintf(w, format+"\n", args...)
		}
	}
	undo, _ := maxprocs.Set(maxprocs.Logger(logf))
	return undo
}

// loadBuildConfig loads the config named by the flag, else by the env.
// No name means defaults only.
func loadBuildConfig(flagConfig, envConfig string) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envConfig
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.lang != "" {
		cfg.Document.Lang = flags.document.lang
	}
	if flags.document.date != "" {
		cfg.Document.Date = flags.document.date
	}

	if flags.icons.dir != "" {
		cfg.Icons.BasePath = flags.icons.dir
	}
	if flags.icons.publicPath != "" {
		cfg.Icons.PublicPath = flags.icons.publicPath
	}
	if flags.icons.defaultFile != "" {
		cfg.Icons.DefaultFile = flags.icons.defaultFile
	}
	if flags.icons.inline {
		cfg.Icons.Mode = string(mdstack.IconsInline)
	}

	if flags.assets.style != "" {
		cfg.Style = flags.assets.style
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	if flags.maxDepth != 0 {
		cfg.Macros.MaxDepth = flags.maxDepth
	}
	if flags.softWraps {
		cfg.HTML.SoftWraps = true
	}
	if flags.unsafe {
		cfg.HTML.Unsafe = true
	}

	if flags.pdf.enabled {
		cfg.PDF.Enabled = true
	}
	if flags.pdf.size != "" {
		cfg.PDF.Size = flags.pdf.size
	}
	if flags.pdf.margin != 0 {
		cfg.PDF.Margin = flags.pdf.margin
	}
}

// buildConverterOptions turns the merged config into converter options.
func buildConverterOptions(cfg *config.Config, timeout time.Duration, logger *slog.Logger) []mdstack.Option {
	opts := []mdstack.Option{
		mdstack.WithTimeout(timeout),
		mdstack.WithLogger(logger),
		mdstack.WithStyle(cfg.Style),
		mdstack.WithAssetPath(cfg.Assets.BasePath),
		mdstack.WithMaxDepth(cfg.Macros.MaxDepth),
		mdstack.WithSoftWraps(cfg.HTML.SoftWraps),
		mdstack.WithUnsafeHTML(cfg.HTML.Unsafe),
		mdstack.WithDefaultIconFile(cfg.Icons.DefaultFile),
	}
	if len(cfg.Accents) > 0 {
		opts = append(opts, mdstack.WithAccents(cfg.Accents))
	}
	if cfg.Icons.BasePath != "" {
		mode := mdstack.IconsReference
		if strings.EqualFold(cfg.Icons.Mode, string(mdstack.IconsInline)) {
			mode = mdstack.IconsInline
		}
		opts = append(opts, mdstack.WithIcons(cfg.Icons.BasePath, cfg.Icons.PublicPath, mode))
	}
	return opts
}

// buildPageSettings returns nil unless PDF output is on.
func buildPageSettings(cfg *config.Config) *mdstack.PageSettings {
	if !cfg.PDF.Enabled {
		return nil
	}
	page := mdstack.DefaultPageSettings()
	if cfg.PDF.Size != "" {
		page.Size = strings.ToLower(cfg.PDF.Size)
	}
	if cfg.PDF.Margin != 0 {
		page.Margin = cfg.PDF.Margin
	}
	return page
}

// newLogger writes library logs to w: errors only when quiet, debug when
// verbose, warnings otherwise.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// resolveTimeoutWithEnv picks the timeout: flag > env > default.
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, flagValue)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	return defaultTimeout, nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(args))
	}
	if len(args) == 1 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// readExtraCSS reads the --css file, if any.
func readExtraCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadCSS, err)
	}
	return string(content), nil
}

// hintFor appends an actionable hint for errors users can fix themselves.
func hintFor(err error) string {
	switch {
	case errors.Is(err, mdstack.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths("mdstack"))
	case errors.Is(err, mdstack.ErrStyleNotFound):
		return hints.ForStyleNotFound(mdstack.Styles())
	case errors.Is(err, mdstack.ErrInvalidIconDir):
		return hints.ForIconDir()
	case errors.Is(err, os.ErrPermission):
		return hints.ForOutputDirectory()
	}
	return ""
}
