package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rftidy/internal/config"
	"rftidy/internal/driver"
	"rftidy/internal/transform"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format Robot Framework source files",
	Long: `Format Robot Framework source files in place.

By default every enabled transformer runs in catalog order. An explicit
--transform selection runs only the named transformers, in the given order.
Transformer parameters merge from the configuration file, then --configure,
then parameters attached to --transform.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().StringArrayP("transform", "t", nil, "run only the given transformer, NAME[:param=value...] (repeatable, keeps order)")
	fmtCmd.Flags().StringArrayP("configure", "c", nil, "configure a transformer, NAME:param=value[:param=value...] (repeatable)")
	fmtCmd.Flags().String("config", "", "read configuration from this file instead of discovering it")
	fmtCmd.Flags().Bool("no-overwrite", false, "do not write changes back to files")
	fmtCmd.Flags().Bool("diff", false, "output a unified diff of each changed file")
	fmtCmd.Flags().Bool("check", false, "do not write; exit 1 when at least one file would change")
	fmtCmd.Flags().IntP("spacecount", "s", 4, "number of spaces between cells")
	fmtCmd.Flags().String("lineseparator", "native", "line separator for output (native|unix|windows)")
	fmtCmd.Flags().Int("startline", 0, "limit formatting to lines starting here (1-based)")
	fmtCmd.Flags().Int("endline", 0, "limit formatting to lines up to here (1-based)")
	fmtCmd.Flags().StringP("output", "o", "", "write the formatted result to this path (single source file only)")
	fmtCmd.Flags().Int("jobs", 0, "maximum number of files formatted in parallel (0 = number of CPUs)")
	fmtCmd.Flags().Bool("cache", false, "skip files a previous run with the same settings left unchanged")
	fmtCmd.Flags().Bool("progress", false, "show interactive progress (terminal only)")
}

type fmtOptions struct {
	selections []transform.Selection
	configures []transform.Selection
	fileParams map[string][]string

	spaceCount    int
	lineSeparator string
	startLine     int
	endLine       int

	check     bool
	diff      bool
	overwrite bool
	output    string
	jobs      int
	cache     bool
	progress  bool
	quiet     bool
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	opts, err := gatherFmtOptions(cmd, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fmt: %v\n", err)
		return err
	}

	// Resolving and instantiating the pipeline is fail-fast: any unknown
	// transformer or rejected parameter aborts before any file is read.
	invocations, err := transform.Load(
		transform.DefaultCatalog(),
		opts.selections,
		opts.configures,
		opts.fileParams,
		transform.LoadOptions{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fmt: %v\n", err)
		return err
	}
	pipeline := transform.NewPipeline(invocations, transform.Config{
		SpaceCount: opts.spaceCount,
		StartLine:  opts.startLine,
		EndLine:    opts.endLine,
	})

	driverOpts := driver.Options{
		Pipeline:      pipeline,
		Check:         opts.check,
		Diff:          opts.diff,
		Overwrite:     opts.overwrite,
		Output:        opts.output,
		LineSeparator: opts.lineSeparator,
		ColorDiff:     colorEnabled(),
		Jobs:          opts.jobs,
	}
	if opts.cache {
		cache, err := driver.OpenCache()
		if err != nil {
			fmt.Fprintf(os.Stderr, "fmt: cannot open cache: %v\n", err)
		} else {
			driverOpts.Cache = cache
		}
	}

	var results []driver.FormatResult
	if opts.progress && isTerminal(os.Stdout) {
		results, err = runFormatWithUI(cmd.Context(), args, driverOpts)
	} else {
		results, err = driver.FormatPaths(cmd.Context(), args, driverOpts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "fmt: %v\n", err)
		return err
	}

	var hasErrors, hasChanges bool
	renderFmtResults(results, opts, &hasErrors, &hasChanges)

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if opts.check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

func gatherFmtOptions(cmd *cobra.Command, args []string) (fmtOptions, error) {
	flags := cmd.Flags()
	opts := fmtOptions{}

	configPath, err := flags.GetString("config")
	if err != nil {
		return opts, err
	}
	var cfg config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.Find(args)
	}
	if err != nil {
		return opts, err
	}

	opts.quiet, _ = cmd.Root().PersistentFlags().GetBool("quiet")
	if cfg.Path != "" && !opts.quiet {
		fmt.Fprintf(os.Stderr, "loaded configuration from %s\n", cfg.Path)
	}

	// flags given explicitly win over the configuration file
	opts.spaceCount = intOption(flags, "spacecount", cfg.SpaceCount)
	opts.lineSeparator = stringOption(flags, "lineseparator", cfg.LineSeparator)
	opts.startLine = intOption(flags, "startline", cfg.StartLine)
	opts.endLine = intOption(flags, "endline", cfg.EndLine)
	opts.check = boolOption(flags, "check", cfg.Check)
	opts.diff = boolOption(flags, "diff", cfg.Diff)

	switch opts.lineSeparator {
	case "native", "unix", "windows":
	default:
		return opts, fmt.Errorf("unsupported line separator %q", opts.lineSeparator)
	}

	noOverwrite, _ := flags.GetBool("no-overwrite")
	opts.overwrite = !noOverwrite
	if !flags.Changed("no-overwrite") && cfg.Overwrite != nil {
		opts.overwrite = *cfg.Overwrite
	}

	opts.output, _ = flags.GetString("output")
	opts.jobs, _ = flags.GetInt("jobs")
	opts.cache, _ = flags.GetBool("cache")
	opts.progress, _ = flags.GetBool("progress")

	// explicit CLI selection wins over a selection in the config file
	rawTransform, _ := flags.GetStringArray("transform")
	if len(rawTransform) == 0 {
		rawTransform = cfg.Transform
	}
	for _, raw := range rawTransform {
		opts.selections = append(opts.selections, transform.ParseSelector(raw))
	}
	rawConfigure, _ := flags.GetStringArray("configure")
	for _, raw := range rawConfigure {
		opts.configures = append(opts.configures, transform.ParseSelector(raw))
	}
	opts.fileParams = make(map[string][]string)
	for _, raw := range cfg.Configure {
		sel := transform.ParseSelector(raw)
		opts.fileParams[sel.Name] = append(opts.fileParams[sel.Name], sel.Params...)
	}
	return opts, nil
}

func renderFmtResults(results []driver.FormatResult, opts fmtOptions, hasErrors, hasChanges *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		if !res.Changed {
			continue
		}
		*hasChanges = true
		if res.Diff != "" {
			fmt.Fprint(os.Stdout, res.Diff)
		}
		if opts.quiet {
			continue
		}
		if opts.check {
			fmt.Fprintf(os.Stdout, "would reformat %s\n", res.Path)
		} else if opts.overwrite && opts.output == "" {
			fmt.Fprintf(os.Stdout, "reformatted %s\n", res.Path)
		}
	}
}

func intOption(flags flagSet, name string, fromConfig int) int {
	if !flags.Changed(name) && fromConfig != 0 {
		return fromConfig
	}
	v, _ := flags.GetInt(name)
	return v
}

func stringOption(flags flagSet, name string, fromConfig string) string {
	if !flags.Changed(name) && fromConfig != "" {
		return fromConfig
	}
	v, _ := flags.GetString(name)
	return v
}

func boolOption(flags flagSet, name string, fromConfig bool) bool {
	if !flags.Changed(name) && fromConfig {
		return true
	}
	v, _ := flags.GetBool(name)
	return v
}

// flagSet is the subset of pflag.FlagSet the option helpers need.
type flagSet interface {
	Changed(name string) bool
	GetInt(name string) (int, error)
	GetString(name string) (string, error)
	GetBool(name string) (bool, error)
}
