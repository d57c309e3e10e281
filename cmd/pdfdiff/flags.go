package main

import (
	"errors"
	"flag"
	"io"
)

type AppFlags struct {
	FileA            string
	FileB            string
	GlobalConfigFile string
	HTMLOutput       string
	JSONOutput       string
	LogLevel         string
	Pro              bool
	History          bool
	CellDiffExport   bool
	ListHistory      int
	SideBySide       string
	MaxPages         int
}

// ParseFlags reads the command line. The two documents may also be given
// as positional arguments.
func ParseFlags(args []string, output io.Writer) (AppFlags, error) {
	fs := flag.NewFlagSet("pdfdiff", flag.ContinueOnError)
	fs.SetOutput(output)

	fileA := fs.String("a", "", "Path to the first (baseline) PDF")
	fileB := fs.String("b", "", "Path to the second (revised) PDF")

	globalConfigFile := fs.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := fs.String("c", "", "Alias for -config")

	htmlOutput := fs.String("out", "", "Path of the HTML report. Defaults to <output_dir>/report.html")
	htmlOutputAlias := fs.String("o", "", "Alias for -out")

	jsonOutput := fs.String("json", "", "Also write the report as JSON to this path")
	logLevel := fs.String("log-level", "", "Override the configured log level")
	pro := fs.Bool("pro", false, "Enable semantic similarity flags and the summary")
	history := fs.Bool("history", false, "Record the run in the comparison history database")
	cellDiffExport := fs.Bool("parquet", false, "Export sampled table cell differences to Parquet")
	listHistory := fs.Int("list-history", 0, "Print the N most recent comparisons and exit")
	sideBySide := fs.String("side-by-side", "", "Also write a PDF showing each page of A next to the same page of B")
	maxPages := fs.Int("max-pages", 0, "Limit the side-by-side PDF to the first N page pairs (0 = all)")

	if err := fs.Parse(args); err != nil {
		return AppFlags{}, err
	}

	flags := AppFlags{
		FileA:          *fileA,
		FileB:          *fileB,
		JSONOutput:     *jsonOutput,
		LogLevel:       *logLevel,
		Pro:            *pro,
		History:        *history,
		CellDiffExport: *cellDiffExport,
		ListHistory:    *listHistory,
		SideBySide:     *sideBySide,
		MaxPages:       *maxPages,
	}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	if *htmlOutput != "" {
		flags.HTMLOutput = *htmlOutput
	} else if *htmlOutputAlias != "" {
		flags.HTMLOutput = *htmlOutputAlias
	}

	rest := fs.Args()
	if flags.FileA == "" && len(rest) > 0 {
		flags.FileA, rest = rest[0], rest[1:]
	}
	if flags.FileB == "" && len(rest) > 0 {
		flags.FileB, rest = rest[0], rest[1:]
	}
	if len(rest) > 0 {
		return AppFlags{}, errors.New("unexpected extra arguments")
	}

	if flags.ListHistory < 0 {
		return AppFlags{}, errors.New("-list-history must not be negative")
	}
	if flags.MaxPages < 0 {
		return AppFlags{}, errors.New("-max-pages must not be negative")
	}
	if flags.ListHistory == 0 && (flags.FileA == "" || flags.FileB == "") {
		return AppFlags{}, errors.New("two PDF files are required (-a and -b)")
	}

	return flags, nil
}

// parseExitCode maps a ParseFlags error to the process exit code.
// Asking for help is not a failure.
func parseExitCode(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	return 2
}
