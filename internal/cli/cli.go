package cli

import (
	"flag"
	"fmt"
	"io"
)

// Run modes.
const (
	ModeServe   = "serve"
	ModeAnalyze = "analyze"
	ModeMCP     = "mcp"
)

// CLIArgs are the command-line arguments. Empty strings mean "not given":
// the config file and environment values stay in effect.
type CLIArgs struct {
	// Mode selects the host: serve (HTTP API), analyze (one posting) or mcp.
	Mode string

	// ConfigPath is an optional YAML config file.
	ConfigPath string

	// EnvFile is loaded into the environment before JOBCHECK_* lookups.
	EnvFile string

	// Input is the posting JSON file for analyze mode; "-" or empty reads stdin.
	Input string

	// StripHTML converts markup in posting fields to text (analyze mode).
	StripHTML bool

	Addr       string
	BackendURL string
	DBPath     string
	EDAPath    string
	RulesPath  string

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// ParseArgs parses a slice of args and returns CLIArgs. Use in tests by passing
// arbitrary slices. The function is deterministic and does not read os.Args.
func ParseArgs(args []string) (*CLIArgs, error) {
	fs := flag.NewFlagSet("jobcheck", flag.ContinueOnError)
	var (
		mode       = fs.String("mode", ModeServe, "Run mode: serve|analyze|mcp")
		configPath = fs.String("config", "", "YAML config file")
		envFile    = fs.String("env", ".env", "dotenv file to load if present")
		input      = fs.String("input", "", "Posting JSON file for -mode analyze (default stdin)")
		stripHTML  = fs.Bool("html", false, "Strip HTML markup from posting fields (-mode analyze)")
		addr       = fs.String("addr", "", "HTTP listen address, e.g. :8080")
		backend    = fs.String("backend", "", "Prediction backend URL")
		dbPath     = fs.String("db", "", "SQLite history database path")
		edaPath    = fs.String("eda", "", "Dataset summary JSON path")
		rulesPath  = fs.String("rules", "", "YAML ruleset replacing the built-in rules")
	)

	// Ensure Parse doesn't write to stdout/stderr in tests
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		// Flag parsing errors are useful to return to caller
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	switch *mode {
	case ModeServe, ModeAnalyze, ModeMCP:
	default:
		return nil, fmt.Errorf("unknown -mode %q (want serve, analyze or mcp)", *mode)
	}

	return &CLIArgs{
		Mode:       *mode,
		ConfigPath: *configPath,
		EnvFile:    *envFile,
		Input:      *input,
		StripHTML:  *stripHTML,
		Addr:       *addr,
		BackendURL: *backend,
		DBPath:     *dbPath,
		EDAPath:    *edaPath,
		RulesPath:  *rulesPath,
		RawArgs:    args,
	}, nil
}
