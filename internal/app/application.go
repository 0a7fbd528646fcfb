package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/raysh454/jobcheck/internal/analyzer"
	"github.com/raysh454/jobcheck/internal/assessor"
	"github.com/raysh454/jobcheck/internal/cache"
	"github.com/raysh454/jobcheck/internal/cli"
	"github.com/raysh454/jobcheck/internal/eda"
	"github.com/raysh454/jobcheck/internal/logging"
	"github.com/raysh454/jobcheck/internal/model"
	"github.com/raysh454/jobcheck/internal/predictor"
	"github.com/raysh454/jobcheck/internal/registry"
	"github.com/raysh454/jobcheck/internal/retention"
	"github.com/raysh454/jobcheck/internal/server"
	"github.com/raysh454/jobcheck/internal/tools"
	"github.com/raysh454/jobcheck/internal/utils"
	"github.com/raysh454/jobcheck/internal/webclient"
)

// Version is reported by the MCP server.
const Version = "0.1.0"

// LoadConfig layers the configuration sources in order: defaults, the YAML
// file named by args, the dotenv file (never overriding variables already
// set), the process environment, then explicit flags.
func LoadConfig(args *cli.CLIArgs) (*Config, error) {
	cfg := DefaultConfig()
	if args == nil {
		return cfg, nil
	}
	if args.ConfigPath != "" {
		if err := cfg.LoadFile(args.ConfigPath); err != nil {
			return nil, err
		}
	}
	if args.EnvFile != "" {
		if err := godotenv.Load(args.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", args.EnvFile, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.ApplyArgs(args)
	return cfg, nil
}

// ApplyArgs overlays the flags that were given.
func (cfg *Config) ApplyArgs(args *cli.CLIArgs) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Server.ListenAddr, args.Addr)
	set(&cfg.Predictor.Endpoint, args.BackendURL)
	set(&cfg.DBPath, args.DBPath)
	set(&cfg.EDAPath, args.EDAPath)
	set(&cfg.Assessor.RulesPath, args.RulesPath)
}

// Application is the global runtime state container. It holds config,
// parsed CLI args and the components shared by every host mode. Pass it
// into hosts rather than using package-level variables.
type Application struct {
	Config *Config
	Args   *cli.CLIArgs
	Logger logging.Logger

	Assessor  *assessor.HeuristicsAssessor
	Analyzer  analyzer.Analyzer
	Registry  *registry.Registry
	EDA       *eda.Summary
	Retention *retention.Scheduler

	webClient webclient.WebClient

	// internal context for cancellation / lifecycle
	ctx    context.Context
	cancel context.CancelFunc
}

// NewApplication builds every component from cfg. On error, anything
// already opened is closed again.
func NewApplication(ctx context.Context, cfg *Config, args *cli.CLIArgs, logger logging.Logger) (*Application, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if args == nil {
		args = &cli.CLIArgs{Mode: cli.ModeServe}
	}
	if logger == nil {
		return nil, errors.New("app: nil logger")
	}

	a := &Application{Config: cfg, Args: args, Logger: logger}
	a.ctx, a.cancel = context.WithCancel(ctx)

	if err := a.build(); err != nil {
		_ = a.Shutdown(context.Background())
		return nil, err
	}
	return a, nil
}

func (a *Application) build() error {
	cfg := a.Config

	h, err := assessor.NewHeuristicsAssessor(&cfg.Assessor, a.Logger)
	if err != nil {
		return fmt.Errorf("new assessor: %w", err)
	}
	a.Assessor = h

	wc, err := webclient.NewNetHTTPClient(cfg.WebClient, a.Logger, nil)
	if err != nil {
		return fmt.Errorf("new webclient: %w", err)
	}
	a.webClient = wc

	pred, err := predictor.NewHTTPPredictor(cfg.Predictor, wc, a.Logger)
	if err != nil {
		return fmt.Errorf("new predictor: %w", err)
	}

	c, err := cache.New(a.ctx, cfg.Cache, a.Logger)
	if err != nil {
		return fmt.Errorf("new cache: %w", err)
	}

	an, err := analyzer.NewDefaultAnalyzer(h, pred, c, a.Logger)
	if err != nil {
		if c != nil {
			_ = c.Close()
		}
		return fmt.Errorf("new analyzer: %w", err)
	}
	a.Analyzer = an

	db, err := registry.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open registry: %w", err)
	}
	reg, err := registry.NewRegistry(db, a.Logger)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("new registry: %w", err)
	}
	a.Registry = reg

	summary, err := eda.Load(cfg.EDAPath)
	if err != nil {
		a.Logger.Warn("using built-in dataset summary", logging.Field{Key: "error", Value: err.Error()})
	}
	a.EDA = summary

	sched, err := retention.NewScheduler(reg, cfg.Retention, a.Logger)
	if err != nil {
		return fmt.Errorf("new retention: %w", err)
	}
	a.Retention = sched
	return nil
}

// Start begins background work: the history retention sweep.
func (a *Application) Start() error {
	if a == nil {
		return errors.New("application is nil")
	}
	a.Logger.Info("application starting",
		logging.Field{Key: "mode", Value: a.Args.Mode},
		logging.Field{Key: "scoring_version", Value: a.Assessor.Version()},
		logging.Field{Key: "backend", Value: utils.RedactURL(a.Config.Predictor.Endpoint)})
	return a.Retention.Start(a.ctx)
}

// Serve runs the HTTP API until ctx is cancelled, then shuts the listener
// down gracefully.
func (a *Application) Serve(ctx context.Context) error {
	scfg := a.Config.Server
	scfg.Logger = a.Logger
	srv, err := server.NewServer(scfg, server.Deps{
		Analyzer: a.Analyzer,
		Assessor: a.Assessor,
		Store:    a.Registry,
		EDA:      a.EDA,
	})
	if err != nil {
		return fmt.Errorf("new server: %w", err)
	}

	httpSrv := srv.HTTPServer()
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("http server listening", logging.Field{Key: "addr", Value: httpSrv.Addr})
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// AnalyzeOnce reads one posting JSON object from r, analyzes and stores it,
// and writes the verdict JSON to w.
func (a *Application) AnalyzeOnce(ctx context.Context, r io.Reader, w io.Writer) error {
	var p model.JobPosting
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return fmt.Errorf("decode posting: %w", err)
	}
	p = utils.NormalizePosting(p, a.Args.StripHTML)

	v := a.Analyzer.Analyze(ctx, p)
	if _, err := a.Registry.Save(ctx, v); err != nil {
		a.Logger.Warn("saving analysis", logging.Field{Key: "error", Value: err.Error()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ServeMCP serves the check_job_posting tool on stdin/stdout.
func (a *Application) ServeMCP() error {
	checker, err := tools.NewChecker(a.Analyzer, a.Registry, a.Logger)
	if err != nil {
		return err
	}
	return tools.ServeStdio(tools.NewServer(checker, Version))
}

// Shutdown stops background work and releases resources in reverse order
// of construction. It is safe on a partially built Application.
func (a *Application) Shutdown(ctx context.Context) error {
	if a == nil {
		return errors.New("application is nil")
	}
	a.Logger.Info("application shutdown initiated")

	if a.Retention != nil {
		done := make(chan struct{})
		go func() {
			a.Retention.Stop()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			a.Logger.Warn("retention stop timed out")
		}
	}

	var firstErr error
	if a.Registry != nil {
		if err := a.Registry.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close registry: %w", err)
		}
	}
	if a.Analyzer != nil {
		if err := a.Analyzer.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close analyzer: %w", err)
		}
	}
	if a.webClient != nil {
		if err := a.webClient.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close webclient: %w", err)
		}
	}

	// cancel internal ctx to signal local components/tests
	a.cancel()
	return firstErr
}
