// Command demobackend starts a toy prediction backend for jobcheck.
// Usage: go run ./cmd/demobackend [-port 5000] [-key fraud_proba] [-p -1] [-mode ok]
package main

import (
	"flag"
	"log"

	"github.com/raysh454/jobcheck/internal/demobackend"
	"github.com/raysh454/jobcheck/internal/logging"
)

func main() {
	cfg := demobackend.DefaultConfig()
	flag.IntVar(&cfg.Port, "port", cfg.Port, "listen port")
	flag.StringVar(&cfg.ResponseKey, "key", cfg.ResponseKey, "probability field in answers")
	flag.Float64Var(&cfg.Probability, "p", cfg.Probability, "fixed probability; negative derives it from keywords")
	flag.StringVar(&cfg.Mode, "mode", cfg.Mode, "answer mode: ok|error|malformed|slow")
	flag.DurationVar(&cfg.Delay, "delay", cfg.Delay, "delay in slow mode")
	flag.Parse()

	if cfg.Port < 1 || cfg.Port > 65535 {
		log.Fatalf("Invalid port: %d", cfg.Port)
	}

	backend := demobackend.NewDemoBackend(cfg, logging.NewStdoutLogger("demobackend"))
	if err := backend.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
