package main

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/smuggr/arrango-ihtc/common/config"
	"github.com/smuggr/arrango-ihtc/common/logging"
	"github.com/smuggr/arrango-ihtc/common/model"
	"github.com/smuggr/arrango-ihtc/core/orchestrator"
)

// main reads an instance JSON file (path given as the first argument, or
// stdin otherwise), solves it, and writes the result JSON to stdout.
// Parsing the instance file and emitting the solution file are themselves
// out of scope (spec §1's "external parser/emitter" boundary) — this is a
// thin demonstration entry point around orchestrator.Solver.Solve.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(&cfg)
	if err != nil {
		logger = logging.NewNop()
	}
	defer logger.Sync()

	raw, err := readInput()
	if err != nil {
		logger.Fatal("reading instance", zap.Error(err))
	}

	var instance model.Instance
	if err := json.Unmarshal(raw, &instance); err != nil {
		logger.Fatal("decoding instance", zap.Error(err))
	}
	if err := instance.Validate(); err != nil {
		logger.Fatal("invalid instance", zap.Error(err))
	}

	solver := orchestrator.New(&instance, cfg, logger)
	result, err := solver.Solve()
	if err != nil {
		logger.Fatal("solve failed", zap.Error(err))
	}

	out, err := json.Marshal(result)
	if err != nil {
		logger.Fatal("encoding result", zap.Error(err))
	}
	fmt.Println(string(out))
}

func readInput() ([]byte, error) {
	if len(os.Args) > 1 {
		return os.ReadFile(os.Args[1])
	}
	return os.ReadFile("/dev/stdin")
}
