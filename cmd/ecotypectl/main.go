package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"ecotype/internal/eco"
	"ecotype/internal/fitness"
	"ecotype/internal/storage"
	"ecotype/internal/trace"
	"ecotype/pkg/ecotype"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "reset":
		return runReset(ctx, args[1:])
	case "evaluate":
		return runEvaluate(ctx, args[1:])
	case "history":
		return runHistory(ctx, args[1:])
	case "summaries":
		return runSummaries(ctx, args[1:])
	case "shapes":
		return runShapes(args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "ecotype.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := ecotype.New(ecotype.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runReset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "ecotype.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := ecotype.New(ecotype.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Reset(ctx); err != nil {
		return err
	}
	fmt.Printf("reset store=%s\n", *storeKind)
	return nil
}

func runEvaluate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("evaluate", flag.ContinueOnError)
	configPath := fs.String("config", "", "scenario file (json or yaml)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "ecotype.db", "sqlite database path")
	runID := fs.String("id", "", "evaluation id (generated when empty)")
	traceOut := fs.Bool("trace", false, "print evaluation trace to stderr")
	traceZap := fs.Bool("trace-zap", false, "emit structured evaluation trace")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath == "" {
		return usageError("evaluate requires -config")
	}

	scenario, err := loadScenario(*configPath)
	if err != nil {
		return err
	}

	observer, flush, err := buildObserver(*traceOut, *traceZap)
	if err != nil {
		return err
	}
	defer flush()

	client, err := ecotype.New(ecotype.Options{
		StoreKind: *storeKind,
		DBPath:    *dbPath,
		Observer:  observer,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.RegisterEnvironment(ecotype.EnvironmentSpec{
		Name:        scenario.Environment.Name,
		Description: scenario.Environment.Description,
		Factors:     scenario.Environment.Factors,
	}); err != nil {
		return err
	}

	profile := make([]ecotype.ProfileEntry, 0, len(scenario.Profile))
	for _, entry := range scenario.Profile {
		profile = append(profile, ecotype.ProfileEntry{
			Factor: entry.Factor,
			Shape:  entry.Shape,
			Trait:  entry.Trait,
		})
	}

	summary, err := client.Evaluate(ctx, ecotype.EvaluateRequest{
		ID:          *runID,
		Environment: scenario.Environment.Name,
		Blend:       scenario.Blend,
		Profile:     profile,
	})
	if err != nil {
		return err
	}

	return printJSON(summary)
}

func runHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "ecotype.db", "sqlite database path")
	environment := fs.String("environment", "", "environment name")
	limit := fs.Int("limit", 0, "most recent entries to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *environment == "" {
		return usageError("history requires -environment")
	}

	client, err := ecotype.New(ecotype.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	history, err := client.History(ctx, *environment, *limit)
	if err != nil {
		return err
	}
	for i, score := range history {
		fmt.Printf("%d\t%.6f\n", i+1, score)
	}
	return nil
}

func runSummaries(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("summaries", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "ecotype.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := ecotype.New(ecotype.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summaries, err := client.Summaries(ctx)
	if err != nil {
		return err
	}
	for _, summary := range summaries {
		fmt.Printf("%s\tbest=%.6f\tevaluations=%d\t%s\n",
			summary.Name, summary.BestFitness, summary.Evaluations, summary.Description)
	}
	return nil
}

func runShapes(args []string) error {
	fs := flag.NewFlagSet("shapes", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Printf("shapes: %s\n", strings.Join(eco.ListScalarShapes(), ", "))
	fmt.Printf("blends: %s\n", strings.Join(fitness.ListBlenders(), ", "))
	return nil
}

func buildObserver(traceOut, traceZap bool) (trace.Observer, func(), error) {
	flush := func() {}
	observers := []trace.Observer{}
	if traceOut {
		observers = append(observers, trace.Writer{Out: os.Stderr})
	}
	if traceZap {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, flush, err
		}
		flush = func() {
			_ = logger.Sync()
		}
		observers = append(observers, trace.NewZapObserver(logger))
	}
	if len(observers) == 0 {
		return nil, flush, nil
	}
	return trace.Tee(observers...), flush, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func usageError(msg string) error {
	return fmt.Errorf(`%s

usage: ecotypectl <command> [flags]

commands:
  init       initialize the evaluation store
  reset      drop all persisted evaluation state
  evaluate   score a scenario file against its environment
  history    print an environment's fitness history
  summaries  print per-environment evaluation summaries
  shapes     list registered shapes and blend strategies`, msg)
}
