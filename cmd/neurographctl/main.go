package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"neurograph/internal/nn"
	"neurograph/internal/storage"
	"neurograph/pkg/neurograph"
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
	case "create":
		return runCreate(args[1:])
	case "run":
		return runForward(args[1:])
	case "randomize":
		return runRandomize(args[1:])
	case "info":
		return runInfo(args[1:])
	case "push":
		return runPush(ctx, args[1:])
	case "pull":
		return runPull(ctx, args[1:])
	case "list":
		return runList(ctx, args[1:])
	case "activations":
		return runActivations(args[1:])
	default:
		return usageError("unknown command: " + args[0])
	}
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: neurographctl <create|run|randomize|info|push|pull|list|activations> [flags]", msg)
}

func runCreate(args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	configPath := fs.String("config", "", "topology config JSON file")
	outPath := fs.String("out", "network.json", "output network file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath == "" {
		return usageError("create: -config is required")
	}

	spec, err := loadNetworkSpec(*configPath)
	if err != nil {
		return err
	}
	net, err := neurograph.Build(spec)
	if err != nil {
		return err
	}
	if err := storage.SaveFile(*outPath, net.Snapshot()); err != nil {
		return err
	}
	fmt.Printf("created %s: %s\n", net.ID(), *outPath)
	return nil
}

func runForward(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	netPath := fs.String("net", "", "network file")
	inputArg := fs.String("input", "", "comma-separated input values")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *netPath == "" {
		return usageError("run: -net is required")
	}

	net, err := loadNetworkFile(*netPath)
	if err != nil {
		return err
	}
	inputs, err := parseInputs(*inputArg)
	if err != nil {
		return err
	}
	if err := net.SetInput(inputs); err != nil {
		return err
	}
	net.Calculate()

	out, err := json.Marshal(net.Output())
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runRandomize(args []string) error {
	fs := flag.NewFlagSet("randomize", flag.ContinueOnError)
	netPath := fs.String("net", "", "network file")
	seed := fs.Uint64("seed", 1, "random seed")
	min := fs.Float64("min", -1, "minimum weight")
	max := fs.Float64("max", 1, "maximum weight")
	nguyenWidrow := fs.Bool("nguyen-widrow", false, "use nguyen-widrow initialization instead of a flat range")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *netPath == "" {
		return usageError("randomize: -net is required")
	}

	net, err := loadNetworkFile(*netPath)
	if err != nil {
		return err
	}
	if *nguyenWidrow {
		err = nn.RandomizeNguyenWidrow(net, *seed)
	} else {
		err = net.RandomizeWeights(nn.NewRangeRandomizer(*min, *max, *seed))
	}
	if err != nil {
		return err
	}
	if err := storage.SaveFile(*netPath, net.Snapshot()); err != nil {
		return err
	}
	fmt.Printf("randomized %s\n", net.ID())
	return nil
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	netPath := fs.String("net", "", "network file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *netPath == "" {
		return usageError("info: -net is required")
	}

	rec, err := storage.LoadFile(*netPath)
	if err != nil {
		return err
	}
	net, err := nn.FromRecord(rec)
	if err != nil {
		return err
	}

	fmt.Printf("network: %s\n", net)
	fmt.Printf("id:      %s\n", net.ID())
	fmt.Printf("type:    %s\n", net.Type())
	fmt.Printf("inputs:  %d\n", len(net.InputNeurons()))
	fmt.Printf("outputs: %d\n", len(net.OutputNeurons()))
	for i, layer := range net.Layers() {
		label := layer.Label()
		if label == "" {
			label = fmt.Sprintf("layer %d", i)
		}
		fmt.Printf("  %s: %d neurons\n", label, layer.NeuronCount())
	}
	fmt.Printf("connections: %d\n", rec.ConnectionCount())
	return nil
}

func runPush(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("push", flag.ContinueOnError)
	netPath := fs.String("net", "", "network file")
	kind, db := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *netPath == "" {
		return usageError("push: -net is required")
	}

	rec, err := storage.LoadFile(*netPath)
	if err != nil {
		return err
	}
	store, err := openStore(ctx, *kind, *db)
	if err != nil {
		return err
	}
	defer func() { _ = storage.CloseIfSupported(store) }()

	if err := store.SaveNetwork(ctx, rec); err != nil {
		return err
	}
	fmt.Printf("pushed %s\n", rec.ID)
	return nil
}

func runPull(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("pull", flag.ContinueOnError)
	id := fs.String("id", "", "network id")
	outPath := fs.String("out", "network.json", "output network file")
	kind, db := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return usageError("pull: -id is required")
	}

	store, err := openStore(ctx, *kind, *db)
	if err != nil {
		return err
	}
	defer func() { _ = storage.CloseIfSupported(store) }()

	rec, ok, err := store.GetNetwork(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("network not found: %s", *id)
	}
	if err := storage.SaveFile(*outPath, rec); err != nil {
		return err
	}
	fmt.Printf("pulled %s: %s\n", rec.ID, *outPath)
	return nil
}

func runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	kind, db := storeFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := openStore(ctx, *kind, *db)
	if err != nil {
		return err
	}
	defer func() { _ = storage.CloseIfSupported(store) }()

	records, err := store.ListNetworks(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%-36s %-24s %7s %8s %12s\n", "ID", "TYPE", "LAYERS", "NEURONS", "CONNECTIONS")
	for _, rec := range records {
		fmt.Printf("%-36s %-24s %7d %8d %12d\n", rec.ID, rec.Type, len(rec.Layers), rec.NeuronCount(), rec.ConnectionCount())
	}
	return nil
}

func runActivations(args []string) error {
	fs := flag.NewFlagSet("activations", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	for _, name := range nn.ListActivations() {
		fmt.Println(name)
	}
	return nil
}

func storeFlags(fs *flag.FlagSet) (kind, db *string) {
	kind = fs.String("store", "memory", "store backend: memory or sqlite")
	db = fs.String("db", "neurograph.db", "sqlite database path")
	return kind, db
}

func openStore(ctx context.Context, kind, db string) (storage.Store, error) {
	store, err := storage.NewStore(kind, db)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func loadNetworkFile(path string) (*nn.Network, error) {
	rec, err := storage.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return nn.FromRecord(rec)
}

func parseInputs(arg string) ([]float64, error) {
	if strings.TrimSpace(arg) == "" {
		return nil, nil
	}
	parts := strings.Split(arg, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid input value %q: %w", part, err)
		}
		values = append(values, v)
	}
	return values, nil
}
