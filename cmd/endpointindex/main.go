package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/apitools/endpointindex/internal/logger"
	"github.com/apitools/endpointindex/internal/state"
	"github.com/apitools/endpointindex/pkg/index"
)

var (
	version = "1.0.0"

	// Global flags
	configFile string
	verbose    bool
	debug      bool

	// Path flags
	rootDir    string
	inputFile  string
	outputFile string
	stateFile  string

	// Generate flags
	format  string
	pretty  bool
	noState bool

	// Export flags
	exportOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "endpointindex",
		Short: "endpointindex - API endpoint index generator",
		Long: `endpointindex - Generates a flattened endpoint index from an API discovery document.

Reads docs/api/discovery.json and writes docs/api/endpoints.txt: one line per
endpoint with HTTP method, REST path, and the fully qualified operation name,
sorted for reproducible diffs.`,
		Version: version,
		Args:    cobra.NoArgs,
		// Bare invocation generates the index, matching the original
		// build-step usage.
		RunE: runGenerate,
	}

	// Generate command
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the endpoint index",
		Long:  "Read the discovery document and write the flattened endpoint index.",
		RunE:  runGenerate,
	}

	// Check command
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the committed index is current",
		Long:  "Regenerate the index in memory and fail when the committed file differs.",
		RunE:  runCheck,
	}

	// Stats command
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show endpoint counts",
		Long:  "Show endpoint counts by HTTP method and by top-level resource.",
		RunE:  runStats,
	}

	// Export command
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the document as an OpenAPI 3 spec",
		Long:  "Convert the discovery document to an OpenAPI 3 spec (JSON, or YAML by extension).",
		RunE:  runExport,
	}

	// History command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded generation runs",
		Long:  "List run snapshots from the state file, newest first.",
		RunE:  runHistory,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Debug mode")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Repository root (default: current directory)")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "", "Discovery document path (default: docs/api/discovery.json)")
	rootCmd.PersistentFlags().StringVar(&stateFile, "state-file", "", "Run-history database path")

	// Generate flags
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Index output path (default: docs/api/endpoints.txt)")
	generateCmd.Flags().StringVarP(&format, "format", "f", "", "Output format (text, json)")
	generateCmd.Flags().BoolVar(&pretty, "pretty", true, "Pretty-print JSON output")
	generateCmd.Flags().BoolVar(&noState, "no-state", false, "Skip run-history recording")

	// Export flags
	exportCmd.Flags().StringVar(&exportOut, "out", "openapi.json", "Spec output path (.yaml for YAML)")

	// Add commands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildConfig merges the config file, defaults, and command-line flags
// (command-line takes precedence).
func buildConfig(cmd *cobra.Command) (*index.Config, error) {
	config := index.DefaultConfig()

	if configFile != "" {
		fileConfig, err := index.LoadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		config = fileConfig
	}

	if rootDir != "" {
		config.RootDir = rootDir
	}
	if inputFile != "" {
		config.DiscoveryPath = inputFile
	}
	if outputFile != "" {
		config.EndpointsPath = outputFile
	}
	if cmd.Flags().Changed("format") {
		config.Format = format
	}
	if cmd.Flags().Changed("pretty") {
		config.Pretty = pretty
	}
	if stateFile != "" {
		config.State.Enabled = true
		config.State.FilePath = stateFile
	}
	if noState {
		config.State.Enabled = false
	}
	config.Verbose = verbose
	config.Debug = debug

	setupLogging(config)

	return config, nil
}

// setupLogging configures the global logger level. The tool stays
// quiet by default so stdout carries only command output.
func setupLogging(config *index.Config) {
	level := logger.WarnLevel
	if config.Verbose {
		level = logger.InfoLevel
	}
	if config.Debug {
		level = logger.DebugLevel
	}

	logger.SetGlobal(logger.New(logger.Config{
		Level:  level,
		Pretty: true,
		Output: os.Stderr,
	}))
}

// newIndexer creates an indexer from the merged configuration, opening
// the run-history store when one is configured. The returned cleanup
// closes the store.
func newIndexer(cmd *cobra.Command) (*index.Indexer, func(), error) {
	config, err := buildConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	opts := []index.Option{index.WithConfig(config)}
	cleanup := func() {}

	if config.State.Enabled {
		store, err := state.NewBoltStore(config.StatePath())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open state file: %w", err)
		}
		opts = append(opts, index.WithStore(store))
		cleanup = func() { store.Close() }
	}

	ix, err := index.New(opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return ix, cleanup, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ix, cleanup, err := newIndexer(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := ix.Generate()
	if err != nil {
		return err
	}

	fmt.Printf("  %d endpoints indexed.\n", result.Stats.EndpointCount)
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	ix, cleanup, err := newIndexer(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := ix.Check(); err != nil {
		return err
	}

	fmt.Printf("  %s is up to date.\n", ix.Config().OutputPath())
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	ix, cleanup, err := newIndexer(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := ix.Stats()
	if err != nil {
		return err
	}

	if result.API != "" {
		fmt.Printf("API:        %s %s\n", result.API, result.Version)
	}
	fmt.Printf("Endpoints:  %d\n", result.Stats.EndpointCount)

	fmt.Println()
	fmt.Println("By HTTP method:")
	for _, method := range sortedCountKeys(result.Stats.ByHTTPMethod) {
		fmt.Printf("  %-8s %d\n", method, result.Stats.ByHTTPMethod[method])
	}

	fmt.Println()
	fmt.Println("By top-level resource:")
	for _, resource := range sortedCountKeys(result.Stats.ByResource) {
		fmt.Printf("  %-24s %d\n", resource, result.Stats.ByResource[resource])
	}

	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	ix, cleanup, err := newIndexer(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	count, err := ix.Export(exportOut)
	if err != nil {
		return err
	}

	fmt.Printf("  %d operations exported to %s.\n", count, exportOut)
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	if stateFile == "" && configFile == "" {
		return fmt.Errorf("history requires --state-file or a config file with state enabled")
	}

	ix, cleanup, err := newIndexer(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	snaps, err := ix.History()
	if err != nil {
		return err
	}

	if len(snaps) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	for _, snap := range snaps {
		fmt.Printf("%s  %5d endpoints  %s  %.12s\n",
			snap.GeneratedAt.Format("2006-01-02 15:04:05"),
			snap.EndpointCount,
			snap.Output,
			snap.IndexHash)
	}

	return nil
}

func sortedCountKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
