// Package main provides the Sleipnir CLI entry point.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/orneryd/sleipnir/pkg/config"
	"github.com/orneryd/sleipnir/pkg/corpus"
	"github.com/orneryd/sleipnir/pkg/storage"
	"github.com/orneryd/sleipnir/pkg/walker"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sleipnir",
		Short: "Sleipnir - Weisfeiler-Lehman walk extraction for graph embeddings",
		Long: `Sleipnir extracts Weisfeiler-Lehman labeled walks from a knowledge
graph and writes them as a training corpus for word2vec-style embedding
trainers.

Pipeline:
  • Import triples into a persistent BadgerDB store
  • Build the in-memory knowledge graph
  • Relabel vertices with iterative Weisfeiler-Lehman rounds
  • Sample bounded random walks per root instance
  • Emit the deduplicated canonical walk corpus`,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Sleipnir v%s (%s)\n", version, commit)
		},
	})

	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import whitespace-separated triples into the store",
		Long: `Import reads one triple per line (subject predicate object,
whitespace separated) and appends them to the triple store.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
	importCmd.Flags().String("data-dir", "", "Triple store directory (default from config)")
	rootCmd.AddCommand(importCmd)

	extractCmd := &cobra.Command{
		Use:   "extract [instance...]",
		Short: "Extract canonical walks rooted at the given instances",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runExtract,
	}
	extractCmd.Flags().String("data-dir", "", "Triple store directory (default from config)")
	extractCmd.Flags().Int("depth", 0, "Expansion steps per walk (default from config)")
	extractCmd.Flags().Int("walks", 0, "Walk cap per root (default from config)")
	extractCmd.Flags().Int("iterations", -1, "WL relabeling rounds (default from config)")
	extractCmd.Flags().Int64("seed", 0, "Sampling seed (default from config)")
	extractCmd.Flags().String("out", "", "Corpus output path (default from config)")
	rootCmd.AddCommand(extractCmd)

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show store and graph statistics",
		RunE:  runStats,
	}
	statsCmd.Flags().String("data-dir", "", "Triple store directory (default from config)")
	rootCmd.AddCommand(statsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges environment configuration with command flags; a set
// flag wins over the environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.LoadFromEnv()

	if f := cmd.Flags().Lookup("data-dir"); f != nil && f.Changed {
		cfg.Storage.DataDir = f.Value.String()
	}
	if f := cmd.Flags().Lookup("out"); f != nil && f.Changed {
		cfg.Output.CorpusPath = f.Value.String()
	}
	if f := cmd.Flags().Lookup("depth"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetInt("depth")
		cfg.Walker.Depth = v
	}
	if f := cmd.Flags().Lookup("walks"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetInt("walks")
		cfg.Walker.WalksPerGraph = v
	}
	if f := cmd.Flags().Lookup("iterations"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetInt("iterations")
		cfg.Walker.Iterations = v
	}
	if f := cmd.Flags().Lookup("seed"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetInt64("seed")
		cfg.Walker.Seed = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openEngine(cfg *config.Config) (storage.Engine, error) {
	return storage.NewBadgerEngine(storage.BadgerOptions{
		DataDir:  cfg.Storage.DataDir,
		InMemory: cfg.Storage.InMemory,
	})
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening triples file: %w", err)
	}
	defer f.Close()

	engine, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	var batch []storage.Triple
	imported, skipped := 0, 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			skipped++
			continue
		}
		batch = append(batch, storage.Triple{
			Subject:   fields[0],
			Predicate: fields[1],
			Object:    fields[2],
		})
		if len(batch) >= 1000 {
			if err := engine.BulkCreateTriples(batch); err != nil {
				return err
			}
			imported += len(batch)
			batch = batch[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading triples file: %w", err)
	}
	if len(batch) > 0 {
		if err := engine.BulkCreateTriples(batch); err != nil {
			return err
		}
		imported += len(batch)
	}

	log.Printf("imported %d triples (%d malformed lines skipped)", imported, skipped)
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := context.Background()

	engine, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	g, err := storage.BuildGraph(ctx, engine)
	if err != nil {
		return err
	}
	log.Printf("graph loaded: %d vertices", g.VertexCount())

	w := walker.NewWLWalker(
		cfg.Walker.Depth,
		cfg.Walker.WalksPerGraph,
		cfg.Walker.Iterations,
		cfg.Walker.Seed,
	)
	set, err := w.Extract(ctx, g, args)
	if err != nil {
		return err
	}
	log.Printf("extracted %d canonical walks for %d instances", set.Len(), len(args))

	if err := corpus.WriteFile(cfg.Output.CorpusPath, set); err != nil {
		return err
	}
	log.Printf("corpus written to %s", cfg.Output.CorpusPath)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	engine, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer engine.Close()

	count, err := engine.TripleCount()
	if err != nil {
		return err
	}

	g, err := storage.BuildGraph(context.Background(), engine)
	if err != nil {
		return err
	}

	fmt.Printf("triples:  %d\n", count)
	fmt.Printf("vertices: %d\n", g.VertexCount())
	return nil
}
