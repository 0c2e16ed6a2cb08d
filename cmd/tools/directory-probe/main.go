// cmd/tools/directory-probe/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"fishlog-identify/internal/common/config"
	"fishlog-identify/internal/species"
	"fishlog-identify/pkg/catalog"
)

func main() {
	if err := rootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "directory-probe",
		Short:        "Inspect the species directory the identify service matches against",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: configs/config.yaml)")

	rootCmd.AddCommand(
		matchCommand(&configPath),
		listCommand(&configPath),
		exportCommand(&configPath),
	)
	return rootCmd
}

func matchCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "match <label> [label...]",
		Short: "Resolve labels against the species directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := loadDirectory(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			for _, label := range args {
				cmd.Println(describeMatch(dir, label))
			}
			return nil
		},
	}
}

func listCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every species with its comparison key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := loadDirectory(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			for _, e := range dir.Entries() {
				cmd.Printf("%-40s %s\n", e.Label, e.Key)
			}
			cmd.Printf("%d species\n", dir.Len())
			return nil
		},
	}
}

func exportCommand(configPath *string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the directory to a JSON seed catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := loadDirectory(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			if err := export(dir, out); err != nil {
				return fmt.Errorf("export catalog: %w", err)
			}
			cmd.Printf("Exported %d species to %s\n", dir.Len(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "configs/species-seed.json", "Output catalog file")
	return cmd
}

func loadDirectory(ctx context.Context, path string) (*species.Directory, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	source, closeSource, err := species.OpenSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s source: %w", cfg.Directory.Source, err)
	}
	defer closeSource()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	dir, err := species.NewLoader(source, config.GetDuration(cfg.Directory.Timeout)).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load directory: %w", err)
	}
	return dir, nil
}

func describeMatch(dir *species.Directory, label string) string {
	canonical, ok := dir.Match(label)
	switch {
	case !ok:
		return fmt.Sprintf("%q -> no match (key %q)", label, species.Normalize(label))
	case species.Normalize(canonical) == species.Normalize(label):
		return fmt.Sprintf("%q -> %q (exact)", label, canonical)
	default:
		return fmt.Sprintf("%q -> %q (substring)", label, canonical)
	}
}

func export(dir *species.Directory, path string) error {
	rows := make([]map[string]interface{}, 0, dir.Len())
	for _, label := range dir.Labels() {
		rows = append(rows, map[string]interface{}{"name": label})
	}
	return catalog.Save(path, &catalog.Catalog{
		Version:     "1",
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		Species:     rows,
	})
}
