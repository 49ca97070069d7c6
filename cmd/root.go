// file: cmd/root.go
// version: 1.2.0
// guid: 6a7b8c9d-0e1f-2a3b-4c5d-6e7f8a9b0c1d

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jdfalk/pokematch/internal/config"
	"github.com/jdfalk/pokematch/internal/dataset"
	"github.com/jdfalk/pokematch/internal/engine"
	"github.com/jdfalk/pokematch/internal/models"
	"github.com/jdfalk/pokematch/internal/server"
)

var cfgFile string
var datasetsRoot string
var exemptions []string

// Version is set at build time via -ldflags.
var Version = "dev"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pokematch",
	Short: "Match creature names against a catalog of move names",
	Long: `Pokematch pairs each creature in a dataset with the move name(s) that
best overlap it, using a longest-aligned-run heuristic: the creature's
name is slid along each move name and the longest case-insensitive run
wins, with ties broken by position and an exemption fallback for moves
that make weak sole answers.

Datasets are directories of newline-delimited name lists; results can be
printed from the CLI or served over HTTP.`,
}

// matchCmd computes and prints the matches for one dataset
var matchCmd = &cobra.Command{
	Use:   "match <dataset>",
	Short: "Compute best matches for a dataset",
	Long:  `Compute the best-matching move(s) for every creature in the named dataset and print them.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := dataset.NewCatalog(config.AppConfig.DatasetsRoot)
		if err := catalog.Load(); err != nil {
			return fmt.Errorf("failed to load datasets: %w", err)
		}
		ds, err := catalog.Get(args[0])
		if err != nil {
			return err
		}

		exempt := ds.Exemptions
		if exempt == nil {
			exempt = config.AppConfig.Exemptions
		}
		set := engine.NewExemptionSet(exempt...)

		jsonOut, _ := cmd.Flags().GetBool("json")

		mapping := make(engine.Mapping, len(ds.Creatures))
		var bar *progressbar.ProgressBar
		if !jsonOut {
			bar = progressbar.Default(int64(len(ds.Creatures)), "matching")
		}
		for _, creature := range ds.Creatures {
			one := engine.BestMatches([]string{creature}, ds.Moves, set)
			mapping[creature] = one[creature]
			if bar != nil {
				_ = bar.Add(1)
			}
		}
		result := models.NewResult(ds, mapping)

		if jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		for _, cm := range result.Creatures {
			if len(cm.Matches) == 0 {
				fmt.Printf("%s: (no match)\n", cm.Creature)
				continue
			}
			fmt.Printf("%s:\n", cm.Creature)
			for _, m := range cm.Matches {
				tag := ""
				if m.Secondary {
					tag = " (secondary)"
				}
				fmt.Printf("  %s [%d:%d]%s\n", m.Move, m.Start, m.Start+m.Length, tag)
			}
		}
		return nil
	},
}

// datasetsCmd lists the datasets under the configured root
var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List available datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := dataset.NewCatalog(config.AppConfig.DatasetsRoot)
		if err := catalog.Load(); err != nil {
			return fmt.Errorf("failed to load datasets: %w", err)
		}
		for _, ds := range catalog.List() {
			fmt.Printf("%s\t%d creatures\t%d moves\n", ds.Name, len(ds.Creatures), len(ds.Moves))
		}
		return nil
	},
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Start the web server that exposes datasets and their computed matches over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := dataset.NewCatalog(config.AppConfig.DatasetsRoot)
		if err := catalog.Load(); err != nil {
			return fmt.Errorf("failed to load datasets: %w", err)
		}

		fmt.Printf("Serving %d dataset(s) from %s\n", catalog.Len(), config.AppConfig.DatasetsRoot)

		srv := server.NewServer(catalog)
		cfg := server.GetDefaultServerConfig()

		// Override with command line flags if provided
		if port := cmd.Flag("port").Value.String(); port != "" {
			cfg.Port = port
		}
		if host := cmd.Flag("host").Value.String(); host != "" {
			cfg.Host = host
		}
		if rt := cmd.Flag("read-timeout").Value.String(); rt != "" {
			if d, err := time.ParseDuration(rt); err == nil {
				cfg.ReadTimeout = d
			}
		}
		if wt := cmd.Flag("write-timeout").Value.String(); wt != "" {
			if d, err := time.ParseDuration(wt); err == nil {
				cfg.WriteTimeout = d
			}
		}
		if it := cmd.Flag("idle-timeout").Value.String(); it != "" {
			if d, err := time.ParseDuration(it); err == nil {
				cfg.IdleTimeout = d
			}
		}

		return srv.Start(cfg)
	},
}

// versionCmd prints the build version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pokematch %s\n", Version)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pokematch.yaml)")
	rootCmd.PersistentFlags().StringVar(&datasetsRoot, "datasets", "datasets", "root directory containing datasets")
	rootCmd.PersistentFlags().StringSliceVar(&exemptions, "exemptions", engine.DefaultExemptions, "move names disfavored as a sole best match")

	viper.BindPFlag("datasets_root", rootCmd.PersistentFlags().Lookup("datasets"))
	viper.BindPFlag("exemptions", rootCmd.PersistentFlags().Lookup("exemptions"))

	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(datasetsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	matchCmd.Flags().Bool("json", false, "print the result as JSON")

	// Add serve command specific flags
	serveCmd.Flags().String("port", "8080", "port to run the web server on")
	serveCmd.Flags().String("host", "localhost", "host to bind the web server to")
	serveCmd.Flags().String("read-timeout", "15s", "read timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("write-timeout", "15s", "write timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("idle-timeout", "60s", "idle timeout (e.g. 60s, 2m)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pokematch")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	config.InitConfig()
}
