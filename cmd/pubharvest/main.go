// Command pubharvest searches PubMed, fetches citation records, and
// exports them as a timestamped dataset plus one Markdown note per
// article.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jgmartins/pubharvest/internal/eutils"
	"github.com/jgmartins/pubharvest/internal/ncbi"
	"github.com/jgmartins/pubharvest/internal/output"
)

var (
	flagJSON    bool
	flagHuman   bool
	flagVerbose bool
	flagLimit   int
	flagOut     string
	flagEmail   string
	flagAPIKey  string
)

var rootCmd = &cobra.Command{
	Use:   "pubharvest",
	Short: "Harvest PubMed search results into CSV and Markdown",
	Long: `pubharvest runs a PubMed query through NCBI E-utilities, fetches the
matching citation records, and exports them twice: a timestamped CSV
dataset and one Markdown note per article with [[author]] links, both
under the output directory.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagLimit <= 0 {
			return fmt.Errorf("--limit must be positive, got %d", flagLimit)
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as structured JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagHuman, "human", "H", false, "Rich colorful terminal output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Dump raw parsed records to stderr")
	rootCmd.PersistentFlags().IntVar(&flagLimit, "limit", 50, "Maximum number of results")
	rootCmd.PersistentFlags().StringVar(&flagOut, "out", "", "Output directory (default \"outputs\")")
	rootCmd.PersistentFlags().StringVar(&flagEmail, "email", "", "Contact email sent to NCBI")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "NCBI API key (or set PUBHARVEST_API_KEY)")

	rootCmd.AddCommand(harvestCmd)
	rootCmd.AddCommand(searchCmd)
}

// initConfig layers configuration: flags override environment, which
// overrides pubharvest.yaml in the working directory or ~/.config.
func initConfig() {
	viper.SetConfigName("pubharvest")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "pubharvest"))
	}

	viper.SetDefault("output_dir", "outputs")
	viper.SetEnvPrefix("PUBHARVEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// resolve returns the flag value when set, otherwise the viper key.
func resolve(flagValue, key string) string {
	if flagValue != "" {
		return flagValue
	}
	return viper.GetString(key)
}

func outputDir() string {
	return resolve(flagOut, "output_dir")
}

func outputCfg() output.Config {
	return output.Config{JSON: flagJSON, Human: flagHuman}
}

func newClient() *eutils.Client {
	opts := []ncbi.Option{}
	if key := resolve(flagAPIKey, "api_key"); key != "" {
		opts = append(opts, ncbi.WithAPIKey(key))
	}
	if email := resolve(flagEmail, "email"); email != "" {
		opts = append(opts, ncbi.WithEmail(email))
	}
	return eutils.NewClient(ncbi.NewClient(opts...))
}
