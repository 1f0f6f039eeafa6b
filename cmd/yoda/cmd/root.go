package cmd

import (
	"fmt"
	"os"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yodaproject/yoda/logger"
	"github.com/yodaproject/yoda/stats"
)

var rootCmd = &cobra.Command{
	Use:   "yoda",
	Short: "Reads, writes, converts and merges binned statistics files",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Setup("yoda", viper.GetString("log-level"), os.Stderr)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if showStats {
			if err := stats.Report(os.Stderr, "yoda"); err != nil {
				log.Errorf("failed to report stats: %s", err)
			}
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	// config params used by >1 subcommands are listed here
	// config params specific to only 1 command, go in the file for that command
	cfgFile   string
	showStats bool
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.yoda.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level. trace|debug|info|warning|error|fatal|panic")
	rootCmd.PersistentFlags().Int("precision", -1, "digits after the decimal point when writing floats. -1 writes the shortest exact form")
	rootCmd.PersistentFlags().String("binnings", "", "binning rules file used when booking histograms")
	rootCmd.PersistentFlags().BoolVar(&showStats, "stats", false, "print the instrumentation counters to stderr on exit")

	for _, key := range []string{"log-level", "precision", "binnings"} {
		viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".yoda")
	}

	// YODA_LOG_LEVEL, YODA_PRECISION, YODA_BINNINGS
	viper.SetEnvPrefix("yoda")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "can't read config file %q: %s\n", cfgFile, err)
		os.Exit(1)
	}
}

func precision() int {
	return viper.GetInt("precision")
}
