package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/combinator/grammars/calc"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var log = commonlog.GetLogger("pc.cli")

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "pc",
		Short: "Parser combinator toolkit",
		Long:  "pc parses arithmetic, JSON and EBNF-described input with a parser combinator engine.",
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))

	rootCmd.AddCommand(newCalcCmd())
	rootCmd.AddCommand(newJSONCmd())
	rootCmd.AddCommand(newEbnfCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("variables", map[string]int{"x": 3, "y": 5})
	viper.SetEnvPrefix("PC")
	viper.AutomaticEnv()

	var configErr error
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		configErr = viper.ReadInConfig()
	}

	var logFile *string
	if path := viper.GetString("log_file"); path != "" {
		logFile = &path
	}
	commonlog.Configure(viper.GetInt("verbose"), logFile)

	if configErr != nil {
		log.Errorf("read config %s: %s", cfgFile, configErr)
	}
}

// loadVariables returns the calculator variables from the configuration.
func loadVariables() (calc.Variables, error) {
	var vars calc.Variables
	if err := viper.UnmarshalKey("variables", &vars); err != nil {
		return nil, fmt.Errorf("config variables: %w", err)
	}
	return vars, nil
}
