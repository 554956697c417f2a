package protocol

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/datazip-inc/tap-mongodb/constants"
	"github.com/datazip-inc/tap-mongodb/types"
	"github.com/datazip-inc/tap-mongodb/utils"
	"github.com/datazip-inc/tap-mongodb/utils/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configPath  string
	catalogPath string
	statePath   string

	catalog *types.Catalog
	state   *types.State

	commands  = []*cobra.Command{}
	connector Driver
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "tap-mongodb",
	Short: "root command",
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// set global variables
		viper.SetDefault(constants.ConfigFolder, os.TempDir())

		if configPath != "not-set" {
			viper.Set(constants.ConfigFolder, filepath.Dir(configPath))
		}

		configFolder := viper.GetString(constants.ConfigFolder)
		statePathEnv := utils.Ternary(statePath == "", filepath.Join(configFolder, "state.json"), statePath).(string)
		catalogPathEnv := utils.Ternary(catalogPath == "", filepath.Join(configFolder, "streams.json"), catalogPath).(string)
		viper.Set(constants.StatePath, statePathEnv)
		viper.Set(constants.CatalogPath, catalogPathEnv)

		// logger uses CONFIG_FOLDER
		logger.Init()
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}

		if ok := utils.IsValidSubcommand(commands, args[0]); !ok {
			return fmt.Errorf("'%s' is an invalid command. Use 'tap-mongodb --help' to display usage guide", args[0])
		}

		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "", "not-set", "(Required) Config for tap-mongodb")
	RootCmd.PersistentFlags().StringVarP(&catalogPath, "catalog", "", "", "Configured catalog of streams to sync")
	RootCmd.PersistentFlags().StringVarP(&statePath, "state", "", "", "State from a previous run to resume from")

	commands = append(commands, specCmd, checkCmd, discoverCmd, syncCmd)
}

func CreateRootCommand(driver Driver) *cobra.Command {
	RootCmd.AddCommand(commands...)
	connector = driver

	return RootCmd
}
