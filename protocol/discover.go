package protocol

import (
	"errors"
	"fmt"
	"os"

	"github.com/datazip-inc/tap-mongodb/constants"
	"github.com/datazip-inc/tap-mongodb/types"
	"github.com/datazip-inc/tap-mongodb/utils"
	"github.com/datazip-inc/tap-mongodb/utils/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// discoverCmd lists the source collections as a configurable catalog
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "discover command",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if configPath == "not-set" {
			return fmt.Errorf("--config not passed")
		}

		return utils.UnmarshalFile(configPath, connector.GetConfigRef())
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := connector.Setup(cmd.Context()); err != nil {
			return err
		}
		defer connector.Close(cmd.Context())

		streams, err := connector.Discover(cmd.Context())
		if err != nil {
			return err
		}

		if len(streams) == 0 {
			return errors.New("no streams found in source")
		}

		catalog := types.GetWrappedCatalog(streams)
		catalogPath := viper.GetString(constants.CatalogPath)
		if err := utils.WriteFileJSON(catalogPath, catalog); err != nil {
			return fmt.Errorf("failed to write catalog file: %s", err)
		}
		logger.Infof("discovered %d streams; catalog written to %s", len(streams), catalogPath)

		return NewMessageWriter(os.Stdout).Write(&types.Message{
			Type:    types.CatalogMessage,
			Catalog: catalog,
		})
	},
}
