package protocol

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/datazip-inc/tap-mongodb/types"
	"github.com/datazip-inc/tap-mongodb/utils"
	"github.com/datazip-inc/tap-mongodb/utils/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

// syncCmd runs incremental extraction for every configured stream
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "sync command",
	Long:  `Sync command starts incremental extraction of the configured streams, resuming from the provided state`,
	Example: `
// Base command:
tap-mongodb sync --config path/to/config --catalog path/to/streams

// With State:
tap-mongodb sync --config path/to/config --catalog path/to/streams --state path/to/state
`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if configPath == "not-set" {
			return fmt.Errorf("--config not passed")
		} else if catalogPath == "" {
			return fmt.Errorf("--catalog not passed")
		}

		if err := utils.UnmarshalFile(configPath, connector.GetConfigRef()); err != nil {
			return err
		}

		catalog = &types.Catalog{}
		if err := utils.UnmarshalFile(catalogPath, catalog); err != nil {
			return err
		}

		// default state
		state = types.NewState()
		if statePath != "" {
			if err := utils.UnmarshalFile(statePath, state); err != nil {
				return err
			}
		}

		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := connector.Setup(cmd.Context()); err != nil {
			return err
		}
		defer connector.Close(cmd.Context())

		// Get Source Streams
		streams, err := connector.Discover(cmd.Context())
		if err != nil {
			return err
		}
		streamsMap := types.StreamsToMap(streams...)

		// Validate configured streams against the source
		selectedStreams := []string{}
		validStreams := []*types.ConfiguredStream{}
		for _, elem := range catalog.Streams {
			source, found := streamsMap[elem.ID()]
			if !found {
				logger.Warnf("Skipping; Configured Stream %s not found in source", elem.ID())
				continue
			}

			if err := elem.Validate(source); err != nil {
				logger.Warnf("Skipping; Configured Stream %s found invalid due to reason: %s", elem.ID(), err)
				continue
			}

			selectedStreams = append(selectedStreams, elem.ID())
			validStreams = append(validStreams, elem)
		}
		logger.Infof("Valid selected streams are %s", strings.Join(selectedStreams, ", "))

		sink := NewMessageWriter(os.Stdout)
		metrics := NewMetrics()

		// one stream syncs end to end before the next; a stream failure does
		// not abort the remaining streams, but fails the process at the end
		var syncErr error
		for _, stream := range validStreams {
			start := time.Now()
			if err := connector.Incremental(cmd.Context(), stream, state, sink, metrics); err != nil {
				syncErr = multierror.Append(syncErr, fmt.Errorf("stream[%s] sync failed: %s", stream.ID(), err))
				continue
			}
			metrics.AddElapsed(stream.ID(), time.Since(start))
		}

		// checkpointed bookmarks stay valid for resumption even on failure
		state.LogState()
		metrics.LogSummary()

		return syncErr
	},
}
