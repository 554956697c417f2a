package protocol

import (
	"os"

	"github.com/datazip-inc/tap-mongodb/types"
	"github.com/spf13/cobra"
)

// specCmd emits the connector's config specification
var specCmd = &cobra.Command{
	Use:   "spec",
	Short: "spec command",
	RunE: func(_ *cobra.Command, _ []string) error {
		sink := NewMessageWriter(os.Stdout)

		return sink.Write(&types.Message{
			Type: types.SpecMessage,
			Spec: connector.Spec(),
		})
	},
}
