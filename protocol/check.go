/*
 * Copyright 2025 Olake By Datazip
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package protocol

import (
	"fmt"
	"os"

	"github.com/datazip-inc/tap-mongodb/types"
	"github.com/datazip-inc/tap-mongodb/utils"
	"github.com/datazip-inc/tap-mongodb/utils/logger"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "check command",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		if configPath == "not-set" {
			return fmt.Errorf("--config not passed")
		}

		return utils.UnmarshalFile(configPath, connector.GetConfigRef())
	},
	Run: func(cmd *cobra.Command, _ []string) {
		err := connector.Setup(cmd.Context())
		if err == nil {
			defer connector.Close(cmd.Context())
		}

		message := &types.Message{
			Type: types.ConnectionStatusMessage,
			ConnectionStatus: &types.StatusRow{
				Status: types.ConnectionSucceed,
			},
		}
		if err != nil {
			message.ConnectionStatus.Status = types.ConnectionFailed
			message.ConnectionStatus.Message = err.Error()
			logger.Errorf("connection check failed: %s", err)
		}

		if werr := NewMessageWriter(os.Stdout).Write(message); werr != nil {
			logger.Fatalf("failed to write connection status: %s", werr)
		}
	},
}
