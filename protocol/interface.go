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
	"context"

	"github.com/datazip-inc/tap-mongodb/types"
)

// Driver is the source connector consumed by the commands
type Driver interface {
	GetConfigRef() any
	Spec() any
	Type() string
	Setup(ctx context.Context) error
	Close(ctx context.Context) error
	Discover(ctx context.Context) ([]*types.Stream, error)
	// Incremental syncs one stream end to end, emitting messages to the sink
	// and advancing bookmarks in the shared state
	Incremental(ctx context.Context, stream *types.ConfiguredStream, state *types.State, sink Sink, metrics *Metrics) error
}

// Sink is the ordered output collaborator; Write must be safe to call from
// the sync loop for every message type
type Sink interface {
	Write(message *types.Message) error
}
