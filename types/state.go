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

package types

import (
	"os"
	"sync"
	"time"

	"github.com/datazip-inc/tap-mongodb/constants"
	"github.com/datazip-inc/tap-mongodb/utils/logger"
	"github.com/goccy/go-json"
	"github.com/spf13/viper"
)

// State is the process-wide sync progress, keyed by stream identifier.
// Single-writer discipline: one stream syncs at a time, the mutex only
// guards serialization racing a checkpoint.
type State struct {
	*sync.RWMutex `json:"-"`
	Bookmarks     map[string]*Bookmark `json:"bookmarks"`
}

// Bookmark is the persisted progress marker of one stream: the dataset
// generation plus the last replication key seen, string-encoded alongside
// its type tag so the next run can rebuild a native comparable value.
type Bookmark struct {
	Version     *int64 `json:"version,omitempty"`
	CursorValue string `json:"replication_key_value,omitempty"`
	CursorType  string `json:"replication_key_type,omitempty"`
}

func NewState() *State {
	return &State{
		RWMutex:   &sync.RWMutex{},
		Bookmarks: map[string]*Bookmark{},
	}
}

// must be called with the write lock held
func (s *State) bookmark(streamID string) *Bookmark {
	if s.Bookmarks == nil {
		s.Bookmarks = map[string]*Bookmark{}
	}

	bookmark, found := s.Bookmarks[streamID]
	if !found {
		bookmark = &Bookmark{}
		s.Bookmarks[streamID] = bookmark
	}

	return bookmark
}

// IsFirstRun reports whether no version bookmark exists yet for the stream,
// i.e. the previous run (if any) never completed a full pass
func (s *State) IsFirstRun(streamID string) bool {
	s.RLock()
	defer s.RUnlock()

	bookmark, found := s.Bookmarks[streamID]
	return !found || bookmark.Version == nil
}

// ResolveVersion mints a new dataset generation from wall clock millis on a
// first run, otherwise reuses the stored one. The chosen version is written
// back immediately so a crash mid-run still records the generation.
func (s *State) ResolveVersion(streamID string) int64 {
	s.Lock()
	defer s.Unlock()

	bookmark := s.bookmark(streamID)
	if bookmark.Version == nil {
		version := time.Now().UnixMilli()
		bookmark.Version = &version
	}

	return *bookmark.Version
}

// Cursor returns the serialized replication key bookmark for the stream;
// found is false on a fresh stream with no bookmarked value yet
func (s *State) Cursor(streamID string) (value, typeName string, found bool) {
	s.RLock()
	defer s.RUnlock()

	bookmark, ok := s.Bookmarks[streamID]
	if !ok || bookmark.CursorValue == "" {
		return "", "", false
	}

	return bookmark.CursorValue, bookmark.CursorType, true
}

// SetCursor overwrites the stored replication key value and type tag.
// Rows arrive sorted ascending on the cursor, so overwriting per row keeps
// the watermark monotonically nondecreasing; callers skip rows without a
// cursor value instead of nulling out a previously valid bookmark.
func (s *State) SetCursor(streamID, value, typeName string) {
	if value == "" {
		return
	}

	s.Lock()
	defer s.Unlock()

	bookmark := s.bookmark(streamID)
	bookmark.CursorValue = value
	bookmark.CursorType = typeName
}

// Clone deep copies the state for emission, so downstream never aliases
// the mutable structure
func (s *State) Clone() *State {
	s.RLock()
	defer s.RUnlock()

	cloned := NewState()
	for streamID, bookmark := range s.Bookmarks {
		copied := &Bookmark{
			CursorValue: bookmark.CursorValue,
			CursorType:  bookmark.CursorType,
		}
		if bookmark.Version != nil {
			version := *bookmark.Version
			copied.Version = &version
		}
		cloned.Bookmarks[streamID] = copied
	}

	return cloned
}

// LogState persists the state snapshot to the configured state file
func (s *State) LogState() {
	s.RLock()
	raw, err := json.MarshalIndent(s, "", "  ")
	s.RUnlock()
	if err != nil {
		logger.Fatalf("failed to marshal state: %s", err)
	}

	statePath := viper.GetString(constants.StatePath)
	if statePath == "" {
		return
	}

	if err := os.WriteFile(statePath, raw, 0644); err != nil {
		logger.Fatalf("failed to write state file %s: %s", statePath, err)
	}
}
