package types

import (
	"fmt"

	"github.com/datazip-inc/tap-mongodb/utils"
)

// Stream is a single syncable collection discovered on the source
type Stream struct {
	Name                    string       `json:"name"`
	Namespace               string       `json:"namespace,omitempty"`
	Schema                  *Schema      `json:"json_schema,omitempty"`
	SupportedSyncModes      []SyncMode   `json:"supported_sync_modes,omitempty"`
	AvailableCursorFields   *Set[string] `json:"cursor_fields,omitempty"`
	SourceDefinedPrimaryKey []string     `json:"source_defined_primary_key,omitempty"`
}

func NewStream(name, namespace string) *Stream {
	return &Stream{
		Name:                    name,
		Namespace:               namespace,
		Schema:                  NewSchema(),
		SupportedSyncModes:      []SyncMode{INCREMENTAL},
		AvailableCursorFields:   NewSet[string](),
		SourceDefinedPrimaryKey: []string{"_id"},
	}
}

func (s *Stream) ID() string {
	return utils.StreamIdentifier(s.Namespace, s.Name)
}

func (s *Stream) WithCursorFields(fields ...string) *Stream {
	s.AvailableCursorFields.Insert(fields...)
	return s
}

type SyncMode string

const (
	INCREMENTAL SyncMode = "incremental"
	FULLREFRESH SyncMode = "full_refresh"
)

// ConfiguredStream is the configured (catalog) view of a source stream;
// immutable for the duration of a sync run
type ConfiguredStream struct {
	Stream *Stream `json:"stream,omitempty"`

	// Field used as the monotonic cursor for incremental extraction;
	// MUST NOT be mutated during a run
	CursorField string `json:"cursor_field,omitempty"`

	// Optional remap of the destination stream name; defaults to the
	// source identifier when empty
	DestinationTable string `json:"destination_table,omitempty"`

	// Projection narrows the fields fetched from the source; nil fetches all
	Projection map[string]int `json:"projection,omitempty"`
}

func (s *ConfiguredStream) ID() string {
	return s.Stream.ID()
}

func (s *ConfiguredStream) Self() *ConfiguredStream {
	return s
}

func (s *ConfiguredStream) Name() string {
	return s.Stream.Name
}

func (s *ConfiguredStream) Namespace() string {
	return s.Stream.Namespace
}

func (s *ConfiguredStream) Cursor() string {
	return s.CursorField
}

// DestinationName resolves the downstream stream name, honoring the remap
func (s *ConfiguredStream) DestinationName() string {
	if s.DestinationTable != "" {
		return s.DestinationTable
	}
	return s.ID()
}

// Validate Configured Stream with Source Stream
func (s *ConfiguredStream) Validate(source *Stream) error {
	if s.CursorField == "" {
		return fmt.Errorf("no cursor field configured for stream[%s]", s.ID())
	}

	if !source.AvailableCursorFields.Exists(s.CursorField) {
		return fmt.Errorf("invalid cursor field [%s]; valid are %v", s.CursorField, source.AvailableCursorFields.Array())
	}

	return nil
}

// Catalog is a dto for the configured streams file
type Catalog struct {
	Streams []*ConfiguredStream `json:"streams,omitempty"`
}

func StreamsToMap(streams ...*Stream) map[string]*Stream {
	output := make(map[string]*Stream)
	for _, stream := range streams {
		output[stream.ID()] = stream
	}

	return output
}

func GetWrappedCatalog(streams []*Stream) *Catalog {
	catalog := &Catalog{
		Streams: []*ConfiguredStream{},
	}

	for _, stream := range streams {
		catalog.Streams = append(catalog.Streams, &ConfiguredStream{
			Stream: stream,
		})
	}

	return catalog
}
