package types

import (
	"time"
)

// Message is a dto for tap output row representation; one JSON line per message
type Message struct {
	Type             MessageType `json:"type"`
	Stream           string      `json:"stream,omitempty"`
	Schema           *Schema     `json:"schema,omitempty"`
	KeyProperties    []string    `json:"key_properties,omitempty"`
	Record           Record      `json:"record,omitempty"`
	Version          *int64      `json:"version,omitempty"`
	TimeExtracted    *time.Time  `json:"time_extracted,omitempty"`
	State            *State      `json:"value,omitempty"`
	Catalog          *Catalog    `json:"catalog,omitempty"`
	ConnectionStatus *StatusRow  `json:"connectionStatus,omitempty"`
	Spec             any         `json:"spec,omitempty"`
}

// StatusRow is a dto for check command result serialization
type StatusRow struct {
	Status  ConnectionStatus `json:"status,omitempty"`
	Message string           `json:"message,omitempty"`
}

func NewSchemaMessage(stream string, schema *Schema, keyProperties ...string) *Message {
	return &Message{
		Type:          SchemaMessage,
		Stream:        stream,
		Schema:        schema,
		KeyProperties: keyProperties,
	}
}

func NewRecordMessage(stream string, record Record, version int64, timeExtracted time.Time) *Message {
	return &Message{
		Type:          RecordMessage,
		Stream:        stream,
		Record:        record,
		Version:       &version,
		TimeExtracted: &timeExtracted,
	}
}

// NewStateMessage deep copies the state so downstream consumers never alias
// the mutable process-wide structure
func NewStateMessage(state *State) *Message {
	return &Message{
		Type:  StateMessage,
		State: state.Clone(),
	}
}

func NewActivateVersionMessage(stream string, version int64) *Message {
	return &Message{
		Type:    ActivateVersionMessage,
		Stream:  stream,
		Version: &version,
	}
}
