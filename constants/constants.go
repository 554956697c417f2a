package constants

const (
	MongoPrimaryID = "_id"

	// bookmark keys persisted per stream
	StateVersionKey  = "version"
	StateCursorValue = "replication_key_value"
	StateCursorType  = "replication_key_type"

	ConfigFolder = "CONFIG_FOLDER"
	StatePath    = "STATE_PATH"
	CatalogPath  = "CATALOG_PATH"
)

// DefaultCheckpointPeriod is the number of records processed between two STATE
// checkpoints during an incremental pass. On resume at most this many records
// are re-emitted (at-least-once delivery).
const DefaultCheckpointPeriod = 10_000
