package types

// DataType is the JSON-Schema type name recorded for an observed field
type DataType string

const (
	Null      DataType = "null"
	Bool      DataType = "boolean"
	Int64     DataType = "integer"
	Float64   DataType = "number"
	String    DataType = "string"
	Timestamp DataType = "date-time"
	Object    DataType = "object"
	Array     DataType = "array"
	Unknown   DataType = "unknown"
)

// Record is a single document produced by the source driver
type Record map[string]any
