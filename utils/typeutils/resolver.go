package typeutils

import (
	"reflect"
	"time"

	"github.com/datazip-inc/tap-mongodb/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var timeType = reflect.TypeOf(time.Time{})

// TypeFromValue infers the schema type of a single observed value
func TypeFromValue(v any) types.DataType {
	if v == nil {
		return types.Null
	}

	switch val := v.(type) {
	case bool:
		return types.Bool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return types.Int64
	case float32, float64:
		return types.Float64
	case string:
		return types.String
	case []byte:
		return types.String
	case time.Time:
		return types.Timestamp
	case primitive.DateTime:
		return types.Timestamp
	case primitive.Timestamp:
		return types.Timestamp
	case primitive.ObjectID:
		return types.String
	case primitive.Decimal128:
		return types.Float64
	case primitive.A:
		return types.Array
	case primitive.M, primitive.D, map[string]any:
		return types.Object
	case []any:
		return types.Array
	case *time.Time:
		if val == nil {
			return types.Null
		}
		return types.Timestamp
	}

	return typeFromValueReflect(v)
}

// typeFromValueReflect handles types that require reflection
func typeFromValueReflect(v any) types.DataType {
	valType := reflect.TypeOf(v)
	if valType == nil {
		return types.Null
	}

	if valType.Kind() == reflect.Pointer {
		val := reflect.ValueOf(v)
		if val.IsNil() {
			return types.Null
		}
		return TypeFromValue(val.Elem().Interface())
	}

	switch valType.Kind() {
	case reflect.Bool:
		return types.Bool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return types.Int64
	case reflect.Float32, reflect.Float64:
		return types.Float64
	case reflect.String:
		return types.String
	case reflect.Slice, reflect.Array:
		return types.Array
	case reflect.Map:
		return types.Object
	default:
		if valType == timeType {
			return types.Timestamp
		}
		return types.Unknown
	}
}

// MergeRecordSchema merges a record's field shape into the running schema and
// reports whether any previously unseen field name was introduced. Membership
// is by name alone: a known field re-appearing with a different value type
// leaves the schema untouched.
func MergeRecordSchema(schema *types.Schema, record types.Record) bool {
	changed := false
	for column, value := range record {
		if schema.HasProperty(column) {
			continue
		}

		inferred := TypeFromValue(value)
		if inferred == types.Null {
			schema.AddProperty(column, types.Null)
		} else {
			schema.AddProperty(column, types.Null, inferred)
		}
		changed = true
	}

	return changed
}
