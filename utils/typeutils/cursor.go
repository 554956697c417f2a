package typeutils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cursor type tags stored next to the serialized replication key value.
// The set is closed: these are the key types the driver can produce, and each
// tag maps to exactly one decode path so a bookmark round-trips losslessly.
const (
	CursorInt       = "int"
	CursorFloat     = "float"
	CursorString    = "str"
	CursorDateTime  = "datetime"
	CursorObjectID  = "ObjectId"
	CursorTimestamp = "Timestamp"
)

// EncodeCursor serializes a replication key value into its string form plus
// type tag. Values outside the supported families error out; a lossy encoding
// here would corrupt every subsequent resumption query.
func EncodeCursor(value any) (encoded, typeName string, err error) {
	switch v := value.(type) {
	case int:
		return strconv.FormatInt(int64(v), 10), CursorInt, nil
	case int32:
		return strconv.FormatInt(int64(v), 10), CursorInt, nil
	case int64:
		return strconv.FormatInt(v, 10), CursorInt, nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 64), CursorFloat, nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), CursorFloat, nil
	case string:
		return v, CursorString, nil
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano), CursorDateTime, nil
	case primitive.DateTime:
		return v.Time().UTC().Format(time.RFC3339Nano), CursorDateTime, nil
	case primitive.ObjectID:
		return v.Hex(), CursorObjectID, nil
	case primitive.Timestamp:
		return fmt.Sprintf("%d.%d", v.T, v.I), CursorTimestamp, nil
	default:
		return "", "", fmt.Errorf("unsupported replication key type %T", value)
	}
}

// DecodeCursor reconstructs the native comparable value from its serialized
// form and type tag, for use in the next range filter
func DecodeCursor(encoded, typeName string) (any, error) {
	switch typeName {
	case CursorInt:
		parsed, err := strconv.ParseInt(encoded, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse int bookmark %q: %s", encoded, err)
		}
		return parsed, nil
	case CursorFloat:
		parsed, err := strconv.ParseFloat(encoded, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse float bookmark %q: %s", encoded, err)
		}
		return parsed, nil
	case CursorString:
		return encoded, nil
	case CursorDateTime:
		parsed, err := time.Parse(time.RFC3339Nano, encoded)
		if err != nil {
			return nil, fmt.Errorf("failed to parse datetime bookmark %q: %s", encoded, err)
		}
		return primitive.NewDateTimeFromTime(parsed), nil
	case CursorObjectID:
		oid, err := primitive.ObjectIDFromHex(encoded)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ObjectId bookmark %q: %s", encoded, err)
		}
		return oid, nil
	case CursorTimestamp:
		parts := strings.SplitN(encoded, ".", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed Timestamp bookmark %q", encoded)
		}
		t, terr := strconv.ParseUint(parts[0], 10, 32)
		i, ierr := strconv.ParseUint(parts[1], 10, 32)
		if terr != nil || ierr != nil {
			return nil, fmt.Errorf("malformed Timestamp bookmark %q", encoded)
		}
		return primitive.Timestamp{T: uint32(t), I: uint32(i)}, nil
	default:
		return nil, fmt.Errorf("unsupported replication key type tag %q", typeName)
	}
}
