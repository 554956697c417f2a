package driver

import (
	"encoding/base64"
	"strconv"
	"time"

	"github.com/datazip-inc/tap-mongodb/types"
	"github.com/datazip-inc/tap-mongodb/utils/typeutils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// normalizeDocument rewrites BSON native values into plain JSON encodable
// ones before emission
func normalizeDocument(doc bson.M) types.Record {
	record := make(types.Record, len(doc))
	for key, value := range doc {
		record[key] = normalizeValue(value)
	}

	return record
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case primitive.DateTime:
		return v.Time().UTC()
	case primitive.Timestamp:
		return time.Unix(int64(v.T), 0).UTC()
	case primitive.Decimal128:
		// decimal fidelity exceeds float64; keep the literal form
		return v.String()
	case primitive.Binary:
		return base64.StdEncoding.EncodeToString(v.Data)
	case primitive.Symbol:
		return string(v)
	case primitive.JavaScript:
		return string(v)
	case primitive.Regex:
		return v.Pattern
	case primitive.A:
		normalized := make([]any, len(v))
		for idx, item := range v {
			normalized[idx] = normalizeValue(item)
		}
		return normalized
	case bson.M:
		normalized := make(map[string]any, len(v))
		for key, item := range v {
			normalized[key] = normalizeValue(item)
		}
		return normalized
	case bson.D:
		normalized := make(map[string]any, len(v))
		for _, elem := range v {
			normalized[elem.Key] = normalizeValue(elem.Value)
		}
		return normalized
	case float64:
		// Inf/NaN are valid BSON but not valid JSON
		if v != v {
			return nil
		}
		if v > maxJSONFloat || v < -maxJSONFloat {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
		return v
	default:
		return v
	}
}

const maxJSONFloat = 1.7976931348623157e+308

func mergeStreamSchema(stream *types.Stream, record types.Record) {
	typeutils.MergeRecordSchema(stream.Schema, record)
	for column := range record {
		stream.AvailableCursorFields.Insert(column)
	}
}
