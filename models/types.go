package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// NumericID is an integer that may arrive as a JSON number or a numeric
// string (biodata ids, ages). Stored documents may hold it as a string too;
// both normalize to int.
type NumericID int

func (n *NumericID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	raw := string(data)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || f != float64(int(f)) {
		return fmt.Errorf("expected an integer, got %s", data)
	}
	*n = NumericID(int(f))
	return nil
}

func (n NumericID) Int() int { return int(n) }

// UnmarshalBSONValue accepts the numeric BSON types and numeric strings.
// Values that do not hold an integer read as zero.
func (n *NumericID) UnmarshalBSONValue(t byte, data []byte) error {
	rv := bson.RawValue{Type: bson.Type(t), Value: data}
	switch rv.Type {
	case bson.TypeInt32:
		*n = NumericID(rv.Int32())
	case bson.TypeInt64:
		*n = NumericID(rv.Int64())
	case bson.TypeDouble:
		*n = NumericID(int(rv.Double()))
	case bson.TypeString:
		id, err := strconv.Atoi(strings.TrimSpace(rv.StringValue()))
		if err != nil {
			id = 0
		}
		*n = NumericID(id)
	default:
		*n = 0
	}
	return nil
}

// Amount is a payment amount in major currency units. Older documents hold
// it as a string; unparsable values read as zero.
type Amount float64

func (a Amount) Float64() float64 { return float64(a) }

func (a *Amount) UnmarshalBSONValue(t byte, data []byte) error {
	rv := bson.RawValue{Type: bson.Type(t), Value: data}
	switch rv.Type {
	case bson.TypeDouble:
		*a = Amount(rv.Double())
	case bson.TypeInt32:
		*a = Amount(rv.Int32())
	case bson.TypeInt64:
		*a = Amount(rv.Int64())
	case bson.TypeString:
		*a = ParseAmount(rv.StringValue())
	default:
		*a = 0
	}
	return nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		*a = Amount(x)
	case string:
		*a = ParseAmount(x)
	default:
		*a = 0
	}
	return nil
}

// ParseAmount reads a decimal amount, returning zero when s is not numeric.
func ParseAmount(s string) Amount {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return Amount(f)
}

// InsertResult is the body returned after inserting one document.
type InsertResult struct {
	Acknowledged bool `json:"acknowledged"`
	InsertedID   any  `json:"insertedId"`
}

// UpdateResult is the body returned after updating documents.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
	UpsertedCount int64 `json:"upsertedCount"`
	UpsertedID    any   `json:"upsertedId"`
}

// DeleteResult is the body returned after deleting documents.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
