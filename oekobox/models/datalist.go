// Package models holds the value records returned by the Ökobox Online API
// and the decoding of its DataList wire format.
//
// Catalog, cart and order endpoints do not return plain JSON objects. They
// return an array of typed blocks, each block carrying its rows as positional
// arrays:
//
//	[{"type":"Group","version":2,"cnt":3,"data":[[1,"Obst","",12], ...]}]
//
// Rows with an id of 0 or -1 are terminator/placeholder entries and are
// skipped during conversion.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// DataList is one typed block of a DataList response.
type DataList struct {
	Type    string          `json:"type"`
	Version int             `json:"version"`
	Cnt     int             `json:"cnt"`
	Data    [][]interface{} `json:"data"`
}

// DecodeDataLists parses a raw response body into its DataList blocks.
// A body that is valid JSON but not an array of blocks is rejected instead of
// being coerced.
func DecodeDataLists(raw []byte) ([]DataList, error) {
	var lists []DataList
	if err := json.Unmarshal(raw, &lists); err != nil {
		return nil, fmt.Errorf("response is not a data list: %w", err)
	}
	return lists, nil
}

// Rows collects the data rows of every block with the given type.
func Rows(lists []DataList, typ string) [][]interface{} {
	var rows [][]interface{}
	for _, list := range lists {
		if list.Type == typ {
			rows = append(rows, list.Data...)
		}
	}
	return rows
}

// Column coercion. json.Unmarshal delivers numbers as float64 and everything
// else as string/bool/nil; the API additionally mixes numeric and string
// representations of ids, so ids always go through asString.

func asString(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	switch v := row[i].(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func asFloat(row []interface{}, i int) (float64, bool) {
	if i >= len(row) || row[i] == nil {
		return 0, false
	}
	switch v := row[i].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func asFloatPtr(row []interface{}, i int) *float64 {
	if f, ok := asFloat(row, i); ok {
		return &f
	}
	return nil
}

func asInt(row []interface{}, i int) int {
	f, ok := asFloat(row, i)
	if !ok {
		return 0
	}
	return int(f)
}

func asTime(row []interface{}, i int) *time.Time {
	s := asString(row, i)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// isTerminator reports whether a row is one of the 0/-1 placeholder entries
// every block is padded with.
func isTerminator(row []interface{}) bool {
	if len(row) == 0 {
		return true
	}
	id := asString(row, 0)
	return id == "" || id == "0" || id == "-1"
}
