package stats

import (
	"errors"
	"fmt"
)

// TableStat is one row of the table bloat query. Sizes are in bytes.
type TableStat struct {
	Schema        string `json:"schema"`
	Table         string `json:"table"`
	SizeBytes     int64  `json:"size_bytes"`
	WastedBytes   int64  `json:"wasted_bytes"`
	UnwastedBytes int64  `json:"unwasted_bytes"`
}

func (s TableStat) QualifiedName() string {
	return s.Schema + "." + s.Table
}

// WasteRatio returns wasted/size, or 0 for an empty table.
func (s TableStat) WasteRatio() float64 {
	if s.SizeBytes == 0 {
		return 0
	}
	return float64(s.WastedBytes) / float64(s.SizeBytes)
}

func (s TableStat) Validate() error {
	switch {
	case s.Schema == "":
		return errors.New("empty schema name")
	case s.Table == "":
		return fmt.Errorf("empty table name in schema %q", s.Schema)
	case s.SizeBytes < 0 || s.WastedBytes < 0 || s.UnwastedBytes < 0:
		return fmt.Errorf("%s: negative size (size=%d wasted=%d unwasted=%d)",
			s.QualifiedName(), s.SizeBytes, s.WastedBytes, s.UnwastedBytes)
	case s.WastedBytes > s.SizeBytes:
		return fmt.Errorf("%s: wasted bytes %d exceed size %d", s.QualifiedName(), s.WastedBytes, s.SizeBytes)
	case s.SizeBytes-s.WastedBytes != s.UnwastedBytes:
		return fmt.Errorf("%s: unwasted bytes %d do not equal size %d minus wasted %d",
			s.QualifiedName(), s.UnwastedBytes, s.SizeBytes, s.WastedBytes)
	}
	return nil
}

// QueryError reports a failed statistics fetch: connectivity, permissions,
// or rows that do not describe a valid table.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("fetching table stats: %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
