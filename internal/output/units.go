package output

import (
	"fmt"
	"strconv"

	"github.com/docker/go-units"
)

type Unit string

const (
	UnitBytes     Unit = "B"
	UnitKilobytes Unit = "kB"
	UnitHuman     Unit = "human"
)

var sizeAbbrs = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

func ParseUnit(s string) (Unit, error) {
	switch s {
	case "B", "b", "bytes":
		return UnitBytes, nil
	case "kB", "kb", "KB":
		return UnitKilobytes, nil
	case "human":
		return UnitHuman, nil
	}
	return "", fmt.Errorf("invalid unit %q: must be \"B\", \"kB\" or \"human\"", s)
}

// HumanSize formats n with 1024-based units, e.g. "1.50 MB".
func HumanSize(n int64) string {
	if n < 0 {
		return "-" + units.CustomSize("%.2f %s", float64(-n), 1024.0, sizeAbbrs)
	}
	return units.CustomSize("%.2f %s", float64(n), 1024.0, sizeAbbrs)
}

func FormatSize(n int64, unit Unit) string {
	switch unit {
	case UnitBytes:
		return strconv.FormatInt(n, 10)
	case UnitHuman:
		return HumanSize(n)
	default:
		return strconv.FormatInt(n/1024, 10)
	}
}
