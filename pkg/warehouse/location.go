package warehouse

import (
	"regexp"
	"strconv"
	"strings"
)

// Location is the decoded form of an item's warehouse-cell string, e.g.
// "A1:BoxName1(/2/3)" or "B2:red1". A zero field means absent.
type Location struct {
	Cell        string `json:"cell"`
	BoxName     string `json:"boxName,omitempty"`
	Color       string `json:"color,omitempty"`
	GroupNumber int    `json:"groupNumber,omitempty"`
	BoxNumber   int    `json:"boxNumber,omitempty"`
}

var (
	cellPattern  = regexp.MustCompile(`^[A-C][1-6]$`)
	colorPattern = regexp.MustCompile(`^([a-z]+)([0-9]+)$`)
	boxPattern   = regexp.MustCompile(`^([A-Za-z0-9]+)(?:\(/([0-9]+)/([0-9]+)\))?$`)
)

// Decode parses a raw location string. The part before the first colon is the
// cell identifier; the remainder is either a color tag (lowercase letters
// followed by a group number, "red1") or a box name with an optional
// "(/n/m)" suffix carrying the box number. A suffix matching neither grammar
// is kept verbatim as the box name. Decode never fails: callers that need a
// valid grid cell must check Valid on the result.
func Decode(raw string) Location {
	cell, rest, found := strings.Cut(raw, ":")
	location := Location{Cell: cell}
	if !found {
		return location
	}

	if m := colorPattern.FindStringSubmatch(rest); m != nil {
		location.Color = m[1]
		location.GroupNumber, _ = strconv.Atoi(m[2])
		return location
	}

	if m := boxPattern.FindStringSubmatch(rest); m != nil {
		location.BoxName = m[1]
		if m[2] != "" {
			// m[3] is the total box count, display-only and not retained.
			location.BoxNumber, _ = strconv.Atoi(m[2])
		}
		return location
	}

	location.BoxName = rest
	return location
}

// Encode renders a location back to its string form. Only the cell, the cell
// with a box name, and the cell with a color tag are representable; the box
// number suffix is not re-emitted.
func Encode(location Location) string {
	switch {
	case location.Color != "":
		return location.Cell + ":" + location.Color + strconv.Itoa(location.GroupNumber)
	case location.BoxName != "":
		return location.Cell + ":" + location.BoxName
	default:
		return location.Cell
	}
}

// Valid reports whether the cell identifier names a real grid cell (A1-C6).
func (l Location) Valid() bool {
	return cellPattern.MatchString(l.Cell)
}
