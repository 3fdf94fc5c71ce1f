// Package metro provides the station topology of the metro network and
// hop-distance lookups between stations.
package metro

import "math"

// Unreachable is the distance reported for two stations that share no line.
// It compares greater than any real hop count.
const Unreachable = math.MaxInt

// Line identifies a metro line.
type Line string

// Known lines, in display order.
const (
	LineRed         Line = "red"
	LineYellow      Line = "yellow"
	LineBlue        Line = "blue"
	LineBlueBranch  Line = "blue-branch"
	LineGreen       Line = "green"
	LineGreenBranch Line = "green-branch"
	LineViolet      Line = "violet"
	LinePink        Line = "pink"
	LineMagenta     Line = "magenta"
	LineGrey        Line = "grey"
	LineOrange      Line = "orange"
	LineRapidMetro  Line = "rapid-metro"
)

// LineInfo carries presentation data for a line.
type LineInfo struct {
	Line        Line
	DisplayName string
	Color       string
}

// Station is one stop of one line. Interchange stations appear once per line.
type Station struct {
	ID            string
	Name          string
	Line          Line
	SequenceIndex int
	IsInterchange bool
}

// Entry is a (line, position) pair of a station name in the Index.
type Entry struct {
	Line          Line
	SequenceIndex int
}
