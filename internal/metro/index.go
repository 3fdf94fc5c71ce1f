package metro

import (
	"sort"
	"sync"
	"time"
)

// Location is the time zone the network runs in. India Standard Time has no
// daylight saving, so a fixed zone is exact.
var Location = time.FixedZone("IST", 5*60*60+30*60)

// Topology is a complete station list together with its line metadata.
type Topology struct {
	Lines    []LineInfo
	Stations []Station
}

// DefaultTopology returns the static network compiled into the binary.
func DefaultTopology() Topology {
	return Topology{
		Lines:    Lines(),
		Stations: DefaultStations(),
	}
}

// Index maps station names to the lines and positions they occupy.
// An Index is immutable after NewIndex returns and is safe for concurrent use.
type Index struct {
	entries  map[string][]Entry
	lines    []LineInfo
	stations []Station
}

// LineStations groups the stations of one line in running order.
type LineStations struct {
	Info     LineInfo
	Stations []Station
}

var (
	defaultIndex     *Index
	defaultIndexOnce sync.Once
)

// Default returns the process-wide index over the static network. It is built
// on first use.
func Default() *Index {
	defaultIndexOnce.Do(func() {
		defaultIndex = NewIndex(DefaultTopology())
	})
	return defaultIndex
}

// NewIndex builds an index over the given topology.
func NewIndex(t Topology) *Index {
	idx := &Index{
		entries:  make(map[string][]Entry),
		lines:    append([]LineInfo(nil), t.Lines...),
		stations: append([]Station(nil), t.Stations...),
	}

	for _, s := range t.Stations {
		idx.entries[s.Name] = append(idx.entries[s.Name], Entry{
			Line:          s.Line,
			SequenceIndex: s.SequenceIndex,
		})
	}

	return idx
}

// Has reports whether name is a known station.
func (i *Index) Has(name string) bool {
	_, ok := i.entries[name]
	return ok
}

// Entries returns the (line, position) pairs for a station name.
func (i *Index) Entries(name string) []Entry {
	return append([]Entry(nil), i.entries[name]...)
}

// StationCount returns the number of distinct station names.
func (i *Index) StationCount() int {
	return len(i.entries)
}

// Lines returns the line metadata in display order.
func (i *Index) Lines() []LineInfo {
	return append([]LineInfo(nil), i.lines...)
}

// LineStations returns each line's stations in running order, one entry per
// name and line. Lines without stations are omitted.
func (i *Index) LineStations() []LineStations {
	byLine := make(map[Line][]Station)
	for _, s := range i.stations {
		byLine[s.Line] = append(byLine[s.Line], s)
	}

	result := make([]LineStations, 0, len(i.lines))
	for _, info := range i.lines {
		stations := byLine[info.Line]
		if len(stations) == 0 {
			continue
		}
		sort.SliceStable(stations, func(a, b int) bool {
			return stations[a].SequenceIndex < stations[b].SequenceIndex
		})

		seen := make(map[string]struct{}, len(stations))
		deduped := stations[:0:0]
		for _, s := range stations {
			if _, ok := seen[s.Name]; ok {
				continue
			}
			seen[s.Name] = struct{}{}
			deduped = append(deduped, s)
		}

		result = append(result, LineStations{Info: info, Stations: deduped})
	}

	return result
}
