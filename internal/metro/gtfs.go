package metro

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/OneBusAway/go-gtfs"
)

// ErrEmptyFeed is returned when a GTFS feed yields no usable station sequence.
var ErrEmptyFeed = errors.New("gtfs feed contains no route patterns")

// HTTPDoer executes HTTP requests. *resilience.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// FetchGTFSTopology downloads a GTFS static feed and builds a topology from it.
func FetchGTFSTopology(ctx context.Context, client HTTPDoer, url string) (Topology, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return Topology{}, fmt.Errorf("create gtfs request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Topology{}, fmt.Errorf("download gtfs feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Topology{}, fmt.Errorf("download gtfs feed: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Topology{}, fmt.Errorf("read gtfs feed: %w", err)
	}

	return ParseGTFSTopology(data)
}

// ParseGTFSTopology parses a zipped GTFS static feed into a topology.
func ParseGTFSTopology(data []byte) (Topology, error) {
	static, err := gtfs.ParseStatic(data, gtfs.ParseStaticOptions{})
	if err != nil {
		return Topology{}, fmt.Errorf("parse gtfs feed: %w", err)
	}
	return TopologyFromGTFS(static)
}

// TopologyFromGTFS derives one line per GTFS route. The stop pattern of the
// route's longest trip becomes the line's running order.
func TopologyFromGTFS(static *gtfs.Static) (Topology, error) {
	longest := make(map[string]*gtfs.ScheduledTrip)
	for i := range static.Trips {
		trip := &static.Trips[i]
		if trip.Route == nil || len(trip.StopTimes) < 2 {
			continue
		}
		if cur, ok := longest[trip.Route.Id]; !ok || len(trip.StopTimes) > len(cur.StopTimes) {
			longest[trip.Route.Id] = trip
		}
	}
	if len(longest) == 0 {
		return Topology{}, ErrEmptyFeed
	}

	routeIDs := make([]string, 0, len(longest))
	for id := range longest {
		routeIDs = append(routeIDs, id)
	}
	sort.Strings(routeIDs)

	var topo Topology
	for _, routeID := range routeIDs {
		trip := longest[routeID]
		line := Line(routeID)

		topo.Lines = append(topo.Lines, LineInfo{
			Line:        line,
			DisplayName: routeDisplayName(trip.Route),
			Color:       routeColor(trip.Route),
		})

		seq := 0
		seen := make(map[string]struct{}, len(trip.StopTimes))
		for _, st := range trip.StopTimes {
			if st.Stop == nil || st.Stop.Name == "" {
				continue
			}
			// Loop routes revisit their first stop; keep the first visit only.
			if _, ok := seen[st.Stop.Name]; ok {
				continue
			}
			seen[st.Stop.Name] = struct{}{}

			topo.Stations = append(topo.Stations, Station{
				ID:            st.Stop.Id,
				Name:          st.Stop.Name,
				Line:          line,
				SequenceIndex: seq,
			})
			seq++
		}
	}

	topo.Stations = markInterchanges(topo.Stations)
	return topo, nil
}

func routeDisplayName(r *gtfs.Route) string {
	switch {
	case r.LongName != "":
		return r.LongName
	case r.ShortName != "":
		return r.ShortName
	default:
		return r.Id
	}
}

func routeColor(r *gtfs.Route) string {
	if r.Color == "" {
		return ""
	}
	return "#" + strings.TrimPrefix(r.Color, "#")
}
