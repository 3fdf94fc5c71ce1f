package metro_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/OneBusAway/go-gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metroconnect/metroconnect/internal/metro"
)

func TestTopologyFromGTFS(t *testing.T) {
	yellow := &gtfs.Route{Id: "YL", ShortName: "Yellow", LongName: "Yellow Line", Color: "FFCB05"}
	violet := &gtfs.Route{Id: "VL", ShortName: "Violet"}

	kashmere := &gtfs.Stop{Id: "s1", Name: "Kashmere Gate"}
	chandni := &gtfs.Stop{Id: "s2", Name: "Chandni Chowk"}
	chawri := &gtfs.Stop{Id: "s3", Name: "Chawri Bazar"}
	lalQila := &gtfs.Stop{Id: "s4", Name: "Lal Qila"}

	static := &gtfs.Static{
		Trips: []gtfs.ScheduledTrip{
			{
				ID:    "short",
				Route: yellow,
				StopTimes: []gtfs.ScheduledStopTime{
					{Stop: kashmere},
					{Stop: chandni},
				},
			},
			{
				ID:    "long",
				Route: yellow,
				StopTimes: []gtfs.ScheduledStopTime{
					{Stop: kashmere},
					{Stop: chandni},
					{Stop: chawri},
				},
			},
			{
				ID:    "violet",
				Route: violet,
				StopTimes: []gtfs.ScheduledStopTime{
					{Stop: kashmere},
					{Stop: lalQila},
				},
			},
		},
	}

	topo, err := metro.TopologyFromGTFS(static)
	require.NoError(t, err)

	require.Len(t, topo.Lines, 2)
	assert.Equal(t, metro.Line("VL"), topo.Lines[0].Line)
	assert.Equal(t, "Violet", topo.Lines[0].DisplayName)
	assert.Equal(t, "", topo.Lines[0].Color)
	assert.Equal(t, "Yellow Line", topo.Lines[1].DisplayName)
	assert.Equal(t, "#FFCB05", topo.Lines[1].Color)

	require.Len(t, topo.Stations, 5)

	idx := metro.NewIndex(topo)
	assert.Equal(t, 2, idx.MinStationDistance("Kashmere Gate", "Chawri Bazar"))
	assert.Equal(t, 1, idx.MinStationDistance("Kashmere Gate", "Lal Qila"))
	assert.Equal(t, metro.Unreachable, idx.MinStationDistance("Lal Qila", "Chawri Bazar"))

	for _, s := range topo.Stations {
		assert.Equal(t, s.Name == "Kashmere Gate", s.IsInterchange, s.Name)
	}
}

func TestTopologyFromGTFS_LoopKeepsFirstVisit(t *testing.T) {
	loop := &gtfs.Route{Id: "RM"}
	a := &gtfs.Stop{Id: "a", Name: "Phase 1"}
	b := &gtfs.Stop{Id: "b", Name: "Phase 2"}
	c := &gtfs.Stop{Id: "c", Name: "Phase 3"}

	topo, err := metro.TopologyFromGTFS(&gtfs.Static{
		Trips: []gtfs.ScheduledTrip{{
			ID:        "loop",
			Route:     loop,
			StopTimes: []gtfs.ScheduledStopTime{{Stop: a}, {Stop: b}, {Stop: c}, {Stop: a}},
		}},
	})
	require.NoError(t, err)

	require.Len(t, topo.Stations, 3)
	assert.Equal(t, 0, topo.Stations[0].SequenceIndex)
	assert.Equal(t, 2, topo.Stations[2].SequenceIndex)
}

func TestTopologyFromGTFS_Empty(t *testing.T) {
	_, err := metro.TopologyFromGTFS(&gtfs.Static{})
	assert.ErrorIs(t, err, metro.ErrEmptyFeed)
}

func TestFetchGTFSTopology_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := metro.FetchGTFSTopology(context.Background(), server.Client(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestFetchGTFSTopology_InvalidFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not a zip archive"))
	}))
	defer server.Close()

	_, err := metro.FetchGTFSTopology(context.Background(), server.Client(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse gtfs feed")
}
