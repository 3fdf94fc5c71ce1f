package handler

import (
	"net/http"

	"github.com/metroconnect/metroconnect/internal/api/models"
	"github.com/metroconnect/metroconnect/internal/api/response"
	"github.com/metroconnect/metroconnect/internal/metro"
)

// StationHandler serves the station metadata.
type StationHandler struct {
	list models.StationList
}

// NewStationHandler creates a new StationHandler. The index is immutable, so
// the listing is built once.
func NewStationHandler(index *metro.Index) *StationHandler {
	return &StationHandler{list: buildStationList(index)}
}

// ListStations handles GET /v1/stations - lines with their stations in running order.
func (h *StationHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, h.list)
}

func buildStationList(index *metro.Index) models.StationList {
	lineStations := index.LineStations()
	lines := make([]models.StationLine, 0, len(lineStations))

	for _, ls := range lineStations {
		stations := make([]models.StationInfo, 0, len(ls.Stations))
		for _, s := range ls.Stations {
			stations = append(stations, models.StationInfo{
				Name:          s.Name,
				IsInterchange: s.IsInterchange,
			})
		}
		lines = append(lines, models.StationLine{
			ID:       string(ls.Info.Line),
			Name:     ls.Info.DisplayName,
			Color:    ls.Info.Color,
			Stations: stations,
		})
	}

	return models.StationList{
		Lines:        lines,
		StationCount: index.StationCount(),
	}
}
