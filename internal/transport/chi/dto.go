package chi

import (
	"github.com/kailas-cloud/acdex/internal/catalog"
	"github.com/kailas-cloud/acdex/internal/domain/aircraft"
	"github.com/kailas-cloud/acdex/internal/domain/search/suggestion"
	searchuc "github.com/kailas-cloud/acdex/internal/usecase/search"
)

// AircraftResponse is the wire form of one engine variant.
type AircraftResponse struct {
	ID           uint16  `json:"id"`
	ShortName    string  `json:"short_name"`
	Manufacturer string  `json:"manufacturer"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Priority     uint8   `json:"priority"`
	EngineID     uint16  `json:"engine_id"`
	EngineName   string  `json:"engine_name"`
	Speed        float64 `json:"speed"`
	Fuel         float64 `json:"fuel"`
	CO2          float64 `json:"co2"`
	Cost         uint32  `json:"cost"`
	Capacity     uint32  `json:"capacity"`
	Rwy          uint16  `json:"rwy"`
	CheckCost    uint32  `json:"check_cost"`
	Range        uint16  `json:"range"`
	Ceiling      uint16  `json:"ceiling"`
	Maint        uint16  `json:"maint"`
	Pilots       uint8   `json:"pilots"`
	Crew         uint8   `json:"crew"`
	Engineers    uint8   `json:"engineers"`
	Technicians  uint8   `json:"technicians"`
	Wingspan     uint8   `json:"wingspan"`
	Length       uint8   `json:"length"`
}

// SearchResponse is returned by GET /api/v1/aircraft/search.
type SearchResponse struct {
	Aircraft  AircraftResponse `json:"aircraft"`
	Base      AircraftResponse `json:"base"`
	MatchedBy string           `json:"matched_by"`
	Engine    uint8            `json:"engine"`
	Modifiers []string         `json:"modifiers"`
}

// SuggestItem is one ranked suggestion.
type SuggestItem struct {
	Score    float64          `json:"score"`
	Aircraft AircraftResponse `json:"aircraft"`
}

// SuggestResponse is returned by GET /api/v1/aircraft/suggest.
type SuggestResponse struct {
	Items []SuggestItem `json:"items"`
}

// VariantsResponse is returned by GET /api/v1/aircraft/{id}/variants.
type VariantsResponse struct {
	Items []AircraftResponse `json:"items"`
}

// CatalogResponse is returned by GET /api/v1/catalog.
type CatalogResponse struct {
	catalog.Stats
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks"`
	Records int               `json:"records"`
}

func aircraftToResponse(a aircraft.Aircraft) AircraftResponse {
	return AircraftResponse{
		ID:           uint16(a.ID),
		ShortName:    a.ShortName,
		Manufacturer: a.Manufacturer,
		Name:         a.Name,
		Type:         a.Type.String(),
		Priority:     a.Priority,
		EngineID:     uint16(a.EngineID),
		EngineName:   a.EngineName,
		Speed:        a.Speed,
		Fuel:         a.Fuel,
		CO2:          a.CO2,
		Cost:         a.Cost,
		Capacity:     a.Capacity,
		Rwy:          a.Rwy,
		CheckCost:    a.CheckCost,
		Range:        a.Range,
		Ceiling:      a.Ceiling,
		Maint:        a.Maint,
		Pilots:       a.Pilots,
		Crew:         a.Crew,
		Engineers:    a.Engineers,
		Technicians:  a.Technicians,
		Wingspan:     a.Wingspan,
		Length:       a.Length,
	}
}

// NewSearchResponse converts a resolved query to its wire form.
func NewSearchResponse(r searchuc.Result) SearchResponse {
	return SearchResponse{
		Aircraft:  aircraftToResponse(r.Aircraft),
		Base:      aircraftToResponse(r.Base),
		MatchedBy: r.MatchedBy.String(),
		Engine:    r.Clause.Engine,
		Modifiers: r.Clause.Mods.Names(),
	}
}

// NewSuggestResponse converts ranked suggestions to their wire form.
func NewSuggestResponse(items []suggestion.Item) SuggestResponse {
	out := make([]SuggestItem, len(items))
	for i, it := range items {
		out[i] = SuggestItem{Score: it.Score, Aircraft: aircraftToResponse(it.Aircraft)}
	}
	return SuggestResponse{Items: out}
}
