package handler

import "encoding/json"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type pointRequest struct {
	Order         int     `json:"order"`
	Name          string  `json:"name"`
	Latitude      float64 `json:"latitude"       validate:"gte=-90,lte=90"`
	Longitude     float64 `json:"longitude"      validate:"gte=-180,lte=180"`
	Address       string  `json:"address"`
	Category      string  `json:"category"`
	Observations  string  `json:"observations"`
	OriginalIndex int     `json:"original_index"`
	// Active defaults to true when omitted.
	Active *bool `json:"active"`
}

type fileRequest struct {
	Filename string `json:"filename" validate:"required"`
	// Content is the file body, base64-encoded.
	Content string `json:"content" validate:"required,base64"`
}

type processOptionsRequest struct {
	OptimizationMode string `json:"optimization_mode" validate:"omitempty,oneof=online offline"`
	StartIndex       int    `json:"start_index"       validate:"gte=0"`
	// EndIndex defaults to the last point when omitted or negative.
	EndIndex        *int `json:"end_index"`
	IncludeInactive bool `json:"include_inactive"`
}

type processRequest struct {
	Files          []fileRequest         `json:"files"           validate:"dive"`
	Links          []string              `json:"links"`
	Texts          []string              `json:"texts"`
	ExistingPoints []pointRequest        `json:"existing_points" validate:"dive"`
	Options        processOptionsRequest `json:"options"`
}

// exportRequest wraps the bare JSON array body of export calls for validation.
type exportRequest struct {
	Points []pointRequest `json:"points" validate:"required,min=1,dive"`
}

type geocodeQuery struct {
	Q string `query:"q" json:"q" validate:"required,min=3"`
}

// --- Response types ---

type pointResponse struct {
	Order         int     `json:"order"`
	Name          string  `json:"name"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Address       string  `json:"address,omitempty"`
	Category      string  `json:"category,omitempty"`
	OriginalIndex int     `json:"original_index"`
	Observations  string  `json:"observations,omitempty"`
	Active        bool    `json:"active"`
}

type summaryResponse struct {
	DistanceKm  float64 `json:"distance_km"`
	DurationMin float64 `json:"duration_min"`
}

type processResponse struct {
	Status         string           `json:"status"`
	Message        string           `json:"message"`
	OptimizedRoute []pointResponse  `json:"optimized_route"`
	Summary        *summaryResponse `json:"summary,omitempty"`
	MapGeoJSON     json.RawMessage  `json:"map_geojson,omitempty" swaggertype:"object"`
	RequestID      string           `json:"request_id"`
}

type placeResponse struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
