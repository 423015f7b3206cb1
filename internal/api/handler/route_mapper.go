package handler

import (
	"encoding/base64"
	"fmt"

	"github.com/geoprumo/route-service/internal/core/domain"
	"github.com/geoprumo/route-service/internal/core/ports"
)

// --- Request → Service input ---

func toProcessInput(req processRequest) (ports.ProcessInput, error) {
	in := ports.ProcessInput{
		Links:          req.Links,
		Texts:          req.Texts,
		ExistingPoints: toDomainPoints(req.ExistingPoints),
		Options: ports.ProcessOptions{
			Mode:            domain.ModeOnline,
			StartIndex:      req.Options.StartIndex,
			EndIndex:        -1,
			IncludeInactive: req.Options.IncludeInactive,
		},
	}
	if req.Options.OptimizationMode != "" {
		in.Options.Mode = domain.OptimizationMode(req.Options.OptimizationMode)
	}
	if req.Options.EndIndex != nil {
		in.Options.EndIndex = *req.Options.EndIndex
	}

	for _, f := range req.Files {
		content, err := base64.StdEncoding.DecodeString(f.Content)
		if err != nil {
			return ports.ProcessInput{}, fmt.Errorf("%w: file %q is not valid base64", domain.ErrValidation, f.Filename)
		}
		in.Files = append(in.Files, ports.FileInput{Filename: f.Filename, Content: content})
	}
	return in, nil
}

func toDomainPoints(reqs []pointRequest) []domain.Point {
	if len(reqs) == 0 {
		return nil
	}
	out := make([]domain.Point, len(reqs))
	for i, r := range reqs {
		active := true
		if r.Active != nil {
			active = *r.Active
		}
		out[i] = domain.Point{
			Order:         r.Order,
			Name:          r.Name,
			Latitude:      r.Latitude,
			Longitude:     r.Longitude,
			Address:       r.Address,
			Category:      r.Category,
			Observations:  r.Observations,
			OriginalIndex: r.OriginalIndex,
			Active:        active,
		}
	}
	return out
}

// --- Service result → HTTP response ---

func toPointResponses(points []domain.Point) []pointResponse {
	out := make([]pointResponse, len(points))
	for i, p := range points {
		out[i] = pointResponse{
			Order:         p.Order,
			Name:          p.Name,
			Latitude:      p.Latitude,
			Longitude:     p.Longitude,
			Address:       p.Address,
			Category:      p.Category,
			OriginalIndex: p.OriginalIndex,
			Observations:  p.Observations,
			Active:        p.Active,
		}
	}
	return out
}

func toProcessResponse(r *ports.ProcessResult, requestID string) processResponse {
	resp := processResponse{
		Status:         "success",
		Message:        fmt.Sprintf("Rota otimizada com %d pontos.", len(r.Route.Points)),
		OptimizedRoute: toPointResponses(r.Route.Points),
		MapGeoJSON:     r.MapGeoJSON,
		RequestID:      requestID,
	}
	if s := r.Route.Summary; s != nil {
		resp.Summary = &summaryResponse{DistanceKm: s.DistanceKm, DurationMin: s.DurationMin}
	}
	return resp
}
