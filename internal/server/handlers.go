package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexiusacademia/rcflex/internal/aci"
	"github.com/alexiusacademia/rcflex/internal/beam"
	"github.com/alexiusacademia/rcflex/internal/config"
	"github.com/alexiusacademia/rcflex/internal/layout"
	"github.com/alexiusacademia/rcflex/internal/steel"
	"github.com/gorilla/mux"
)

// EvaluateInput is the body of POST /api/evaluate. Zero material fields and
// a zero cover fall back to the configured values.
type EvaluateInput struct {
	Width       float64          `json:"b"`
	Height      float64          `json:"h"`
	Layers      int              `json:"layers"`
	Cover       float64          `json:"r"`
	CoverComp   float64          `json:"r_comp"`
	Tension     []steel.BarGroup `json:"tension"`
	Compression []steel.BarGroup `json:"compression"`
	Materials   *beam.Materials  `json:"materials,omitempty"`
	Method      beam.Method      `json:"method,omitempty"`
	Mu          float64          `json:"mu,omitempty"` // factored moment demand, ton·m
}

// EvaluateOutput is the response of POST /api/evaluate
type EvaluateOutput struct {
	Result  *beam.CapacityResult `json:"result"`
	Layout  layout.Result        `json:"layout"`
	Fits    bool                 `json:"fits"`
	Demand  *aci.DemandCheck     `json:"demand,omitempty"`
	Warning string               `json:"warning,omitempty"`
}

// LayoutInput is the body of POST /api/layout
type LayoutInput struct {
	Bars   []steel.BarGroup `json:"bars"`
	Params *layout.Params   `json:"params,omitempty"`
	Width  float64          `json:"b,omitempty"`
}

// LayoutOutput is the response of POST /api/layout
type LayoutOutput struct {
	layout.Result
	Fits *bool `json:"fits,omitempty"`
}

// BarOutput is a catalog entry with its derived diameter
type BarOutput struct {
	Designation string  `json:"designation"`
	Area        float64 `json:"area"`
	Diameter    float64 `json:"diameter"`
}

type errorOutput struct {
	Error string `json:"error"`
}

// Handler serves the capacity API
type Handler struct {
	Catalog *steel.Catalog
	Config  config.Config
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		recordError(w, fmt.Errorf("encoding response: %w", err))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	recordError(w, err)
	writeJSON(w, status, errorOutput{Error: err.Error()})
}

// statusFor maps domain errors to HTTP statuses
func statusFor(err error) int {
	switch {
	case errors.Is(err, steel.ErrUnknownBarSize):
		return http.StatusNotFound
	case errors.Is(err, beam.ErrInvalidInput), errors.Is(err, beam.ErrDegenerateSection):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func (h *Handler) geometry(in EvaluateInput) (beam.Geometry, error) {
	if in.Cover > 0 {
		return beam.Geometry{Width: in.Width, Height: in.Height, Cover: in.Cover, CoverComp: in.CoverComp}, nil
	}
	layers := in.Layers
	if layers == 0 {
		layers = 1
	}
	g, err := h.Config.Geometry(in.Width, in.Height, layers)
	if err != nil {
		return beam.Geometry{}, err
	}
	if in.CoverComp > 0 {
		g.CoverComp = in.CoverComp
	}
	return g, nil
}

func (h *Handler) materials(in EvaluateInput) beam.Materials {
	m := h.Config.Materials
	if in.Materials == nil {
		return m
	}
	if in.Materials.Fc > 0 {
		m.Fc = in.Materials.Fc
	}
	if in.Materials.Fy > 0 {
		m.Fy = in.Materials.Fy
	}
	if in.Materials.Es > 0 {
		m.Es = in.Materials.Es
	}
	if in.Materials.Ecu > 0 {
		m.Ecu = in.Materials.Ecu
	}
	if in.Materials.PhiFlexure > 0 {
		m.PhiFlexure = in.Materials.PhiFlexure
	}
	return m
}

// Evaluate handles POST /api/evaluate
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var input EvaluateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request payload"))
		return
	}

	g, err := h.geometry(input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	opts := h.Config.Solver
	if input.Method != "" {
		if opts.Method, err = beam.ParseMethod(string(input.Method)); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	out := EvaluateOutput{}
	out.Layout, err = layout.MinimumWidth(h.Catalog, input.Tension, h.Config.Layout)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	out.Fits = out.Layout.Fits(g.Width)

	out.Result, err = beam.NewEvaluator(h.Catalog, opts).Evaluate(g, h.materials(input), input.Tension, input.Compression)
	switch {
	case errors.Is(err, beam.ErrNonConvergent):
		out.Warning = err.Error()
	case err != nil:
		writeError(w, statusFor(err), err)
		return
	}

	if input.Mu > 0 {
		check, err := aci.CheckDemand(input.Mu, out.Result.PhiMn)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		out.Demand = &check
	}

	writeJSON(w, http.StatusOK, out)
}

// Layout handles POST /api/layout
func (h *Handler) Layout(w http.ResponseWriter, r *http.Request) {
	var input LayoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request payload"))
		return
	}
	params := h.Config.Layout
	if input.Params != nil {
		params = *input.Params
	}

	res, err := layout.MinimumWidth(h.Catalog, input.Bars, params)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	out := LayoutOutput{Result: res}
	if input.Width > 0 {
		fits := res.Fits(input.Width)
		out.Fits = &fits
	}
	writeJSON(w, http.StatusOK, out)
}

func barOutput(s steel.BarSize) BarOutput {
	return BarOutput{Designation: s.Designation, Area: s.Area, Diameter: s.Diameter()}
}

// Bars handles GET /api/bars
func (h *Handler) Bars(w http.ResponseWriter, r *http.Request) {
	sizes := h.Catalog.Sizes()
	out := make([]BarOutput, len(sizes))
	for i, s := range sizes {
		out[i] = barOutput(s)
	}
	writeJSON(w, http.StatusOK, out)
}

// Bar handles GET /api/bars/{designation}
func (h *Handler) Bar(w http.ResponseWriter, r *http.Request) {
	s, err := h.Catalog.Lookup(mux.Vars(r)["designation"])
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, barOutput(s))
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
