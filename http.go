package doorsheet

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/flanksource/commons/logger"
	"github.com/flanksource/doorsheet/api"
	"github.com/flanksource/doorsheet/catalog"
	"github.com/samber/lo"
)

// maxFormBytes bounds the size of a generate request body
const maxFormBytes = 1 << 20

// StatusError carries the HTTP status a failure maps to
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type catalogResponse struct {
	Hazards      []catalog.HazardIcon   `json:"hazards"`
	Obligations  []catalog.SignIcon     `json:"obligations"`
	Prohibitions []catalog.SignIcon     `json:"prohibitions"`
	Risks        []catalog.RiskTemplate `json:"risks"`
}

// NewHandler serves POST /generate, which returns the PDF as an
// attachment, and GET /catalog, which lists the selectable entries.
func NewHandler(g *Generator) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/generate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		req, err := ParseForm(r)
		if err != nil {
			writeError(w, err)
			return
		}
		sheet, err := g.Generate(r.Context(), req)
		if err != nil {
			logger.Errorf("failed to generate door sheet: %v", err)
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", sheet.Name))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(sheet.Data)
	})
	mux.HandleFunc("/catalog", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		cat := g.catalog
		_ = json.NewEncoder(w).Encode(catalogResponse{
			Hazards:      cat.Hazards(),
			Obligations:  cat.Obligations(),
			Prohibitions: cat.Prohibitions(),
			Risks:        cat.Risks(),
		})
	})
	return mux
}

// ParseForm reads a generate request from form fields. Ordered key lists
// come as comma separated *_order fields; hazards fall back to repeated
// "hazards" checkbox values when no order is given.
func ParseForm(r *http.Request) (api.Request, error) {
	if err := r.ParseForm(); err != nil {
		return api.Request{}, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("invalid form: %w", err)}
	}
	if err := r.ParseMultipartForm(maxFormBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return api.Request{}, StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf("invalid form: %w", err)}
	}
	form := r.Form
	get := func(name string) string { return strings.TrimSpace(form.Get(name)) }

	hazards := splitOrder(form.Get("hazards_order"))
	if len(hazards) == 0 {
		hazards = form["hazards"]
	}

	req := api.Request{
		Hazards:        hazards,
		Obligations:    splitOrder(form.Get("obligations_order")),
		Prohibitions:   splitOrder(form.Get("prohibitions_order")),
		Risk:           get("risk"),
		Department:     get("department"),
		ResearchGroups: form["research_group"],
		Room:           get("room"),
		PI:             api.Contact{Name: get("pi_name"), Phone: get("pi_phone")},
		SafetyOfficer:  api.Contact{Name: get("safety_name"), Phone: get("safety_phone")},
		Emergency: [2]api.Contact{
			{Name: get("emergency1_name"), Phone: get("emergency1_phone")},
			{Name: get("emergency2_name"), Phone: get("emergency2_phone")},
		},
		ActivityType:  get("activity_type"),
		ActivityClass: get("activity_class"),
	}
	logger.Debugf("parsed form: %d hazards, %d obligations, %d prohibitions, risk %q",
		len(req.Hazards), len(req.Obligations), len(req.Prohibitions), req.Risk)
	return req, nil
}

func splitOrder(s string) []string {
	return lo.Compact(lo.Map(strings.Split(s, ","), func(k string, _ int) string {
		return strings.TrimSpace(k)
	}))
}

// writeError maps the error taxonomy onto a status: request errors carry
// their own code, everything else is a server error.
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	var status StatusError
	if errors.As(err, &status) {
		code = status.StatusCode()
	}
	http.Error(w, err.Error(), code)
}
