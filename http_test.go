package doorsheet

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/flanksource/doorsheet/api"
	"github.com/flanksource/doorsheet/formatters/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postForm(handler http.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestParseForm(t *testing.T) {
	form := url.Values{
		"hazards_order":      {"laser, electrical,,"},
		"hazards":            {"ignored"},
		"obligations_order":  {"wear_gloves"},
		"prohibitions_order": {""},
		"risk":               {" minimal "},
		"research_group":     {"Optics", "Photonics"},
		"pi_name":            {"Dr. Ada"},
		"pi_phone":           {"1234"},
		"emergency2_name":    {"Porter"},
		"activity_class":     {"3"},
	}
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	parsed, err := ParseForm(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"laser", "electrical"}, parsed.Hazards)
	assert.Equal(t, []string{"wear_gloves"}, parsed.Obligations)
	assert.Empty(t, parsed.Prohibitions)
	assert.Equal(t, "minimal", parsed.Risk)
	assert.Equal(t, []string{"Optics", "Photonics"}, parsed.ResearchGroups)
	assert.Equal(t, api.Contact{Name: "Dr. Ada", Phone: "1234"}, parsed.PI)
	assert.Equal(t, "Porter", parsed.Emergency[1].Name)
	assert.Equal(t, "3", parsed.ActivityClass)
}

func TestParseFormHazardCheckboxes(t *testing.T) {
	form := url.Values{"hazards": {"laser", "electrical"}}
	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	parsed, err := ParseForm(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"laser", "electrical"}, parsed.Hazards)
}

func TestHandlerGenerate(t *testing.T) {
	handler := NewHandler(newTestGenerator(t, DefaultOptions()))

	rec := postForm(handler, url.Values{
		"hazards_order":  {"laser"},
		"research_group": {"Quantum Optics"},
		"room":           {"B 1.23"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Quantum_Optics.pdf"`, rec.Header().Get("Content-Disposition"))
	pdf.AssertPDFPageCount(t, rec.Body.Bytes(), 1)
}

func TestHandlerErrors(t *testing.T) {
	handler := NewHandler(newTestGenerator(t, DefaultOptions()))

	rec := postForm(handler, url.Values{"hazards_order": {"laser"}, "risk": {"extreme"}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "extreme")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/generate", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))

	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader("hazards=%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerCatalog(t *testing.T) {
	handler := NewHandler(newTestGenerator(t, DefaultOptions()))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body catalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Hazards, 2)
	assert.Equal(t, "electrical", body.Hazards[0].Key)
	assert.Len(t, body.Obligations, 1)
	assert.Len(t, body.Prohibitions, 1)
	assert.Len(t, body.Risks, 2)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/catalog", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, rec.Body.Len())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/catalog", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestStatusError(t *testing.T) {
	err := StatusError{Code: http.StatusBadRequest}
	assert.Equal(t, http.StatusText(http.StatusBadRequest), err.Error())
	assert.Equal(t, http.StatusInternalServerError, StatusError{}.StatusCode())
}
