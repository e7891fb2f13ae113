package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"atlasqa/internal/countries/models"
)

// CountriesAPI is an in-process stand-in for the countries REST API. It serves
// /all and /alpha/{code} from the records it was built with and can be switched
// into failure modes per test.
type CountriesAPI struct {
	Server *httptest.Server

	mu       sync.Mutex
	records  []models.Country
	status   int
	rawBody  string
	requests []string
}

// NewCountriesAPI starts the fake API. The server is closed on test cleanup.
func NewCountriesAPI(t *testing.T, records []models.Country) *CountriesAPI {
	t.Helper()
	api := &CountriesAPI{records: records, status: http.StatusOK}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.Server.Close)
	return api
}

// URL is the API base URL to hand to the client.
func (a *CountriesAPI) URL() string {
	return a.Server.URL + "/v3.1"
}

// FailWith makes every endpoint answer with status and body.
func (a *CountriesAPI) FailWith(status int, body string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.status = status
	a.rawBody = body
}

// SetRecords replaces the served records and clears any failure mode.
func (a *CountriesAPI) SetRecords(records []models.Country) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = records
	a.status = http.StatusOK
	a.rawBody = ""
}

// ServeRaw makes every endpoint answer 200 with a fixed body.
func (a *CountriesAPI) ServeRaw(body string) {
	a.FailWith(http.StatusOK, body)
}

// Requests returns the request URIs seen so far.
func (a *CountriesAPI) Requests() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.requests...)
}

func (a *CountriesAPI) serve(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.requests = append(a.requests, r.URL.RequestURI())
	status, raw, records := a.status, a.rawBody, a.records
	a.mu.Unlock()

	if status != http.StatusOK || raw != "" {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(raw))
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/v3.1")
	switch {
	case path == "/all":
		writeJSON(w, records)
	case strings.HasPrefix(path, "/alpha/"):
		code := strings.TrimPrefix(path, "/alpha/")
		for _, c := range records {
			if strings.EqualFold(c.CCA3, code) {
				writeJSON(w, []models.Country{c})
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":404,"message":"Not Found"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// SampleCountries is a small, well-formed data set with one record per region
// plus South Africa with its pre-2023 language list.
func SampleCountries() []models.Country {
	yes, no := true, false
	return []models.Country{
		sample("South Africa", "Republic of South Africa", "ZAF", models.RegionAfrica, models.StatusOfficiallyAssigned, &yes, true,
			map[string]string{
				"afr": "Afrikaans", "eng": "English", "nbl": "Southern Ndebele", "nso": "Northern Sotho",
				"sot": "Southern Sotho", "ssw": "Swazi", "tsn": "Tswana", "tso": "Tsonga",
				"ven": "Venda", "xho": "Xhosa", "zul": "Zulu",
			}),
		sample("United States", "United States of America", "USA", models.RegionAmericas, models.StatusOfficiallyAssigned, &yes, true,
			map[string]string{"eng": "English"}),
		sample("France", "French Republic", "FRA", models.RegionEurope, models.StatusOfficiallyAssigned, &yes, true, nil),
		sample("Japan", "Japan", "JPN", models.RegionAsia, models.StatusOfficiallyAssigned, &yes, true, nil),
		sample("New Caledonia", "Territory of New Caledonia and Dependencies", "NCL", models.RegionOceania, models.StatusOfficiallyAssigned, &no, false, nil),
		sample("Antarctica", "Antarctica", "ATA", models.RegionAntarctic, models.StatusOfficiallyAssigned, &no, false, nil),
		sample("Kosovo", "Republic of Kosovo", "UNK", models.RegionEurope, models.StatusUserAssigned, &yes, false, nil),
	}
}

func sample(common, official, cca3, region, status string, independent *bool, un bool, languages map[string]string) models.Country {
	return models.Country{
		Name:        &models.Name{Common: common, Official: official},
		CCA3:        cca3,
		Region:      region,
		Status:      status,
		Independent: independent,
		UNMember:    un,
		Languages:   languages,
	}
}
