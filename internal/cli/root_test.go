package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/estately/backend/internal/listing"
	"github.com/estately/backend/internal/models"
)

// executeCommand runs a command with the given args and captures output.
func executeCommand(args ...string) (string, error) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func fixtureProperties() []*models.Property {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []*models.Property{
		{
			ID: "p1", Title: "Sea View Villa", Category: "house", Price: 9000000,
			Location:        models.Location{City: "Vizag"},
			PropertyDetails: models.PropertyDetails{Bedrooms: intPtr(3), Bathrooms: intPtr(2), Sqft: floatPtr(1800)},
			CreatedAt:       base,
		},
		{
			ID: "p2", Title: "Corner Plot", Category: "plot", Price: 2500000,
			Location:        models.Location{City: "Guntur"},
			PropertyDetails: models.PropertyDetails{Sqft: floatPtr(1200)},
			CreatedAt:       base.Add(24 * time.Hour),
		},
		{
			ID: "p3", Title: "Lake Apartment", Category: "apartment", Price: 6000000, Featured: true,
			Location:        models.Location{City: "Vizag"},
			PropertyDetails: models.PropertyDetails{Bedrooms: intPtr(2), Bathrooms: intPtr(2)},
			CreatedAt:       base.Add(48 * time.Hour),
		},
	}
}

func newAPIServer(t *testing.T, failures int32) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	calls := new(atomic.Int32)
	props := fixtureProperties()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if n <= failures {
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(models.NewErrorResponse("upstream"))
			return
		}
		switch r.URL.Path {
		case "/api/properties":
			json.NewEncoder(w).Encode(models.NewSuccessResponse(props))
		case "/api/properties/p1":
			json.NewEncoder(w).Encode(models.NewSuccessResponse(props[0]))
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(models.NewErrorResponse("Property not found"))
		}
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func TestRootHelp(t *testing.T) {
	if _, err := executeCommand("--help"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGlobalFlags(t *testing.T) {
	root := NewRootCmd()

	tests := []struct {
		name string
		def  string
	}{
		{"format", "text"},
		{"retries", "3"},
		{"backoff", "1s"},
	}
	for _, tt := range tests {
		f := root.PersistentFlags().Lookup(tt.name)
		if f == nil {
			t.Fatalf("expected --%s flag to exist", tt.name)
		}
		if f.DefValue != tt.def {
			t.Errorf("--%s default = %q, want %q", tt.name, f.DefValue, tt.def)
		}
	}
	if root.PersistentFlags().Lookup("server") == nil {
		t.Fatal("expected --server flag to exist")
	}
}

func TestServerURLFromEnv(t *testing.T) {
	t.Setenv("LISTINGS_SERVER_URL", "http://custom:1234")
	if got := serverURLFromEnv(); got != "http://custom:1234" {
		t.Errorf("url = %q", got)
	}
	t.Setenv("LISTINGS_SERVER_URL", "")
	if got := serverURLFromEnv(); got != defaultServerURL {
		t.Errorf("url = %q, want %q", got, defaultServerURL)
	}
}

func TestSearchTable(t *testing.T) {
	srv, _ := newAPIServer(t, 0)

	out, err := executeCommand("search", "--server", srv.URL, "--location", "Vizag", "--sort", "price-asc")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	apt := strings.Index(out, "Lake Apartment")
	villa := strings.Index(out, "Sea View Villa")
	if apt < 0 || villa < 0 || apt > villa {
		t.Errorf("expected apartment before villa:\n%s", out)
	}
	if strings.Contains(out, "Corner Plot") {
		t.Errorf("Guntur plot should be filtered out:\n%s", out)
	}
	if !strings.Contains(out, "* Lake Apartment") {
		t.Errorf("featured marker missing:\n%s", out)
	}
	if !strings.Contains(out, "Showing 2 of 3 properties") {
		t.Errorf("missing footer:\n%s", out)
	}
}

func TestSearchJSON(t *testing.T) {
	srv, _ := newAPIServer(t, 0)

	out, err := executeCommand("search", "--server", srv.URL, "--format", "json", "--min-beds", "3")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	var records []listing.Record
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(records) != 1 || records[0].ID != "p1" {
		t.Errorf("got %+v, want only p1", records)
	}
}

func TestSearchDefaultOrderIsNewest(t *testing.T) {
	srv, _ := newAPIServer(t, 0)

	out, err := executeCommand("search", "--server", srv.URL, "--format", "json")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	var records []listing.Record
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var got []string
	for _, r := range records {
		got = append(got, r.ID)
	}
	if strings.Join(got, ",") != "p3,p2,p1" {
		t.Errorf("order = %v, want p3,p2,p1", got)
	}
}

func TestSearchNoMatches(t *testing.T) {
	srv, _ := newAPIServer(t, 0)

	out, err := executeCommand("search", "--server", srv.URL, "--text", "castle")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "No properties found.") {
		t.Errorf("output = %q", out)
	}
}

func TestSearchInvalidFilters(t *testing.T) {
	_, err := executeCommand("search", "--server", "http://127.0.0.1:1", "--min-price", "cheap", "--sort", "random")
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"--min-price", "--sort"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}

func TestSearchRetriesFailedFetch(t *testing.T) {
	srv, calls := newAPIServer(t, 2)

	if _, err := executeCommand("search", "--server", srv.URL, "--backoff", "0s"); err != nil {
		t.Fatalf("search: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("calls = %d, want 3", got)
	}
}

func TestSearchGivesUp(t *testing.T) {
	srv, calls := newAPIServer(t, 10)

	_, err := executeCommand("search", "--server", srv.URL, "--backoff", "0s", "--retries", "2")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestShow(t *testing.T) {
	srv, _ := newAPIServer(t, 0)

	out, err := executeCommand("show", "p1", "--server", srv.URL)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Property p1", "Sea View Villa", "9,000,000", "Beds:      3", "Vizag"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShowNotFound(t *testing.T) {
	srv, _ := newAPIServer(t, 0)

	_, err := executeCommand("show", "nope", "--server", srv.URL, "--backoff", "0s")
	if err == nil || !strings.Contains(err.Error(), "property nope not found") {
		t.Errorf("err = %v", err)
	}
}

func TestShowRequiresID(t *testing.T) {
	if _, err := executeCommand("show"); err == nil {
		t.Error("expected error without id")
	}
}

func TestFacets(t *testing.T) {
	srv, _ := newAPIServer(t, 0)

	out, err := executeCommand("facets", "--server", srv.URL)
	if err != nil {
		t.Fatalf("facets: %v", err)
	}
	for _, want := range []string{"Guntur, Vizag", "apartment, house, plot", "2,500,000 - 9,000,000"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFacetsJSON(t *testing.T) {
	srv, _ := newAPIServer(t, 0)

	out, err := executeCommand("facets", "--server", srv.URL, "--format", "json")
	if err != nil {
		t.Fatalf("facets: %v", err)
	}
	var f listing.Facets
	if err := json.Unmarshal([]byte(out), &f); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if f.PriceRange.Min != 2500000 || f.PriceRange.Max != 9000000 {
		t.Errorf("price range = %+v", f.PriceRange)
	}
}
