package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"go.uber.org/zap"

	"github.com/KaramelBytes/carloom/internal/config"
	"github.com/KaramelBytes/carloom/internal/dataset"
)

func testConfig() *config.Global {
	return &config.Global{
		CompanyColumn:      "Company_Name",
		YearColumn:         "Year",
		PriceColumn:        "Price",
		KilometersColumn:   "Kilometers_Driven",
		PowerColumn:        "Power_value",
		FuelColumn:         "Fuel_Type",
		TransmissionColumn: "Transmission",
		LatitudeColumn:     "Latitude",
		LongitudeColumn:    "Longitude",
		ChartWidth:         400,
		ChartHeight:        300,
		PreviewRows:        5,
	}
}

func testTable(t *testing.T) *dataset.Table {
	t.Helper()
	records := [][]string{
		{"Company_Name", "Year", "Price", "Fuel_Type", "Transmission"},
		{"Maruti", "2012", "210000", "Petrol", "Manual"},
		{"Maruti", "2015", "350000", "Petrol", "Manual"},
		{"Hyundai", "2016", "460000", "Diesel", "Automatic"},
		{"Hyundai", "2018", "550000", "CNG", "Manual"},
		{"Honda", "2019", "780000", "Petrol", "Automatic"},
		{"Honda", "2017", "640000", "Diesel", "Manual"},
		{"Tata", "2014", "300000", "Petrol", "Manual"},
		{"Tata", "2020", "820000", "Diesel", "Automatic"},
	}
	df := dataframe.LoadRecords(records, dataframe.HasHeader(true), dataframe.DetectTypes(true))
	if df.Error() != nil {
		t.Fatalf("load records: %v", df.Error())
	}
	return dataset.NewTable("cars", df)
}

func testServer(t *testing.T) *Server {
	t.Helper()
	tbl := testTable(t)
	return New(testConfig(), tbl, tbl, zap.NewNop())
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestIntroPage(t *testing.T) {
	rec := get(t, testServer(t), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Total Cars", "Total Companies", "Average Price", "Raw dataset"} {
		if !strings.Contains(body, want) {
			t.Errorf("intro page missing %q", want)
		}
	}
	// Latitude/Longitude are absent from the fixture; the page notes it.
	if !strings.Contains(body, "location map skipped") {
		t.Errorf("intro page should note missing coordinates")
	}
}

func TestAnalysisDefault(t *testing.T) {
	rec := get(t, testServer(t), "/analysis")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Selected Cars") {
		t.Errorf("analysis page missing the selected-cars metric")
	}
	if !strings.Contains(body, "/chart.png?") {
		t.Errorf("analysis page should embed chart image URLs")
	}
	// Unsubmitted form defaults to every company: the full row count shows.
	if !strings.Contains(body, `<div class="val">8</div>`) {
		t.Errorf("default selection should cover all 8 rows")
	}
}

func TestAnalysisExplicitEmptySelection(t *testing.T) {
	rec := get(t, testServer(t), "/analysis?applied=1&year_min=2012&year_max=2020")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `<div class="val">0</div>`) {
		t.Errorf("zero selected companies should yield zero selected cars")
	}
	if !strings.Contains(body, "undefined") {
		t.Errorf("averages over an empty selection should render as undefined")
	}
}

func TestAnalysisCompanyFilter(t *testing.T) {
	rec := get(t, testServer(t), "/analysis?applied=1&company=Tata&year_min=2012&year_max=2020")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `<div class="val">2</div>`) {
		t.Errorf("Tata selection should cover exactly 2 rows")
	}
}

func TestConclusionsPage(t *testing.T) {
	rec := get(t, testServer(t), "/conclusions")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	// Highest price row is the 2020 Tata; most common fuel is Petrol.
	if !strings.Contains(body, "Tata") {
		t.Errorf("conclusions should name the highest-price company")
	}
	if !strings.Contains(body, "Petrol") {
		t.Errorf("conclusions should name the modal fuel type")
	}
	if !strings.Contains(body, "Strongest Correlation with Price") {
		t.Errorf("conclusions missing the correlation insight")
	}
}

func TestChartEndpoint(t *testing.T) {
	s := testServer(t)
	cases := []struct {
		name   string
		target string
		status int
	}{
		{"univariate histogram", "/chart.png?mode=uni&col=Price&uview=histogram", http.StatusOK},
		{"bivariate scatter", "/chart.png?mode=bi&x=Year&y=Price", http.StatusOK},
		{"grouped bar", "/chart.png?mode=multi&method=grouped_bar", http.StatusOK},
		{"unknown mode", "/chart.png?mode=nope", http.StatusBadRequest},
		{"unknown column", "/chart.png?mode=uni&col=Owner_Count", http.StatusUnprocessableEntity},
		{"composite method", "/chart.png?mode=multi&method=heatmap", http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, s, tc.target)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if tc.status == http.StatusOK {
				if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
					t.Fatalf("content type = %q, want image/png", ct)
				}
				if !bytes.HasPrefix(rec.Body.Bytes(), []byte{0x89, 'P', 'N', 'G'}) {
					t.Fatalf("body is not a PNG")
				}
			}
		})
	}
}

func TestAPISummary(t *testing.T) {
	rec := get(t, testServer(t), "/api/summary")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload struct {
		Rows        int                `json:"rows"`
		Numeric     []string           `json:"numeric_columns"`
		Categorical []string           `json:"categorical_columns"`
		Means       map[string]float64 `json:"means"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if payload.Rows != 8 {
		t.Errorf("rows = %d, want 8", payload.Rows)
	}
	if _, ok := payload.Means["Price"]; !ok {
		t.Errorf("summary means missing Price")
	}
	if len(payload.Categorical) == 0 {
		t.Errorf("summary should list categorical columns")
	}
}

func TestHealthz(t *testing.T) {
	rec := get(t, testServer(t), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "ok" {
		t.Fatalf("body = %q, want ok", got)
	}
}
