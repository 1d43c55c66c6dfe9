package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/poimap/pkg/core/poi"
	"github.com/matzehuels/poimap/pkg/errors"
	"github.com/matzehuels/poimap/pkg/pipeline"
	"github.com/matzehuels/poimap/pkg/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.FileStore) {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir(), store.Options{})
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	srv := httptest.NewServer(New(pipeline.NewRunner(st, nil, nil, logger), logger).Handler())
	t.Cleanup(srv.Close)
	return srv, st
}

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func scenario() []poi.POI {
	return []poi.POI{
		{ID: poi.LifeboatID, Name: "Lifeboat 5", Category: poi.CategoryLifeboat, DefinitionMode: poi.ModeCoordinates},
		{
			ID:             "wreck",
			Name:           "Aurora",
			Category:       poi.CategoryWreck,
			DefinitionMode: poi.ModeBearings,
			BearingRecords: []poi.BearingRecord{
				{ID: "r1", ReferencePOIID: poi.LifeboatID, Bearing: 90, Distance: 100, Direction: poi.DirectionTo},
			},
		},
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "ok" || body["version"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestStatelessRecalculate(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/recalculate", scenario())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var res pipeline.Result
	decodeBody(t, resp, &res)

	w, _, ok := poi.Find(res.POIs, "wreck")
	if !ok {
		t.Fatal("wreck missing from response")
	}
	if math.Abs(w.X+100) > 1e-9 || math.Abs(w.Y) > 1e-9 {
		t.Errorf("wreck at (%v, %v), want (-100, 0)", w.X, w.Y)
	}
	if len(res.Updated) != 1 || res.Updated[0] != "wreck" {
		t.Errorf("updated = %v", res.Updated)
	}
}

func TestRecalculateMalformedBody(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Post(srv.URL+"/recalculate", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	var body errorBody
	decodeBody(t, resp, &body)
	if body.Code != "INVALID_FORMAT" {
		t.Errorf("code = %q", body.Code)
	}
}

func TestMapLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/maps", nameRequest{Name: "Crater"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var m poi.Map
	decodeBody(t, resp, &m)

	resp = do(t, http.MethodPut, srv.URL+"/maps/"+m.ID+"/pois", scenario())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put pois status = %d", resp.StatusCode)
	}

	resp = do(t, http.MethodPost, srv.URL+"/maps/"+m.ID+"/recalculate?save=true", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("recalculate status = %d", resp.StatusCode)
	}
	var res pipeline.Result
	decodeBody(t, resp, &res)
	if !res.Saved {
		t.Error("save=true should persist")
	}

	resp = do(t, http.MethodGet, srv.URL+"/maps/"+m.ID, nil)
	var got poi.Map
	decodeBody(t, resp, &got)
	w, _, _ := poi.Find(got.POIs, "wreck")
	if math.Abs(w.X+100) > 1e-9 {
		t.Errorf("stored wreck X = %v, want -100", w.X)
	}

	resp = do(t, http.MethodPatch, srv.URL+"/maps/"+m.ID, nameRequest{Name: "Renamed"})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("rename status = %d", resp.StatusCode)
	}

	resp = do(t, http.MethodGet, srv.URL+"/maps", nil)
	var list []mapSummary
	decodeBody(t, resp, &list)
	if len(list) != 1 || list[0].Name != "Renamed" || list[0].POICount != 2 {
		t.Errorf("list = %+v", list)
	}

	resp = do(t, http.MethodGet, srv.URL+"/maps/"+m.ID+"/graph?format=dot", nil)
	dot, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(dot), `"lifeboat-5" -> "wreck"`) {
		t.Errorf("graph = %s", dot)
	}

	resp = do(t, http.MethodDelete, srv.URL+"/maps/"+m.ID, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}
	resp = do(t, http.MethodGet, srv.URL+"/maps/"+m.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestMapNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/maps/missing/recalculate", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	var body errorBody
	decodeBody(t, resp, &body)
	if body.Code != "MAP_NOT_FOUND" {
		t.Errorf("code = %q", body.Code)
	}
}

func TestPutPOIsRejectsDuplicates(t *testing.T) {
	srv, st := newTestServer(t)
	m, err := st.Create(context.Background(), "Dup")
	if err != nil {
		t.Fatal(err)
	}
	pois := scenario()
	pois[1].ID = pois[0].ID
	resp := do(t, http.MethodPut, srv.URL+"/maps/"+m.ID+"/pois", pois)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCreateMapRequiresName(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/maps", nameRequest{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestValidate(t *testing.T) {
	srv, _ := newTestServer(t)
	req := validateRequest{
		Records: []poi.BearingRecord{
			{ID: "r", ReferencePOIID: "ghost", Bearing: 400, Distance: -1, Direction: poi.DirectionTo},
		},
		POIs: scenario(),
	}
	resp := do(t, http.MethodPost, srv.URL+"/validate", req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out validateResponse
	decodeBody(t, resp, &out)
	want := []string{
		"Target POI ghost does not exist",
		"Distance must be positive, got -1",
		"Bearing must be between 0-359 degrees, got 400",
	}
	if out.Valid || strings.Join(out.Errors, "|") != strings.Join(want, "|") {
		t.Errorf("validate = %+v", out)
	}

	ok := validateRequest{Records: scenario()[1].BearingRecords, POIs: scenario()}
	resp = do(t, http.MethodPost, srv.URL+"/validate", ok)
	decodeBody(t, resp, &out)
	if !out.Valid || len(out.Errors) != 0 {
		t.Errorf("valid records reported %+v", out)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeMapNotFound, "map x not found"), http.StatusNotFound},
		{errors.New(errors.ErrCodeInvalidInput, "bad"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeSelfReference, "self"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeStorage, "disk"), http.StatusInternalServerError},
		{errors.New(errors.ErrCodeUnsupported, "nope"), http.StatusNotImplemented},
		{io.EOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
