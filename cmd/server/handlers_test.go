//go:build !js && !wasm

package main

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/himanishpuri/GenreDNA/internal/config"
	"github.com/himanishpuri/GenreDNA/pkg/genredna/audio"
	"github.com/himanishpuri/GenreDNA/pkg/genredna/catalog"
	"github.com/himanishpuri/GenreDNA/pkg/logger"
	"github.com/himanishpuri/GenreDNA/pkg/models"
)

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:           "debug",
		LogFormat:          "json",
		Port:               8000,
		AllowedOrigins:     []string{"*"},
		MaxUploadMB:        1,
		RateLimitPerMinute: 0,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	log := logger.New(logger.Config{Level: logger.DEBUG, Format: logger.FormatJSON, Output: io.Discard})
	s := NewServer(catalog.Default(), cfg, log)
	ts := httptest.NewServer(s.setupRoutes())
	t.Cleanup(ts.Close)
	return ts
}

type formPart struct {
	field       string
	fileName    string
	contentType string
	data        []byte
}

func postForm(t *testing.T, url string, parts ...formPart) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range parts {
		if p.fileName == "" {
			if err := w.WriteField(p.field, string(p.data)); err != nil {
				t.Fatal(err)
			}
			continue
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+p.field+`"; filename="`+p.fileName+`"`)
		h.Set("Content-Type", p.contentType)
		pw, err := w.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		pw.Write(p.data)
	}
	w.Close()

	resp, err := http.Post(url+"/api/predict", w.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST /api/predict: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func wavBytes(t *testing.T) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := audio.WriteSilence(f, 11025, 1, 500*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body := decodeBody[HealthResponse](t, resp)
	if body.Status != "healthy" || body.Message != "API is running" {
		t.Errorf("body = %+v", body)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestSamples(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp, err := http.Get(ts.URL + "/api/samples")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	samples := decodeBody[[]models.SampleAudio](t, resp)
	if len(samples) != 5 {
		t.Fatalf("got %d samples", len(samples))
	}
	if samples[1].ID != "sample-2" || samples[1].Genre != models.Jazz {
		t.Errorf("samples[1] = %+v", samples[1])
	}
}

func TestPredictSample(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp := postForm(t, ts.URL, formPart{field: "sample_id", data: []byte("sample-2")})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	res := decodeBody[models.RecommendationResult](t, resp)
	if res.Prediction.Genre != models.Jazz {
		t.Errorf("predicted %v, want jazz", res.Prediction.Genre)
	}
	if err := res.Prediction.Validate(); err != nil {
		t.Errorf("invalid prediction: %v", err)
	}
	if len(res.Recommendations) != topK {
		t.Fatalf("got %d recommendations", len(res.Recommendations))
	}
	for _, rec := range res.Recommendations {
		if rec.Genre != models.Jazz || rec.Similarity == nil {
			t.Errorf("unexpected recommendation %+v", rec)
		}
	}
}

func TestPredictUploadIsDeterministic(t *testing.T) {
	ts := newTestServer(t, testConfig())
	data := wavBytes(t)
	part := formPart{field: "audio_file", fileName: "tone.wav", contentType: "audio/wav", data: data}

	first := decodeBody[models.RecommendationResult](t, postForm(t, ts.URL, part))
	second := decodeBody[models.RecommendationResult](t, postForm(t, ts.URL, part))

	if first.Prediction != second.Prediction {
		t.Errorf("same upload gave different predictions:\n%+v\n%+v", first.Prediction, second.Prediction)
	}
	if err := first.Prediction.Validate(); err != nil {
		t.Errorf("invalid prediction: %v", err)
	}
	for _, rec := range first.Recommendations {
		if rec.Genre != first.Prediction.Genre {
			t.Errorf("recommendation %s has genre %v", rec.ID, rec.Genre)
		}
	}
}

func TestPredictUploadRemovesScratchFile(t *testing.T) {
	cfg := testConfig()
	cfg.UploadDir = t.TempDir()
	ts := newTestServer(t, cfg)

	resp := postForm(t, ts.URL, formPart{field: "audio_file", fileName: "tone.wav", contentType: "audio/wav", data: wavBytes(t)})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	entries, err := os.ReadDir(cfg.UploadDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("upload dir has %d leftover file(s)", len(entries))
	}
}

func TestPredictUploadWinsOverSample(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp := postForm(t, ts.URL,
		formPart{field: "audio_file", fileName: "clip.mp3", contentType: "audio/mpeg", data: []byte("ID3 fake mp3")},
		formPart{field: "sample_id", data: []byte("no-such-sample")},
	)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200 from the upload path", resp.StatusCode)
	}
}

func TestPredictErrors(t *testing.T) {
	tests := []struct {
		name   string
		parts  []formPart
		status int
		detail string
	}{
		{
			name:   "no input",
			parts:  nil,
			status: http.StatusBadRequest,
			detail: msgInputMissing,
		},
		{
			name:   "non-audio upload",
			parts:  []formPart{{field: "audio_file", fileName: "notes.txt", contentType: "text/plain", data: []byte("hi")}},
			status: http.StatusBadRequest,
			detail: msgInvalidFileType,
		},
		{
			name:   "unknown sample",
			parts:  []formPart{{field: "sample_id", data: []byte("sample-99")}},
			status: http.StatusNotFound,
			detail: msgSampleNotFound,
		},
		{
			name:   "empty sample id",
			parts:  []formPart{{field: "sample_id", data: nil}},
			status: http.StatusNotFound,
			detail: msgSampleNotFound,
		},
	}

	ts := newTestServer(t, testConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postForm(t, ts.URL, tt.parts...)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decodeBody[ErrorResponse](t, resp)
			if body.Detail != tt.detail {
				t.Errorf("detail = %q, want %q", body.Detail, tt.detail)
			}
		})
	}
}

func TestPredictWithoutMultipart(t *testing.T) {
	ts := newTestServer(t, testConfig())

	resp, err := http.Post(ts.URL+"/api/predict", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if body := decodeBody[ErrorResponse](t, resp); body.Detail != msgInputMissing {
		t.Errorf("detail = %q", body.Detail)
	}
}

func TestPredictUploadTooLarge(t *testing.T) {
	ts := newTestServer(t, testConfig())

	big := bytes.Repeat([]byte{0}, 2<<20)
	resp := postForm(t, ts.URL, formPart{field: "audio_file", fileName: "big.wav", contentType: "audio/wav", data: big})
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", resp.StatusCode)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMinute = 1
	ts := newTestServer(t, cfg)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		resp, err := http.Get(ts.URL + "/api/samples")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v, want [200 429]", codes)
	}

	// Health is outside the limited group.
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, testConfig())

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/samples", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.Header.Get("Access-Control-Allow-Origin") == "" {
		t.Error("missing Access-Control-Allow-Origin header")
	}
}

func TestMetrics(t *testing.T) {
	ts := newTestServer(t, testConfig())
	postForm(t, ts.URL, formPart{field: "sample_id", data: []byte("sample-1")})

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	out := string(body)
	if !strings.Contains(out, `genredna_predictions_total{genre="rock",source="sample"} 1`) {
		t.Errorf("missing prediction counter in metrics output")
	}
	if !strings.Contains(out, "genredna_http_request_duration_seconds") {
		t.Errorf("missing request duration histogram")
	}
}
