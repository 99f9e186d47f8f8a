package genredna

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/himanishpuri/GenreDNA/pkg/models"
)

const (
	predictPath = "/api/predict"
	samplesPath = "/api/samples"
	healthPath  = "/health"

	defaultFileName = "audio.wav"

	audioFileField = "audio_file"
	sampleIDField  = "sample_id"
)

// audioContentTypes covers the upload formats the prediction API accepts.
// Other extensions fall back to mime.TypeByExtension.
var audioContentTypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".webm": "audio/webm",
}

// RemoteBackend talks to a prediction API over HTTP.
type RemoteBackend struct {
	baseURL string
	http    *http.Client
	log     Logger
}

func (b *RemoteBackend) Mode() Mode {
	return ModeRemote
}

// BaseURL returns the normalized API root, without a trailing slash.
func (b *RemoteBackend) BaseURL() string {
	return b.baseURL
}

// Predict uploads the file (or sends the sample id) to /api/predict. It fails
// with ErrInputMissing without touching the network when the input is empty.
func (b *RemoteBackend) Predict(ctx context.Context, in PredictInput) (*models.RecommendationResult, error) {
	if in.Empty() {
		return nil, ErrInputMissing
	}

	body, contentType, err := encodePredictForm(in)
	if err != nil {
		return nil, fmt.Errorf("encode prediction request: %w", err)
	}

	url := b.baseURL + predictPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("create prediction request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "POST", URL: url, Err: err}
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		rerr := readRemoteError(resp, predictFailedMessage)
		b.log.Warnf("Prediction request failed with status %d: %s", rerr.StatusCode, rerr.Message)
		return nil, rerr
	}

	var result models.RecommendationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode prediction response: %w", err)
	}
	return &result, nil
}

// ListSamples fetches the preset samples offered by the API.
func (b *RemoteBackend) ListSamples(ctx context.Context) ([]models.SampleAudio, error) {
	url := b.baseURL + samplesPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create samples request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "GET", URL: url, Err: err}
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, readRemoteError(resp, samplesFailedMessage)
	}

	var samples []models.SampleAudio
	if err := json.NewDecoder(resp.Body).Decode(&samples); err != nil {
		return nil, fmt.Errorf("decode samples response: %w", err)
	}
	if samples == nil {
		samples = []models.SampleAudio{}
	}
	return samples, nil
}

// HealthCheck reports whether /health answers with a 2xx status. Every
// failure is reported as false.
func (b *RemoteBackend) HealthCheck(ctx context.Context) bool {
	url := b.baseURL + healthPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := b.http.Do(req)
	if err != nil {
		b.log.Debugf("Health check against %s failed: %v", url, err)
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return isSuccess(resp.StatusCode)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// readRemoteError turns a non-2xx response into a RemoteError. The API sends
// {"detail": "..."}; an empty detail maps to fallback and an unreadable body to
// "Unknown error".
func readRemoteError(resp *http.Response, fallback string) *RemoteError {
	rerr := &RemoteError{StatusCode: resp.StatusCode, Message: unknownErrorMessage}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return rerr
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return rerr
	}

	rerr.Message = fallback
	raw := bytes.TrimSpace(payload.Detail)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return rerr
	}

	var detail string
	if err := json.Unmarshal(raw, &detail); err != nil {
		// Validation errors arrive as structured detail.
		rerr.Message = string(raw)
		return rerr
	}
	if detail != "" {
		rerr.Message = detail
	}
	return rerr
}

// encodePredictForm builds the multipart body for /api/predict. The file wins
// over the sample id when both are set.
func encodePredictForm(in PredictInput) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if in.File != nil {
		name := in.FileName
		if name == "" {
			name = defaultFileName
		}
		ctype := in.ContentType
		if ctype == "" {
			ctype = contentTypeFor(name)
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			audioFileField, escapeQuotes(filepath.Base(name))))
		h.Set("Content-Type", ctype)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, in.File); err != nil {
			return nil, "", fmt.Errorf("read audio file: %w", err)
		}
	} else {
		if err := w.WriteField(sampleIDField, in.SampleID); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func contentTypeFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := audioContentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
