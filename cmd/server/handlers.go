//go:build !js && !wasm

package main

import (
	"errors"
	"hash/fnv"
	"io"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"

	"github.com/himanishpuri/GenreDNA/pkg/genredna/audio"
	"github.com/himanishpuri/GenreDNA/pkg/genredna/simulate"
	"github.com/himanishpuri/GenreDNA/pkg/models"
	"github.com/himanishpuri/GenreDNA/pkg/utils"
)

// maxMemory is the part of a multipart form kept in memory; the rest spills
// to disk.
const maxMemory = 32 << 20

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("Failed to encode JSON response: %v", err)
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, statusCode int, detail string) {
	s.respondJSON(w, statusCode, ErrorResponse{Detail: detail})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Message: "API is running",
	})
}

// handleSamples handles GET /api/samples
func (s *Server) handleSamples(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.catalog.ListSamples())
}

// handlePredict handles POST /api/predict. An audio_file part wins over
// sample_id.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	log := s.requestLog(r)
	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes())

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			s.respondError(w, http.StatusRequestEntityTooLarge, msgFileTooLarge)
			return
		case errors.Is(err, http.ErrNotMultipart):
			// No form at all: same answer as an empty form.
			s.respondError(w, http.StatusBadRequest, msgInputMissing)
			return
		default:
			log.Warnf("Failed to parse multipart form: %v", err)
			s.respondError(w, http.StatusBadRequest, msgInvalidForm)
			return
		}
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("audio_file")
	switch {
	case err == nil:
		defer file.Close()
		s.predictUpload(w, r, file, header.Filename, header.Header.Get("Content-Type"))
		return
	case !errors.Is(err, http.ErrMissingFile):
		log.Warnf("Failed to read audio_file: %v", err)
		s.respondError(w, http.StatusBadRequest, msgInvalidForm)
		return
	}

	if _, ok := r.MultipartForm.Value["sample_id"]; !ok {
		s.respondError(w, http.StatusBadRequest, msgInputMissing)
		return
	}
	s.predictSample(w, r, r.FormValue("sample_id"))
}

func (s *Server) predictSample(w http.ResponseWriter, r *http.Request, sampleID string) {
	sample, ok := s.catalog.FindSample(sampleID)
	if !ok {
		s.respondError(w, http.StatusNotFound, msgSampleNotFound)
		return
	}

	result := simulate.SimulateWith(s.rng, s.catalog.ListSongs(), sample.Genre)
	s.respondPrediction(w, r, result, "sample")
}

// predictUpload stores the upload in a temporary file, probes it and answers
// with a prediction seeded from the file contents, so the same file always
// gets the same answer.
func (s *Server) predictUpload(w http.ResponseWriter, r *http.Request, file io.Reader, name, contentType string) {
	log := s.requestLog(r)

	if !audio.IsAudioContentType(contentType) {
		s.respondError(w, http.StatusBadRequest, msgInvalidFileType)
		return
	}

	h := fnv.New64a()
	tmp, err := utils.SaveUpload(s.config.UploadDir, name, file, h)
	if err != nil {
		log.Errorf("%v", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer tmp.Remove()
	size := tmp.Size

	s.metrics.uploadBytes.Observe(float64(size))
	log.Infof("Received %s (%s, %s)", name, contentType, humanize.Bytes(uint64(size)))

	if audio.IsWAV(name, contentType) {
		if meta, err := audio.Probe(tmp); err == nil {
			log.Infof("WAV upload: %s, %d Hz, %d channel(s), %d-bit",
				meta.Duration, meta.SampleRate, meta.Channels, meta.BitDepth)
		} else {
			log.Debugf("Could not probe %s: %v", name, err)
		}
	}

	sum := h.Sum64()
	rng := simulate.NewSeededSource(sum, uint64(size))
	result := simulate.SimulateWith(rng, s.catalog.ListSongs(), models.NoGenre)
	s.respondPrediction(w, r, result, "upload")
}

func (s *Server) respondPrediction(w http.ResponseWriter, r *http.Request, result models.RecommendationResult, source string) {
	if len(result.Recommendations) > topK {
		result.Recommendations = result.Recommendations[:topK]
	}
	s.metrics.predictions.WithLabelValues(result.Prediction.Genre.String(), source).Inc()
	s.requestLog(r).Debugf("Predicted %s (%.1f%%) from %s", result.Prediction.Genre, result.Prediction.Confidence*100, source)
	s.respondJSON(w, http.StatusOK, result)
}
