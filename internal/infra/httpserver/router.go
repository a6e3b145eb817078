package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/bryanwahyu/scamshield/internal/application/calls"
	"github.com/bryanwahyu/scamshield/internal/domain/analysis"
	"github.com/bryanwahyu/scamshield/internal/domain/upload"
	"github.com/bryanwahyu/scamshield/internal/middleware"
)

// multipartOverhead is headroom for field boundaries and headers on top of
// the audio payload itself when capping the request body.
const multipartOverhead = 1 << 20

type Options struct {
	AllowedOrigins  []string
	MaxUploadBytes  int64
	TempDir         string // "" means the OS default
	ProviderEnabled bool
}

type Router struct {
	svc  *calls.Service
	opts Options
}

func NewRouter(svc *calls.Service, opts Options) http.Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	r := &Router{svc: svc, opts: opts}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	mux.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("scamshield backend is running"))
	})

	mux.Get("/health", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"provider": &middleware.ProviderHealthChecker{Enabled: opts.ProviderEnabled},
	}))

	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Post("/process-call", r.wrap(r.handleProcessCall))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// wrap maps pipeline errors onto the response contract: validation failures
// are 400, provider quota 429, everything else 500. The body is always a
// JSON object with success=false and a human-readable message.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		status := http.StatusInternalServerError
		switch {
		case upload.IsValidationError(err):
			status = http.StatusBadRequest
		case errors.Is(err, analysis.ErrQuotaExceeded):
			status = http.StatusTooManyRequests
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(errorResponse{Success: false, Error: err.Error()})
	}
}

type processCallResponse struct {
	Success    bool             `json:"success"`
	Transcript string           `json:"transcript"`
	Analysis   analysis.Verdict `json:"analysis"`
}

// POST /process-call
// One multipart field named "audio". Validation runs before the payload is
// buffered so a bad upload never spends provider quota.
func (r *Router) handleProcessCall(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, r.opts.MaxUploadBytes+multipartOverhead)

	file, header, err := req.FormFile("audio")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return upload.ErrTooLarge
		}
		return upload.ErrNoFile
	}
	defer file.Close()

	audio := upload.Audio{
		OriginalName: middleware.SanitizeFilename(header.Filename),
		ContentType:  header.Header.Get("Content-Type"),
		SizeBytes:    header.Size,
	}
	if err := audio.Validate(r.opts.MaxUploadBytes); err != nil {
		return err
	}

	// Buffer to a collision-free temp file; concurrent requests each get
	// their own name.
	pattern := "call-" + uuid.New().String() + "-*" + middleware.SafeExtension(header.Filename)
	tmp, err := os.CreateTemp(r.opts.TempDir, pattern)
	if err != nil {
		return err
	}
	audio.Path = tmp.Name()
	// Single cleanup point for every exit path from here on.
	defer os.Remove(audio.Path)

	_, err = io.Copy(tmp, file)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	log.Printf("process-call file=%s size=%d type=%s", audio.OriginalName, audio.SizeBytes, audio.ContentType)

	result, err := r.svc.AnalyzeCall(req.Context(), audio)
	if err != nil {
		middleware.IncrementClassificationsFailed()
		return err
	}

	middleware.IncrementAnalyses()
	if result.Degraded {
		middleware.IncrementAnalysesDegraded()
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(processCallResponse{
		Success:    true,
		Transcript: result.Transcript,
		Analysis:   result.Verdict,
	})
}
