package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/waseemnasir2k26/contact-extractor/internal/jobstore"
	"github.com/waseemnasir2k26/contact-extractor/internal/model"
	"github.com/waseemnasir2k26/contact-extractor/internal/pipeline"
	"github.com/waseemnasir2k26/contact-extractor/internal/report"
	"github.com/waseemnasir2k26/contact-extractor/internal/target"
)

// batchDefaultMaxPages is the page cap of batch crawls that do not set one.
const batchDefaultMaxPages = 5

// jobStoreTimeout bounds the final job update of an async crawl.
const jobStoreTimeout = 5 * time.Second

// extractRequest is the body of /extract, /extract/async and
// /extract/export. Timeout is in seconds. use_dynamic is accepted as an
// alias of render.
type extractRequest struct {
	URL        string `json:"url"`
	MaxPages   int    `json:"max_pages"`
	Timeout    int    `json:"timeout"`
	Render     bool   `json:"render"`
	UseDynamic bool   `json:"use_dynamic"`
}

func (r extractRequest) crawlRequest() model.CrawlRequest {
	return model.CrawlRequest{
		URL:        r.URL,
		MaxPages:   r.MaxPages,
		Timeout:    time.Duration(r.Timeout) * time.Second,
		RenderMode: r.Render || r.UseDynamic,
	}
}

// batchRequest is the body of /batch-extract.
type batchRequest struct {
	URLs     []string `json:"urls"`
	MaxPages int      `json:"max_pages"`
	Timeout  int      `json:"timeout"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

type jobResponse struct {
	JobID   string          `json:"job_id"`
	Status  jobstore.Status `json:"status"`
	Message string          `json:"message"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Version:   s.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var body extractRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeDecodeError(w, err)
		return
	}

	result := s.run(r.Context(), body.crawlRequest())
	s.writeJSON(w, resultStatus(result), result)
}

func (s *Server) handleExtractAsync(w http.ResponseWriter, r *http.Request) {
	var body extractRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeDecodeError(w, err)
		return
	}

	req := body.crawlRequest()
	canonical, err := target.Normalize(req.URL)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, model.FailedResult(req.URL, err))
		return
	}
	req.URL = canonical

	job := jobstore.NewJob(canonical)
	if err := s.store.Put(r.Context(), job); err != nil {
		s.logger.Error("failed to store job", "job_id", job.ID, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	s.jobs.Add(1)
	s.metrics.jobsInFlight.Inc()
	go s.runJob(job, req)

	s.writeJSON(w, http.StatusAccepted, jobResponse{
		JobID:   job.ID,
		Status:  job.Status,
		Message: fmt.Sprintf("Extraction job started. Poll /extract/status/%s for results.", job.ID),
	})
}

// runJob crawls in the background and stores the outcome on job.
func (s *Server) runJob(job *jobstore.Job, req model.CrawlRequest) {
	defer s.jobs.Done()
	defer s.metrics.jobsInFlight.Dec()

	job.Finish(s.run(s.baseCtx, req))

	ctx, cancel := context.WithTimeout(context.WithoutCancel(s.baseCtx), jobStoreTimeout)
	defer cancel()
	if err := s.store.Put(ctx, job); err != nil {
		s.logger.Error("failed to store job result", "job_id", job.ID, "error", err)
		return
	}
	s.logger.Info("async job finished", "job_id", job.ID, "status", job.Status)
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "jobID")

	job, err := s.store.Get(r.Context(), id)
	if errors.Is(err, jobstore.ErrJobNotFound) {
		s.writeError(w, http.StatusNotFound, "Job not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to load job", "job_id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load job")
		return
	}
	s.writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleBatchExtract(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBatch(r)
	if err != nil {
		s.writeDecodeError(w, err)
		return
	}
	switch {
	case len(body.URLs) == 0:
		s.writeError(w, http.StatusBadRequest, ErrNoURLs.Error())
		return
	case len(body.URLs) > model.BatchMaxURLs:
		s.writeError(w, http.StatusBadRequest, ErrTooManyURLs.Error())
		return
	}

	maxPages := body.MaxPages
	if maxPages <= 0 {
		maxPages = batchDefaultMaxPages
	}
	reqs := make([]model.CrawlRequest, len(body.URLs))
	for i, u := range body.URLs {
		reqs[i] = model.CrawlRequest{
			URL:      u,
			MaxPages: maxPages,
			Timeout:  time.Duration(body.Timeout) * time.Second,
		}
	}

	bp := pipeline.NewBatchProcessor(
		func() *pipeline.Pipeline {
			return pipeline.NewContactPipeline(s.observed(),
				pipeline.WithLogger(s.logger),
				pipeline.WithLimits(model.BatchMaxPages, model.BatchMaxTimeout),
			)
		},
		pipeline.WithConcurrency(s.concurrency),
		pipeline.WithBatchLogger(s.logger),
	)

	results, err := bp.ProcessBatch(r.Context(), reqs)
	if err != nil {
		s.logger.Warn("batch interrupted", "error", err)
	}
	s.writeJSON(w, http.StatusOK, model.NewBatchResult(body.URLs, results))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var body extractRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeDecodeError(w, err)
		return
	}

	result := s.run(r.Context(), body.crawlRequest())
	export := model.NewExport(result)
	status := resultStatus(result)

	if r.URL.Query().Get("format") != string(report.FormatCSV) {
		s.writeJSON(w, status, export)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="contacts.csv"`)
	w.WriteHeader(status)
	if _, err := report.NewCSVWriter(w).WriteExport(export); err != nil {
		s.logger.Warn("failed to write csv export", "error", err)
	}
}

// run crawls req through a fresh validate-and-crawl pipeline.
func (s *Server) run(ctx context.Context, req model.CrawlRequest) *model.AggregatedResult {
	p := pipeline.NewContactPipeline(s.observed(), pipeline.WithLogger(s.logger))
	return p.Run(ctx, req)
}

func (s *Server) observed() pipeline.Crawler {
	return &observedCrawler{next: s.crawler, metrics: s.metrics}
}

// observedCrawler records crawl metrics around another Crawler.
type observedCrawler struct {
	next    pipeline.Crawler
	metrics *Metrics
}

func (c *observedCrawler) Crawl(ctx context.Context, req model.CrawlRequest) *model.AggregatedResult {
	start := time.Now()
	result := c.next.Crawl(ctx, req)
	c.metrics.ObserveCrawl(result, time.Since(start))
	return result
}

// resultStatus maps a result to 200, or 400 when the crawl could not start.
func resultStatus(r *model.AggregatedResult) int {
	if r.Success {
		return http.StatusOK
	}
	return http.StatusBadRequest
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ErrBodyTooLarge
		}
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return nil
}

// decodeBatch accepts either a batchRequest object or a bare JSON array
// of URLs with max_pages and timeout given as query parameters.
func decodeBatch(r *http.Request) (batchRequest, error) {
	var raw json.RawMessage
	if err := decodeJSON(r, &raw); err != nil {
		return batchRequest{}, err
	}

	var body batchRequest
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &body.URLs); err != nil {
			return batchRequest{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		q := r.URL.Query()
		var err error
		if body.MaxPages, err = queryInt(q.Get("max_pages")); err != nil {
			return batchRequest{}, err
		}
		if body.Timeout, err = queryInt(q.Get("timeout")); err != nil {
			return batchRequest{}, err
		}
		return body, nil
	}

	if err := json.Unmarshal(raw, &body); err != nil {
		return batchRequest{}, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return body, nil
}

func queryInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return n, nil
}

func (s *Server) writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrBodyTooLarge) {
		s.writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	s.writeError(w, http.StatusBadRequest, err.Error())
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Success: false, Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("failed to write response", "error", err)
	}
}
