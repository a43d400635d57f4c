package web

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reinbox/csvclean/internal/cleaner"
	"github.com/reinbox/csvclean/internal/logging"
)

// previewRows is how many cleaned rows the preview endpoint returns.
const previewRows = 50

const unreadableMessage = "could not read CSV; try re-exporting or saving with UTF-8 encoding"

// handleIndex serves the embedded upload page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := staticFiles.ReadFile("static/index.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "page unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// handleClean runs the full pipeline on an uploaded file and responds
// with the cleaned CSV as a download. Diagnostics travel in headers and
// the server log; the body is the file itself.
func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	data, opts, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	runID := uuid.New().String()
	logger := logging.WithFields(r.Context(), "run_id", runID, "policy", opts.Policy.String())

	start := time.Now()
	res, err := cleaner.Run(data, opts)
	if err != nil {
		if errors.Is(err, cleaner.ErrUnreadableFile) {
			writeError(w, http.StatusUnprocessableEntity, unreadableMessage)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logStages(logger, res, time.Since(start))

	w.Header().Set("X-Run-ID", runID)
	if res.SchemaMismatch {
		w.Header().Set("X-Schema-Warning", "no contact_N_email columns found")
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, cleaner.DefaultFilename))

	if err := cleaner.WriteCSV(w, res.Table); err != nil {
		// Headers are gone; log and give up on this response.
		logger.Error("write csv response", "error", err)
	}
}

// handlePreview runs the same pipeline but responds with JSON
// diagnostics and the first rows of the cleaned table, for display
// before the user commits to a download.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	data, opts, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	runID := uuid.New().String()
	logger := logging.WithFields(r.Context(), "run_id", runID, "policy", opts.Policy.String())

	start := time.Now()
	res, err := cleaner.Run(data, opts)
	if err != nil {
		if errors.Is(err, cleaner.ErrUnreadableFile) {
			writeError(w, http.StatusUnprocessableEntity, unreadableMessage)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logStages(logger, res, time.Since(start))

	writeJSON(w, toPreviewResponse(runID, res))
}

// readUpload pulls the file bytes and options out of a multipart form.
// On failure it writes the error response and returns ok=false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, cleaner.Options, bool) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid form")
		return nil, cleaner.Options{}, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return nil, cleaner.Options{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return nil, cleaner.Options{}, false
	}

	opts, err := optionsFromForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, cleaner.Options{}, false
	}

	return data, opts, true
}

// optionsFromForm maps form fields onto pipeline options. Boolean
// fields default to true when absent, matching the page's defaults;
// clients that want a stage off must send an explicit false.
func optionsFromForm(r *http.Request) (cleaner.Options, error) {
	opts := cleaner.DefaultOptions()

	policy, err := cleaner.ParsePolicy(r.FormValue("policy"))
	if err != nil {
		return opts, err
	}
	opts.Policy = policy

	opts.Trim = formBool(r, "trim", opts.Trim)
	opts.DropMissingEmail = formBool(r, "drop_no_email", opts.DropMissingEmail)
	opts.FilterValidEmails = formBool(r, "filter_valid", opts.FilterValidEmails)
	opts.DedupeByEmail = formBool(r, "dedupe", opts.DedupeByEmail)

	return opts, nil
}

func formBool(r *http.Request, name string, def bool) bool {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return def
	}
	if v == "on" { // raw HTML checkbox
		return true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

type previewResponse struct {
	RunID          string               `json:"run_id"`
	Slots          []int                `json:"slots"`
	SchemaMismatch bool                 `json:"schema_mismatch"`
	Stages         []cleaner.StageCount `json:"stages"`
	Rows           int                  `json:"rows"`
	Columns        []string             `json:"columns"`
	Preview        [][]string           `json:"preview"`
}

func toPreviewResponse(runID string, res *cleaner.Result) previewResponse {
	resp := previewResponse{
		RunID:          runID,
		Slots:          res.Slots,
		SchemaMismatch: res.SchemaMismatch,
		Stages:         res.Stages,
		Rows:           len(res.Table.Rows),
		Columns:        res.Table.Columns,
	}

	n := len(res.Table.Rows)
	if n > previewRows {
		n = previewRows
	}
	resp.Preview = make([][]string, 0, n)
	for _, row := range res.Table.Rows[:n] {
		rec := make([]string, len(res.Table.Columns))
		for i, col := range res.Table.Columns {
			if v := row[col]; v.Valid {
				rec[i] = v.String
			}
		}
		resp.Preview = append(resp.Preview, rec)
	}

	return resp
}

func logStages(logger *slog.Logger, res *cleaner.Result, elapsed time.Duration) {
	if res.SchemaMismatch {
		logger.Warn("no contact slots detected; ran in pass-through mode")
	}
	for _, sc := range res.Stages {
		logger.Info("stage complete", "stage", sc.Stage, "rows_before", sc.Before, "rows_after", sc.After)
	}
	logger.Info("clean finished",
		"slots", len(res.Slots),
		"rows", len(res.Table.Rows),
		"duration", elapsed,
	)
}
