package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nguyentantai21042004/transcribe-web/internal/pipeline"
	"github.com/nguyentantai21042004/transcribe-web/internal/transcript"
)

var segmentMinuteChoices = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, "")
}

func (s *Server) renderIndex(w http.ResponseWriter, errMsg string) {
	data := struct {
		Minutes []int
		Error   string
	}{Minutes: segmentMinuteChoices, Error: errMsg}

	if err := indexTmpl.Execute(w, data); err != nil {
		s.logger.Error(context.Background(), "Render index: %v", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	res, ok := s.runPipeline(w, r)
	if !ok {
		return
	}

	if err := resultTmpl.Execute(w, res); err != nil {
		s.logger.Error(r.Context(), "Render result: %v", err)
	}
}

func (s *Server) handleTranscribeDocx(w http.ResponseWriter, r *http.Request) {
	res, ok := s.runPipeline(w, r)
	if !ok {
		return
	}

	tmp, err := os.CreateTemp(s.cfg.Paths.Temp, "transcript-*.docx")
	if err != nil {
		s.logger.Error(r.Context(), "Create docx temp file: %v", err)
		http.Error(w, "Failed to build document", http.StatusInternalServerError)
		return
	}
	docxPath := tmp.Name()
	tmp.Close()
	defer func() {
		if err := os.Remove(docxPath); err != nil {
			s.logger.Warn(r.Context(), "Failed to remove docx temp file %s: %v", docxPath, err)
		}
	}()

	if err := transcript.WriteDocx("Transcript", res.Fragments, docxPath); err != nil {
		s.logger.Error(r.Context(), "Write docx: %v", err)
		http.Error(w, "Failed to build document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", `attachment; filename="transcript.docx"`)
	http.ServeFile(w, r, docxPath)
}

// runPipeline parses the upload form, stores the file in a temp
// location for the duration of the request and runs the pipeline.
// It writes the error response itself and reports success via ok.
func (s *Server) runPipeline(w http.ResponseWriter, r *http.Request) (res *pipeline.Result, ok bool) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadMB<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, fmt.Sprintf("Failed to parse upload: %v", err), http.StatusBadRequest)
		return nil, false
	}

	file, header, err := r.FormFile("media")
	if err != nil {
		http.Error(w, "Missing 'media' file in form", http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".mp4"
	}
	tmp, err := os.CreateTemp(s.cfg.Paths.Temp, "upload-*"+ext)
	if err != nil {
		s.logger.Error(ctx, "Create upload temp file: %v", err)
		http.Error(w, "Failed to store upload", http.StatusInternalServerError)
		return nil, false
	}
	defer func() {
		if err := os.Remove(tmp.Name()); err != nil {
			s.logger.Warn(ctx, "Failed to remove upload temp file %s: %v", tmp.Name(), err)
		}
	}()

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		s.logger.Error(ctx, "Store upload: %v", err)
		http.Error(w, "Failed to store upload", http.StatusInternalServerError)
		return nil, false
	}
	if err := tmp.Close(); err != nil {
		s.logger.Error(ctx, "Close upload temp file: %v", err)
		http.Error(w, "Failed to store upload", http.StatusInternalServerError)
		return nil, false
	}

	req := pipeline.Request{
		InputPath:      tmp.Name(),
		KeyInput:       r.FormValue("key"),
		Condense:       r.FormValue("condense") != "",
		Segment:        r.FormValue("segment") != "",
		SegmentMinutes: 1,
		Progress: func(completed, total int) {
			s.logger.Info(ctx, "Progress %s: %d/%d segments", header.Filename, completed, total)
		},
	}
	if v := r.FormValue("segment_minutes"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes < 1 || minutes > 10 {
			http.Error(w, "Segment length must be between 1 and 10 minutes", http.StatusBadRequest)
			return nil, false
		}
		req.SegmentMinutes = minutes
	}

	result, err := s.pipeline.Run(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, pipeline.ErrInvalidToken), errors.Is(err, pipeline.ErrMissingKey):
			http.Error(w, err.Error(), http.StatusUnauthorized)
		default:
			s.logger.Error(ctx, "Pipeline run failed for %s: %v", header.Filename, err)
			http.Error(w, fmt.Sprintf("Transcription failed: %v", err), http.StatusInternalServerError)
		}
		return nil, false
	}

	return result, true
}
