package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/community-order-filter/internal/tabular"
)

// Multipart field names and the download name.
const (
	fieldOrders     = "file"
	fieldDirectory  = "custData"
	outputFilename  = "filtered.xlsx"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const msgMissingPart = "Both files must be uploaded"

var errMissingPart = errors.New("missing upload part")

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)

	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			http.Error(w, fmt.Sprintf("Upload exceeds %d bytes", s.opts.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, msgMissingPart, http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	orders, err := readPart(r, fieldOrders)
	if err != nil {
		s.writeReadError(w, err)
		return
	}
	dir, err := readPart(r, fieldDirectory)
	if err != nil {
		s.writeReadError(w, err)
		return
	}

	res := s.conv.Run(orders, dir)
	if !res.Success {
		http.Error(w, "Error filtering file: "+res.Error.Error(), statusFor(res.Error))
		return
	}

	if s.opts.Archive != nil {
		if path, err := s.opts.Archive.ArchiveBytes(res.Output, res.RunID); err != nil {
			s.log.Warn("[%s] Failed to archive output: %v", res.RunID, err)
		} else {
			s.log.Debug("[%s] Archived output to %s", res.RunID, path)
		}
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+outputFilename+`"`)
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("X-Run-ID", res.RunID)
	if _, err := w.Write(res.Output); err != nil {
		s.log.Warn("[%s] Failed to send response: %v", res.RunID, err)
	}
}

// readPart returns the bytes of one uploaded file, or errMissingPart.
func readPart(r *http.Request, field string) ([]byte, error) {
	f, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, errMissingPart
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", field, err)
	}
	if len(data) == 0 {
		return nil, errMissingPart
	}
	return data, nil
}

func (s *Server) writeReadError(w http.ResponseWriter, err error) {
	if errors.Is(err, errMissingPart) {
		http.Error(w, msgMissingPart, http.StatusBadRequest)
		return
	}
	s.log.Error("Upload read failed: %v", err)
	http.Error(w, "Error filtering file: "+err.Error(), http.StatusInternalServerError)
}

// statusFor maps a run error to an HTTP status.
func statusFor(err error) int {
	var missing *tabular.MissingSheetError
	switch {
	case errors.As(err, &missing), errors.Is(err, tabular.ErrUnsupportedFormat):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// spaHandler serves files from dir and falls back to index.html for
// unknown paths so client-side routes resolve.
type spaHandler struct {
	dir string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rel := filepath.FromSlash(strings.TrimPrefix(filepath.ToSlash(filepath.Clean("/"+r.URL.Path)), "/"))
	path := filepath.Join(h.dir, rel)

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
}
