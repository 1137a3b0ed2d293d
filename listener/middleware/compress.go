package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// minCompressSize is the smallest body, in bytes, worth compressing.
const minCompressSize = 512

var gzipWriterPool = sync.Pool{ //nolint:gochecknoglobals
	New: func() any {
		return gzip.NewWriter(io.Discard)
	},
}

// gzipResponseWriter buffers the body until it is large enough to decide on
// compression, then commits headers and writes through.
type gzipResponseWriter struct {
	http.ResponseWriter

	gw         *gzip.Writer
	buf        []byte
	statusCode int
	decided    bool
	plain      bool
	commitErr  error
}

func (w *gzipResponseWriter) WriteHeader(code int) {
	if w.statusCode == 0 {
		w.statusCode = code
	}
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if w.commitErr != nil {
		return 0, w.commitErr
	}

	if w.decided {
		if w.plain {
			return w.ResponseWriter.Write(b) //nolint:wrapcheck
		}

		return w.gw.Write(b) //nolint:wrapcheck
	}

	w.buf = append(w.buf, b...)

	if len(w.buf) >= minCompressSize {
		w.commit()

		if w.commitErr != nil {
			return 0, w.commitErr
		}
	}

	return len(b), nil
}

// Flush commits buffered data and flushes both the gzip stream and the
// underlying writer.
func (w *gzipResponseWriter) Flush() {
	w.commit()

	if !w.plain {
		_ = w.gw.Flush()
	}

	_ = http.NewResponseController(w.ResponseWriter).Flush()
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController.
func (w *gzipResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *gzipResponseWriter) skipCompression() bool {
	switch {
	case len(w.buf) < minCompressSize:
		return true
	case w.ResponseWriter.Header().Get("Content-Encoding") != "":
		return true
	case w.statusCode == http.StatusNoContent || w.statusCode == http.StatusNotModified:
		return true
	default:
		return w.statusCode < http.StatusOK
	}
}

func (w *gzipResponseWriter) commit() {
	if w.decided {
		return
	}

	if w.statusCode == 0 {
		w.statusCode = http.StatusOK
	}

	w.decided = true
	w.plain = w.skipCompression()

	if !w.plain {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", http.DetectContentType(w.buf))
		}

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length")
	}

	w.ResponseWriter.WriteHeader(w.statusCode)

	if len(w.buf) == 0 {
		return
	}

	if w.plain {
		_, w.commitErr = w.ResponseWriter.Write(w.buf)
	} else {
		_, w.commitErr = w.gw.Write(w.buf)
	}

	w.buf = nil
}

func (w *gzipResponseWriter) close() {
	w.commit()

	if !w.plain {
		_ = w.gw.Close()
	}
}

// acceptsGzip reports whether an Accept-Encoding header allows gzip. Tokens
// match case-insensitively and a zero quality value disables gzip.
func acceptsGzip(header string) bool {
	for part := range strings.SplitSeq(header, ",") {
		encoding, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(encoding), "gzip") {
			continue
		}

		for param := range strings.SplitSeq(params, ";") {
			key, val, _ := strings.Cut(strings.TrimSpace(param), "=")
			if !strings.EqualFold(strings.TrimSpace(key), "q") {
				continue
			}

			if quality, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil && quality == 0 {
				return false
			}
		}

		return true
	}

	return false
}

// Compress returns a middleware that gzips response bodies of at least
// minCompressSize bytes for clients accepting gzip. Anything else, including
// responses with a Content-Encoding already set, passes through unchanged.
func Compress() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept-Encoding")

			if !acceptsGzip(r.Header.Get("Accept-Encoding")) {
				next.ServeHTTP(w, r)

				return
			}

			gz, ok := gzipWriterPool.Get().(*gzip.Writer)
			if !ok {
				next.ServeHTTP(w, r)

				return
			}

			gz.Reset(w)

			grw := &gzipResponseWriter{ResponseWriter: w, gw: gz} //nolint:exhaustruct

			completed := false

			defer func() {
				if completed {
					grw.close()
				} else if grw.decided && !grw.plain {
					_ = gz.Close()
				}

				gz.Reset(io.Discard)
				gzipWriterPool.Put(gz)
			}()

			next.ServeHTTP(grw, r)

			completed = true
		})
	}
}
