package httpserver

import (
	"log/slog"
	"net/http"
	"time"
)

// New builds the HTTP server for the marking kiosk. Requests are small
// JSON bodies, so the read and write deadlines stay tight; idle keeps the
// tablet's keep-alive connection open between scans.
func New(addr string, handler http.Handler, log *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelError),
	}
}
