package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/mcoot/findingfriends/internal/services/session"
)

// qrSize is the PNG edge length in pixels
const qrSize = 256

// QRHandler renders QR codes linking to session pages
type QRHandler struct {
	controller *session.Controller
	baseURL    string
	logger     *slog.Logger
}

// NewQRHandler creates a new QRHandler. An empty baseURL derives the link
// from the incoming request.
func NewQRHandler(controller *session.Controller, baseURL string, logger *slog.Logger) *QRHandler {
	return &QRHandler{
		controller: controller,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

// Code writes a PNG QR code for the session page
func (h *QRHandler) Code(w http.ResponseWriter, r *http.Request) {
	date, err := resolveDate(h.controller, mux.Vars(r)["date"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	png, err := qrcode.Encode(h.sessionURL(r, string(date)), qrcode.Medium, qrSize)
	if err != nil {
		h.logger.Error("failed to encode qr code", slog.Any("error", err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(png)
}

// sessionURL returns the absolute link encoded in the QR code
func (h *QRHandler) sessionURL(r *http.Request, date string) string {
	base := h.baseURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}
	return base + "/sessions/" + date
}
