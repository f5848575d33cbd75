package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/boddenberg/ardesk-go/internal/domain"
	"github.com/boddenberg/ardesk-go/internal/service"

	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// pathID reads the {id} URL parameter.
func pathID(r *http.Request) (domain.ID, error) {
	return domain.ParseID(chi.URLParam(r, "id"))
}

// statusFor maps a controller error to the status of the rendered page.
// The page is rendered either way; the status only tells scripts and
// tests what happened.
func statusFor(err error) int {
	var validation *domain.ErrValidation
	var external *domain.ErrExternalService
	var network *domain.ErrNetwork
	var rejected *domain.ErrServerRejected

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &external), errors.As(err, &network), errors.As(err, &rejected):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Success notices travel across the post/redirect/get hop as a short code
// in the "aviso" query parameter. Unknown codes are ignored.
var notices = map[string]string{
	"transacao":   service.NoticeTransactionSaved,
	"recebimento": service.NoticeReceivableSettled,
}

// redirectAfterPost answers a successful form post with 303 to the page,
// so a browser refresh reloads the page instead of posting again.
func redirectAfterPost(w http.ResponseWriter, r *http.Request, page, notice string) {
	target := page
	if notice != "" {
		target += "?" + url.Values{"aviso": {notice}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// noticeFrom returns the alert carried by a redirect, if any.
func noticeFrom(r *http.Request) []string {
	if msg, ok := notices[r.URL.Query().Get("aviso")]; ok {
		return []string{msg}
	}
	return nil
}
