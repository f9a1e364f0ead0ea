package api

import (
	"net/http"

	"github.com/vytor/funzone/internal/errors"
	"github.com/vytor/funzone/internal/logger"
	"github.com/vytor/funzone/internal/models"
)

const (
	contactSentMessage   = "Email sent successfully!"
	contactFailedMessage = "Error sending email."
)

// handleSendContact relays the contact form. Responses keep the
// {"message": ...} shape the portfolio front end reads.
func (s *Server) handleSendContact(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var msg models.ContactMessage
	if err := decodeJSON(r, &msg); err != nil {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		return
	}

	if err := s.ContactService.Send(r.Context(), msg); err != nil {
		appErr := errors.As(err)
		if appErr.Status < 500 {
			log.Warn("contact message rejected: %v", appErr)
			writeJSON(w, r, appErr.Status, map[string]string{"message": appErr.Message})
			return
		}
		log.Error("contact message failed: %v", appErr)
		writeJSON(w, r, http.StatusInternalServerError, map[string]string{"message": contactFailedMessage})
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]string{"message": contactSentMessage})
}
