package api

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/arcvista/backend/errs"
	"github.com/arcvista/backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	mailer    *services.Mailer
}

// newContactHandler wires the contact endpoints. mailer may be nil when the
// mail configuration is absent; the endpoints then answer 500 instead of
// taking the whole process down at boot.
func newContactHandler(mailer *services.Mailer) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		mailer:    mailer,
	}
}

type contactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Subject  string `json:"subject"`
	Location string `json:"location"`
	Message  string `json:"message"`
}

func (c contactRequest) missingFields() []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", c.Name},
		{"email", c.Email},
		{"phone", c.Phone},
		{"subject", c.Subject},
		{"message", c.Message},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func (h contactHandler) sendContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.dispatch(w, r, false)
	}
}

func (h contactHandler) sendEnquiry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.dispatch(w, r, true)
	}
}

func (h contactHandler) dispatch(w http.ResponseWriter, r *http.Request, enquiry bool) {
	var body contactRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.responder.WriteError(w, errs.Malformed("request body"))
		return
	}

	if missing := body.missingFields(); len(missing) > 0 {
		h.responder.WriteError(w, errs.NewBadRequestError("Missing required fields: "+strings.Join(missing, ", ")))
		return
	}

	if h.mailer == nil {
		h.responder.WriteError(w, errs.NewInternalError("contact mail is not configured"))
		return
	}

	subject := fmt.Sprintf("New Contact Inquiry from %s", body.Name)
	if enquiry {
		subject = fmt.Sprintf("New Enquiry from %s", body.Name)
	}

	if err := h.mailer.Send(r.Context(), subject, renderContactEmail(body, enquiry), body.Email); err != nil {
		h.logger.Error().Err(err).Msg("Failed to send contact email")
		h.responder.WriteError(w, errs.NewInternalError("Failed to send email"))
		return
	}

	h.responder.WriteMessage(w, http.StatusOK, "Email sent successfully")
}

func renderContactEmail(c contactRequest, enquiry bool) string {
	heading := "New Inquiry"
	if enquiry {
		heading = "New Enquiry"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h3>%s</h3>", heading)
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>", html.EscapeString(c.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>", html.EscapeString(c.Email))
	fmt.Fprintf(&b, "<p><strong>Phone:</strong> %s</p>", html.EscapeString(c.Phone))
	fmt.Fprintf(&b, "<p><strong>Subject:</strong> %s</p>", html.EscapeString(c.Subject))
	if enquiry {
		location := c.Location
		if location == "" {
			location = "Not Provided"
		}
		fmt.Fprintf(&b, "<p><strong>Location:</strong> %s</p>", html.EscapeString(location))
	}
	fmt.Fprintf(&b, "<p><strong>Message:</strong><br>%s</p>", html.EscapeString(c.Message))
	return b.String()
}
