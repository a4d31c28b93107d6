package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/minhvuongle/yenvang-backend/api/responses"
	"github.com/minhvuongle/yenvang-backend/api/validators"
	"github.com/minhvuongle/yenvang-backend/internal/notify"
	"github.com/minhvuongle/yenvang-backend/pkg/logger"
)

type consultationRequest struct {
	Name    string  `json:"name" validate:"required,min=2"`
	Phone   string  `json:"phone" validate:"required,min=8"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Subject string  `json:"subject" validate:"required"`
	Message string  `json:"message" validate:"required"`
}

type consultationNotifier interface {
	NotifyConsultation(ctx context.Context, req notify.ConsultationRequest) bool
}

// CreateConsultation accepts a callback request and forwards it to the
// consultation chat. The request is accepted even when delivery fails; the
// response reports whether it went out.
func CreateConsultation(notifier consultationNotifier, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload consultationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		delivered := notifier.NotifyConsultation(r.Context(), notify.ConsultationRequest{
			Name:      payload.Name,
			Phone:     payload.Phone,
			Email:     payload.Email,
			Subject:   payload.Subject,
			Message:   payload.Message,
			CreatedAt: time.Now(),
		})

		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]bool{"delivered": delivered})
	}
}
