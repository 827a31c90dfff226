package openresetpasswordpage

import (
	e "authsvc/internal/core/domain/errors"
	"authsvc/internal/core/domain/user"
	"authsvc/internal/core/services"
	service "authsvc/internal/core/services/check_password_reset_token"
	"authsvc/internal/http/handlers/response"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

const MessageInvalidLink = "This password reset link is invalid or has expired"

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	_, err := h.service.Run(
		r.Context(),
		service.Input{Token: user.PasswordResetToken(chi.URLParam(r, "token"))},
	)
	if errors.Is(err, user.ErrInvalidPasswordResetToken) {
		response.RenderPage(rw, r, response.Page{
			Kind:    response.PageResetInvalid,
			Message: MessageInvalidLink,
		}, http.StatusOK)
		return
	}
	if err != nil {
		response.RenderPage(rw, r, response.Page{
			Kind:    response.PageServerError,
			Message: response.MsgServerError,
		}, http.StatusInternalServerError)
		return
	}

	response.RenderPage(rw, r, response.Page{
		Kind:   response.PageResetForm,
		Action: r.URL.EscapedPath(),
	}, http.StatusOK)
}
