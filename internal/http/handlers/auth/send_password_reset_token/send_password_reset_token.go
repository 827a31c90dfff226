package sendpasswordresettoken

import (
	c "authsvc/internal/core/domain/common"
	e "authsvc/internal/core/domain/errors"
	"authsvc/internal/core/domain/user"
	"authsvc/internal/core/services"
	service "authsvc/internal/core/services/send_password_reset_token"
	"authsvc/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const (
	MessageLinkSent     = "Password reset link sent to your email"
	MessageUserNotFound = "User not found"
	MessageLinkNotSent  = "Email could not be sent"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email string `json:"email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequestData(rw)
		return
	}
	// No account can have a malformed address.
	if err := input.Validate(); err != nil {
		response.RenderMessage(rw, MessageUserNotFound, http.StatusNotFound)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		service.Input{Email: c.NewEmail(input.Email)},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderMessage(rw, MessageUserNotFound, http.StatusNotFound)
		case errors.Is(err, user.ErrPasswordResetLinkNotSent):
			response.RenderMessage(rw, MessageLinkNotSent, http.StatusInternalServerError)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.RenderMessage(rw, MessageLinkSent, http.StatusOK)
}
