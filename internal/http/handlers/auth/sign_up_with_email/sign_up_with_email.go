package signupwithemail

import (
	c "authsvc/internal/core/domain/common"
	e "authsvc/internal/core/domain/errors"
	"authsvc/internal/core/domain/user"
	"authsvc/internal/core/services"
	signupwithemail "authsvc/internal/core/services/sign_up_with_email"
	"authsvc/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const MsgUserRegistered = "User registered successfully"

type Handler struct {
	service services.Service[signupwithemail.Input, signupwithemail.Result]
}

func New(
	service services.Service[signupwithemail.Input, signupwithemail.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Username, validation.Required, validation.Length(0, 256)),
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
		validation.Field(&i.Password, validation.Length(0, 512)),
		validation.Field(&i.ConfirmPassword, validation.Length(0, 512)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderInvalidRequestData(rw)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		signupwithemail.Input{
			Username:        input.Username,
			Email:           c.NewEmail(input.Email),
			Password:        user.RawPassword(input.Password),
			ConfirmPassword: user.RawPassword(input.ConfirmPassword),
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailAlreadyExists):
			response.RenderMsg(rw, "User already exists", http.StatusBadRequest)
		case errors.Is(err, user.ErrPasswordRequired),
			errors.Is(err, user.ErrPasswordMismatch),
			errors.Is(err, user.ErrPasswordTooShort):
			response.RenderMsg(rw, response.PasswordErrorMessage(err), http.StatusBadRequest)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.RenderMsg(rw, MsgUserRegistered, http.StatusCreated)
}
