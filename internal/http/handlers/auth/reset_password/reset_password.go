package resetpassword

import (
	e "authsvc/internal/core/domain/errors"
	"authsvc/internal/core/domain/user"
	"authsvc/internal/core/services"
	resetpassword "authsvc/internal/core/services/reset_password"
	"authsvc/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	MessagePasswordChanged = "Password changed successfully"
	MessageInvalidToken    = "Invalid or expired token"
)

type Handler struct {
	service services.Service[resetpassword.Input, resetpassword.Result]
}

func New(
	service services.Service[resetpassword.Input, resetpassword.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i *Input) FromForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	i.Password = r.PostForm.Get("password")
	i.ConfirmPassword = r.PostForm.Get("confirmPassword")
	return nil
}

// FromRequest reads a JSON body when the request declares one, and form fields otherwise.
func (i *Input) FromRequest(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		return i.FromJSON(r.Body)
	}
	return i.FromForm(r)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Password, validation.Length(0, 512)),
		validation.Field(&i.ConfirmPassword, validation.Length(0, 512)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	action := r.URL.EscapedPath()
	input := Input{}
	if err := input.FromRequest(r); err != nil {
		response.RenderPage(rw, r, response.Page{
			Kind:    response.PageResetError,
			Message: response.MsgInvalidRequestData,
			Action:  action,
		}, http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderPage(rw, r, response.Page{
			Kind:    response.PageResetError,
			Message: err.Error(),
			Action:  action,
		}, http.StatusBadRequest)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		resetpassword.Input{
			Token:           user.PasswordResetToken(chi.URLParam(r, "token")),
			NewPassword:     user.RawPassword(input.Password),
			ConfirmPassword: user.RawPassword(input.ConfirmPassword),
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrPasswordRequired),
			errors.Is(err, user.ErrPasswordMismatch),
			errors.Is(err, user.ErrPasswordTooShort):
			response.RenderPage(rw, r, response.Page{
				Kind:    response.PageResetError,
				Message: response.PasswordErrorMessage(err),
				Action:  action,
			}, http.StatusBadRequest)
		case errors.Is(err, user.ErrInvalidPasswordResetToken):
			response.RenderPage(rw, r, response.Page{
				Kind:    response.PageResetInvalid,
				Message: MessageInvalidToken,
			}, http.StatusBadRequest)
		default:
			response.RenderPage(rw, r, response.Page{
				Kind:    response.PageServerError,
				Message: response.MsgServerError,
			}, http.StatusInternalServerError)
		}
		return
	}

	response.RenderPage(rw, r, response.Page{
		Kind:    response.PageResetSuccess,
		Message: MessagePasswordChanged,
	}, http.StatusOK)
}
