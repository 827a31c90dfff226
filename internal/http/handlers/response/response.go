package response

import (
	"encoding/json"
	"net/http"
	"strings"
)

const (
	MsgServerError        = "Server Error"
	MsgInvalidRequestData = "invalid request data"
)

type msgResponse struct {
	Msg string `json:"msg"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type validationErrorResponse struct {
	Msg    string `json:"msg"`
	Errors error  `json:"errors"`
}

// RenderMsg renders {"msg": ...}, used by signup and login.
func RenderMsg(rw http.ResponseWriter, msg string, status int) {
	Render(rw, msgResponse{Msg: msg}, status)
}

// RenderMessage renders {"message": ...}, used by the password reset endpoints.
func RenderMessage(rw http.ResponseWriter, message string, status int) {
	Render(rw, messageResponse{Message: message}, status)
}

func RenderInvalidRequestData(rw http.ResponseWriter) {
	RenderMsg(rw, MsgInvalidRequestData, http.StatusBadRequest)
}

func RenderValidationError(rw http.ResponseWriter, err error) {
	Render(rw, validationErrorResponse{Msg: MsgInvalidRequestData, Errors: err}, http.StatusBadRequest)
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderMsg(rw, MsgServerError, http.StatusInternalServerError)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}

// WantsJSON reports whether the client explicitly asked for a JSON response.
func WantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
