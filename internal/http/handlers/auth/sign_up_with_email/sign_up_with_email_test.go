package signupwithemail

import (
	c "authsvc/internal/core/domain/common"
	"authsvc/internal/core/domain/user"
	service "authsvc/internal/core/services/sign_up_with_email"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	return result, nil
}

func TestSignUpWithEmailHandler(t *testing.T) {
	validBody := `{"username": "john", "email": "John@Example.com", "password": "secret1", "confirmPassword": "secret1"}`
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
		expectedBody   string
		expectedInput  *service.Input
	}{
		{
			id:             "success",
			body:           validBody,
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"msg":"User registered successfully"}`,
			expectedInput: &service.Input{
				Username:        "john",
				Email:           c.Email("john@example.com"),
				Password:        user.RawPassword("secret1"),
				ConfirmPassword: user.RawPassword("secret1"),
			},
		},
		{
			id:             "malformed body",
			body:           `{"username": `,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"msg":"invalid request data"}`,
		},
		{
			id:             "invalid email",
			body:           `{"username": "john", "email": "john", "password": "secret1", "confirmPassword": "secret1"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "missing username",
			body:           `{"email": "john@example.com", "password": "secret1", "confirmPassword": "secret1"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "duplicate email",
			body:           validBody,
			serviceErr:     user.ErrEmailAlreadyExists,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"msg":"User already exists"}`,
		},
		{
			id:             "password mismatch",
			body:           validBody,
			serviceErr:     user.ErrPasswordMismatch,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"msg":"Passwords do not match"}`,
		},
		{
			id:             "password too short",
			body:           validBody,
			serviceErr:     user.ErrPasswordTooShort,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"msg":"Password must be at least 6 characters"}`,
		},
		{
			id:             "store error",
			body:           validBody,
			serviceErr:     fmt.Errorf("connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"msg":"Server Error"}`,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(testcase.body))
			stub := &stubService{err: testcase.serviceErr}
			rr := httptest.NewRecorder()
			handler := New(stub)
			handler.ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			if testcase.expectedBody != "" {
				assert.JSONEq(t, testcase.expectedBody, rr.Body.String())
			}
			if testcase.expectedInput != nil {
				assert.Equal(t, testcase.expectedInput, stub.input)
			}
			if testcase.expectedStatus == http.StatusBadRequest && testcase.serviceErr == nil {
				assert.Nil(t, stub.input)
			}
		})
	}
}
