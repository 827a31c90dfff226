package app

import (
	"authsvc/internal/app/deps"
	"authsvc/internal/app/services"
	"authsvc/internal/core/domain/logging"
	loginwithemail "authsvc/internal/http/handlers/auth/log_in_with_email"
	openresetpasswordpage "authsvc/internal/http/handlers/auth/open_reset_password_page"
	resetpassword "authsvc/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "authsvc/internal/http/handlers/auth/send_password_reset_token"
	signupwithemail "authsvc/internal/http/handlers/auth/sign_up_with_email"
	"authsvc/internal/http/handlers/ping"
	authmiddleware "authsvc/internal/http/middleware"
	"fmt"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterOptions struct {
	AllowedOrigins []string
	SentryEnabled  bool
	Now            func() time.Time
}

func NewRouter(log logging.Logger, s *services.Services, options RouterOptions) http.Handler {
	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/signup", signupwithemail.New(s.SignUpWithEmail))
	authRouter.Method(http.MethodPost, "/login", loginwithemail.New(s.LogInWithEmail))
	authRouter.Method(
		http.MethodPost,
		"/forgot-password",
		sendpasswordresettoken.New(s.SendPasswordResetToken),
	)
	authRouter.Method(
		http.MethodGet,
		"/reset-password/{token}",
		openresetpasswordpage.New(s.CheckPasswordResetToken),
	)
	authRouter.Method(http.MethodPost, "/reset-password/{token}", resetpassword.New(s.ResetPassword))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(authmiddleware.RequestLogger(log))
	router.Use(middleware.Recoverer)
	if options.SentryEnabled {
		router.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}
	router.Use(authmiddleware.SecurityHeaders)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   options.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/api/auth", authRouter)
	router.Method(http.MethodGet, "/ping", ping.New(options.Now))

	return router
}

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	router := NewRouter(deps.Logger, s, RouterOptions{
		AllowedOrigins: deps.Config.AllowedOrigins,
		SentryEnabled:  deps.SentryEnabled,
		Now:            deps.Now,
	})

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler:      router,
		Addr:         address,
		ReadTimeout:  deps.Config.HTTPReadTimeout,
		WriteTimeout: deps.Config.HTTPWriteTimeout,
	}
}
