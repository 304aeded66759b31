// Package echoweb serves the student-facing web portal: server-rendered pages
// over the remote spwapi backend.
package echoweb

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/catiga/languagebridge/core"
	"github.com/catiga/languagebridge/spwapi"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool
		API            *spwapi.Client
		Logger         core.Logger
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	debug := core.Conf.Debug

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.Renderer = newRenderer()
	s.app.Debug = debug

	validate := validator.New()
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	deps := &pageDeps{
		api:        s.opts.API,
		sess:       newSessionManager(core.Conf.SecretKey),
		translator: translator,
		logger:     s.opts.Logger,
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(deps, s.signalShutdown)

	registerStatic(s.app)
	registerHomePages(s.app, deps)
	registerTeacherPages(s.app, deps)
	registerAccountPages(s.app, deps)
	registerCoursePages(s.app, deps)

	// everything under /profile sits behind the route gate
	pg := s.app.Group("/profile", requireToken)
	registerProfilePages(pg, deps)
	registerMemberPages(pg, deps)
	registerBookingPages(pg, deps)
	registerTimetablePages(pg, deps)
	registerClassroomPages(pg, deps)
}

func (s *server) Start() {
	go func() {
		s.app.Logger.Fatal(s.app.Start(s.opts.Addr))
	}()

	signal.Notify(s.shutdown, syscall.SIGINT, syscall.SIGTERM)
	<-s.shutdown

	ctx, cancel := context.WithTimeout(context.Background(), core.Conf.Server.ShutdownTimeout)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		s.app.Logger.Errorf("graceful shutdown failed: %v", err)
		_ = s.app.Close()
	}
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

// signalShutdown triggers a graceful shutdown from the error handler.
func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
