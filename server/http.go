package server

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/fieldnation/devportal/logging"
)

const (
	IdleTimeout       = time.Minute
	ReadHeaderTimeout = 10 * time.Second
	ShutdownDeadline  = 10 * time.Second
)

// HTTPServer serves the preview routes until its context is done.
type HTTPServer struct {
	ctx      context.Context
	handler  http.Handler
	listener net.Listener
	log      *logrus.Entry
	mu       sync.Mutex
	srv      *http.Server
	uidFn    func() string
}

func New(ctx context.Context, logger *logrus.Entry, addr string, sources *Sources) *HTTPServer {
	httpSrv := &HTTPServer{
		ctx:     ctx,
		handler: NewRouter(sources),
		log:     logger,
		uidFn: func() string {
			return xid.New().String()
		},
	}

	httpSrv.srv = &http.Server{
		Addr:              addr,
		Handler:           httpSrv,
		IdleTimeout:       IdleTimeout,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}
	return httpSrv
}

// Addr returns the address of the listener once Listen succeeded.
func (s *HTTPServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Listen binds the configured address and serves in the background.
func (s *HTTPServer) Listen() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.log.WithField("addr", ln.Addr().String()).Info("devportal preview is serving")

	go func() {
		if serveErr := s.srv.Serve(ln); serveErr != nil && serveErr != http.ErrServerClosed {
			s.log.WithError(serveErr).Error()
		}
	}()
	return nil
}

// Wait blocks until the context is done and shuts the server down.
func (s *HTTPServer) Wait() error {
	<-s.ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownDeadline)
	defer cancel()
	s.log.WithField("deadline", ShutdownDeadline.String()).Warn("shutting down")
	return s.srv.Shutdown(ctx)
}

func (s *HTTPServer) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	uid := s.uidFn()
	rw.Header().Set("X-Request-Id", uid)

	start := time.Now()
	sr := NewStatusReader(rw)
	s.handler.ServeHTTP(sr, req)

	s.log.WithFields(logrus.Fields{
		"method": req.Method,
		"path":   req.URL.Path,
		"status": sr.Status(),
		"timing": logging.RoundMS(time.Since(start)),
		"uid":    uid,
	}).Debug()
}
