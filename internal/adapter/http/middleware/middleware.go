package middleware

import (
	"net/http"

	"github.com/Temutjin2k/fitness-connect/pkg/logger"
)

type Middleware struct {
	service string
	log     logger.Logger
}

func NewMiddleware(service string, log logger.Logger) *Middleware {
	return &Middleware{
		service: service,
		log:     log,
	}
}

// Chain applies mws to h so that the first one is the outermost.
func Chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
