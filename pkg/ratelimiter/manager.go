package ratelimiter

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/momahgoub172/rate-limiting-algorithms/internal/log"
	"github.com/momahgoub172/rate-limiting-algorithms/internal/ratelimiter"
	"github.com/momahgoub172/rate-limiting-algorithms/internal/utils"
	"go.uber.org/zap"
)

var (
	stateStrings = map[bool]string{
		true:  "Allow",
		false: "Deny",
	}
)

const (
	rateLimitMaxRequests = "X-Ratelimit-Max-Requests"
	rateLimitState       = "X-Ratelimit-State"
	requestIDHeader      = "X-Request-Id"
)

// Config defines the configuration for the rate limiter handler.
type Config struct {
	// RequestID identifies the request in logs and responses. Defaults to the
	// X-Request-Id header, or a generated UUID.
	RequestID utils.Extractor
	Limiter   ratelimiter.RateLimiter
}

type httpRateLimiterHandler struct {
	handler http.Handler
	config  *Config
	logger  *zap.Logger
}

// NewHTTPRateLimiterHandler wraps an existing http.Handler object performing rate limiting before
// sending the request to the wrapped handler. If the request is denied, the rate limiting handler
// will send a 429 response to the client and will not call the wrapped handler.
func NewHTTPRateLimiterHandler(originalHandler http.Handler, config *Config) http.Handler {
	if config.RequestID == nil {
		config.RequestID = utils.NewRequestIDExtractor(requestIDHeader)
	}
	return &httpRateLimiterHandler{
		handler: originalHandler,
		config:  config,
		logger:  log.Logger().Named("http"),
	}
}

// Middleware adapts NewHTTPRateLimiterHandler to router middleware chains.
func Middleware(config *Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return NewHTTPRateLimiterHandler(next, config)
	}
}

func (h *httpRateLimiterHandler) writeResponse(writer http.ResponseWriter, status int, msg string, args ...interface{}) {
	writer.Header().Set("Content-Type", "text/plain")
	writer.WriteHeader(status)
	if _, err := writer.Write([]byte(fmt.Sprintf(msg, args...))); err != nil {
		h.logger.Warn("failed to write body to HTTP request", zap.Error(err))
	}
}

// ServeHTTP consults the limiter once and, if the request was allowed, sends it to the wrapped
// handler. It also adds rate limiting headers that will be sent to the client to make it aware
// of what state it is in terms of rate limiting.
func (h *httpRateLimiterHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	// the extractor never fails for request ids
	requestID, _ := h.config.RequestID.Extract(request)

	admitted := h.config.Limiter.TryAdmit()

	// set the rate limiting headers both on allow or deny results so the client knows what is going on
	writer.Header().Set(requestIDHeader, requestID)
	writer.Header().Set(rateLimitMaxRequests, strconv.Itoa(h.config.Limiter.Limit()))
	writer.Header().Set(rateLimitState, stateStrings[admitted])

	// when the request is throttled, just return a 429 response to the client and stop the request handling flow
	if !admitted {
		h.logger.Debug("request throttled",
			zap.String("requestID", requestID),
			zap.String("limiter", h.config.Limiter.Type().String()),
			zap.String("path", request.URL.Path))
		h.writeResponse(writer, http.StatusTooManyRequests, "you have sent too many requests to this service, slow down please")
		return
	}

	// if the request was not denied we call the wrapped handler.
	// by leaving this to the end we make sure the wrapped handler is only called once and doesn't have to worry
	// about any rate limiting at all (it doesn't even have to know there was rate limiting happening for this request)
	// as we have already set the headers, so when the handler flushes the response the headers above will be sent.
	h.handler.ServeHTTP(writer, request)
}
