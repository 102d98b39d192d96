package thttp

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/outofforest/logger"
)

const maxRedirects = 10

// LoggingTransport is HTTP transport logging requests to the context logger.
type LoggingTransport struct {
	//nolint:containedctx // it's fine
	Context   context.Context
	Transport http.RoundTripper
}

// WithRequestsLogging returns a copy of the client logging requests to the context logger.
func WithRequestsLogging(ctx context.Context, client *http.Client) *http.Client {
	transport := client.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{
		Transport: &LoggingTransport{Context: ctx, Transport: transport},
		Timeout:   client.Timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return errors.Errorf("request was terminated after %d redirects", maxRedirects)
			}
			return nil
		},
	}
}

// logBody logs the body on debug level. The body is buffered only if debug logging is enabled.
func (t *LoggingTransport) logBody(log *zap.Logger, subj string, body io.ReadCloser) io.ReadCloser {
	if body == nil {
		return nil
	}
	ce := log.Check(zapcore.DebugLevel, "HTTP "+subj)
	if ce == nil {
		return body
	}

	data, err := io.ReadAll(body)
	_ = body.Close()
	if err != nil {
		log.Debug("Failed to read "+subj, zap.Error(err))
	}

	fields := []zap.Field{zap.Int(subj+"Length", len(data))}
	if utf8.Valid(data) {
		fields = append(fields, zap.ByteString(subj+"Data", data))
	}
	ce.Write(fields...)

	return io.NopCloser(bytes.NewReader(data))
}

// RoundTrip implements http.RoundTripper.
func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	started := time.Now()
	log := logger.Get(t.Context).With(zap.Stringer("url", req.URL), zap.String("method", req.Method))

	log.Info("HTTP request started")
	req.Body = t.logBody(log, "request", req.Body)

	resp, err := t.Transport.RoundTrip(req)
	if err != nil {
		log.Debug("HTTP request failed", zap.Error(err))
		return resp, err
	}

	resp.Body = t.logBody(log, "response", resp.Body)
	log.Info("HTTP request ended", zap.String("status", resp.Status), zap.Duration("elapsed", time.Since(started)))

	return resp, nil
}
