package eventsub

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes carried by the error envelopes
const (
	ErrorBadRequest       = "EVENTSUB_BAD_REQUEST"
	ErrorForbidden        = "EVENTSUB_FORBIDDEN"
	ErrorUpstreamFailed   = "EVENTSUB_UPSTREAM_FAILED"
	ErrorMalformedPayload = "EVENTSUB_MALFORMED_PAYLOAD"
)

// Messages returned to clients
const (
	MessageVerificationFailed = "Verification failed."
	MessageRequestFailed      = "Subscription request failed."
)

func clientError(message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorBadRequest)
}

func authError() error {
	return goerrors.New(MessageVerificationFailed, goerrors.CategoryAuthz).
		WithCode(http.StatusForbidden).
		WithTextCode(ErrorForbidden)
}

func upstreamError(source error, message string) error {
	return goerrors.Wrap(source, goerrors.CategoryExternal, message).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ErrorUpstreamFailed)
}

// malformed payloads answer 500, the upstream treats them as a failed delivery
func malformedPayload(source error) error {
	return goerrors.Wrap(source, goerrors.CategoryBadInput, source.Error()).
		WithCode(http.StatusInternalServerError).
		WithTextCode(ErrorMalformedPayload)
}

// HTTPError maps an error returned by the service to a status code and a client message
func HTTPError(err error) (int, string) {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		code := rich.Code
		if code == 0 {
			code = http.StatusInternalServerError
		}
		return code, rich.Message
	}
	return http.StatusInternalServerError, err.Error()
}
