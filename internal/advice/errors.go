package advice

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// Kind is the closed set of ways an advice request can fail.
type Kind int

const (
	KindTimeout Kind = iota + 1
	KindTransport
	KindMalformed
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindTransport:
		return "transport"
	case KindMalformed:
		return "malformed response"
	case KindAuth:
		return "auth"
	default:
		return "unknown"
	}
}

var (
	ErrNoAPIKey   = errors.New("no API key configured")
	ErrEmptyReply = errors.New("model returned no content")
)

type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return "advice " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// classify maps any failure from the client into a Kind.
func classify(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &Error{Kind: KindTimeout, Err: err}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &Error{Kind: statusKind(apiErr.HTTPStatusCode), Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &Error{Kind: statusKind(reqErr.HTTPStatusCode), Err: err}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, ErrEmptyReply) {
		return &Error{Kind: KindMalformed, Err: err}
	}

	return &Error{Kind: KindTransport, Err: err}
}

func statusKind(code int) Kind {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return KindTimeout
	default:
		return KindTransport
	}
}

// retryable reports whether another attempt could succeed. Auth and
// malformed replies will not change; timeouts have already spent the deadline.
func retryable(err error) bool {
	return classify(err).Kind == KindTransport
}
