package app

import (
	"errors"

	"github.com/Guilhem-Bonnet/tubebrowse/internal/ports"
)

var ErrNotFound = ports.ErrNotFound

// Codes d'erreur stables, exposés tels quels par l'API HTTP.
const (
	CodeTimeout           = "timeout"
	CodeRemote            = "remote_error"
	CodeNetwork           = "network_error"
	CodeMalformedResponse = "malformed_response"
	CodeUnknownKind       = "unknown_kind"
	CodeMissingDependency = "missing_dependency"
	CodeCanceled          = "canceled"
)

// Sentinelles comparables via errors.Is sur n'importe quel *CodedError du même code.
var (
	ErrTimeout  = &CodedError{Code: CodeTimeout, Message: "catalog call timed out"}
	ErrRemote   = &CodedError{Code: CodeRemote, Message: "catalog returned an error"}
	ErrNetwork  = &CodedError{Code: CodeNetwork, Message: "catalog unreachable"}
	ErrCanceled = &CodedError{Code: CodeCanceled, Message: "navigation canceled"}
)

// CodedError porte un code stable en plus du message.
//
// Codes fatals pour la requête: timeout, remote_error, network_error, canceled.
// unknown_kind et missing_dependency ne remontent jamais: ils sont absorbés et loggés.
type CodedError struct {
	Code    string
	Message string
	Err     error
}

func (e *CodedError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Message
	}
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *CodedError) Unwrap() error { return e.Err }

func (e *CodedError) Is(target error) bool {
	t, ok := target.(*CodedError)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// ErrorCode renvoie le code du premier *CodedError de la chaîne, ou "".
func ErrorCode(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ""
}

func timeoutError(req ports.Request, err error) error {
	return &CodedError{Code: CodeTimeout, Message: "catalog call timed out: " + describe(req), Err: err}
}

func remoteError(remote *ports.RemoteError) error {
	msg := remote.Message
	if msg == "" {
		msg = remote.Error()
	}
	return &CodedError{Code: CodeRemote, Message: msg, Err: remote}
}

func networkError(req ports.Request, err error) error {
	return &CodedError{Code: CodeNetwork, Message: "catalog call failed: " + describe(req), Err: err}
}

func canceledError(err error) error {
	return &CodedError{Code: CodeCanceled, Message: "navigation canceled", Err: err}
}
