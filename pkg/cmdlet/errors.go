package cmdlet

import (
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const defaultEndpoint = "default endpoint"

// ValidationError is an argument error detected locally, before any remote
// call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// GRPCStatus classifies validation errors as codes.InvalidArgument.
func (e *ValidationError) GRPCStatus() *status.Status {
	return status.New(codes.InvalidArgument, e.Reason)
}

// NewValidationError formats a ValidationError.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// EndpointError decorates a name resolution or connection failure with the
// endpoint the operation was sent to.
type EndpointError struct {
	Operation string
	Endpoint  string
	Err       error
}

func (e *EndpointError) Error() string {
	return fmt.Sprintf("%s: unable to resolve or connect to endpoint %s: %v", e.Operation, e.Endpoint, e.Err)
}

func (e *EndpointError) Unwrap() error {
	return e.Err
}

func (e *EndpointError) GRPCStatus() *status.Status {
	return status.New(codes.Unavailable, e.Error())
}

// IsNetworkFailure reports whether err was caused by a failed name lookup or
// a failed dial.
func IsNetworkFailure(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

// WrapCallError adds endpoint context to network failures. Any other error is
// returned unchanged.
func WrapCallError(operation, endpoint string, err error) error {
	if err == nil || !IsNetworkFailure(err) {
		return err
	}
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &EndpointError{Operation: operation, Endpoint: endpoint, Err: err}
}
