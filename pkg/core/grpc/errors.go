package grpc

import (
	"errors"

	mdwerror "github.com/msto63/minilang/foundation/core/error"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// StatusCode maps a foundation error code to a gRPC status code
func StatusCode(code mdwerror.Code) codes.Code {
	switch code {
	case mdwerror.CodeInvalidInput, mdwerror.CodeSyntax,
		mdwerror.CodeDuplicateDeclaration, mdwerror.CodeUndeclaredVariable:
		return codes.InvalidArgument
	case mdwerror.CodeNotFound:
		return codes.NotFound
	case mdwerror.CodeInvalidAccess, mdwerror.CodeEndOfInput:
		return codes.FailedPrecondition
	case mdwerror.CodeTimeout:
		return codes.DeadlineExceeded
	case mdwerror.CodeDatabaseError, mdwerror.CodeServiceUnavailable:
		return codes.Unavailable
	default:
		return codes.Internal
	}
}

// ToStatus converts an error into a gRPC status error. Errors that already
// carry a status pass through unchanged.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var mdwErr *mdwerror.Error
	if errors.As(err, &mdwErr) {
		return status.Error(StatusCode(mdwErr.Code()), mdwErr.Message())
	}
	return status.Error(codes.Internal, err.Error())
}
