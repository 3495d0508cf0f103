package repository

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apperrors "creatorconnect/pkg/errors"
)

// mapError converts a Firestore error into an AppError. AppErrors pass through.
func mapError(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch status.Code(err) {
	case codes.NotFound:
		return apperrors.NotFound(resource, err)
	case codes.AlreadyExists:
		return apperrors.Conflict(resource + " already exists")
	case codes.Aborted:
		return apperrors.Conflict(resource + " was modified concurrently, please retry")
	case codes.PermissionDenied:
		return apperrors.Forbidden("Store denied "+action, err)
	case codes.Unavailable, codes.DeadlineExceeded:
		return apperrors.Unavailable("Store unavailable while trying to "+action, err)
	case codes.Canceled:
		return apperrors.Unavailable("Request cancelled while trying to "+action, err)
	default:
		return apperrors.Internal("Failed to "+action, err)
	}
}
