package emailsyncerrors

import (
	"net/http"

	"pto-tracker/internal/shared/apperror"
)

var (
	ErrMailProviderUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Mail provider is unavailable",
		http.StatusServiceUnavailable,
	)

	ErrSyncInProgress = apperror.New(
		apperror.CodeConflict,
		"An email sync is already in progress",
		http.StatusConflict,
	)
)
