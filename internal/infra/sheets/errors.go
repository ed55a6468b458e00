package sheets

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

var (
	// ErrColumnNotFound means a header name has no column in the worksheet.
	// Callers treat the field as absent rather than failing the row.
	ErrColumnNotFound = errors.New("sheets: column header not found")

	// ErrQuotaExceeded marks a rate/quota rejection from the Sheets API.
	ErrQuotaExceeded = errors.New("sheets: quota exceeded")
)

// IsQuota reports whether err is a quota/rate error and therefore worth a
// bounded retry.
func IsQuota(err error) bool {
	if errors.Is(err, ErrQuotaExceeded) {
		return true
	}
	var gerr *googleapi.Error
	return errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests
}
