package sheets

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// IsTransient reports whether a spreadsheet write failed in a way worth
// retrying: rate limiting or temporary unavailability of the API.
func IsTransient(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests ||
			apiErr.Code == http.StatusServiceUnavailable
	}
	return false
}
