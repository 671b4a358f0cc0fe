package server

import (
	"net/http"

	"github.com/jonathan/celeb-news/internal/search"
)

// HTTPStatus returns the appropriate HTTP status code for a pipeline error
func HTTPStatus(err error) int {
	switch {
	case search.IsInputError(err):
		return http.StatusBadRequest
	case search.IsProviderError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
