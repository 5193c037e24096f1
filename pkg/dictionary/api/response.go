package api

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/lexicon/pkg/dictionary"
)

func writeJSON[T any](w http.ResponseWriter, status int, body dictionary.Result[T]) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// failure builds an envelope for a request that could not be answered.
func failure(message, scope, culture string) dictionary.Result[any] {
	return dictionary.Result[any]{
		Status: dictionary.Status{
			Success: false,
			Message: message,
			Culture: culture,
			Scope:   scope,
		},
	}
}
