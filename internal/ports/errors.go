package ports

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// RemoteError est une réponse non-succès du catalogue, avec le message d'erreur de l'API.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		return fmt.Sprintf("catalog http error: %d", e.Status)
	}
	return fmt.Sprintf("catalog http error: %d: %s", e.Status, e.Message)
}
