package ports

import (
	"context"

	"github.com/Guilhem-Bonnet/tubebrowse/internal/domain"
)

type Param struct {
	Key   string
	Value string
}

// Request décrit un GET catalogue: segments de chemin + paramètres ordonnés.
type Request struct {
	Path  []string
	Query []Param
}

func (r Request) Param(key string) string {
	for _, p := range r.Query {
		if p.Key == key {
			return p.Value
		}
	}
	return ""
}

// AuthContext est un instantané de l'état d'authentification, fourni par l'appelant.
// AccessToken n'a de sens que si Authenticated est vrai.
type AuthContext struct {
	Authenticated bool
	AccessToken   string
}

// CatalogGetter exécute un GET et renvoie l'objet JSON décodé.
// Un corps illisible est renvoyé comme Record vide (pas d'erreur);
// un statut non-succès donne un *RemoteError.
type CatalogGetter interface {
	Get(ctx context.Context, req Request, auth AuthContext) (domain.Record, error)
}

type EventBus interface {
	Publish(topic string, payload []byte)
	Subscribe() (ch <-chan Event, cancel func())
}

type Event struct {
	Topic   string
	Payload []byte
}
