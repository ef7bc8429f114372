package app

import (
	"github.com/Guilhem-Bonnet/tubebrowse/internal/domain"
	"github.com/rs/zerolog"
)

type constructor func(domain.Record) domain.Resource

var constructors = map[domain.Kind]constructor{
	domain.KindChannel:          func(r domain.Record) domain.Resource { return domain.NewChannel(r) },
	domain.KindChannelSection:   func(r domain.Record) domain.Resource { return domain.NewChannelSection(r) },
	domain.KindGuideCategory:    func(r domain.Record) domain.Resource { return domain.NewGuideCategory(r) },
	domain.KindPlaylist:         func(r domain.Record) domain.Resource { return domain.NewPlaylist(r) },
	domain.KindPlaylistItem:     func(r domain.Record) domain.Resource { return domain.NewPlaylistItem(r) },
	domain.KindVideo:            func(r domain.Record) domain.Resource { return domain.NewVideo(r) },
	domain.KindSubscription:     func(r domain.Record) domain.Resource { return domain.NewSubscription(r) },
	domain.KindSubscriptionItem: func(r domain.Record) domain.Resource { return domain.NewSubscriptionItem(r) },
	domain.KindComment:          func(r domain.Record) domain.Resource { return domain.NewComment(r) },
	domain.KindUser:             func(r domain.Record) domain.Resource { return domain.NewUser(r) },
	domain.KindVideoCategory:    func(r domain.Record) domain.Resource { return domain.NewVideoCategory(r) },
}

// Kinds reconnus quand aucun filtre n'est donné. youtube#playlistItem y reste un
// playlistItem: subscriptionItem n'existe que sur demande explicite.
var defaultKinds = map[string]domain.Kind{
	"youtube#channel":        domain.KindChannel,
	"youtube#channelSection": domain.KindChannelSection,
	"youtube#guideCategory":  domain.KindGuideCategory,
	"youtube#playlist":       domain.KindPlaylist,
	"youtube#playlistItem":   domain.KindPlaylistItem,
	"youtube#video":          domain.KindVideo,
	"youtube#subscription":   domain.KindSubscription,
	"youtube#commentThread":  domain.KindComment,
	"youtube#videoCategory":  domain.KindVideoCategory,
}

// Dispatcher transforme un listing brut en ressources typées, dans l'ordre d'entrée.
type Dispatcher struct {
	logger zerolog.Logger
}

func NewDispatcher(logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

// ResolveKind lit le discriminant "kind", en descendant dans id.kind pour
// l'enveloppe générique des résultats de recherche.
func ResolveKind(rec domain.Record) string {
	kind := rec.Str("kind")
	if kind == domain.SearchResultKind {
		kind = rec.Str("id", "kind")
	}
	return kind
}

// Dispatch construit une ressource par entrée reconnue.
// target == domain.KindAny accepte tous les kinds connus; sinon seules les entrées
// de ce kind sont gardées. Une entrée inconnue est loggée puis ignorée.
func (d *Dispatcher) Dispatch(items []domain.Record, target domain.Kind) []domain.Resource {
	out := make([]domain.Resource, 0, len(items))
	for _, rec := range items {
		wire := ResolveKind(rec)

		kind := target
		if target == domain.KindAny {
			k, ok := defaultKinds[wire]
			if !ok {
				d.unknown(wire, rec)
				continue
			}
			kind = k
		} else if wire != domain.WireKind(target) {
			d.logger.Debug().Str("kind", wire).Str("want", string(target)).Msg("entry filtered out")
			continue
		}

		ctor, ok := constructors[kind]
		if !ok {
			d.unknown(wire, rec)
			continue
		}
		out = append(out, ctor(rec))
	}
	return out
}

func (d *Dispatcher) unknown(wire string, rec domain.Record) {
	d.logger.Warn().
		Str("code", CodeUnknownKind).
		Str("kind", wire).
		Interface("record", rec).
		Msg("couldn't create resource")
}

// collect garde les ressources du type T, dans l'ordre.
func collect[T domain.Resource](resources []domain.Resource) []T {
	out := make([]T, 0, len(resources))
	for _, r := range resources {
		if v, ok := r.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func asResources[T domain.Resource](items []T) []domain.Resource {
	out := make([]domain.Resource, 0, len(items))
	for _, it := range items {
		out = append(out, it)
	}
	return out
}
