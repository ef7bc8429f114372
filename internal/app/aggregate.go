package app

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/Guilhem-Bonnet/tubebrowse/internal/domain"
	"github.com/Guilhem-Bonnet/tubebrowse/internal/ports"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// job est un appel catalogue en cours: une requête, une échéance et un slot de complétion.
// rec et err ne sont lus qu'après fermeture de done.
type job struct {
	id       xid.ID
	req      ports.Request
	deadline time.Time
	done     chan struct{}
	rec      domain.Record
	err      error
}

// session regroupe l'état d'une seule requête de navigation.
// Rien n'y est partagé avec une autre requête.
type session struct {
	id          xid.ID
	getter      ports.CatalogGetter
	auth        ports.AuthContext
	sem         *semaphore.Weighted
	timeout     time.Duration
	flag        *CancelFlag
	dispatcher  *Dispatcher
	logger      zerolog.Logger
	locale      string
	region      string
	cardinality int
}

// call exécute un GET borné par l'échéance par appel.
// Un getter qui ne rend jamais la main est abandonné à l'échéance.
func (s *session) call(ctx context.Context, req ports.Request) (domain.Record, error) {
	if s.flag.Canceled() {
		return nil, canceledError(context.Canceled)
	}
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, s.classify(ctx, req, err)
	}
	defer s.sem.Release(1)

	j := &job{
		id:       xid.New(),
		req:      req,
		deadline: time.Now().Add(s.timeout),
		done:     make(chan struct{}),
	}
	callCtx, cancel := context.WithDeadline(ctx, j.deadline)
	defer cancel()

	started := time.Now()
	go func() {
		defer close(j.done)
		j.rec, j.err = s.getter.Get(callCtx, req, s.auth)
	}()

	select {
	case <-j.done:
	case <-callCtx.Done():
		s.logger.Debug().Str("job", j.id.String()).Str("request", describe(req)).Msg("catalog call abandoned")
		return nil, s.classify(ctx, req, callCtx.Err())
	}

	s.logger.Debug().
		Str("job", j.id.String()).
		Str("request", describe(req)).
		Dur("elapsed", time.Since(started)).
		Err(j.err).
		Msg("catalog call")

	if j.err != nil {
		return nil, s.classify(ctx, req, j.err)
	}
	if j.rec == nil {
		j.rec = domain.Record{}
	}
	return j.rec, nil
}

func (s *session) classify(parent context.Context, req ports.Request, err error) error {
	if s.flag.Canceled() {
		return canceledError(context.Canceled)
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return err
	}
	var remote *ports.RemoteError
	if errors.As(err, &remote) {
		return remoteError(remote)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutError(req, err)
	}
	if errors.Is(err, context.Canceled) || parent.Err() != nil {
		return canceledError(err)
	}
	return networkError(req, err)
}

// list appelle le catalogue puis type les items du listing.
func (s *session) list(ctx context.Context, req ports.Request, kind domain.Kind) ([]domain.Resource, domain.Record, error) {
	rec, err := s.call(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	return s.dispatcher.Dispatch(rec.Records("items"), kind), rec, nil
}

// describe rend une requête lisible pour les logs et les messages d'erreur.
func describe(req ports.Request) string {
	var b strings.Builder
	b.WriteString(strings.Join(req.Path, "/"))
	for i, p := range req.Query {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// fanOut lance fn pour chaque élément et attend tout le monde.
// Le résultat i correspond à items[i], quel que soit l'ordre de complétion.
// La première erreur annule les autres et est renvoyée seule.
func fanOut[In, Out any](ctx context.Context, items []In, fn func(ctx context.Context, item In) (Out, error)) ([]Out, error) {
	out := make([]Out, len(items))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		g.Go(func() error {
			v, err := fn(gctx, item)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// both exécute deux tâches indépendantes en parallèle.
func both(ctx context.Context, a, b func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a(gctx) })
	g.Go(func() error { return b(gctx) })
	return g.Wait()
}
