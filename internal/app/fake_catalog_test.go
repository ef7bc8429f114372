package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Guilhem-Bonnet/tubebrowse/internal/domain"
	"github.com/Guilhem-Bonnet/tubebrowse/internal/ports"
)

type route struct {
	body  string
	delay time.Duration
	err   error
	// block attend l'annulation du contexte; hang ignore le contexte jusqu'à fermeture.
	block bool
	hang  chan struct{}
}

// fakeCatalog répond par clé "<ressource>?<params identifiants>".
// Une route absente renvoie un listing vide.
type fakeCatalog struct {
	mu     sync.Mutex
	routes map[string]route
	calls  []string
	auths  []ports.AuthContext
}

func newFakeCatalog(routes map[string]route) *fakeCatalog {
	return &fakeCatalog{routes: routes}
}

var routeParams = []string{"categoryId", "channelId", "playlistId", "id", "chart", "videoCategoryId", "mine", "q", "videoId"}

func routeKey(req ports.Request) string {
	parts := make([]string, 0, 2)
	for _, k := range routeParams {
		if v := req.Param(k); v != "" {
			parts = append(parts, k+"="+v)
		}
	}
	return req.Path[len(req.Path)-1] + "?" + strings.Join(parts, "&")
}

func (f *fakeCatalog) Get(ctx context.Context, req ports.Request, auth ports.AuthContext) (domain.Record, error) {
	key := routeKey(req)
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.auths = append(f.auths, auth)
	r, ok := f.routes[key]
	f.mu.Unlock()

	if !ok {
		return domain.Record{"items": []any{}}, nil
	}
	if r.hang != nil {
		<-r.hang
		return nil, fmt.Errorf("released")
	}
	if r.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	var rec domain.Record
	if err := json.Unmarshal([]byte(r.body), &rec); err != nil {
		return domain.Record{}, nil
	}
	return rec, nil
}

func (f *fakeCatalog) called(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == key {
			return true
		}
	}
	return false
}

func (f *fakeCatalog) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// Petits constructeurs de listings JSON.

func listing(entries ...string) string {
	return `{"items":[` + strings.Join(entries, ",") + `]}`
}

func categoriesBody(ids ...string) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, fmt.Sprintf(`{"kind":"youtube#guideCategory","id":%q,"snippet":{"title":%q}}`, id, "Title "+id))
	}
	return listing(out...)
}

func channelsBody(ids ...string) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, fmt.Sprintf(`{"kind":"youtube#channel","id":%q,"snippet":{"title":%q},"statistics":{"subscriberCount":"3"}}`, id, "Channel "+id))
	}
	return listing(out...)
}

func sectionBody(playlistID string) string {
	if playlistID == "" {
		return listing(`{"kind":"youtube#channelSection","id":"sec","contentDetails":{}}`)
	}
	return listing(fmt.Sprintf(`{"kind":"youtube#channelSection","id":"sec","contentDetails":{"playlists":[%q]}}`, playlistID))
}

func playlistItemsBody(videoIDs ...string) string {
	out := make([]string, 0, len(videoIDs))
	for _, id := range videoIDs {
		out = append(out, fmt.Sprintf(`{"kind":"youtube#playlistItem","id":%q,"snippet":{"title":%q,"resourceId":{"videoId":%q}},"contentDetails":{"videoId":%q}}`, "pi-"+id, id, id, id))
	}
	return listing(out...)
}

func searchVideosBody(ids ...string) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, fmt.Sprintf(`{"kind":"youtube#searchResult","id":{"kind":"youtube#video","videoId":%q},"snippet":{"title":%q}}`, id, id))
	}
	return listing(out...)
}

func videosBody(ids ...string) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, fmt.Sprintf(`{"kind":"youtube#video","id":%q,"snippet":{"title":%q}}`, id, id))
	}
	return listing(out...)
}

func ids(resources []domain.Resource) []string {
	out := make([]string, 0, len(resources))
	for _, r := range resources {
		out = append(out, r.Meta().ID)
	}
	return out
}

func videoIDs(resources []domain.Resource) []string {
	out := make([]string, 0, len(resources))
	for _, r := range resources {
		switch v := r.(type) {
		case domain.PlaylistItem:
			out = append(out, v.VideoID)
		case domain.SubscriptionItem:
			out = append(out, v.VideoID)
		default:
			out = append(out, r.Meta().ID)
		}
	}
	return out
}
