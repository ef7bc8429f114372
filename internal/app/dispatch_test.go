package app

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/Guilhem-Bonnet/tubebrowse/internal/domain"
	"github.com/rs/zerolog"
)

func records(t *testing.T, raw string) []domain.Record {
	t.Helper()
	var rec domain.Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return rec.Records("items")
}

func TestDispatch_AllKindsKeepsInputOrderAndDropsUnknown(t *testing.T) {
	items := records(t, `{"items":[
		{"kind":"youtube#video","id":"v1"},
		{"kind":"youtube#mystery","id":"m1"},
		{"kind":"youtube#searchResult","id":{"kind":"youtube#playlist","playlistId":"p1"}},
		{"kind":"youtube#channel","id":"c1"},
		{"id":"nokind"},
		{"kind":"youtube#searchResult","id":{"kind":"youtube#channel","channelId":"c2"}}
	]}`)
	got := NewDispatcher(zerolog.Nop()).Dispatch(items, domain.KindAny)

	if len(got) != len(items)-2 {
		t.Fatalf("expected %d resources, got %d", len(items)-2, len(got))
	}
	var kinds []domain.Kind
	for _, r := range got {
		kinds = append(kinds, domain.KindOf(r))
	}
	wantKinds := []domain.Kind{domain.KindVideo, domain.KindPlaylist, domain.KindChannel, domain.KindChannel}
	if !reflect.DeepEqual(kinds, wantKinds) {
		t.Fatalf("kinds = %v, want %v", kinds, wantKinds)
	}
	if gotIDs := ids(got); !reflect.DeepEqual(gotIDs, []string{"v1", "p1", "c1", "c2"}) {
		t.Fatalf("ids = %v", gotIDs)
	}
}

func TestDispatch_TargetKindFiltersOtherEntries(t *testing.T) {
	items := records(t, `{"items":[
		{"kind":"youtube#channel","id":"c1"},
		{"kind":"youtube#video","id":"v1"},
		{"kind":"youtube#channel","id":"c2"}
	]}`)
	got := NewDispatcher(zerolog.Nop()).Dispatch(items, domain.KindChannel)
	if gotIDs := ids(got); !reflect.DeepEqual(gotIDs, []string{"c1", "c2"}) {
		t.Fatalf("ids = %v", gotIDs)
	}
}

func TestDispatch_SubscriptionItemsShareThePlaylistItemKind(t *testing.T) {
	items := records(t, `{"items":[{"kind":"youtube#playlistItem","id":"pi1","snippet":{"resourceId":{"videoId":"v1"}}}]}`)
	d := NewDispatcher(zerolog.Nop())

	asSub := d.Dispatch(items, domain.KindSubscriptionItem)
	if len(asSub) != 1 || domain.KindOf(asSub[0]) != domain.KindSubscriptionItem {
		t.Fatalf("unexpected subscription items: %+v", asSub)
	}
	plain := d.Dispatch(items, domain.KindAny)
	if len(plain) != 1 || domain.KindOf(plain[0]) != domain.KindPlaylistItem {
		t.Fatalf("unexpected default kind: %+v", plain)
	}
}

func TestDispatch_SearchWrapperWithTargetKind(t *testing.T) {
	items := records(t, `{"items":[
		{"kind":"youtube#searchResult","id":{"kind":"youtube#video","videoId":"v1"}},
		{"kind":"youtube#searchResult","id":{"kind":"youtube#channel","channelId":"c1"}}
	]}`)
	got := NewDispatcher(zerolog.Nop()).Dispatch(items, domain.KindVideo)
	if len(got) != 1 || got[0].Meta().ID != "v1" {
		t.Fatalf("unexpected: %+v", got)
	}
}

func TestResolveKind(t *testing.T) {
	cases := map[string]string{
		`{"kind":"youtube#video"}`:                                        "youtube#video",
		`{"kind":"youtube#searchResult","id":{"kind":"youtube#channel"}}`: "youtube#channel",
		`{"kind":"youtube#searchResult"}`:                                 "",
		`{}`:                                                              "",
	}
	for raw, want := range cases {
		var rec domain.Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got := ResolveKind(rec); got != want {
			t.Fatalf("ResolveKind(%s) = %q, want %q", raw, got, want)
		}
	}
}
