package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Guilhem-Bonnet/tubebrowse/internal/adapters/memorybus"
	"github.com/Guilhem-Bonnet/tubebrowse/internal/domain"
	"github.com/Guilhem-Bonnet/tubebrowse/internal/ports"
	"github.com/rs/zerolog"
)

func newTestNavigator(f *fakeCatalog, opts Options) *Navigator {
	return NewNavigator(f, nil, zerolog.Nop(), opts)
}

func TestNavigate_RootDrillsIntoFirstCategory(t *testing.T) {
	f := newFakeCatalog(map[string]route{
		"guideCategories?":             {body: categoriesBody("A", "B", "C")},
		"channels?categoryId=A":        {body: channelsBody("c1")},
		"channelSections?channelId=c1": {body: sectionBody("PL1")},
		"playlistItems?playlistId=PL1": {body: playlistItemsBody("x", "y", "z")},
	})
	rs, err := newTestNavigator(f, Options{}).Navigate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if got := videoIDs(rs.Popular); !reflect.DeepEqual(got, []string{"x"}) {
		t.Fatalf("popular = %v", got)
	}
	if len(rs.Buckets) != 1 || rs.Buckets[0].ID != "c1" {
		t.Fatalf("unexpected buckets: %+v", rs.Buckets)
	}
	if got := videoIDs(rs.Buckets[0].Items); !reflect.DeepEqual(got, []string{"y", "z"}) {
		t.Fatalf("bucket items = %v", got)
	}
	if len(rs.Departments) != 3 {
		t.Fatalf("expected 3 departments, got %d", len(rs.Departments))
	}
	for i, id := range []string{"A", "B", "C"} {
		d := rs.Departments[i]
		if d.Token != "guideCategory:"+id || len(d.Children) != 3 {
			t.Fatalf("unexpected department %d: %+v", i, d)
		}
		want := []string{"guideCategory-videos:" + id, "guideCategory-playlists:" + id, "guideCategory-channels:" + id}
		for j, c := range d.Children {
			if c.Token != want[j] {
				t.Fatalf("child %d of %s = %q, want %q", j, id, c.Token, want[j])
			}
		}
	}
	if !rs.LoginRequired || rs.Header != nil {
		t.Fatalf("expected login nag and no header: %+v", rs)
	}
	if !rs.Intent.IsRoot() {
		t.Fatalf("expected root intent, got %+v", rs.Intent)
	}
}

func TestNavigate_ChannelWithoutPlaylistIsSkipped(t *testing.T) {
	f := newFakeCatalog(map[string]route{
		"guideCategories?":             {body: categoriesBody("A")},
		"channels?categoryId=A":        {body: channelsBody("c1", "c2")},
		"channelSections?channelId=c1": {body: sectionBody("")},
		"channelSections?channelId=c2": {body: sectionBody("PL2")},
		"playlistItems?playlistId=PL2": {body: playlistItemsBody("a", "b")},
	})
	rs, err := newTestNavigator(f, Options{}).Navigate(context.Background(), Request{Token: "guideCategory:A"})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if got := videoIDs(rs.Popular); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("popular = %v", got)
	}
	if len(rs.Buckets) != 1 || rs.Buckets[0].ID != "c2" {
		t.Fatalf("expected only c2 bucket, got %+v", rs.Buckets)
	}
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, "playlistItems?") {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("expected a single playlist lookup, got %d", n)
	}
}

func TestNavigate_MusicAggregatorUsesMusicCategory(t *testing.T) {
	f := newFakeCatalog(map[string]route{
		"guideCategories?": {body: categoriesBody("A")},
		"videos?chart=mostPopular&videoCategoryId=10": {body: videosBody("m1", "m2")},
	})
	rs, err := newTestNavigator(f, Options{}).Navigate(context.Background(), Request{Token: "aggregated:musicaggregator"})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if got := ids(rs.Buckets[0].Items); !reflect.DeepEqual(got, []string{"m1", "m2"}) {
		t.Fatalf("items = %v", got)
	}
	if f.called("videos?chart=mostPopular") {
		t.Fatalf("generic chart call issued")
	}
	if rs.LoginRequired {
		t.Fatalf("no login nag when aggregated")
	}
}

func TestNavigate_OtherAggregationUsesGenericChart(t *testing.T) {
	f := newFakeCatalog(map[string]route{
		"guideCategories?":         {body: categoriesBody("A")},
		"videos?chart=mostPopular": {body: videosBody("p1")},
	})
	rs, err := newTestNavigator(f, Options{}).Navigate(context.Background(), Request{Token: "aggregated:other"})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if got := ids(rs.Buckets[0].Items); !reflect.DeepEqual(got, []string{"p1"}) {
		t.Fatalf("items = %v", got)
	}
}

func TestNavigate_KeepsChannelOrderUnderRandomDelays(t *testing.T) {
	const n = 8
	routes := map[string]route{"guideCategories?": {body: categoriesBody("A")}}
	channels := make([]string, 0, n)
	want := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ch := fmt.Sprintf("c%d", i)
		channels = append(channels, ch)
		want = append(want, "v"+ch)
		routes["search?channelId="+ch] = route{
			body:  searchVideosBody("v" + ch),
			delay: time.Duration(rand.IntN(40)) * time.Millisecond,
		}
	}
	routes["channels?categoryId=A"] = route{body: channelsBody(channels...)}

	rs, err := newTestNavigator(newFakeCatalog(routes), Options{}).Navigate(context.Background(), Request{Token: "guideCategory-videos:A"})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if got := ids(rs.Buckets[0].Items); !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestNavigate_HungCallTimesOut(t *testing.T) {
	hang := make(chan struct{})
	t.Cleanup(func() { close(hang) })
	f := newFakeCatalog(map[string]route{
		"guideCategories?":             {body: categoriesBody("A")},
		"channels?categoryId=A":        {body: channelsBody("c1", "c2")},
		"channelSections?channelId=c1": {body: sectionBody("PL1")},
		"channelSections?channelId=c2": {hang: hang},
		"playlistItems?playlistId=PL1": {body: playlistItemsBody("x")},
	})
	start := time.Now()
	rs, err := newTestNavigator(f, Options{CallTimeout: 50 * time.Millisecond}).Navigate(context.Background(), Request{Token: "guideCategory:A"})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if rs != nil {
		t.Fatalf("expected no result set, got %+v", rs)
	}
	if ErrorCode(err) != CodeTimeout {
		t.Fatalf("unexpected code %q", ErrorCode(err))
	}
	if time.Since(start) > 2*time.Second {
		t.Fatalf("timeout took too long")
	}
}

func TestNavigate_CancelFlagDiscardsResult(t *testing.T) {
	f := newFakeCatalog(map[string]route{
		"guideCategories?":      {body: categoriesBody("A")},
		"channels?categoryId=A": {block: true},
	})
	flag := NewCancelFlag()
	go func() {
		time.Sleep(20 * time.Millisecond)
		flag.Cancel()
	}()
	rs, err := newTestNavigator(f, Options{}).Navigate(context.Background(), Request{Token: "guideCategory:A", Cancel: flag})
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
	if rs != nil {
		t.Fatalf("expected no result set")
	}
}

func TestNavigate_PreCanceledFlagIssuesNoCall(t *testing.T) {
	f := newFakeCatalog(map[string]route{"guideCategories?": {body: categoriesBody("A")}})
	flag := NewCancelFlag()
	flag.Cancel()
	_, err := newTestNavigator(f, Options{}).Navigate(context.Background(), Request{Cancel: flag})
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
	if f.callCount() != 0 {
		t.Fatalf("expected no call, got %d", f.callCount())
	}
}

func TestNavigate_RemoteErrorAbortsWholeRequest(t *testing.T) {
	f := newFakeCatalog(map[string]route{
		"guideCategories?":      {body: categoriesBody("A")},
		"channels?categoryId=A": {err: &ports.RemoteError{Status: 403, Message: "quota exceeded"}},
	})
	rs, err := newTestNavigator(f, Options{}).Navigate(context.Background(), Request{Token: "guideCategory:A"})
	if !errors.Is(err, ErrRemote) {
		t.Fatalf("expected remote error, got %v", err)
	}
	if rs != nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("unexpected result: %v %v", rs, err)
	}
	var remote *ports.RemoteError
	if !errors.As(err, &remote) || remote.Status != 403 {
		t.Fatalf("expected wrapped remote error, got %v", err)
	}
}

func TestNavigate_FailedSiblingAbortsFanOut(t *testing.T) {
	f := newFakeCatalog(map[string]route{
		"guideCategories?":       {body: categoriesBody("A")},
		"channels?categoryId=A":  {body: channelsBody("c1", "c2")},
		"playlists?channelId=c1": {body: listing()},
		"playlists?channelId=c2": {err: &ports.RemoteError{Status: 500}},
	})
	_, err := newTestNavigator(f, Options{}).Navigate(context.Background(), Request{Token: "guideCategory-playlists:A"})
	if !errors.Is(err, ErrRemote) {
		t.Fatalf("expected remote error, got %v", err)
	}
}

func TestNavigate_NetworkFailureIsCoded(t *testing.T) {
	f := newFakeCatalog(map[string]route{
		"guideCategories?": {err: errors.New("connection refused")},
	})
	_, err := newTestNavigator(f, Options{}).Navigate(context.Background(), Request{})
	if ErrorCode(err) != CodeNetwork {
		t.Fatalf("expected network_error, got %v", err)
	}
}

const meBody = `{"items":[{"kind":"youtube#channel","id":"UCme","snippet":{"title":"Me"},
	"contentDetails":{"relatedPlaylists":{"likes":"LLme","favorites":"FLme","watchLater":"WLme","uploads":"UUme"}}}]}`

const subsBody = `{"items":[{"kind":"youtube#subscription","id":"s1","snippet":{"title":"Followed","resourceId":{"channelId":"UC9"}}}]}`

func TestNavigate_AuthenticatedTreeSplicesPersonalDepartments(t *testing.T) {
	f := newFakeCatalog(map[string]route{
		"guideCategories?":        {body: categoriesBody("A", "B")},
		"channels?mine=true":      {body: meBody},
		"subscriptions?mine=true": {body: subsBody},
	})
	auth := ports.AuthContext{Authenticated: true, AccessToken: "tok"}
	rs, err := newTestNavigator(f, Options{}).Navigate(context.Background(), Request{Auth: auth})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	var tokens []string
	for _, d := range rs.Departments {
		tokens = append(tokens, d.Token)
	}
	want := []string{"guideCategory:A", "subscriptions:subscriptions", "playlist:my_playlist", "guideCategory:B"}
	if !reflect.DeepEqual(tokens, want) {
		t.Fatalf("tree = %v, want %v", tokens, want)
	}
	subs := rs.Departments[1].Children
	if len(subs) != 1 || subs[0].Token != "subscription:UC9" || subs[0].Title != "Followed" {
		t.Fatalf("unexpected subscriptions children: %+v", subs)
	}
	var labels []string
	for _, c := range rs.Departments[2].Children {
		labels = append(labels, c.Title+"="+c.Token)
	}
	wantLabels := []string{"Favorites=playlist:FLme", "Likes=playlist:LLme", "Watch Later=playlist:WLme"}
	if !reflect.DeepEqual(labels, wantLabels) {
		t.Fatalf("playlists children = %v", labels)
	}
	if rs.Header == nil || rs.Header.ID != "UCme" || rs.LoginRequired {
		t.Fatalf("expected header and no login nag: %+v", rs)
	}
	for _, a := range f.auths {
		if !a.Authenticated || a.AccessToken != "tok" {
			t.Fatalf("auth snapshot not forwarded: %+v", a)
		}
	}
}

func TestNavigate_SubscriptionsDepartmentReusesTreeCall(t *testing.T) {
	f := newFakeCatalog(map[string]route{
		"guideCategories?":        {body: categoriesBody("A")},
		"subscriptions?mine=true": {body: subsBody},
	})
	auth := ports.AuthContext{Authenticated: true, AccessToken: "tok"}
	rs, err := newTestNavigator(f, Options{}).Navigate(context.Background(), Request{Token: "subscriptions:subscriptions", Auth: auth})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if got := ids(rs.Buckets[0].Items); !reflect.DeepEqual(got, []string{"UC9"}) {
		t.Fatalf("items = %v", got)
	}
	n := 0
	for _, c := range f.calls {
		if c == "subscriptions?mine=true" {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("expected one subscriptions call, got %d", n)
	}
}

func TestNavigate_SubscriptionsWithoutAuthIsEmpty(t *testing.T) {
	f := newFakeCatalog(map[string]route{"guideCategories?": {body: categoriesBody("A")}})
	rs, err := newTestNavigator(f, Options{}).Navigate(context.Background(), Request{Token: "subscriptions:subscriptions"})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if rs.Count() != 0 || !rs.LoginRequired {
		t.Fatalf("unexpected result: %+v", rs)
	}
	if f.called("subscriptions?mine=true") {
		t.Fatalf("subscriptions must not be listed without auth")
	}
}

func TestNavigate_SubscriptionFollowsUploadsChain(t *testing.T) {
	f := newFakeCatalog(map[string]route{
		"guideCategories?":             {body: categoriesBody("A")},
		"channels?id=UC9":              {body: `{"items":[{"kind":"youtube#channel","id":"UC9","contentDetails":{"relatedPlaylists":{"uploads":"UU9"}}}]}`},
		"playlistItems?playlistId=UU9": {body: playlistItemsBody("u1", "u2")},
	})
	rs, err := newTestNavigator(f, Options{}).Navigate(context.Background(), Request{Token: "subscription:UC9"})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	items := rs.Buckets[0].Items
	if got := videoIDs(items); !reflect.DeepEqual(got, []string{"u1", "u2"}) {
		t.Fatalf("items = %v", got)
	}
	if k := domain.KindOf(items[0]); k != domain.KindSubscriptionItem {
		t.Fatalf("expected subscription items, got %s", k)
	}
}

func TestNavigate_ChannelViewHasHeaderAndNotice(t *testing.T) {
	f := newFakeCatalog(map[string]route{
		"guideCategories?": {body: categoriesBody("A")},
		"channels?id=UC1":  {body: channelsBody("UC1")},
	})
	rs, err := newTestNavigator(f, Options{}).Navigate(context.Background(), Request{Token: "channel:UC1"})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if rs.Header == nil || rs.Header.ID != "UC1" {
		t.Fatalf("expected channel header, got %+v", rs.Header)
	}
	if rs.Notice == "" || rs.Count() != 0 {
		t.Fatalf("expected empty notice: %+v", rs)
	}
	if !f.called("search?channelId=UC1") {
		t.Fatalf("channel videos not requested")
	}
}

func TestNavigate_CategoryChannelsWithoutResultsSetsNotice(t *testing.T) {
	f := newFakeCatalog(map[string]route{"guideCategories?": {body: categoriesBody("A")}})
	rs, err := newTestNavigator(f, Options{}).Navigate(context.Background(), Request{Token: "guideCategory-channels:A"})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if rs.Notice != "No channel can be found" {
		t.Fatalf("unexpected notice %q", rs.Notice)
	}
}

func TestNavigate_MyPlaylistFansOutOverPersonalPlaylists(t *testing.T) {
	f := newFakeCatalog(map[string]route{
		"guideCategories?":              {body: categoriesBody("A")},
		"channels?mine=true":            {body: meBody},
		"playlistItems?playlistId=FLme": {body: playlistItemsBody("f1"), delay: 30 * time.Millisecond},
		"playlistItems?playlistId=LLme": {body: playlistItemsBody("l1")},
		"playlistItems?playlistId=WLme": {body: playlistItemsBody("w1")},
	})
	auth := ports.AuthContext{Authenticated: true, AccessToken: "tok"}
	rs, err := newTestNavigator(f, Options{}).Navigate(context.Background(), Request{Token: "playlist:my_playlist", Auth: auth})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	var got []string
	for _, b := range rs.Buckets {
		got = append(got, b.Title+":"+strings.Join(videoIDs(b.Items), ","))
	}
	want := []string{"Favorites:f1", "Likes:l1", "Watch Later:w1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("buckets = %v, want %v", got, want)
	}
}

func TestNavigate_UnknownPrefixBrowsesCategory(t *testing.T) {
	f := newFakeCatalog(map[string]route{"guideCategories?": {body: categoriesBody("A")}})
	rs, err := newTestNavigator(f, Options{}).Navigate(context.Background(), Request{Token: "bogus:GC1"})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if rs.Intent.Department != domain.DepartmentGuideCategory || !f.called("channels?categoryId=GC1") {
		t.Fatalf("expected category browse, intent %+v calls %v", rs.Intent, f.calls)
	}
}

func TestNavigate_ConcurrencyIsCapped(t *testing.T) {
	routes := map[string]route{"guideCategories?": {body: categoriesBody("A")}}
	var channels []string
	for i := 0; i < 6; i++ {
		ch := fmt.Sprintf("c%d", i)
		channels = append(channels, ch)
		routes["search?channelId="+ch] = route{body: searchVideosBody("v" + ch), delay: 40 * time.Millisecond}
	}
	routes["channels?categoryId=A"] = route{body: channelsBody(channels...)}
	start := time.Now()
	_, err := newTestNavigator(newFakeCatalog(routes), Options{MaxConcurrency: 1}).Navigate(context.Background(), Request{Token: "guideCategory-videos:A"})
	if err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 6*40*time.Millisecond {
		t.Fatalf("calls were not serialized: %v", elapsed)
	}
}

func TestSearch_ChannelPrefixOpensChannel(t *testing.T) {
	f := newFakeCatalog(map[string]route{
		"channels?id=UC1":      {body: channelsBody("UC1")},
		"search?channelId=UC1": {body: searchVideosBody("v1")},
	})
	rs, err := newTestNavigator(f, Options{}).Search(context.Background(), Request{}, "ChannelId::UC1")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if rs.Intent.Department != domain.DepartmentChannel || rs.Header == nil {
		t.Fatalf("expected channel view: %+v", rs)
	}
	if got := ids(rs.Buckets[0].Items); !reflect.DeepEqual(got, []string{"v1"}) {
		t.Fatalf("items = %v", got)
	}
}

func TestSearch_MusicTokenRestrictsCategory(t *testing.T) {
	body := `{"pageInfo":{"totalResults":42},"items":[
		{"kind":"youtube#searchResult","id":{"kind":"youtube#video","videoId":"v1"},"snippet":{"title":"V"}},
		{"kind":"youtube#searchResult","id":{"kind":"youtube#channel","channelId":"UC1"},"snippet":{"title":"C"}},
		{"kind":"youtube#searchResult","id":{"kind":"youtube#unknown"}}]}`
	f := newFakeCatalog(map[string]route{"search?videoCategoryId=10&q=jazz": {body: body}})
	rs, err := newTestNavigator(f, Options{}).Search(context.Background(), Request{Token: "aggregated:musicaggregator"}, "  jazz ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	items := rs.Buckets[0].Items
	if len(items) != 2 || domain.KindOf(items[0]) != domain.KindVideo || domain.KindOf(items[1]) != domain.KindChannel {
		t.Fatalf("unexpected items: %+v", items)
	}
	if rs.TotalResults != 42 || rs.Buckets[0].Title != "42 results from YouTube" {
		t.Fatalf("unexpected totals: %d %q", rs.TotalResults, rs.Buckets[0].Title)
	}
}

func TestSearch_EmptyQueryNavigates(t *testing.T) {
	f := newFakeCatalog(map[string]route{"guideCategories?": {body: categoriesBody("A")}})
	rs, err := newTestNavigator(f, Options{}).Search(context.Background(), Request{}, "   ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rs.Departments) != 1 {
		t.Fatalf("expected surfacing result, got %+v", rs)
	}
}

func TestVideo_FetchesVideoAndComments(t *testing.T) {
	f := newFakeCatalog(map[string]route{
		"videos?id=v1": {body: `{"items":[{"kind":"youtube#video","id":"v1","snippet":{"title":"V"},"statistics":{"viewCount":"5"}}]}`},
		"commentThreads?videoId=v1": {body: `{"items":[{"kind":"youtube#commentThread","id":"c1","snippet":{"topLevelComment":{"snippet":{
			"textDisplay":"hi","authorDisplayName":"Bob","authorChannelId":{"value":"UCbob"}}}}}]}`},
	})
	d, err := newTestNavigator(f, Options{}).Video(context.Background(), Request{}, "v1")
	if err != nil {
		t.Fatalf("video: %v", err)
	}
	if d.Video.ID != "v1" || d.Video.Statistics == nil || d.Video.Statistics.ViewCount != 5 {
		t.Fatalf("unexpected video: %+v", d.Video)
	}
	if len(d.Comments) != 1 || d.Comments[0].Author.ID != "UCbob" {
		t.Fatalf("unexpected comments: %+v", d.Comments)
	}
}

func TestVideo_MissingIsNotFound(t *testing.T) {
	_, err := newTestNavigator(newFakeCatalog(nil), Options{}).Video(context.Background(), Request{}, "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestNavigate_PublishesOutcomeOnBus(t *testing.T) {
	bus := memorybus.New()
	events, cancel := bus.Subscribe()
	defer cancel()

	f := newFakeCatalog(map[string]route{
		"guideCategories?":      {body: categoriesBody("A")},
		"channels?categoryId=A": {err: &ports.RemoteError{Status: 404, Message: "gone"}},
	})
	nav := NewNavigator(f, bus, zerolog.Nop(), Options{})

	if _, err := nav.Navigate(context.Background(), Request{Token: "aggregated:x"}); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if _, err := nav.Navigate(context.Background(), Request{Token: "guideCategory:A"}); err == nil {
		t.Fatalf("expected failure")
	}

	var topics []string
	var failed navigationEvent
	for i := 0; i < 2; i++ {
		select {
		case evt := <-events:
			topics = append(topics, evt.Topic)
			if evt.Topic == "navigation.failed" {
				if err := json.Unmarshal(evt.Payload, &failed); err != nil {
					t.Fatalf("payload: %v", err)
				}
			}
		case <-time.After(time.Second):
			t.Fatalf("missing event")
		}
	}
	if !reflect.DeepEqual(topics, []string{"navigation.completed", "navigation.failed"}) {
		t.Fatalf("topics = %v", topics)
	}
	if failed.Code != CodeRemote || failed.Token != "guideCategory:A" || failed.RequestID == "" {
		t.Fatalf("unexpected failure event: %+v", failed)
	}
}
