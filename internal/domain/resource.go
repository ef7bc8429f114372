package domain

import "strings"

type Kind string

const (
	KindAny              Kind = ""
	KindChannel          Kind = "channel"
	KindChannelSection   Kind = "channelSection"
	KindGuideCategory    Kind = "guideCategory"
	KindPlaylist         Kind = "playlist"
	KindPlaylistItem     Kind = "playlistItem"
	KindVideo            Kind = "video"
	KindSubscription     Kind = "subscription"
	KindSubscriptionItem Kind = "subscriptionItem"
	KindComment          Kind = "comment"
	KindUser             Kind = "user"
	KindVideoCategory    Kind = "videoCategory"
)

// SearchResultKind est l'enveloppe générique de l'endpoint search:
// le vrai kind se trouve alors dans id.kind.
const SearchResultKind = "youtube#searchResult"

// WireKind renvoie le discriminant "kind" utilisé par l'API pour k.
// Les items d'une playlist d'uploads (subscriptionItem) partagent le kind des playlistItem.
func WireKind(k Kind) string {
	switch k {
	case KindChannel:
		return "youtube#channel"
	case KindChannelSection:
		return "youtube#channelSection"
	case KindGuideCategory:
		return "youtube#guideCategory"
	case KindPlaylist:
		return "youtube#playlist"
	case KindPlaylistItem, KindSubscriptionItem:
		return "youtube#playlistItem"
	case KindVideo:
		return "youtube#video"
	case KindSubscription:
		return "youtube#subscription"
	case KindComment:
		return "youtube#commentThread"
	case KindVideoCategory:
		return "youtube#videoCategory"
	case KindUser:
		return "user"
	default:
		return ""
	}
}

// Meta est la capacité commune à toutes les ressources.
type Meta struct {
	Kind    Kind   `json:"kind"`
	ID      string `json:"id"`
	Title   string `json:"title"`
	Picture string `json:"picture"`
}

// Resource est l'union fermée des ressources du catalogue.
// Les variantes sont des valeurs immuables construites depuis un Record.
type Resource interface {
	Meta() Meta
}

func KindOf(r Resource) Kind {
	if r == nil {
		return KindAny
	}
	return r.Meta().Kind
}

// idOf lit l'identifiant: chaîne directe si le record est du bon kind,
// sinon l'identifiant imbriqué d'un résultat de recherche (id.<nested>).
func idOf(rec Record, wire, nested string) string {
	if rec.Str("kind") == wire {
		return rec.Str("id")
	}
	return rec.Str("id", nested)
}

type Channel struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Picture            string `json:"picture"`
	SubscriberCount    int64  `json:"subscriberCount"`
	VideoCount         int64  `json:"videoCount"`
	ViewCount          int64  `json:"viewCount"`
	LikesPlaylist      string `json:"likesPlaylist,omitempty"`
	FavoritesPlaylist  string `json:"favoritesPlaylist,omitempty"`
	WatchLaterPlaylist string `json:"watchLaterPlaylist,omitempty"`
	UploadsPlaylist    string `json:"uploadsPlaylist,omitempty"`
}

func NewChannel(rec Record) Channel {
	related := rec.Obj("contentDetails", "relatedPlaylists")
	return Channel{
		ID:                 idOf(rec, WireKind(KindChannel), "channelId"),
		Title:              rec.Str("snippet", "title"),
		Description:        rec.Str("snippet", "description"),
		Picture:            rec.Str("snippet", "thumbnails", "default", "url"),
		SubscriberCount:    rec.Int64("statistics", "subscriberCount"),
		VideoCount:         rec.Int64("statistics", "videoCount"),
		ViewCount:          rec.Int64("statistics", "viewCount"),
		LikesPlaylist:      related.Str("likes"),
		FavoritesPlaylist:  related.Str("favorites"),
		WatchLaterPlaylist: related.Str("watchLater"),
		UploadsPlaylist:    related.Str("uploads"),
	}
}

func (c Channel) Meta() Meta {
	return Meta{Kind: KindChannel, ID: c.ID, Title: c.Title, Picture: c.Picture}
}

// ChannelSection ne sert qu'à trouver une playlist représentative d'une chaîne.
type ChannelSection struct {
	ID         string `json:"id"`
	PlaylistID string `json:"playlistId"`
}

func NewChannelSection(rec Record) ChannelSection {
	s := ChannelSection{ID: idOf(rec, WireKind(KindChannelSection), "channelSectionId")}
	if l := rec.List("contentDetails", "playlists"); len(l) > 0 {
		s.PlaylistID, _ = l[0].(string)
	}
	return s
}

func (s ChannelSection) Meta() Meta {
	return Meta{Kind: KindChannelSection, ID: s.ID, Title: s.ID, Picture: s.ID}
}

type GuideCategory struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func NewGuideCategory(rec Record) GuideCategory {
	return GuideCategory{ID: rec.Str("id"), Title: rec.Str("snippet", "title")}
}

func (g GuideCategory) Meta() Meta {
	return Meta{Kind: KindGuideCategory, ID: g.ID, Title: g.Title}
}

type Playlist struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Picture     string `json:"picture"`
	ItemCount   int64  `json:"itemCount"`
}

func NewPlaylist(rec Record) Playlist {
	return Playlist{
		ID:          idOf(rec, WireKind(KindPlaylist), "playlistId"),
		Title:       rec.Str("snippet", "title"),
		Description: rec.Str("snippet", "description"),
		Picture:     rec.Str("snippet", "thumbnails", "default", "url"),
		ItemCount:   rec.Int64("contentDetails", "itemCount"),
	}
}

func (p Playlist) Meta() Meta {
	return Meta{Kind: KindPlaylist, ID: p.ID, Title: p.Title, Picture: p.Picture}
}

type PlaylistItem struct {
	ID          string `json:"id"`
	VideoID     string `json:"videoId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Username    string `json:"username"`
	Picture     string `json:"picture"`
	Link        string `json:"link"`
}

func NewPlaylistItem(rec Record) PlaylistItem {
	videoID := rec.Str("contentDetails", "videoId")
	if videoID == "" {
		videoID = rec.Str("snippet", "resourceId", "videoId")
	}
	return PlaylistItem{
		ID:          idOf(rec, WireKind(KindPlaylistItem), "videoId"),
		VideoID:     videoID,
		Title:       rec.Str("snippet", "title"),
		Description: rec.Str("snippet", "description"),
		Username:    rec.Str("snippet", "channelTitle"),
		Picture:     rec.Str("snippet", "thumbnails", "high", "url"),
		Link:        watchLink(videoID),
	}
}

func (p PlaylistItem) Meta() Meta {
	return Meta{Kind: KindPlaylistItem, ID: p.ID, Title: p.Title, Picture: p.Picture}
}

type VideoStatistics struct {
	CommentCount  int64 `json:"commentCount"`
	DislikeCount  int64 `json:"dislikeCount"`
	FavoriteCount int64 `json:"favoriteCount"`
	LikeCount     int64 `json:"likeCount"`
	ViewCount     int64 `json:"viewCount"`
}

type Video struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Username    string           `json:"username"`
	ChannelID   string           `json:"channelId"`
	PublishedAt string           `json:"publishedAt"`
	Picture     string           `json:"picture"`
	Link        string           `json:"link"`
	Statistics  *VideoStatistics `json:"statistics,omitempty"`
}

func NewVideo(rec Record) Video {
	id := idOf(rec, WireKind(KindVideo), "videoId")
	published, _, _ := strings.Cut(rec.Str("snippet", "publishedAt"), "T")
	v := Video{
		ID:          id,
		Title:       rec.Str("snippet", "title"),
		Description: rec.Str("snippet", "description"),
		Username:    rec.Str("snippet", "channelTitle"),
		ChannelID:   rec.Str("snippet", "channelId"),
		PublishedAt: published,
		Picture:     rec.Str("snippet", "thumbnails", "high", "url"),
		Link:        watchLink(id),
	}
	if rec.Has("statistics") {
		v.Statistics = &VideoStatistics{
			CommentCount:  rec.Int64("statistics", "commentCount"),
			DislikeCount:  rec.Int64("statistics", "dislikeCount"),
			FavoriteCount: rec.Int64("statistics", "favoriteCount"),
			LikeCount:     rec.Int64("statistics", "likeCount"),
			ViewCount:     rec.Int64("statistics", "viewCount"),
		}
	}
	return v
}

func (v Video) Meta() Meta {
	return Meta{Kind: KindVideo, ID: v.ID, Title: v.Title, Picture: v.Picture}
}

// Subscription est identifiée par la chaîne suivie; SubscribeID est l'id de l'abonnement lui-même.
type Subscription struct {
	ID          string `json:"id"`
	SubscribeID string `json:"subscribeId"`
	Title       string `json:"title"`
	Picture     string `json:"picture"`
}

func NewSubscription(rec Record) Subscription {
	return Subscription{
		ID:          rec.Str("snippet", "resourceId", "channelId"),
		SubscribeID: rec.Str("id"),
		Title:       rec.Str("snippet", "title"),
		Picture:     rec.Str("snippet", "thumbnails", "default", "url"),
	}
}

func (s Subscription) Meta() Meta {
	return Meta{Kind: KindSubscription, ID: s.ID, Title: s.Title, Picture: s.Picture}
}

// SubscriptionItem est un item de la playlist "uploads" d'une chaîne suivie.
type SubscriptionItem struct {
	ID          string `json:"id"`
	VideoID     string `json:"videoId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Username    string `json:"username"`
	Picture     string `json:"picture"`
	Link        string `json:"link"`
}

func NewSubscriptionItem(rec Record) SubscriptionItem {
	videoID := rec.Str("snippet", "resourceId", "videoId")
	return SubscriptionItem{
		ID:          idOf(rec, WireKind(KindSubscriptionItem), "videoId"),
		VideoID:     videoID,
		Title:       rec.Str("snippet", "title"),
		Description: rec.Str("snippet", "description"),
		Username:    rec.Str("snippet", "channelTitle"),
		Picture:     rec.Str("snippet", "thumbnails", "high", "url"),
		Link:        watchLink(videoID),
	}
}

func (s SubscriptionItem) Meta() Meta {
	return Meta{Kind: KindSubscriptionItem, ID: s.ID, Title: s.Title, Picture: s.Picture}
}

// User est l'auteur d'un commentaire.
type User struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Picture string `json:"picture"`
}

func NewUser(rec Record) User {
	return User{
		ID:      rec.Str("authorChannelId", "value"),
		Title:   rec.Str("authorDisplayName"),
		Picture: rec.Str("authorProfileImageUrl"),
	}
}

func (u User) Meta() Meta {
	return Meta{Kind: KindUser, ID: u.ID, Title: u.Title, Picture: u.Picture}
}

type Comment struct {
	ID        string `json:"id"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
	Author    User   `json:"author"`
}

func NewComment(rec Record) Comment {
	top := rec.Obj("snippet", "topLevelComment", "snippet")
	return Comment{
		ID:        rec.Str("id"),
		Body:      top.Str("textDisplay"),
		CreatedAt: top.Str("publishedAt"),
		Author:    NewUser(top),
	}
}

// Le titre et l'image d'un commentaire sont ceux de son auteur.
func (c Comment) Meta() Meta {
	return Meta{Kind: KindComment, ID: c.ID, Title: c.Author.Title, Picture: c.Author.Picture}
}

type VideoCategory struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func NewVideoCategory(rec Record) VideoCategory {
	return VideoCategory{ID: rec.Str("id"), Title: rec.Str("snippet", "title")}
}

func (v VideoCategory) Meta() Meta {
	return Meta{Kind: KindVideoCategory, ID: v.ID, Title: v.Title}
}

func watchLink(videoID string) string {
	if videoID == "" {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + videoID
}
