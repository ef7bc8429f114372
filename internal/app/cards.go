package app

import (
	"fmt"

	"github.com/Guilhem-Bonnet/tubebrowse/internal/domain"
)

// Card est la forme présentable d'une ressource.
// Token est renseigné quand la carte ouvre un autre département; URI désigne une vidéo.
type Card struct {
	Kind               domain.Kind `json:"kind"`
	ID                 string      `json:"id"`
	Title              string      `json:"title"`
	Art                string      `json:"art,omitempty"`
	Subtitle           string      `json:"subtitle,omitempty"`
	Description        string      `json:"description,omitempty"`
	Link               string      `json:"link,omitempty"`
	URI                string      `json:"uri,omitempty"`
	Token              string      `json:"token,omitempty"`
	FavoritePlaylist   string      `json:"favoritePlaylist,omitempty"`
	WatchLaterPlaylist string      `json:"watchLaterPlaylist,omitempty"`
}

type BucketView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Cards []Card `json:"cards"`
}

type ResultView struct {
	Token         string                   `json:"token"`
	Intent        domain.NavigationIntent  `json:"intent"`
	Header        *domain.Channel          `json:"header,omitempty"`
	Popular       []Card                   `json:"popular,omitempty"`
	Buckets       []BucketView             `json:"buckets"`
	Departments   []domain.Department      `json:"departments,omitempty"`
	Personal      domain.PersonalPlaylists `json:"personal"`
	LoginRequired bool                     `json:"loginRequired"`
	Notice        string                   `json:"notice,omitempty"`
	TotalResults  int                      `json:"totalResults,omitempty"`
}

// Present transforme un ResultSet en vue. Le ResultSet n'est pas modifié.
func Present(rs *domain.ResultSet) ResultView {
	v := ResultView{
		Token:         rs.Intent.Token(),
		Intent:        rs.Intent,
		Header:        rs.Header,
		Departments:   rs.Departments,
		Personal:      rs.Personal,
		LoginRequired: rs.LoginRequired,
		Notice:        rs.Notice,
		TotalResults:  rs.TotalResults,
		Buckets:       make([]BucketView, 0, len(rs.Buckets)),
	}
	for _, r := range rs.Popular {
		v.Popular = append(v.Popular, CardOf(r, rs.Personal))
	}
	for _, b := range rs.Buckets {
		bv := BucketView{ID: b.ID, Title: b.Title, Cards: make([]Card, 0, len(b.Items))}
		for _, r := range b.Items {
			bv.Cards = append(bv.Cards, CardOf(r, rs.Personal))
		}
		v.Buckets = append(v.Buckets, bv)
	}
	return v
}

// CardOf construit la carte d'une ressource en aiguillant sur son kind.
// La playlist Likes n'est jamais attachée: le catalogue l'alimente lui-même.
func CardOf(r domain.Resource, personal domain.PersonalPlaylists) Card {
	m := r.Meta()
	c := Card{
		Kind:               m.Kind,
		ID:                 m.ID,
		Title:              m.Title,
		Art:                m.Picture,
		FavoritePlaylist:   personal.Favorites,
		WatchLaterPlaylist: personal.WatchLater,
	}

	switch v := r.(type) {
	case domain.Channel:
		c.Token = domain.ChannelToken(v.ID)
		c.Subtitle = plural(v.SubscriberCount, "subscriber")
		c.Description = v.Description
	case domain.GuideCategory:
		c.Token = domain.CategoryToken(v.ID, domain.SectionNone)
	case domain.Subscription:
		c.Token = domain.SubscriptionToken(v.ID)
	case domain.SubscriptionItem:
		c.Link = v.Link
		c.Description = v.Description
		c.Subtitle = v.Title
		c.URI = v.VideoID
	case domain.Playlist:
		c.Token = domain.PlaylistToken(v.ID)
		c.Subtitle = plural(v.ItemCount, "video")
		c.Description = v.Description
	case domain.PlaylistItem:
		c.Link = v.Link
		c.Description = v.Description
		c.Subtitle = v.Username
		c.URI = v.VideoID
	case domain.Video:
		c.Link = v.Link
		c.Description = v.Description
		c.Subtitle = v.Username
		c.URI = v.ID
	case domain.Comment:
		c.Description = v.Body
		c.Subtitle = v.CreatedAt
	}
	return c
}

func plural(n int64, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
