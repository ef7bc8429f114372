package app

import (
	"context"
	"strconv"

	"github.com/Guilhem-Bonnet/tubebrowse/internal/domain"
	"github.com/Guilhem-Bonnet/tubebrowse/internal/ports"
)

func apiPath(resource string) []string {
	return []string{"youtube", "v3", resource}
}

func param(k, v string) ports.Param { return ports.Param{Key: k, Value: v} }

func (s *session) guideCategories(ctx context.Context) ([]domain.GuideCategory, error) {
	res, _, err := s.list(ctx, ports.Request{
		Path:  apiPath("guideCategories"),
		Query: []ports.Param{param("part", "snippet"), param("regionCode", s.region), param("hl", s.locale)},
	}, domain.KindGuideCategory)
	if err != nil {
		return nil, err
	}
	return collect[domain.GuideCategory](res), nil
}

func (s *session) categoryChannels(ctx context.Context, categoryID string) ([]domain.Channel, error) {
	res, _, err := s.list(ctx, ports.Request{
		Path:  apiPath("channels"),
		Query: []ports.Param{param("part", "snippet,statistics"), param("categoryId", categoryID)},
	}, domain.KindChannel)
	if err != nil {
		return nil, err
	}
	return collect[domain.Channel](res), nil
}

func (s *session) channelSections(ctx context.Context, channelID string, max int) ([]domain.ChannelSection, error) {
	res, _, err := s.list(ctx, ports.Request{
		Path: apiPath("channelSections"),
		Query: []ports.Param{
			param("part", "contentDetails"),
			param("channelId", channelID),
			param("maxResults", strconv.Itoa(max)),
		},
	}, domain.KindChannelSection)
	if err != nil {
		return nil, err
	}
	return collect[domain.ChannelSection](res), nil
}

func (s *session) channelVideos(ctx context.Context, channelID string) ([]domain.Video, error) {
	res, _, err := s.list(ctx, ports.Request{
		Path: apiPath("search"),
		Query: []ports.Param{
			param("part", "snippet"),
			param("type", "video"),
			param("order", "viewCount"),
			param("channelId", channelID),
		},
	}, domain.KindVideo)
	if err != nil {
		return nil, err
	}
	return collect[domain.Video](res), nil
}

func (s *session) channelPlaylists(ctx context.Context, channelID string) ([]domain.Playlist, error) {
	res, _, err := s.list(ctx, ports.Request{
		Path:  apiPath("playlists"),
		Query: []ports.Param{param("part", "snippet,contentDetails"), param("channelId", channelID)},
	}, domain.KindPlaylist)
	if err != nil {
		return nil, err
	}
	return collect[domain.Playlist](res), nil
}

func (s *session) playlistItems(ctx context.Context, playlistID string) ([]domain.PlaylistItem, error) {
	res, _, err := s.list(ctx, ports.Request{
		Path:  apiPath("playlistItems"),
		Query: []ports.Param{param("part", "snippet,contentDetails"), param("playlistId", playlistID)},
	}, domain.KindPlaylistItem)
	if err != nil {
		return nil, err
	}
	return collect[domain.PlaylistItem](res), nil
}

// channelStatistics renvoie nil si la chaîne est inconnue.
func (s *session) channelStatistics(ctx context.Context, channelID string) (*domain.Channel, error) {
	res, _, err := s.list(ctx, ports.Request{
		Path:  apiPath("channels"),
		Query: []ports.Param{param("part", "snippet,statistics"), param("id", channelID)},
	}, domain.KindChannel)
	if err != nil {
		return nil, err
	}
	if ch := collect[domain.Channel](res); len(ch) > 0 {
		return &ch[0], nil
	}
	return nil, nil
}

func (s *session) subscriptionChannels(ctx context.Context) ([]domain.Subscription, error) {
	res, _, err := s.list(ctx, ports.Request{
		Path: apiPath("subscriptions"),
		Query: []ports.Param{
			param("part", "snippet"),
			param("mine", "true"),
			param("maxResults", strconv.Itoa(s.cardinality)),
		},
	}, domain.KindSubscription)
	if err != nil {
		return nil, err
	}
	return collect[domain.Subscription](res), nil
}

// subscriptionUploads résout la playlist "uploads" d'une chaîne suivie ("" si absente).
func (s *session) subscriptionUploads(ctx context.Context, channelID string) (string, error) {
	res, _, err := s.list(ctx, ports.Request{
		Path:  apiPath("channels"),
		Query: []ports.Param{param("part", "contentDetails"), param("id", channelID)},
	}, domain.KindChannel)
	if err != nil {
		return "", err
	}
	for _, c := range collect[domain.Channel](res) {
		if c.UploadsPlaylist != "" {
			return c.UploadsPlaylist, nil
		}
	}
	return "", nil
}

func (s *session) subscriptionItems(ctx context.Context, playlistID string) ([]domain.SubscriptionItem, error) {
	res, _, err := s.list(ctx, ports.Request{
		Path:  apiPath("playlistItems"),
		Query: []ports.Param{param("part", "snippet"), param("playlistId", playlistID)},
	}, domain.KindSubscriptionItem)
	if err != nil {
		return nil, err
	}
	return collect[domain.SubscriptionItem](res), nil
}

func (s *session) chartVideos(ctx context.Context, chart, categoryID string) ([]domain.Video, error) {
	q := []ports.Param{param("part", "snippet"), param("chart", chart), param("regionCode", s.region)}
	if categoryID != "" {
		q = append(q, param("videoCategoryId", categoryID))
	}
	res, _, err := s.list(ctx, ports.Request{Path: apiPath("videos"), Query: q}, domain.KindVideo)
	if err != nil {
		return nil, err
	}
	return collect[domain.Video](res), nil
}

// authUserInfo renvoie la chaîne de l'utilisateur connecté, nil si le compte n'en a pas.
func (s *session) authUserInfo(ctx context.Context) (*domain.Channel, error) {
	res, _, err := s.list(ctx, ports.Request{
		Path:  apiPath("channels"),
		Query: []ports.Param{param("part", "snippet,contentDetails,statistics"), param("mine", "true")},
	}, domain.KindChannel)
	if err != nil {
		return nil, err
	}
	if ch := collect[domain.Channel](res); len(ch) > 0 {
		return &ch[0], nil
	}
	return nil, nil
}

// search accepte tous les kinds connus; le total vient de pageInfo.totalResults.
func (s *session) search(ctx context.Context, query, categoryID string) ([]domain.Resource, int, error) {
	q := []ports.Param{
		param("part", "snippet"),
		param("type", "video"),
		param("maxResults", strconv.Itoa(s.cardinality)),
		param("q", query),
	}
	if categoryID != "" {
		q = append(q, param("videoCategoryId", categoryID))
	}
	res, rec, err := s.list(ctx, ports.Request{Path: apiPath("search"), Query: q}, domain.KindAny)
	if err != nil {
		return nil, 0, err
	}
	return res, int(rec.Int64("pageInfo", "totalResults")), nil
}

func (s *session) video(ctx context.Context, videoID string) (*domain.Video, error) {
	res, _, err := s.list(ctx, ports.Request{
		Path:  apiPath("videos"),
		Query: []ports.Param{param("part", "snippet,statistics"), param("id", videoID)},
	}, domain.KindVideo)
	if err != nil {
		return nil, err
	}
	if v := collect[domain.Video](res); len(v) > 0 {
		return &v[0], nil
	}
	return nil, nil
}

func (s *session) videoComments(ctx context.Context, videoID string) ([]domain.Comment, error) {
	res, _, err := s.list(ctx, ports.Request{
		Path:  apiPath("commentThreads"),
		Query: []ports.Param{param("part", "snippet"), param("videoId", videoID)},
	}, domain.KindComment)
	if err != nil {
		return nil, err
	}
	return collect[domain.Comment](res), nil
}
