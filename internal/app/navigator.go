package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Guilhem-Bonnet/tubebrowse/internal/domain"
	"github.com/Guilhem-Bonnet/tubebrowse/internal/ports"
	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultCallTimeout    = 10 * time.Second
	DefaultMaxConcurrency = 8
	DefaultCardinality    = 10
	DefaultLocale         = "en_US"
	DefaultRegion         = "US"

	// ChannelQueryPrefix ouvre directement la vue d'une chaîne depuis la recherche.
	ChannelQueryPrefix = "ChannelId::"
)

type Options struct {
	CallTimeout    time.Duration
	MaxConcurrency int
	Cardinality    int
	Locale         string
	Region         string
}

func (o Options) withDefaults() Options {
	if o.CallTimeout <= 0 {
		o.CallTimeout = DefaultCallTimeout
	}
	if o.MaxConcurrency <= 0 {
		o.MaxConcurrency = DefaultMaxConcurrency
	}
	if o.Cardinality <= 0 {
		o.Cardinality = DefaultCardinality
	}
	if o.Locale == "" {
		o.Locale = DefaultLocale
	}
	if o.Region == "" {
		o.Region = DefaultRegion
	}
	return o
}

// Request porte les paramètres d'une requête de navigation.
// Les champs vides reprennent les valeurs de Options.
type Request struct {
	Token       string
	Locale      string
	Region      string
	Cardinality int
	Auth        ports.AuthContext
	Cancel      *CancelFlag
}

// Navigator est l'orchestrateur: il décode le token, lance les appels catalogue
// (en parallèle quand ils sont indépendants) et assemble un ResultSet ordonné.
// Il ne garde aucun état entre deux requêtes.
type Navigator struct {
	getter     ports.CatalogGetter
	bus        ports.EventBus
	logger     zerolog.Logger
	dispatcher *Dispatcher
	opts       Options
}

func NewNavigator(getter ports.CatalogGetter, bus ports.EventBus, logger zerolog.Logger, opts Options) *Navigator {
	logger = logger.With().Str("component", "navigator").Logger()
	return &Navigator{
		getter:     getter,
		bus:        bus,
		logger:     logger,
		dispatcher: NewDispatcher(logger),
		opts:       opts.withDefaults(),
	}
}

func (n *Navigator) session(r Request) *session {
	s := &session{
		id:          xid.New(),
		getter:      n.getter,
		auth:        r.Auth,
		sem:         semaphore.NewWeighted(int64(n.opts.MaxConcurrency)),
		timeout:     n.opts.CallTimeout,
		flag:        r.Cancel,
		dispatcher:  n.dispatcher,
		locale:      r.Locale,
		region:      r.Region,
		cardinality: r.Cardinality,
	}
	if s.locale == "" {
		s.locale = n.opts.Locale
	}
	if s.region == "" {
		s.region = n.opts.Region
	}
	if s.cardinality <= 0 {
		s.cardinality = n.opts.Cardinality
	}
	s.logger = n.logger.With().Str("request", s.id.String()).Logger()
	return s
}

// Navigate résout un token de navigation ("" = racine).
// Tout ou rien: en cas d'erreur ou d'annulation aucun ResultSet n'est renvoyé.
func (n *Navigator) Navigate(ctx context.Context, r Request) (*domain.ResultSet, error) {
	s := n.session(r)
	ctx, cancel := s.flag.bind(ctx)
	defer cancel()

	started := time.Now()
	intent := domain.DecodeToken(r.Token)
	s.logger.Debug().Str("token", r.Token).Str("department", string(intent.Department)).Msg("navigate")

	rs, err := n.navigate(ctx, s, intent)
	return n.finish(s, "browse", r.Token, started, rs, err)
}

func (n *Navigator) navigate(ctx context.Context, s *session, intent domain.NavigationIntent) (*domain.ResultSet, error) {
	rs := &domain.ResultSet{Intent: intent}

	var (
		categories []domain.GuideCategory
		me         *domain.Channel
	)
	err := both(ctx,
		func(ctx context.Context) error {
			var err error
			categories, err = s.guideCategories(ctx)
			return err
		},
		func(ctx context.Context) error {
			if !s.auth.Authenticated {
				return nil
			}
			var err error
			me, err = s.authUserInfo(ctx)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	if me != nil {
		rs.Personal = domain.PersonalPlaylistsOf(*me)
		if intent.IsRoot() {
			rs.Header = me
		}
	}

	// La liste des abonnements alimente l'arbre; elle sert aussi de contenu
	// pour le département "subscriptions", sans second appel.
	var subs []domain.Subscription
	err = both(ctx,
		func(ctx context.Context) error {
			if !s.auth.Authenticated {
				return nil
			}
			var err error
			subs, err = s.subscriptionChannels(ctx)
			return err
		},
		func(ctx context.Context) error {
			return n.content(ctx, s, intent, categories, rs)
		},
	)
	if err != nil {
		return nil, err
	}

	if intent.Department == domain.DepartmentSubscriptions {
		rs.Buckets = []domain.Bucket{{ID: "subscriptions", Title: "My Subscriptions", Items: asResources(subs)}}
	}
	rs.Departments = departmentTree(categories, s.auth.Authenticated, subs, rs.Personal)
	rs.LoginRequired = !s.auth.Authenticated && intent.Department != domain.DepartmentAggregated
	return rs, nil
}

func (n *Navigator) content(ctx context.Context, s *session, intent domain.NavigationIntent, categories []domain.GuideCategory, rs *domain.ResultSet) error {
	switch intent.Department {
	case domain.DepartmentRoot:
		if len(categories) == 0 {
			return nil
		}
		return s.browse(ctx, categories[0].ID, rs)

	case domain.DepartmentGuideCategory:
		switch intent.Section {
		case domain.SectionVideos:
			return s.categoryVideos(ctx, intent.ID, rs)
		case domain.SectionPlaylists:
			return s.categoryPlaylists(ctx, intent.ID, rs)
		case domain.SectionChannels:
			return s.categoryChannelList(ctx, intent.ID, rs)
		default:
			return s.browse(ctx, intent.ID, rs)
		}

	case domain.DepartmentChannel:
		return s.channelView(ctx, intent.ID, rs)

	case domain.DepartmentPlaylist:
		if intent.ID == domain.MyPlaylistsDepartmentID {
			return s.personalPlaylists(ctx, rs)
		}
		items, err := s.playlistItems(ctx, intent.ID)
		if err != nil {
			return err
		}
		rs.Buckets = []domain.Bucket{{ID: "playlist", Title: "Playlist contents", Items: asResources(items)}}
		return nil

	case domain.DepartmentSubscriptions:
		// rempli par navigate à partir de l'appel de l'arbre
		return nil

	case domain.DepartmentSubscription:
		return s.subscriptionUploadsView(ctx, intent.ID, rs)

	case domain.DepartmentAggregated:
		category := ""
		if intent.ID == domain.MusicAggregatorKey {
			category = domain.MusicCategoryID
		}
		videos, err := s.chartVideos(ctx, "mostPopular", category)
		if err != nil {
			return err
		}
		rs.Buckets = []domain.Bucket{{ID: "popular", Title: "YouTube", Items: asResources(videos)}}
		return nil
	}
	return nil
}

// browse: chaînes de la catégorie, puis pour chacune (en parallèle)
// section principale -> items de sa playlist. Assemblage dans l'ordre des chaînes.
func (s *session) browse(ctx context.Context, categoryID string, rs *domain.ResultSet) error {
	channels, err := s.categoryChannels(ctx, categoryID)
	if err != nil {
		return err
	}

	type chain struct {
		resolved bool
		items    []domain.PlaylistItem
	}
	chains, err := fanOut(ctx, channels, func(ctx context.Context, ch domain.Channel) (chain, error) {
		sections, err := s.channelSections(ctx, ch.ID, 1)
		if err != nil {
			return chain{}, err
		}
		playlistID := firstPlaylist(sections)
		if playlistID == "" {
			s.logger.Debug().Str("code", CodeMissingDependency).Str("channel", ch.ID).Msg("no playlist section, channel skipped")
			return chain{}, nil
		}
		items, err := s.playlistItems(ctx, playlistID)
		if err != nil {
			return chain{}, err
		}
		return chain{resolved: true, items: items}, nil
	})
	if err != nil {
		return err
	}

	first := true
	for i, c := range chains {
		if !c.resolved {
			continue
		}
		items := asResources(c.items)
		if first {
			first = false
			if len(items) > 0 {
				rs.Popular = items[:1]
				items = items[1:]
			}
		}
		rs.Buckets = append(rs.Buckets, domain.Bucket{ID: channels[i].ID, Title: channels[i].Title, Items: items})
	}
	return nil
}

func firstPlaylist(sections []domain.ChannelSection) string {
	for _, sec := range sections {
		if sec.PlaylistID != "" {
			return sec.PlaylistID
		}
	}
	return ""
}

func (s *session) categoryVideos(ctx context.Context, categoryID string, rs *domain.ResultSet) error {
	channels, err := s.categoryChannels(ctx, categoryID)
	if err != nil {
		return err
	}
	perChannel, err := fanOut(ctx, channels, func(ctx context.Context, ch domain.Channel) ([]domain.Video, error) {
		return s.channelVideos(ctx, ch.ID)
	})
	if err != nil {
		return err
	}
	var items []domain.Resource
	for _, videos := range perChannel {
		items = append(items, asResources(videos)...)
	}
	rs.Buckets = []domain.Bucket{{ID: "videos", Title: "Videos", Items: items}}
	if len(channels) == 0 {
		rs.Notice = "No video can be found in this channel"
	}
	return nil
}

func (s *session) categoryPlaylists(ctx context.Context, categoryID string, rs *domain.ResultSet) error {
	channels, err := s.categoryChannels(ctx, categoryID)
	if err != nil {
		return err
	}
	perChannel, err := fanOut(ctx, channels, func(ctx context.Context, ch domain.Channel) ([]domain.Playlist, error) {
		return s.channelPlaylists(ctx, ch.ID)
	})
	if err != nil {
		return err
	}
	var items []domain.Resource
	for _, playlists := range perChannel {
		items = append(items, asResources(playlists)...)
	}
	rs.Buckets = []domain.Bucket{{ID: "playlists", Title: "Playlists", Items: items}}
	if len(channels) == 0 {
		rs.Notice = "No playlist can be found in this channel"
	}
	return nil
}

func (s *session) categoryChannelList(ctx context.Context, categoryID string, rs *domain.ResultSet) error {
	channels, err := s.categoryChannels(ctx, categoryID)
	if err != nil {
		return err
	}
	rs.Buckets = []domain.Bucket{{ID: "channels", Title: "Channels", Items: asResources(channels)}}
	if len(channels) == 0 {
		rs.Notice = "No channel can be found"
	}
	return nil
}

// channelView: en-tête (statistiques) et vidéos de la chaîne, en parallèle.
func (s *session) channelView(ctx context.Context, channelID string, rs *domain.ResultSet) error {
	var (
		header *domain.Channel
		videos []domain.Video
	)
	err := both(ctx,
		func(ctx context.Context) error {
			var err error
			header, err = s.channelStatistics(ctx, channelID)
			return err
		},
		func(ctx context.Context) error {
			var err error
			videos, err = s.channelVideos(ctx, channelID)
			return err
		},
	)
	if err != nil {
		return err
	}
	if header != nil {
		rs.Header = header
	}
	rs.Buckets = []domain.Bucket{{ID: "channel", Title: "Channel contents", Items: asResources(videos)}}
	if len(videos) == 0 {
		rs.Notice = "No video can be found"
	}
	return nil
}

// personalPlaylists liste en parallèle les playlists personnelles, un bucket par playlist.
func (s *session) personalPlaylists(ctx context.Context, rs *domain.ResultSet) error {
	named := rs.Personal.Named()
	perPlaylist, err := fanOut(ctx, named, func(ctx context.Context, p domain.NamedPlaylist) ([]domain.PlaylistItem, error) {
		return s.playlistItems(ctx, p.ID)
	})
	if err != nil {
		return err
	}
	for i, items := range perPlaylist {
		rs.Buckets = append(rs.Buckets, domain.Bucket{ID: named[i].ID, Title: named[i].Label, Items: asResources(items)})
	}
	return nil
}

// subscriptionUploadsView: chaîne dépendante uploads -> items.
func (s *session) subscriptionUploadsView(ctx context.Context, channelID string, rs *domain.ResultSet) error {
	uploads, err := s.subscriptionUploads(ctx, channelID)
	if err != nil {
		return err
	}
	bucket := domain.Bucket{ID: "subscription", Title: "Uploads"}
	if uploads == "" {
		s.logger.Debug().Str("code", CodeMissingDependency).Str("channel", channelID).Msg("no uploads playlist")
		rs.Buckets = []domain.Bucket{bucket}
		return nil
	}
	items, err := s.subscriptionItems(ctx, uploads)
	if err != nil {
		return err
	}
	bucket.Items = asResources(items)
	rs.Buckets = []domain.Bucket{bucket}
	return nil
}

// departmentTree construit l'arbre de navigation à partir des catégories.
// Connecté, "My Subscriptions" et "My Playlists" sont insérés juste après la première catégorie.
func departmentTree(categories []domain.GuideCategory, authenticated bool, subs []domain.Subscription, personal domain.PersonalPlaylists) []domain.Department {
	tree := make([]domain.Department, 0, len(categories)+2)
	for _, c := range categories {
		tree = append(tree, domain.Department{
			Token: domain.CategoryToken(c.ID, domain.SectionNone),
			Title: c.Title,
			Children: []domain.Department{
				{Token: domain.CategoryToken(c.ID, domain.SectionVideos), Title: "Videos"},
				{Token: domain.CategoryToken(c.ID, domain.SectionPlaylists), Title: "Playlists"},
				{Token: domain.CategoryToken(c.ID, domain.SectionChannels), Title: "Channels"},
			},
		})
	}
	if !authenticated {
		return tree
	}

	subsDept := domain.Department{
		Token: domain.EncodeToken(domain.NavigationIntent{Department: domain.DepartmentSubscriptions, ID: domain.SubscriptionsDepartmentID}),
		Title: "My Subscriptions",
	}
	for _, sub := range subs {
		subsDept.Children = append(subsDept.Children, domain.Department{Token: domain.SubscriptionToken(sub.ID), Title: sub.Title})
	}
	playlistDept := domain.Department{
		Token: domain.PlaylistToken(domain.MyPlaylistsDepartmentID),
		Title: "My Playlists",
	}
	for _, p := range personal.Named() {
		playlistDept.Children = append(playlistDept.Children, domain.Department{Token: domain.PlaylistToken(p.ID), Title: p.Label})
	}

	at := 0
	if len(tree) > 0 {
		at = 1
	}
	spliced := make([]domain.Department, 0, len(tree)+2)
	spliced = append(spliced, tree[:at]...)
	spliced = append(spliced, subsDept, playlistDept)
	spliced = append(spliced, tree[at:]...)
	return spliced
}

// Search lance une recherche libre. Une requête vide revient à Navigate;
// "ChannelId::<id>" ouvre la vue de la chaîne.
func (n *Navigator) Search(ctx context.Context, r Request, query string) (*domain.ResultSet, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return n.Navigate(ctx, r)
	}

	s := n.session(r)
	ctx, cancel := s.flag.bind(ctx)
	defer cancel()
	started := time.Now()

	if id, ok := strings.CutPrefix(query, ChannelQueryPrefix); ok {
		intent := domain.NavigationIntent{Department: domain.DepartmentChannel, ID: id}
		rs := &domain.ResultSet{Intent: intent}
		err := s.channelView(ctx, id, rs)
		return n.finish(s, "search", query, started, rs, err)
	}

	intent := domain.DecodeToken(r.Token)
	category := ""
	if intent.Department == domain.DepartmentAggregated && intent.ID == domain.MusicAggregatorKey {
		category = domain.MusicCategoryID
	}
	items, total, err := s.search(ctx, query, category)
	if err != nil {
		return n.finish(s, "search", query, started, nil, err)
	}
	rs := &domain.ResultSet{
		Intent:       intent,
		Buckets:      []domain.Bucket{{ID: "search", Title: resultsTitle(total), Items: items}},
		TotalResults: total,
	}
	return n.finish(s, "search", query, started, rs, nil)
}

func resultsTitle(total int) string {
	if total == 1 {
		return "1 result from YouTube"
	}
	return fmt.Sprintf("%d results from YouTube", total)
}

type VideoDetails struct {
	Video    domain.Video     `json:"video"`
	Comments []domain.Comment `json:"comments"`
}

// Video récupère une vidéo et ses fils de commentaires en parallèle.
func (n *Navigator) Video(ctx context.Context, r Request, videoID string) (*VideoDetails, error) {
	s := n.session(r)
	ctx, cancel := s.flag.bind(ctx)
	defer cancel()
	started := time.Now()

	var (
		video    *domain.Video
		comments []domain.Comment
	)
	err := both(ctx,
		func(ctx context.Context) error {
			var err error
			video, err = s.video(ctx, videoID)
			return err
		},
		func(ctx context.Context) error {
			var err error
			comments, err = s.videoComments(ctx, videoID)
			return err
		},
	)
	if err == nil && s.flag.Canceled() {
		err = canceledError(context.Canceled)
	}
	if err == nil && video == nil {
		err = fmt.Errorf("video %s: %w", videoID, ErrNotFound)
	}
	evt := navigationEvent{RequestID: s.id.String(), Kind: "video", Token: videoID, ElapsedMs: time.Since(started).Milliseconds()}
	if err != nil {
		evt.Code, evt.Error = ErrorCode(err), err.Error()
		n.publish("navigation.failed", evt)
		return nil, err
	}
	evt.Count = len(comments) + 1
	n.publish("navigation.completed", evt)
	return &VideoDetails{Video: *video, Comments: comments}, nil
}

type navigationEvent struct {
	RequestID string `json:"requestId"`
	Kind      string `json:"kind"`
	Token     string `json:"token"`
	Count     int    `json:"count"`
	Code      string `json:"code,omitempty"`
	Error     string `json:"error,omitempty"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// finish applique la règle du tout ou rien puis publie l'issue sur le bus.
func (n *Navigator) finish(s *session, kind, token string, started time.Time, rs *domain.ResultSet, err error) (*domain.ResultSet, error) {
	if err == nil && s.flag.Canceled() {
		err = canceledError(context.Canceled)
	}
	evt := navigationEvent{RequestID: s.id.String(), Kind: kind, Token: token, ElapsedMs: time.Since(started).Milliseconds()}
	if err != nil {
		evt.Code, evt.Error = ErrorCode(err), err.Error()
		s.logger.Debug().Err(err).Str("code", evt.Code).Msg("navigation failed")
		n.publish("navigation.failed", evt)
		return nil, err
	}
	evt.Count = rs.Count()
	n.publish("navigation.completed", evt)
	return rs, nil
}

func (n *Navigator) publish(topic string, v any) {
	if n.bus == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	n.bus.Publish(topic, b)
}
