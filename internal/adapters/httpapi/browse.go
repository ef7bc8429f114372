package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Guilhem-Bonnet/tubebrowse/internal/app"
	"github.com/Guilhem-Bonnet/tubebrowse/internal/domain"
	"github.com/Guilhem-Bonnet/tubebrowse/internal/httpjson"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
)

const maxLimit = 50

type BrowseHandler struct {
	nav  *app.Navigator
	auth AuthFunc
}

func NewBrowseHandler(nav *app.Navigator, auth AuthFunc) *BrowseHandler {
	return &BrowseHandler{nav: nav, auth: auth}
}

func (h *BrowseHandler) Routes(r chi.Router) {
	r.Get("/browse", h.browse)
	r.Get("/search", h.search)
	r.Get("/videos/{id}", h.video)
}

// request construit la requête de navigation. La déconnexion du client lève
// le drapeau d'annulation; stop doit être appelé en fin de handler.
func (h *BrowseHandler) request(r *http.Request) (app.Request, func() bool, error) {
	q := r.URL.Query()
	limit := 0
	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxLimit {
			return app.Request{}, nil, errors.New("invalid limit")
		}
		limit = n
	}
	flag := app.NewCancelFlag()
	stop := context.AfterFunc(r.Context(), flag.Cancel)
	return app.Request{
		Token:       q.Get("token"),
		Locale:      strings.TrimSpace(q.Get("locale")),
		Region:      strings.ToUpper(strings.TrimSpace(q.Get("region"))),
		Cardinality: limit,
		Auth:        h.auth(),
		Cancel:      flag,
	}, stop, nil
}

func (h *BrowseHandler) browse(w http.ResponseWriter, r *http.Request) {
	req, stop, err := h.request(r)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer stop()

	rs, err := h.nav.Navigate(r.Context(), req)
	if err != nil {
		writeNavError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, app.Present(rs))
}

func (h *BrowseHandler) search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "missing q")
		return
	}
	req, stop, err := h.request(r)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer stop()

	rs, err := h.nav.Search(r.Context(), req, query)
	if err != nil {
		writeNavError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, app.Present(rs))
}

type commentView struct {
	app.Card
	AuthorID string `json:"authorId,omitempty"`
}

type videoView struct {
	Video       app.Card                `json:"video"`
	ChannelID   string                  `json:"channelId,omitempty"`
	PublishedAt string                  `json:"publishedAt,omitempty"`
	Statistics  *domain.VideoStatistics `json:"statistics,omitempty"`
	Comments    []commentView           `json:"comments"`
}

func (h *BrowseHandler) video(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "missing id")
		return
	}
	req, stop, err := h.request(r)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer stop()

	d, err := h.nav.Video(r.Context(), req, id)
	if err != nil {
		writeNavError(w, r, err)
		return
	}
	out := videoView{
		Video:       app.CardOf(d.Video, domain.PersonalPlaylists{}),
		ChannelID:   d.Video.ChannelID,
		PublishedAt: d.Video.PublishedAt,
		Statistics:  d.Video.Statistics,
		Comments:    make([]commentView, 0, len(d.Comments)),
	}
	for _, c := range d.Comments {
		out.Comments = append(out.Comments, commentView{Card: app.CardOf(c, domain.PersonalPlaylists{}), AuthorID: c.Author.ID})
	}
	httpjson.Write(w, http.StatusOK, out)
}

// writeNavError traduit le code d'erreur en statut HTTP.
func writeNavError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := app.ErrorCode(err)
	switch {
	case errors.Is(err, app.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case code == app.CodeTimeout:
		status = http.StatusGatewayTimeout
	case code == app.CodeRemote, code == app.CodeNetwork:
		status = http.StatusBadGateway
	case code == app.CodeCanceled:
		status = http.StatusServiceUnavailable
	}
	logger := hlog.FromRequest(r)
	if code == app.CodeCanceled {
		logger.Debug().Err(err).Msg("navigation canceled")
	} else {
		logger.Error().Err(err).Str("code", code).Msg("navigation failed")
	}
	if code == "" {
		code = "internal"
	}
	httpjson.WriteCodedError(w, status, code, err.Error())
}
