package domain

// Valeurs spéciales de navigation.
const (
	// MusicAggregatorKey est la clé d'agrégation qui restreint "most popular" à la musique.
	MusicAggregatorKey = "musicaggregator"
	MusicCategoryID    = "10"

	// Départements synthétiques ajoutés à l'arbre quand l'utilisateur est connecté.
	SubscriptionsDepartmentID = "subscriptions"
	MyPlaylistsDepartmentID   = "my_playlist"
)

// Bucket est une liste ordonnée de ressources affichée sous un même titre.
type Bucket struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Items []Resource `json:"-"`
}

// Department est un noeud de l'arbre de navigation (token + titre, avec enfants éventuels).
type Department struct {
	Token    string       `json:"token"`
	Title    string       `json:"title"`
	Children []Department `json:"children,omitempty"`
}

// PersonalPlaylists sont les playlists liées à la chaîne de l'utilisateur connecté.
type PersonalPlaylists struct {
	Favorites  string `json:"favorites,omitempty"`
	Likes      string `json:"likes,omitempty"`
	WatchLater string `json:"watchLater,omitempty"`
}

func PersonalPlaylistsOf(c Channel) PersonalPlaylists {
	return PersonalPlaylists{Favorites: c.FavoritesPlaylist, Likes: c.LikesPlaylist, WatchLater: c.WatchLaterPlaylist}
}

type NamedPlaylist struct {
	Label string
	ID    string
}

// Named renvoie les playlists non vides, triées par libellé.
func (p PersonalPlaylists) Named() []NamedPlaylist {
	out := make([]NamedPlaylist, 0, 3)
	for _, np := range []NamedPlaylist{
		{Label: "Favorites", ID: p.Favorites},
		{Label: "Likes", ID: p.Likes},
		{Label: "Watch Later", ID: p.WatchLater},
	} {
		if np.ID != "" {
			out = append(out, np)
		}
	}
	return out
}

// ResultSet est construit une fois par requête de navigation puis remis à l'appelant.
// Il n'est plus modifié ensuite.
type ResultSet struct {
	Intent        NavigationIntent
	Header        *Channel
	Popular       []Resource
	Buckets       []Bucket
	Departments   []Department
	Personal      PersonalPlaylists
	LoginRequired bool
	Notice        string
	TotalResults  int
}

// Count renvoie le nombre total de ressources (populaires + buckets).
func (rs ResultSet) Count() int {
	n := len(rs.Popular)
	for _, b := range rs.Buckets {
		n += len(b.Items)
	}
	return n
}
