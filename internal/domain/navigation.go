package domain

import "strings"

type DepartmentType string

const (
	DepartmentRoot          DepartmentType = ""
	DepartmentGuideCategory DepartmentType = "guideCategory"
	DepartmentChannel       DepartmentType = "channel"
	DepartmentPlaylist      DepartmentType = "playlist"
	DepartmentSubscriptions DepartmentType = "subscriptions"
	DepartmentSubscription  DepartmentType = "subscription"
	DepartmentAggregated    DepartmentType = "aggregated"
)

// SectionType raffine uniquement DepartmentGuideCategory.
type SectionType string

const (
	SectionNone      SectionType = ""
	SectionVideos    SectionType = "videos"
	SectionPlaylists SectionType = "playlists"
	SectionChannels  SectionType = "channels"
)

// NavigationIntent est la forme décodée d'un token de navigation.
type NavigationIntent struct {
	Department DepartmentType `json:"department"`
	ID         string         `json:"id"`
	Section    SectionType    `json:"section,omitempty"`
}

func (i NavigationIntent) IsRoot() bool { return i.Department == DepartmentRoot }

func (i NavigationIntent) Token() string { return EncodeToken(i) }

type tokenPrefix struct {
	prefix     string
	department DepartmentType
	section    SectionType
}

// Table des préfixes, parcourue dans cet ordre au décodage.
// Les préfixes sont tous terminés par ':' donc aucun n'est préfixe d'un autre;
// l'ordre reste fixe pour que le décodage soit déterministe.
var tokenPrefixes = []tokenPrefix{
	{"guideCategory-videos:", DepartmentGuideCategory, SectionVideos},
	{"guideCategory-playlists:", DepartmentGuideCategory, SectionPlaylists},
	{"guideCategory-channels:", DepartmentGuideCategory, SectionChannels},
	{"guideCategory:", DepartmentGuideCategory, SectionNone},
	{"channel:", DepartmentChannel, SectionNone},
	{"playlist:", DepartmentPlaylist, SectionNone},
	{"subscriptions:", DepartmentSubscriptions, SectionNone},
	{"subscription:", DepartmentSubscription, SectionNone},
	{"aggregated:", DepartmentAggregated, SectionNone},
}

// Les ids sont échappés pour qu'un ':' (ou un '%') ne casse pas le découpage.
// Les ids du catalogue n'en contiennent pas: le token produit reste "<prefix>:<id>".
var (
	idEscaper   = strings.NewReplacer("%", "%25", ":", "%3A")
	idUnescaper = strings.NewReplacer("%3A", ":", "%3a", ":", "%25", "%")
)

// EncodeToken est total et déterministe. La racine s'encode en "".
// Une section n'est prise en compte que pour DepartmentGuideCategory.
func EncodeToken(i NavigationIntent) string {
	if i.Department == DepartmentRoot {
		return ""
	}
	section := SectionNone
	if i.Department == DepartmentGuideCategory {
		section = i.Section
	}
	for _, p := range tokenPrefixes {
		if p.department == i.Department && p.section == section {
			return p.prefix + idEscaper.Replace(i.ID)
		}
	}
	// Section inconnue: on retombe sur le département seul.
	return string(i.Department) + ":" + idEscaper.Replace(i.ID)
}

// DecodeToken est total: "" donne la racine, un préfixe inconnu donne une
// catégorie (id = tout ce qui suit le premier ':', ou la chaîne entière sans ':').
func DecodeToken(token string) NavigationIntent {
	if token == "" {
		return NavigationIntent{Department: DepartmentRoot}
	}
	for _, p := range tokenPrefixes {
		if strings.HasPrefix(token, p.prefix) {
			return NavigationIntent{
				Department: p.department,
				ID:         idUnescaper.Replace(token[len(p.prefix):]),
				Section:    p.section,
			}
		}
	}
	_, id, found := strings.Cut(token, ":")
	if !found {
		id = token
	}
	return NavigationIntent{Department: DepartmentGuideCategory, ID: idUnescaper.Replace(id)}
}

// Tokens de navigation fréquents.

func CategoryToken(id string, section SectionType) string {
	return EncodeToken(NavigationIntent{Department: DepartmentGuideCategory, ID: id, Section: section})
}

func ChannelToken(id string) string {
	return EncodeToken(NavigationIntent{Department: DepartmentChannel, ID: id})
}

func PlaylistToken(id string) string {
	return EncodeToken(NavigationIntent{Department: DepartmentPlaylist, ID: id})
}

func SubscriptionToken(channelID string) string {
	return EncodeToken(NavigationIntent{Department: DepartmentSubscription, ID: channelID})
}
