package buildinfo

import "strings"

// Injectées à la compilation via -ldflags :
//
//	-X github.com/Guilhem-Bonnet/tubebrowse/internal/buildinfo.Version=v0.3.0
//	-X github.com/Guilhem-Bonnet/tubebrowse/internal/buildinfo.Commit=abcdef
//	-X github.com/Guilhem-Bonnet/tubebrowse/internal/buildinfo.Date=2026-10-01
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
	Date    string `json:"date,omitempty"`
}

func Current() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

func (i Info) String() string {
	parts := []string{i.Version}
	if i.Commit != "" {
		c := i.Commit
		if len(c) > 7 {
			c = c[:7]
		}
		parts = append(parts, c)
	}
	if i.Date != "" {
		parts = append(parts, i.Date)
	}
	return strings.Join(parts, " ")
}

// UserAgent est envoyé au catalogue sur chaque appel.
func UserAgent() string {
	return "tubebrowse/" + Version
}
