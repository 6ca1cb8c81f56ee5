//go:generate go run github.com/Khan/genqlient

package senkuro

import "strings"

// PersistedQuery identifies an operation the upstream has already registered.
// The upstream rejects ad-hoc documents, so only the name and hash are sent.
type PersistedQuery struct {
	Name string // Upstream operation name.
	Hash string // sha256 of the registered document.
}

// PersistedQueries maps our generated operation names to their upstream
// registrations.
var PersistedQueries = map[string]PersistedQuery{
	"FetchMainPage": {
		Name: "fetchMainPage",
		Hash: "c1a427930add310e7e68870182c3b17a84b3bac00a46bed07b72d0760f5fd09a",
	},
	"FetchManga": {
		Name: "fetchManga",
		Hash: "6d8b28abb9a9ee3199f6553d8f0a61c005da8f5c56a88ebcf3778eff28d45bd5",
	},
	"FetchMangaChapters": {
		Name: "fetchMangaChapters",
		Hash: "8c854e121f05aa93b0c37889e732410df9ea207b4186c965c845a8d970bdcc12",
	},
	"FetchMangaChapter": {
		Name: "fetchMangaChapter",
		Hash: "8e166106650d3659d21e7aadc15e7e59e5def36f1793a9b15287c73a1e27aa50",
	},
	"FetchExperimentalSpotlights": {
		Name: "fetchExperimentalSpotlights",
		Hash: "f5264f555ff8bfde7b5b985cd8eafc0720b159a4e5bf0e6874a1d3b51eb20a9e",
	},
	"FetchPopularMangaByPeriod": {
		Name: "fetchPopularMangaByPeriod",
		Hash: "896d217de6cea8cedadd67abbfeed5e17589e77708d1e38b4f6a726ae409ca67",
	},
	"Search": {
		Name: "search",
		Hash: "e64937b4fc9c921c2141f2995473161bed921c75855c5de934752392175936bc",
	},
}

// Title picks the title in the first matching language, falling back to the
// first title we have. An empty string is returned when there are no titles.
func Title(titles []LocalizedText, langs ...string) string {
	for _, lang := range langs {
		for _, t := range titles {
			if strings.EqualFold(t.Lang, lang) && t.Content != "" {
				return t.Content
			}
		}
	}
	if len(titles) > 0 {
		return titles[0].Content
	}
	return ""
}

// URL returns the best available cover image. Main is preferred, then
// original, then the preview.
func (c Cover) URL() string {
	switch {
	case c.Main.Url != "":
		return c.Main.Url
	case c.Original.Url != "":
		return c.Original.Url
	default:
		return c.Preview.Url
	}
}

// Primary returns the branch chapters should be read from: the primary
// branch, else the first one. False is returned if there are no branches.
func (m *MangaDetails) Primary() (Branch, bool) {
	for _, b := range m.Branches {
		if b.PrimaryBranch {
			return b, true
		}
	}
	if len(m.Branches) > 0 {
		return m.Branches[0], true
	}
	return Branch{}, false
}
