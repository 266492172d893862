package finder

import (
	"fmt"
	"strconv"
)

type episodeKind uint8

const (
	episodeAll episodeKind = iota
	episodeLatest
	episodeNumber
)

// EpisodeNumber selects which episodes of a series a query should return.
// The zero value selects all episodes.
type EpisodeNumber struct {
	kind   episodeKind
	number int
}

// AllEpisodes selects every episode.
func AllEpisodes() EpisodeNumber {
	return EpisodeNumber{kind: episodeAll}
}

// LatestEpisode selects the most recently modified episode.
func LatestEpisode() EpisodeNumber {
	return EpisodeNumber{kind: episodeLatest}
}

// Episode selects a single numbered episode.
func Episode(n int) EpisodeNumber {
	return EpisodeNumber{kind: episodeNumber, number: n}
}

// ParseEpisodeNumber parses "latest" or a signed integer.
// There is no text form for All; it is only available as the zero value.
func ParseEpisodeNumber(s string) (EpisodeNumber, error) {
	if s == "latest" {
		return LatestEpisode(), nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return EpisodeNumber{}, fmt.Errorf("invalid episode number %q", s)
	}
	return Episode(int(n)), nil
}

// IsAll reports whether e selects every episode.
func (e EpisodeNumber) IsAll() bool { return e.kind == episodeAll }

// IsLatest reports whether e selects the latest episode.
func (e EpisodeNumber) IsLatest() bool { return e.kind == episodeLatest }

// Number returns the selected episode and true when e is a specific episode.
func (e EpisodeNumber) Number() (int, bool) {
	if e.kind != episodeNumber {
		return 0, false
	}
	return e.number, true
}

// Matches reports whether an episode passes the selector. latest is the
// episode currently considered the newest.
func (e EpisodeNumber) Matches(episode, latest int) bool {
	switch e.kind {
	case episodeLatest:
		return episode == latest
	case episodeNumber:
		return episode == e.number
	default:
		return true
	}
}

func (e EpisodeNumber) String() string {
	switch e.kind {
	case episodeLatest:
		return "latest"
	case episodeNumber:
		return strconv.Itoa(e.number)
	default:
		return "all"
	}
}

// Set implements pflag.Value.
func (e *EpisodeNumber) Set(s string) error {
	parsed, err := ParseEpisodeNumber(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Type implements pflag.Value.
func (e *EpisodeNumber) Type() string {
	return "episode"
}

// MarshalText renders the selector as "all", "latest" or the episode number.
func (e EpisodeNumber) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}
