package content

import (
	"errors"
	"fmt"
)

// Track is a curriculum path used to filter content.
type Track string

const (
	TrackSOC     Track = "soc"
	TrackGeneral Track = "general"

	// TrackBoth marks content that belongs to every track. It is never a
	// selectable track on its own.
	TrackBoth Track = "both"
)

// ErrUnknownTrack is returned when a track id is not in the catalog.
var ErrUnknownTrack = errors.New("unknown track")

// Matches reports whether content tagged with t belongs to the requested track.
func (t Track) Matches(requested Track) bool {
	return t == requested || t == TrackBoth
}

// LearnBlock is the static learning section of a daily mission.
type LearnBlock struct {
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
}

// TrackInfo describes a selectable track.
type TrackInfo struct {
	ID          Track      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Modules     []string   `json:"modules"`
	SeedOffset  int        `json:"seedOffset"`
	Learn       LearnBlock `json:"learn"`
}

// ResolveTrack returns the track with the given id.
func (c *Catalog) ResolveTrack(id string) (TrackInfo, error) {
	if ti, ok := c.Track(Track(id)); ok {
		return ti, nil
	}
	return TrackInfo{}, fmt.Errorf("%w: %q", ErrUnknownTrack, id)
}
