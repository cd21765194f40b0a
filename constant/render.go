package constant

import "time"

// Card Layout
const (
	CardWidth  = 12
	CardHeight = 7
	CardGap    = 4

	// CardTop is the first screen row of the card slots
	CardTop = 3
)

// Banner Timing
const (
	// BannerDuration is how long pick/throw/land/hit/fizzle text stays up
	BannerDuration = 800 * time.Millisecond

	// MaxBanners bounds queued banners, oldest dropped first
	MaxBanners = 8
)
