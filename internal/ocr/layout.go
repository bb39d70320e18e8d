package ocr

import (
	"fmt"
	"strings"
)

// Rect is a screen region in 1920x1080 reference coordinates. Regions are
// scaled to the actual screenshot dimensions before cropping, so any
// resolution with the same aspect layout works.
type Rect struct {
	X, Y, W, H int
}

// Mode selects the recognition pass a region is read with.
type Mode int

const (
	// ModeWords recognizes free text: song titles, pack names, usernames.
	ModeWords Mode = iota
	// ModeDigits restricts recognition to numeric characters.
	ModeDigits
)

// Layout maps every readable field of one noteskin theme's evaluation screen
// to its region and recognition mode.
type Layout struct {
	Name       string
	Rate       Rect
	Pack       Rect
	Username   Rect
	Song       Rect
	Artist     Rect
	Wifescore  Rect
	MSD        Rect
	SSR        Rect
	Judgements Rect
	Difficulty Rect
}

// tilDeathLayout matches the default Til Death evaluation screen.
var tilDeathLayout = Layout{
	Name:       "til-death",
	Rate:       Rect{914, 371, 98, 19},
	Pack:       Rect{241, 18, 1677, 55},
	Username:   Rect{461, 1004, 1111, 40},
	Song:       Rect{760, 322, 406, 32},
	Artist:     Rect{747, 350, 417, 25},
	Wifescore:  Rect{53, 339, 128, 40},
	MSD:        Rect{33, 385, 209, 51},
	SSR:        Rect{535, 385, 209, 51},
	Judgements: Rect{1422, 171, 308, 21},
	Difficulty: Rect{646, 324, 100, 56},
}

// rebirthLayout matches the Rebirth evaluation screen, which moves the score
// breakdown to the left column and the chart header to the top center.
var rebirthLayout = Layout{
	Name:       "rebirth",
	Rate:       Rect{660, 98, 110, 24},
	Pack:       Rect{190, 24, 1540, 48},
	Username:   Rect{24, 1030, 900, 36},
	Song:       Rect{310, 86, 520, 38},
	Artist:     Rect{310, 126, 520, 28},
	Wifescore:  Rect{64, 210, 180, 48},
	MSD:        Rect{64, 270, 190, 44},
	SSR:        Rect{64, 324, 190, 44},
	Judgements: Rect{1510, 210, 360, 26},
	Difficulty: Rect{860, 86, 110, 48},
}

var layouts = map[string]Layout{
	tilDeathLayout.Name: tilDeathLayout,
	rebirthLayout.Name:  rebirthLayout,
}

// LayoutByName looks up a built-in theme layout.
func LayoutByName(name string) (Layout, error) {
	layout, ok := layouts[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Layout{}, fmt.Errorf("unknown theme layout %q", name)
	}
	return layout, nil
}

// LayoutNames returns the built-in theme names.
func LayoutNames() []string {
	return []string{tilDeathLayout.Name, rebirthLayout.Name}
}
