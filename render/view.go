// Package render draws the hand on a tcell screen
package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pickacard/card"
	"github.com/lixenwraith/pickacard/constant"
	"github.com/lixenwraith/pickacard/event"
	"github.com/lixenwraith/pickacard/status"
)

var (
	styleText   = tcell.StyleDefault
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBanner = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleFizzle = tcell.StyleDefault.Foreground(tcell.ColorGray).Italic(true)
	styleDebug  = tcell.StyleDefault.Foreground(tcell.ColorLightGreen)
)

var cardColors = [card.Count]tcell.Color{
	card.Blue: tcell.ColorRoyalBlue,
	card.Red:  tcell.ColorRed,
	card.Gold: tcell.ColorGold,
}

const helpLine = "space cast  s/enter select  t/c throw  k shake  d debug  r reset  q quit"

// banner is transient text, visible from showAt until showAt+BannerDuration
type banner struct {
	text   string
	style  tcell.Style
	showAt time.Duration
}

// View renders hand events, implements event.Sink
// Emit and Frame must be called from the same goroutine (the driver loop)
type View struct {
	screen tcell.Screen
	stats  *status.Registry

	shown    [card.Count]bool
	debug    bool
	snapshot event.Snapshot
	banners  []banner

	// View clock advanced by Frame, used to honour event delays
	now time.Duration
}

// NewView returns a view drawing to screen, stats may be nil
func NewView(screen tcell.Screen, stats *status.Registry) *View {
	return &View{
		screen: screen,
		stats:  stats,
	}
}

// Emit folds ev into the view state
func (v *View) Emit(ev event.Event) {
	switch ev.Type {
	case event.Show:
		v.shown[ev.Item.MustValid()] = true
	case event.Hide:
		v.shown[ev.Item.MustValid()] = false
	case event.Pick:
		v.push(fmt.Sprintf("PICK %s", ev.Item), cardStyle(ev.Item), ev.Delay)
	case event.Flight:
		v.push("THROW", styleBanner, ev.Delay)
	case event.Land:
		v.push("LAND", styleBanner, ev.Delay)
	case event.Hit:
		v.push("HIT", cardStyle(ev.Item), ev.Delay)
	case event.Fizzle:
		v.push("fizzle...", styleFizzle, ev.Delay)
	case event.Hat:
		v.push("RESET", styleDim, 0)
	case event.DebugToggle:
		v.debug = ev.Enabled
	case event.DebugSnapshot:
		v.snapshot = ev.Snapshot
	}
}

func (v *View) push(text string, style tcell.Style, delay time.Duration) {
	v.banners = append(v.banners, banner{text: text, style: style, showAt: v.now + delay})
	if over := len(v.banners) - constant.MaxBanners; over > 0 {
		v.banners = v.banners[over:]
	}
}

// Frame advances the view clock by dt and redraws with the given state label
func (v *View) Frame(dt time.Duration, state string) {
	if dt > 0 {
		v.now += dt
	}
	v.expire()
	v.Draw(state)
}

func (v *View) expire() {
	kept := v.banners[:0]
	for _, b := range v.banners {
		if v.now < b.showAt+constant.BannerDuration {
			kept = append(kept, b)
		}
	}
	v.banners = kept
}

func (v *View) visible() []banner {
	var out []banner
	for _, b := range v.banners {
		if v.now >= b.showAt && v.now < b.showAt+constant.BannerDuration {
			out = append(out, b)
		}
	}
	return out
}

// Banners returns the texts currently visible
func (v *View) Banners() []string {
	var out []string
	for _, b := range v.visible() {
		out = append(out, b.text)
	}
	return out
}

// Draw repaints the whole screen
func (v *View) Draw(state string) {
	v.screen.Clear()
	width, height := v.screen.Size()

	drawText(v.screen, 1, 0, styleText, fmt.Sprintf("Pick A Card  [%s]", state))
	v.drawCards()

	row := constant.CardTop + constant.CardHeight + 1
	col := 1
	for _, b := range v.visible() {
		drawText(v.screen, col, row, b.style, b.text)
		col += len(b.text) + 2
	}

	if v.stats != nil {
		drawText(v.screen, 1, row+2, styleDim, fmt.Sprintf("flips %d  picks %d  throws %d  fizzles %d",
			v.stats.Count(status.EventKey(event.Flip.String())),
			v.stats.Count(status.EventKey(event.Pick.String())),
			v.stats.Count(status.EventKey(event.Flight.String())),
			v.stats.Count(status.EventKey(event.Fizzle.String())),
		))
	}

	if v.debug {
		v.drawDebug(width - 26)
	}

	drawText(v.screen, 1, height-1, styleDim, helpLine)
	v.screen.Show()
}

func (v *View) drawCards() {
	for i, item := range card.All() {
		x := 1 + i*(constant.CardWidth+constant.CardGap)
		style := styleDim
		if v.shown[item] {
			style = cardStyle(item)
		}
		drawBox(v.screen, x, constant.CardTop, constant.CardWidth, constant.CardHeight, style)
		if v.shown[item] {
			label := item.String()
			drawText(v.screen, x+(constant.CardWidth-len(label))/2, constant.CardTop+constant.CardHeight/2, style.Bold(true), label)
		}
	}
}

// drawDebug prints the timer readout with two decimals
func (v *View) drawDebug(x int) {
	if x < 1 {
		x = 1
	}
	s := v.snapshot
	lines := []string{
		fmt.Sprintf("state:  %s", s.State),
		fmt.Sprintf("card:   %s", s.Item),
		fmt.Sprintf("item:   %.2f", s.TimeLeftOnItem.Seconds()),
		fmt.Sprintf("select: %.2f", s.TimeLeftToSelect.Seconds()),
		fmt.Sprintf("throw:  %.2f", s.TimeLeftToCommit.Seconds()),
	}
	for i, line := range lines {
		drawText(v.screen, x, 1+i, styleDebug, line)
	}
}

func cardStyle(item card.Item) tcell.Style {
	return tcell.StyleDefault.Foreground(cardColors[item.MustValid()])
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func drawBox(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	for col := x + 1; col < x+w-1; col++ {
		s.SetContent(col, y, '─', nil, style)
		s.SetContent(col, y+h-1, '─', nil, style)
	}
	for row := y + 1; row < y+h-1; row++ {
		s.SetContent(x, row, '│', nil, style)
		s.SetContent(x+w-1, row, '│', nil, style)
	}
	s.SetContent(x, y, '┌', nil, style)
	s.SetContent(x+w-1, y, '┐', nil, style)
	s.SetContent(x, y+h-1, '└', nil, style)
	s.SetContent(x+w-1, y+h-1, '┘', nil, style)
}
