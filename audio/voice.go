package audio

import (
	"github.com/lixenwraith/pickacard/card"
	"github.com/lixenwraith/pickacard/constant"
	"github.com/lixenwraith/pickacard/event"
)

func click(freq float64) Voice {
	return Voice{Wave: WaveSquare, Freq: freq, Duration: constant.ClickDuration,
		Attack: constant.ClickAttack, Release: constant.ClickRelease, Gain: 0.25}
}

func quote(wave WaveType, freq, end float64) Voice {
	return Voice{Wave: wave, Freq: freq, EndFreq: end, Duration: constant.QuoteDuration,
		Attack: constant.QuoteAttack, Release: constant.QuoteRelease, Gain: 0.35}
}

func whoosh(freq, end float64) Voice {
	return Voice{Wave: WaveSine, Freq: freq, EndFreq: end, Duration: constant.WhooshDuration,
		Attack: constant.WhooshAttack, Release: constant.WhooshRelease, Gain: 0.3}
}

func impact(wave WaveType, freq float64) Voice {
	return Voice{Wave: wave, Freq: freq, Duration: constant.ImpactDuration,
		Attack: constant.ImpactAttack, Release: constant.ImpactRelease, Gain: 0.4}
}

func chime(freq, end float64) Voice {
	return Voice{Wave: WaveSine, Freq: freq, EndFreq: end, Duration: constant.ChimeDuration,
		Attack: constant.ChimeAttack, Release: constant.ChimeRelease, Gain: 0.3}
}

// voiceBank lists the variants played in rotation for each event
// Show, Hide and the debug readouts are silent
var voiceBank = map[event.Type][]Voice{
	event.Flip:         {click(900), click(1000), click(1100)},
	event.Intermediate: {click(1500)},
	event.Flight:       {whoosh(250, 800), whoosh(300, 900), whoosh(200, 700)},
	// Noise voices use Freq only as the noise seed
	event.Land:    {impact(WaveNoise, 1), impact(WaveNoise, 7), impact(WaveNoise, 13)},
	event.Hit:     {impact(WaveSaw, 110), impact(WaveSaw, 98), impact(WaveSaw, 123)},
	event.Fizzle:  {quote(WaveSaw, 600, 150)},
	event.Destiny: {chime(440, 880), chime(523, 1046)},
	event.Gate:    {chime(880, 440), chime(1046, 523)},
	event.Hat:     {click(1200)},
}

// pickVoices gives each card its own quote
var pickVoices = map[card.Item][]Voice{
	card.Blue: {quote(WaveSine, 523, 659), quote(WaveSine, 587, 698)},
	card.Red:  {quote(WaveSaw, 392, 330), quote(WaveSaw, 349, 294)},
	card.Gold: {quote(WaveSquare, 659, 784), quote(WaveSquare, 698, 880)},
}

func variantsFor(ev event.Event) []Voice {
	if ev.Type == event.Pick {
		return pickVoices[ev.Item]
	}
	return voiceBank[ev.Type]
}

// allVoices lists every voice in the banks, used to warm the cache
func allVoices() []Voice {
	var out []Voice
	for _, vs := range voiceBank {
		out = append(out, vs...)
	}
	for _, vs := range pickVoices {
		out = append(out, vs...)
	}
	return out
}
