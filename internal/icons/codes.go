package icons

// Glyph names the pictogram drawn for a group of condition codes.
type Glyph string

const (
	Thunderstorm Glyph = "thunderstorm"
	Lightning    Glyph = "lightning"
	Sprinkle     Glyph = "sprinkle"
	Rain         Glyph = "rain"
	RainMix      Glyph = "rain-mix"
	Showers      Glyph = "showers"
	StormShowers Glyph = "storm-showers"
	Snow         Glyph = "snow"
	Sleet        Glyph = "sleet"
	Smoke        Glyph = "smoke"
	Haze         Glyph = "haze"
	Dust         Glyph = "dust"
	Fog          Glyph = "fog"
	Tornado      Glyph = "tornado"
	Sunny        Glyph = "sunny"
	CloudyGusts  Glyph = "cloudy-gusts"
	Cloudy       Glyph = "cloudy"
	Hurricane    Glyph = "hurricane"
	Cold         Glyph = "cold"
	Hot          Glyph = "hot"
	Windy        Glyph = "windy"
	Hail         Glyph = "hail"
	StrongWind   Glyph = "strong-wind"
)

// codeGlyphs maps OpenWeather condition ids to glyphs.
var codeGlyphs = map[int]Glyph{
	200: Thunderstorm,
	201: Thunderstorm,
	202: Thunderstorm,
	210: Lightning,
	211: Lightning,
	212: Lightning,
	221: Lightning,
	230: Thunderstorm,
	231: Thunderstorm,
	232: Thunderstorm,

	300: Sprinkle,
	301: Sprinkle,
	302: Rain,
	310: Rain,
	311: Rain,
	312: Rain,
	313: Rain,
	314: Rain,
	321: Sprinkle,

	500: Sprinkle,
	501: Rain,
	502: Rain,
	503: Rain,
	504: Rain,
	511: RainMix,
	520: Showers,
	521: Showers,
	522: Showers,
	531: StormShowers,

	600: Snow,
	601: Sleet,
	602: Snow,
	611: RainMix,
	612: RainMix,
	615: RainMix,
	616: RainMix,
	620: RainMix,
	621: Snow,
	622: Snow,

	701: Showers,
	711: Smoke,
	721: Haze,
	731: Dust,
	741: Fog,
	761: Dust,
	762: Dust,
	781: Tornado,

	800: Sunny,
	801: CloudyGusts,
	802: CloudyGusts,
	803: CloudyGusts,
	804: Cloudy,

	900: Tornado,
	901: StormShowers,
	902: Hurricane,
	903: Cold,
	904: Hot,
	905: Windy,
	906: Hail,
	957: StrongWind,
}

// GlyphFor returns the glyph for an OpenWeather condition id.
func GlyphFor(code int) (Glyph, bool) {
	g, ok := codeGlyphs[code]
	return g, ok
}
