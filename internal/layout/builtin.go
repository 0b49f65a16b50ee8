package layout

import (
	"image"

	"github.com/i474232898/weather-epaper/internal/display"
)

// Builtin returns the layouts of the supported panels, keyed by name.
func Builtin() map[string]Variant {
	return map[string]Variant{
		"epd2in9":    epd2in9(),
		"epd4in2":    epd4in2(),
		"epd7in5bc":  epd7in5bc(),
		"epd2in13v4": epd2in13v4(),
	}
}

// epd2in9 is a current-conditions-only strip.
func epd2in9() Variant {
	return Variant{
		Name:     "epd2in9",
		Width:    296,
		Height:   128,
		IconSize: 48,
		Current: CurrentPanel{
			Icon:        true,
			IconAt:      image.Pt(8, 40),
			TempAt:      image.Pt(152, 86),
			TempFont:    display.FontLarge,
			TempFormat:  "%.1fC",
			Details:     true,
			DetailsAt:   image.Pt(70, 40),
			DetailsFont: display.FontSmall,
			Sun:         true,
			SunAt:       image.Pt(108, 0),
			SunFont:     display.FontSmall,
		},
	}
}

func epd4in2() Variant {
	return Variant{
		Name:                 "epd4in2",
		Width:                400,
		Height:               300,
		Forecast:             true,
		GraphHeight:          120,
		HorizontalMultiplier: 10,
		HorizontalAnchor:     35,
		VerticalAnchor:       25,
		GridlineMin:          -30,
		GridlineMax:          50,
		GridlineStep:         10,
		GridLabelFormat:      "%3dC",
		IconSize:             48,
		IconOffset:           image.Pt(11, -195),
		TextOffset:           image.Pt(18, -20),
		SummaryFormat:        "%.0f/%.0fC",
		SummaryFont:          display.FontSmall,
		CurvePlane:           display.Black,
		Current: CurrentPanel{
			Icon:        true,
			IconAt:      image.Pt(20, 10),
			TempAt:      image.Pt(90, 14),
			TempFont:    display.FontLarge,
			TempFormat:  "%.1fC",
			Details:     true,
			DetailsAt:   image.Pt(90, 50),
			DetailsFont: display.FontSmall,
			Sun:         true,
			SunAt:       image.Pt(250, 4),
			SunFont:     display.FontMedium,
		},
	}
}

// epd7in5bc is the black/red panel with weekday names and a red curve.
func epd7in5bc() Variant {
	return Variant{
		Name:                 "epd7in5bc",
		Width:                640,
		Height:               384,
		Chromatic:            true,
		Forecast:             true,
		GraphHeight:          160,
		HorizontalMultiplier: 18,
		HorizontalAnchor:     35,
		VerticalAnchor:       80,
		GridlineMin:          -20,
		GridlineMax:          40,
		GridlineStep:         10,
		GridLabelFormat:      "%3dC",
		IconSize:             48,
		IconOffset:           image.Pt(-15, -72),
		TextOffset:           image.Pt(50, -50),
		WeekdayOffset:        image.Pt(50, -72),
		ShowWeekday:          true,
		SummaryFormat:        "%.0fC\n%.0fC",
		SummaryFont:          display.FontSmall,
		CurvePlane:           display.Chromatic,
		WeekdayPlane:         display.Chromatic,
		Current: CurrentPanel{
			Icon:          true,
			IconAt:        image.Pt(60, 50),
			IconPlane:     display.Chromatic,
			TempAt:        image.Pt(34, 110),
			TempFont:      display.FontLarge,
			TempFormat:    "%.1fC",
			TempPlane:     display.Chromatic,
			Details:       true,
			DetailsAt:     image.Pt(190, 50),
			DetailsFont:   display.FontMedium,
			Sun:           true,
			SunAt:         image.Pt(476, 0),
			SunFont:       display.FontMedium,
			SunIcons:      true,
			SunriseIconAt: image.Pt(458, 2),
			SunsetIconAt:  image.Pt(622, 2),
		},
	}
}

// epd2in13v4 is the Waveshare HAT driven through periph.io.
func epd2in13v4() Variant {
	return Variant{
		Name:     "epd2in13v4",
		Width:    250,
		Height:   122,
		IconSize: 48,
		Current: CurrentPanel{
			Icon:        true,
			IconAt:      image.Pt(4, 24),
			TempAt:      image.Pt(56, 30),
			TempFont:    display.FontLarge,
			TempFormat:  "%.1fC",
			Details:     true,
			DetailsAt:   image.Pt(4, 76),
			DetailsFont: display.FontSmall,
		},
	}
}
