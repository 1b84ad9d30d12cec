package layout

import "github.com/flanksource/doorsheet/api"

// DebugColor outlines regions when debug drawing is enabled
var DebugColor = api.RGB{R: 255, G: 0, B: 255}

// Outline returns hairline rectangles around every fixed region, drawn on
// top of a sheet to check a template against the configured geometry.
func (r Regions) Outline() []api.Command {
	boxes := []api.Rect{
		r.MainBox, r.ObligationBox,
		r.Header.Logo, r.Header.Label, r.Header.Groups, r.Header.Room,
		r.Activity[0], r.Activity[1],
	}
	var out []api.Command
	for _, b := range boxes {
		out = append(out, rectOutline(b)...)
	}
	for _, row := range append(r.Contacts[:], r.Emergency[:]...) {
		out = append(out, api.LineCommand{
			From:  api.Point{X: row.NameX, Y: row.Baseline},
			To:    api.Point{X: row.PhoneX, Y: row.Baseline},
			Width: 0.5,
			Color: DebugColor,
		})
	}
	return out
}

func rectOutline(b api.Rect) []api.Command {
	corners := []api.Point{{X: b.X, Y: b.Y}, {X: b.Right(), Y: b.Y}, {X: b.Right(), Y: b.Top()}, {X: b.X, Y: b.Top()}}
	out := make([]api.Command, 0, 4)
	for i := range corners {
		out = append(out, api.LineCommand{From: corners[i], To: corners[(i+1)%4], Width: 0.5, Color: DebugColor})
	}
	return out
}
