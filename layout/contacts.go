package layout

import (
	"github.com/flanksource/doorsheet/api"
)

// LayoutContacts emits the primary (PI, safety officer) and emergency
// contact rows. Names are left aligned, phone numbers right aligned; blank
// fields emit nothing.
func LayoutContacts(req api.Request, r Regions, cfg Config, m Measurer) []api.Command {
	var out []api.Command
	rows := []struct {
		row     ContactRow
		contact api.Contact
	}{
		{r.Contacts[0], req.PI},
		{r.Contacts[1], req.SafetyOfficer},
		{r.Emergency[0], req.Emergency[0]},
		{r.Emergency[1], req.Emergency[1]},
	}
	for _, row := range rows {
		if row.contact.Name != "" {
			out = append(out, textRun(row.contact.Name, api.Point{X: row.row.NameX, Y: row.row.Baseline}, api.AlignLeft, api.FontRegular, cfg.ContactFontSize, m))
		}
		if row.contact.Phone != "" {
			out = append(out, textRun(row.contact.Phone, api.Point{X: row.row.PhoneX, Y: row.row.Baseline}, api.AlignRight, api.FontRegular, cfg.ContactFontSize, m))
		}
	}
	return out
}

// LayoutActivity centers the activity type and activity hazard class in
// their two borderless boxes, shrinking each to fit on one line.
func LayoutActivity(req api.Request, r Regions, cfg Config, m Measurer) []api.Command {
	var out []api.Command
	for i, text := range []string{req.ActivityType, req.ActivityClass} {
		if text == "" {
			continue
		}
		out = append(out, centered(text, r.Activity[i], api.FontRegular, cfg.ActivityFontSize, cfg, m))
	}
	return out
}

// LayoutHeader emits the department name in the label block and the room
// number in the room block. Both are bold and shrink to fit one line.
func LayoutHeader(req api.Request, r Regions, cfg Config, m Measurer) (department, room []api.Command) {
	if req.Department != "" {
		department = append(department, centered(req.Department, r.Header.Label, api.FontBold, cfg.DepartmentFontSize, cfg, m))
	}
	if req.Room != "" {
		room = append(room, centered(req.Room, r.Room, api.FontBold, cfg.RoomFontSize, cfg, m))
	}
	return department, room
}

func centered(text string, box api.Rect, style api.FontStyle, maxSize float64, cfg Config, m Measurer) api.TextCommand {
	size := FitLine(text, box.W-2*cfg.BlockPadding, maxSize, cfg.GroupMinFontSize, cfg.GroupFontStep, style, m)
	baseline := box.CenterY() - size*0.35
	return textRun(text, api.Point{X: box.CenterX(), Y: baseline}, api.AlignCenter, style, size, m)
}

func textRun(text string, at api.Point, align api.Align, style api.FontStyle, size float64, m Measurer) api.TextCommand {
	return api.TextCommand{
		Text:  text,
		At:    at,
		Style: style,
		Size:  size,
		Align: align,
		Width: m.TextWidth(text, style, size),
		Color: api.Black,
	}
}
