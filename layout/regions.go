package layout

import (
	"math"

	"github.com/flanksource/doorsheet/api"
)

// HeaderRow is the band near the top of the page, split left to right into
// a logo block, a label block (department name), the research group
// remainder and a room block.
type HeaderRow struct {
	Row    api.Rect `json:"row"`
	Logo   api.Rect `json:"logo"`
	Label  api.Rect `json:"label"`
	Groups api.Rect `json:"groups"`
	Room   api.Rect `json:"room"`
}

// ContactRow is one name/phone line: the name starts at NameX, the phone
// number ends at PhoneX, both on Baseline.
type ContactRow struct {
	Baseline float64 `json:"baseline"`
	NameX    float64 `json:"name_x"`
	PhoneX   float64 `json:"phone_x"`
}

// Regions is the fixed geometry of one page
type Regions struct {
	Page          api.Size      `json:"page"`
	MainBox       api.Rect      `json:"main_box"`
	ObligationBox api.Rect      `json:"obligation_box"`
	Header        HeaderRow     `json:"header"`
	Room          api.Rect      `json:"room"`
	Contacts      [2]ContactRow `json:"contacts"`
	Emergency     [2]ContactRow `json:"emergency"`
	Activity      [2]api.Rect   `json:"activity"`
}

// PlanRegions computes every fixed region of a page from its size. It is
// pure arithmetic: degenerate page sizes produce degenerate boxes.
func PlanRegions(page api.Size, cfg Config) Regions {
	r := Regions{Page: page}

	r.MainBox = api.Rect{
		X: cfg.MainBoxX,
		Y: cfg.MainBoxY,
		W: page.W * cfg.MainBoxWidthRatio,
		H: page.H * cfg.MainBoxHeightRatio,
	}
	r.ObligationBox = api.Rect{
		X: math.Min(page.W-r.MainBox.W-cfg.BoxGap, r.MainBox.Right()+cfg.BoxGap),
		Y: r.MainBox.Y,
		W: r.MainBox.W,
		H: r.MainBox.H,
	}

	row := api.Rect{
		X: cfg.HeaderMarginX,
		Y: page.H - cfg.HeaderTop - cfg.HeaderHeight,
		W: page.W - 2*cfg.HeaderMarginX,
		H: cfg.HeaderHeight,
	}
	r.Header = HeaderRow{
		Row:   row,
		Logo:  api.Rect{X: row.X, Y: row.Y, W: cfg.LogoWidth, H: row.H},
		Label: api.Rect{X: row.X + cfg.LogoWidth, Y: row.Y, W: cfg.LabelWidth, H: row.H},
		Room:  api.Rect{X: row.Right() - cfg.RoomWidth, Y: row.Y, W: cfg.RoomWidth, H: row.H},
	}
	groupsX := r.Header.Label.Right()
	r.Header.Groups = api.Rect{X: groupsX, Y: row.Y, W: r.Header.Room.X - groupsX, H: row.H}
	r.Room = r.Header.Room

	phoneX := page.W - cfg.ContactPhoneInset
	top := page.H - cfg.ContactTop
	for i := range r.Contacts {
		r.Contacts[i] = ContactRow{Baseline: top - float64(i)*cfg.ContactRowSpacing, NameX: cfg.ContactNameX, PhoneX: phoneX}
	}
	emergencyTop := top - cfg.EmergencyOffset
	for i := range r.Emergency {
		r.Emergency[i] = ContactRow{Baseline: emergencyTop - float64(i)*cfg.ContactRowSpacing, NameX: cfg.ContactNameX, PhoneX: phoneX}
	}

	activityY := r.Emergency[1].Baseline - cfg.ActivityOffset
	r.Activity[0] = api.Rect{X: cfg.ActivityX, Y: activityY, W: cfg.ActivityWidth, H: cfg.ActivityHeight}
	r.Activity[1] = api.Rect{X: page.W - cfg.ActivityX - cfg.ActivityWidth, Y: activityY, W: cfg.ActivityWidth, H: cfg.ActivityHeight}

	return r
}
