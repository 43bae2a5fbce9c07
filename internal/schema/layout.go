package schema

import "encoding/json"

// Layout is per-board UI state. Purely presentational; every field has a
// default so documents written before a panel existed still open correctly.
type Layout struct {
	ActiveTab      string  `json:"active_tab"`
	SidebarVisible bool    `json:"sidebar_visible"`
	SidebarWidth   float64 `json:"sidebar_width"`
	ChatPanelWidth float64 `json:"chat_panel_width"`
	ZoomLevel      float64 `json:"zoom_level"`
}

// DefaultLayout returns the layout state for a fresh board.
func DefaultLayout() Layout {
	return Layout{
		ActiveTab:      "canvas",
		SidebarVisible: true,
		SidebarWidth:   280,
		ChatPanelWidth: 360,
		ZoomLevel:      1.0,
	}
}

// UnmarshalJSON decodes layout state over the defaults, so fields added
// after a document was written keep their defaults instead of zeroing.
func (l *Layout) UnmarshalJSON(data []byte) error {
	type alias Layout
	a := alias(DefaultLayout())
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*l = Layout(a)
	return nil
}
