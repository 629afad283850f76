package overlay

// Dimming levels offered by the tray menu.
const (
	NoDimming = 0.0
	Dim50     = 0.50
	Dim75     = 0.75
	Dim90     = 0.90
)

// Command is a tray menu entry mapped to one opacity level.
type Command struct {
	Label   string
	Tooltip string
	Opacity float64
}

// Commands lists the opacity commands in menu order.
func Commands() []Command {
	return []Command{
		{Label: "No Dimming", Tooltip: "Make the overlay fully transparent", Opacity: NoDimming},
		{Label: "50% Dimming", Tooltip: "Dim the screen by half", Opacity: Dim50},
		{Label: "75% Dimming", Tooltip: "Dim the screen by three quarters", Opacity: Dim75},
		{Label: "90% Dimming", Tooltip: "Dim the screen almost completely", Opacity: Dim90},
	}
}
