package nerdfonts

// Calendar related symbols
const (
	Calendar      = "\uF073"
	CalendarCheck = "\uF274"
)

// Status and notification symbols
const (
	InfoCircle          = "\uF05A"
	CheckCircle         = "\uF058"
	ExclamationCircle   = "\uF06A"
	ExclamationTriangle = "\uF071"
)
