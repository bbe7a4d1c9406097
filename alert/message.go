package alert

import "github.com/rapidrescue/rescuedge/geo"

// Message returns the SMS body for an emergency at p.
func Message(p geo.Point) string {
	return "🚨 EMERGENCY ALERT!\n\nLocation: " + geo.MapLink(p) + "\n\nImmediate assistance required."
}
