package models

// IconKeyDefault is the icon used when a category carries an unknown key.
const IconKeyDefault = "wallet"

// categoryIcons enumerates the icon keys the dashboard knows how to render.
var categoryIcons = map[string]bool{
	"wallet":    true,
	"home":      true,
	"food":      true,
	"market":    true,
	"transport": true,
	"health":    true,
	"education": true,
	"leisure":   true,
	"travel":    true,
	"gift":      true,
	"pet":       true,
	"salary":    true,
	"invest":    true,
	"piggybank": true,
	"card":      true,
	"phone":     true,
	"clothes":   true,
	"tools":     true,
}

// NormalizeIconKey maps an icon key to a renderable one.
// Unknown keys fall back to IconKeyDefault instead of propagating
// an unrenderable value to clients.
func NormalizeIconKey(key string) string {
	if categoryIcons[key] {
		return key
	}
	return IconKeyDefault
}

// IsIconKey reports whether key is a known icon key.
func IsIconKey(key string) bool {
	return categoryIcons[key]
}
