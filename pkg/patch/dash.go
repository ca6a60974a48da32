package patch

// dashPatterns maps named dash styles to stroke-dasharray values.
var dashPatterns = map[string]string{
	"solid":     "",
	"dashed":    "6 4",
	"dotted":    "2 3",
	"dash-dot":  "6 3 2 3",
	"long-dash": "12 6",
}

// DashArray resolves a named dash style. Unknown values are treated as a
// literal stroke-dasharray and returned unchanged; "solid" and "" mean no
// dashing.
func DashArray(name string) string {
	if v, ok := dashPatterns[name]; ok {
		return v
	}
	return name
}
