package metrics

import "strings"

var nameSanitizer = strings.NewReplacer(
	" ", "_",
	".", "_",
	"-", "_",
	"=", "_",
	"/", "_",
)

// FlattenName rewrites a free-form name into a prometheus-safe identifier.
func FlattenName(name string) string {
	return nameSanitizer.Replace(name)
}

func BuildFQName(names ...string) string {
	return FlattenName(strings.Join(names, "_"))
}
