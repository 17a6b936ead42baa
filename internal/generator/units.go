package generator

import (
	"fmt"
	"strconv"
)

// pixelProps lists the CSS properties whose numeric values receive a px
// suffix. Properties absent from this set are emitted bare; strings are
// always emitted verbatim.
var pixelProps = map[string]bool{
	"left":           true,
	"top":            true,
	"right":          true,
	"bottom":         true,
	"width":          true,
	"height":         true,
	"min-width":      true,
	"min-height":     true,
	"max-width":      true,
	"max-height":     true,
	"font-size":      true,
	"margin":         true,
	"padding":        true,
	"border-radius":  true,
	"border-width":   true,
	"gap":            true,
	"letter-spacing": true,
}

// FormatValue renders one style value for CSS output, applying the fixed
// property→unit table to numeric values.
func FormatValue(property string, value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return formatNumber(property, v)
	case int:
		return formatNumber(property, float64(v))
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatNumber(property string, v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if pixelProps[property] && v != 0 {
		return s + "px"
	}
	return s
}
