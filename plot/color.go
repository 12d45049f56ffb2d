package plot

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrInvalidColor = errors.New("invalid color")

// parseColor understands the CSS forms used in chart configs: #rgb, #rrggbb, rgb() and rgba().
func parseColor(s string) (drawing.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseRGBColor(s[len("rgba("):len(s)-1], 4)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGBColor(s[len("rgb("):len(s)-1], 3)
	}
	return drawing.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHexColor(hex string) (drawing.Color, error) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return drawing.Color{}, fmt.Errorf("%w: #%s", ErrInvalidColor, hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return drawing.Color{}, fmt.Errorf("%w: #%s", ErrInvalidColor, hex)
	}
	return drawing.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

func parseRGBColor(body string, parts int) (drawing.Color, error) {
	fields := strings.Split(body, ",")
	if len(fields) != parts {
		return drawing.Color{}, fmt.Errorf("%w: expected %d components in %q", ErrInvalidColor, parts, body)
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		c, err := strconv.Atoi(strings.TrimSpace(fields[i]))
		if err != nil || c < 0 || c > 255 {
			return drawing.Color{}, fmt.Errorf("%w: component %q", ErrInvalidColor, fields[i])
		}
		rgb[i] = uint8(c)
	}
	alpha := uint8(255)
	if parts == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return drawing.Color{}, fmt.Errorf("%w: alpha %q", ErrInvalidColor, fields[3])
		}
		alpha = uint8(math.Round(a * 255))
	}
	return drawing.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: alpha}, nil
}
