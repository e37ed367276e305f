// Package reproject validates target projection settings and moves viewpoint
// coordinates from WGS84 into them.
package reproject

import (
	"strconv"
	"strings"
)

// Spec names a target coordinate reference system by EPSG code and, optionally,
// a proj4 definition registered under that code.
type Spec struct {
	EPSG  string `mapstructure:"epsg" yaml:"epsg"`
	Proj4 string `mapstructure:"proj4" yaml:"proj4"`
}

// IsZero reports whether the spec names nothing, which is the same as WGS84.
func (s Spec) IsZero() bool {
	return strings.TrimSpace(s.EPSG) == "" && strings.TrimSpace(s.Proj4) == ""
}

func (s Spec) key() string {
	return strings.TrimSpace(s.EPSG) + "\x00" + strings.Join(strings.Fields(s.Proj4), " ")
}

// ParseEPSG extracts the numeric code from "EPSG:25832", "epsg:25832" or "25832".
func ParseEPSG(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if len(s) > 5 && strings.EqualFold(s[:5], "EPSG:") {
		s = s[5:]
	}
	code, err := strconv.Atoi(s)
	if err != nil || code <= 0 {
		return 0, false
	}
	return code, true
}
