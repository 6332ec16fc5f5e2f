package scene

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/math"
)

// Scalar attributes in scene files may be key-frame lists like
// "-1.0;1.0(i,0.5);2.0(o);3.0(0.9)". Each entry carries a value, an
// optional ease function and an optional target time. The ease function
// latches until overridden; the first entry defaults to time 0, later
// entries to time 1.
const keyframeExpr = `\s*([+-]?[\d.Ee+-]+)\s*(?:\(\s*([liob])(?:\s*,\s*(\+?[\d.Ee+-]+))?\s*\)|\(\s*(\+?[\d.Ee+-]+)?\s*\))?\s*`

var (
	firstKeyframe = regexp.MustCompile(`^` + keyframeExpr)
	nextKeyframe  = regexp.MustCompile(`^;` + keyframeExpr)
)

// EvaluateScalar resolves a possibly animated attribute value at the
// given normalized scene time.
func EvaluateScalar(attrValue string, time math.Scalar) (math.Scalar, error) {
	start := true
	value := math.Scalar(0)
	valueTime := math.Scalar(0)
	easeType := byte('l')

	pos := 0
	for pos < len(attrValue) {
		expr := nextKeyframe
		if start {
			expr = firstKeyframe
		}
		match := expr.FindStringSubmatch(attrValue[pos:])
		if match == nil {
			// trailing content that is not a key frame is ignored
			break
		}
		pos += len(match[0])

		targetValue, err := parseScalar(match[1])
		if err != nil {
			return 0, fmt.Errorf("invalid animation value %q", match[1])
		}

		if match[2] != "" {
			easeType = match[2][0]
		}

		// target time comes from either parenthesized form; the default is
		// 1.0 except for the first key frame, where it is 0.0
		targetTime := math.Scalar(1)
		if start {
			targetTime = 0
		}
		if match[3] != "" {
			if targetTime, err = parseScalar(match[3]); err != nil {
				return 0, fmt.Errorf("invalid animation time %q", match[3])
			}
		} else if match[4] != "" {
			if targetTime, err = parseScalar(match[4]); err != nil {
				return 0, fmt.Errorf("invalid animation time %q", match[4])
			}
		}

		if targetTime < 0 || targetTime > 1 {
			return 0, fmt.Errorf("invalid animation time")
		}

		if start || targetTime < time {
			// this key frame lies in the past, latch it
			if valueTime > targetTime {
				return 0, fmt.Errorf("animation time not in increasing order")
			}
			value = targetValue
			valueTime = targetTime
		} else {
			if valueTime > time {
				// the first key frame starts later than the queried time
				return value, nil
			}
			eased, err := ease(easeType, (time-valueTime)/(targetTime-valueTime))
			if err != nil {
				return 0, err
			}
			return eased*(targetValue-value) + value, nil
		}

		start = false
	}

	// past the last key frame
	return value, nil
}

func ease(easeType byte, t math.Scalar) (math.Scalar, error) {
	switch easeType {
	case 'l':
		return t, nil
	case 'i':
		return t * t * t, nil
	case 'o':
		u := 1 - t
		return 1 - u*u*u, nil
	case 'b':
		if t < 0.5 {
			u := t * 2
			return u * u * u / 2, nil
		}
		u := (1 - t) * 2
		return 1 - u*u*u/2, nil
	default:
		return 0, fmt.Errorf("invalid ease function selected")
	}
}

func parseScalar(s string) (math.Scalar, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	return math.Scalar(v), nil
}
