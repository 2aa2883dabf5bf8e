package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"mime"
	"strconv"
	"strings"
)

var (
	errNotInteger     = errors.New("values must be a list of integers")
	errTrailingData   = errors.New("unexpected data after JSON body")
	errValuesRequired = errors.New("values is required")
)

// intValue accepts any JSON value representable as an int64: integer
// literals, floats without a fractional part, and numeric strings.
type intValue int64

func (v *intValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return errNotInteger
	}
	s := string(b)
	switch c := b[0]; {
	case c == '"':
		u, err := strconv.Unquote(s)
		if err != nil {
			return errNotInteger
		}
		s = strings.TrimSpace(u)
	case c == '-' || (c >= '0' && c <= '9'):
	default:
		// null, bool, object, array
		return errNotInteger
	}
	n, err := parseInt64(s)
	if err != nil {
		return err
	}
	*v = intValue(n)
	return nil
}

// parseInt64 parses s as an integer, falling back to a float with no
// fractional part that fits in int64.
func parseInt64(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, errNotInteger
	}
	// float64(math.MaxInt64) rounds up to 2^63, which is out of range.
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, errNotInteger
	}
	return int64(f), nil
}

// predictBody distinguishes a missing or null "values" from an empty list.
type predictBody struct {
	Values *[]intValue `json:"values"`
}

// decodePredict reads exactly one JSON object from r and returns its values.
func decodePredict(r io.Reader) ([]int64, error) {
	dec := json.NewDecoder(r)
	var body predictBody
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	if body.Values == nil {
		return nil, errValuesRequired
	}
	out := make([]int64, len(*body.Values))
	for i, v := range *body.Values {
		out[i] = int64(v)
	}
	return out, nil
}

// decodeErrorMessage maps a decodePredict error to the client-facing message.
func decodeErrorMessage(err error) string {
	var te *json.UnmarshalTypeError
	switch {
	case errors.Is(err, errValuesRequired):
		return errValuesRequired.Error()
	case errors.Is(err, errNotInteger), errors.As(err, &te):
		return errNotInteger.Error()
	default:
		return "invalid JSON body"
	}
}

// isJSONContentType reports whether a request Content-Type may carry JSON.
// An absent header is treated as JSON.
func isJSONContentType(ct string) bool {
	if strings.TrimSpace(ct) == "" {
		return true
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false
	}
	return mt == "application/json" || (strings.HasPrefix(mt, "application/") && strings.HasSuffix(mt, "+json"))
}
