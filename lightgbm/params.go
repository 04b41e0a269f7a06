package lightgbm

import (
	"math"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	lgbmerrors "github.com/YuminosukeSato/lightgbm-go/pkg/errors"
)

// DefaultNumIterations is the number of boosting rounds Train runs when the
// parameters name none.
const DefaultNumIterations = 100

// Params is a set of LightGBM parameters. Values must be scalars: strings,
// booleans, integers or finite floats. Nothing is defaulted; keys the engine
// does not know are passed through and rejected (or ignored) by the engine.
type Params map[string]any

// Encode renders p as the engine's parameter string: key=value pairs sorted
// by key and joined by single spaces. An empty set encodes to "".
//
// Example:
//
//	s, _ := lightgbm.Params{"objective": "binary", "num_leaves": 31}.Encode()
//	// s == "num_leaves=31 objective=binary"
func (p Params) Encode() (string, error) {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if err := validateKey(k); err != nil {
			return "", err
		}
		v, err := formatValue(k, p[k])
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(v)
	}
	return b.String(), nil
}

func validateKey(key string) error {
	switch {
	case key == "":
		return lgbmerrors.NewEncodingError("Encode", key, "empty key", key)
	case strings.ContainsRune(key, '='):
		return lgbmerrors.NewEncodingError("Encode", key, "key contains '='", key)
	case strings.IndexFunc(key, isSeparator) >= 0:
		return lgbmerrors.NewEncodingError("Encode", key, "key contains whitespace or NUL", key)
	}
	return nil
}

func isSeparator(r rune) bool {
	return r == 0 || unicode.IsSpace(r)
}

func formatValue(key string, v any) (string, error) {
	rv := reflect.ValueOf(v)
	var s string
	switch rv.Kind() {
	case reflect.String:
		s = rv.String()
		if s == "" {
			return "", lgbmerrors.NewEncodingError("Encode", key, "empty string value", v)
		}
	case reflect.Bool:
		s = strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		s = strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		s = strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", lgbmerrors.NewEncodingError("Encode", key, "value is not finite", v)
		}
		bits := 64
		if rv.Kind() == reflect.Float32 {
			bits = 32
		}
		s = strconv.FormatFloat(f, 'g', -1, bits)
	case reflect.Invalid:
		return "", lgbmerrors.NewEncodingError("Encode", key, "nil value", v)
	default:
		return "", lgbmerrors.NewEncodingError("Encode", key, "unsupported value type "+rv.Type().String(), v)
	}
	if strings.IndexFunc(s, isSeparator) >= 0 {
		return "", lgbmerrors.NewEncodingError("Encode", key, "value contains whitespace or NUL", v)
	}
	return s, nil
}

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge returns a copy of p with every entry of other applied on top.
func (p Params) Merge(other Params) Params {
	out := p.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// ParseParams parses whitespace-separated key=value tokens. Values are kept
// as strings; the engine parses them itself.
func ParseParams(s string) (Params, error) {
	p := Params{}
	for _, tok := range strings.Fields(s) {
		key, value, ok := strings.Cut(tok, "=")
		if !ok || key == "" || value == "" {
			return nil, lgbmerrors.NewEncodingError("ParseParams", "", "expected key=value", tok)
		}
		p[key] = value
	}
	return p, nil
}

// LoadParams reads a YAML mapping of parameters, e.g.
//
//	objective: binary
//	num_iterations: 50
//	learning_rate: 0.05
func LoadParams(path string) (Params, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, lgbmerrors.Wrapf(err, "read parameter file %s", path)
	}
	var values map[string]any
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, lgbmerrors.Wrapf(err, "parse parameter file %s", path)
	}
	p := make(Params, len(values))
	for k, v := range values {
		p[k] = v
	}
	return p, nil
}

// numIterations resolves how many boosting rounds Train runs. Only the
// num_iterations key counts; engine aliases such as num_trees are passed
// through to the engine but leave the round count at the default.
func numIterations(p Params) (int, error) {
	v, ok := p["num_iterations"]
	if !ok {
		return DefaultNumIterations, nil
	}
	n, ok := toInt(v)
	if !ok {
		return 0, lgbmerrors.NewEncodingError("Train", "num_iterations", "must be an integer", v)
	}
	if n < 1 {
		return 0, lgbmerrors.NewEncodingError("Train", "num_iterations", "must be at least 1", v)
	}
	return n, nil
}

func toInt(v any) (int, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		return int(n), n <= math.MaxInt32 && n >= math.MinInt32
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := rv.Uint()
		return int(n), n <= math.MaxInt32
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return 0, false
		}
		return int(f), true
	case reflect.String:
		n, err := strconv.ParseInt(strings.TrimSpace(rv.String()), 10, 32)
		if err != nil {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
