// Package params validates and clamps generation parameters before they are
// forwarded to the inference server.
//
// Validation never rejects out-of-range values: every numeric parameter is
// pulled to the nearest bound of its closed interval, and absent parameters
// receive documented defaults. The only failure mode is a value that cannot
// be coerced to its expected type at all, which yields a
// MalformedParameterError for the caller to report as a client error.
package params

// Parameters is the fully-populated, range-clamped set of generation
// parameters. Its JSON form merges cleanly into an upstream request body
// alongside model and messages/prompt fields.
type Parameters struct {
	Temperature      float64  `json:"temperature"`
	TopP             float64  `json:"top_p"`
	TopK             int      `json:"top_k"`
	MaxTokens        int      `json:"max_tokens"`
	FrequencyPenalty float64  `json:"frequency_penalty"`
	PresencePenalty  float64  `json:"presence_penalty"`
	RepeatPenalty    float64  `json:"repeat_penalty"`
	Stream           bool     `json:"stream"`
	Stop             []string `json:"stop,omitempty"`
	Seed             *int     `json:"seed,omitempty"`
}

// maxStopSequences bounds the stop list forwarded upstream.
const maxStopSequences = 10

// numericRule describes one clamped numeric parameter: its closed interval,
// default, and where the coerced value lands in Parameters.
type numericRule struct {
	key         string
	min, max    float64
	def         float64
	integer     bool
	description string
	rangeText   string
	assign      func(*Parameters, float64)
}

// rules is the clamp table, in documented order.
var rules = []numericRule{
	{
		key: "temperature", min: 0.0, max: 2.0, def: 0.7,
		description: "Controls randomness in output",
		rangeText:   "0.0-2.0",
		assign:      func(p *Parameters, v float64) { p.Temperature = v },
	},
	{
		key: "top_p", min: 0.0, max: 1.0, def: 0.9,
		description: "Nucleus sampling parameter",
		rangeText:   "0.0-1.0",
		assign:      func(p *Parameters, v float64) { p.TopP = v },
	},
	{
		key: "top_k", min: 1, max: 100, def: 40, integer: true,
		description: "Top-k sampling parameter",
		rangeText:   "1-100",
		assign:      func(p *Parameters, v float64) { p.TopK = int(v) },
	},
	{
		key: "max_tokens", min: 1, max: 4096, def: 256, integer: true,
		description: "Maximum tokens to generate",
		rangeText:   "1-4096",
		assign:      func(p *Parameters, v float64) { p.MaxTokens = int(v) },
	},
	{
		key: "frequency_penalty", min: -2.0, max: 2.0, def: 0.0,
		description: "Penalize repeated tokens",
		rangeText:   "-2.0 to 2.0",
		assign:      func(p *Parameters, v float64) { p.FrequencyPenalty = v },
	},
	{
		key: "presence_penalty", min: -2.0, max: 2.0, def: 0.0,
		description: "Penalize new topics",
		rangeText:   "-2.0 to 2.0",
		assign:      func(p *Parameters, v float64) { p.PresencePenalty = v },
	},
	{
		key: "repeat_penalty", min: 0.0, max: 2.0, def: 1.1,
		description: "Penalty for repetition",
		rangeText:   "0.0-2.0",
		assign:      func(p *Parameters, v float64) { p.RepeatPenalty = v },
	},
}

// Validate coerces and clamps the generation parameters found in raw,
// filling defaults for anything absent. It is total over well-typed input;
// the only error it returns is a MalformedParameterError for a value that
// cannot be coerced (e.g. a string temperature).
func Validate(raw map[string]any) (Parameters, error) {
	var p Parameters

	for _, r := range rules {
		v, present := raw[r.key]
		if !present {
			r.assign(&p, r.def)
			continue
		}

		f, ok := toFloat(v)
		if !ok {
			return Parameters{}, &MalformedParameterError{Key: r.key, Value: v}
		}
		if r.integer {
			f = float64(int(f))
		}
		r.assign(&p, clamp(f, r.min, r.max))
	}

	p.Stream = truthy(raw["stream"])

	// A string becomes a one-element list, a list is truncated to ten
	// entries. Anything else is silently omitted.
	if v, present := raw["stop"]; present {
		switch stop := v.(type) {
		case string:
			p.Stop = []string{stop}
		case []string:
			p.Stop = truncateStop(stop)
		case []any:
			seqs := make([]string, 0, len(stop))
			for _, elem := range stop {
				s, ok := elem.(string)
				if !ok {
					return Parameters{}, &MalformedParameterError{Key: "stop", Value: elem}
				}
				seqs = append(seqs, s)
			}
			p.Stop = truncateStop(seqs)
		}
	}

	if v, present := raw["seed"]; present {
		f, ok := toFloat(v)
		if !ok {
			return Parameters{}, &MalformedParameterError{Key: "seed", Value: v}
		}
		seed := int(f)
		p.Seed = &seed
	}

	return p, nil
}

// Defaults returns the fully-defaulted parameter set.
func Defaults() Parameters {
	p, _ := Validate(map[string]any{})
	return p
}

// Map renders the parameters as a JSON-merge-compatible map. Stop and seed
// are omitted when unset, mirroring their omitempty JSON encoding.
func (p Parameters) Map() map[string]any {
	m := map[string]any{
		"temperature":       p.Temperature,
		"top_p":             p.TopP,
		"top_k":             p.TopK,
		"max_tokens":        p.MaxTokens,
		"frequency_penalty": p.FrequencyPenalty,
		"presence_penalty":  p.PresencePenalty,
		"repeat_penalty":    p.RepeatPenalty,
		"stream":            p.Stream,
	}
	if p.Stop != nil {
		m["stop"] = p.Stop
	}
	if p.Seed != nil {
		m["seed"] = *p.Seed
	}
	return m
}

// Info documents a single parameter for the introspection endpoint.
type Info struct {
	Name        string  `json:"-"`
	Description string  `json:"description"`
	Range       string  `json:"range"`
	Default     float64 `json:"default"`
}

// Describe returns documentation for every clamped parameter, in table order.
func Describe() []Info {
	infos := make([]Info, 0, len(rules))
	for _, r := range rules {
		infos = append(infos, Info{
			Name:        r.key,
			Description: r.description,
			Range:       r.rangeText,
			Default:     r.def,
		})
	}
	return infos
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func truncateStop(seqs []string) []string {
	if len(seqs) > maxStopSequences {
		seqs = seqs[:maxStopSequences]
	}
	return seqs
}

// toFloat coerces the numeric shapes encoding/json (and tests) produce.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// truthy applies Python-style truthiness: zero values, empty strings and
// empty collections are false, everything else is true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
