package config

import (
	"encoding/json"
	"fmt"
	"math"
)

// Macro is a MathJax TeX macro. In YAML it is either a string body or a
// [body, argCount] pair, mirroring the MathJax configuration format.
type Macro struct {
	Body string
	Args int
}

// UnmarshalYAML implements the go-yaml callback unmarshaler.
func (m *Macro) UnmarshalYAML(unmarshal func(any) error) error {
	var raw any
	if err := unmarshal(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		*m = Macro{Body: v}
		return nil
	case []any:
		if len(v) != 2 {
			return fmt.Errorf("macro must be [body, args], got %d elements", len(v))
		}
		body, ok := v[0].(string)
		if !ok {
			return fmt.Errorf("macro body must be a string, got %T", v[0])
		}
		args, err := toInt(v[1])
		if err != nil {
			return err
		}
		*m = Macro{Body: body, Args: args}
		return nil
	default:
		return fmt.Errorf("macro must be a string or [body, args], got %T", raw)
	}
}

// MarshalJSON emits the MathJax form: a bare string, or [body, args].
func (m Macro) MarshalJSON() ([]byte, error) {
	if m.Args == 0 {
		return json.Marshal(m.Body)
	}
	return json.Marshal([]any{m.Body, m.Args})
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		if n > math.MaxInt32 {
			return 0, fmt.Errorf("macro argument count out of range: %d", n)
		}
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("macro argument count must be an integer, got %v", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("macro argument count must be a number, got %T", v)
	}
}

// validateMacro checks a macro name (letters only, as TeX control words) and
// its body and argument count.
func validateMacro(name string, m Macro) error {
	field := "math.macros." + name
	if name == "" {
		return fmt.Errorf("%w: math.macros: empty macro name", ErrInvalidValue)
	}
	if err := validateFieldLength(field, name, MaxMacroNameLength); err != nil {
		return err
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return fmt.Errorf("%w: %s: macro names may contain only ASCII letters", ErrInvalidValue, field)
		}
	}
	if err := validateFieldLength(field, m.Body, MaxMacroBodyLength); err != nil {
		return err
	}
	if m.Args < 0 || m.Args > MaxMacroArgs {
		return fmt.Errorf("%w: %s: argument count must be between 0 and %d, got %d", ErrInvalidValue, field, MaxMacroArgs, m.Args)
	}
	return nil
}
