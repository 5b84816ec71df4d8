package uncharted

import(
	"fmt"
	"math"

	"gopkg.in/yaml.v2"
)

// A Parameter is one tunable scalar. Min and Max are hints for a UI
// slider; nothing stops a value from being set outside of them.
type Parameter struct {
	Value        float64
	Default      float64
	Min          float64
	Max          float64
	Uniform      string   // The shader uniform this value is bound to
	Description  string
}

func NewParameter(def, min, max float64, uniform, description string) Parameter {
	return Parameter{
		Value:       def,
		Default:     def,
		Min:         min,
		Max:         max,
		Uniform:     uniform,
		Description: description,
	}
}

func (p Parameter)String() string {
	return fmt.Sprintf("%-6s = %8.4f  [%g, %g] (default %g)", p.Uniform, p.Value, p.Min, p.Max, p.Default)
}

// ParameterMap keeps parameters in the order they were added, which is the
// order a UI should lay them out in. Keys are stable, and are what gets
// written into parameter files.
type ParameterMap struct {
	keys     []string
	params   map[string]Parameter
}

func NewParameterMap() ParameterMap {
	return ParameterMap{params: map[string]Parameter{}}
}

func (pm *ParameterMap)Add(key string, p Parameter) {
	if pm.params == nil {
		pm.params = map[string]Parameter{}
	}
	if _, exists := pm.params[key]; !exists {
		pm.keys = append(pm.keys, key)
	}
	pm.params[key] = p
}

func (pm ParameterMap)Keys() []string {
	return append([]string{}, pm.keys...)
}

func (pm ParameterMap)Len() int { return len(pm.keys) }

func (pm ParameterMap)Get(key string) (Parameter, bool) {
	p, exists := pm.params[key]
	return p, exists
}

// Value returns the current value for key, or NaN if there is no such
// parameter; the NaN then flows through the math like any other
// degenerate parameter would.
func (pm ParameterMap)Value(key string) float64 {
	if p, exists := pm.params[key]; exists {
		return p.Value
	}
	return math.NaN()
}

// Set updates the current value. Values outside [Min,Max] are accepted.
func (pm *ParameterMap)Set(key string, v float64) error {
	p, exists := pm.params[key]
	if !exists {
		return fmt.Errorf("no parameter named '%s', wanted one of %v", key, pm.keys)
	}
	p.Value = v
	pm.params[key] = p
	return nil
}

// Reset puts every parameter back to its default value.
func (pm *ParameterMap)Reset() {
	for k, p := range pm.params {
		p.Value = p.Default
		pm.params[k] = p
	}
}

// Clone returns a deep copy, so one copy can be mutated (e.g. by a UI)
// while the other is in use.
func (pm ParameterMap)Clone() ParameterMap {
	c := NewParameterMap()
	for _, k := range pm.keys {
		c.Add(k, pm.params[k])
	}
	return c
}

func (pm ParameterMap)String() string {
	str := ""
	for _, k := range pm.keys {
		str += fmt.Sprintf("  %-6s: %s\n", k, pm.params[k])
	}
	return str
}

// MarshalYAML writes just the current values, keyed by name, in order.
func (pm ParameterMap)MarshalYAML() (interface{}, error) {
	ms := yaml.MapSlice{}
	for _, k := range pm.keys {
		ms = append(ms, yaml.MapItem{Key: k, Value: pm.params[k].Value})
	}
	return ms, nil
}

// UnmarshalYAML sets values for the keys present; keys missing from the
// YAML keep whatever value they had. An unknown key is an error, and
// leaves every value untouched.
func (pm *ParameterMap)UnmarshalYAML(unmarshal func(interface{}) error) error {
	vals := map[string]float64{}
	if err := unmarshal(&vals); err != nil {
		return err
	}
	for k := range vals {
		if _, exists := pm.params[k]; !exists {
			return fmt.Errorf("no parameter named '%s', wanted one of %v", k, pm.keys)
		}
	}
	for k, v := range vals {
		pm.Set(k, v)
	}
	return nil
}

// Uniforms lists the shader uniform names, in order.
func (pm ParameterMap)Uniforms() []string {
	ret := []string{}
	for _, k := range pm.keys {
		ret = append(ret, pm.params[k].Uniform)
	}
	return ret
}
