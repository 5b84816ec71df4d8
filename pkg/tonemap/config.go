package tonemap

import(
	"fmt"
	"log"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/tonemapper/pkg/uncharted"
)

/* Example config file ...

verbosity: 1
exposure: 1.5
autoexposure: white
whitepercentile: 99.5
referenceev: 12
outputdir: out
outputwidth: 1200
workers: 4
params:
  Gamma: 2.2
  W: 8.0

*/

type Config struct {
	Verbosity        int

	Exposure         float64  // Used as-is if AutoExposure is ""
	AutoExposure     string   // "", "key", "white" or "exif"
	Key              float64  // for AutoExposure == "key"
	WhitePercentile  float64  // for AutoExposure == "white"
	ReferenceEV      float64  // for AutoExposure == "exif"; the EV100 that maps to exposure 1.0

	OutputDir        string
	OutputWidth      int      // If >0, resize the LDR output to this width
	Workers          int      // 1 processes on the calling goroutine; <1 means one per CPU

	GraphFilename    string   // If set, plot the response curve here
	ShaderDir        string   // If set, dump the GLSL sources here
	HDROutput        bool     // Also write the exposure-scaled input as Radiance .hdr

	Params           uncharted.ParameterMap
}

func NewConfig() Config {
	return Config{
		Exposure:        1.0,
		Key:             0.18,
		WhitePercentile: 99.0,
		ReferenceEV:     12.0,
		OutputDir:       ".",
		Workers:         1,
		Params:          uncharted.NewDefaultParameters(),
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// Validate checks the things we can't sensibly run with. Tonemapping
// parameters are never checked; odd values are the user's business.
func (c Config)Validate() error {
	switch c.AutoExposure {
	case "", "key", "white", "exif":
	default:
		return fmt.Errorf("no AutoExposure strategy named '%s'", c.AutoExposure)
	}
	if c.AutoExposure == "white" && (c.WhitePercentile <= 0 || c.WhitePercentile > 100) {
		return fmt.Errorf("WhitePercentile %f not in (0,100]", c.WhitePercentile)
	}
	if c.OutputWidth < 0 {
		return fmt.Errorf("OutputWidth %d is negative", c.OutputWidth)
	}
	return nil
}

// SetParamFromString parses a "Name=value" pair, as given on a command line.
func SetParamFromString(pm *uncharted.ParameterMap, kv string) error {
	k, v, found := strings.Cut(kv, "=")
	if !found {
		return fmt.Errorf("param '%s': want Name=value", kv)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fmt.Errorf("param '%s': %v", kv, err)
	}
	return pm.Set(strings.TrimSpace(k), f)
}
