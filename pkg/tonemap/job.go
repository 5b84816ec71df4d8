package tonemap

import(
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abworrall/tonemapper/pkg/exposure"
	"github.com/abworrall/tonemapper/pkg/graph"
	"github.com/abworrall/tonemapper/pkg/uncharted"
)

// Job tonemaps a set of HDR inputs into PNGs with one operator.
type Job struct {
	Inputs    []Input
	Config

	Operator  *uncharted.Operator
	Progress  uncharted.Progress
}

func NewJob() *Job {
	return &Job{
		Inputs:   []Input{},
		Config:   NewConfig(),
		Operator: uncharted.NewOperator(),
	}
}

func (j *Job)String() string {
	str := fmt.Sprintf("Job (%d inputs) [\n", len(j.Inputs))
	for _, in := range j.Inputs {
		str += fmt.Sprintf("  %s\n", in)
	}
	return str + "]\n"
}

// Run pushes the config's parameters into the operator, and tonemaps
// every input. It returns the filenames written.
func (j *Job)Run(ctx context.Context) ([]string, error) {
	if err := j.Config.Validate(); err != nil {
		return nil, err
	}
	j.Operator.Params = j.Config.Params.Clone()

	if j.Verbosity > 0 {
		log.Printf("Operator: %s", j.Operator)
	}

	if err := os.MkdirAll(j.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("mkdir '%s': %v", j.OutputDir, err)
	}

	written := []string{}

	if j.GraphFilename != "" {
		if err := graph.NewDefaultPlot().WritePNG(j.Operator, j.GraphFilename); err != nil {
			return written, fmt.Errorf("graph '%s': %v", j.GraphFilename, err)
		}
		written = append(written, j.GraphFilename)
	}

	if j.ShaderDir != "" {
		files, err := WriteShader(j.Operator.Shader(), j.ShaderDir)
		written = append(written, files...)
		if err != nil {
			return written, err
		}
	}

	for _, in := range j.Inputs {
		files, err := j.tonemapInput(ctx, in)
		written = append(written, files...)
		if err != nil {
			return written, fmt.Errorf("%s: %v", in.Filename(), err)
		}
	}

	return written, nil
}

// ExposureFor figures out which exposure to use for the input.
func (j *Job)ExposureFor(in Input) (float64, error) {
	switch j.AutoExposure {
	case "key":
		return exposure.ForKey(in, j.Key)
	case "white":
		return exposure.ForWhitePoint(in, j.WhitePercentile, j.Operator.Params.Value("W"), uncharted.ExposureBias)
	case "exif":
		if in.ExposureValue == nil {
			return 0, fmt.Errorf("autoexposure exif: no exposure info for '%s'", in.Filename())
		}
		return in.ExposureValue.ExposureFor(j.ReferenceEV), nil
	}
	return j.Exposure, nil
}

func (j *Job)tonemapInput(ctx context.Context, in Input) ([]string, error) {
	exp, err := j.ExposureFor(in)
	if err != nil {
		return nil, err
	}
	log.Printf("Tonemapping: %s, exposure %.4f", in, exp)

	buf := make([]byte, uncharted.BufferSize(in.Bounds()))

	stop := j.logProgress(in.Filename())
	if j.Workers == 1 {
		j.Operator.Process(in, buf, exp, &j.Progress)
	} else {
		err = j.Operator.ProcessParallel(ctx, in, buf, exp, &j.Progress, j.Workers)
	}
	stop()
	if err != nil {
		return nil, err
	}

	out := Resize(uncharted.ToRGBA(in.Bounds(), buf), j.OutputWidth)

	base := strings.TrimSuffix(in.Filename(), filepath.Ext(in.Filename()))
	written := []string{}

	pngFilename := filepath.Join(j.OutputDir, base + "-uncharted.png")
	if err := WritePNG(out, pngFilename); err != nil {
		return written, err
	}
	written = append(written, pngFilename)
	log.Printf("LDR output file written '%s'\n", pngFilename)

	if j.HDROutput {
		hdrFilename := filepath.Join(j.OutputDir, base + "-exposed.hdr")
		if err := WriteToHDR(ScaledImage{Image: in.Image, Exposure: exp}, hdrFilename); err != nil {
			return written, err
		}
		written = append(written, hdrFilename)
	}

	return written, nil
}

// logProgress reports progress every so often, until stop is called.
func (j *Job)logProgress(name string) (stop func()) {
	if j.Verbosity < 1 {
		return func() {}
	}

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				log.Printf("%s: %3.0f%%", name, 100 * j.Progress.Value())
			}
		}
	}()

	return func() {
		close(done)
		<-finished
	}
}
