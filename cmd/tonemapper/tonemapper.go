package main

import(
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/abworrall/tonemapper/pkg/tonemap"
)

var(
	fVerbosity int
	fExposure float64
	fAutoExposure string
	fReferenceEV float64
	fOutputDir string
	fOutputWidth int
	fWorkers int
	fGraph string
	fShaderDir string
	fHDROutput bool
	fParams string
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.Float64Var(&fExposure, "exposure", 1.0, "linear exposure multiplier, applied before the curve")
	flag.StringVar(&fAutoExposure, "autoexposure", "", "pick exposure from the image: '' (use -exposure), 'key', 'white', 'exif'")
	flag.Float64Var(&fReferenceEV, "refev", 12.0, "for -autoexposure=exif, the EV100 that gets exposure 1.0")
	flag.StringVar(&fOutputDir, "o", ".", "directory for output files")
	flag.IntVar(&fOutputWidth, "width", 0, "resize output images to this width (0 keeps input size)")
	flag.IntVar(&fWorkers, "workers", 1, "goroutines per image; 0 means one per CPU")
	flag.StringVar(&fGraph, "graph", "", "write a plot of the response curve to this PNG")
	flag.StringVar(&fShaderDir, "shaderdir", "", "write the GLSL vertex+fragment shaders into this dir")
	flag.BoolVar(&fHDROutput, "hdrout", false, "also write the exposed input as a Radiance .hdr")
	flag.StringVar(&fParams, "params", "", "curve parameter overrides, e.g. 'W=8,Gamma=2.4'")
	flag.Parse()

	log.Printf("tonemapper starting\n")
}

func main() {
	job := tonemap.NewJob()
	if err := job.LoadFilesAndDirs(flag.Args()...); err != nil {
		log.Fatal(err)
	}

	// Override the config file with command line args, if they were set
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":            job.Config.Verbosity = fVerbosity
		case "exposure":     job.Config.Exposure = fExposure
		case "autoexposure": job.Config.AutoExposure = fAutoExposure
		case "refev":        job.Config.ReferenceEV = fReferenceEV
		case "o":            job.Config.OutputDir = fOutputDir
		case "width":        job.Config.OutputWidth = fOutputWidth
		case "workers":      job.Config.Workers = fWorkers
		case "graph":        job.Config.GraphFilename = fGraph
		case "shaderdir":    job.Config.ShaderDir = fShaderDir
		case "hdrout":       job.Config.HDROutput = fHDROutput
		}
	})

	if fParams != "" {
		if err := setParams(job, fParams); err != nil {
			log.Fatal(err)
		}
	}

	if job.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", job.Config.AsYaml())
	}
	log.Printf("Loaded: %s", job)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if _, err := job.Run(ctx); err != nil {
		log.Fatal(err)
	}
}

func setParams(job *tonemap.Job, s string) error {
	for _, kv := range strings.Split(s, ",") {
		if err := tonemap.SetParamFromString(&job.Config.Params, kv); err != nil {
			return err
		}
	}
	return nil
}
