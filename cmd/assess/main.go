// Command assess runs a one-shot risk assessment for a reading supplied on
// the command line and prints the result as JSON. It is meant for spot checks
// and for regenerating expected values in bug reports.
//
// Usage:
//
//	go run ./cmd/assess \
//	  -temp 38 -humidity 20 -wind 28 -pressure 1005 \
//	  -lat 34.05 -lon -118.25 -visibility 10 \
//	  -model enhanced -deterministic
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/alertaid/disaster-risk-service/internal/domain"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "assess: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	temp := flag.Float64("temp", 25, "temperature in °C")
	humidity := flag.Float64("humidity", 60, "relative humidity in percent")
	wind := flag.Float64("wind", 10, "wind speed in km/h")
	pressure := flag.Float64("pressure", 1013, "pressure in hPa")
	lat := flag.Float64("lat", 0, "latitude")
	lon := flag.Float64("lon", 0, "longitude")
	visibility := flag.Float64("visibility", 10, "visibility in km")
	model := flag.String("model", "enhanced", "model variant: simple, enhanced, or outlook")
	deterministic := flag.Bool("deterministic", false, "disable random jitter for reproducible output")
	seed := flag.Int64("seed", 0, "seed the random source (ignored when 0)")
	flag.Parse()

	if *deterministic {
		domain.SetDeterministic(true)
	}
	if *seed != 0 {
		domain.SetRandSeed(*seed)
	}

	reading := domain.EnvironmentalReading{
		Temperature: *temp,
		Humidity:    *humidity,
		WindSpeed:   *wind,
		Pressure:    *pressure,
		Latitude:    *lat,
		Longitude:   *lon,
	}

	var assessor func() (domain.RiskAssessment, error)
	switch *model {
	case "simple":
		assessor = func() (domain.RiskAssessment, error) {
			return domain.SimpleModel{}.Assess(reading, *visibility)
		}
	case "enhanced":
		assessor = func() (domain.RiskAssessment, error) {
			return domain.EnhancedModel{}.Assess(reading, *visibility)
		}
	case "outlook":
		assessor = func() (domain.RiskAssessment, error) {
			return domain.EnhancedModel{}.AssessOutlook(reading, *visibility)
		}
	default:
		return fmt.Errorf("unknown model %q (want simple, enhanced, or outlook)", *model)
	}

	result, err := assessor()
	if err != nil {
		return err
	}

	out := struct {
		Model      string                      `json:"model"`
		Reading    domain.EnvironmentalReading `json:"reading"`
		Assessment domain.RiskAssessment       `json:"assessment"`
	}{
		Model:      *model,
		Reading:    reading,
		Assessment: result,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
