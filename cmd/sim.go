/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/myousefi2016/lgca/InputParameters"
	"github.com/myousefi2016/lgca/lattice"
	"github.com/myousefi2016/lgca/model"
	"github.com/myousefi2016/lgca/test_cases"
)

// SimRun carries the resolved run configuration of the sim command.
type SimRun struct {
	Model               model.Model
	Case                test_cases.CaseType
	DimX, DimY          int
	Steps               int
	Re, MachNumber      float64
	CoarseRadius        int
	BodyForceDir        lattice.BodyForceDir
	BodyForceIntensity  int
	PostProcessInterval int
	Seed                int64
	ProcLimit           int
	Verbose             bool
}

// simCmd represents the sim command
var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Runs a lattice gas simulation on a rectangular domain",
	Long: `
Runs the collide-and-propagate loop of the lattice gas cellular automaton for
a fixed number of steps, applying an optional body force each step and
post-processing density and momentum fields at a fixed interval.

lgca sim -m FHP-I -x 256 -y 128 -c karman -s 2000`,
	Run: func(cmd *cobra.Command, args []string) {
		sr := processSimInput(cmd)
		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start(profile.CPUProfile).Stop()
		}
		RunSim(sr)
	},
}

func processSimInput(cmd *cobra.Command) (sr *SimRun) {
	var (
		err error
		ip  = &InputParameters.InputParameters{}
	)
	// Flag values are the baseline; a parameter file overrides the fields it
	// names
	ip.Model, _ = cmd.Flags().GetString("model")
	ip.DimX, _ = cmd.Flags().GetInt("dimX")
	ip.DimY, _ = cmd.Flags().GetInt("dimY")
	ip.Steps, _ = cmd.Flags().GetInt("steps")
	ip.TestCase, _ = cmd.Flags().GetString("case")
	ip.Re, _ = cmd.Flags().GetFloat64("re")
	ip.MachNumber, _ = cmd.Flags().GetFloat64("mach")
	ip.CoarseGrainingRadius, _ = cmd.Flags().GetInt("radius")
	ip.BodyForceDir, _ = cmd.Flags().GetString("forceDir")
	ip.BodyForceIntensity, _ = cmd.Flags().GetInt("forcing")
	ip.PostProcessInterval, _ = cmd.Flags().GetInt("postInterval")
	ip.Seed, _ = cmd.Flags().GetInt64("seed")

	if paramFile, _ := cmd.Flags().GetString("inputParametersFile"); len(paramFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(paramFile); err != nil {
			panic(err)
		}
		if err = ip.Parse(data); err != nil {
			panic(err)
		}
	}

	sr = &SimRun{
		DimX:                ip.DimX,
		DimY:                ip.DimY,
		Steps:               ip.Steps,
		Re:                  ip.Re,
		MachNumber:          ip.MachNumber,
		CoarseRadius:        ip.CoarseGrainingRadius,
		BodyForceIntensity:  ip.BodyForceIntensity,
		PostProcessInterval: ip.PostProcessInterval,
		Seed:                ip.Seed,
	}
	if sr.Model, err = model.NewModel(ip.Model); err != nil {
		panic(err)
	}
	if sr.Case, err = test_cases.NewCaseType(ip.TestCase); err != nil {
		panic(err)
	}
	switch ip.BodyForceDir {
	case "x":
		sr.BodyForceDir = lattice.BodyForceX
	case "y":
		sr.BodyForceDir = lattice.BodyForceY
	default:
		panic(fmt.Errorf("body force direction must be x or y, got %q", ip.BodyForceDir))
	}
	sr.ProcLimit, _ = cmd.Flags().GetInt("procLimit")
	sr.Verbose, _ = cmd.Flags().GetBool("verbose")
	if sr.Verbose {
		ip.Print()
	}
	return
}

func init() {
	rootCmd.AddCommand(simCmd)
	simCmd.Flags().StringP("model", "m", "FHP-I", "lattice model: HPP, FHP-I, FHP-II or FHP-III")
	simCmd.Flags().IntP("dimX", "x", 256, "domain width in cells")
	simCmd.Flags().IntP("dimY", "y", 128, "domain height in cells (even for FHP)")
	simCmd.Flags().IntP("steps", "s", 1000, "number of simulation steps")
	simCmd.Flags().StringP("case", "c", "pipe", "test case: box, pipe, karman, diffusion or collision")
	simCmd.Flags().Float64("re", 80, "Reynolds number target")
	simCmd.Flags().Float64("mach", 0.2, "Mach number target")
	simCmd.Flags().IntP("radius", "r", 1, "coarse graining radius")
	simCmd.Flags().String("forceDir", "x", "body force axis: x or y")
	simCmd.Flags().IntP("forcing", "f", 0, "body force intensity in particles per step, 0 derives it from Re and Ma")
	simCmd.Flags().IntP("postInterval", "p", 50, "steps between post-processing passes")
	simCmd.Flags().Int64("seed", 1, "random seed")
	simCmd.Flags().Int("procLimit", 0, "number of worker goroutines, 0 = all CPUs")
	simCmd.Flags().BoolP("verbose", "v", false, "print progress while computing")
	simCmd.Flags().Bool("profile", false, "write a CPU profile for the run")
	simCmd.Flags().StringP("inputParametersFile", "I", "", "YAML file overriding the run parameters")
}

// RunSim builds the lattice, stamps the test case and drives the step loop.
func RunSim(sr *SimRun) {
	l, err := lattice.New(lattice.Config{
		Model:                sr.Model,
		DimX:                 sr.DimX,
		DimY:                 sr.DimY,
		Re:                   sr.Re,
		MaS:                  sr.MachNumber,
		CoarseGrainingRadius: sr.CoarseRadius,
		Seed:                 sr.Seed,
		ProcLimit:            sr.ProcLimit,
	})
	if err != nil {
		panic(err)
	}
	if err = test_cases.Setup(l, sr.Case); err != nil {
		panic(err)
	}
	forcing := sr.BodyForceIntensity
	if forcing == 0 {
		forcing = test_cases.SuggestedForcing(l)
	}
	if sr.Verbose {
		fmt.Printf("Lattice Gas Automaton in 2 Dimensions\n")
		fmt.Printf("Using %d go routines in parallel\n", l.ParallelDegree)
		fmt.Printf("Model %s, case %s, %d x %d cells, %d particles seeded\n",
			sr.Model, sr.Case.Print(), l.DimX, l.DimY, l.NumParticles())
		fmt.Printf("Body force %d along %c\n\n", forcing, sr.BodyForceDir)
	}

	interval := sr.PostProcessInterval
	if interval < 1 {
		interval = 1
	}
	for step := 1; step <= sr.Steps; step++ {
		l.CollideAndPropagate()
		if forcing > 0 {
			if reverted := l.ApplyBodyForce(sr.BodyForceDir, forcing); reverted < forcing && sr.Verbose {
				fmt.Printf("step %d: body force saturated, reverted %d of %d\n", step, reverted, forcing)
			}
		}
		if step%interval == 0 || step == sr.Steps {
			l.SnapshotOutput()
			l.PostProcess()
			if sr.Verbose {
				v := l.GetMeanVelocity()
				fmt.Printf("step %6d: mass %8.0f, mean velocity (%9.6f, %9.6f)\n",
					step, floats.Sum(l.CellDensity()), v[0], v[1])
			}
		}
	}
	v := l.GetMeanVelocity()
	fmt.Printf("Finished %d steps: %d particles, mean velocity (%9.6f, %9.6f)\n",
		sr.Steps, l.NumParticles(), v[0], v[1])
}
