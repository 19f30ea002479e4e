package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type InputParameters struct {
	Title                string  `yaml:"Title"`
	Model                string  `yaml:"Model"`
	DimX                 int     `yaml:"DimX"`
	DimY                 int     `yaml:"DimY"`
	Steps                int     `yaml:"Steps"`
	TestCase             string  `yaml:"TestCase"`
	Re                   float64 `yaml:"Re"`
	MachNumber           float64 `yaml:"Ma" json:"Ma"`
	CoarseGrainingRadius int     `yaml:"CoarseGrainingRadius"`
	BodyForceDir         string  `yaml:"BodyForceDir"`
	BodyForceIntensity   int     `yaml:"BodyForceIntensity"`
	PostProcessInterval  int     `yaml:"PostProcessInterval"`
	Seed                 int64   `yaml:"Seed"`
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t\t= Model\n", ip.Model)
	fmt.Printf("[%d x %d]\t\t= Domain\n", ip.DimX, ip.DimY)
	fmt.Printf("[%s]\t\t= Test Case\n", ip.TestCase)
	fmt.Printf("%8.5f\t\t= Re\n", ip.Re)
	fmt.Printf("%8.5f\t\t= Ma\n", ip.MachNumber)
	fmt.Printf("[%d]\t\t\t= Steps\n", ip.Steps)
	fmt.Printf("[%d]\t\t\t= Coarse Graining Radius\n", ip.CoarseGrainingRadius)
	fmt.Printf("[%s %d]\t\t= Body Force\n", ip.BodyForceDir, ip.BodyForceIntensity)
	fmt.Printf("[%d]\t\t\t= Post Process Interval\n", ip.PostProcessInterval)
	fmt.Printf("[%d]\t\t\t= Seed\n", ip.Seed)
}
