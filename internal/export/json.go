package export

import (
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/cortexforge/internal/rcd"
)

// Number is a float64 that encodes NaN and Inf as null.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

type ConfigData struct {
	Timesteps      int     `json:"timesteps"`
	Alpha          float64 `json:"alpha"`
	Beta           float64 `json:"beta"`
	Gamma          float64 `json:"gamma"`
	ShockIntensity float64 `json:"shock_intensity"`
	DrugEffect     string  `json:"drug_effect"`
	DrugModulation float64 `json:"drug_modulation"`
}

type FinalData struct {
	Hope          Number `json:"hope"`
	Memory        Number `json:"memory"`
	Reinforcement Number `json:"reinforcement"`
}

type Document struct {
	Config        ConfigData `json:"config"`
	Steps         int        `json:"steps"`
	Finite        bool       `json:"finite"`
	Hope          []Number   `json:"hope"`
	Memory        []Number   `json:"memory"`
	Reinforcement []Number   `json:"reinforcement"`
	Gradient      []float64  `json:"gradient"`
	Final         FinalData  `json:"final"`
}

func numbers(v []float64) []Number {
	out := make([]Number, len(v))
	for i, f := range v {
		out[i] = Number(f)
	}
	return out
}

// NewDocument assembles the JSON view of a run.
func NewDocument(cfg rcd.Config, tr rcd.Trajectory) Document {
	grad := make([]float64, tr.Len())
	for i := range grad {
		grad[i] = tr.Gradient(i)
	}
	final := tr.Final()
	return Document{
		Config: ConfigData{
			Timesteps:      cfg.Timesteps,
			Alpha:          cfg.Alpha,
			Beta:           cfg.Beta,
			Gamma:          cfg.Gamma,
			ShockIntensity: cfg.ShockIntensity,
			DrugEffect:     cfg.Drug.String(),
			DrugModulation: cfg.Drug.Modulation(),
		},
		Steps:         tr.Len(),
		Finite:        tr.Finite(),
		Hope:          numbers(tr.H),
		Memory:        numbers(tr.M),
		Reinforcement: numbers(tr.R),
		Gradient:      grad,
		Final: FinalData{
			Hope:          Number(final.H),
			Memory:        Number(final.M),
			Reinforcement: Number(final.R),
		},
	}
}

func WriteJSON(w io.Writer, cfg rcd.Config, tr rcd.Trajectory) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(cfg, tr))
}
