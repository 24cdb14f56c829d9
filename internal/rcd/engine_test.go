package rcd_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cortexforge/internal/rcd"
)

func defaults() rcd.Config {
	return rcd.Config{
		Timesteps:      300,
		Alpha:          0.4,
		Beta:           0.5,
		Gamma:          0.6,
		ShockIntensity: 0.3,
		Drug:           rcd.DrugNone,
	}
}

var _ = Describe("Simulate", func() {
	DescribeTable("sequence lengths match timesteps",
		func(n int) {
			cfg := defaults()
			cfg.Timesteps = n
			tr := rcd.Simulate(cfg)
			Expect(tr.H).To(HaveLen(n))
			Expect(tr.M).To(HaveLen(n))
			Expect(tr.R).To(HaveLen(n))
			Expect(tr.Len()).To(Equal(n))
		},
		Entry("minimum slider value", 100),
		Entry("default", 300),
		Entry("maximum slider value", 1000),
		Entry("single sample", 1),
		Entry("two samples", 2),
	)

	It("starts every variable at exactly 0.5", func() {
		for _, d := range rcd.Drugs {
			cfg := defaults()
			cfg.Drug = d
			tr := rcd.Simulate(cfg)
			Expect(tr.H[0]).To(Equal(0.5))
			Expect(tr.M[0]).To(Equal(0.5))
			Expect(tr.R[0]).To(Equal(0.5))
		}
	})

	It("is bit-for-bit deterministic", func() {
		cfg := defaults()
		cfg.Timesteps = 1000
		cfg.Drug = rcd.DrugAletheamine
		a, b := rcd.Simulate(cfg), rcd.Simulate(cfg)
		for i := 0; i < a.Len(); i++ {
			Expect(math.Float64bits(a.H[i])).To(Equal(math.Float64bits(b.H[i])))
			Expect(math.Float64bits(a.M[i])).To(Equal(math.Float64bits(b.M[i])))
			Expect(math.Float64bits(a.R[i])).To(Equal(math.Float64bits(b.R[i])))
		}
	})

	It("allocates fresh sequences per run", func() {
		cfg := defaults()
		a := rcd.Simulate(cfg)
		b := rcd.Simulate(cfg)
		a.H[1] = 42
		Expect(b.H[1]).NotTo(Equal(42.0))
	})

	It("leaves a two-step equilibrium unchanged", func() {
		cfg := defaults()
		cfg.Timesteps = 2
		tr := rcd.Simulate(cfg)
		Expect(tr.H).To(Equal([]float64{0.5, 0.5}))
		Expect(tr.M).To(Equal([]float64{0.5, 0.5}))
		Expect(tr.R).To(Equal([]float64{0.5, 0.5}))
	})

	It("applies only the shock when all coupling is zero", func() {
		tr := rcd.Simulate(rcd.Config{Timesteps: 51, ShockIntensity: 0.3})
		Expect(tr.M[50]).To(BeNumerically("~", 0.2, 1e-15))
		for t := 0; t < 50; t++ {
			Expect(tr.M[t]).To(Equal(0.5), "M[%d]", t)
		}
		for t := 0; t < 51; t++ {
			Expect(tr.H[t]).To(Equal(0.5), "H[%d]", t)
			Expect(tr.R[t]).To(Equal(0.5), "R[%d]", t)
		}
	})

	It("subtracts the shock from memory at multiples of fifty only", func() {
		cfg := defaults()
		cfg.Timesteps = 100
		tr := rcd.Simulate(cfg)
		for t := 1; t < 100; t++ {
			unshocked := tr.M[t-1] + cfg.Alpha*(tr.H[t-1]-tr.M[t-1])
			want := unshocked
			if t == 50 {
				want -= cfg.ShockIntensity
			}
			Expect(tr.M[t]).To(BeNumerically("~", want, 1e-12), "M[%d]", t)
		}
	})

	It("does not shock a run shorter than the shock period", func() {
		cfg := rcd.Config{Timesteps: 50, ShockIntensity: 1}
		tr := rcd.Simulate(cfg)
		Expect(tr.Final().M).To(Equal(0.5))
	})

	DescribeTable("adds the drug modulation to every reinforcement step",
		func(d rcd.Drug, mod float64) {
			cfg := defaults()
			cfg.Drug = d
			tr := rcd.Simulate(cfg)
			for t := 1; t < tr.Len(); t++ {
				base := tr.R[t-1] + cfg.Beta*(tr.H[t-1]-tr.R[t-1])
				Expect(tr.R[t]-base).To(BeNumerically("~", mod, 1e-9), "R[%d]", t)
			}

			iso := rcd.Config{Timesteps: 100, Drug: d}
			none := iso
			none.Drug = rcd.DrugNone
			withDrug, without := rcd.Simulate(iso), rcd.Simulate(none)
			for t := 0; t < 100; t++ {
				Expect(withDrug.R[t]-without.R[t]).To(BeNumerically("~", mod*float64(t), 1e-9))
			}
		},
		Entry("none", rcd.DrugNone, 0.0),
		Entry("SSRI", rcd.DrugSSRI, 0.1),
		Entry("dopamine agonist", rcd.DrugDopamineAgonist, 0.15),
		Entry("aletheamine", rcd.DrugAletheamine, 0.25),
	)

	It("reads only the previous step on the right-hand side", func() {
		cfg := defaults()
		tr := rcd.Simulate(cfg)
		for t := 1; t < tr.Len(); t++ {
			wantH := tr.H[t-1] + cfg.Gamma*(tr.M[t-1]-tr.R[t-1])
			Expect(tr.H[t]).To(BeNumerically("~", wantH, 1e-12), "H[%d]", t)
		}
	})

	It("matches folding Next over the steps", func() {
		cfg := defaults()
		tr := rcd.Simulate(cfg)
		p := tr.At(0)
		for t := 1; t < tr.Len(); t++ {
			p = rcd.Next(cfg, p, t)
			Expect(p).To(Equal(tr.At(t)))
		}
	})

	It("propagates divergence without guarding", func() {
		cfg := rcd.Config{Timesteps: 1000, Alpha: 1, Beta: 1, Gamma: 1, ShockIntensity: 1, Drug: rcd.DrugAletheamine}
		tr := rcd.Simulate(cfg)
		Expect(tr.Len()).To(Equal(1000))
		Expect(math.Abs(tr.Final().H)).To(BeNumerically(">", 1))
	})

	It("returns empty sequences for a non-positive step count", func() {
		tr := rcd.Simulate(rcd.Config{Timesteps: -3})
		Expect(tr.Len()).To(Equal(0))
		Expect(tr.Final()).To(Equal(rcd.Point{}))
	})
})

var _ = Describe("Trajectory", func() {
	It("spans the gradient from 0 to 1", func() {
		tr := rcd.Simulate(defaults())
		Expect(tr.Gradient(0)).To(Equal(0.0))
		Expect(tr.Gradient(tr.Len() - 1)).To(Equal(1.0))
		Expect(tr.Gradient(tr.Len() / 2)).To(BeNumerically("~", 0.5, 0.01))
	})

	It("reports a zero gradient for a single sample", func() {
		tr := rcd.Simulate(rcd.Config{Timesteps: 1})
		Expect(tr.Gradient(0)).To(Equal(0.0))
	})

	It("detects non-finite samples", func() {
		tr := rcd.Simulate(defaults())
		Expect(tr.Finite()).To(BeTrue())
		tr.R[10] = math.Inf(1)
		Expect(tr.Finite()).To(BeFalse())
	})

	It("exposes samples as points", func() {
		tr := rcd.Simulate(defaults())
		pts := tr.Points()
		Expect(pts).To(HaveLen(tr.Len()))
		Expect(pts[len(pts)-1]).To(Equal(tr.Final()))
	})
})

var _ = Describe("Drug", func() {
	DescribeTable("ParseDrug",
		func(in string, want rcd.Drug) {
			got, err := rcd.ParseDrug(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("empty", "", rcd.DrugNone),
		Entry("None", "None", rcd.DrugNone),
		Entry("ssri", "ssri", rcd.DrugSSRI),
		Entry("display name", "Dopamine Agonist", rcd.DrugDopamineAgonist),
		Entry("snake case", "dopamine_agonist", rcd.DrugDopamineAgonist),
		Entry("kebab case", "dopamine-agonist", rcd.DrugDopamineAgonist),
		Entry("enum name", "DopamineAgonist", rcd.DrugDopamineAgonist),
		Entry("aletheamine", " ALETHEAMINE ", rcd.DrugAletheamine),
	)

	It("rejects unknown names", func() {
		_, err := rcd.ParseDrug("caffeine")
		Expect(err).To(MatchError(rcd.ErrUnknownDrug))
	})

	It("round-trips display names", func() {
		for _, d := range rcd.Drugs {
			got, err := rcd.ParseDrug(d.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(d))
		}
	})

	It("modulates nothing outside the enum", func() {
		Expect(rcd.Drug(9).Modulation()).To(Equal(0.0))
		Expect(rcd.Drug(9).String()).To(Equal("Drug(9)"))
	})
})
