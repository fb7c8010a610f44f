package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Sciguy324/QuantumSimulator/internal/config"
	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
	"github.com/Sciguy324/QuantumSimulator/internal/scenarios"
)

var _ = Describe("DefaultConfig", func() {
	It("is valid and renormalizes by default", func() {
		cfg := config.DefaultConfig()
		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.Scenario).To(Equal("well"))
		Expect(cfg.Renormalize).To(BeTrue())
		Expect(cfg.Probes).To(ContainElement("energy"))
	})
})

var _ = Describe("Load", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "config")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(func() { os.RemoveAll(dir) })
	})

	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(body), 0644)).To(Succeed())
		return path
	}

	It("keeps defaults for keys the file omits", func() {
		cfg, err := config.Load(write("run.yaml", "scenario: doubleslit\ndt: 0.002\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Scenario).To(Equal("doubleslit"))
		Expect(cfg.Dt).To(Equal(0.002))
		Expect(cfg.SampleEvery).To(Equal(1))
		Expect(cfg.Renormalize).To(BeTrue())
	})

	It("lets the file switch renormalization off", func() {
		cfg, err := config.Load(write("run.yaml", "renormalize: false\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Renormalize).To(BeFalse())
	})

	It("fails on a missing file", func() {
		_, err := config.Load(filepath.Join(dir, "absent.yaml"))
		Expect(err).To(HaveOccurred())
	})

	It("fails on malformed yaml", func() {
		_, err := config.Load(write("bad.yaml", "scenario: [unclosed\n"))
		Expect(err).To(HaveOccurred())
	})

	It("round-trips through Save", func() {
		cfg := config.DefaultConfig()
		cfg.Scenario = "pointcharge"
		cfg.Order = 30
		cfg.KeepStates = true

		path := filepath.Join(dir, "saved.yaml")
		Expect(config.Save(path, cfg)).To(Succeed())

		loaded, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(cfg))
	})
})

var _ = Describe("Validate", func() {
	DescribeTable("rejects out-of-range values",
		func(mutate func(*config.Config)) {
			cfg := config.DefaultConfig()
			mutate(cfg)
			Expect(cfg.Validate()).To(MatchError(quantum.ErrInvalidConfig))
		},
		Entry("empty scenario", func(c *config.Config) { c.Scenario = "" }),
		Entry("negative dt", func(c *config.Config) { c.Dt = -1 }),
		Entry("negative order", func(c *config.Config) { c.Order = -5 }),
		Entry("negative steps", func(c *config.Config) { c.Steps = -1 }),
		Entry("negative sample_every", func(c *config.Config) { c.SampleEvery = -2 }),
	)

	It("accepts zero numerics as scenario deferral", func() {
		cfg := config.DefaultConfig()
		cfg.Dt = 0
		cfg.Order = 0
		cfg.Steps = 0
		Expect(cfg.Validate()).To(Succeed())
	})
})

var _ = Describe("Resolved", func() {
	defaults := scenarios.Defaults{
		Dt:         5e-3,
		Order:      70,
		Propagator: "taylor",
		Boundary:   "dirichlet",
		Steps:      1000,
	}

	It("defers to the scenario when nothing is set", func() {
		cfg := &config.Config{}
		Expect(cfg.Resolved(defaults)).To(Equal(defaults))
	})

	It("overrides only the set fields", func() {
		cfg := &config.Config{Dt: 1e-3, Propagator: "crank-nicolson"}
		got := cfg.Resolved(defaults)
		Expect(got.Dt).To(Equal(1e-3))
		Expect(got.Propagator).To(Equal("crank-nicolson"))
		Expect(got.Order).To(Equal(70))
		Expect(got.Boundary).To(Equal("dirichlet"))
		Expect(got.Steps).To(Equal(1000))
	})
})

var _ = Describe("RunConfig", func() {
	It("carries the resolved step settings into the simulator", func() {
		cfg := config.DefaultConfig()
		cfg.SampleEvery = 4
		cfg.KeepStates = true

		d := scenarios.Defaults{Dt: 2e-3, Steps: 500}
		rc := cfg.RunConfig(d)
		Expect(rc.Dt).To(Equal(2e-3))
		Expect(rc.Steps).To(Equal(500))
		Expect(rc.SampleEvery).To(Equal(4))
		Expect(rc.Renormalize).To(BeTrue())
		Expect(rc.KeepStates).To(BeTrue())
		Expect(rc.ValidateEvery).To(BeNumerically(">", 0))
	})
})
