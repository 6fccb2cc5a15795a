package latency_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/apexsim/timing/latency"
)

var _ = Describe("Config", func() {
	Describe("DefaultConfig", func() {
		It("matches the spec-mandated baseline", func() {
			cfg := latency.DefaultConfig()
			Expect(cfg.IntStages).To(Equal(uint64(2)))
			Expect(cfg.MulStages).To(Equal(uint64(3)))
			Expect(cfg.BranchStages).To(Equal(uint64(1)))
			Expect(cfg.MemStages).To(Equal(uint64(3)))
			Expect(cfg.ROBSize).To(Equal(12))
			Expect(cfg.IQSize).To(Equal(8))
			Expect(cfg.LSQSize).To(Equal(6))
			Expect(cfg.RenameTableSize).To(Equal(24))
			Expect(cfg.RegisterFileSize).To(Equal(32))
			Expect(cfg.DataMemorySize).To(Equal(4096))
			Expect(cfg.CodeBase).To(Equal(int32(4000)))
			Expect(cfg.RetireWidth).To(Equal(1))
		})

		It("validates", func() {
			Expect(latency.DefaultConfig().Validate()).To(Succeed())
		})
	})

	Describe("Validate", func() {
		It("rejects a zero structural size", func() {
			cfg := latency.DefaultConfig()
			cfg.ROBSize = 0
			Expect(cfg.Validate()).To(HaveOccurred())
		})

		It("rejects a zero FU latency", func() {
			cfg := latency.DefaultConfig()
			cfg.MulStages = 0
			Expect(cfg.Validate()).To(HaveOccurred())
		})

		It("rejects a retire width larger than the ROB", func() {
			cfg := latency.DefaultConfig()
			cfg.RetireWidth = cfg.ROBSize + 1
			Expect(cfg.Validate()).To(HaveOccurred())
		})
	})

	Describe("Clone", func() {
		It("returns an independent copy", func() {
			original := latency.DefaultConfig()
			clone := original.Clone()
			clone.ROBSize = 99
			Expect(original.ROBSize).To(Equal(12))
			Expect(clone.ROBSize).To(Equal(99))
		})
	})

	Describe("file round-trip", func() {
		var dir string

		BeforeEach(func() {
			dir = GinkgoT().TempDir()
		})

		It("saves and loads back the same values", func() {
			original := latency.DefaultConfig()
			original.RetireWidth = 2

			path := filepath.Join(dir, "latency.json")
			Expect(original.SaveConfig(path)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.RetireWidth).To(Equal(2))
			Expect(loaded.ROBSize).To(Equal(12))
		})

		It("errors on a missing file", func() {
			_, err := latency.LoadConfig(filepath.Join(dir, "missing.json"))
			Expect(err).To(HaveOccurred())
		})

		It("errors on invalid JSON", func() {
			path := filepath.Join(dir, "bad.json")
			Expect(os.WriteFile(path, []byte("not json"), 0o644)).To(Succeed())
			_, err := latency.LoadConfig(path)
			Expect(err).To(HaveOccurred())
		})
	})
})
