package simulation

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/astk/datarecording"
	"github.com/sarchlab/astk/hooking"
	"github.com/sarchlab/astk/timecontrol"
	"go.uber.org/mock/gomock"
)

func uniformStream(delay, steps int) timecontrol.Sequence[any] {
	u, err := timecontrol.SimpleDelayTiming(delay, steps)
	Expect(err).NotTo(HaveOccurred())

	return timecontrol.AsStream[*timecontrol.Step](u)
}

var _ = Describe("Simulation", func() {
	var (
		mockCtrl   *gomock.Controller
		simulation *Simulation
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		simulation = MakeBuilder().
			WithoutMonitoring().
			WithoutRecording().
			Build()
	})

	AfterEach(func() {
		mockCtrl.Finish()
		simulation.Terminate()
	})

	It("should have an id", func() {
		Expect(simulation.ID()).NotTo(BeEmpty())
		Expect(simulation.Monitor()).To(BeNil())
		Expect(simulation.Recorder()).To(BeNil())
	})

	It("should run until the shortest stream ends", func() {
		simulation.RegisterStream("fast", uniformStream(1, 5))
		simulation.RegisterStream("slow", uniformStream(2, 3))

		var steps []int
		err := simulation.Run(func(step int, frame timecontrol.Frame) error {
			steps = append(steps, step)
			Expect(frame).To(HaveKey("fast"))
			Expect(frame).To(HaveKey("slow"))

			return nil
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(steps).To(Equal([]int{0, 1, 2}))
		Expect(simulation.StepsDone()).To(Equal(3))

		slow, ok := simulation.LastFrame().Step("slow")
		Expect(ok).To(BeTrue())
		Expect(slow.DT()).To(Equal(2.0))
	})

	It("should restart the streams on every run", func() {
		simulation.RegisterStream("s", uniformStream(1, 4))

		Expect(simulation.Run(nil)).To(Succeed())
		Expect(simulation.Run(nil)).To(Succeed())

		Expect(simulation.StepsDone()).To(Equal(4))
	})

	It("should not run without streams", func() {
		called := false
		err := simulation.Run(func(int, timecontrol.Frame) error {
			called = true
			return nil
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(called).To(BeFalse())
		Expect(simulation.LastFrame()).To(BeNil())
	})

	It("should stop on handler errors", func() {
		errBoom := errors.New("boom")
		simulation.RegisterStream("s", uniformStream(1, 5))

		err := simulation.Run(func(step int, _ timecontrol.Frame) error {
			if step == 2 {
				return errBoom
			}

			return nil
		})

		Expect(errors.Is(err, errBoom)).To(BeTrue())
		Expect(err.Error()).To(Equal("step 2: boom"))
		Expect(simulation.StepsDone()).To(Equal(2))
	})

	It("should invoke hooks around each step", func() {
		simulation.RegisterStream("s", uniformStream(1, 2))

		var positions []string
		var details []int
		hook := NewMockHook(mockCtrl)
		hook.EXPECT().Func(gomock.Any()).
			Do(func(ctx hooking.HookCtx) {
				positions = append(positions, ctx.Pos.Name)
				details = append(details, ctx.Detail.(int))
			}).
			Times(4)
		simulation.AcceptHook(hook)

		Expect(simulation.Run(nil)).To(Succeed())

		Expect(positions).To(Equal([]string{
			"BeforeStep", "AfterStep", "BeforeStep", "AfterStep",
		}))
		Expect(details).To(Equal([]int{0, 0, 1, 1}))
	})

	It("should hold the run while paused", func() {
		simulation.RegisterStream("s", uniformStream(1, 3))

		simulation.Pause()
		simulation.Pause()

		done := make(chan error)
		go func() {
			done <- simulation.Run(nil)
		}()

		Consistently(done, 50*time.Millisecond).ShouldNot(Receive())
		Expect(simulation.StepsDone()).To(Equal(0))

		simulation.Continue()
		simulation.Continue()

		Eventually(done).Should(Receive(BeNil()))
		Expect(simulation.StepsDone()).To(Equal(3))
	})

	It("should panic on duplicated streams", func() {
		simulation.RegisterStream("s", uniformStream(1, 1))

		Expect(func() {
			simulation.RegisterStream("s", uniformStream(1, 1))
		}).To(Panic())
	})
})

var _ = Describe("Builder", func() {
	It("should reject a port without monitoring", func() {
		Expect(func() {
			MakeBuilder().WithoutMonitoring().WithMonitorPort(3000).Build()
		}).To(Panic())
	})

	It("should reject an output file without recording", func() {
		Expect(func() {
			MakeBuilder().WithoutRecording().WithOutputFileName("x").Build()
		}).To(Panic())
	})

	It("should start a monitor", func() {
		s := MakeBuilder().WithoutRecording().Build()
		defer s.Terminate()

		Expect(s.Monitor()).NotTo(BeNil())
	})

	It("should record every step", func() {
		output := filepath.Join(GinkgoT().TempDir(), "run")
		s := MakeBuilder().
			WithoutMonitoring().
			WithOutputFileName(output).
			Build()
		DeferCleanup(func() {
			s.Terminate()
			os.Remove(output + ".sqlite3")
		})

		s.RegisterStream("a", uniformStream(1, 3))
		s.RegisterStream("b", uniformStream(1, 5))

		Expect(s.Run(nil)).To(Succeed())

		writer, ok := s.Recorder().(*datarecording.SQLiteWriter)
		Expect(ok).To(BeTrue())
		Expect(writer.ListTables()).To(ContainElement(datarecording.StepTableName))

		var rows int
		err := writer.QueryRow(
			"SELECT COUNT(*) FROM " + datarecording.StepTableName).Scan(&rows)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(Equal(6))
	})
})
