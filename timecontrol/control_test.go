package timecontrol

import (
	"bytes"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
	"github.com/sarchlab/astk/hooking"
	"github.com/sarchlab/astk/weather"
	"go.uber.org/mock/gomock"
)

type modelWithoutTiming struct{}

type panickingModel struct{}

func (panickingModel) Timing(
	_, _ int,
	_ weather.Table,
	_ time.Time,
) (Sequence[*Step], error) {
	panic("boom")
}

var _ = Describe("Control", func() {
	var (
		mockCtrl *gomock.Controller
		model    *MockTimedModel
		logs     *bytes.Buffer
		logger   zerolog.Logger
		start    time.Time
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		model = NewMockTimedModel(mockCtrl)
		logs = new(bytes.Buffer)
		logger = zerolog.New(logs)
		start = time.Date(2000, 10, 1, 1, 0, 0, 0, time.UTC)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should use the model timing", func() {
		table, _ := weather.NewSeries(nil)
		modelSteps := SliceSequence[*Step]{
			NewStepWithFields(2, map[string]any{"weather": "w0"}),
			NewStep(0),
		}
		model.EXPECT().
			Timing(6, 24, table, start).
			Return(modelSteps, nil)

		c := NewControl(ControlConfig{
			Delay:     6,
			Steps:     24,
			Model:     model,
			Weather:   table,
			StartDate: start,
		}, WithLogger(logger))

		steps := Collect[*Step](c)

		Expect(c.Resolution()).To(Equal(ResolvedModel))
		Expect(dts(steps)).To(Equal([]float64{2, 0}))
		w, ok := steps[0].Get("weather")
		Expect(ok).To(BeTrue())
		Expect(w).To(Equal("w0"))
		Expect(logs.Len()).To(BeZero())
	})

	It("should ask the model again on every Begin", func() {
		model.EXPECT().
			Timing(1, 2, nil, gomock.Any()).
			Return(SliceSequence[*Step]{NewStep(1)}, nil).
			Times(2)

		c := NewControl(ControlConfig{Delay: 1, Steps: 2, Model: model})

		c.Begin()
		c.Begin()
	})

	It("should fall back to the uniform clock when the model fails", func() {
		model.EXPECT().
			Timing(3, 9, nil, gomock.Any()).
			Return(nil, errors.New("no weather"))

		failing := NewControl(
			ControlConfig{Delay: 3, Steps: 9, Model: model},
			WithLogger(logger))
		plain := NewControl(ControlConfig{Delay: 3, Steps: 9})

		Expect(dts(Collect[*Step](failing))).To(
			Equal(dts(Collect[*Step](plain))))
		Expect(failing.Resolution()).To(Equal(ResolvedFallback))
		Expect(plain.Resolution()).To(Equal(ResolvedFallback))
		Expect(logs.String()).To(ContainSubstring("no weather"))
		Expect(logs.String()).To(ContainSubstring(`"level":"warn"`))
	})

	It("should fall back when the model returns a nil timing", func() {
		model.EXPECT().
			Timing(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		c := NewControl(
			ControlConfig{Delay: 2, Steps: 4, Model: model},
			WithLogger(logger))

		Expect(dts(Collect[*Step](c))).To(Equal([]float64{2, 0, 2, 0}))
		Expect(logs.String()).To(ContainSubstring(ErrNilTiming.Error()))
	})

	It("should fall back when the model returns a typed nil timing", func() {
		var uniform *Uniform
		model.EXPECT().
			Timing(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uniform, nil)

		c := NewControl(
			ControlConfig{Delay: 3, Steps: 2, Model: model},
			WithLogger(logger))

		Expect(dts(Collect[*Step](c))).To(Equal([]float64{3, 0}))
		Expect(c.Resolution()).To(Equal(ResolvedFallback))
		Expect(logs.String()).To(ContainSubstring(ErrNilTiming.Error()))
	})

	It("should fall back when the model panics", func() {
		c := NewControl(
			ControlConfig{Delay: 2, Steps: 2, Model: panickingModel{}},
			WithLogger(logger))

		Expect(dts(Collect[*Step](c))).To(Equal([]float64{2, 0}))
		Expect(logs.String()).To(ContainSubstring("boom"))
	})

	It("should fall back when the model has no timing capability", func() {
		c := NewControl(
			ControlConfig{Delay: 1, Steps: 2, Model: modelWithoutTiming{}},
			WithLogger(logger))

		Expect(dts(Collect[*Step](c))).To(Equal([]float64{1, 1}))
		Expect(logs.String()).To(ContainSubstring("no timing capability"))
	})

	It("should not warn without a model", func() {
		c := NewControl(ControlConfig{Delay: 1, Steps: 1}, WithLogger(logger))

		Collect[*Step](c)

		Expect(logs.Len()).To(BeZero())
	})

	It("should use the default schedule for invalid parameters", func() {
		c := NewControl(ControlConfig{}, WithLogger(logger))

		steps := Collect[*Step](c)

		Expect(dts(steps)).To(Equal([]float64{1}))
		Expect(c.Resolution()).To(Equal(ResolvedDefault))
		Expect(c.Config()).To(Equal(ControlConfig{}))
		Expect(logs.String()).To(ContainSubstring(`"resolution":"default"`))
	})

	It("should report fallbacks to hooks", func() {
		hook := NewMockHook(mockCtrl)
		model.EXPECT().
			Timing(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("broken"))

		c := NewControl(
			ControlConfig{Delay: 0, Steps: 3, Model: model},
			WithLogger(logger))
		c.AcceptHook(hook)

		var infos []FallbackInfo
		hook.EXPECT().
			Func(gomock.Any()).
			Do(func(ctx hooking.HookCtx) {
				Expect(ctx.Pos).To(BeIdenticalTo(HookPosTimingFallback))
				Expect(ctx.Domain).To(BeIdenticalTo(c))
				infos = append(infos, ctx.Item.(FallbackInfo))
			}).
			Times(2)

		Expect(dts(Collect[*Step](c))).To(Equal([]float64{1}))
		Expect(infos).To(HaveLen(2))
		Expect(infos[0].Resolution).To(Equal(ResolvedFallback))
		Expect(infos[0].Reason).To(MatchError("broken"))
		Expect(infos[1].Resolution).To(Equal(ResolvedDefault))
		Expect(infos[1].Reason).To(MatchError(ErrInvalidFallback))
		Expect(infos[1].Delay).To(Equal(1))
		Expect(infos[1].Steps).To(Equal(1))
	})

	It("should keep its configuration across restarts", func() {
		c := NewControl(ControlConfig{Delay: 2, Steps: 5})

		first := dts(Collect[*Step](c))
		second := dts(Collect[*Step](c))

		Expect(first).To(Equal([]float64{2, 0, 2, 0, 2}))
		Expect(second).To(Equal(first))
		Expect(c.Config().Delay).To(Equal(2))
		Expect(c.Config().Steps).To(Equal(5))
	})
})
