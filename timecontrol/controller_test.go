package timecontrol

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func intStream(n int) Sequence[any] {
	items := make(SliceSequence[int], n)
	for i := range items {
		items[i] = i
	}

	return AsStream[int](items)
}

var _ = Describe("Controller", func() {
	It("should stop at the shortest stream", func() {
		c := NewController(map[string]Sequence[any]{
			"long":  intStream(5),
			"short": intStream(3),
		})

		cur := c.Start()
		frames := 0
		for {
			_, ok := cur.Next()
			if !ok {
				break
			}
			frames++
		}

		Expect(frames).To(Equal(3))
		Expect(cur.Steps()).To(Equal(3))
		Expect(cur.EndReason()).To(Equal(EndStreamExhausted))
		Expect(cur.ExhaustedStream()).To(Equal("short"))
	})

	It("should advance all streams in lock-step", func() {
		uniform, _ := SimpleDelayTiming(2, 4)
		timing, _ := NewTiming([]float64{1, 3}, []string{"dry", "wet"})

		c := NewController(nil)
		c.Add("model", AsStream[*Step](uniform))
		c.Add("weather", AsStream[Tick[string]](timing))

		frames := Collect[Frame](c)

		Expect(frames).To(HaveLen(4))
		for i, f := range frames {
			step, ok := f.Step("model")
			Expect(ok).To(BeTrue())
			Expect(step.DT()).To(Equal([]float64{2, 0, 2, 0}[i]))
		}

		Expect(frames[0]["weather"]).To(Equal(Event("dry")))
		Expect(frames[1]["weather"]).To(Equal(Event("wet")))
		Expect(frames[2]["weather"]).To(Equal(Filler[string]()))
	})

	It("should end immediately without streams", func() {
		c := NewController(map[string]Sequence[any]{})

		cur := c.Start()
		_, ok := cur.Next()

		Expect(ok).To(BeFalse())
		Expect(cur.EndReason()).To(Equal(EndNoStreams))
		Expect(cur.Steps()).To(BeZero())
	})

	It("should restart every stream on Begin", func() {
		c := NewController(map[string]Sequence[any]{
			"a": intStream(2),
		})

		first := Collect[Frame](c)
		second := Collect[Frame](c)

		Expect(first).To(HaveLen(2))
		Expect(second).To(Equal(first))
	})

	It("should keep reporting the end once exhausted", func() {
		c := NewController(map[string]Sequence[any]{"a": intStream(1)})
		cur := c.Start()

		cur.Next()
		_, ok := cur.Next()
		Expect(ok).To(BeFalse())

		_, ok = cur.Next()
		Expect(ok).To(BeFalse())
		Expect(cur.Steps()).To(Equal(1))
	})

	It("should reject duplicated stream names", func() {
		c := NewController(map[string]Sequence[any]{"a": intStream(1)})

		Expect(func() { c.Add("a", intStream(1)) }).To(Panic())
		Expect(c.Names()).To(Equal([]string{"a"}))
		Expect(c.Len()).To(Equal(1))
	})

	It("should nest controllers", func() {
		inner := NewController(map[string]Sequence[any]{"a": intStream(2)})
		outer := NewController(map[string]Sequence[any]{
			"inner": AsStream[Frame](inner),
			"b":     intStream(4),
		})

		frames := Collect[Frame](outer)

		Expect(frames).To(HaveLen(2))
		Expect(frames[1]["inner"]).To(Equal(Frame{"a": 1}))
	})
})
