package loggen_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/okian/nightwatch/internal/domain/parser"
	"github.com/okian/nightwatch/internal/loggen"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	Convey("Given the default generator config", t, func() {
		ctx := context.Background()
		cfg := loggen.DefaultConfig()

		Convey("When generating a log", func() {
			gen, err := loggen.Generate(ctx, cfg)
			So(err, ShouldBeNil)

			Convey("Then there should be one shift per night plus two lines per nap", func() {
				want := 0
				for _, n := range gen.Nights {
					want += 1 + 2*len(n.Naps)
				}
				So(gen.Nights, ShouldHaveLength, cfg.Nights)
				So(gen.Lines, ShouldHaveLength, want)
			})

			Convey("Then naps should be ordered, disjoint and inside the hour", func() {
				for _, n := range gen.Nights {
					prev := 0
					for _, nap := range n.Naps {
						So(nap.From, ShouldBeGreaterThanOrEqualTo, prev)
						So(nap.From, ShouldBeLessThan, nap.To)
						So(nap.To, ShouldBeLessThan, 60)
						prev = nap.To
					}
				}
			})

			Convey("Then every line should parse", func() {
				events, err := parser.Parse(ctx, strings.NewReader(strings.Join(gen.Lines, "\n")))
				So(err, ShouldBeNil)
				So(events, ShouldHaveLength, len(gen.Lines))
			})

			Convey("Then WriteTo should emit every line", func() {
				var buf bytes.Buffer
				n, err := gen.WriteTo(&buf)
				So(err, ShouldBeNil)
				So(n, ShouldEqual, int64(buf.Len()))
				So(strings.Count(buf.String(), "\n"), ShouldEqual, len(gen.Lines))
			})
		})

		Convey("When generating twice with the same seed", func() {
			a, err1 := loggen.Generate(ctx, cfg)
			b, err2 := loggen.Generate(ctx, cfg)

			Convey("Then the logs should be identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(b.Lines, ShouldResemble, a.Lines)
			})
		})

		Convey("When the config is invalid", func() {
			for _, mutate := range []func(*loggen.Config){
				func(c *loggen.Config) { c.Guards = 0 },
				func(c *loggen.Config) { c.Nights = -1 },
				func(c *loggen.Config) { c.MaxNaps = 40 },
				func(c *loggen.Config) { c.Guards = 1_000_000 },
			} {
				bad := loggen.DefaultConfig()
				mutate(&bad)
				_, err := loggen.Generate(ctx, bad)
				So(errors.Is(err, loggen.ErrInvalidConfig), ShouldBeTrue)
			}
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := loggen.Generate(cctx, cfg)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}
