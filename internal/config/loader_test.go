package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/nightwatch/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

const invalidYaml = `
input: "input.txt"
top_n: [unterminated
`

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Input, convey.ShouldEqual, "input.txt")
				convey.So(cfg.TopN, convey.ShouldEqual, 10)
				convey.So(cfg.Heatmap, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("NIGHTWATCH_INPUT", "guards.log")
			_ = os.Setenv("NIGHTWATCH_TOP_N", "5")
			_ = os.Setenv("NIGHTWATCH_HEATMAP", "true")
			_ = os.Setenv("NIGHTWATCH_MINUTE_STRATEGY", "true")
			_ = os.Setenv("NIGHTWATCH_METRICS_FILE", "/tmp/nightwatch.prom")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Input, convey.ShouldEqual, "guards.log")
				convey.So(cfg.TopN, convey.ShouldEqual, 5)
				convey.So(cfg.Heatmap, convey.ShouldBeTrue)
				convey.So(cfg.MinuteStrategy, convey.ShouldBeTrue)
				convey.So(cfg.MetricsFile, convey.ShouldEqual, "/tmp/nightwatch.prom")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
log_level: debug
input: "night.log"
top_n: 3
heatmap: true
heatmap_guards: 5
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("NIGHTWATCH_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Input, convey.ShouldEqual, "night.log")
				convey.So(cfg.TopN, convey.ShouldEqual, 3)
				convey.So(cfg.Heatmap, convey.ShouldBeTrue)
				convey.So(cfg.HeatmapGuards, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When the path argument names the file", func() {
			tmpFile := createTempConfigFile("top_n: 7\n")
			defer func() { _ = os.Remove(tmpFile) }()
			clearConfigEnvVars()

			cfg, err := config.Load(ctx, tmpFile)

			convey.Convey("Then it should be used without the env var", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TopN, convey.ShouldEqual, 7)
				convey.So(cfg.Input, convey.ShouldEqual, "input.txt")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile("input: \"night.log\"\ntop_n: 3\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("NIGHTWATCH_CONFIG", tmpFile)
			_ = os.Setenv("NIGHTWATCH_TOP_N", "12")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Input, convey.ShouldEqual, "night.log") // From file
				convey.So(cfg.TopN, convey.ShouldEqual, 12)           // Overridden by env
			})
		})
	})
}

func TestConfigLoaderEdgeCases(t *testing.T) {
	convey.Convey("Given config loader edge cases", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with invalid YAML", func() {
			tmpFile := createTempConfigFile(invalidYaml)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("NIGHTWATCH_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			cfg, err := config.Load(ctx, "/non/existent/file.yaml")

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an empty input", func() {
			_ = os.Setenv("NIGHTWATCH_INPUT", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "input must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a negative ranking size", func() {
			_ = os.Setenv("NIGHTWATCH_TOP_N", "-1")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	envVars := []string{
		"NIGHTWATCH_CONFIG",
		"NIGHTWATCH_LOG_LEVEL",
		"NIGHTWATCH_INPUT",
		"NIGHTWATCH_TOP_N",
		"NIGHTWATCH_METRICS_FILE",
		"NIGHTWATCH_HEATMAP",
		"NIGHTWATCH_HEATMAP_GUARDS",
		"NIGHTWATCH_MINUTE_STRATEGY",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "nightwatch-config-*.yaml")
	if err != nil {
		panic(err)
	}
	defer func() { _ = tmpFile.Close() }()

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
