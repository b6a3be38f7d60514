// Package cmd implements the sharpctl command-line surface. The commands are
// thin glue over the analysis engine and the capture session; all messaging
// to the user happens here.
package cmd

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/NiklasVoigt/sharpctl/analysis"
	"github.com/NiklasVoigt/sharpctl/capture"
	"github.com/NiklasVoigt/sharpctl/config"
	"github.com/NiklasVoigt/sharpctl/types"
)

// progressScale maps the engine's [0,1] fraction onto bar ticks.
const progressScale = 1000

func appLog(appCtx *types.AppContext) *logrus.Logger {
	if appCtx != nil && appCtx.Log != nil {
		return appCtx.Log
	}
	return logrus.StandardLogger()
}

func appConfig(appCtx *types.AppContext) *config.Config {
	if appCtx != nil && appCtx.Config != nil {
		return appCtx.Config
	}
	return &config.Config{ThumbHeight: analysis.DefaultThumbHeight, ImageFormat: "jpg"}
}

func appVersion(appCtx *types.AppContext) string {
	if appCtx != nil && appCtx.Version != "" {
		return appCtx.Version
	}
	return types.DefaultVersion
}

// openSession validates the input and opens the shared decode session.
func openSession(appCtx *types.AppContext, file string) (*capture.Session, error) {
	if !capture.IsVideoFile(file) {
		return nil, fmt.Errorf("%s is not a video file", file)
	}
	sess, err := capture.Open(file, appLog(appCtx))
	if err != nil {
		return nil, fmt.Errorf("failed to open video: %w", err)
	}
	return sess, nil
}

// barProgress adapts a terminal progress bar to the engine's progress
// callback. The engine throttles updates itself.
func barProgress(description string) analysis.ProgressFunc {
	bar := progressbar.NewOptions(progressScale,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetRenderBlankState(true),
	)
	return func(fraction float64, status string) {
		bar.Describe(status)
		_ = bar.Set(int(fraction * progressScale))
	}
}
