package main

import (
	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/NiklasVoigt/sharpctl/cmd"
	"github.com/NiklasVoigt/sharpctl/config"
	"github.com/NiklasVoigt/sharpctl/types"
)

var Version = "dev"

type CLI struct {
	Scan   cmd.ScanCmd   `cmd:"" help:"Sample sharpness across the whole video"`
	Pick   cmd.PickCmd   `cmd:"" help:"Pick the sharpest frame near every interval target"`
	Export cmd.ExportCmd `cmd:"" help:"Export the saved selection as image files"`
	Run    cmd.RunCmd    `cmd:"" help:"Scan, pick and optionally export in one go"`
	Grab   cmd.GrabCmd   `cmd:"" help:"Save a single frame at a given time"`
	Info   cmd.InfoCmd   `cmd:"" help:"Show video metadata and saved analysis state"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid environment configuration: %v", err)
	}

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	appCtx := &types.AppContext{
		Version: Version,
		Config:  cfg,
		Log:     log,
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("sharpctl"),
		kong.Description("Extract the sharpest frames from a video"),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run(appCtx))
}
