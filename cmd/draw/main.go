package main

import (
	"log"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"turingscreen/pkg/device/inch35"
	"turingscreen/pkg/device/remote"
	"turingscreen/pkg/device/virtual"
	"turingscreen/pkg/picture"
	"turingscreen/pkg/proto"
)

var serial = flag.String("serial", "", "serial name (auto-detect when empty)")
var remoteAddr = flag.String("remote", "", "remote device addr")
var isVirtual = flag.Bool("virtual", false, "use the virtual device")
var snapshots = flag.String("snapshots", "", "virtual snapshot dir")
var light = flag.Int("light", 100, "brightness 0-100")
var landscape = flag.Bool("landscape", false, "set landscape")
var invert = flag.Bool("invert", false, "set inverted orientation")
var clear = flag.Bool("clear", false, "clear before drawing")
var imageSrc = flag.String("image", "", "image file path or URL")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	if !*debug {
		logger = logger.WithOptions(zap.IncreaseLevel(zap.InfoLevel))
	}

	var dev proto.Control
	var devErr error

	switch {
	case *remoteAddr != "":
		dev, devErr = remote.New(*remoteAddr)
	case *isVirtual:
		if *snapshots != "" {
			fs := afero.NewBasePathFs(afero.NewOsFs(), *snapshots)
			dev = virtual.MockWithSnapshots(logger, fs)
		} else {
			dev = virtual.Mock(logger)
		}
	default:
		dev, devErr = inch35.New(proto.NewSerial(*serial), logger)
	}

	if devErr != nil {
		log.Fatal(devErr)
	}

	defer func() {
		if err := dev.Close(); err != nil {
			logger.With(zap.Error(err)).Info("close failed")
		}
	}()

	if err := dev.Startup(); err != nil {
		log.Fatal(err)
	}

	o := proto.ParseOrientation(*landscape, *invert)
	if err := dev.SetOrientation(o); err != nil {
		log.Fatal(err)
	}

	if err := dev.SetBrightness(*light); err != nil {
		log.Fatal(err)
	}

	if *clear {
		if err := dev.Clear(); err != nil {
			log.Fatal(err)
		}
	}

	if *imageSrc == "" {
		return
	}

	w, h := inch35.PanelWidth, inch35.PanelHeight
	if o.IsLandscape() {
		w, h = h, w
	}

	loader := picture.NewLoader(afero.NewOsFs(), logger)
	img, err := loader.Load(*imageSrc)
	if err != nil {
		log.Fatal(err)
	}

	if err := dev.Draw(picture.Fit(img, w, h)); err != nil {
		log.Fatal(err)
	}
}
