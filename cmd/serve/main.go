package main

import (
	"net/http"

	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"turingscreen/pkg/device/inch35"
	"turingscreen/pkg/device/remote"
	"turingscreen/pkg/proto"
)

var serial = flag.String("serial", "", "serial name (auto-detect when empty)")
var listen = flag.String("listen", ":9123", "listen addr")

func main() {
	flag.Parse()

	fx.New(
		fx.Provide(
			func() (*proto.Serial, *http.Server, *zap.Logger, error) {
				logger, err := zap.NewDevelopment()
				return proto.NewSerial(*serial),
					&http.Server{Addr: *listen},
					logger,
					err
			},
			func(s *proto.Serial, logger *zap.Logger) (proto.Control, error) {
				return inch35.New(s, logger)
			},
		),
		fx.Invoke(
			remote.Proxy,
		),
	).Run()
}
