package remote

import (
	"bytes"
	"context"
	"image/png"
	"log"
	"net/http"
	"net/rpc"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"turingscreen/pkg/proto"
)

// Proxy exposes a screen over net/rpc HTTP so one daemon can own the
// serial port while callers drive it remotely.
func Proxy(dev proto.Control, srv *http.Server, lifecycle fx.Lifecycle) error {
	svc := &Service{dev: dev}
	if err := rpc.Register(svc); err != nil {
		return err
	}

	rpc.HandleHTTP()

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != http.ErrServerClosed {
					log.Fatal(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := dev.Close(); err != nil {
				return err
			}
			return srv.Shutdown(ctx)
		},
	})

	return nil
}

type Service struct {
	dev proto.Control
}

func (s *Service) Command(name string, _ *EmptyResponse) error {
	switch name {
	case "startup":
		return s.dev.Startup()
	case "shutdown":
		return s.dev.Shutdown()
	case "restart":
		return s.dev.Restart()
	case "clear":
		return s.dev.Clear()
	case "blank":
		return s.dev.Blank()
	}

	return errors.Errorf("unknown command %q", name)
}

func (s *Service) SetBrightness(level int, _ *EmptyResponse) error {
	return s.dev.SetBrightness(level)
}

func (s *Service) SetOrientation(o proto.Orientation, _ *EmptyResponse) error {
	return s.dev.SetOrientation(o)
}

func (s *Service) DrawBitmap(req *DrawBitmapRequest, _ *EmptyResponse) error {
	img, err := png.Decode(bytes.NewBuffer(req.Image))
	if err != nil {
		return err
	}

	return s.dev.DrawBitmap(req.PosX, req.PosY, img)
}
