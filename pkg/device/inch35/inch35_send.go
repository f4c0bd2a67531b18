package inch35

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"turingscreen/pkg/proto"
)

// handshake probes the panel with a hello frame and validates the echoed
// response. Exactly one frame is written; a silent or garbled device
// surfaces as ErrHandshakeFailed.
func (i *Inch35) handshake() error {
	f := proto.HelloFrame()
	if _, err := i.port.Write(f); err != nil {
		return errors.Wrapf(proto.ErrHandshakeFailed, "hello: %v", err)
	}

	buf := make([]byte, 32)
	n, err := i.port.Read(buf)
	if err != nil {
		return errors.Wrapf(proto.ErrHandshakeFailed, "read response: %v", err)
	}
	if n == 0 {
		return errors.Wrap(proto.ErrHandshakeFailed, "no response within timeout")
	}

	resp, err := proto.Decode(buf[:n])
	if err != nil {
		return errors.Wrapf(proto.ErrHandshakeFailed, "%v", err)
	}
	if resp.ID != proto.CmdHello {
		return errors.Wrapf(proto.ErrHandshakeFailed, "unexpected response command %#x", byte(resp.ID))
	}

	return nil
}

// command encodes and sends a bare frame for commands that carry no
// payload beyond the header.
func (i *Inch35) command(id proto.CommandID) error {
	if err := i.ensureReady(); err != nil {
		return err
	}

	f, err := proto.Encode(proto.Command{ID: id})
	if err != nil {
		return err
	}

	if err := i.send(f); err != nil {
		return err
	}

	i.state = stateIdle
	return nil
}

// send writes one frame as an atomic unit, retrying transient transport
// failures up to the configured bound with backoff. Exhausting the bound
// closes the screen: the panel state is indeterminate once writes stop
// landing.
func (i *Inch35) send(f proto.Frame) error {
	var lastErr error

	for attempt := 0; attempt <= i.cfg.Retries; attempt++ {
		if attempt > 0 {
			time.Sleep(i.cfg.Backoff * time.Duration(attempt))
		}

		start := time.Now()
		n, err := i.port.Write(f)
		if err == nil && n == len(f) {
			ext := ""
			if len(f) <= 16 {
				ext = fmt.Sprintf("%x", []byte(f))
			}
			i.logger.With(
				zap.Int("sent", n),
				zap.String("cost", time.Since(start).String()),
				zap.String("data", ext),
			).Debug("transfer")
			return nil
		}

		if err != nil {
			lastErr = err
		} else {
			lastErr = errors.Errorf("short write: %d of %d bytes", n, len(f))
		}

		i.logger.With(zap.Int("attempt", attempt+1), zap.Error(lastErr)).Debug("write failed")
	}

	return i.fail(lastErr)
}

func (i *Inch35) fail(cause error) error {
	i.state = stateClosed
	_ = i.port.Close()
	return errors.Wrapf(proto.ErrCommunication, "giving up after %d attempts: %v", i.cfg.Retries+1, cause)
}
