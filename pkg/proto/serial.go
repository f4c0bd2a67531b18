package proto

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// SerialNumber is the USB serial number the 3.5" rev A panel enumerates
// with, used for port discovery.
const SerialNumber = "USB35INCHIPSV2"

type Options struct {
	DTR          bool
	RTS          bool
	BaudRate     int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FindPort scans USB serial ports for the panel and returns the matching
// port name, or ErrDeviceNotFound.
func FindPort() (string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return "", err
	}

	for _, p := range ports {
		if p.IsUSB && p.SerialNumber == SerialNumber {
			return p.Name, nil
		}
	}

	return "", ErrDeviceNotFound
}

// NewSerial wraps a serial channel by port name. An empty name means
// discover the panel by its USB serial number; otherwise the first port
// whose name contains the given string is used.
func NewSerial(name string) *Serial {
	return &Serial{name: name}
}

// Serial is a minimal transport over one exclusively-owned serial port.
// It carries no retry or protocol policy, only bounded reads and writes.
type Serial struct {
	name         string
	port         serial.Port
	writeTimeout time.Duration
}

func (s *Serial) Ports() ([]string, error) {
	return serial.GetPortsList()
}

func (s *Serial) resolve() (string, error) {
	if s.name == "" {
		return FindPort()
	}

	ports, err := s.Ports()
	if err != nil {
		return "", err
	}

	for _, name := range ports {
		if strings.Contains(name, s.name) {
			return name, nil
		}
	}

	return "", errors.Wrapf(ErrDeviceNotFound, "no port matching %q", s.name)
}

func (s *Serial) Open(opts *Options) error {
	matched, err := s.resolve()
	if err != nil {
		return err
	}

	port, err := serial.Open(matched, &serial.Mode{BaudRate: opts.BaudRate})
	if err != nil {
		return err
	}

	if err := port.SetDTR(opts.DTR); err != nil {
		return err
	}

	if err := port.SetRTS(opts.RTS); err != nil {
		return err
	}

	if err := port.SetReadTimeout(opts.ReadTimeout); err != nil {
		return err
	}

	s.port = port
	s.writeTimeout = opts.WriteTimeout
	return nil
}

func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}

	err := s.port.Close()
	s.port = nil
	return err
}

// Read blocks up to the configured read timeout. A timeout surfaces as
// n == 0 with a nil error, matching the underlying driver.
func (s *Serial) Read(p []byte) (n int, err error) {
	if s.port == nil {
		return 0, ErrScreenClosed
	}
	return s.port.Read(p)
}

// Write pushes one frame to the device, bounded by the write timeout when
// one is configured. The serial driver exposes no native write deadline,
// so the deadline is enforced around the blocking call; on expiry the
// in-flight write is abandoned and ErrTimeout returned.
func (s *Serial) Write(p []byte) (n int, err error) {
	if s.port == nil {
		return 0, ErrScreenClosed
	}

	if s.writeTimeout <= 0 {
		return s.port.Write(p)
	}

	type result struct {
		n   int
		err error
	}

	done := make(chan result, 1)
	go func() {
		n, err := s.port.Write(p)
		done <- result{n, err}
	}()

	timer := time.NewTimer(s.writeTimeout)
	defer timer.Stop()

	select {
	case r := <-done:
		return r.n, r.err
	case <-timer.C:
		return 0, errors.Wrapf(ErrTimeout, "write of %d bytes", len(p))
	}
}
