// Package picture sources and pre-scales host images for the panel. The
// pixel converter never scales implicitly, so anything drawn full-screen
// goes through Fit first.
package picture

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/go-resty/resty/v2"
	"github.com/inhies/go-bytesize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func NewLoader(fs afero.Fs, logger *zap.Logger) *Loader {
	return &Loader{
		fs:  fs,
		cli: resty.New().SetDoNotParseResponse(true),
		log: logger,
	}
}

type Loader struct {
	fs  afero.Fs
	cli *resty.Client
	log *zap.Logger
}

// Load decodes an image from a local path or an http(s) URL.
func (l *Loader) Load(src string) (image.Image, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return l.fetch(src)
	}

	f, err := l.fs.Open(src)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}

	return img, nil
}

func (l *Loader) fetch(url string) (image.Image, error) {
	resp, err := l.cli.R().Get(url)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = resp.RawBody().Close()
	}()

	bar := progressbar.DefaultBytes(resp.RawResponse.ContentLength, "Downloading")

	var buf bytes.Buffer
	if _, err := io.Copy(io.MultiWriter(&buf, bar), resp.RawBody()); err != nil {
		return nil, err
	}

	l.log.With(
		zap.String("url", url),
		zap.String("size", bytesize.New(float64(buf.Len())).String()),
	).Debug("image downloaded")

	img, err := imaging.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}

	return img, nil
}

// Fit scales and center-crops img to exactly w x h.
func Fit(img image.Image, w, h int) image.Image {
	return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
}
