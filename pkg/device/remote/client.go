package remote

import (
	"bytes"
	"image"
	"image/png"
	"net/rpc"

	"turingscreen/pkg/proto"
)

func New(addr string) (proto.Control, error) {
	client, err := rpc.DialHTTP("tcp", addr)
	if err != nil {
		return nil, err
	}

	return &Client{rpc: client}, nil
}

type Client struct {
	rpc *rpc.Client
}

func (c *Client) Startup() error {
	return c.rpc.Call("Service.Command", "startup", nil)
}

func (c *Client) Shutdown() error {
	return c.rpc.Call("Service.Command", "shutdown", nil)
}

func (c *Client) Restart() error {
	return c.rpc.Call("Service.Command", "restart", nil)
}

func (c *Client) Clear() error {
	return c.rpc.Call("Service.Command", "clear", nil)
}

func (c *Client) Blank() error {
	return c.rpc.Call("Service.Command", "blank", nil)
}

func (c *Client) SetBrightness(level int) error {
	return c.rpc.Call("Service.SetBrightness", level, nil)
}

func (c *Client) SetOrientation(o proto.Orientation) error {
	return c.rpc.Call("Service.SetOrientation", o, nil)
}

func (c *Client) Draw(img image.Image) error {
	return c.DrawBitmap(0, 0, img)
}

func (c *Client) DrawBitmap(posX uint16, posY uint16, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	return c.rpc.Call("Service.DrawBitmap", &DrawBitmapRequest{
		PosX:  posX,
		PosY:  posY,
		Image: buf.Bytes(),
	}, nil)
}

func (c *Client) Close() error {
	return c.rpc.Close()
}
