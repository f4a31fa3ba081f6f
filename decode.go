package scrimage

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/mfitzp/scrimage/screen"
)

// Flashing screens alternate palettes roughly three times a second
const flashDelay = 33

var formats = map[string]imaging.Format{
	"png": imaging.PNG,
	"bmp": imaging.BMP,
	"gif": imaging.GIF,
}

// DecodeOptions control how screens are converted to images
type DecodeOptions struct {
	// Format is one of png, bmp or gif, defaulting to png
	Format string
}

func (o DecodeOptions) format() (string, imaging.Format, error) {
	name := strings.ToLower(o.Format)
	if name == "" {
		name = "png"
	}
	f, ok := formats[name]
	if !ok {
		return "", 0, fmt.Errorf("scrimage: unsupported output format \"%s\"", o.Format)
	}
	return name, f, nil
}

func (c *Converter) decodeReader(r io.Reader, w io.Writer, name string, format imaging.Format) error {
	s, err := screen.DecodeScreen(r)
	if err != nil {
		return err
	}

	if s.Reserved[0] != s.Reserved[1] {
		c.logger.Printf("Reserved bytes differ: % X and % X\n", s.Reserved[0], s.Reserved[1])
	}

	frames := s.Frames(format == imaging.GIF)
	if s.Flashing() && len(frames) == 1 {
		c.logger.Printf("Screen flashes, use GIF to capture the animation, not %s\n", strings.ToUpper(name))
	}

	if len(frames) > 1 {
		g := &gif.GIF{}
		for _, f := range frames {
			g.Image = append(g.Image, f)
			g.Delay = append(g.Delay, flashDelay)
		}
		return gif.EncodeAll(w, g)
	}

	return imaging.Encode(w, frames[0], format)
}

// DecodeScreen converts a screen read from r to an image, with any line
// interrupts applied.
func (c *Converter) DecodeScreen(r io.Reader) (image.Image, error) {
	s, err := screen.DecodeScreen(r)
	if err != nil {
		return nil, err
	}
	return s.Frame(false), nil
}

// DecodeFile converts the screen in file to an image written to out. If out
// is empty the image is written alongside the screen with the extension
// replaced by the format.
func (c *Converter) DecodeFile(file, out string, opts DecodeOptions) error {
	name, format, err := opts.format()
	if err != nil {
		return err
	}

	if out == "" {
		out = outputFilename(file, "."+name)
	}

	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	b := new(bytes.Buffer)
	if err := c.decodeReader(f, b, name, format); err != nil {
		return err
	}

	if err := ioutil.WriteFile(out, b.Bytes(), 0666); err != nil {
		return err
	}

	c.logger.Printf("Converted \"%s\" to \"%s\"\n", file, out)

	return nil
}

// DecodeFiles converts each screen in files to an image. If out is not empty
// then only one file may be given.
func (c *Converter) DecodeFiles(files []string, out string, opts DecodeOptions) error {
	if len(files) > 1 && out != "" {
		return ErrMultipleOutput
	}
	if _, _, err := opts.format(); err != nil {
		return err
	}
	return c.run(files, func(file string) error {
		return c.DecodeFile(file, out, opts)
	})
}
