package main

import (
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"
	"runtime"

	"github.com/mfitzp/scrimage"
	"github.com/mfitzp/scrimage/interrupt"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newConverter(c *cli.Context) (*scrimage.Converter, error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	return scrimage.New(c.String("cache"), c.Int("jobs"), logger)
}

func main() {
	app := cli.NewApp()

	app.Name = "scrimage"
	app.Usage = "SAM Coupé SCREEN$ conversion utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "cache",
			EnvVars: []string{"SCRIMAGE_CACHE"},
			Usage:   "path to database caching encoded screens",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Value:   runtime.NumCPU(),
			Usage:   "number of files to convert at once",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "encode",
			Aliases:     []string{"img2sam"},
			Usage:       "Convert images to SCREEN$ files",
			Description: "Each image is resized and cropped to fit the screen. Unless an output file is given, the screen is written next to the image with a .scr extension.",
			ArgsUsage:   "IMAGE...",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "dither",
					Aliases: []string{"d"},
					Usage:   "dither image using the SAM palette before reducing colors",
				},
				&cli.BoolFlag{
					Name:    "interrupts",
					Aliases: []string{"i"},
					Usage:   "use line interrupts to maximise image colors",
				},
				&cli.IntFlag{
					Name:    "max-interrupts",
					EnvVars: []string{"SCRIMAGE_MAX_INTERRUPTS"},
					Value:   interrupt.MaxInterrupts,
					Usage:   "maximum number of line interrupts",
				},
				&cli.Float64Flag{
					Name:  "blur",
					Usage: "blur image with this sigma before reducing colors",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output file, only with a single image",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				opts := scrimage.EncodeOptions{
					Dither:        c.Bool("dither"),
					Interrupts:    c.Bool("interrupts"),
					MaxInterrupts: c.Int("max-interrupts"),
					Blur:          float32(c.Float64("blur")),
				}

				if err := m.EncodeFiles(c.Args().Slice(), c.String("output"), opts); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "decode",
			Aliases:     []string{"sam2img"},
			Usage:       "Convert SCREEN$ files to images",
			Description: "Flashing screens are only animated when writing GIF. Unless an output file is given, the image is written next to the screen with the extension of the format.",
			ArgsUsage:   "SCREEN...",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "png",
					Usage:   "output format, one of png, bmp or gif",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output file, only with a single screen",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				m, err := newConverter(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer m.Close()

				opts := scrimage.DecodeOptions{
					Format: c.String("format"),
				}

				if err := m.DecodeFiles(c.Args().Slice(), c.String("output"), opts); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
