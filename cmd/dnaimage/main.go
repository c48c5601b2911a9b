package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/bodgit/dnaimage"
	"github.com/bodgit/dnaimage/config"
	"github.com/bodgit/dnaimage/matrix"
	"github.com/bodgit/dnaimage/raster"
	"github.com/bodgit/dnaimage/reads"
	"github.com/bodgit/dnaimage/strand"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func settings(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	// Explicit flags win over the settings file and environment
	if c.IsSet("db") {
		cfg.DB = c.String("db")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("progress") {
		cfg.Progress = c.Bool("progress")
	}
	if c.IsSet("skip-header") {
		cfg.SkipHeader = c.Bool("skip-header")
	}

	return cfg, nil
}

func newCodec(c *cli.Context, withDB bool) (*dnaimage.Codec, *config.Config, func(), error) {
	cfg, err := settings(c)
	if err != nil {
		return nil, nil, nil, err
	}

	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	var progress io.Writer
	if cfg.Progress {
		progress = os.Stderr
	}

	var db *dnaimage.PoolDB
	if withDB {
		if db, err = dnaimage.NewPoolDB(cfg.DB); err != nil {
			return nil, nil, nil, err
		}
	}

	closer := func() {
		if db != nil {
			db.Close()
		}
	}

	return dnaimage.New(db, logger, cfg.Workers, progress), cfg, closer, nil
}

func needArgs(c *cli.Context, n int) {
	if c.NArg() < n {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
}

func create(file string, fn func(io.Writer) error) error {
	w, err := reads.Create(file)
	if err != nil {
		return err
	}
	if err := fn(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func main() {
	app := cli.NewApp()

	app.Name = "dnaimage"
	app.Usage = "Store four color images as pools of addressed DNA strands"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"DNAIMAGE_CONFIG"},
			Usage:   "path to settings file",
		},
		&cli.StringFlag{
			Name:  "db",
			Usage: "path to pool archive",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "number of workers",
		},
		&cli.BoolFlag{
			Name:  "progress",
			Usage: "show a progress bar",
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
			Usage:       "Encode an image as a strand pool",
			Description: "Writes one CSV record per image row. Files ending in .zst are compressed.",
			ArgsUsage:   "IMAGE POOL",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "prepare",
					Usage: "scale and reduce the image to the palette first",
				},
				&cli.StringFlag{
					Name:  "reads",
					Usage: "also write the pool as a read list to `FILE`",
				},
			},
			Action: func(c *cli.Context) error {
				needArgs(c, 2)

				codec, _, closer, err := newCodec(c, false)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer closer()

				m, err := raster.Load(c.Args().Get(0))
				if err != nil {
					return cli.Exit(err, 1)
				}
				if c.Bool("prepare") {
					m = raster.Prepare(m)
				}

				p, err := codec.Encode(m)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := create(c.Args().Get(1), func(w io.Writer) error {
					return strand.WriteCSV(w, p)
				}); err != nil {
					return cli.Exit(err, 1)
				}

				if file := c.String("reads"); file != "" {
					if err := create(file, func(w io.Writer) error {
						return strand.WriteReads(w, p.Strands())
					}); err != nil {
						return cli.Exit(err, 1)
					}
				}

				return nil
			},
		},
		{
			Name:        "decode",
			Usage:       "Decode an image from sequencing reads",
			Description: "Reads may be text (first token per line), SAM or BAM, optionally .zst compressed.",
			ArgsUsage:   "READS IMAGE",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "skip-header",
					Usage: "skip the first line of a text read file",
				},
				&cli.StringFlag{
					Name:  "matrix",
					Usage: "also write the completed matrix to `FILE`",
				},
			},
			Action: func(c *cli.Context) error {
				needArgs(c, 2)

				codec, cfg, closer, err := newCodec(c, false)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer closer()

				r, err := reads.Open(c.Args().Get(0), reads.Options{SkipHeader: cfg.SkipHeader})
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer r.Close()

				mx, report, err := codec.Reconstruct(r)
				if err != nil {
					return cli.Exit(err, 1)
				}

				m, result, err := codec.Render(mx)
				if err != nil {
					return cli.Exit(err, 1)
				}
				result.Reads = report

				if file := c.String("matrix"); file != "" {
					if err := writeMatrix(file, mx); err != nil {
						return cli.Exit(err, 1)
					}
				}

				if err := raster.Save(c.Args().Get(1), m); err != nil {
					return cli.Exit(err, 1)
				}

				printResult(c.App.Writer, result)

				return nil
			},
		},
		{
			Name:        "render",
			Usage:       "Render an image from a saved matrix",
			Description: "Empty, null or wrong length cells are filled with the sentinel payload.",
			ArgsUsage:   "MATRIX IMAGE",
			Action: func(c *cli.Context) error {
				needArgs(c, 2)

				codec, _, closer, err := newCodec(c, false)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer closer()

				b, err := ioutil.ReadFile(c.Args().Get(0))
				if err != nil {
					return cli.Exit(err, 1)
				}

				mx := matrix.New()
				if err := mx.UnmarshalText(b); err != nil {
					return cli.Exit(err, 1)
				}

				m, result, err := codec.Render(mx)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := raster.Save(c.Args().Get(1), m); err != nil {
					return cli.Exit(err, 1)
				}

				printResult(c.App.Writer, result)

				return nil
			},
		},
		{
			Name:      "prepare",
			Usage:     "Scale and reduce an image to the four color palette",
			ArgsUsage: "IMAGE OUTPUT",
			Action: func(c *cli.Context) error {
				needArgs(c, 2)

				m, err := raster.Load(c.Args().Get(0))
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := raster.Save(c.Args().Get(1), raster.Prepare(m)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "import",
			Usage:     "Encode an image and store its pool in the archive",
			ArgsUsage: "NAME IMAGE",
			Action: func(c *cli.Context) error {
				needArgs(c, 2)

				codec, _, closer, err := newCodec(c, true)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer closer()

				if _, err := codec.Import(c.Args().Get(0), c.Args().Get(1)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "export",
			Usage:     "Write an archived pool as a read list",
			ArgsUsage: "NAME READS",
			Action: func(c *cli.Context) error {
				needArgs(c, 2)

				codec, _, closer, err := newCodec(c, true)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer closer()

				if err := create(c.Args().Get(1), func(w io.Writer) error {
					return codec.Export(c.Args().Get(0), w)
				}); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:  "list",
			Usage: "List archived pools",
			Action: func(c *cli.Context) error {
				cfg, err := settings(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				db, err := dnaimage.NewPoolDB(cfg.DB)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				info, err := db.List()
				if err != nil {
					return cli.Exit(err, 1)
				}

				for _, i := range info {
					fmt.Fprintf(c.App.Writer, "%s\t%s\t%d\n", i.Name, i.SHA1, i.Strands)
				}

				return nil
			},
		},
		{
			Name:      "delete",
			Usage:     "Remove a pool from the archive",
			ArgsUsage: "NAME",
			Action: func(c *cli.Context) error {
				needArgs(c, 1)

				cfg, err := settings(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				db, err := dnaimage.NewPoolDB(cfg.DB)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer db.Close()

				if err := db.Delete(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func writeMatrix(file string, mx *matrix.Matrix) error {
	b, err := mx.MarshalText()
	if err != nil {
		return err
	}
	return create(file, func(w io.Writer) error {
		_, err := w.Write(b)
		return err
	})
}

func printResult(w io.Writer, result dnaimage.Result) {
	if result.Reads.Reads > 0 {
		fmt.Fprintln(w, result.Reads)
	}
	fmt.Fprintf(w, "%d cells filled, %d malformed groups\n", len(result.Filled), result.Groups.MalformedGroups)
}
