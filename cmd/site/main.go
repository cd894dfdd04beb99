package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/labstack/gommon/log"
	"github.com/urfave/cli/v2"

	"github.com/arisclub/site"
	"github.com/arisclub/site/blog"
	"github.com/arisclub/site/posts"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	app := &cli.App{
		Name:    "site",
		Usage:   "serve and export the Markdown-backed site",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "env-file",
				Usage: "dotenv files to load before reading the environment",
				Value: cli.NewStringSlice(".env"),
			},
			&cli.StringFlag{
				Name:    "posts",
				Usage:   "directory holding the Markdown posts (overrides POSTS_DIR)",
				EnvVars: []string{"POSTS_DIR"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP server",
				Action: serveAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address (overrides SITE_ADDR)"},
				},
			},
			{
				Name:   "build",
				Usage:  "export the public site as static files",
				Action: buildAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output directory (overrides EXPORT_DIR)"},
				},
			},
			{
				Name:   "posts",
				Usage:  "list the posts found in the posts directory",
				Action: postsAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "tag", Usage: "only posts with this tag"},
					&cli.BoolFlag{Name: "drafts", Usage: "include unpublished posts"},
				},
			},
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(c *cli.Context) error {
					fmt.Printf("site %s\n", version)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(c *cli.Context) (site.SiteConfig, error) {
	cfg, err := site.LoadConfig(c.StringSlice("env-file")...)
	if err != nil {
		return cfg, err
	}
	if dir := c.String("posts"); dir != "" {
		cfg.PostsDir = dir
	}
	return cfg, nil
}

func serveAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if addr := c.String("addr"); addr != "" {
		cfg.Addr = addr
	}
	app, err := site.New(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Start(ctx)
}

func buildAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if out := c.String("out"); out != "" {
		cfg.ExportDir = out
	}
	// Export never serves preview logins.
	cfg.PreviewPassword = ""
	app, err := site.New(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	files, err := app.Export(c.Context, cfg.ExportDir)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d files to %s\n", len(files), cfg.ExportDir)
	return nil
}

func postsAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	svc := blog.NewService(
		posts.New(posts.Dir(cfg.PostsDir)),
		blog.WithDrafts(c.Bool("drafts")),
		blog.WithLogger(log.New("posts")),
	)
	items, err := svc.List(c.Context, blog.Filter{Tag: c.String("tag")})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tREAD\tSTATUS\tTITLE")
	for _, it := range items {
		status := "published"
		if !it.Published {
			status = "draft"
		}
		fmt.Fprintf(w, "%s\t%s\t%d min\t%s\t%s\n", it.Slug, it.Date, it.ReadingTime, status, it.Title)
	}
	return w.Flush()
}
