package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/hupe1980/sparseset"
	"github.com/hupe1980/sparseset/blobstore"
	"github.com/hupe1980/sparseset/blobstore/minio"
	"github.com/hupe1980/sparseset/blobstore/s3"
	"github.com/hupe1980/sparseset/persistence"
	"gopkg.in/alecthomas/kingpin.v2"
)

// handler runs a parsed command.
type handler func(ctx context.Context, e *env) error

// command registers a subcommand and returns its handler.
type command func(app *kingpin.Application) (*kingpin.CmdClause, handler)

var commands = []command{
	listCmd,
	showCmd,
	ranksCmd,
	sizeCmd,
	containsCmd,
	addCmd,
	removeCmd,
	clearCmd,
	deleteCmd,
	unionCmd,
	intersectCmd,
	diffCmd,
	symdiffCmd,
	equalCmd,
	subsetCmd,
}

// env is what handlers work with.
type env struct {
	mgr *persistence.Manager
	in  io.Reader
	out io.Writer
	log *sparseset.Logger
}

type globalFlags struct {
	dir         *string
	compression *string
	concurrency *int
	rps         *float64
	maxInFlight *int64
	logLevel    *string
	logJSON     *bool

	s3Bucket   *string
	s3Prefix   *string
	s3Region   *string
	s3Endpoint *string

	minioEndpoint  *string
	minioAccessKey *string
	minioSecretKey *string
	minioBucket    *string
	minioPrefix    *string
	minioSecure    *bool
}

func registerGlobalFlags(app *kingpin.Application) *globalFlags {
	return &globalFlags{
		dir: app.Flag("dir", "Directory holding the saved sets.").
			Short('d').Envar("SPARSESET_DIR").Default("sparseset-data").String(),
		compression: app.Flag("compression", "Encoding of saved sets.").
			Envar("SPARSESET_COMPRESSION").Default("none").Enum("none", "lz4", "zstd"),
		concurrency: app.Flag("concurrency", "Parallel store requests for multi-set commands (0 = GOMAXPROCS).").
			Default("0").Int(),
		rps: app.Flag("rps", "Store request rate limit per second (0 = unlimited).").
			Envar("SPARSESET_RPS").Default("0").Float64(),
		maxInFlight: app.Flag("max-inflight", "Concurrent store requests (0 = unlimited).").
			Default("0").Int64(),
		logLevel: app.Flag("log-level", "Log level.").
			Envar("SPARSESET_LOG_LEVEL").Default("warn").Enum("debug", "info", "warn", "error"),
		logJSON: app.Flag("log-json", "Log as JSON.").Bool(),

		s3Bucket:   app.Flag("s3-bucket", "Keep sets in this S3 bucket instead of --dir.").Envar("SPARSESET_S3_BUCKET").String(),
		s3Prefix:   app.Flag("s3-prefix", "Key prefix inside the S3 bucket.").Envar("SPARSESET_S3_PREFIX").String(),
		s3Region:   app.Flag("s3-region", "AWS region override.").Envar("SPARSESET_S3_REGION").String(),
		s3Endpoint: app.Flag("s3-endpoint", "S3-compatible endpoint URL.").Envar("SPARSESET_S3_ENDPOINT").String(),

		minioEndpoint:  app.Flag("minio-endpoint", "Keep sets on this MinIO server (host:port).").Envar("SPARSESET_MINIO_ENDPOINT").String(),
		minioAccessKey: app.Flag("minio-access-key", "MinIO access key.").Envar("SPARSESET_MINIO_ACCESS_KEY").String(),
		minioSecretKey: app.Flag("minio-secret-key", "MinIO secret key.").Envar("SPARSESET_MINIO_SECRET_KEY").String(),
		minioBucket:    app.Flag("minio-bucket", "MinIO bucket.").Envar("SPARSESET_MINIO_BUCKET").Default("sparseset").String(),
		minioPrefix:    app.Flag("minio-prefix", "Key prefix inside the MinIO bucket.").Envar("SPARSESET_MINIO_PREFIX").String(),
		minioSecure:    app.Flag("minio-secure", "Use TLS for MinIO.").Bool(),
	}
}

func (g *globalFlags) logger(w io.Writer) *sparseset.Logger {
	var level slog.Level
	_ = level.UnmarshalText([]byte(*g.logLevel))
	opts := &slog.HandlerOptions{Level: level}
	if *g.logJSON {
		return sparseset.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return sparseset.NewLogger(slog.NewTextHandler(w, opts))
}

func (g *globalFlags) store(ctx context.Context) (blobstore.BlobStore, error) {
	var store blobstore.BlobStore
	switch {
	case *g.s3Bucket != "" && *g.minioEndpoint != "":
		return nil, fmt.Errorf("--s3-bucket and --minio-endpoint are mutually exclusive")
	case *g.s3Bucket != "":
		var opts []s3.Option
		if *g.s3Prefix != "" {
			opts = append(opts, s3.WithPrefix(*g.s3Prefix))
		}
		if *g.s3Region != "" {
			opts = append(opts, s3.WithRegion(*g.s3Region))
		}
		if *g.s3Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(*g.s3Endpoint))
		}
		s, err := s3.New(ctx, *g.s3Bucket, opts...)
		if err != nil {
			return nil, err
		}
		store = s
	case *g.minioEndpoint != "":
		s, err := minio.Connect(ctx, minio.Config{
			Endpoint:  *g.minioEndpoint,
			AccessKey: *g.minioAccessKey,
			SecretKey: *g.minioSecretKey,
			Secure:    *g.minioSecure,
			Bucket:    *g.minioBucket,
			Prefix:    *g.minioPrefix,
		})
		if err != nil {
			return nil, err
		}
		store = s
	default:
		store = blobstore.NewLocalStore(*g.dir)
	}

	if *g.rps > 0 || *g.maxInFlight > 0 {
		store = blobstore.NewThrottled(store, blobstore.ThrottleConfig{
			RequestsPerSec: *g.rps,
			Burst:          max(1, int(*g.rps)),
			MaxInFlight:    *g.maxInFlight,
		})
	}
	return store, nil
}

func newApp(stderr io.Writer) *kingpin.Application {
	app := kingpin.New("sparseset", "Maintain named sets of integers in [0, 32767].")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	app.HelpFlag.Short('h')
	return app
}

// run parses args and executes the selected command.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	app := newApp(stderr)
	flags := registerGlobalFlags(app)

	handlers := make(map[string]handler, len(commands))
	for _, register := range commands {
		cmd, h := register(app)
		handlers[cmd.FullCommand()] = h
	}

	selected, err := app.Parse(args)
	if err != nil {
		return err
	}
	h, ok := handlers[selected]
	if !ok {
		return fmt.Errorf("unknown command %q", selected)
	}

	compression, err := persistence.ParseCompression(*flags.compression)
	if err != nil {
		return err
	}
	store, err := flags.store(ctx)
	if err != nil {
		return err
	}
	logger := flags.logger(stderr)

	return h(ctx, &env{
		mgr: persistence.NewManager(store,
			persistence.WithLogger(logger),
			persistence.WithCompression(compression),
			persistence.WithConcurrency(*flags.concurrency),
		),
		in:  stdin,
		out: stdout,
		log: logger,
	})
}
