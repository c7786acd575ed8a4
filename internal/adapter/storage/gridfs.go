package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/config"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

const defaultContentType = "application/octet-stream"

var _ interfaces.FileStorage = (*GridFS)(nil)

// GridFS keeps uploaded images in a MongoDB GridFS bucket. Files are served
// back by the HTTP layer under /storage/{name}.
type GridFS struct {
	client    *mongo.Client
	database  *mongo.Database
	bucket    string
	publicURL string
	timeout   time.Duration
}

func Connect(ctx context.Context, cfg config.StorageConfig, publicURL string) (*GridFS, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(20)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &GridFS{
		client:    client,
		database:  client.Database(cfg.Database),
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		timeout:   cfg.Timeout,
	}, nil
}

func (s *GridFS) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *GridFS) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// openBucket returns a bucket bound to the deadline of ctx. Deadlines are
// per bucket, so every call gets its own.
func (s *GridFS) openBucket(ctx context.Context, write bool) (*gridfs.Bucket, error) {
	bucket, err := gridfs.NewBucket(s.database, options.GridFSBucket().SetName(s.bucket))
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket: %w", err)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(s.timeout)
	}
	if write {
		err = bucket.SetWriteDeadline(deadline)
	} else {
		err = bucket.SetReadDeadline(deadline)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}
	return bucket, nil
}

func (s *GridFS) Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	bucket, err := s.openBucket(ctx, true)
	if err != nil {
		return "", err
	}

	if contentType == "" {
		contentType = defaultContentType
	}
	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "contentType", Value: contentType}})

	if _, err := bucket.UploadFromStream(name, r, opts); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}

	return s.PublicURL(name), nil
}

// Open streams a stored file. The caller closes the reader.
func (s *GridFS) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	bucket, err := s.openBucket(ctx, false)
	if err != nil {
		return nil, "", err
	}

	stream, err := bucket.OpenDownloadStreamByName(name)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, "", fmt.Errorf("file %s: %w", name, domain.ErrNotFound)
		}
		return nil, "", fmt.Errorf("failed to open %s: %w", name, err)
	}

	contentType := defaultContentType
	if file := stream.GetFile(); file != nil && file.Metadata != nil {
		if v, ok := file.Metadata.Lookup("contentType").StringValueOK(); ok && v != "" {
			contentType = v
		}
	}

	return stream, contentType, nil
}

func (s *GridFS) PublicURL(name string) string {
	return s.publicURL + "/storage/" + url.PathEscape(name)
}
