package timetable

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/patrickmn/go-cache"

	"campusAssistant/logger"
)

const documentCacheKey = "timetable_document"

// Source отдаёт сырой JSON датасета расписаний.
type Source interface {
	Load(ctx context.Context) ([]byte, error)
}

type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Load(_ context.Context) ([]byte, error) {
	return os.ReadFile(s.path)
}

// MinIOSource читает датасет из объектного хранилища.
type MinIOSource struct {
	client *minio.Client
	bucket string
	object string
}

func NewMinIOSource(endpoint, accessKey, secretKey, bucket, object string, useSSL bool) (*MinIOSource, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinIOSource{client: client, bucket: bucket, object: object}, nil
}

func (s *MinIOSource) Load(ctx context.Context) ([]byte, error) {
	object, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	return data, nil
}

// DocumentProvider отдаёт разобранный датасет либо признак его отсутствия.
type DocumentProvider interface {
	Document(ctx context.Context) (*Document, bool)
}

// Loader кэширует разобранный документ на время TTL, чтобы каждый запрос
// расписания не перечитывал датасет заново.
type Loader struct {
	source Source
	cache  *cache.Cache
	ttl    time.Duration
	log    *logger.Logger
}

func NewLoader(source Source, ttl time.Duration, log *logger.Logger) *Loader {
	return &Loader{
		source: source,
		cache:  cache.New(ttl, 2*ttl),
		ttl:    ttl,
		log:    log,
	}
}

// Document возвращает документ из кэша или источника. Отсутствующий или
// битый датасет даёт (nil, false): чтение всегда best-effort, вызывающий
// код деградирует до пустого расписания.
func (l *Loader) Document(ctx context.Context) (*Document, bool) {
	if cached, ok := l.cache.Get(documentCacheKey); ok {
		return cached.(*Document), true
	}

	data, err := l.source.Load(ctx)
	if err != nil {
		l.log.Warnf("Timetable dataset unavailable: %v", err)
		return nil, false
	}

	doc := new(Document)
	if err := json.Unmarshal(data, doc); err != nil {
		l.log.Errorf("Timetable dataset is malformed: %v", err)
		return nil, false
	}

	l.cache.Set(documentCacheKey, doc, l.ttl)
	return doc, true
}
