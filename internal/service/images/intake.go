package images

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fsanano/catalog-api/internal/metrics"
)

// FieldName is the multipart field uploads arrive under.
const FieldName = "product"

type Upload struct {
	Filename string
	URL      string
}

// Intake names, stores and links uploaded images.
type Intake struct {
	store   Store
	baseURL string
	now     func() time.Time

	mu   sync.Mutex
	last int64
}

func NewIntake(store Store, baseURL string) *Intake {
	return &Intake{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// Receive stores r as <field>_<millis><ext> and returns the public URL.
func (i *Intake) Receive(ctx context.Context, field, originalName string, r io.Reader) (Upload, error) {
	name := fmt.Sprintf("%s_%d%s", field, i.stamp(), filepath.Ext(originalName))

	if err := i.store.Save(ctx, name, r); err != nil {
		return Upload{}, err
	}
	metrics.Uploads.Inc()

	return Upload{Filename: name, URL: i.URL(name)}, nil
}

func (i *Intake) URL(name string) string {
	return i.baseURL + "/images/" + name
}

func (i *Intake) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return i.store.Open(ctx, name)
}

// stamp returns the current unix millis, bumped past the previous value when
// two uploads share a millisecond so names never collide.
func (i *Intake) stamp() int64 {
	i.mu.Lock()
	defer i.mu.Unlock()

	ms := i.now().UnixMilli()
	if ms <= i.last {
		ms = i.last + 1
	}
	i.last = ms
	return ms
}
