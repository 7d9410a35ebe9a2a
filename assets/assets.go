// Package assets loads the images placed on generated documents: the company
// logo and the footer icons.
//
// Images are fetched once per source and kept for the life of the process.
// Every image is decoded, scaled down to a bounded size and re-encoded as
// PNG, so any format the decoders understand (PNG, JPEG, GIF, WebP, BMP,
// TIFF) can be used.
package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Names under which images are registered on a document.
const (
	Logo     = "logo"
	Phone    = "icon-phone"
	Location = "icon-location"
	Globe    = "icon-globe"
)

// DefaultMaxDimension bounds the larger side of a loaded image in pixels.
const DefaultMaxDimension = 512

// ErrEmptySource is returned for blank sources.
var ErrEmptySource = errors.New("assets: empty source")

// Sources maps image names to where they are loaded from. A source is
// "builtin:<name>", a data URI, an http(s) URL or a file path.
type Sources map[string]string

// DefaultSources uses the built-in logo and icons.
func DefaultSources() Sources {
	return Sources{
		Logo:     "builtin:" + BuiltinLogo,
		Phone:    "builtin:" + BuiltinPhone,
		Location: "builtin:" + BuiltinLocation,
		Globe:    "builtin:" + BuiltinGlobe,
	}
}

// Merge returns a copy of s with the non-blank entries of o applied.
func (s Sources) Merge(o Sources) Sources {
	out := make(Sources, len(s)+len(o))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range o {
		if strings.TrimSpace(v) != "" {
			out[k] = v
		}
	}
	return out
}

// Cache loads images and keeps the normalized PNG bytes by source. It is
// safe for concurrent use. Two goroutines missing the same source may both
// load it; the first stored result wins.
type Cache struct {
	mu     sync.RWMutex
	items  map[string][]byte
	client *http.Client
	maxDim int
	loads  atomic.Int64
}

// Option configures a Cache.
type Option func(*Cache)

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(c *http.Client) Option {
	return func(cache *Cache) { cache.client = c }
}

// WithMaxDimension bounds the larger side of loaded images in pixels.
// Zero or less disables scaling.
func WithMaxDimension(px int) Option {
	return func(cache *Cache) { cache.maxDim = px }
}

// NewCache returns an empty cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		items:  make(map[string][]byte),
		client: &http.Client{Timeout: 15 * time.Second},
		maxDim: DefaultMaxDimension,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var shared = NewCache()

// Shared returns the process-wide cache.
func Shared() *Cache { return shared }

// Loads returns how many sources were actually fetched, cache hits excluded.
func (c *Cache) Loads() int64 { return c.loads.Load() }

// Len returns the number of cached sources.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Load returns the PNG bytes for source, fetching it on first use.
func (c *Cache) Load(ctx context.Context, source string) ([]byte, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrEmptySource
	}

	c.mu.RLock()
	data, ok := c.items[source]
	c.mu.RUnlock()
	if ok {
		return data, nil
	}

	c.loads.Add(1)
	data, err := c.fetch(ctx, source)
	if err != nil {
		return nil, errors.Wrapf(err, "assets: loading %s", describe(source))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[source]; ok {
		return existing, nil
	}
	c.items[source] = data
	return data, nil
}

// LoadAll loads every source concurrently and returns the images by name.
// When several loads fail the error of the first name in sorted order is
// returned.
func (c *Cache) LoadAll(ctx context.Context, sources Sources) (map[string][]byte, error) {
	type result struct {
		data []byte
		err  error
	}
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]result, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, source string) {
			defer wg.Done()
			data, err := c.Load(ctx, source)
			results[i] = result{data: data, err: err}
		}(i, sources[name])
	}
	wg.Wait()

	out := make(map[string][]byte, len(names))
	for i, name := range names {
		if results[i].err != nil {
			return nil, errors.WithMessagef(results[i].err, "image %q", name)
		}
		out[name] = results[i].data
	}
	return out, nil
}

func (c *Cache) fetch(ctx context.Context, source string) ([]byte, error) {
	if name, ok := strings.CutPrefix(source, "builtin:"); ok {
		img, err := Builtin(name)
		if err != nil {
			return nil, err
		}
		return encode(img)
	}

	var raw []byte
	var err error
	switch {
	case strings.HasPrefix(source, "data:"):
		raw, err = decodeDataURI(source)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		raw, err = c.download(ctx, source)
	default:
		raw, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}
	return c.normalize(raw)
}

func (c *Cache) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "downloading")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// decodeDataURI returns the payload of a "data:[<mediatype>][;base64],<data>"
// URI.
func decodeDataURI(uri string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, errors.New("malformed data URI")
	}
	if strings.HasSuffix(header, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, errors.Wrap(err, "decoding base64 payload")
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, errors.Wrap(err, "unescaping payload")
	}
	return []byte(s), nil
}

// normalize decodes raw, scales it down when larger than the cache bound and
// returns it as PNG.
func (c *Cache) normalize(raw []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(err, "decoding image")
	}
	return encode(scaleDown(img, c.maxDim))
}

func scaleDown(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}
	if w >= h {
		h = max(1, h*maxDim/w)
		w = maxDim
	} else {
		w = max(1, w*maxDim/h)
		h = maxDim
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "encoding png")
	}
	return buf.Bytes(), nil
}

// describe shortens data URIs for error messages.
func describe(source string) string {
	if strings.HasPrefix(source, "data:") && len(source) > 40 {
		return source[:40] + "..."
	}
	return source
}
