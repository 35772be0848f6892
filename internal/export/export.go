// Package export writes composed pages to disk: one TIFF per page, or every
// page bundled into a ZIP archive, plus PNG previews.
//
// All three paths compose pages through the same compose.Composer so the
// preview, the single page file and the archive members cannot drift apart.
package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"speciesmap/internal/compose"
	"speciesmap/internal/fileutil"
	"speciesmap/internal/gallery"
	"speciesmap/internal/render"
)

// ErrEmptyGallery reports an export with nothing to draw.
var ErrEmptyGallery = errors.New("gallery is empty")

// PageRenderer rasterizes a composed page.
type PageRenderer interface {
	Render(page compose.Page) (*image.RGBA, error)
}

// Bundler exports gallery pages.
type Bundler struct {
	Composer  compose.Composer
	Renderer  PageRenderer
	OutputDir string
	Prefix    string
	Genus     string
	Layout    string
	Now       func() time.Time
}

// Result describes a written file.
type Result struct {
	Path    string   `json:"path"`
	Pages   []int    `json:"pages"`
	Bytes   int64    `json:"bytes"`
	Members []string `json:"members,omitempty"`
}

func (b *Bundler) naming() Naming {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	return NewNaming(b.Prefix, b.Genus, now(), b.Layout)
}

// RenderPage composes and rasterizes page (clamped) of g.
func (b *Bundler) RenderPage(g *gallery.Gallery, page int) (compose.Page, *image.RGBA, error) {
	if g.Len() == 0 {
		return compose.Page{}, nil, ErrEmptyGallery
	}
	page = g.ClampPage(page)
	composed := b.Composer.Compose(g.Page(page), page)
	img, err := b.Renderer.Render(composed)
	if err != nil {
		return compose.Page{}, nil, fmt.Errorf("render page %d: %w", page+1, err)
	}
	return composed, img, nil
}

// ExportPage writes one page as TIFF into OutputDir.
func (b *Bundler) ExportPage(ctx context.Context, g *gallery.Gallery, page int) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	composed, img, err := b.RenderPage(g, page)
	if err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(b.OutputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}
	target, err := fileutil.UniquePath(filepath.Join(b.OutputDir, b.naming().PageFile(composed.Number())))
	if err != nil {
		return Result{}, err
	}
	n, err := fileutil.WriteAtomic(target, 0o644, func(w io.Writer) error {
		return render.EncodeTIFF(w, img)
	})
	if err != nil {
		return Result{}, fmt.Errorf("write %s: %w", filepath.Base(target), err)
	}
	return Result{Path: target, Pages: []int{composed.Number()}, Bytes: n}, nil
}

// ExportAll renders every page to memory and writes one ZIP whose members
// follow the page naming scheme. progress receives pages done and total.
func (b *Bundler) ExportAll(ctx context.Context, g *gallery.Gallery, progress gallery.ProgressFunc) (Result, error) {
	total := g.PageCount()
	if total == 0 {
		return Result{}, ErrEmptyGallery
	}
	naming := b.naming()

	type member struct {
		name string
		data []byte
	}
	members := make([]member, 0, total)
	for page := 0; page < total; page++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		composed, img, err := b.RenderPage(g, page)
		if err != nil {
			return Result{}, err
		}
		var buf bytes.Buffer
		if err := render.EncodeTIFF(&buf, img); err != nil {
			return Result{}, fmt.Errorf("page %d: %w", composed.Number(), err)
		}
		members = append(members, member{name: naming.PageFile(composed.Number()), data: buf.Bytes()})
		if progress != nil {
			progress(page+1, total)
		}
	}

	if err := os.MkdirAll(b.OutputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output directory: %w", err)
	}
	target, err := fileutil.UniquePath(filepath.Join(b.OutputDir, naming.ArchiveFile()))
	if err != nil {
		return Result{}, err
	}
	n, err := fileutil.WriteAtomic(target, 0o644, func(w io.Writer) error {
		zw := zip.NewWriter(w)
		for _, m := range members {
			fw, err := zw.Create(m.name)
			if err != nil {
				return fmt.Errorf("add %s: %w", m.name, err)
			}
			if _, err := fw.Write(m.data); err != nil {
				return fmt.Errorf("write %s: %w", m.name, err)
			}
		}
		return zw.Close()
	})
	if err != nil {
		return Result{}, fmt.Errorf("write %s: %w", filepath.Base(target), err)
	}

	result := Result{Path: target, Bytes: n}
	for i, m := range members {
		result.Pages = append(result.Pages, i+1)
		result.Members = append(result.Members, m.name)
	}
	return result, nil
}

// Preview writes page (clamped) as PNG to w.
func (b *Bundler) Preview(g *gallery.Gallery, page int, w io.Writer) (compose.Page, error) {
	composed, img, err := b.RenderPage(g, page)
	if err != nil {
		return compose.Page{}, err
	}
	return composed, render.EncodePNG(w, img)
}
