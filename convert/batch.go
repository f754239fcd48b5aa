package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"docrender/common"
	"docrender/document"
	"docrender/render"
	"docrender/state"
)

// errAlreadyProduced is returned when two sources of the same run map to
// the same output file.
var errAlreadyProduced = errors.New("output file has been produced by another source in this run")

// batch renders documents concurrently. Every document is an independent
// render call, failure of one document does not stop the others.
type batch struct {
	ctx      context.Context
	group    *errgroup.Group
	env      *state.LocalEnv
	renderer *render.Renderer
	dst      string
	log      *zap.Logger

	mu       sync.Mutex
	produced map[string]string
	total    int
	errs     error
}

func newBatch(ctx context.Context, dst string, workers int, log *zap.Logger) *batch {
	env := state.EnvFromContext(ctx)
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	return &batch{
		ctx:      gctx,
		group:    group,
		env:      env,
		renderer: newRenderer(env, log),
		dst:      dst,
		log:      log,
		produced: make(map[string]string),
	}
}

// submit schedules rendering of payload read from src. It blocks when all
// workers are busy.
func (b *batch) submit(src string, format common.PayloadFmt, data []byte) {
	b.mu.Lock()
	b.total++
	b.mu.Unlock()

	b.group.Go(func() error {
		if err := b.ctx.Err(); err != nil {
			return err
		}
		if err := b.renderDocument(src, format, data); err != nil {
			b.log.Error("Unable to render document", zap.String("source", src), zap.Error(err))
			b.mu.Lock()
			b.errs = multierr.Append(b.errs, fmt.Errorf("%s: %w", src, err))
			b.mu.Unlock()
		}
		return nil
	})
}

// wait blocks until all scheduled documents are processed and returns
// combined error of failed documents.
func (b *batch) wait() error {
	if err := b.group.Wait(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.total == 0 {
		b.log.Debug("Nothing to process")
		return nil
	}
	if b.errs != nil {
		failed := len(multierr.Errors(b.errs))
		return fmt.Errorf("unable to render %d of %d documents: %w", failed, b.total, b.errs)
	}
	return nil
}

// finish waits for scheduled documents even when source walk failed, so
// their failures are reported along with walkErr.
func (b *batch) finish(walkErr error) error {
	if walkErr != nil {
		return multierr.Append(walkErr, b.wait())
	}
	return b.wait()
}

// claim reserves output file name for src.
func (b *batch) claim(outputName, src string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if prev, ok := b.produced[outputName]; ok {
		return fmt.Errorf("%w: %s (%s)", errAlreadyProduced, outputName, prev)
	}
	b.produced[outputName] = src
	return nil
}

// renderDocument processes single payload. "src" is part of the source path
// (always including file name) relative to the original path. When actual
// file was specified it will be just base file name without a path. When
// looking inside archive or directory it will be relative path inside archive
// or directory (including base file name).
func (b *batch) renderDocument(src string, format common.PayloadFmt, data []byte) (rerr error) {
	var outputName string

	b.log.Debug("Rendering starting", zap.String("from", src), zap.Stringer("format", format))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			b.log.Error("Rendering ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("rendering panic: %v", r)
		} else if rerr == nil {
			b.log.Info("Rendering completed", zap.String("from", src), zap.String("to", outputName), zap.Duration("elapsed", time.Since(start)))
		}
	}(time.Now())

	b.env.Rpt.StoreData(filepath.ToSlash(filepath.Join("input", src)), data)

	p, err := document.Decode(bytes.NewReader(data), format)
	if err != nil {
		return err
	}

	out, err := b.renderer.Render(p)
	if err != nil {
		return err
	}

	outputName = buildOutputPath(p, src, b.dst, b.env)
	if err := b.claim(outputName, src); err != nil {
		return err
	}

	if _, err := os.Stat(outputName); err == nil {
		if !b.env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		b.log.Warn("Overwriting existing file", zap.String("file", outputName))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	if err := os.WriteFile(outputName, []byte(out), 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	b.env.Rpt.Store(filepath.ToSlash(filepath.Join("result", filepath.Base(outputName))), outputName)
	return nil
}
