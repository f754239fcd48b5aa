// Package convert implements program actions: batch rendering of document
// payloads into HTML and photo layout planning.
package convert

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"docrender/archive"
	"docrender/common"
	"docrender/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render").With(zap.String("rid", env.RunID))

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if err := loadExtraStyle(env); err != nil {
		return err
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")
	if workers := cmd.Int("workers"); workers > 0 {
		env.Cfg.Render.Workers = int(workers)
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Int("workers", env.Cfg.Render.Workers))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, log)
}

func loadExtraStyle(env *state.LocalEnv) error {
	if env.Cfg.Render.StylesheetPath == "" {
		return nil
	}
	data, err := os.ReadFile(env.Cfg.Render.StylesheetPath)
	if err != nil {
		return fmt.Errorf("unable to read style css from %q: %w", env.Cfg.Render.StylesheetPath, err)
	}
	env.ExtraStyle = data
	env.Rpt.Store("config/"+filepath.Base(env.Cfg.Render.StylesheetPath), env.Cfg.Render.StylesheetPath)
	return nil
}

// process handles the core rendering logic independently of CLI framework. It
// determines the input type (directory, archive, or single file), schedules
// every payload found and waits for all of them.
func process(ctx context.Context, src, dst string, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b := newBatch(ctx, dst, state.EnvFromContext(ctx).Cfg.Render.Workers, log)
	return b.finish(walkSource(b.ctx, src, b, log))
}

// walkSource finds longest existing prefix of src. Whatever follows existing
// archive is path inside archive.
func walkSource(ctx context.Context, src string, b *batch, log *zap.Logger) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := processDir(ctx, head, b, log); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			return nil
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := processArchive(ctx, head, filepath.ToSlash(tail), "", b, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			return nil
		}

		payload, format, enc, err := isPayloadFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if payload && len(tail) == 0 {
			data, err := readPayload(head, enc)
			if err != nil {
				return err
			}
			b.submit(filepath.Base(head), format, data)
			return nil
		}
		return fmt.Errorf("input was not recognized as document payload (%s)", head)
	}
	return fmt.Errorf("input source was not found (%s)", src)
}

func readPayload(path string, enc srcEncoding) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readLimited(selectReader(f, enc), path)
}

func readLimited(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, archive.MaxEntrySize+1))
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", name, err)
	}
	if len(data) > archive.MaxEntrySize {
		return nil, fmt.Errorf("%s is too large", name)
	}
	return data, nil
}

// processDir walks directory tree finding payload files and archives.
func processDir(ctx context.Context, dir string, b *batch, log *zap.Logger) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		isArchive, err := isArchiveFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if isArchive {
			if err := processArchive(ctx, path, "", filepath.Dir(rel), b, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		payload, format, enc, err := isPayloadFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !payload {
			log.Debug("Skipping file, not recognized as payload or archive", zap.String("file", path))
			return nil
		}

		data, err := readPayload(path, enc)
		if err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			return nil
		}
		b.submit(rel, format, data)
		return nil
	})
}

// processArchive walks all payload files inside archive under "pathIn".
// Output keeps archive location relative to processed directory ("pathOut").
func processArchive(ctx context.Context, arcPath, pathIn, pathOut string, b *batch, log *zap.Logger) error {
	count := 0
	err := archive.Walk(arcPath, pathIn, isPayloadName, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := archive.ReadFile(f)
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", arc), zap.String("file", f.Name), zap.Error(err))
			return nil
		}
		data, err := readLimited(selectReader(bytes.NewReader(raw), detectUTF(raw)), f.Name)
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", arc), zap.String("file", f.Name), zap.Error(err))
			return nil
		}
		format, _ := common.PayloadFmtFromExt(path.Ext(f.Name))

		count++
		b.submit(filepath.Join(pathOut, filepath.FromSlash(f.Name)), format, data)
		return nil
	})
	if err == nil && count == 0 {
		log.Debug("Nothing to process", zap.String("archive", arcPath))
	}
	return err
}

// payloadFormat is used by layout action: only plain files are accepted there.
func payloadFormat(path string) (common.PayloadFmt, srcEncoding, error) {
	payload, format, enc, err := isPayloadFile(path)
	if err != nil {
		return format, enc, fmt.Errorf("unable to check file type: %w", err)
	}
	if !payload {
		return format, enc, fmt.Errorf("input was not recognized as document payload (%s)", path)
	}
	return format, enc, nil
}
