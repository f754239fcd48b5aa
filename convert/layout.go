package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"docrender/common"
	"docrender/document"
	"docrender/layout"
	"docrender/state"
)

// Layout plans photo block of a single payload onto slides and writes the
// plan to destination file or STDOUT.
func Layout(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("layout").With(zap.String("rid", env.RunID))

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	to, err := common.ParsePayloadFmt(cmd.String("to"))
	if err != nil {
		log.Warn("Unknown output format requested, switching to json", zap.Error(err))
		to = common.PayloadFmtJSON
	}

	plan, err := planFile(src, newPlanner(env, log))
	if err != nil {
		return err
	}
	data, err := encodePlan(plan, to)
	if err != nil {
		return err
	}

	fname := cmd.Args().Get(1)
	if len(fname) == 0 {
		w := io.Writer(os.Stdout)
		if cmd.Root().Writer != nil {
			w = cmd.Root().Writer
		}
		_, err = w.Write(data)
		return err
	}

	if _, err := os.Stat(fname); err == nil && !cmd.Bool("overwrite") {
		return fmt.Errorf("output file already exists: %s", fname)
	}
	if err := os.WriteFile(fname, data, 0644); err != nil {
		return fmt.Errorf("unable to write layout: %w", err)
	}
	env.Rpt.Store("result/"+filepath.Base(fname), fname)

	log.Info("Layout planned", zap.String("from", src), zap.String("to", fname),
		zap.Int("photos", plan.Count), zap.Int("slides", len(plan.Slides)))
	return nil
}

func planFile(src string, planner *layout.Planner) (*layout.Plan, error) {
	format, enc, err := payloadFormat(src)
	if err != nil {
		return nil, err
	}
	data, err := readPayload(src, enc)
	if err != nil {
		return nil, err
	}
	p, err := document.Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, err
	}
	return planner.Plan(p)
}

func encodePlan(plan *layout.Plan, to common.PayloadFmt) ([]byte, error) {
	buf := new(bytes.Buffer)
	switch to {
	case common.PayloadFmtYAML:
		enc := yaml.NewEncoder(buf)
		enc.SetIndent(2)
		if err := enc.Encode(plan); err != nil {
			return nil, fmt.Errorf("unable to encode layout: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("unable to encode layout: %w", err)
		}
	default:
		enc := json.NewEncoder(buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(plan); err != nil {
			return nil, fmt.Errorf("unable to encode layout: %w", err)
		}
	}
	return buf.Bytes(), nil
}
