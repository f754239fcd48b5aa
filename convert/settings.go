package convert

import (
	"go.uber.org/zap"

	"docrender/css"
	"docrender/layout"
	"docrender/render"
	"docrender/state"
)

// newRenderer builds renderer from program configuration. Extra stylesheet
// is parsed once and shared by all documents.
func newRenderer(env *state.LocalEnv, log *zap.Logger) *render.Renderer {
	conf := &env.Cfg.Render

	settings := render.Settings{
		Placeholders: render.Placeholders{
			Text:     conf.Placeholders.Text,
			Image:    conf.Placeholders.Image,
			Table:    conf.Placeholders.Table,
			KeyValue: conf.Placeholders.KeyValue,
		},
		ImageEndpoint:     conf.Images.Endpoint,
		AllowExternalURLs: conf.Images.AllowExternalURLs,
		PhotoBlockID:      conf.Photos.BlockID,
		GridStyleID:       conf.Photos.GridStyleID,
		Page:              conf.Page.PageOptions(),
		Language:          conf.Language,
	}

	if len(env.ExtraStyle) > 0 {
		sheet := css.NewParser(log).Parse(env.ExtraStyle, conf.StylesheetPath)
		for _, w := range sheet.Warnings {
			log.Warn("Extra stylesheet", zap.String("problem", w))
		}
		settings.Extra = sheet
	}
	return render.New(settings, log)
}

// newPlanner builds photo layout planner from program configuration.
func newPlanner(env *state.LocalEnv, log *zap.Logger) *layout.Planner {
	conf := &env.Cfg.Render
	margin, gap := conf.Layout.Margin, conf.Layout.Gap
	return layout.New(layout.Settings{
		PhotoBlockID:      conf.Photos.BlockID,
		ImageEndpoint:     conf.Images.Endpoint,
		AllowExternalURLs: conf.Images.AllowExternalURLs,
		Grid:              conf.Layout.Grid(),
		Margin:            &margin,
		Gap:               &gap,
	}, log)
}
