package configload

import (
	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/errors"
)

func validate(portal *config.Portal) error {
	confErr := errors.Configuration

	switch portal.Settings.LogFormat {
	case "common", "json":
	default:
		return confErr.Label("settings").Messagef("unsupported log_format: %q", portal.Settings.LogFormat)
	}

	switch portal.Settings.BuildIDFormat {
	case config.BuildIDFormatCommon, config.BuildIDFormatUUID4:
	default:
		return confErr.Label("settings").Messagef("unsupported build_id_format: %q", portal.Settings.BuildIDFormat)
	}

	if len(portal.Collections) == 0 {
		return confErr.Message("missing 'collection' block")
	}

	collections := make(map[string]struct{})
	baseURLs := make(map[string]string)
	for _, col := range portal.Collections {
		if _, exist := collections[col.Name]; exist {
			return confErr.Label("collection").Messagef("duplicate name: %q", col.Name)
		}
		collections[col.Name] = struct{}{}

		if other, exist := baseURLs[col.BaseURL]; exist {
			return confErr.Label("collection").Messagef("%q and %q share the base_url %q", other, col.Name, col.BaseURL)
		}
		baseURLs[col.BaseURL] = col.Name

		if col.Dir == "" {
			return confErr.Label("collection " + col.Name).Message("empty dir")
		}
	}

	names := make(map[string]struct{})
	schemaIDs := make(map[string]struct{})
	for _, spec := range portal.OpenAPI {
		if _, exist := names[spec.Name]; exist {
			return confErr.Label("openapi").Messagef("duplicate name: %q", spec.Name)
		}
		names[spec.Name] = struct{}{}

		if _, exist := schemaIDs[spec.ID()]; exist {
			return confErr.Label("openapi " + spec.Name).Messagef("duplicate schema id: %q", spec.ID())
		}
		schemaIDs[spec.ID()] = struct{}{}

		switch spec.Family {
		case "", config.FamilyREST, config.FamilyWebhook:
		default:
			return confErr.Label("openapi " + spec.Name).Messagef("unsupported family: %q", spec.Family)
		}
	}

	switch portal.Generate.OnCollision {
	case config.CollisionError, config.CollisionSuffix:
	default:
		return confErr.Label("generate").Messagef("unsupported on_collision value: %q", portal.Generate.OnCollision)
	}

	return nil
}
