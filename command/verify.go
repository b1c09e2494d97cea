package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/config/runtime"
	"github.com/fieldnation/devportal/errors"
)

var _ Cmd = &Verify{}

// Verify loads specs and content and reports what a build would produce
// without writing anything.
type Verify struct {
	context context.Context
	out     io.Writer
}

func NewVerify(ctx context.Context) *Verify {
	return &Verify{context: ctx, out: os.Stdout}
}

func (v Verify) Execute(_ Args, conf *config.Portal, logger *logrus.Entry) error {
	// collisions are collected instead of failing on the first one
	policy := conf.Generate.OnCollision
	generate := *conf.Generate
	generate.OnCollision = config.CollisionSuffix
	conf.Generate = &generate

	// generated pages may not exist yet, they are reported as planned
	generated, hasGenerated := conf.GeneratedCollection()
	if hasGenerated && !generated.Optional {
		optional := *generated
		optional.Optional = true
		collections := make(config.Collections, len(conf.Collections))
		for i, col := range conf.Collections {
			collections[i] = col
			if col == generated {
				collections[i] = &optional
			}
		}
		conf.Collections = collections
		generated = &optional
	}

	return run(conf, logger, func(p *runtime.Pipeline) error {
		ctx := p.Context(v.context)

		set, err := p.OpenAPI(ctx)
		if err != nil {
			return err
		}
		plan, err := p.Plan(ctx)
		if err != nil {
			return err
		}
		loaders, err := p.Content(ctx)
		if err != nil {
			return err
		}
		versions, err := p.Versions(ctx)
		if err != nil {
			return err
		}

		title := color.New(color.Bold)
		ok := color.New(color.FgGreen)
		warn := color.New(color.FgYellow)

		title.Fprintln(v.out, "openapi")
		for _, doc := range set.Documents() {
			fmt.Fprintf(v.out, "  %-24s %3d operations %3d webhooks\n", doc.SchemaID, len(doc.Operations()), len(doc.Webhooks()))
			for _, w := range doc.Warnings {
				warn.Fprintf(v.out, "    warning: %s\n", w)
			}
		}
		fmt.Fprintf(v.out, "  %d pages planned\n", len(plan.Files()))

		title.Fprintln(v.out, "content")
		for _, loader := range loaders {
			if hasGenerated && loader.Name() == generated.Name {
				fmt.Fprintf(v.out, "  %-24s %3d pages, %d planned\n", loader.Name(), len(loader.Pages()), len(plan.Files()))
				continue
			}
			fmt.Fprintf(v.out, "  %-24s %3d pages\n", loader.Name(), len(loader.Pages()))
		}

		title.Fprintln(v.out, "versions")
		sections := make([]string, 0, len(versions))
		for section := range versions {
			sections = append(sections, section)
		}
		sort.Strings(sections)
		for _, section := range sections {
			list := "-"
			if len(versions[section]) > 0 {
				list = strings.Join(versions[section], ", ")
			}
			fmt.Fprintf(v.out, "  %-24s %s\n", section, list)
		}

		if len(plan.Collisions) == 0 {
			ok.Fprintln(v.out, "no path collisions")
			return nil
		}

		warn.Fprintf(v.out, "%d path collisions\n", len(plan.Collisions))
		for _, c := range plan.Collisions {
			warn.Fprintf(v.out, "  %s\n", c)
		}
		if policy != config.CollisionSuffix {
			return errors.Generate.Messagef("%d path collisions", len(plan.Collisions))
		}
		return nil
	})
}

func (v Verify) Usage() {
	println("Usage of verify:\n  verify [-f <file>]	Report specs, content pages, versions and path collisions without writing.")
}
