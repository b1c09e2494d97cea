package command

import (
	"github.com/sirupsen/logrus"

	"github.com/fieldnation/devportal/config"
)

var _ Cmd = &Help{}

// Help shows available commands and options.
type Help struct{}

func NewHelp() *Help {
	return &Help{}
}

func (h Help) Execute(_ Args, _ *config.Portal, _ *logrus.Entry) error {
	h.Usage()
	return nil
}

func (h Help) Usage() {
	println(`devportal usage:

devportal <global options> <cmd> <options>

global options:

	-f		devportal hcl configuration file (default devportal.hcl)
	-e		environment block to apply
	-log-format	format option for json or common logs
	-log-level	log level: panic, fatal, error, warn, info, debug, trace
	-log-pretty	pretty print json logs

available commands:

	build		generate openapi pages, llms exports and the search index
	openapi		generate openapi reference pages [-dry-run] [-on-collision error|suffix]
	llms		write llms.txt, llms-full.txt and page exports [-strict] [-concurrency n]
	search		write the search index [-o file] [-no-publish]
	verify		report specs, content, versions and path collisions
	serve		preview server for llms and search routes [-addr :3030]
	version		print the version
	help		print this help
`)
}
