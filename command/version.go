package command

import (
	"github.com/sirupsen/logrus"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/utils"
)

var _ Cmd = &Version{}

type Version struct{}

func NewVersion() *Version {
	return &Version{}
}

func (v Version) Execute(_ Args, _ *config.Portal, _ *logrus.Entry) error {
	println(utils.VersionString())
	return nil
}

func (v Version) Usage() {
	println("Usage of version:\n  version	Print current version and build information.")
}
