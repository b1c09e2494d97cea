package env_test

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/fieldnation/devportal/config/env"
)

type testConf struct {
	Concurrency int           `hcl:"concurrency,optional"`
	Deadline    time.Duration `env:"deadline"`
	LogPretty   bool          `hcl:"log_pretty,optional"`
	Name        string        `hcl:"name,label"`
	Sections    []string      `env:"sections"`
	Untagged    string
}

func TestDecode(t *testing.T) {
	env.SetTestOsEnviron(func() []string {
		return []string{
			"DEVPORTAL_CONCURRENCY=4",
			"DEVPORTAL_DEADLINE=2s",
			"DEVPORTAL_LOG_PRETTY=true",
			"DEVPORTAL_NAME=docs",
			"DEVPORTAL_SECTIONS=rest-api, webhooks",
			"DEVPORTAL_UNTAGGED=ignored",
			"SITE_URL=https://example.com",
		}
	})
	defer env.SetTestOsEnviron(os.Environ)

	conf := &testConf{}
	if err := env.Decode(conf); err != nil {
		t.Fatal(err)
	}

	want := &testConf{
		Concurrency: 4,
		Deadline:    2 * time.Second,
		LogPretty:   true,
		Name:        "docs",
		Sections:    []string{"rest-api", "webhooks"},
	}
	if diff := cmp.Diff(want, conf); diff != "" {
		t.Error(diff)
	}

	if v, ok := env.Lookup("SITE_URL"); !ok || v != "https://example.com" {
		t.Errorf("unexpected lookup result: %q %v", v, ok)
	}
}

func TestDecode_InvalidValue(t *testing.T) {
	env.SetTestOsEnviron(func() []string {
		return []string{"DEVPORTAL_CONCURRENCY=many"}
	})
	defer env.SetTestOsEnviron(os.Environ)

	err := env.Decode(&testConf{})
	if err == nil || err.Error() != `invalid integer value for "DEVPORTAL_CONCURRENCY": many` {
		t.Errorf("unexpected error: %v", err)
	}
}
