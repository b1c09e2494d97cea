package main

import (
	"os"
	"strings"
	"testing"

	logrustest "github.com/sirupsen/logrus/hooks/test"

	"github.com/fieldnation/devportal/config/env"
)

func Test_realmain(t *testing.T) {
	localHook := &logrustest.Hook{}
	testHook = localHook

	base := "testdata/settings"
	missing := "failed to load configuration: open "

	tests := []struct {
		name    string
		args    []string
		envs    []string
		wantLog []string
		want    int
	}{
		{"common log format /wo file", []string{"devportal", "build", "-f", base + "/missing.hcl"}, nil, []string{`level=error msg="` + missing, "build=dev"}, 1},
		{"json log format /wo file", []string{"devportal", "build", "-f", base + "/missing.hcl", "-log-format", "json"}, nil, []string{`"build":"dev"`, `"level":"error"`, `"message":"` + missing}, 1},
		{"json log format via env /wo file", []string{"devportal", "llms", "-f", base + "/missing.hcl"}, []string{"DEVPORTAL_LOG_FORMAT=json"}, []string{`"message":"` + missing}, 1},
		{"flag wins over env", []string{"devportal", "llms", "-f", base + "/missing.hcl", "-log-format", "common"}, []string{"DEVPORTAL_LOG_FORMAT=json"}, []string{`msg="` + missing}, 1},
		{"file via env", []string{"devportal", "search"}, []string{"DEVPORTAL_FILE=" + base + "/missing.hcl"}, []string{`msg="` + missing}, 1},
		{"non-existent log level /wo file", []string{"devportal", "build", "-f", base + "/missing.hcl", "-log-level", "test"}, nil, []string{`msg="` + missing}, 1},
		{"-f w/o file", []string{"devportal", "build", "-f"}, nil, []string{`msg="flag needs an argument: -f"`, "build=dev"}, 1},
		{"missing collection", []string{"devportal", "verify", "-f", base + "/no_collection.hcl"}, nil, []string{`msg="configuration error: missing 'collection' block"`}, 1},
		{"json log format from file", []string{"devportal", "verify", "-f", base + "/log_json.hcl"}, nil, []string{`"error_type":"content"`, `"message":"docs: content error: content directory`}, 1},
		{"common log format via env /w file", []string{"devportal", "verify", "-f", base + "/log_json.hcl"}, []string{"DEVPORTAL_LOG_FORMAT=common"}, []string{`msg="docs: content error: content directory`}, 1},
		{"unknown command", []string{"devportal", "run"}, nil, []string{`msg="unknown command: run"`}, 1},
		{"no command", []string{"devportal"}, nil, nil, 1},
		{"version", []string{"devportal", "version"}, nil, nil, 0},
		{"dry run", []string{"devportal", "openapi", "-f", base + "/portal.hcl", "-dry-run"}, nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(subT *testing.T) {
			localHook.Reset()
			env.SetTestOsEnviron(func() []string {
				return tt.envs
			})
			defer env.SetTestOsEnviron(os.Environ)

			if got := realmain(tt.args); got != tt.want {
				subT.Errorf("realmain() = %v, want %v", got, tt.want)
			}

			if len(tt.wantLog) == 0 {
				return
			}

			last := localHook.LastEntry()
			if last == nil {
				subT.Fatal("expected a log entry")
			}
			entry, _ := last.String()
			for _, want := range tt.wantLog {
				if !strings.Contains(entry, want) {
					subT.Errorf("\nwant:\t%s\ngot:\t%s\n", want, entry)
				}
			}
		})
	}
}
