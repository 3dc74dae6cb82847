package main

import (
	"context"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestRunLoadsAndLearnsFromTestdata(t *testing.T) {
	o := options{
		backgroundPath: "../../testdata/parenthood/background.dl",
		manifestPath:   "../../testdata/parenthood/manifest.yaml",
	}
	logger := hclog.NewNullLogger()
	if err := o.run(context.Background(), logger); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunWithCacheEnabled(t *testing.T) {
	o := options{
		backgroundPath: "../../testdata/parenthood/background.dl",
		manifestPath:   "../../testdata/parenthood/manifest.yaml",
		cache:          true,
	}
	logger := hclog.NewNullLogger()
	if err := o.run(context.Background(), logger); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunMissingBackgroundFile(t *testing.T) {
	o := options{
		backgroundPath: "../../testdata/parenthood/does-not-exist.dl",
		manifestPath:   "../../testdata/parenthood/manifest.yaml",
	}
	logger := hclog.NewNullLogger()
	if err := o.run(context.Background(), logger); err == nil {
		t.Fatalf("expected an error for a missing background file")
	}
}
