package driver

import (
	"context"
	"path/filepath"
	"testing"
)

// TestGoldenSuite runs the checked-in scripts under testdata/golden.
func TestGoldenSuite(t *testing.T) {
	dir := filepath.Join("..", "..", "testdata", "golden")
	res, err := RunSuite(context.Background(), SuiteOptions{Dir: dir, Jobs: 4})
	if err != nil {
		t.Fatalf("RunSuite: %v", err)
	}
	if len(res.Cases) == 0 {
		t.Fatalf("no scripts found in %s", dir)
	}
	for _, c := range res.Cases {
		if c.Status.OK() {
			continue
		}
		if c.Err != nil {
			t.Errorf("%s: %s: %v", c.Path, c.Status, c.Err)
			continue
		}
		t.Errorf("%s: %s\n--- want\n%s--- got\n%s", c.Path, c.Status, c.Want, c.Got)
	}
}
