//go:build e2e && unix

package e2e

import (
	"fmt"
	"net/http/httptest"
	"os"
	"os/exec"
	"testing"
	"time"

	"suggestable/internal/devserver"
)

// endpoint is the suggestion url every test starts the app with
var endpoint string

func TestMain(m *testing.M) {
	e2eDir, err := os.Getwd()
	if err != nil {
		fmt.Printf("Failed to get working directory: %v\n", err)
		os.Exit(1)
	}
	binPath = e2eDir + "/suggestable_e2e"

	fmt.Println("Building test binary from main project...")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/suggestable")
	cmd.Dir = ".."
	if out, err := cmd.CombinedOutput(); err != nil {
		fmt.Printf("Failed to build test binary: %v\n%s", err, out)
		os.Exit(1)
	}

	opts := devserver.DefaultOptions()
	opts.Delay = 20 * time.Millisecond
	srv := httptest.NewServer(devserver.New(devserver.NewIndex(devserver.SampleEntries...), opts, nil))
	endpoint = srv.URL + "/suggest"

	code := m.Run()

	srv.Close()
	os.Remove(binPath)
	os.Exit(code)
}
