package site

import (
	"fmt"
	"net/http"
	"os/exec"
	"runtime"
)

// Serve starts a local HTTP file server for the generated site.
func Serve(dir string, port int, open bool) error {
	addr := fmt.Sprintf(":%d", port)
	url := fmt.Sprintf("http://localhost:%d", port)

	if open {
		go OpenBrowser(url)
	}

	fmt.Printf("Serving rules catalog at %s\n", url)
	fmt.Println("Press Ctrl+C to stop.")

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(dir)))

	return http.ListenAndServe(addr, mux)
}

// OpenBrowser opens the given URL in the default browser.
func OpenBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
