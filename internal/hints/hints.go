// Package hints appends actionable suggestions to CLI error messages.
// Every hint renders as "\n  hint: <text>" so it lines up under the error.
package hints

import (
	"net"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdsite/internal/fileutil"
)

// IsInContainer reports whether the process runs in a Docker-like container.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

const prefix = "\n  hint: "

// join renders suggestions as one hint line. Empty suggestions are dropped.
func join(suggestions ...string) string {
	kept := suggestions[:0:0]
	for _, s := range suggestions {
		if s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return prefix + strings.Join(kept, "; ")
}

// ForListen suggests another address. A loopback bind inside a container is
// unreachable from the host, so that case also suggests the wildcard address.
func ForListen(addr string) string {
	var wildcard string
	if host, _, err := net.SplitHostPort(addr); err == nil && IsInContainer() && isLoopback(host) {
		wildcard = "bind 0.0.0.0 to reach the server from outside the container"
	}
	return join("use --addr or MDSITE_ADDR to choose another address", wildcard)
}

// ForConfigNotFound suggests --config, and the per-user config location when
// one of the searched paths is under go-mdsite/.
func ForConfigNotFound(searched []string) string {
	create := ""
	for _, p := range searched {
		if strings.Contains(filepath.ToSlash(p), "/go-mdsite/") {
			create = " or create " + p
			break
		}
	}
	return join("use --config /path/to/file.yaml" + create)
}

// ForContentDir suggests where the posts directory comes from.
func ForContentDir(dir string) string {
	source := "set content.postsDir in the config or MDSITE_CONTENT_DIR"
	if dir == "" {
		return join(source)
	}
	return join("create " + dir + " or " + source)
}

// ForAssetsDir suggests fixing or clearing the custom assets directory.
func ForAssetsDir(dir string) string {
	return join("check that " + dir + " is a directory, or unset assets.basePath to use the built-in theme")
}

// ForMarkdownInput lists accepted inputs for the render command.
func ForMarkdownInput() string {
	return join("pass a .md or .markdown file, or - to read standard input")
}

// ForOutputDirectory suggests checking the build output location.
func ForOutputDirectory() string {
	return join("check parent directory exists and is writable")
}

// ForStyleNotFound lists the highlight styles that exist.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return join("available: " + strings.Join(available, ", "))
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
