// Package artifact renders and persists the on-disk configuration files a
// tuned host consumes at boot. Renderers are pure: content derives from
// compile-time constants only, so two runs always produce byte-identical
// files.
package artifact

import (
	"bytes"
	"fmt"

	"github.com/danmuck/mactune/internal/catalog"
)

const (
	// SysctlConfPath is the persisted kernel-parameter destination.
	SysctlConfPath = "/etc/sysctl.conf"
	// LimitMaxfilesPath is the boot-time file-descriptor ceiling job.
	LimitMaxfilesPath = "/Library/LaunchDaemons/limit.maxfiles.plist"

	// MaxFilesLimit is the open-file ceiling, applied as both the soft and
	// hard value.
	MaxFilesLimit = "524288"

	limitMaxfilesLabel = "limit.maxfiles"
)

// SysctlConf renders the persisted kernel network parameters: the same
// key=value pairs the live netparams group applies, one per line.
func SysctlConf() []byte {
	var buf bytes.Buffer
	for _, kv := range catalog.NetParams() {
		fmt.Fprintf(&buf, "%s=%s\n", kv[0], kv[1])
	}
	return buf.Bytes()
}

// LimitMaxfilesPlist renders the launchd job that raises the open-file
// ceiling at boot. It runs once at load and offers no IPC service.
func LimitMaxfilesPlist() []byte {
	return []byte(fmt.Sprintf(limitMaxfilesTemplate, limitMaxfilesLabel, MaxFilesLimit, MaxFilesLimit))
}

const limitMaxfilesTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>%s</string>
    <key>ProgramArguments</key>
    <array>
        <string>launchctl</string>
        <string>limit</string>
        <string>maxfiles</string>
        <string>%s</string>
        <string>%s</string>
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>ServiceIPC</key>
    <false/>
</dict>
</plist>
`
