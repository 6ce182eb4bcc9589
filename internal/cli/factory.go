package cli

import (
	"strings"

	"github.com/aretw0/canvass/pkg/adapters/file"
	"github.com/aretw0/canvass/pkg/adapters/httpsource"
	"github.com/aretw0/canvass/pkg/adapters/redis"
	"github.com/aretw0/canvass/pkg/ports"
)

// DefaultStateDir is where file-backed sessions live when no directory
// is given.
const DefaultStateDir = ".canvass/sessions"

// ResolveSource picks the definition source matching the ref scheme:
// http(s) refs are fetched over the network, everything else is read
// from disk.
func ResolveSource(ref string) ports.DefinitionSource {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return httpsource.New()
	}
	return file.NewSource()
}

// ResolveStore builds the resume store. A Redis URL wins over the file
// store; an empty session ID disables persistence entirely.
func ResolveStore(sessionID, redisAddr, stateDir string) ports.ResumeStore {
	if sessionID == "" {
		return nil
	}
	if redisAddr != "" {
		return redis.New(redisAddr, "", 0)
	}
	if stateDir == "" {
		stateDir = DefaultStateDir
	}
	return file.NewStore(stateDir)
}
