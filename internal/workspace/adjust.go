// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

const (
	// DockerMarkerEnv is set (to "True") by the containerized run so the
	// inner process knows it is executing inside the artman image.
	DockerMarkerEnv = "RUNNING_IN_ARTMAN_DOCKER"

	// defaultSourceRoot is the versioned googleapis checkout baked into the
	// artman image.
	defaultSourceRoot = "/googleapis"
)

// commonProtoDirs are shared proto packages that protoc needs during
// descriptor generation but that API input trees routinely omit.
var commonProtoDirs = []string{
	"google/api",
	"google/iam/v1",
	"google/longrunning",
	"google/rpc",
	"google/type",
}

// Adjuster fills missing common proto packages into the input tree. The
// adjustment only applies inside the artman container, where a versioned
// googleapis checkout is known to exist.
type Adjuster struct {
	// Logger traces copied packages. Defaults to the package logger.
	Logger *log.Logger

	// SourceRoot is the googleapis checkout to copy from. Defaults to
	// /googleapis, its location inside the image.
	SourceRoot string

	// LookupEnv resolves environment variables. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// EnsureCommonProtos copies each common proto package absent from rootDir
// out of the source root. Outside the container it is a no-op: the user's
// tree is never modified on the host.
func (a *Adjuster) EnsureCommonProtos(rootDir string) error {
	if v, ok := a.lookupEnv(DockerMarkerEnv); !ok || v == "" {
		return nil
	}

	sourceRoot := a.SourceRoot
	if sourceRoot == "" {
		sourceRoot = defaultSourceRoot
	}

	for _, dir := range commonProtoDirs {
		dst := filepath.Join(rootDir, dir)
		if _, err := os.Stat(dst); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to inspect %s: %w", dst, err)
		}

		src := filepath.Join(sourceRoot, dir)
		a.logger().Debug("copying common protos into input tree", "package", dir)
		if err := CopyDir(src, dst); err != nil {
			return fmt.Errorf("failed to copy common protos %s: %w", dir, err)
		}
	}

	return nil
}

func (a *Adjuster) lookupEnv(key string) (string, bool) {
	if a.LookupEnv != nil {
		return a.LookupEnv(key)
	}
	return os.LookupEnv(key)
}

func (a *Adjuster) logger() *log.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return log.Default()
}
