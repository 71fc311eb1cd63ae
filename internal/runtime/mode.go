// SPDX-License-Identifier: MPL-2.0

package runtime

// Mode names an execution mode.
type Mode string

const (
	// ModeLocal runs the pipeline flow in the current process.
	ModeLocal Mode = "local"

	// ModeContainer replays the command line inside the artman docker
	// image.
	ModeContainer Mode = "container"
)

// Route maps the --local flag to an execution mode. The flag is the only
// input; a run inside the container sets it explicitly.
func Route(local bool) Mode {
	if local {
		return ModeLocal
	}
	return ModeContainer
}
