// SPDX-License-Identifier: MPL-2.0

package pipeline

// Descriptor is the resolved unit of work: one pipeline and the full
// argument map it runs with. The execution layer consumes a Descriptor
// without ever re-reading config files or flags.
type Descriptor struct {
	// Pipeline is the selected pipeline name (e.g. "GapicClientPipeline").
	Pipeline string

	// Args is the final merged argument map.
	Args Args
}
