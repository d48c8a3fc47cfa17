//go:build ommdebug

package ommerr

// DebugBuild reports whether the binary was built with the ommdebug tag. It is
// the default for WithDebugSync.
const DebugBuild = true
