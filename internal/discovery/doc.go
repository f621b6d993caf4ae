// Package discovery finds the projects of a workspace.
//
// A project is a directory containing the configuration marker file. Discovery walks the
// tree below the workspace root concurrently: every directory is read by one worker, and
// each subdirectory is handed to a new worker when one is free or walked inline otherwise,
// so the walk never waits on itself.
//
// The walk never descends into the repository boundary marker (`.git`) and skips
// directories rejected by the workspace `exclude` pattern or by project selectors. The
// root is never skipped. Hidden directories are walked unless [Discovery.WithNoHidden] is
// set.
//
// Symlinked directories are not followed by default. With [Discovery.WithFollowSymlinks],
// links whose target lies inside the root are skipped, since the target is walked
// directly, and links outside the root are followed once per target. Links pointing at one
// of their own ancestors are reported as [SymlinkCycleWarning].
//
// Unreadable subdirectories are reported as [WalkWarning] and skipped; discovery carries
// on with their siblings. The resulting projects are sorted by relative path, so the result
// does not depend on scheduling.
package discovery
