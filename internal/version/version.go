// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.2.0"

// Milestones:
// 0.2.0 - Ray picking for clicks, favorites/history persistence, config file
// 0.1.0 - Initial release: globe view, screen-space hover, playback state machine
