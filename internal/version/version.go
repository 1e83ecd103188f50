// ABOUTME: Version constants for the framecast tools
// ABOUTME: Reported in server hellos and command-line banners
package version

const (
	// Version is the release version of the framecast tools.
	Version = "0.1.0"

	// Product is the product name reported to peers.
	Product = "Framecast"

	// Manufacturer identifies the project.
	Manufacturer = "Framecast Project"
)
