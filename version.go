package custody

// Release of this build. Official builds override Commit with
//
//	-ldflags "-X github.com/iov-one/custody.Commit=<hash>"
const Release = "v0.1.0-dev"

// Commit is the git revision the binary was built from.
var Commit = ""

// Version returns the release, followed by the commit when known.
func Version() string {
	if Commit == "" {
		return Release
	}
	return Release + " " + Commit
}
