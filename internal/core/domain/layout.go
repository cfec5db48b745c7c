package domain

const (
	// PluginName is the name reported to the host bundler.
	PluginName = "elm"

	// Namespace tags resolved Elm modules so only this plugin loads them.
	Namespace = "elm"

	// ModuleFilter matches the module references handled by the resolve hook.
	ModuleFilter = `\.elm$`

	// ConfigFileName is the name of the CLI configuration file.
	ConfigFileName = "esbuild-elm.yaml"

	// ElmJSONFileName is the name of the Elm project manifest.
	ElmJSONFileName = "elm.json"

	// ElmStuffDirName is the compiler's artifact directory.
	ElmStuffDirName = "elm-stuff"

	// SnapshotPrefix prefixes cache snapshot file names.
	SnapshotPrefix = "elm-"

	// SnapshotExt is the extension of cache snapshot files.
	SnapshotExt = ".mp"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// PureFuncs are the curried helpers emitted by elm make that have no side
// effects; minifiers may drop calls to them when the result is unused.
var PureFuncs = []string{
	"F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9",
	"A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9",
}
