package compiler

// A real front end would resolve an entry path by parsing and interpreting
// the TypeScript module found there; that front end is out of this core's
// scope. RegisterDriver/ResolveDriver give an embedder a way to stand in
// for it: register a Driver under the same name a CLI invocation would use
// as its entry path, typically from an init() in a blank-imported package.
var registry = map[string]Driver{}

// RegisterDriver makes d available under name for later lookup by
// ResolveDriver. Registering the same name twice replaces the prior
// registration.
func RegisterDriver(name string, d Driver) {
	registry[name] = d
}

// ResolveDriver looks up the Driver registered under name, if any.
func ResolveDriver(name string) (Driver, bool) {
	d, ok := registry[name]
	return d, ok
}
