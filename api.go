package modelcache

// Options tune a Manager. All fields are optional.
type Options struct {
	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used
}

// Stats is a point-in-time summary of one class.
type Stats struct {
	LogEntries       int // entries in the insertion log, duplicates included
	Keys             int // keys resolvable through GetObject
	Containers       int
	ContainerEntries int // summed over all containers, duplicates included
}
