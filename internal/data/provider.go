package data

import "github.com/google/wire"

// ProviderSet is the wire provider set for the data package.
var ProviderSet = wire.NewSet(NewStore)
