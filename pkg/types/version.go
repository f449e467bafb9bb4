package types

// Version is the release version of the neubase module.
const Version = "0.1.0"
