package scenekit

// Version is the library version reported by the CLI.
var Version = "0.1.0"
