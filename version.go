package ledsign

// Version is the release version of ledsign, overridden at build time via
// -ldflags "-X github.com/matjam/ledsign.Version=...".
var Version = "0.2.0"
