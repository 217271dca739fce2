// Package device binds the macro engine to the operating system: gohook
// supplies the global mouse and keyboard stream, robotgo injects synthetic
// input, and the platform key state answers modifier queries.
package device
